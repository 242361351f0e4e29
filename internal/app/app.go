package app

import (
	"hatch-api/config"
	"hatch-api/internal/objectstore"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Application holds core application dependencies.
type Application struct {
	Config      *config.Config
	DBPool      *pgxpool.Pool
	RedisClient *redis.Client
	Validator   *validator.Validate
	Logger      *logrus.Logger
	Uploader    objectstore.Uploader
}
