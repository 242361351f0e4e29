package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// HealthHandler holds the connections the health check probes.
type HealthHandler struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *pgxpool.Pool, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: rdb}
}

// HealthCheck handles the health check endpoint
//
//	@Summary		Health check
//	@Description	Check if the service and its backing stores are up
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	map[string]string	"API is healthy"
//	@Failure		503	{object}	map[string]string	"A dependency is unreachable"
//	@Router			/health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
		return
	}
	if err := h.redis.Ping(ctx).Err(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "redis": "unreachable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
