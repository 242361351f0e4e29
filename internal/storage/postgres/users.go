package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"hatch-api/internal/models"
	"hatch-api/internal/storage"
	"hatch-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo implements the storage.UserRepository interface using PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

// WithTx creates a new UserRepo bound to the transaction.
func (r *UserRepo) WithTx(tx pgx.Tx) storage.UserRepository {
	return &UserRepo{db: tx}
}

// Compile-time check to ensure UserRepo implements UserRepository
var _ storage.UserRepository = (*UserRepo)(nil)

const userColumns = `id, org_id, email, password_hash, name, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.OrgID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create saves a new user profile.
func (r *UserRepo) Create(ctx context.Context, req *dto.CreateUserRecord) (*models.User, error) {
	query := `
		INSERT INTO users (id, org_id, email, password_hash, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + userColumns

	id := req.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	row := r.db.QueryRow(ctx, query, id, req.OrgID, req.Email, req.PasswordHash, req.Name)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgErrUniqueViolation:
				return nil, storage.ErrDuplicateEmail
			case pgErrForeignKeyViolation:
				return nil, fmt.Errorf("failed to create user: invalid org reference: %w", storage.ErrConflict)
			}
		}
		log.Printf("Error creating user: %v\n", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user profile by its ID.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning user by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}

	return user, nil
}

// GetByEmail retrieves a user profile by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning user by email: %v\n", err)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}
