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
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrganizationRepo implements the storage.OrganizationRepository interface using PostgreSQL.
type OrganizationRepo struct {
	db Querier
}

// NewOrganizationRepo creates a new OrganizationRepo.
func NewOrganizationRepo(db *pgxpool.Pool) *OrganizationRepo {
	return &OrganizationRepo{db: db}
}

// WithTx creates a new OrganizationRepo bound to the transaction.
func (r *OrganizationRepo) WithTx(tx pgx.Tx) storage.OrganizationRepository {
	return &OrganizationRepo{db: tx}
}

// Compile-time check to ensure OrganizationRepo implements OrganizationRepository
var _ storage.OrganizationRepository = (*OrganizationRepo)(nil)

// Create saves a new organization.
func (r *OrganizationRepo) Create(ctx context.Context, req *dto.CreateOrganizationRequest) (*models.Organization, error) {
	query := `
		INSERT INTO organizations (id, name, created_by_user_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, name, created_by_user_id, created_at
	`

	row := r.db.QueryRow(ctx, query, uuid.New(), req.Name, req.CreatedByUserID)

	var org models.Organization
	err := row.Scan(&org.ID, &org.Name, &org.CreatedByUserID, &org.CreatedAt)
	if err != nil {
		log.Printf("Error creating organization: %v\n", err)
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return &org, nil
}

// GetByID retrieves an organization by its ID.
func (r *OrganizationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	query := `
		SELECT id, name, created_by_user_id, created_at
		FROM organizations
		WHERE id = $1
	`
	row := r.db.QueryRow(ctx, query, id)

	var org models.Organization
	err := row.Scan(&org.ID, &org.Name, &org.CreatedByUserID, &org.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning organization by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get organization by ID %s: %w", id, err)
	}

	return &org, nil
}
