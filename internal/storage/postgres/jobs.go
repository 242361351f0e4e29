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

// JobRepo implements the storage.JobRepository interface using PostgreSQL.
type JobRepo struct {
	db Querier
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db *pgxpool.Pool) *JobRepo {
	return &JobRepo{db: db}
}

// WithTx creates a new JobRepo bound to the transaction.
func (r *JobRepo) WithTx(tx pgx.Tx) storage.JobRepository {
	return &JobRepo{db: tx}
}

// Compile-time check to ensure JobRepo implements JobRepository
var _ storage.JobRepository = (*JobRepo)(nil)

const jobColumns = `id, org_id, created_by, title, department, description, employment_type,
		location, experience_level, salary_budget, salary_currency, required_skills,
		preferred_skills, created_at, updated_at`

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(
		&j.ID,
		&j.OrgID,
		&j.CreatedBy,
		&j.Title,
		&j.Department,
		&j.Description,
		&j.EmploymentType,
		&j.Location,
		&j.ExperienceLevel,
		&j.SalaryBudget,
		&j.SalaryCurrency,
		&j.RequiredSkills,
		&j.PreferredSkills,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Create saves a new job posting.
func (r *JobRepo) Create(ctx context.Context, req *dto.CreateJobRecord) (*models.Job, error) {
	query := `
		INSERT INTO jobs (id, org_id, created_by, title, department, description, employment_type,
			location, experience_level, salary_budget, salary_currency, required_skills,
			preferred_skills, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING ` + jobColumns

	row := r.db.QueryRow(ctx, query,
		uuid.New(),
		req.OrgID,
		req.CreatedBy,
		req.Title,
		req.Department,
		req.Description,
		req.EmploymentType,
		req.Location,
		req.ExperienceLevel,
		req.SalaryBudget,
		req.SalaryCurrency,
		req.RequiredSkills,
		req.PreferredSkills,
	)

	job, err := scanJob(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrForeignKeyViolation {
			log.Printf("Error creating job: foreign key violation (org_id: %s): %v\n", req.OrgID, err)
			return nil, fmt.Errorf("failed to create job: invalid org reference: %w", storage.ErrConflict)
		}
		log.Printf("Error creating job: %v\n", err)
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	return job, nil
}

// GetByID retrieves a specific job, scoped to the caller's org.
func (r *JobRepo) GetByID(ctx context.Context, orgID, jobID uuid.UUID) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 AND org_id = $2`

	job, err := scanJob(r.db.QueryRow(ctx, query, jobID, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning job by ID %s: %v\n", jobID, err)
		return nil, fmt.Errorf("failed to get job by ID %s: %w", jobID, err)
	}

	return job, nil
}

// ListByOrg retrieves all jobs belonging to an org, newest first.
func (r *JobRepo) ListByOrg(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + `
		FROM jobs
		WHERE org_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, orgID, limit, offset)
	if err != nil {
		log.Printf("Error querying jobs for org %s: %v\n", orgID, err)
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		log.Printf("Error scanning jobs for org %s: %v\n", orgID, err)
		return nil, fmt.Errorf("failed to scan jobs: %w", err)
	}

	if jobs == nil {
		jobs = []models.Job{} // Return empty slice, not nil
	}

	return jobs, nil
}

// Delete removes a job, scoped to the caller's org.
func (r *JobRepo) Delete(ctx context.Context, orgID, jobID uuid.UUID) error {
	query := `DELETE FROM jobs WHERE id = $1 AND org_id = $2`

	cmdTag, err := r.db.Exec(ctx, query, jobID, orgID)
	if err != nil {
		log.Printf("Error deleting job %s: %v\n", jobID, err)
		return fmt.Errorf("failed to delete job %s: %w", jobID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	return nil
}
