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

// CandidateRepo implements the storage.CandidateRepository interface using PostgreSQL.
type CandidateRepo struct {
	db Querier
}

// NewCandidateRepo creates a new CandidateRepo.
func NewCandidateRepo(db *pgxpool.Pool) *CandidateRepo {
	return &CandidateRepo{db: db}
}

// WithTx creates a new CandidateRepo bound to the transaction.
func (r *CandidateRepo) WithTx(tx pgx.Tx) storage.CandidateRepository {
	return &CandidateRepo{db: tx}
}

// Compile-time check to ensure CandidateRepo implements CandidateRepository
var _ storage.CandidateRepository = (*CandidateRepo)(nil)

const candidateColumns = `id, org_id, job_id, created_by, name, resume_url, stage, notes, created_at, updated_at`

func scanCandidate(row pgx.Row) (*models.Candidate, error) {
	var c models.Candidate
	err := row.Scan(
		&c.ID,
		&c.OrgID,
		&c.JobID,
		&c.CreatedBy,
		&c.Name,
		&c.ResumeURL,
		&c.Stage,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create saves a new candidate in the initial "applied" stage. The org id is
// written alongside the job id so the row can never drift across tenants.
func (r *CandidateRepo) Create(ctx context.Context, req *dto.CreateCandidateRecord) (*models.Candidate, error) {
	query := `
		INSERT INTO candidates (id, org_id, job_id, created_by, name, resume_url, stage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + candidateColumns

	row := r.db.QueryRow(ctx, query,
		uuid.New(),
		req.OrgID,
		req.JobID,
		req.CreatedBy,
		req.Name,
		req.ResumeURL,
		models.StageApplied,
	)

	candidate, err := scanCandidate(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrForeignKeyViolation {
			log.Printf("Error creating candidate: foreign key violation (job_id: %s): %v\n", req.JobID, err)
			return nil, fmt.Errorf("failed to create candidate: invalid job reference: %w", storage.ErrConflict)
		}
		log.Printf("Error creating candidate: %v\n", err)
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}

	return candidate, nil
}

// GetByID retrieves a candidate, scoped to the caller's org.
func (r *CandidateRepo) GetByID(ctx context.Context, orgID, candidateID uuid.UUID) (*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1 AND org_id = $2`

	candidate, err := scanCandidate(r.db.QueryRow(ctx, query, candidateID, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning candidate by ID %s: %v\n", candidateID, err)
		return nil, fmt.Errorf("failed to get candidate by ID %s: %w", candidateID, err)
	}

	return candidate, nil
}

// GetByJob retrieves a candidate scoped to both its job and the caller's org.
func (r *CandidateRepo) GetByJob(ctx context.Context, orgID, jobID, candidateID uuid.UUID) (*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1 AND job_id = $2 AND org_id = $3`

	candidate, err := scanCandidate(r.db.QueryRow(ctx, query, candidateID, jobID, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning candidate %s for job %s: %v\n", candidateID, jobID, err)
		return nil, fmt.Errorf("failed to get candidate %s: %w", candidateID, err)
	}

	return candidate, nil
}

// ListByJob retrieves all candidates for a job within the caller's org.
func (r *CandidateRepo) ListByJob(ctx context.Context, orgID, jobID uuid.UUID) ([]models.Candidate, error) {
	query := `SELECT ` + candidateColumns + `
		FROM candidates
		WHERE job_id = $1 AND org_id = $2
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, jobID, orgID)
	if err != nil {
		log.Printf("Error querying candidates for job %s: %v\n", jobID, err)
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Candidate])
	if err != nil {
		log.Printf("Error scanning candidates for job %s: %v\n", jobID, err)
		return nil, fmt.Errorf("failed to scan candidates: %w", err)
	}

	if candidates == nil {
		candidates = []models.Candidate{}
	}

	return candidates, nil
}

// UpdateStage moves a candidate to a new pipeline stage. The write is a
// single conditional UPDATE keyed by candidate, job and org together; zero
// rows affected means the candidate does not exist under that job and tenant.
func (r *CandidateRepo) UpdateStage(ctx context.Context, orgID, jobID, candidateID uuid.UUID, stage models.CandidateStage) (*models.Candidate, error) {
	query := `
		UPDATE candidates
		SET stage = $1, updated_at = NOW()
		WHERE id = $2 AND job_id = $3 AND org_id = $4
		RETURNING ` + candidateColumns

	candidate, err := scanCandidate(r.db.QueryRow(ctx, query, stage, candidateID, jobID, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating stage for candidate %s: %v\n", candidateID, err)
		return nil, fmt.Errorf("failed to update candidate stage: %w", err)
	}

	return candidate, nil
}

// UpdateNotes replaces a candidate's notes, scoped to the caller's org.
func (r *CandidateRepo) UpdateNotes(ctx context.Context, orgID, candidateID uuid.UUID, notes *string) (*models.Candidate, error) {
	query := `
		UPDATE candidates
		SET notes = $1, updated_at = NOW()
		WHERE id = $2 AND org_id = $3
		RETURNING ` + candidateColumns

	candidate, err := scanCandidate(r.db.QueryRow(ctx, query, notes, candidateID, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating notes for candidate %s: %v\n", candidateID, err)
		return nil, fmt.Errorf("failed to update candidate notes: %w", err)
	}

	return candidate, nil
}
