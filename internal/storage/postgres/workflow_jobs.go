package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"hatch-api/internal/models"
	"hatch-api/internal/storage"
	"hatch-api/internal/transport/dto"
	"hatch-api/internal/workflow"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WorkflowJobRepo implements the storage.WorkflowJobRepository interface
// using PostgreSQL. It only ever inserts pending rows and reads result
// columns; the status/result lifecycle belongs to the external worker.
type WorkflowJobRepo struct {
	db Querier
}

// NewWorkflowJobRepo creates a new WorkflowJobRepo.
func NewWorkflowJobRepo(db *pgxpool.Pool) *WorkflowJobRepo {
	return &WorkflowJobRepo{db: db}
}

// Compile-time check to ensure WorkflowJobRepo implements WorkflowJobRepository
var _ storage.WorkflowJobRepository = (*WorkflowJobRepo)(nil)

// Create inserts exactly one pending workflow job row with a NULL result.
func (r *WorkflowJobRepo) Create(ctx context.Context, req *dto.EnqueueWorkflowJobRecord) (*models.WorkflowJob, error) {
	payload, err := json.Marshal(req.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode workflow payload: %w", err)
	}

	query := `
		INSERT INTO workflow_jobs (id, org_id, job_id, job_type, trigger_type, payload, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, org_id, job_id, job_type, trigger_type, payload, status, result, created_at, updated_at
	`

	row := r.db.QueryRow(ctx, query,
		uuid.New(),
		req.OrgID,
		req.JobID,
		req.JobType,
		req.TriggerType,
		payload,
		models.WorkflowStatusPending,
	)

	var wj models.WorkflowJob
	err = row.Scan(
		&wj.ID,
		&wj.OrgID,
		&wj.JobID,
		&wj.JobType,
		&wj.TriggerType,
		&wj.Payload,
		&wj.Status,
		&wj.Result,
		&wj.CreatedAt,
		&wj.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrForeignKeyViolation {
			return nil, fmt.Errorf("failed to enqueue workflow job: invalid reference: %w", storage.ErrConflict)
		}
		log.Printf("Error enqueueing workflow job (%s/%s): %v\n", req.JobType, req.TriggerType, err)
		return nil, fmt.Errorf("failed to enqueue workflow job: %w", err)
	}

	return &wj, nil
}

// ResultsForCandidate fetches the (job_type, result) pairs for a candidate's
// enrichment rows within one org. The candidate id lives inside the JSONB
// payload, so the join is a payload predicate. Rows are ordered by updated_at
// ascending: callers folding them front-to-back end up with the most recently
// updated row per job type.
func (r *WorkflowJobRepo) ResultsForCandidate(ctx context.Context, orgID, candidateID uuid.UUID, jobTypes []string) ([]workflow.ResultRow, error) {
	query := `
		SELECT job_type, result
		FROM workflow_jobs
		WHERE org_id = $1
		  AND job_type = ANY($2)
		  AND payload->>'candidate_id' = $3
		ORDER BY updated_at ASC
	`

	rows, err := r.db.Query(ctx, query, orgID, jobTypes, candidateID.String())
	if err != nil {
		log.Printf("Error querying workflow results for candidate %s: %v\n", candidateID, err)
		return nil, fmt.Errorf("failed to query workflow results: %w", err)
	}
	defer rows.Close()

	var results []workflow.ResultRow
	for rows.Next() {
		var row workflow.ResultRow
		if err := rows.Scan(&row.JobType, &row.Result); err != nil {
			log.Printf("Error scanning workflow result row: %v\n", err)
			return nil, fmt.Errorf("failed to scan workflow result: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read workflow results: %w", err)
	}

	return results, nil
}
