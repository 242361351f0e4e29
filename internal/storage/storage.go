package storage

import (
	"context"

	"hatch-api/internal/models"
	"hatch-api/internal/transport/dto"
	"hatch-api/internal/workflow"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrganizationRepository defines the interface for organization data operations.
type OrganizationRepository interface {
	WithTx(tx pgx.Tx) OrganizationRepository
	Create(ctx context.Context, req *dto.CreateOrganizationRequest) (*models.Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
}

// UserRepository defines the interface for user profile data operations.
type UserRepository interface {
	WithTx(tx pgx.Tx) UserRepository
	Create(ctx context.Context, req *dto.CreateUserRecord) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// JobRepository defines the interface for job posting data operations.
// Every method is tenant-scoped: reads and writes always carry the org id in
// the same predicate as the primary key.
type JobRepository interface {
	WithTx(tx pgx.Tx) JobRepository
	Create(ctx context.Context, req *dto.CreateJobRecord) (*models.Job, error)
	GetByID(ctx context.Context, orgID, jobID uuid.UUID) (*models.Job, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]models.Job, error)
	Delete(ctx context.Context, orgID, jobID uuid.UUID) error
}

// CandidateRepository defines the interface for candidate data operations.
type CandidateRepository interface {
	WithTx(tx pgx.Tx) CandidateRepository
	Create(ctx context.Context, req *dto.CreateCandidateRecord) (*models.Candidate, error)
	GetByID(ctx context.Context, orgID, candidateID uuid.UUID) (*models.Candidate, error)
	GetByJob(ctx context.Context, orgID, jobID, candidateID uuid.UUID) (*models.Candidate, error)
	ListByJob(ctx context.Context, orgID, jobID uuid.UUID) ([]models.Candidate, error)
	UpdateStage(ctx context.Context, orgID, jobID, candidateID uuid.UUID, stage models.CandidateStage) (*models.Candidate, error)
	UpdateNotes(ctx context.Context, orgID, candidateID uuid.UUID, notes *string) (*models.Candidate, error)
}

// WorkflowJobRepository records pending enrichment work and reads back the
// results the external worker has written. This side never updates rows.
type WorkflowJobRepository interface {
	Create(ctx context.Context, req *dto.EnqueueWorkflowJobRecord) (*models.WorkflowJob, error)
	ResultsForCandidate(ctx context.Context, orgID, candidateID uuid.UUID, jobTypes []string) ([]workflow.ResultRow, error)
}
