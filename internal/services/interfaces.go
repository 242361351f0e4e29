package services

import (
	"context"
	"io"

	"hatch-api/internal/models"
	"hatch-api/internal/transport/dto"
	"hatch-api/internal/workflow"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TxBeginner is the single pool operation the transactional services need.
// *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// UserService defines the interface for auth and user-related business logic.
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (string, string, error)
	Logout(ctx context.Context, req *dto.LogoutRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// JobService defines the interface for job posting business logic.
type JobService interface {
	CreateJob(ctx context.Context, orgID, userID uuid.UUID, req *dto.CreateJobRequest) (*models.Job, error)
	GetJobByID(ctx context.Context, orgID, jobID uuid.UUID) (*models.Job, error)
	ListJobs(ctx context.Context, orgID uuid.UUID, req *dto.ListJobsRequest) ([]models.Job, error)
	DeleteJob(ctx context.Context, orgID, userID, jobID uuid.UUID) error
}

// CandidateService defines the interface for candidate business logic,
// including resume intake and pipeline stage moves.
type CandidateService interface {
	CreateCandidate(ctx context.Context, orgID, userID, jobID uuid.UUID, name, filename, contentType string, resume io.Reader) (*models.Candidate, error)
	GetCandidate(ctx context.Context, orgID, candidateID uuid.UUID) (*models.Candidate, error)
	ListCandidates(ctx context.Context, orgID, jobID uuid.UUID) ([]models.Candidate, error)
	MoveStage(ctx context.Context, orgID, candidateID uuid.UUID, req *dto.MoveStageRequest) (*models.Candidate, error)
	UpdateNotes(ctx context.Context, orgID, candidateID uuid.UUID, req *dto.UpdateNotesRequest) (*models.Candidate, error)
}

// WorkflowService defines the dispatch and read sides of the asynchronous
// enrichment pipeline.
type WorkflowService interface {
	Enqueue(ctx context.Context, req *dto.EnqueueWorkflowJobRecord) (*models.WorkflowJob, error)
	CandidateInsights(ctx context.Context, orgID, candidateID uuid.UUID) (workflow.CandidateInsights, error)
}
