package services_test

import (
	"context"
	"io"

	"hatch-api/internal/models"
	"hatch-api/internal/storage"
	"hatch-api/internal/transport/dto"
	"hatch-api/internal/workflow"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// Hand-rolled testify mocks for the storage interfaces and the collaborators
// the services depend on.

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) WithTx(tx pgx.Tx) storage.UserRepository { return m }

func (m *MockUserRepository) Create(ctx context.Context, req *dto.CreateUserRecord) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) WithTx(tx pgx.Tx) storage.OrganizationRepository { return m }

func (m *MockOrganizationRepository) Create(ctx context.Context, req *dto.CreateOrganizationRequest) (*models.Organization, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) WithTx(tx pgx.Tx) storage.JobRepository { return m }

func (m *MockJobRepository) Create(ctx context.Context, req *dto.CreateJobRecord) (*models.Job, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobRepository) GetByID(ctx context.Context, orgID, jobID uuid.UUID) (*models.Job, error) {
	args := m.Called(ctx, orgID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobRepository) ListByOrg(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]models.Job, error) {
	args := m.Called(ctx, orgID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *MockJobRepository) Delete(ctx context.Context, orgID, jobID uuid.UUID) error {
	args := m.Called(ctx, orgID, jobID)
	return args.Error(0)
}

type MockCandidateRepository struct {
	mock.Mock
}

func (m *MockCandidateRepository) WithTx(tx pgx.Tx) storage.CandidateRepository { return m }

func (m *MockCandidateRepository) Create(ctx context.Context, req *dto.CreateCandidateRecord) (*models.Candidate, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) GetByID(ctx context.Context, orgID, candidateID uuid.UUID) (*models.Candidate, error) {
	args := m.Called(ctx, orgID, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) GetByJob(ctx context.Context, orgID, jobID, candidateID uuid.UUID) (*models.Candidate, error) {
	args := m.Called(ctx, orgID, jobID, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) ListByJob(ctx context.Context, orgID, jobID uuid.UUID) ([]models.Candidate, error) {
	args := m.Called(ctx, orgID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) UpdateStage(ctx context.Context, orgID, jobID, candidateID uuid.UUID, stage models.CandidateStage) (*models.Candidate, error) {
	args := m.Called(ctx, orgID, jobID, candidateID, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) UpdateNotes(ctx context.Context, orgID, candidateID uuid.UUID, notes *string) (*models.Candidate, error) {
	args := m.Called(ctx, orgID, candidateID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Candidate), args.Error(1)
}

type MockWorkflowJobRepository struct {
	mock.Mock
}

func (m *MockWorkflowJobRepository) Create(ctx context.Context, req *dto.EnqueueWorkflowJobRecord) (*models.WorkflowJob, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkflowJob), args.Error(1)
}

func (m *MockWorkflowJobRepository) ResultsForCandidate(ctx context.Context, orgID, candidateID uuid.UUID, jobTypes []string) ([]workflow.ResultRow, error) {
	args := m.Called(ctx, orgID, candidateID, jobTypes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workflow.ResultRow), args.Error(1)
}

type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) Enqueue(ctx context.Context, req *dto.EnqueueWorkflowJobRecord) (*models.WorkflowJob, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkflowJob), args.Error(1)
}

func (m *MockWorkflowService) CandidateInsights(ctx context.Context, orgID, candidateID uuid.UUID) (workflow.CandidateInsights, error) {
	args := m.Called(ctx, orgID, candidateID)
	return args.Get(0).(workflow.CandidateInsights), args.Error(1)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, objectName, contentType, r)
	return args.String(0), args.Error(1)
}

type MockTxBeginner struct {
	mock.Mock
}

func (m *MockTxBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

// stubTx satisfies pgx.Tx for transaction-shaped service paths. Every repo
// running under it here is a mock, so no query ever reaches it.
type stubTx struct{}

func (stubTx) Begin(ctx context.Context) (pgx.Tx, error) { return stubTx{}, nil }
func (stubTx) Commit(ctx context.Context) error          { return nil }
func (stubTx) Rollback(ctx context.Context) error        { return nil }
func (stubTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (stubTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (stubTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (stubTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (stubTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (stubTx) Conn() *pgx.Conn                                               { return nil }
