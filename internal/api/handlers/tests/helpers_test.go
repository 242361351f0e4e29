package handlers_test

import (
	"context"
	"io"
	"time"

	"hatch-api/internal/models"
	"hatch-api/internal/services"
	"hatch-api/internal/transport/dto"
	"hatch-api/internal/workflow"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func generateTestToken(userID, orgID uuid.UUID, secret string, expiration time.Duration) (string, error) {
	now := time.Now()
	claims := &services.SessionClaims{
		OrgID: orgID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// MockCandidateService is a mock implementation of services.CandidateService
type MockCandidateService struct {
	mock.Mock
}

func (m *MockCandidateService) CreateCandidate(ctx context.Context, orgID, userID, jobID uuid.UUID, name, filename, contentType string, resume io.Reader) (*models.Candidate, error) {
	args := m.Called(ctx, orgID, userID, jobID, name, filename, contentType, resume)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Candidate), args.Error(1)
}

func (m *MockCandidateService) GetCandidate(ctx context.Context, orgID, candidateID uuid.UUID) (*models.Candidate, error) {
	args := m.Called(ctx, orgID, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Candidate), args.Error(1)
}

func (m *MockCandidateService) ListCandidates(ctx context.Context, orgID, jobID uuid.UUID) ([]models.Candidate, error) {
	args := m.Called(ctx, orgID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Candidate), args.Error(1)
}

func (m *MockCandidateService) MoveStage(ctx context.Context, orgID, candidateID uuid.UUID, req *dto.MoveStageRequest) (*models.Candidate, error) {
	args := m.Called(ctx, orgID, candidateID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Candidate), args.Error(1)
}

func (m *MockCandidateService) UpdateNotes(ctx context.Context, orgID, candidateID uuid.UUID, req *dto.UpdateNotesRequest) (*models.Candidate, error) {
	args := m.Called(ctx, orgID, candidateID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Candidate), args.Error(1)
}

var _ services.CandidateService = (*MockCandidateService)(nil)

// MockWorkflowService is a mock implementation of services.WorkflowService
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

var _ services.WorkflowService = (*MockWorkflowService)(nil)
