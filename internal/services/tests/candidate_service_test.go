package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hatch-api/internal/models"
	"hatch-api/internal/services"
	"hatch-api/internal/storage"
	"hatch-api/internal/transport/dto"
	"hatch-api/internal/workflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

func setupCandidateServiceTest() (context.Context, services.CandidateService, *MockCandidateRepository, *MockJobRepository, *MockUploader, *MockWorkflowService) {
	candidateRepo := new(MockCandidateRepository)
	jobRepo := new(MockJobRepository)
	uploader := new(MockUploader)
	dispatch := new(MockWorkflowService)
	svc := services.NewCandidateService(candidateRepo, jobRepo, uploader, dispatch, nil, testLogger())
	return context.Background(), svc, candidateRepo, jobRepo, uploader, dispatch
}

func TestCandidateService_CreateCandidate_Success(t *testing.T) {
	ctx, svc, candidateRepo, jobRepo, uploader, dispatch := setupCandidateServiceTest()

	orgID := uuid.New()
	userID := uuid.New()
	jobID := uuid.New()
	resume := strings.NewReader("%PDF-1.4 fake resume")

	jobRepo.On("GetByID", ctx, orgID, jobID).
		Return(&models.Job{ID: jobID, OrgID: orgID}, nil).Once()

	uploader.On("Upload", ctx, mock.MatchedBy(func(objectName string) bool {
		return strings.HasPrefix(objectName, "resumes/"+orgID.String()+"/"+jobID.String()+"/") &&
			strings.HasSuffix(objectName, ".pdf")
	}), "application/pdf", resume).
		Return("https://storage.googleapis.com/hatch-resumes/ada.pdf", nil).Once()

	created := &models.Candidate{
		ID:        uuid.New(),
		OrgID:     orgID,
		JobID:     jobID,
		Name:      "Ada Lovelace",
		Stage:     models.StageApplied,
		ResumeURL: "https://storage.googleapis.com/hatch-resumes/ada.pdf",
	}
	candidateRepo.On("Create", ctx, mock.MatchedBy(func(r *dto.CreateCandidateRecord) bool {
		return r.OrgID == orgID && r.JobID == jobID && r.CreatedBy == userID &&
			r.Name == "Ada Lovelace" && r.ResumeURL == created.ResumeURL
	})).Return(created, nil).Once()

	dispatch.On("Enqueue", ctx, mock.MatchedBy(func(r *dto.EnqueueWorkflowJobRecord) bool {
		return r.JobType == workflow.JobTypeParseResume &&
			r.TriggerType == workflow.TriggerResumeUploaded &&
			r.Payload[workflow.PayloadCandidateIDKey] == created.ID.String() &&
			r.Payload["resume_url"] == created.ResumeURL
	})).Return(&models.WorkflowJob{ID: uuid.New()}, nil).Once()

	candidate, err := svc.CreateCandidate(ctx, orgID, userID, jobID, "Ada Lovelace", "ada.pdf", "application/pdf", resume)

	require.NoError(t, err)
	assert.Equal(t, created, candidate)
	jobRepo.AssertExpectations(t)
	uploader.AssertExpectations(t)
	candidateRepo.AssertExpectations(t)
	dispatch.AssertExpectations(t)
}

func TestCandidateService_CreateCandidate_NameDefaultsToFilename(t *testing.T) {
	ctx, svc, candidateRepo, jobRepo, uploader, dispatch := setupCandidateServiceTest()

	orgID := uuid.New()
	jobID := uuid.New()

	jobRepo.On("GetByID", ctx, orgID, jobID).
		Return(&models.Job{ID: jobID, OrgID: orgID}, nil).Once()
	uploader.On("Upload", ctx, mock.Anything, docxContentType, mock.Anything).
		Return("https://storage.googleapis.com/hatch-resumes/x.docx", nil).Once()
	candidateRepo.On("Create", ctx, mock.MatchedBy(func(r *dto.CreateCandidateRecord) bool {
		return r.Name == "grace_hopper"
	})).Return(&models.Candidate{ID: uuid.New(), Name: "grace_hopper"}, nil).Once()
	dispatch.On("Enqueue", ctx, mock.Anything).Return(&models.WorkflowJob{}, nil).Once()

	_, err := svc.CreateCandidate(ctx, orgID, uuid.New(), jobID, "", "grace_hopper.docx", "", strings.NewReader("doc"))

	require.NoError(t, err)
	candidateRepo.AssertExpectations(t)
}

func TestCandidateService_CreateCandidate_RejectsUnsupportedExtension(t *testing.T) {
	ctx, svc, candidateRepo, jobRepo, uploader, _ := setupCandidateServiceTest()

	_, err := svc.CreateCandidate(ctx, uuid.New(), uuid.New(), uuid.New(), "Bob", "resume.txt", "text/plain", strings.NewReader("hi"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrInvalidFileType))
	jobRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	candidateRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCandidateService_CreateCandidate_RejectsMismatchedContentType(t *testing.T) {
	ctx, svc, _, _, uploader, _ := setupCandidateServiceTest()

	_, err := svc.CreateCandidate(ctx, uuid.New(), uuid.New(), uuid.New(), "Bob", "resume.pdf", "image/png", strings.NewReader("hi"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrInvalidFileType))
	uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCandidateService_CreateCandidate_JobNotFound_NoUpload(t *testing.T) {
	ctx, svc, _, jobRepo, uploader, _ := setupCandidateServiceTest()

	orgID := uuid.New()
	jobID := uuid.New()
	jobRepo.On("GetByID", ctx, orgID, jobID).Return(nil, storage.ErrNotFound).Once()

	_, err := svc.CreateCandidate(ctx, orgID, uuid.New(), jobID, "Bob", "resume.pdf", "application/pdf", strings.NewReader("hi"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrNotFound))
	// The resume must not reach storage when the job does not exist.
	uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCandidateService_CreateCandidate_SurvivesDispatchFailure(t *testing.T) {
	ctx, svc, candidateRepo, jobRepo, uploader, dispatch := setupCandidateServiceTest()

	orgID := uuid.New()
	jobID := uuid.New()
	created := &models.Candidate{ID: uuid.New(), OrgID: orgID, JobID: jobID, Stage: models.StageApplied}

	jobRepo.On("GetByID", ctx, orgID, jobID).
		Return(&models.Job{ID: jobID, OrgID: orgID}, nil).Once()
	uploader.On("Upload", ctx, mock.Anything, "application/pdf", mock.Anything).
		Return("https://storage.googleapis.com/hatch-resumes/b.pdf", nil).Once()
	candidateRepo.On("Create", ctx, mock.Anything).Return(created, nil).Once()
	dispatch.On("Enqueue", ctx, mock.Anything).Return(nil, errors.New("queue down")).Once()

	candidate, err := svc.CreateCandidate(ctx, orgID, uuid.New(), jobID, "Bob", "b.pdf", "application/pdf", strings.NewReader("hi"))

	require.NoError(t, err)
	assert.Equal(t, created, candidate)
}

// setupMoveStageTest wires a candidate service whose transaction runs against
// a stub tx, so the stage-move path executes end to end over mocked repos.
func setupMoveStageTest() (context.Context, services.CandidateService, *MockCandidateRepository, *MockTxBeginner) {
	candidateRepo := new(MockCandidateRepository)
	txBeginner := new(MockTxBeginner)
	svc := services.NewCandidateService(candidateRepo, new(MockJobRepository), new(MockUploader), new(MockWorkflowService), txBeginner, testLogger())
	return context.Background(), svc, candidateRepo, txBeginner
}

func TestCandidateService_MoveStage_RejectsUnknownStage(t *testing.T) {
	ctx, svc, candidateRepo, _, _, _ := setupCandidateServiceTest()

	// An unknown tag must be rejected before anything touches the database.
	_, err := svc.MoveStage(ctx, uuid.New(), uuid.New(), &dto.MoveStageRequest{
		JobID: uuid.New(),
		Stage: "archived",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrInvalidStage))
	candidateRepo.AssertNotCalled(t, "GetByJob", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	candidateRepo.AssertNotCalled(t, "UpdateStage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCandidateService_MoveStage_Success(t *testing.T) {
	ctx, svc, candidateRepo, txBeginner := setupMoveStageTest()

	orgID := uuid.New()
	jobID := uuid.New()
	candidateID := uuid.New()
	existing := &models.Candidate{ID: candidateID, OrgID: orgID, JobID: jobID, Stage: models.StageApplied}
	moved := &models.Candidate{ID: candidateID, OrgID: orgID, JobID: jobID, Stage: models.StageInterview}

	txBeginner.On("Begin", ctx).Return(stubTx{}, nil).Once()
	candidateRepo.On("GetByJob", ctx, orgID, jobID, candidateID).Return(existing, nil).Once()
	candidateRepo.On("UpdateStage", ctx, orgID, jobID, candidateID, models.StageInterview).Return(moved, nil).Once()

	candidate, err := svc.MoveStage(ctx, orgID, candidateID, &dto.MoveStageRequest{JobID: jobID, Stage: "interview"})

	require.NoError(t, err)
	assert.Equal(t, moved, candidate)
	candidateRepo.AssertExpectations(t)
	txBeginner.AssertExpectations(t)
}

func TestCandidateService_MoveStage_SameStageIsNoOp(t *testing.T) {
	ctx, svc, candidateRepo, txBeginner := setupMoveStageTest()

	orgID := uuid.New()
	jobID := uuid.New()
	candidateID := uuid.New()
	existing := &models.Candidate{ID: candidateID, OrgID: orgID, JobID: jobID, Stage: models.StageOffer}

	txBeginner.On("Begin", ctx).Return(stubTx{}, nil).Once()
	candidateRepo.On("GetByJob", ctx, orgID, jobID, candidateID).Return(existing, nil).Once()

	candidate, err := svc.MoveStage(ctx, orgID, candidateID, &dto.MoveStageRequest{JobID: jobID, Stage: "offer"})

	// Dropping a card back onto its own column returns the row unchanged.
	require.NoError(t, err)
	assert.Equal(t, existing, candidate)
	candidateRepo.AssertNotCalled(t, "UpdateStage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCandidateService_MoveStage_WrongJobNotFound(t *testing.T) {
	ctx, svc, candidateRepo, txBeginner := setupMoveStageTest()

	orgID := uuid.New()
	candidateID := uuid.New()
	otherJobID := uuid.New()

	txBeginner.On("Begin", ctx).Return(stubTx{}, nil).Once()
	// The candidate exists, but not under the job the caller named.
	candidateRepo.On("GetByJob", ctx, orgID, otherJobID, candidateID).Return(nil, storage.ErrNotFound).Once()

	_, err := svc.MoveStage(ctx, orgID, candidateID, &dto.MoveStageRequest{JobID: otherJobID, Stage: "screening"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrNotFound))
	candidateRepo.AssertNotCalled(t, "UpdateStage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCandidateService_MoveStage_UnrecognizedStoredStageRejected(t *testing.T) {
	ctx, svc, candidateRepo, txBeginner := setupMoveStageTest()

	orgID := uuid.New()
	jobID := uuid.New()
	candidateID := uuid.New()
	// A row carrying a stage tag outside the enum cannot be transitioned.
	existing := &models.Candidate{ID: candidateID, OrgID: orgID, JobID: jobID, Stage: models.CandidateStage("on_hold")}

	txBeginner.On("Begin", ctx).Return(stubTx{}, nil).Once()
	candidateRepo.On("GetByJob", ctx, orgID, jobID, candidateID).Return(existing, nil).Once()

	_, err := svc.MoveStage(ctx, orgID, candidateID, &dto.MoveStageRequest{JobID: jobID, Stage: "interview"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrInvalidTransition))
	candidateRepo.AssertNotCalled(t, "UpdateStage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCandidateService_UpdateNotes(t *testing.T) {
	ctx, svc, candidateRepo, _, _, _ := setupCandidateServiceTest()

	orgID := uuid.New()
	candidateID := uuid.New()
	notes := ptrString("Great phone screen")
	updated := &models.Candidate{ID: candidateID, OrgID: orgID, Notes: notes}

	candidateRepo.On("UpdateNotes", ctx, orgID, candidateID, notes).Return(updated, nil).Once()

	candidate, err := svc.UpdateNotes(ctx, orgID, candidateID, &dto.UpdateNotesRequest{Notes: notes})

	require.NoError(t, err)
	assert.Equal(t, updated, candidate)
}

func TestCandidateService_GetCandidate_NotFound(t *testing.T) {
	ctx, svc, candidateRepo, _, _, _ := setupCandidateServiceTest()

	orgID := uuid.New()
	candidateID := uuid.New()
	candidateRepo.On("GetByID", ctx, orgID, candidateID).Return(nil, storage.ErrNotFound).Once()

	_, err := svc.GetCandidate(ctx, orgID, candidateID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrNotFound))
}
