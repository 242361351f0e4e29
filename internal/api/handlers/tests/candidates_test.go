package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hatch-api/internal/api/handlers"
	"hatch-api/internal/api/middleware"
	"hatch-api/internal/api/routes"
	"hatch-api/internal/models"
	"hatch-api/internal/services"
	"hatch-api/internal/transport/dto"
	"hatch-api/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func setupCandidateRouter(t *testing.T, candidateSvc services.CandidateService, workflowSvc services.WorkflowService) (*gin.Engine, uuid.UUID, uuid.UUID, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	apiV1 := router.Group("/api/v1")

	handler := handlers.NewCandidateHandler(candidateSvc, workflowSvc, validator.New())
	authMiddleware := middleware.JWTAuthMiddleware(testJWTSecret)
	routes.RegisterCandidateRoutes(apiV1, handler, authMiddleware)

	userID := uuid.New()
	orgID := uuid.New()
	token, err := generateTestToken(userID, orgID, testJWTSecret, time.Minute)
	require.NoError(t, err)

	return router, userID, orgID, token
}

func doRequest(router *gin.Engine, method, path, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMoveStage_Success(t *testing.T) {
	candidateSvc := new(MockCandidateService)
	workflowSvc := new(MockWorkflowService)
	router, _, orgID, token := setupCandidateRouter(t, candidateSvc, workflowSvc)

	candidateID := uuid.New()
	jobID := uuid.New()
	moved := &models.Candidate{
		ID:    candidateID,
		OrgID: orgID,
		JobID: jobID,
		Name:  "Ada",
		Stage: models.StageInterview,
	}

	candidateSvc.On("MoveStage", mock.Anything, orgID, candidateID, mock.MatchedBy(func(req *dto.MoveStageRequest) bool {
		return req.JobID == jobID && req.Stage == "interview"
	})).Return(moved, nil).Once()

	body, _ := json.Marshal(gin.H{"job_id": jobID, "stage": "interview"})
	w := doRequest(router, http.MethodPatch, "/api/v1/candidates/"+candidateID.String()+"/stage", token, body)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.CandidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "interview", resp.Stage)
	candidateSvc.AssertExpectations(t)
}

func TestMoveStage_UnknownStageRejected(t *testing.T) {
	candidateSvc := new(MockCandidateService)
	workflowSvc := new(MockWorkflowService)
	router, _, _, token := setupCandidateRouter(t, candidateSvc, workflowSvc)

	body, _ := json.Marshal(gin.H{"job_id": uuid.New(), "stage": "archived"})
	w := doRequest(router, http.MethodPatch, "/api/v1/candidates/"+uuid.New().String()+"/stage", token, body)

	// Rejected by request validation; the service is never consulted.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	candidateSvc.AssertNotCalled(t, "MoveStage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMoveStage_CandidateNotFound(t *testing.T) {
	candidateSvc := new(MockCandidateService)
	workflowSvc := new(MockWorkflowService)
	router, _, orgID, token := setupCandidateRouter(t, candidateSvc, workflowSvc)

	candidateID := uuid.New()
	candidateSvc.On("MoveStage", mock.Anything, orgID, candidateID, mock.Anything).
		Return(nil, services.ErrNotFound).Once()

	body, _ := json.Marshal(gin.H{"job_id": uuid.New(), "stage": "offer"})
	w := doRequest(router, http.MethodPatch, "/api/v1/candidates/"+candidateID.String()+"/stage", token, body)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMoveStage_MissingToken(t *testing.T) {
	candidateSvc := new(MockCandidateService)
	workflowSvc := new(MockWorkflowService)
	router, _, _, _ := setupCandidateRouter(t, candidateSvc, workflowSvc)

	body, _ := json.Marshal(gin.H{"job_id": uuid.New(), "stage": "offer"})
	w := doRequest(router, http.MethodPatch, "/api/v1/candidates/"+uuid.New().String()+"/stage", "", body)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetCandidate_Success(t *testing.T) {
	candidateSvc := new(MockCandidateService)
	workflowSvc := new(MockWorkflowService)
	router, _, orgID, token := setupCandidateRouter(t, candidateSvc, workflowSvc)

	candidateID := uuid.New()
	candidateSvc.On("GetCandidate", mock.Anything, orgID, candidateID).
		Return(&models.Candidate{ID: candidateID, OrgID: orgID, Name: "Ada", Stage: models.StageApplied}, nil).Once()

	w := doRequest(router, http.MethodGet, "/api/v1/candidates/"+candidateID.String(), token, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.CandidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, candidateID, resp.ID)
	assert.Equal(t, "applied", resp.Stage)
}

func TestGetCandidate_InvalidID(t *testing.T) {
	candidateSvc := new(MockCandidateService)
	workflowSvc := new(MockWorkflowService)
	router, _, _, token := setupCandidateRouter(t, candidateSvc, workflowSvc)

	w := doRequest(router, http.MethodGet, "/api/v1/candidates/not-a-uuid", token, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetInsights_DefaultsWhenNoResults(t *testing.T) {
	candidateSvc := new(MockCandidateService)
	workflowSvc := new(MockWorkflowService)
	router, _, orgID, token := setupCandidateRouter(t, candidateSvc, workflowSvc)

	candidateID := uuid.New()
	workflowSvc.On("CandidateInsights", mock.Anything, orgID, candidateID).
		Return(workflow.CandidateInsights{}, nil).Once()

	w := doRequest(router, http.MethodGet, "/api/v1/candidates/"+candidateID.String()+"/insights", token, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.CandidateInsightsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, workflow.FitScoreUnknown, resp.FitScore)
	assert.Equal(t, "", resp.Verdict)
	assert.Equal(t, "", resp.Summary)
	assert.NotNil(t, resp.Tags)
	assert.Empty(t, resp.Tags)
}

func TestGetInsights_PopulatedResults(t *testing.T) {
	candidateSvc := new(MockCandidateService)
	workflowSvc := new(MockWorkflowService)
	router, _, orgID, token := setupCandidateRouter(t, candidateSvc, workflowSvc)

	candidateID := uuid.New()
	workflowSvc.On("CandidateInsights", mock.Anything, orgID, candidateID).
		Return(workflow.CandidateInsights{
			RoleFitScore:     &workflow.RoleFitScore{FitScore: "88", Verdict: "strong", Justification: "good overlap"},
			AutoTags:         &workflow.AutoTags{Tags: []string{"golang", "backend"}},
			InterviewSummary: &workflow.InterviewSummary{Summary: "positive"},
		}, nil).Once()

	w := doRequest(router, http.MethodGet, "/api/v1/candidates/"+candidateID.String()+"/insights", token, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.CandidateInsightsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "88", resp.FitScore)
	assert.Equal(t, "strong", resp.Verdict)
	assert.Equal(t, []string{"golang", "backend"}, resp.Tags)
	assert.Equal(t, "positive", resp.Summary)
}

func TestUpdateNotes_Success(t *testing.T) {
	candidateSvc := new(MockCandidateService)
	workflowSvc := new(MockWorkflowService)
	router, _, orgID, token := setupCandidateRouter(t, candidateSvc, workflowSvc)

	candidateID := uuid.New()
	notes := "Strong phone screen"
	updated := &models.Candidate{ID: candidateID, OrgID: orgID, Stage: models.StageScreening, Notes: &notes}

	candidateSvc.On("UpdateNotes", mock.Anything, orgID, candidateID, mock.MatchedBy(func(req *dto.UpdateNotesRequest) bool {
		return req.Notes != nil && *req.Notes == notes
	})).Return(updated, nil).Once()

	body, _ := json.Marshal(gin.H{"notes": notes})
	w := doRequest(router, http.MethodPatch, "/api/v1/candidates/"+candidateID.String()+"/notes", token, body)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.CandidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Notes)
	assert.Equal(t, notes, *resp.Notes)
}
