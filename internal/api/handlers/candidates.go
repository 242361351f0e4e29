package handlers

import (
	"errors"
	"log"
	"net/http"

	"hatch-api/internal/api/middleware"
	"hatch-api/internal/services"
	"hatch-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// maxResumeSize caps resume uploads at 10 MiB.
const maxResumeSize = 10 << 20

// CandidateHandler holds dependencies for candidate operations.
type CandidateHandler struct {
	service   services.CandidateService
	workflow  services.WorkflowService
	validator *validator.Validate
}

// NewCandidateHandler creates a new CandidateHandler.
func NewCandidateHandler(service services.CandidateService, workflow services.WorkflowService, validate *validator.Validate) *CandidateHandler {
	return &CandidateHandler{service: service, workflow: workflow, validator: validate}
}

// CreateCandidate godoc
// @Summary      Add a candidate to a job
// @Description  Accepts a multipart form with a resume file (.pdf or .docx) and an optional name, stores the resume, creates the candidate in the 'applied' stage, and dispatches resume parsing.
// @Tags         candidates
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Job ID" Format(uuid)
// @Param        resume formData file true "Resume file (.pdf or .docx)"
// @Param        name formData string false "Candidate name (defaults to the file name)"
// @Success      201 {object}  dto.CandidateResponse "Candidate created successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Missing or unsupported resume file"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id}/candidates [post]
// @Security     BearerAuth
func (h *CandidateHandler) CreateCandidate(c *gin.Context) {
	session, err := middleware.GetSessionFromContext(c)
	if err != nil {
		log.Printf("Error getting session from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idStr := c.Param("id")
	jobID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resume file is required"})
		return
	}
	if fileHeader.Size > maxResumeSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resume file exceeds the 10MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded resume: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read resume file"})
		return
	}
	defer file.Close()

	name := c.PostForm("name")

	candidate, err := h.service.CreateCandidate(
		c.Request.Context(),
		session.OrgID,
		session.UserID,
		jobID,
		name,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidFileType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		default:
			log.Printf("Error creating candidate for job %s: %v", jobID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create candidate"})
		}
		return
	}

	c.JSON(http.StatusCreated, MapCandidateModelToResponse(candidate))
}

// ListCandidates godoc
// @Summary      List candidates for a job
// @Description  Retrieves all candidates attached to a job in the caller's organization.
// @Tags         candidates
// @Produce      json
// @Param        id path string true "Job ID" Format(uuid)
// @Success      200 {array}   dto.CandidateResponse "Successfully retrieved candidates"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id}/candidates [get]
// @Security     BearerAuth
func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	session, err := middleware.GetSessionFromContext(c)
	if err != nil {
		log.Printf("Error getting session from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idStr := c.Param("id")
	jobID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	candidates, err := h.service.ListCandidates(c.Request.Context(), session.OrgID, jobID)
	if err != nil {
		log.Printf("Error listing candidates for job %s: %v", jobID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve candidates"})
		return
	}

	candidateResponses := make([]dto.CandidateResponse, 0, len(candidates))
	for i := range candidates {
		candidateResponses = append(candidateResponses, MapCandidateModelToResponse(&candidates[i]))
	}

	c.JSON(http.StatusOK, candidateResponses)
}

// GetCandidate godoc
// @Summary      Get a candidate by ID
// @Description  Retrieves a candidate belonging to the caller's organization.
// @Tags         candidates
// @Produce      json
// @Param        id path string true "Candidate ID" Format(uuid)
// @Success      200 {object}  dto.CandidateResponse "Successfully retrieved candidate"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      404 {object}  map[string]string "Candidate Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /candidates/{id} [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	session, err := middleware.GetSessionFromContext(c)
	if err != nil {
		log.Printf("Error getting session from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idStr := c.Param("id")
	candidateID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate ID format"})
		return
	}

	candidate, err := h.service.GetCandidate(c.Request.Context(), session.OrgID, candidateID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		} else {
			log.Printf("Error fetching candidate %s: %v", idStr, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve candidate"})
		}
		return
	}

	c.JSON(http.StatusOK, MapCandidateModelToResponse(candidate))
}

// MoveStage godoc
// @Summary      Move a candidate between pipeline stages
// @Description  Updates the candidate's stage on the kanban board. The stage must be one of the six pipeline stages, and the candidate must belong to the given job within the caller's organization.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id path string true "Candidate ID" Format(uuid)
// @Param        move body dto.MoveStageRequest true "Target job and stage"
// @Success      200 {object}  dto.CandidateResponse "Stage updated successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Unknown stage or invalid transition"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      404 {object}  map[string]string "Candidate Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /candidates/{id}/stage [patch]
// @Security     BearerAuth
func (h *CandidateHandler) MoveStage(c *gin.Context) {
	session, err := middleware.GetSessionFromContext(c)
	if err != nil {
		log.Printf("Error getting session from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idStr := c.Param("id")
	candidateID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate ID format"})
		return
	}

	var req dto.MoveStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	candidate, err := h.service.MoveStage(c.Request.Context(), session.OrgID, candidateID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStage), errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		default:
			log.Printf("Error moving candidate %s stage: %v", candidateID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update candidate stage"})
		}
		return
	}

	c.JSON(http.StatusOK, MapCandidateModelToResponse(candidate))
}

// UpdateNotes godoc
// @Summary      Update candidate notes
// @Description  Replaces the free-form notes on a candidate. Sending null clears them.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id path string true "Candidate ID" Format(uuid)
// @Param        notes body dto.UpdateNotesRequest true "Notes"
// @Success      200 {object}  dto.CandidateResponse "Notes updated successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      404 {object}  map[string]string "Candidate Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /candidates/{id}/notes [patch]
// @Security     BearerAuth
func (h *CandidateHandler) UpdateNotes(c *gin.Context) {
	session, err := middleware.GetSessionFromContext(c)
	if err != nil {
		log.Printf("Error getting session from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idStr := c.Param("id")
	candidateID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate ID format"})
		return
	}

	var req dto.UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	candidate, err := h.service.UpdateNotes(c.Request.Context(), session.OrgID, candidateID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		} else {
			log.Printf("Error updating notes for candidate %s: %v", candidateID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update candidate notes"})
		}
		return
	}

	c.JSON(http.StatusOK, MapCandidateModelToResponse(candidate))
}

// GetInsights godoc
// @Summary      Get AI enrichment insights for a candidate
// @Description  Returns the folded enrichment results (role fit score, auto tags, interview summary) for a candidate. Results the worker has not produced yet come back as defaults, never as an error.
// @Tags         candidates
// @Produce      json
// @Param        id path string true "Candidate ID" Format(uuid)
// @Success      200 {object}  dto.CandidateInsightsResponse "Enrichment insights"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /candidates/{id}/insights [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetInsights(c *gin.Context) {
	session, err := middleware.GetSessionFromContext(c)
	if err != nil {
		log.Printf("Error getting session from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idStr := c.Param("id")
	candidateID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate ID format"})
		return
	}

	insights, err := h.workflow.CandidateInsights(c.Request.Context(), session.OrgID, candidateID)
	if err != nil {
		log.Printf("Error fetching insights for candidate %s: %v", candidateID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve candidate insights"})
		return
	}

	c.JSON(http.StatusOK, MapInsightsToResponse(insights))
}
