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

// JobHandler holds dependencies for job posting operations.
type JobHandler struct {
	service   services.JobService
	validator *validator.Validate
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobService, validate *validator.Validate) *JobHandler {
	return &JobHandler{service: service, validator: validate}
}

// CreateJob godoc
// @Summary      Create a new job posting
// @Description  Adds a job posting to the caller's organization and dispatches a market salary lookup.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job body      dto.CreateJobRequest true  "Job details"
// @Success      201 {object}  dto.JobResponse "Job created successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) CreateJob(c *gin.Context) {
	session, err := middleware.GetSessionFromContext(c)
	if err != nil {
		log.Printf("Error getting session from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	createdJob, err := h.service.CreateJob(c.Request.Context(), session.OrgID, session.UserID, &req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error creating job: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		return
	}

	c.JSON(http.StatusCreated, MapJobModelToJobResponse(createdJob))
}

// ListJobs godoc
// @Summary      List job postings
// @Description  Retrieves the caller organization's job postings, newest first. Supports pagination.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        limit query int false "Pagination limit" default(20)
// @Param        offset query int false "Pagination offset" default(0)
// @Success      200 {array}   dto.JobResponse "Successfully retrieved list of jobs"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid query parameters"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListJobs(c *gin.Context) {
	session, err := middleware.GetSessionFromContext(c)
	if err != nil {
		log.Printf("Error getting session from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if req.Limit <= 0 {
		req.Limit = 20
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	jobs, err := h.service.ListJobs(c.Request.Context(), session.OrgID, &req)
	if err != nil {
		log.Printf("Error listing jobs for org %s: %v", session.OrgID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve jobs"})
		return
	}

	jobResponses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		jobResponses = append(jobResponses, MapJobModelToJobResponse(&jobs[i]))
	}

	c.JSON(http.StatusOK, jobResponses)
}

// GetJobByID godoc
// @Summary      Get a job by ID
// @Description  Retrieves a job posting belonging to the caller's organization.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Job ID" Format(uuid)
// @Success      200 {object}  dto.JobResponse "Successfully retrieved job"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) GetJobByID(c *gin.Context) {
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

	job, err := h.service.GetJobByID(c.Request.Context(), session.OrgID, jobID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		} else {
			log.Printf("Error fetching job by ID %s: %v", idStr, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve job"})
		}
		return
	}

	c.JSON(http.StatusOK, MapJobModelToJobResponse(job))
}

// DeleteJob godoc
// @Summary      Delete a job
// @Description  Deletes a job posting. Allowed only for the user who created it.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Job ID" Format(uuid)
// @Success      204 {object}  nil "Job deleted successfully"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Only the creator may delete a job"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) DeleteJob(c *gin.Context) {
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

	err = h.service.DeleteJob(c.Request.Context(), session.OrgID, session.UserID, jobID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		} else if errors.Is(err, services.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: Only the job creator may delete it"})
		} else {
			log.Printf("Error deleting job %s: %v", jobID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete job"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
