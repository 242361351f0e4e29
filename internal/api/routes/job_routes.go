package routes

import (
	"hatch-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterJobRoutes registers all routes related to job postings.
// Candidate intake and listing hang off the job resource, so the candidate
// handler is needed here too.
func RegisterJobRoutes(
	rg *gin.RouterGroup,
	jobHandler handlers.JobHandlerInterface,
	candidateHandler handlers.CandidateHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	jobs := rg.Group("/jobs")
	jobs.Use(authMiddleware)
	{
		jobs.POST("", jobHandler.CreateJob)
		jobs.GET("", jobHandler.ListJobs)
		jobs.GET("/:id", jobHandler.GetJobByID)
		jobs.DELETE("/:id", jobHandler.DeleteJob)

		jobs.POST("/:id/candidates", candidateHandler.CreateCandidate) // Multipart resume intake
		jobs.GET("/:id/candidates", candidateHandler.ListCandidates)
	}
}
