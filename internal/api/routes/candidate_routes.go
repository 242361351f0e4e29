package routes

import (
	"hatch-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterCandidateRoutes registers all routes addressing a candidate directly.
func RegisterCandidateRoutes(
	rg *gin.RouterGroup,
	candidateHandler handlers.CandidateHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	candidates := rg.Group("/candidates")
	candidates.Use(authMiddleware)
	{
		candidates.GET("/:id", candidateHandler.GetCandidate)
		candidates.PATCH("/:id/stage", candidateHandler.MoveStage)
		candidates.PATCH("/:id/notes", candidateHandler.UpdateNotes)
		candidates.GET("/:id/insights", candidateHandler.GetInsights)
	}
}
