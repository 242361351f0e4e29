package routes

import (
	"log"

	"hatch-api/internal/api/handlers"
	"hatch-api/internal/api/middleware"
	"hatch-api/internal/app"
	"hatch-api/internal/services"
	"hatch-api/internal/storage/postgres"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {

	// --- Base API Group ---
	apiV1 := router.Group("/api/v1")

	// --- Repositories ---
	orgRepo := postgres.NewOrganizationRepo(app.DBPool)
	userRepo := postgres.NewUserRepo(app.DBPool)
	jobRepo := postgres.NewJobRepo(app.DBPool)
	candidateRepo := postgres.NewCandidateRepo(app.DBPool)
	workflowRepo := postgres.NewWorkflowJobRepo(app.DBPool)

	// --- Services ---
	workflowService := services.NewWorkflowService(workflowRepo, app.Logger)
	userService := services.NewUserService(
		userRepo, orgRepo, app.DBPool, app.RedisClient, app.Logger,
		app.Config.JWT.Secret, app.Config.JWT.Expiration, app.Config.JWT.RefreshExpiration,
	)
	jobService := services.NewJobService(jobRepo, workflowService, app.Logger)
	candidateService := services.NewCandidateService(
		candidateRepo, jobRepo, app.Uploader, workflowService, app.DBPool, app.Logger,
	)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, app.Validator)
	jobHandler := handlers.NewJobHandler(jobService, app.Validator)
	candidateHandler := handlers.NewCandidateHandler(candidateService, workflowService, app.Validator)
	healthHandler := handlers.NewHealthHandler(app.DBPool, app.RedisClient)

	// --- Middleware ---
	authMiddleware := middleware.JWTAuthMiddleware(app.Config.JWT.Secret)

	// --- Register Resource Routes ---
	RegisterUserRoutes(apiV1, userHandler, authMiddleware)
	RegisterJobRoutes(apiV1, jobHandler, candidateHandler, authMiddleware)
	RegisterCandidateRoutes(apiV1, candidateHandler, authMiddleware)

	// --- Health Check ---
	router.GET("/health", healthHandler.HealthCheck)

	log.Println("Configuring Swagger UI handler")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
