package handlers

import "github.com/gin-gonic/gin"

// UserHandlerInterface defines the methods needed by the auth and user routes.
type UserHandlerInterface interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Refresh(c *gin.Context)
	Logout(c *gin.Context)
	GetMe(c *gin.Context)
}

// JobHandlerInterface defines the methods needed by the job routes.
type JobHandlerInterface interface {
	CreateJob(c *gin.Context)
	ListJobs(c *gin.Context)
	GetJobByID(c *gin.Context)
	DeleteJob(c *gin.Context)
}

// CandidateHandlerInterface defines the methods needed by the candidate routes.
type CandidateHandlerInterface interface {
	CreateCandidate(c *gin.Context)
	ListCandidates(c *gin.Context)
	GetCandidate(c *gin.Context)
	MoveStage(c *gin.Context)
	UpdateNotes(c *gin.Context)
	GetInsights(c *gin.Context)
}

// Ensure handlers implement the interfaces (compile-time check)
var _ UserHandlerInterface = (*UserHandler)(nil)
var _ JobHandlerInterface = (*JobHandler)(nil)
var _ CandidateHandlerInterface = (*CandidateHandler)(nil)
