package dto

import (
	"time"

	"hatch-api/internal/models"

	"github.com/google/uuid"
)

// --- Job Request DTOs ---

// CreateJobRequest defines the structure for creating a new job posting.
// Salary budget and currency are required together: either both present or
// both absent.
type CreateJobRequest struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Department      *string  `json:"department,omitempty" validate:"omitempty,max=100"`
	Description     string   `json:"description" validate:"required"`
	EmploymentType  string   `json:"employment_type" validate:"required,oneof=remote hybrid in-office"`
	Location        string   `json:"location" validate:"required,max=200"`
	ExperienceLevel *string  `json:"experience_level,omitempty" validate:"omitempty,oneof=entry mid senior"`
	SalaryBudget    *float64 `json:"salary_budget,omitempty" validate:"omitempty,gt=0,required_with=SalaryCurrency"`
	SalaryCurrency  *string  `json:"salary_currency,omitempty" validate:"omitempty,len=3,required_with=SalaryBudget"`
	RequiredSkills  *string  `json:"required_skills,omitempty"`
	PreferredSkills *string  `json:"preferred_skills,omitempty"`
}

// CreateJobRecord is the tenant-stamped insert record handed to the repository.
type CreateJobRecord struct {
	OrgID           uuid.UUID
	CreatedBy       uuid.UUID
	Title           string
	Department      *string
	Description     string
	EmploymentType  models.EmploymentType
	Location        string
	ExperienceLevel *models.ExperienceLevel
	SalaryBudget    *float64
	SalaryCurrency  *string
	RequiredSkills  *string
	PreferredSkills *string
}

// ListJobsRequest defines pagination parameters for listing an org's jobs.
type ListJobsRequest struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// JobResponse defines the standard job data returned to the client.
type JobResponse struct {
	ID              uuid.UUID `json:"id"`
	OrgID           uuid.UUID `json:"org_id"`
	CreatedBy       uuid.UUID `json:"created_by"`
	Title           string    `json:"title"`
	Department      *string   `json:"department,omitempty"`
	Description     string    `json:"description"`
	EmploymentType  string    `json:"employment_type"`
	Location        string    `json:"location"`
	ExperienceLevel *string   `json:"experience_level,omitempty"`
	SalaryBudget    *float64  `json:"salary_budget,omitempty"`
	SalaryCurrency  *string   `json:"salary_currency,omitempty"`
	RequiredSkills  *string   `json:"required_skills,omitempty"`
	PreferredSkills *string   `json:"preferred_skills,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
