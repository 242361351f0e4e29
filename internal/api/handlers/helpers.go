package handlers

import (
	"fmt"

	"hatch-api/internal/models"
	"hatch-api/internal/transport/dto"
	"hatch-api/internal/workflow"

	"github.com/go-playground/validator/v10"
)

func FormatValidationErrors(err error) map[string]string {
	errorsMap := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errorsMap["error"] = "Invalid validation error type"
		return errorsMap
	}
	for _, fieldError := range validationErrors {
		fieldName := fieldError.Field()
		errorsMap[fieldName] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, fieldError.Tag())
		switch fieldError.Tag() {
		case "required":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' is required", fieldName)
		case "email":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid email address", fieldName)
		case "min":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at least %s characters long", fieldName, fieldError.Param())
		case "max":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at most %s characters long", fieldName, fieldError.Param())
		case "oneof":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be one of: %s", fieldName, fieldError.Param())
		case "uuid":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid UUID", fieldName)
		}
	}
	return errorsMap
}

// MapUserModelToUserResponse converts a models.User to a dto.UserResponse
func MapUserModelToUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		OrgID:     user.OrgID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// MapJobModelToJobResponse converts a models.Job to a dto.JobResponse
func MapJobModelToJobResponse(job *models.Job) dto.JobResponse {
	resp := dto.JobResponse{
		ID:              job.ID,
		OrgID:           job.OrgID,
		CreatedBy:       job.CreatedBy,
		Title:           job.Title,
		Department:      job.Department,
		Description:     job.Description,
		EmploymentType:  string(job.EmploymentType),
		Location:        job.Location,
		SalaryBudget:    job.SalaryBudget,
		SalaryCurrency:  job.SalaryCurrency,
		RequiredSkills:  job.RequiredSkills,
		PreferredSkills: job.PreferredSkills,
		CreatedAt:       job.CreatedAt,
		UpdatedAt:       job.UpdatedAt,
	}
	if job.ExperienceLevel != nil {
		level := string(*job.ExperienceLevel)
		resp.ExperienceLevel = &level
	}
	return resp
}

// MapCandidateModelToResponse converts a models.Candidate to a dto.CandidateResponse
func MapCandidateModelToResponse(candidate *models.Candidate) dto.CandidateResponse {
	return dto.CandidateResponse{
		ID:        candidate.ID,
		OrgID:     candidate.OrgID,
		JobID:     candidate.JobID,
		CreatedBy: candidate.CreatedBy,
		Name:      candidate.Name,
		ResumeURL: candidate.ResumeURL,
		Stage:     string(candidate.Stage),
		Notes:     candidate.Notes,
		CreatedAt: candidate.CreatedAt,
		UpdatedAt: candidate.UpdatedAt,
	}
}

// MapInsightsToResponse flattens folded enrichment results into the wire
// shape the kanban drawer renders. Missing results come back with their
// documented defaults rather than nulls.
func MapInsightsToResponse(insights workflow.CandidateInsights) dto.CandidateInsightsResponse {
	resp := dto.CandidateInsightsResponse{
		FitScore:      workflow.FitScoreUnknown,
		Verdict:       "",
		Justification: "",
		Tags:          []string{},
		Summary:       "",
	}
	if insights.RoleFitScore != nil {
		resp.FitScore = insights.RoleFitScore.FitScore
		resp.Verdict = insights.RoleFitScore.Verdict
		resp.Justification = insights.RoleFitScore.Justification
	}
	if insights.AutoTags != nil && insights.AutoTags.Tags != nil {
		resp.Tags = insights.AutoTags.Tags
	}
	if insights.InterviewSummary != nil {
		resp.Summary = insights.InterviewSummary.Summary
	}
	return resp
}
