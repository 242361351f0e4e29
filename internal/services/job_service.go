package services

import (
	"context"
	"errors"
	"fmt"

	"hatch-api/internal/models"
	"hatch-api/internal/storage"
	"hatch-api/internal/transport/dto"
	"hatch-api/internal/workflow"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type jobService struct {
	jobRepo  storage.JobRepository
	dispatch WorkflowService
	log      *logrus.Logger
}

// NewJobService creates a new instance of JobService.
func NewJobService(jobRepo storage.JobRepository, dispatch WorkflowService, log *logrus.Logger) JobService {
	return &jobService{jobRepo: jobRepo, dispatch: dispatch, log: log}
}

// CreateJob persists the posting, then dispatches a market-salary enrichment
// job. The dispatch is best-effort: the posting is already committed, so an
// enqueue failure is logged and swallowed rather than failing the request.
func (s *jobService) CreateJob(ctx context.Context, orgID, userID uuid.UUID, req *dto.CreateJobRequest) (*models.Job, error) {
	record := &dto.CreateJobRecord{
		OrgID:           orgID,
		CreatedBy:       userID,
		Title:           req.Title,
		Department:      req.Department,
		Description:     req.Description,
		EmploymentType:  models.EmploymentType(req.EmploymentType),
		Location:        req.Location,
		SalaryBudget:    req.SalaryBudget,
		SalaryCurrency:  req.SalaryCurrency,
		RequiredSkills:  req.RequiredSkills,
		PreferredSkills: req.PreferredSkills,
	}
	if req.ExperienceLevel != nil {
		level := models.ExperienceLevel(*req.ExperienceLevel)
		record.ExperienceLevel = &level
	}

	job, err := s.jobRepo.Create(ctx, record)
	if err != nil {
		s.log.WithError(err).Error("JobService: failed to create job")
		return nil, mapRepoError(err, "creating job")
	}

	// Salary lookups assume mid-level when the posting doesn't say.
	experienceLevel := "mid"
	if job.ExperienceLevel != nil {
		experienceLevel = string(*job.ExperienceLevel)
	}

	_, err = s.dispatch.Enqueue(ctx, &dto.EnqueueWorkflowJobRecord{
		OrgID:       orgID,
		JobID:       &job.ID,
		JobType:     workflow.JobTypeFetchMarketSalary,
		TriggerType: workflow.TriggerJobCreated,
		Payload: map[string]interface{}{
			"job_title":        job.Title,
			"experience_level": experienceLevel,
			"location":         job.Location,
		},
	})
	if err != nil {
		s.log.WithError(err).WithField("job_id", job.ID).
			Warn("JobService: market salary enqueue failed; job creation stands")
	}

	return job, nil
}

func (s *jobService) GetJobByID(ctx context.Context, orgID, jobID uuid.UUID) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, orgID, jobID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("internal error getting job: %w", err)
	}
	return job, nil
}

func (s *jobService) ListJobs(ctx context.Context, orgID uuid.UUID, req *dto.ListJobsRequest) ([]models.Job, error) {
	jobs, err := s.jobRepo.ListByOrg(ctx, orgID, req.Limit, req.Offset)
	if err != nil {
		s.log.WithError(err).WithField("org_id", orgID).Error("JobService: failed to list jobs")
		return nil, fmt.Errorf("internal error listing jobs: %w", err)
	}
	return jobs, nil
}

func (s *jobService) DeleteJob(ctx context.Context, orgID, userID, jobID uuid.UUID) error {
	existing, err := s.jobRepo.GetByID(ctx, orgID, jobID)
	if err != nil {
		return mapRepoError(err, "fetching job for delete check")
	}

	if existing.CreatedBy != userID {
		s.log.WithFields(logrus.Fields{"job_id": jobID, "user_id": userID}).
			Warn("DeleteJob: forbidden attempt by non-creator")
		return ErrForbidden
	}

	if err := s.jobRepo.Delete(ctx, orgID, jobID); err != nil {
		return mapRepoError(err, "deleting job")
	}
	return nil
}
