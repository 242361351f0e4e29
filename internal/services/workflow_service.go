package services

import (
	"context"
	"fmt"

	"hatch-api/internal/models"
	"hatch-api/internal/storage"
	"hatch-api/internal/transport/dto"
	"hatch-api/internal/workflow"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type workflowService struct {
	repo storage.WorkflowJobRepository
	log  *logrus.Logger
}

// NewWorkflowService creates a new instance of WorkflowService.
func NewWorkflowService(repo storage.WorkflowJobRepository, log *logrus.Logger) WorkflowService {
	return &workflowService{repo: repo, log: log}
}

// Enqueue records a single pending workflow job for the external enrichment
// worker. It validates the dispatch contract but performs no work itself, and
// it never retries: at-most-once per triggering event.
func (s *workflowService) Enqueue(ctx context.Context, req *dto.EnqueueWorkflowJobRecord) (*models.WorkflowJob, error) {
	if req.JobType == "" || req.TriggerType == "" {
		return nil, fmt.Errorf("%w: job_type and trigger_type are required", ErrValidation)
	}
	if workflow.CandidateScoped(req.JobType) {
		id, ok := req.Payload[workflow.PayloadCandidateIDKey].(string)
		if !ok || id == "" {
			return nil, fmt.Errorf("%w: payload for %s must carry %s", ErrValidation, req.JobType, workflow.PayloadCandidateIDKey)
		}
	}

	wj, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "enqueueing workflow job")
	}

	s.log.WithFields(logrus.Fields{
		"workflow_job_id": wj.ID,
		"job_type":        wj.JobType,
		"trigger_type":    wj.TriggerType,
		"org_id":          wj.OrgID,
	}).Info("workflow job enqueued")

	return wj, nil
}

// CandidateInsights reads the enrichment results for one candidate. It is a
// pure read over whatever the worker has written so far: rows that have not
// completed (or never will) simply leave their slot empty.
func (s *workflowService) CandidateInsights(ctx context.Context, orgID, candidateID uuid.UUID) (workflow.CandidateInsights, error) {
	rows, err := s.repo.ResultsForCandidate(ctx, orgID, candidateID, workflow.CandidateResultTypes)
	if err != nil {
		return workflow.CandidateInsights{}, mapRepoError(err, "reading candidate insights")
	}
	return workflow.FoldResults(rows), nil
}
