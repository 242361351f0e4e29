package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"hatch-api/internal/models"
	"hatch-api/internal/objectstore"
	"hatch-api/internal/storage"
	"hatch-api/internal/transport/dto"
	"hatch-api/internal/workflow"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type candidateService struct {
	candidateRepo storage.CandidateRepository
	jobRepo       storage.JobRepository
	uploader      objectstore.Uploader
	dispatch      WorkflowService
	db            TxBeginner
	log           *logrus.Logger
}

// NewCandidateService creates a new instance of CandidateService.
func NewCandidateService(
	candidateRepo storage.CandidateRepository,
	jobRepo storage.JobRepository,
	uploader objectstore.Uploader,
	dispatch WorkflowService,
	db TxBeginner,
	log *logrus.Logger,
) CandidateService {
	return &candidateService{
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		uploader:      uploader,
		dispatch:      dispatch,
		db:            db,
		log:           log,
	}
}

// resumeContentTypes maps the accepted resume extensions to the content type
// stored with the object.
var resumeContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// CreateCandidate validates the resume file, uploads it, inserts the
// candidate in the initial "applied" stage, and dispatches resume parsing.
// The parse dispatch is best-effort: the candidate is already committed when
// it runs, and an enqueue failure must not roll that back.
func (s *candidateService) CreateCandidate(ctx context.Context, orgID, userID, jobID uuid.UUID, name, filename, contentType string, resume io.Reader) (*models.Candidate, error) {
	ext := strings.ToLower(path.Ext(filename))
	storedType, ok := resumeContentTypes[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s (accepted: .pdf, .docx)", ErrInvalidFileType, ext)
	}
	if contentType != "" && contentType != "application/octet-stream" && contentType != storedType {
		return nil, fmt.Errorf("%w: content type %s does not match %s", ErrInvalidFileType, contentType, ext)
	}

	// Candidate must land under a job in the caller's org; checking up front
	// keeps the resume out of storage when the job id is stale or foreign.
	job, err := s.jobRepo.GetByID(ctx, orgID, jobID)
	if err != nil {
		return nil, mapRepoError(err, "fetching job for candidate intake")
	}

	objectName := fmt.Sprintf("resumes/%s/%s/%s%s", orgID, job.ID, uuid.New(), ext)
	resumeURL, err := s.uploader.Upload(ctx, objectName, storedType, resume)
	if err != nil {
		s.log.WithError(err).Error("CandidateService: resume upload failed")
		return nil, fmt.Errorf("failed to upload resume: %w", err)
	}

	if name == "" {
		name = strings.TrimSuffix(path.Base(filename), ext)
	}

	candidate, err := s.candidateRepo.Create(ctx, &dto.CreateCandidateRecord{
		OrgID:     orgID,
		JobID:     job.ID,
		CreatedBy: userID,
		Name:      name,
		ResumeURL: resumeURL,
	})
	if err != nil {
		s.log.WithError(err).Error("CandidateService: failed to create candidate")
		return nil, mapRepoError(err, "creating candidate")
	}

	_, err = s.dispatch.Enqueue(ctx, &dto.EnqueueWorkflowJobRecord{
		OrgID:       orgID,
		JobID:       &job.ID,
		JobType:     workflow.JobTypeParseResume,
		TriggerType: workflow.TriggerResumeUploaded,
		Payload: map[string]interface{}{
			workflow.PayloadCandidateIDKey: candidate.ID.String(),
			"resume_url":                   resumeURL,
		},
	})
	if err != nil {
		s.log.WithError(err).WithField("candidate_id", candidate.ID).
			Warn("CandidateService: resume parse enqueue failed; candidate creation stands")
	}

	return candidate, nil
}

func (s *candidateService) GetCandidate(ctx context.Context, orgID, candidateID uuid.UUID) (*models.Candidate, error) {
	candidate, err := s.candidateRepo.GetByID(ctx, orgID, candidateID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("internal error getting candidate: %w", err)
	}
	return candidate, nil
}

func (s *candidateService) ListCandidates(ctx context.Context, orgID, jobID uuid.UUID) ([]models.Candidate, error) {
	candidates, err := s.candidateRepo.ListByJob(ctx, orgID, jobID)
	if err != nil {
		s.log.WithError(err).WithField("job_id", jobID).Error("CandidateService: failed to list candidates")
		return nil, fmt.Errorf("internal error listing candidates: %w", err)
	}
	return candidates, nil
}

// MoveStage performs a pipeline stage transition. The new stage tag is
// checked against the enum before anything touches the database; the write
// itself is a single conditional UPDATE keyed by (candidate, job, org), so a
// candidate outside the caller's job or tenant comes back as not found with
// its stored stage untouched.
func (s *candidateService) MoveStage(ctx context.Context, orgID, candidateID uuid.UUID, req *dto.MoveStageRequest) (*models.Candidate, error) {
	newStage := models.CandidateStage(req.Stage)
	if !models.ValidStage(newStage) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStage, req.Stage)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.WithError(err).Error("MoveStage: failed to begin transaction")
		return nil, fmt.Errorf("internal error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txRepo := s.candidateRepo.WithTx(tx)

	existing, err := txRepo.GetByJob(ctx, orgID, req.JobID, candidateID)
	if err != nil {
		return nil, mapRepoError(err, "fetching candidate for stage move")
	}

	// Dropping a card back onto its own column is a no-op, not an error.
	if existing.Stage == newStage {
		return existing, nil
	}

	if !models.CanTransitionStage(existing.Stage, newStage) {
		return nil, fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, existing.Stage, newStage)
	}

	candidate, err := txRepo.UpdateStage(ctx, orgID, req.JobID, candidateID, newStage)
	if err != nil {
		return nil, mapRepoError(err, "updating candidate stage")
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.WithError(err).Error("MoveStage: failed to commit transaction")
		return nil, fmt.Errorf("internal error committing stage move: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"candidate_id": candidate.ID,
		"from":         existing.Stage,
		"to":           candidate.Stage,
	}).Info("candidate stage moved")

	return candidate, nil
}

func (s *candidateService) UpdateNotes(ctx context.Context, orgID, candidateID uuid.UUID, req *dto.UpdateNotesRequest) (*models.Candidate, error) {
	candidate, err := s.candidateRepo.UpdateNotes(ctx, orgID, candidateID, req.Notes)
	if err != nil {
		return nil, mapRepoError(err, "updating candidate notes")
	}
	return candidate, nil
}
