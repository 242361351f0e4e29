package dto

import (
	"github.com/google/uuid"
)

// EnqueueWorkflowJobRecord is the insert record for a pending workflow job.
// Status is always written as "pending" and result as NULL; only the external
// enrichment worker mutates the row after insert.
type EnqueueWorkflowJobRecord struct {
	OrgID       uuid.UUID
	JobID       *uuid.UUID
	JobType     string
	TriggerType string
	Payload     map[string]interface{}
}

// CandidateInsightsResponse is the flattened enrichment view returned for a
// candidate. Every field carries a defined default, so the client never sees
// nulls for results the worker has not produced yet.
type CandidateInsightsResponse struct {
	FitScore      string   `json:"fit_score"`
	Verdict       string   `json:"verdict"`
	Justification string   `json:"justification"`
	Tags          []string `json:"tags"`
	Summary       string   `json:"summary"`
}
