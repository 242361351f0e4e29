package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Candidate Request DTOs ---

// CreateCandidateRecord is the insert record for a candidate. The resume has
// already been uploaded to object storage by the time this exists.
type CreateCandidateRecord struct {
	OrgID     uuid.UUID
	JobID     uuid.UUID
	CreatedBy uuid.UUID
	Name      string
	ResumeURL string
}

// MoveStageRequest defines the structure for moving a candidate between
// pipeline stages. The stage tag is validated against the six-element enum
// before any write is attempted.
type MoveStageRequest struct {
	JobID uuid.UUID `json:"job_id" validate:"required"`
	Stage string    `json:"stage" validate:"required,oneof=applied screening interview offer hired rejected"`
}

// UpdateNotesRequest defines the structure for editing candidate notes.
type UpdateNotesRequest struct {
	Notes *string `json:"notes" validate:"omitempty,max=10000"`
}

// CandidateResponse defines the standard candidate data returned to the client.
type CandidateResponse struct {
	ID        uuid.UUID `json:"id"`
	OrgID     uuid.UUID `json:"org_id"`
	JobID     uuid.UUID `json:"job_id"`
	CreatedBy uuid.UUID `json:"created_by"`
	Name      string    `json:"name"`
	ResumeURL string    `json:"resume_url"`
	Stage     string    `json:"stage"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
