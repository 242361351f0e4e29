package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// --- Candidate Stage Enum ---

// CandidateStage is a candidate's position in the hiring pipeline.
type CandidateStage string

const (
	StageApplied   CandidateStage = "applied"
	StageScreening CandidateStage = "screening"
	StageInterview CandidateStage = "interview"
	StageOffer     CandidateStage = "offer"
	StageHired     CandidateStage = "hired"
	StageRejected  CandidateStage = "rejected"
)

// AllStages lists the pipeline stages in board order.
var AllStages = []CandidateStage{
	StageApplied,
	StageScreening,
	StageInterview,
	StageOffer,
	StageHired,
	StageRejected,
}

// ValidStage reports whether s is one of the six known stage tags.
func ValidStage(s CandidateStage) bool {
	switch s {
	case StageApplied, StageScreening, StageInterview, StageOffer, StageHired, StageRejected:
		return true
	default:
		return false
	}
}

// CanTransitionStage is the single transition-validation point shared by the
// service layer and any future server-side enforcement. Moves between any two
// distinct valid stages are allowed; hired/rejected are deliberately not
// treated as terminal (product decision pending), so tightening the rules
// later is a change to this function only.
func CanTransitionStage(from, to CandidateStage) bool {
	if !ValidStage(from) || !ValidStage(to) {
		return false
	}
	return from != to
}

// Scan implements the sql.Scanner interface for CandidateStage
func (cs *CandidateStage) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan CandidateStage: value is not string or []byte")
		}
	}
	v := CandidateStage(strVal)
	if !ValidStage(v) {
		// Rows written before the enum was locked down may carry stray tags;
		// reads degrade to the initial stage instead of failing the whole list.
		*cs = StageApplied
		return nil
	}
	*cs = v
	return nil
}

// Value implements the driver.Valuer interface for CandidateStage
func (cs CandidateStage) Value() (driver.Value, error) {
	return string(cs), nil
}

// --- Employment Type Enum ---
type EmploymentType string

const (
	EmploymentRemote   EmploymentType = "remote"
	EmploymentHybrid   EmploymentType = "hybrid"
	EmploymentInOffice EmploymentType = "in-office"
)

// Scan implements the sql.Scanner interface for EmploymentType
func (et *EmploymentType) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan EmploymentType: value is not string or []byte")
		}
	}
	v := EmploymentType(strVal)
	switch v {
	case EmploymentRemote, EmploymentHybrid, EmploymentInOffice:
		*et = v
		return nil
	default:
		return fmt.Errorf("invalid EmploymentType value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for EmploymentType
func (et EmploymentType) Value() (driver.Value, error) {
	return string(et), nil
}

// --- Experience Level Enum ---
type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
)

// Scan implements the sql.Scanner interface for ExperienceLevel
func (el *ExperienceLevel) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan ExperienceLevel: value is not string or []byte")
		}
	}
	v := ExperienceLevel(strVal)
	switch v {
	case ExperienceEntry, ExperienceMid, ExperienceSenior:
		*el = v
		return nil
	default:
		return fmt.Errorf("invalid ExperienceLevel value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for ExperienceLevel
func (el ExperienceLevel) Value() (driver.Value, error) {
	return string(el), nil
}

// WorkflowStatusPending is the only status this API ever writes. Further
// states (running, done, failed, ...) are owned by the external enrichment
// worker and are stored as free-form strings.
const WorkflowStatusPending = "pending"

// Organization is the tenancy root; every other row belongs to exactly one.
type Organization struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	CreatedByUserID uuid.UUID `json:"created_by_user_id" db:"created_by_user_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// User is an auth identity plus its profile, bound to one organization.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	OrgID        uuid.UUID `json:"org_id" db:"org_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Job represents a job posting in the recruiting pipeline.
type Job struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	OrgID           uuid.UUID        `json:"org_id" db:"org_id"`
	CreatedBy       uuid.UUID        `json:"created_by" db:"created_by"`
	Title           string           `json:"title" db:"title"`
	Department      *string          `json:"department,omitempty" db:"department"`
	Description     string           `json:"description" db:"description"`
	EmploymentType  EmploymentType   `json:"employment_type" db:"employment_type"`
	Location        string           `json:"location" db:"location"`
	ExperienceLevel *ExperienceLevel `json:"experience_level,omitempty" db:"experience_level"`
	SalaryBudget    *float64         `json:"salary_budget,omitempty" db:"salary_budget"`
	SalaryCurrency  *string          `json:"salary_currency,omitempty" db:"salary_currency"`
	RequiredSkills  *string          `json:"required_skills,omitempty" db:"required_skills"`
	PreferredSkills *string          `json:"preferred_skills,omitempty" db:"preferred_skills"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" db:"updated_at"`
}

// Candidate represents an applicant attached to a job. OrgID always matches
// the parent job's OrgID; every query touching candidates filters on both.
type Candidate struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	OrgID     uuid.UUID      `json:"org_id" db:"org_id"`
	JobID     uuid.UUID      `json:"job_id" db:"job_id"`
	CreatedBy uuid.UUID      `json:"created_by" db:"created_by"`
	Name      string         `json:"name" db:"name"`
	ResumeURL string         `json:"resume_url" db:"resume_url"`
	Stage     CandidateStage `json:"stage" db:"stage"`
	Notes     *string        `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// WorkflowJob is an asynchronous unit-of-work record. This API inserts rows
// with status "pending" and a NULL result; the external enrichment worker is
// the only writer of the status and result columns after that.
type WorkflowJob struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	OrgID       uuid.UUID       `json:"org_id" db:"org_id"`
	JobID       *uuid.UUID      `json:"job_id,omitempty" db:"job_id"`
	JobType     string          `json:"job_type" db:"job_type"`
	TriggerType string          `json:"trigger_type" db:"trigger_type"`
	Payload     json.RawMessage `json:"payload,omitempty" db:"payload"`
	Status      string          `json:"status" db:"status"`
	Result      json.RawMessage `json:"result,omitempty" db:"result"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}
