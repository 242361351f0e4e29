// Package workflow defines the contract between this API and the external
// enrichment worker: the job/trigger tags this side dispatches, and the typed
// decoding of the opaque result payloads the worker writes back.
package workflow

// Job type tags. The set is extensible on the worker side; these are the ones
// this API dispatches or reads.
const (
	JobTypeParseResume       = "parse_resume"
	JobTypeFetchMarketSalary = "fetch_market_salary"
	JobTypeRoleFitScore      = "role_fit_score"
	JobTypeAutoTagCandidate  = "auto_tag_candidate"
	JobTypeInterviewSummary  = "post_interview_summary"
)

// Trigger type tags describing what caused a dispatch.
const (
	TriggerResumeUploaded = "resume_uploaded"
	TriggerJobCreated     = "job_created"
)

// PayloadCandidateIDKey is the fixed payload key carrying the candidate id
// for candidate-scoped job types. It is the join key the insights reader
// filters on, so dispatchers must always populate it.
const PayloadCandidateIDKey = "candidate_id"

// CandidateResultTypes is the allow-list of job types the candidate insights
// reader joins on.
var CandidateResultTypes = []string{
	JobTypeRoleFitScore,
	JobTypeAutoTagCandidate,
	JobTypeInterviewSummary,
}

// CandidateScoped reports whether a job type's payload must carry the
// candidate id join key.
func CandidateScoped(jobType string) bool {
	switch jobType {
	case JobTypeParseResume, JobTypeRoleFitScore, JobTypeAutoTagCandidate, JobTypeInterviewSummary:
		return true
	default:
		return false
	}
}
