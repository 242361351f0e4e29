package workflow

import "encoding/json"

// FitScoreUnknown is the sentinel shown when a role-fit result arrived
// without a usable fit_score field.
const FitScoreUnknown = "N/A"

// RoleFitScore is the decoded result of a role_fit_score job.
type RoleFitScore struct {
	// FitScore is a number rendered as a string, or FitScoreUnknown when the
	// worker omitted it.
	FitScore      string `json:"fit_score"`
	Verdict       string `json:"verdict"`
	Justification string `json:"justification"`
}

// AutoTags is the decoded result of an auto_tag_candidate job.
type AutoTags struct {
	Tags []string `json:"tags"`
}

// InterviewSummary is the decoded result of a post_interview_summary job.
type InterviewSummary struct {
	Summary string `json:"summary"`
}

// CandidateInsights is the fixed-shape view over a candidate's enrichment
// results: one optional slot per allow-listed job type. A nil slot means the
// worker has not (yet) produced that result.
type CandidateInsights struct {
	RoleFitScore     *RoleFitScore     `json:"role_fit_score"`
	AutoTags         *AutoTags         `json:"auto_tags"`
	InterviewSummary *InterviewSummary `json:"interview_summary"`
}

// ResultRow is the projection of a workflow_jobs row the insights reader
// consumes: the type tag and the raw result column.
type ResultRow struct {
	JobType string
	Result  json.RawMessage
}

// FoldResults builds CandidateInsights from raw workflow rows. Rows must be
// ordered oldest-update first: when duplicate rows exist for the same job
// type, the later (most recently updated) one overwrites the earlier, so the
// freshest result wins. Rows with NULL, empty, or malformed results leave
// their slot untouched; individual missing fields degrade to safe defaults
// rather than failing the whole read.
func FoldResults(rows []ResultRow) CandidateInsights {
	var insights CandidateInsights
	for _, row := range rows {
		if len(row.Result) == 0 || string(row.Result) == "null" {
			continue
		}
		switch row.JobType {
		case JobTypeRoleFitScore:
			if d, ok := decodeRoleFitScore(row.Result); ok {
				insights.RoleFitScore = d
			}
		case JobTypeAutoTagCandidate:
			if d, ok := decodeAutoTags(row.Result); ok {
				insights.AutoTags = d
			}
		case JobTypeInterviewSummary:
			if d, ok := decodeInterviewSummary(row.Result); ok {
				insights.InterviewSummary = d
			}
		}
	}
	return insights
}

func decodeRoleFitScore(raw json.RawMessage) (*RoleFitScore, bool) {
	var fields struct {
		FitScore      *json.Number `json:"fit_score"`
		Verdict       *string      `json:"verdict"`
		Justification *string      `json:"justification"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		// Retry with fit_score as a bare string before giving up on the row.
		var loose struct {
			FitScore      *string `json:"fit_score"`
			Verdict       *string `json:"verdict"`
			Justification *string `json:"justification"`
		}
		if err := json.Unmarshal(raw, &loose); err != nil {
			return nil, false
		}
		return &RoleFitScore{
			FitScore:      stringOr(loose.FitScore, FitScoreUnknown),
			Verdict:       stringOr(loose.Verdict, ""),
			Justification: stringOr(loose.Justification, ""),
		}, true
	}

	score := FitScoreUnknown
	if fields.FitScore != nil {
		score = fields.FitScore.String()
	}
	return &RoleFitScore{
		FitScore:      score,
		Verdict:       stringOr(fields.Verdict, ""),
		Justification: stringOr(fields.Justification, ""),
	}, true
}

func decodeAutoTags(raw json.RawMessage) (*AutoTags, bool) {
	var fields struct {
		Tags []json.RawMessage `json:"tags"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}

	tags := make([]string, 0, len(fields.Tags))
	for _, t := range fields.Tags {
		var s string
		if err := json.Unmarshal(t, &s); err != nil {
			// Non-string entries are stringified as-is, matching the
			// tolerant reads the result column has always needed.
			s = string(t)
		}
		tags = append(tags, s)
	}
	return &AutoTags{Tags: tags}, true
}

func decodeInterviewSummary(raw json.RawMessage) (*InterviewSummary, bool) {
	var fields struct {
		Summary *string `json:"summary"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}
	return &InterviewSummary{Summary: stringOr(fields.Summary, "")}, true
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
