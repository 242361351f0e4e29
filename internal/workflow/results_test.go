package workflow

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(jobType, result string) ResultRow {
	return ResultRow{JobType: jobType, Result: json.RawMessage(result)}
}

func TestFoldResults_AllSlots(t *testing.T) {
	insights := FoldResults([]ResultRow{
		row(JobTypeRoleFitScore, `{"fit_score": 87, "verdict": "strong", "justification": "solid overlap"}`),
		row(JobTypeAutoTagCandidate, `{"tags": ["golang", "backend"]}`),
		row(JobTypeInterviewSummary, `{"summary": "went well"}`),
	})

	require.NotNil(t, insights.RoleFitScore)
	assert.Equal(t, "87", insights.RoleFitScore.FitScore)
	assert.Equal(t, "strong", insights.RoleFitScore.Verdict)
	assert.Equal(t, "solid overlap", insights.RoleFitScore.Justification)

	require.NotNil(t, insights.AutoTags)
	assert.Equal(t, []string{"golang", "backend"}, insights.AutoTags.Tags)

	require.NotNil(t, insights.InterviewSummary)
	assert.Equal(t, "went well", insights.InterviewSummary.Summary)
}

func TestFoldResults_EmptyRows(t *testing.T) {
	insights := FoldResults(nil)
	assert.Nil(t, insights.RoleFitScore)
	assert.Nil(t, insights.AutoTags)
	assert.Nil(t, insights.InterviewSummary)
}

func TestFoldResults_NullAndEmptyResultsSkipped(t *testing.T) {
	insights := FoldResults([]ResultRow{
		{JobType: JobTypeRoleFitScore, Result: nil},
		row(JobTypeAutoTagCandidate, `null`),
		row(JobTypeInterviewSummary, ``),
	})
	assert.Nil(t, insights.RoleFitScore)
	assert.Nil(t, insights.AutoTags)
	assert.Nil(t, insights.InterviewSummary)
}

func TestFoldResults_MostRecentWins(t *testing.T) {
	// Rows arrive oldest-update first; the later row overwrites the earlier.
	insights := FoldResults([]ResultRow{
		row(JobTypeRoleFitScore, `{"fit_score": 40, "verdict": "weak"}`),
		row(JobTypeRoleFitScore, `{"fit_score": 92, "verdict": "strong"}`),
	})

	require.NotNil(t, insights.RoleFitScore)
	assert.Equal(t, "92", insights.RoleFitScore.FitScore)
	assert.Equal(t, "strong", insights.RoleFitScore.Verdict)
}

func TestFoldResults_MissingFitScoreDefaults(t *testing.T) {
	insights := FoldResults([]ResultRow{
		row(JobTypeRoleFitScore, `{"verdict": "maybe"}`),
	})

	require.NotNil(t, insights.RoleFitScore)
	assert.Equal(t, FitScoreUnknown, insights.RoleFitScore.FitScore)
	assert.Equal(t, "maybe", insights.RoleFitScore.Verdict)
	assert.Equal(t, "", insights.RoleFitScore.Justification)
}

func TestFoldResults_StringFitScore(t *testing.T) {
	// Workers have produced fit_score both as a number and as a string.
	insights := FoldResults([]ResultRow{
		row(JobTypeRoleFitScore, `{"fit_score": "73", "verdict": "good"}`),
	})

	require.NotNil(t, insights.RoleFitScore)
	assert.Equal(t, "73", insights.RoleFitScore.FitScore)
}

func TestFoldResults_MalformedResultLeavesSlotUntouched(t *testing.T) {
	insights := FoldResults([]ResultRow{
		row(JobTypeInterviewSummary, `{"summary": "first pass"}`),
		row(JobTypeInterviewSummary, `not json at all`),
	})

	// The malformed newer row must not clobber the decoded older one.
	require.NotNil(t, insights.InterviewSummary)
	assert.Equal(t, "first pass", insights.InterviewSummary.Summary)
}

func TestFoldResults_NonStringTagsStringified(t *testing.T) {
	insights := FoldResults([]ResultRow{
		row(JobTypeAutoTagCandidate, `{"tags": ["golang", 5, true]}`),
	})

	require.NotNil(t, insights.AutoTags)
	assert.Equal(t, []string{"golang", "5", "true"}, insights.AutoTags.Tags)
}

func TestFoldResults_EmptyTags(t *testing.T) {
	insights := FoldResults([]ResultRow{
		row(JobTypeAutoTagCandidate, `{}`),
	})

	require.NotNil(t, insights.AutoTags)
	assert.Empty(t, insights.AutoTags.Tags)
	assert.NotNil(t, insights.AutoTags.Tags)
}

func TestFoldResults_UnknownJobTypeIgnored(t *testing.T) {
	insights := FoldResults([]ResultRow{
		row("fetch_market_salary", `{"median": 120000}`),
	})
	assert.Nil(t, insights.RoleFitScore)
	assert.Nil(t, insights.AutoTags)
	assert.Nil(t, insights.InterviewSummary)
}

func TestCandidateScoped(t *testing.T) {
	assert.True(t, CandidateScoped(JobTypeParseResume))
	assert.True(t, CandidateScoped(JobTypeRoleFitScore))
	assert.True(t, CandidateScoped(JobTypeAutoTagCandidate))
	assert.True(t, CandidateScoped(JobTypeInterviewSummary))
	assert.False(t, CandidateScoped(JobTypeFetchMarketSalary))
}
