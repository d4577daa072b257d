package aggregation

import (
	"testing"

	"github.com/de-tools/eval-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakdownByQuestion(t *testing.T) {
	questions := []domain.QuestionScore{
		{QuestionCode: "Q10", QuestionID: "q10", SourceID: "s1", OverallScore: 90},
		{QuestionCode: "Q2", QuestionID: "q2", SourceID: "s1", OverallScore: 40},
		{QuestionCode: "Q2", QuestionID: "q2", SourceID: "s2", OverallScore: 60},
		{QuestionCode: "Q10", QuestionID: "q10", SourceID: "s2", OverallScore: 30},
		{QuestionCode: "Q2", QuestionID: "q2", SourceID: "s3", OverallScore: 80},
	}

	got := BreakdownByQuestion(questions)

	require.Len(t, got, 2)
	assert.Equal(t, "Q2", got[0].QuestionCode)
	assert.InDelta(t, 60.0, got[0].Average, 1e-9)
	assert.Equal(t, 40.0, got[0].Min)
	assert.Equal(t, 80.0, got[0].Max)
	assert.Equal(t, 3, got[0].Interviews)
	assert.Equal(t, "Q10", got[1].QuestionCode)
	assert.InDelta(t, 60.0, got[1].Average, 1e-9)
	assert.Equal(t, 2, got[1].Interviews)
}

func TestQuestionsForInterview(t *testing.T) {
	questions := []domain.QuestionScore{
		{ID: "a", QuestionCode: "Q3", SourceID: "s1"},
		{ID: "b", QuestionCode: "Q1", SourceID: "s2"},
		{ID: "c", QuestionCode: "Q1", SourceID: "s1"},
	}

	got := QuestionsForInterview(questions, "s1")

	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestFlagsForSource(t *testing.T) {
	flags := []domain.Flag{
		{ID: "f1", SourceIDs: []string{"s1", "s2"}},
		{ID: "f2", SourceIDs: []string{"s2"}, IsResolved: true},
		{ID: "f3"},
	}

	got := FlagsForSource(flags, "s2")

	require.Len(t, got, 2)
	assert.Equal(t, "f1", got[0].ID)
	assert.Equal(t, "f2", got[1].ID)
	assert.Equal(t, 2, UnresolvedFlags(flags))
}
