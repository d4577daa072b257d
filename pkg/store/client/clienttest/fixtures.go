package clienttest

import (
	"time"

	"github.com/de-tools/eval-atlas/pkg/models/api"
)

// Day returns midnight UTC of the given day in March 2025.
func Day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func Ptr[T any](v T) *T {
	return &v
}

func RunSummary(id string, number int, status string, createdAt time.Time) api.EvaluationRunSummary {
	return api.EvaluationRunSummary{
		ID:        id,
		RunNumber: number,
		Status:    status,
		CreatedAt: createdAt,
	}
}

func RunDetail(id, assessmentID, status string) *api.EvaluationRunDetail {
	return &api.EvaluationRunDetail{
		EvaluationRunSummary: RunSummary(id, 1, status, Day(1)),
		AssessmentID:         assessmentID,
		Sources: []api.EvaluationSource{
			{ID: "s-1", Name: "Alice"},
			{ID: "s-2", Name: "Bob"},
		},
		Flags: []api.EvaluationFlag{},
	}
}

// Scores returns per-interview scores for two interviews, without run-level
// aggregates.
func Scores() *api.EvaluationScoresResponse {
	return &api.EvaluationScoresResponse{
		MetricScores: []api.MetricScoreDetail{
			{ID: "m-1", MetricCode: "M1", MetricName: "Execution", SourceID: Ptr("s-1"), OverallScore: Ptr(80.0)},
			{ID: "m-2", MetricCode: "M1", MetricName: "Execution", SourceID: Ptr("s-2"), OverallScore: Ptr(60.0)},
			{ID: "m-3", MetricCode: "M2", MetricName: "Vision", SourceID: Ptr("s-1"), OverallScore: Ptr(40.0)},
		},
		QuestionScores: []api.QuestionScoreDetail{
			{ID: "q-1", QuestionID: "qid-1", QuestionCode: "Q1", SourceID: "s-1", OverallScore: Ptr(70.0)},
			{ID: "q-2", QuestionID: "qid-1", QuestionCode: "Q1", SourceID: "s-2", OverallScore: Ptr(50.0)},
		},
	}
}
