package adapters

import (
	"testing"
	"time"

	"github.com/de-tools/eval-atlas/pkg/models/api"
	"github.com/de-tools/eval-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestMapApiScoresToDomain_MissingValuesBecomeZero(t *testing.T) {
	resp := &api.EvaluationScoresResponse{
		MetricScores: []api.MetricScoreDetail{
			{ID: "a", MetricCode: "M1", OverallScore: nil, SourceID: nil},
			{ID: "b", MetricCode: "M1", OverallScore: ptr(64.0), SourceID: ptr("s1"),
				QuestionContributions: []api.QuestionContribution{{QuestionID: "q", Score: nil, Weight: ptr(0.5)}}},
		},
		QuestionScores: []api.QuestionScoreDetail{
			{ID: "q1", SourceID: "s1", DimensionScores: []api.DimensionScore{{Dimension: "depth"}}},
		},
	}

	got := MapApiScoresToDomain(resp)

	require.Len(t, got.Metrics, 2)
	assert.True(t, got.Metrics[0].IsRunLevel())
	assert.False(t, got.Metrics[1].IsRunLevel())
	assert.Equal(t, 0.0, got.Metrics[0].OverallScore)
	assert.Equal(t, "s1", got.Metrics[1].SourceID)
	assert.Equal(t, 0.0, got.Metrics[1].QuestionContributions[0].Score)
	assert.Equal(t, 0.5, got.Metrics[1].QuestionContributions[0].Weight)
	assert.Equal(t, 0.0, got.Questions[0].OverallScore)
	assert.Equal(t, 0.0, got.Questions[0].DimensionScores[0].Score)
}

func TestMapApiMetricScoreToDomain_RunLevelMarker(t *testing.T) {
	tests := []struct {
		name         string
		source       *string
		wantRunLevel bool
		wantSource   string
	}{
		{name: "null source", source: nil, wantRunLevel: true},
		{name: "empty source", source: ptr(""), wantRunLevel: false},
		{name: "interview source", source: ptr("s1"), wantRunLevel: false, wantSource: "s1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapApiMetricScoreToDomain(api.MetricScoreDetail{ID: "m", MetricCode: "M1", SourceID: tt.source})
			assert.Equal(t, tt.wantRunLevel, got.IsRunLevel())
			assert.Equal(t, tt.wantSource, got.SourceID)
		})
	}
}

func TestMapDomainMetricsToApi_RunLevelHasNullSource(t *testing.T) {
	views := MapDomainMetricsToApi([]domain.MetricScore{
		{ID: "agg-M1", MetricCode: "M1", RunLevel: true},
		{ID: "x", MetricCode: "M1", SourceID: "s2"},
		{ID: "y", MetricCode: "M1", SourceID: ""},
	})

	assert.Nil(t, views[0].SourceID)
	require.NotNil(t, views[1].SourceID)
	assert.Equal(t, "s2", *views[1].SourceID)
	require.NotNil(t, views[2].SourceID)
	assert.Equal(t, "", *views[2].SourceID)
}

func TestMapDomainPositionToApi_HidesEmpty(t *testing.T) {
	assert.Nil(t, MapDomainPositionToApi(domain.Position{Quadrant: domain.QuadrantAtRisk}))

	view := MapDomainPositionToApi(domain.Position{OperationalStrength: 60, Quadrant: domain.QuadrantSolidPerformer, HasData: true})
	require.NotNil(t, view)
	assert.Equal(t, "Solid Performer", view.Quadrant)
}

func TestScoreSnapshotRoundTrip(t *testing.T) {
	resp := &api.EvaluationScoresResponse{
		MetricScores:   []api.MetricScoreDetail{{ID: "a", MetricCode: "M3", OverallScore: ptr(12.5)}},
		QuestionScores: []api.QuestionScoreDetail{},
	}
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	snap, err := MapApiScoresToStoreSnapshot("run-1", domain.RunStatusCompleted, resp, now)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.MetricCount)
	assert.Equal(t, "completed", snap.Status)

	back, err := MapStoreSnapshotToApiScores(snap)
	require.NoError(t, err)
	assert.Equal(t, 12.5, *back.MetricScores[0].OverallScore)

	_, err = MapApiScoresToStoreSnapshot("run-1", domain.RunStatusCompleted, nil, now)
	assert.Error(t, err)
}
