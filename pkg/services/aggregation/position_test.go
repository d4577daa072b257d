package aggregation

import (
	"testing"

	"github.com/de-tools/eval-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func allCodes(score float64) map[string]float64 {
	scores := make(map[string]float64)
	for _, w := range []domain.Weights{OperationalStrengthWeights, FutureReadinessWeights} {
		for code := range w {
			scores[code] = score
		}
	}
	return scores
}

func TestWeightedComposite_Bounds(t *testing.T) {
	assert.Equal(t, 100.0, WeightedComposite(allCodes(100), OperationalStrengthWeights))
	assert.Equal(t, 100.0, WeightedComposite(allCodes(100), FutureReadinessWeights))
	assert.Equal(t, 0.0, WeightedComposite(allCodes(0), OperationalStrengthWeights))
	assert.Equal(t, 0.0, WeightedComposite(allCodes(0), FutureReadinessWeights))
	assert.Equal(t, 0.0, WeightedComposite(map[string]float64{}, FutureReadinessWeights))
}

func TestWeightedComposite_MissingCodesContributeZero(t *testing.T) {
	// only M1 (0.40) present
	got := WeightedComposite(map[string]float64{"M1": 81, "M2": 100}, OperationalStrengthWeights)
	assert.Equal(t, 32.0, got)
}

func TestClassifyQuadrant(t *testing.T) {
	tests := []struct {
		os, fr   float64
		expected domain.Quadrant
	}{
		{70, 70, domain.QuadrantAdaptiveLeader},
		{70, 30, domain.QuadrantSolidPerformer},
		{30, 70, domain.QuadrantScatteredExperimenter},
		{30, 30, domain.QuadrantAtRisk},
		{50, 50, domain.QuadrantAdaptiveLeader},
		{50, 49, domain.QuadrantSolidPerformer},
		{49, 50, domain.QuadrantScatteredExperimenter},
		{0, 0, domain.QuadrantAtRisk},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyQuadrant(tt.os, tt.fr), "os=%v fr=%v", tt.os, tt.fr)
	}
}

func TestStrategicPosition(t *testing.T) {
	metrics := []domain.MetricScore{
		metric("1", "M1", 80, ""),
		metric("2", "M4", 70, ""),
		metric("3", "M9", 60, ""),
		metric("4", "M11", 50, ""),
		metric("5", "M8", 40, ""),
		metric("6", "M2", 30, ""),
		metric("7", "M5", 40, ""),
		metric("8", "M3", 50, ""),
		metric("9", "M14", 60, ""),
		metric("10", "M10", 70, ""),
	}

	pos := StrategicPosition(metrics)

	// 32 + 14 + 9 + 7.5 + 4 = 66.5 -> 67
	assert.Equal(t, 67.0, pos.OperationalStrength)
	// 12 + 8 + 7.5 + 9 + 7 = 43.5 -> 44
	assert.Equal(t, 44.0, pos.FutureReadiness)
	// (67 + 44) / 2 = 55.5 -> 56
	assert.Equal(t, 56.0, pos.Overall)
	assert.Equal(t, 23.0, pos.Gap)
	assert.Equal(t, domain.QuadrantSolidPerformer, pos.Quadrant)
	assert.True(t, pos.HasData)
}

func TestStrategicPosition_NoMetrics(t *testing.T) {
	pos := StrategicPosition(nil)

	assert.Equal(t, 0.0, pos.OperationalStrength)
	assert.Equal(t, 0.0, pos.FutureReadiness)
	assert.Equal(t, 0.0, pos.Overall)
	assert.Equal(t, domain.QuadrantAtRisk, pos.Quadrant)
	assert.False(t, pos.HasData)
}
