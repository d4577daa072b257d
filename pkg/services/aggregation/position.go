package aggregation

import (
	"maps"
	"math"
	"slices"

	"github.com/de-tools/eval-atlas/pkg/models/domain"
)

const quadrantThreshold = 50

var (
	OperationalStrengthWeights = domain.Weights{
		"M1":  0.40,
		"M4":  0.20,
		"M9":  0.15,
		"M11": 0.15,
		"M8":  0.10,
	}
	FutureReadinessWeights = domain.Weights{
		"M2":  0.40,
		"M5":  0.20,
		"M3":  0.15,
		"M14": 0.15,
		"M10": 0.10,
	}
)

// WeightedComposite returns round(Σ score[code]·weight[code]) over the weight
// table. Codes missing from scores contribute 0.
func WeightedComposite(scores map[string]float64, weights domain.Weights) float64 {
	var total float64
	// fixed order keeps the float sum reproducible
	for _, code := range slices.Sorted(maps.Keys(weights)) {
		total += scores[code] * weights[code]
	}
	return math.Round(total)
}

// ClassifyQuadrant places a business on the operational strength / future
// readiness grid. Both axes split at 50, inclusive on the upper side.
func ClassifyQuadrant(operationalStrength, futureReadiness float64) domain.Quadrant {
	strong := operationalStrength >= quadrantThreshold
	ready := futureReadiness >= quadrantThreshold
	switch {
	case strong && ready:
		return domain.QuadrantAdaptiveLeader
	case strong:
		return domain.QuadrantSolidPerformer
	case ready:
		return domain.QuadrantScatteredExperimenter
	default:
		return domain.QuadrantAtRisk
	}
}

// StrategicPosition computes both named composites of a metric set along with
// their mean, gap and quadrant.
func StrategicPosition(metrics []domain.MetricScore) domain.Position {
	scores := ScoreMap(metrics)
	os := WeightedComposite(scores, OperationalStrengthWeights)
	fr := WeightedComposite(scores, FutureReadinessWeights)

	return domain.Position{
		OperationalStrength: os,
		FutureReadiness:     fr,
		Overall:             math.Round((os + fr) / 2),
		Gap:                 os - fr,
		Quadrant:            ClassifyQuadrant(os, fr),
		HasData:             len(metrics) > 0,
	}
}
