// Package aggregation folds flat metric and question score lists into
// run-level and interview-level views. All functions are pure and never
// modify their inputs.
package aggregation

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/de-tools/eval-atlas/pkg/models/domain"
)

const aggregatedIDPrefix = "agg-"

// AggregateMetrics returns the run-level view of a run's metric scores.
//
// When the backend already sent run-level scores (null source) those are
// authoritative and only deduplicated by metric code, first occurrence wins.
// Otherwise one score per code is synthesized as the unweighted mean of the
// per-interview scores. Codes keep the order of their first appearance.
func AggregateMetrics(scores []domain.MetricScore) []domain.MetricScore {
	runLevel := make([]domain.MetricScore, 0, len(scores))
	for _, s := range scores {
		if s.IsRunLevel() {
			runLevel = append(runLevel, s)
		}
	}
	if len(runLevel) > 0 {
		return dedupeByCode(runLevel)
	}

	type group struct {
		name string
		sum  float64
		n    int
	}
	order := make([]string, 0)
	groups := make(map[string]*group)
	for _, s := range scores {
		g, ok := groups[s.MetricCode]
		if !ok {
			g = &group{name: s.MetricName}
			groups[s.MetricCode] = g
			order = append(order, s.MetricCode)
		}
		g.sum += s.OverallScore
		g.n++
	}

	result := make([]domain.MetricScore, 0, len(order))
	for _, code := range order {
		g := groups[code]
		result = append(result, domain.MetricScore{
			ID:           aggregatedIDPrefix + code,
			MetricCode:   code,
			MetricName:   g.name,
			OverallScore: g.sum / float64(g.n),
			RunLevel:     true,
		})
	}
	return result
}

// MetricsForInterview returns the scores of a single interview, deduplicated
// by metric code.
func MetricsForInterview(scores []domain.MetricScore, sourceID string) []domain.MetricScore {
	filtered := make([]domain.MetricScore, 0)
	for _, s := range scores {
		if !s.IsRunLevel() && s.SourceID == sourceID {
			filtered = append(filtered, s)
		}
	}
	return dedupeByCode(filtered)
}

// SortMetricsByCode orders metrics by the numeric suffix of their code so that
// M2 sorts before M10. Codes without a number go last; ties keep input order.
func SortMetricsByCode(metrics []domain.MetricScore) []domain.MetricScore {
	sorted := slices.Clone(metrics)
	slices.SortStableFunc(sorted, func(a, b domain.MetricScore) int {
		return CompareCodes(a.MetricCode, b.MetricCode)
	})
	return sorted
}

// CompareCodes compares two codes by their trailing number. Codes without a
// parseable number compare greater than any numbered code and equal to each
// other.
func CompareCodes(a, b string) int {
	na, okA := codeNumber(a)
	nb, okB := codeNumber(b)
	switch {
	case okA && okB:
		return cmp.Compare(na, nb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}

func codeNumber(code string) (int, bool) {
	end := len(code)
	start := strings.LastIndexFunc(code, func(r rune) bool { return !unicode.IsDigit(r) }) + 1
	if start >= end {
		return 0, false
	}
	n, err := strconv.Atoi(code[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ScoreMap indexes metrics by code; the first score of a code wins.
func ScoreMap(metrics []domain.MetricScore) map[string]float64 {
	scores := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		if _, seen := scores[m.MetricCode]; !seen {
			scores[m.MetricCode] = m.OverallScore
		}
	}
	return scores
}

func dedupeByCode(scores []domain.MetricScore) []domain.MetricScore {
	seen := make(map[string]struct{}, len(scores))
	result := make([]domain.MetricScore, 0, len(scores))
	for _, s := range scores {
		if _, ok := seen[s.MetricCode]; ok {
			continue
		}
		seen[s.MetricCode] = struct{}{}
		result = append(result, s)
	}
	return result
}
