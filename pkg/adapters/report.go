package adapters

import (
	"bytes"
	"encoding/json"

	"github.com/de-tools/eval-atlas/pkg/models/api"
	"github.com/de-tools/eval-atlas/pkg/models/domain"
)

// MapApiRefinedReportToDomain normalizes a refined report once at the API
// boundary. Actions, issues and strengths may arrive either as rich objects or,
// from reports generated before the rich format existed, as bare strings.
func MapApiRefinedReportToDomain(r *api.RefinedReport) domain.RefinedReport {
	if r == nil {
		return domain.RefinedReport{}
	}

	metrics := make([]domain.RefinedMetric, 0, len(r.Metrics))
	for _, m := range r.Metrics {
		metrics = append(metrics, domain.RefinedMetric{
			MetricCode: m.MetricCode,
			MetricName: m.MetricName,
			Score:      floatOrZero(m.Score),
			Narrative:  m.Narrative,
		})
	}

	return domain.RefinedReport{
		RunID:            r.RunID,
		ExecutiveSummary: r.ExecutiveSummary,
		Metrics:          metrics,
		KeyActions:       NormalizeInsights(r.KeyActions),
		CriticalIssues:   NormalizeInsights(r.CriticalIssues),
		Strengths:        NormalizeInsights(r.Strengths),
	}
}

// NormalizeInsights converts every raw item into the tagged InsightItem form.
// Items that are neither a string nor an object with a title are dropped.
func NormalizeInsights(raw []json.RawMessage) []domain.InsightItem {
	items := make([]domain.InsightItem, 0, len(raw))
	for _, msg := range raw {
		if item, ok := normalizeInsight(msg); ok {
			items = append(items, item)
		}
	}
	return items
}

func normalizeInsight(msg json.RawMessage) (domain.InsightItem, bool) {
	trimmed := bytes.TrimSpace(msg)
	if len(trimmed) == 0 {
		return domain.InsightItem{}, false
	}

	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil || text == "" {
			return domain.InsightItem{}, false
		}
		return domain.InsightItem{Kind: domain.InsightLegacy, Title: text}, true
	case '{':
		var rich api.RefinedInsight
		if err := json.Unmarshal(trimmed, &rich); err != nil || rich.Title == "" {
			return domain.InsightItem{}, false
		}
		return domain.InsightItem{
			Kind:        domain.InsightRich,
			Title:       rich.Title,
			Description: rich.Description,
			Priority:    rich.Priority,
			MetricCodes: rich.MetricCodes,
		}, true
	default:
		return domain.InsightItem{}, false
	}
}

func MapDomainRefinedReportToApi(r domain.RefinedReport) api.InsightsView {
	return api.InsightsView{
		ExecutiveSummary: r.ExecutiveSummary,
		KeyActions:       mapInsights(r.KeyActions),
		CriticalIssues:   mapInsights(r.CriticalIssues),
		Strengths:        mapInsights(r.Strengths),
	}
}

func mapInsights(items []domain.InsightItem) []api.InsightView {
	res := make([]api.InsightView, 0, len(items))
	for _, i := range items {
		res = append(res, api.InsightView{
			Kind:        string(i.Kind),
			Title:       i.Title,
			Description: i.Description,
			Priority:    i.Priority,
			MetricCodes: i.MetricCodes,
		})
	}
	return res
}
