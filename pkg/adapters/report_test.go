package adapters

import (
	"encoding/json"
	"testing"

	"github.com/de-tools/eval-atlas/pkg/models/api"
	"github.com/de-tools/eval-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapApiRefinedReportToDomain_NormalizesLegacyShapes(t *testing.T) {
	var report api.RefinedReport
	err := json.Unmarshal([]byte(`{
		"run_id": "r1",
		"executive_summary": "Strong operations, weak planning.",
		"metrics": [{"metric_code": "M1", "metric_name": "Execution", "score": 71}],
		"key_actions": ["Hire a planning lead", {"title": "Adopt quarterly OKRs", "priority": "high", "metric_codes": ["M2"]}],
		"critical_issues": [{"title": "No succession plan", "description": "Founder dependency"}],
		"strengths": ["Loyal customers", 42, "", {"description": "missing title"}]
	}`), &report)
	require.NoError(t, err)

	got := MapApiRefinedReportToDomain(&report)

	assert.Equal(t, "r1", got.RunID)
	require.Len(t, got.Metrics, 1)
	assert.Equal(t, 71.0, got.Metrics[0].Score)

	require.Len(t, got.KeyActions, 2)
	assert.Equal(t, domain.InsightItem{Kind: domain.InsightLegacy, Title: "Hire a planning lead"}, got.KeyActions[0])
	assert.Equal(t, domain.InsightRich, got.KeyActions[1].Kind)
	assert.Equal(t, "high", got.KeyActions[1].Priority)
	assert.Equal(t, []string{"M2"}, got.KeyActions[1].MetricCodes)

	require.Len(t, got.CriticalIssues, 1)
	assert.Equal(t, "Founder dependency", got.CriticalIssues[0].Description)

	require.Len(t, got.Strengths, 1)
	assert.Equal(t, "Loyal customers", got.Strengths[0].Title)
}

func TestMapApiRefinedReportToDomain_Nil(t *testing.T) {
	assert.Equal(t, domain.RefinedReport{}, MapApiRefinedReportToDomain(nil))
}
