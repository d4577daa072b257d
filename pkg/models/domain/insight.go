package domain

type InsightKind string

const (
	// InsightLegacy items were received as a bare string.
	InsightLegacy InsightKind = "legacy"
	InsightRich   InsightKind = "rich"
)

type InsightItem struct {
	Kind        InsightKind
	Title       string
	Description string
	Priority    string
	MetricCodes []string
}

type RefinedMetric struct {
	MetricCode string
	MetricName string
	Score      float64
	Narrative  string
}

// RefinedReport is the narrative overlay for a completed run.
type RefinedReport struct {
	RunID            string
	ExecutiveSummary string
	Metrics          []RefinedMetric
	KeyActions       []InsightItem
	CriticalIssues   []InsightItem
	Strengths        []InsightItem
}
