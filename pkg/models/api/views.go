package api

import "time"

// Views served by the console HTTP API.

type SessionView struct {
	ID          string           `json:"id"`
	Navigation  NavigationView   `json:"navigation"`
	Loading     bool             `json:"loading"`
	Error       string           `json:"error,omitempty"`
	Progress    *ProgressView    `json:"progress,omitempty"`
	Businesses  []BusinessView   `json:"businesses"`
	Assessments []AssessmentView `json:"assessments,omitempty"`
	Runs        []RunSummaryView `json:"runs,omitempty"`
	Run         *RunDetailView   `json:"run,omitempty"`
	Insights    *InsightsView    `json:"insights,omitempty"`
}

type NavigationView struct {
	Level        string           `json:"level"`
	SubLevel     string           `json:"sub_level,omitempty"`
	BusinessID   string           `json:"business_id,omitempty"`
	AssessmentID string           `json:"assessment_id,omitempty"`
	RunID        string           `json:"run_id,omitempty"`
	SourceID     string           `json:"source_id,omitempty"`
	Breadcrumbs  []BreadcrumbView `json:"breadcrumbs"`
}

type BreadcrumbView struct {
	Level string `json:"level"`
	Label string `json:"label"`
}

type BusinessView struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	TotalReviews      int              `json:"total_reviews"`
	CompletedReviews  int              `json:"completed_reviews"`
	LatestEvaluatedAt *time.Time       `json:"latest_evaluation_at,omitempty"`
	Assessments       []AssessmentView `json:"assessments,omitempty"`
}

type AssessmentView struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Status         string          `json:"status"`
	TotalSubmitted int             `json:"total_submitted"`
	LatestRun      *RunSummaryView `json:"latest_run,omitempty"`
	RunCount       int             `json:"run_count"`
}

type RunSummaryView struct {
	ID                 string     `json:"id"`
	RunNumber          int        `json:"run_number"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	OverallScore       float64    `json:"overall_score"`
	TotalFlags         int        `json:"total_flags"`
	UnresolvedFlags    int        `json:"unresolved_flags"`
	AverageMetricScore float64    `json:"average_metric_score"`
}

type RunDetailView struct {
	RunSummaryView
	ErrorMessage string                  `json:"error_message,omitempty"`
	Sources      []SourceView            `json:"sources"`
	Metrics      []MetricView            `json:"metrics"`
	Position     *PositionView           `json:"position,omitempty"`
	Flags        []FlagView              `json:"flags"`
	Breakdown    []QuestionBreakdownView `json:"breakdown,omitempty"`
	Interview    *InterviewView          `json:"interview,omitempty"`
}

type SourceView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	RespondentRole string `json:"respondent_role,omitempty"`
}

type MetricView struct {
	ID         string  `json:"id"`
	MetricCode string  `json:"metric_code"`
	MetricName string  `json:"metric_name"`
	Score      float64 `json:"score"`
	SourceID   *string `json:"source_id"`
}

type PositionView struct {
	OperationalStrength float64 `json:"operational_strength"`
	FutureReadiness     float64 `json:"future_readiness"`
	Overall             float64 `json:"overall"`
	Gap                 float64 `json:"gap"`
	Quadrant            string  `json:"quadrant,omitempty"`
}

type QuestionBreakdownView struct {
	QuestionCode string  `json:"question_code"`
	QuestionID   string  `json:"question_id"`
	Average      float64 `json:"average"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Interviews   int     `json:"interviews"`
}

type QuestionScoreView struct {
	QuestionCode string  `json:"question_code"`
	QuestionID   string  `json:"question_id"`
	Score        float64 `json:"score"`
}

type InterviewView struct {
	Source    SourceView          `json:"source"`
	Metrics   []MetricView        `json:"metrics"`
	Position  *PositionView       `json:"position,omitempty"`
	Questions []QuestionScoreView `json:"questions"`
	Flags     []FlagView          `json:"flags"`
}

type FlagView struct {
	ID          string     `json:"id"`
	Severity    string     `json:"severity"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	IsResolved  bool       `json:"is_resolved"`
	Resolution  string     `json:"resolution,omitempty"`
	ResolvedBy  string     `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

type ProgressView struct {
	Step  int    `json:"step"`
	Total int    `json:"total"`
	Label string `json:"label"`
}

type InsightView struct {
	Kind        string   `json:"kind"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	MetricCodes []string `json:"metric_codes,omitempty"`
}

type InsightsView struct {
	ExecutiveSummary string        `json:"executive_summary"`
	KeyActions       []InsightView `json:"key_actions"`
	CriticalIssues   []InsightView `json:"critical_issues"`
	Strengths        []InsightView `json:"strengths"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type RunPositionView struct {
	RunID    string        `json:"run_id"`
	Status   string        `json:"status"`
	Metrics  []MetricView  `json:"metrics"`
	Position *PositionView `json:"position,omitempty"`
}

type TriggerView struct {
	RunID     string      `json:"run_id"`
	RunNumber int         `json:"run_number"`
	Status    string      `json:"status"`
	Session   SessionView `json:"session"`
}
