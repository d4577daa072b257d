package api

import (
	"encoding/json"
	"time"
)

// Types in this file mirror the admin REST API payloads. Optional numbers are
// pointers so that an absent field can be told apart from zero.

type Business struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	TotalReviews      int        `json:"total_reviews"`
	CompletedReviews  int        `json:"completed_reviews"`
	LatestEvaluatedAt *time.Time `json:"latest_evaluation_at,omitempty"`
	MostRecentPending *time.Time `json:"most_recent_pending,omitempty"`
}

type AssessmentStats struct {
	TotalSubmitted int `json:"total_submitted"`
}

type Assessment struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Status      string          `json:"status"`
	Stats       AssessmentStats `json:"stats"`
	EvaluatedAt *time.Time      `json:"evaluated_at,omitempty"`
}

type BusinessReviews struct {
	Pending   []Assessment `json:"pending"`
	Completed []Assessment `json:"completed"`
}

type EvaluationRunSummary struct {
	ID                 string     `json:"id"`
	RunNumber          int        `json:"run_number"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	OverallScore       *float64   `json:"overall_score,omitempty"`
	TotalFlags         *int       `json:"total_flags,omitempty"`
	UnresolvedFlags    *int       `json:"unresolved_flags,omitempty"`
	AverageMetricScore *float64   `json:"average_metric_score,omitempty"`
}

type EvaluationSource struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	RespondentRole string     `json:"respondent_role,omitempty"`
	SubmittedAt    *time.Time `json:"submitted_at,omitempty"`
}

type EvaluationFlag struct {
	ID          string     `json:"id"`
	Severity    string     `json:"severity"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	IsResolved  bool       `json:"is_resolved"`
	SourceIDs   []string   `json:"source_ids"`
	QuestionIDs []string   `json:"question_ids"`
	Resolution  *string    `json:"resolution,omitempty"`
	ResolvedBy  *string    `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

type EvaluationRunDetail struct {
	EvaluationRunSummary
	AssessmentID string             `json:"assessment_id,omitempty"`
	ErrorMessage *string            `json:"error_message,omitempty"`
	Sources      []EvaluationSource `json:"sources"`
	Flags        []EvaluationFlag   `json:"flags"`
}

type QuestionContribution struct {
	QuestionID   string   `json:"question_id"`
	QuestionCode string   `json:"question_code"`
	Score        *float64 `json:"score,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
}

type MetricScoreDetail struct {
	ID                    string                 `json:"id"`
	MetricCode            string                 `json:"metric_code"`
	MetricName            string                 `json:"metric_name"`
	OverallScore          *float64               `json:"overall_score"`
	SourceID              *string                `json:"source_id"`
	QuestionContributions []QuestionContribution `json:"question_contributions"`
}

type DimensionScore struct {
	Dimension string   `json:"dimension"`
	Score     *float64 `json:"score,omitempty"`
}

type CheckResult struct {
	Check  string `json:"check"`
	Passed bool   `json:"passed"`
	Note   string `json:"note,omitempty"`
}

type QuestionScoreDetail struct {
	ID              string           `json:"id"`
	QuestionID      string           `json:"question_id"`
	QuestionCode    string           `json:"question_code"`
	SourceID        string           `json:"source_id"`
	OverallScore    *float64         `json:"overall_score"`
	DimensionScores []DimensionScore `json:"dimension_scores"`
	CheckResults    []CheckResult    `json:"check_results"`
}

type EvaluationScoresResponse struct {
	MetricScores   []MetricScoreDetail   `json:"metric_scores"`
	QuestionScores []QuestionScoreDetail `json:"question_scores"`
}

type RunEvaluationResponse struct {
	RunID     string `json:"run_id"`
	RunNumber int    `json:"run_number"`
	Status    string `json:"status"`
}

type ResolveFlagRequest struct {
	Resolution string `json:"resolution"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type RefinedMetric struct {
	MetricCode string   `json:"metric_code"`
	MetricName string   `json:"metric_name"`
	Score      *float64 `json:"score,omitempty"`
	Narrative  string   `json:"narrative,omitempty"`
}

// RefinedInsight is the rich shape of an action, issue or strength. Older
// reports send a plain string instead; see adapters.NormalizeInsights.
type RefinedInsight struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	MetricCodes []string `json:"metric_codes,omitempty"`
}

type RefinedReport struct {
	RunID            string            `json:"run_id"`
	ExecutiveSummary string            `json:"executive_summary"`
	Metrics          []RefinedMetric   `json:"metrics"`
	KeyActions       []json.RawMessage `json:"key_actions"`
	CriticalIssues   []json.RawMessage `json:"critical_issues"`
	Strengths        []json.RawMessage `json:"strengths"`
}
