package domain

import "time"

type RunStatus string

const (
	RunStatusPending    RunStatus = "pending"
	RunStatusProcessing RunStatus = "processing"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusFailed     RunStatus = "failed"
)

// IsTerminal reports whether the backend is done with the run. Unknown
// statuses are treated as terminal so that nothing polls them forever.
func (s RunStatus) IsTerminal() bool {
	return s != RunStatusPending && s != RunStatusProcessing
}

type RunSummary struct {
	ID                 string
	AssessmentID       string
	RunNumber          int
	Status             RunStatus
	CreatedAt          time.Time
	CompletedAt        *time.Time
	OverallScore       float64
	TotalFlags         int
	UnresolvedFlags    int
	AverageMetricScore float64
}

// Source is one interview that contributed to a run.
type Source struct {
	ID             string
	Name           string
	RespondentRole string
	SubmittedAt    *time.Time
}

type RunDetail struct {
	RunSummary
	ErrorMessage string
	Sources      []Source
	Flags        []Flag
}

// Source looks up a contributing interview by id.
func (d RunDetail) Source(id string) (Source, bool) {
	for _, s := range d.Sources {
		if s.ID == id {
			return s, true
		}
	}
	return Source{}, false
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type Flag struct {
	ID          string
	Severity    Severity
	Title       string
	Description string
	IsResolved  bool
	SourceIDs   []string
	QuestionIDs []string
	Resolution  string
	ResolvedBy  string
	ResolvedAt  *time.Time
}

// RunBundle is everything the detail level renders for one run.
type RunBundle struct {
	Detail RunDetail
	Scores Scores
}

// TriggerResult identifies the run created by a trigger request.
type TriggerResult struct {
	AssessmentID string
	RunID        string
	RunNumber    int
	Status       RunStatus
}

// ProgressStep is one tick of the simulated evaluation progress indicator.
type ProgressStep struct {
	Index int
	Total int
	Label string
}
