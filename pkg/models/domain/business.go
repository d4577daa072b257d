package domain

import "time"

// Business is an organization being assessed. Assessments is only populated
// by the enriched loader.
type Business struct {
	ID                string
	Name              string
	TotalReviews      int
	CompletedReviews  int
	LatestEvaluatedAt *time.Time
	MostRecentPending *time.Time
	Assessments       []Assessment
}

// ActivityAt is the timestamp businesses are ordered by, most recent first.
func (b Business) ActivityAt() time.Time {
	if b.LatestEvaluatedAt != nil {
		return *b.LatestEvaluatedAt
	}
	if b.MostRecentPending != nil {
		return *b.MostRecentPending
	}
	return time.Time{}
}

type Assessment struct {
	ID             string
	BusinessID     string
	Name           string
	Status         string
	TotalSubmitted int
	EvaluatedAt    *time.Time
	Runs           []RunSummary // created_at descending
}

// LatestRun returns the most recently created run, if any.
func (a Assessment) LatestRun() *RunSummary {
	if len(a.Runs) == 0 {
		return nil
	}
	return &a.Runs[0]
}

// ActivityAt is the timestamp assessments are ordered by within a business.
func (a Assessment) ActivityAt() time.Time {
	if run := a.LatestRun(); run != nil {
		return run.CreatedAt
	}
	if a.EvaluatedAt != nil {
		return *a.EvaluatedAt
	}
	return time.Time{}
}
