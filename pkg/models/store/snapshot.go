package store

import "time"

// ScoreSnapshot is a cached scores payload of a run that reached a terminal
// status. Payload holds the JSON encoded api.EvaluationScoresResponse.
type ScoreSnapshot struct {
	RunID         string
	Status        string
	MetricCount   int
	QuestionCount int
	Payload       []byte
	CachedAt      time.Time
}
