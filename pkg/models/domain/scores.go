package domain

// MetricScore is one metric result. RunLevel marks a score pre-aggregated
// by the backend (null source) or synthesized from interview scores;
// otherwise it belongs to the interview named by SourceID, which may be empty.
type MetricScore struct {
	ID                    string
	MetricCode            string
	MetricName            string
	OverallScore          float64
	SourceID              string
	RunLevel              bool
	QuestionContributions []QuestionContribution
}

func (m MetricScore) IsRunLevel() bool {
	return m.RunLevel
}

type QuestionContribution struct {
	QuestionID   string
	QuestionCode string
	Score        float64
	Weight       float64
}

type QuestionScore struct {
	ID              string
	QuestionID      string
	QuestionCode    string
	SourceID        string
	OverallScore    float64
	DimensionScores []DimensionScore
	CheckResults    []CheckResult
}

type DimensionScore struct {
	Dimension string
	Score     float64
}

type CheckResult struct {
	Check  string
	Passed bool
	Note   string
}

type Scores struct {
	Metrics   []MetricScore
	Questions []QuestionScore
}

// QuestionBreakdown summarizes one question across all interviews of a run.
type QuestionBreakdown struct {
	QuestionCode string
	QuestionID   string
	Average      float64
	Min          float64
	Max          float64
	Interviews   int
}
