package adapters

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/de-tools/eval-atlas/pkg/models/api"
	"github.com/de-tools/eval-atlas/pkg/models/domain"
	"github.com/de-tools/eval-atlas/pkg/models/store"
)

func MapApiScoresToDomain(r *api.EvaluationScoresResponse) domain.Scores {
	if r == nil {
		return domain.Scores{Metrics: []domain.MetricScore{}, Questions: []domain.QuestionScore{}}
	}

	scores := domain.Scores{
		Metrics:   make([]domain.MetricScore, 0, len(r.MetricScores)),
		Questions: make([]domain.QuestionScore, 0, len(r.QuestionScores)),
	}
	for _, m := range r.MetricScores {
		scores.Metrics = append(scores.Metrics, MapApiMetricScoreToDomain(m))
	}
	for _, q := range r.QuestionScores {
		scores.Questions = append(scores.Questions, MapApiQuestionScoreToDomain(q))
	}
	return scores
}

func MapApiMetricScoreToDomain(m api.MetricScoreDetail) domain.MetricScore {
	contributions := make([]domain.QuestionContribution, 0, len(m.QuestionContributions))
	for _, c := range m.QuestionContributions {
		contributions = append(contributions, domain.QuestionContribution{
			QuestionID:   c.QuestionID,
			QuestionCode: c.QuestionCode,
			Score:        floatOrZero(c.Score),
			Weight:       floatOrZero(c.Weight),
		})
	}
	return domain.MetricScore{
		ID:                    m.ID,
		MetricCode:            m.MetricCode,
		MetricName:            m.MetricName,
		OverallScore:          floatOrZero(m.OverallScore),
		SourceID:              stringOrEmpty(m.SourceID),
		RunLevel:              m.SourceID == nil,
		QuestionContributions: contributions,
	}
}

func MapApiQuestionScoreToDomain(q api.QuestionScoreDetail) domain.QuestionScore {
	res := domain.QuestionScore{
		ID:              q.ID,
		QuestionID:      q.QuestionID,
		QuestionCode:    q.QuestionCode,
		SourceID:        q.SourceID,
		OverallScore:    floatOrZero(q.OverallScore),
		DimensionScores: make([]domain.DimensionScore, 0, len(q.DimensionScores)),
		CheckResults:    make([]domain.CheckResult, 0, len(q.CheckResults)),
	}
	for _, d := range q.DimensionScores {
		res.DimensionScores = append(res.DimensionScores, domain.DimensionScore{
			Dimension: d.Dimension,
			Score:     floatOrZero(d.Score),
		})
	}
	for _, c := range q.CheckResults {
		res.CheckResults = append(res.CheckResults, domain.CheckResult{Check: c.Check, Passed: c.Passed, Note: c.Note})
	}
	return res
}

func MapDomainMetricsToApi(metrics []domain.MetricScore) []api.MetricView {
	res := make([]api.MetricView, 0, len(metrics))
	for _, m := range metrics {
		view := api.MetricView{
			ID:         m.ID,
			MetricCode: m.MetricCode,
			MetricName: m.MetricName,
			Score:      m.OverallScore,
		}
		if !m.IsRunLevel() {
			source := m.SourceID
			view.SourceID = &source
		}
		res = append(res, view)
	}
	return res
}

// MapDomainPositionToApi returns nil when no metric contributed, so clients
// do not render a quadrant for an empty run.
func MapDomainPositionToApi(p domain.Position) *api.PositionView {
	if !p.HasData {
		return nil
	}
	return &api.PositionView{
		OperationalStrength: p.OperationalStrength,
		FutureReadiness:     p.FutureReadiness,
		Overall:             p.Overall,
		Gap:                 p.Gap,
		Quadrant:            string(p.Quadrant),
	}
}

func MapDomainBreakdownToApi(b []domain.QuestionBreakdown) []api.QuestionBreakdownView {
	res := make([]api.QuestionBreakdownView, 0, len(b))
	for _, q := range b {
		res = append(res, api.QuestionBreakdownView{
			QuestionCode: q.QuestionCode,
			QuestionID:   q.QuestionID,
			Average:      q.Average,
			Min:          q.Min,
			Max:          q.Max,
			Interviews:   q.Interviews,
		})
	}
	return res
}

func MapDomainQuestionsToApi(questions []domain.QuestionScore) []api.QuestionScoreView {
	res := make([]api.QuestionScoreView, 0, len(questions))
	for _, q := range questions {
		res = append(res, api.QuestionScoreView{
			QuestionCode: q.QuestionCode,
			QuestionID:   q.QuestionID,
			Score:        q.OverallScore,
		})
	}
	return res
}

// MapApiScoresToStoreSnapshot encodes a scores payload for the local cache.
func MapApiScoresToStoreSnapshot(
	runID string,
	status domain.RunStatus,
	r *api.EvaluationScoresResponse,
	cachedAt time.Time,
) (store.ScoreSnapshot, error) {
	if r == nil {
		return store.ScoreSnapshot{}, fmt.Errorf("no scores for run %s", runID)
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return store.ScoreSnapshot{}, fmt.Errorf("marshal scores: %w", err)
	}
	return store.ScoreSnapshot{
		RunID:         runID,
		Status:        string(status),
		MetricCount:   len(r.MetricScores),
		QuestionCount: len(r.QuestionScores),
		Payload:       payload,
		CachedAt:      cachedAt,
	}, nil
}

func MapStoreSnapshotToApiScores(s store.ScoreSnapshot) (*api.EvaluationScoresResponse, error) {
	var scores api.EvaluationScoresResponse
	if err := json.Unmarshal(s.Payload, &scores); err != nil {
		return nil, fmt.Errorf("unmarshal cached scores for run %s: %w", s.RunID, err)
	}
	return &scores, nil
}
