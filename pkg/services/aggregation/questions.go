package aggregation

import (
	"slices"

	"github.com/de-tools/eval-atlas/pkg/models/domain"
)

// QuestionsForInterview returns one interview's question scores ordered by
// question code.
func QuestionsForInterview(questions []domain.QuestionScore, sourceID string) []domain.QuestionScore {
	result := make([]domain.QuestionScore, 0)
	for _, q := range questions {
		if q.SourceID == sourceID {
			result = append(result, q)
		}
	}
	slices.SortStableFunc(result, func(a, b domain.QuestionScore) int {
		return CompareCodes(a.QuestionCode, b.QuestionCode)
	})
	return result
}

// BreakdownByQuestion summarizes every question across the interviews of a run.
func BreakdownByQuestion(questions []domain.QuestionScore) []domain.QuestionBreakdown {
	index := make(map[string]int)
	result := make([]domain.QuestionBreakdown, 0)
	sums := make([]float64, 0)

	for _, q := range questions {
		i, ok := index[q.QuestionCode]
		if !ok {
			i = len(result)
			index[q.QuestionCode] = i
			result = append(result, domain.QuestionBreakdown{
				QuestionCode: q.QuestionCode,
				QuestionID:   q.QuestionID,
				Min:          q.OverallScore,
				Max:          q.OverallScore,
			})
			sums = append(sums, 0)
		}
		b := &result[i]
		b.Interviews++
		sums[i] += q.OverallScore
		b.Min = min(b.Min, q.OverallScore)
		b.Max = max(b.Max, q.OverallScore)
	}

	for i := range result {
		result[i].Average = sums[i] / float64(result[i].Interviews)
	}
	slices.SortStableFunc(result, func(a, b domain.QuestionBreakdown) int {
		return CompareCodes(a.QuestionCode, b.QuestionCode)
	})
	return result
}

// FlagsForSource returns the flags that reference the given interview.
func FlagsForSource(flags []domain.Flag, sourceID string) []domain.Flag {
	result := make([]domain.Flag, 0)
	for _, f := range flags {
		if slices.Contains(f.SourceIDs, sourceID) {
			result = append(result, f)
		}
	}
	return result
}

func UnresolvedFlags(flags []domain.Flag) int {
	n := 0
	for _, f := range flags {
		if !f.IsResolved {
			n++
		}
	}
	return n
}
