package adapters

import (
	"github.com/de-tools/eval-atlas/pkg/models/api"
	"github.com/de-tools/eval-atlas/pkg/models/domain"
)

func MapApiRunSummaryToDomain(assessmentID string, r api.EvaluationRunSummary) domain.RunSummary {
	return domain.RunSummary{
		ID:                 r.ID,
		AssessmentID:       assessmentID,
		RunNumber:          r.RunNumber,
		Status:             domain.RunStatus(r.Status),
		CreatedAt:          r.CreatedAt,
		CompletedAt:        r.CompletedAt,
		OverallScore:       floatOrZero(r.OverallScore),
		TotalFlags:         intOrZero(r.TotalFlags),
		UnresolvedFlags:    intOrZero(r.UnresolvedFlags),
		AverageMetricScore: floatOrZero(r.AverageMetricScore),
	}
}

func MapApiRunSummariesToDomain(assessmentID string, runs []api.EvaluationRunSummary) []domain.RunSummary {
	res := make([]domain.RunSummary, 0, len(runs))
	for _, r := range runs {
		res = append(res, MapApiRunSummaryToDomain(assessmentID, r))
	}
	return res
}

func MapApiRunDetailToDomain(r *api.EvaluationRunDetail) domain.RunDetail {
	if r == nil {
		return domain.RunDetail{}
	}

	detail := domain.RunDetail{
		RunSummary:   MapApiRunSummaryToDomain(r.AssessmentID, r.EvaluationRunSummary),
		ErrorMessage: stringOrEmpty(r.ErrorMessage),
		Sources:      make([]domain.Source, 0, len(r.Sources)),
		Flags:        make([]domain.Flag, 0, len(r.Flags)),
	}
	for _, s := range r.Sources {
		detail.Sources = append(detail.Sources, domain.Source{
			ID:             s.ID,
			Name:           s.Name,
			RespondentRole: s.RespondentRole,
			SubmittedAt:    s.SubmittedAt,
		})
	}
	for _, f := range r.Flags {
		detail.Flags = append(detail.Flags, MapApiFlagToDomain(f))
	}
	return detail
}

func MapApiFlagToDomain(f api.EvaluationFlag) domain.Flag {
	return domain.Flag{
		ID:          f.ID,
		Severity:    domain.Severity(f.Severity),
		Title:       f.Title,
		Description: f.Description,
		IsResolved:  f.IsResolved,
		SourceIDs:   append([]string(nil), f.SourceIDs...),
		QuestionIDs: append([]string(nil), f.QuestionIDs...),
		Resolution:  stringOrEmpty(f.Resolution),
		ResolvedBy:  stringOrEmpty(f.ResolvedBy),
		ResolvedAt:  f.ResolvedAt,
	}
}

func MapApiTriggerToDomain(assessmentID string, r *api.RunEvaluationResponse) domain.TriggerResult {
	return domain.TriggerResult{
		AssessmentID: assessmentID,
		RunID:        r.RunID,
		RunNumber:    r.RunNumber,
		Status:       domain.RunStatus(r.Status),
	}
}

func MapDomainRunSummaryToApi(r domain.RunSummary) api.RunSummaryView {
	return api.RunSummaryView{
		ID:                 r.ID,
		RunNumber:          r.RunNumber,
		Status:             string(r.Status),
		CreatedAt:          r.CreatedAt,
		CompletedAt:        r.CompletedAt,
		OverallScore:       r.OverallScore,
		TotalFlags:         r.TotalFlags,
		UnresolvedFlags:    r.UnresolvedFlags,
		AverageMetricScore: r.AverageMetricScore,
	}
}

func MapDomainRunSummariesToApi(runs []domain.RunSummary) []api.RunSummaryView {
	res := make([]api.RunSummaryView, 0, len(runs))
	for _, r := range runs {
		res = append(res, MapDomainRunSummaryToApi(r))
	}
	return res
}

func MapDomainSourceToApi(s domain.Source) api.SourceView {
	return api.SourceView{ID: s.ID, Name: s.Name, RespondentRole: s.RespondentRole}
}

func MapDomainFlagsToApi(flags []domain.Flag) []api.FlagView {
	res := make([]api.FlagView, 0, len(flags))
	for _, f := range flags {
		res = append(res, api.FlagView{
			ID:          f.ID,
			Severity:    string(f.Severity),
			Title:       f.Title,
			Description: f.Description,
			IsResolved:  f.IsResolved,
			Resolution:  f.Resolution,
			ResolvedBy:  f.ResolvedBy,
			ResolvedAt:  f.ResolvedAt,
		})
	}
	return res
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func stringOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
