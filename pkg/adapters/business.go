package adapters

import (
	"github.com/de-tools/eval-atlas/pkg/models/api"
	"github.com/de-tools/eval-atlas/pkg/models/domain"
)

func MapApiBusinessToDomain(b api.Business) domain.Business {
	return domain.Business{
		ID:                b.ID,
		Name:              b.Name,
		TotalReviews:      b.TotalReviews,
		CompletedReviews:  b.CompletedReviews,
		LatestEvaluatedAt: b.LatestEvaluatedAt,
		MostRecentPending: b.MostRecentPending,
	}
}

// MapApiReviewsToDomain flattens pending and completed reviews into one list,
// pending first.
func MapApiReviewsToDomain(businessID string, r *api.BusinessReviews) []domain.Assessment {
	if r == nil {
		return []domain.Assessment{}
	}
	res := make([]domain.Assessment, 0, len(r.Pending)+len(r.Completed))
	for _, a := range r.Pending {
		res = append(res, MapApiAssessmentToDomain(businessID, a))
	}
	for _, a := range r.Completed {
		res = append(res, MapApiAssessmentToDomain(businessID, a))
	}
	return res
}

func MapApiAssessmentToDomain(businessID string, a api.Assessment) domain.Assessment {
	return domain.Assessment{
		ID:             a.ID,
		BusinessID:     businessID,
		Name:           a.Name,
		Status:         a.Status,
		TotalSubmitted: a.Stats.TotalSubmitted,
		EvaluatedAt:    a.EvaluatedAt,
	}
}

func MapDomainBusinessToApi(b domain.Business) api.BusinessView {
	res := api.BusinessView{
		ID:                b.ID,
		Name:              b.Name,
		TotalReviews:      b.TotalReviews,
		CompletedReviews:  b.CompletedReviews,
		LatestEvaluatedAt: b.LatestEvaluatedAt,
	}
	if len(b.Assessments) > 0 {
		res.Assessments = MapDomainAssessmentsToApi(b.Assessments)
	}
	return res
}

func MapDomainBusinessesToApi(businesses []domain.Business) []api.BusinessView {
	res := make([]api.BusinessView, 0, len(businesses))
	for _, b := range businesses {
		res = append(res, MapDomainBusinessToApi(b))
	}
	return res
}

func MapDomainAssessmentsToApi(assessments []domain.Assessment) []api.AssessmentView {
	res := make([]api.AssessmentView, 0, len(assessments))
	for _, a := range assessments {
		view := api.AssessmentView{
			ID:             a.ID,
			Name:           a.Name,
			Status:         a.Status,
			TotalSubmitted: a.TotalSubmitted,
			RunCount:       len(a.Runs),
		}
		if latest := a.LatestRun(); latest != nil {
			run := MapDomainRunSummaryToApi(*latest)
			view.LatestRun = &run
		}
		res = append(res, view)
	}
	return res
}
