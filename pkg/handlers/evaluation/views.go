package evaluation

import (
	"github.com/de-tools/eval-atlas/pkg/adapters"
	"github.com/de-tools/eval-atlas/pkg/models/api"
	"github.com/de-tools/eval-atlas/pkg/services/console"
	"github.com/de-tools/eval-atlas/pkg/services/navigation"
)

func mapSessionView(id string, v console.View) api.SessionView {
	res := api.SessionView{
		ID:         id,
		Navigation: mapNavigation(v.State, v.Breadcrumbs),
		Loading:    v.Loading,
		Error:      v.LastError,
		Businesses: adapters.MapDomainBusinessesToApi(v.Businesses),
	}
	if v.Progress != nil {
		res.Progress = &api.ProgressView{
			Step:  v.Progress.Index + 1,
			Total: v.Progress.Total,
			Label: v.Progress.Label,
		}
	}
	if v.Assessments != nil {
		res.Assessments = adapters.MapDomainAssessmentsToApi(v.Assessments)
	}
	if v.Runs != nil {
		res.Runs = adapters.MapDomainRunSummariesToApi(v.Runs)
	}
	if v.Run != nil {
		run := mapRunView(*v.Run)
		res.Run = &run
	}
	if v.Insights != nil {
		insights := adapters.MapDomainRefinedReportToApi(*v.Insights)
		res.Insights = &insights
	}
	return res
}

func mapNavigation(s navigation.State, crumbs []navigation.Crumb) api.NavigationView {
	res := api.NavigationView{
		Level:        string(s.Level),
		SubLevel:     string(s.SubLevel),
		BusinessID:   s.BusinessID(),
		AssessmentID: s.AssessmentID(),
		RunID:        s.RunID,
		SourceID:     s.SourceID,
		Breadcrumbs:  make([]api.BreadcrumbView, 0, len(crumbs)),
	}
	for _, c := range crumbs {
		res.Breadcrumbs = append(res.Breadcrumbs, api.BreadcrumbView{
			Level: string(c.Level),
			Label: c.Label,
		})
	}
	return res
}

func mapRunView(rv console.RunView) api.RunDetailView {
	res := api.RunDetailView{
		RunSummaryView: adapters.MapDomainRunSummaryToApi(rv.Detail.RunSummary),
		ErrorMessage:   rv.Detail.ErrorMessage,
		Sources:        make([]api.SourceView, 0, len(rv.Detail.Sources)),
		Metrics:        adapters.MapDomainMetricsToApi(rv.Metrics),
		Position:       adapters.MapDomainPositionToApi(rv.Position),
		Flags:          adapters.MapDomainFlagsToApi(rv.Detail.Flags),
	}
	for _, s := range rv.Detail.Sources {
		res.Sources = append(res.Sources, adapters.MapDomainSourceToApi(s))
	}
	if rv.Breakdown != nil {
		res.Breakdown = adapters.MapDomainBreakdownToApi(rv.Breakdown)
	}
	if iv := rv.Interview; iv != nil {
		res.Interview = &api.InterviewView{
			Source:    adapters.MapDomainSourceToApi(iv.Source),
			Metrics:   adapters.MapDomainMetricsToApi(iv.Metrics),
			Position:  adapters.MapDomainPositionToApi(iv.Position),
			Questions: adapters.MapDomainQuestionsToApi(iv.Questions),
			Flags:     adapters.MapDomainFlagsToApi(iv.Flags),
		}
	}
	return res
}
