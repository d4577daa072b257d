package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/eval-atlas/pkg/models/domain"
	"github.com/de-tools/eval-atlas/pkg/models/store"
	"github.com/de-tools/eval-atlas/pkg/services/console"
)

const dateLayout = "2006-01-02 15:04"

func BusinessesReport(businesses []domain.Business) *domain.Report {
	report := &domain.Report{
		Title:    "Businesses",
		Subtitle: fmt.Sprintf("%d with evaluations", len(businesses)),
		Sections: make([]domain.ReportSection, 0, len(businesses)),
	}
	for _, b := range businesses {
		section := domain.ReportSection{
			Title: fmt.Sprintf("%s (%s)", b.Name, b.ID),
			Summary: map[string]interface{}{
				"Reviews":       fmt.Sprintf("%d/%d completed", b.CompletedReviews, b.TotalReviews),
				"Last activity":  formatTime(b.ActivityAt()),
			},
		}
		for _, a := range b.Assessments {
			detail := domain.ReportDetail{Name: a.Name, Value: "no runs", Description: a.ID}
			if run := a.LatestRun(); run != nil {
				detail.Value = fmt.Sprintf("#%d %s", run.RunNumber, run.Status)
				detail.Description = fmt.Sprintf("%s, latest run %s", a.ID, run.ID)
			}
			section.Details = append(section.Details, detail)
		}
		report.Sections = append(report.Sections, section)
	}
	return report
}

func RunsReport(assessmentID string, runs []domain.RunSummary) *domain.Report {
	section := domain.ReportSection{Title: "Runs"}
	for _, r := range runs {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        fmt.Sprintf("#%d %s", r.RunNumber, r.ID),
			Value:       r.Status,
			Description: runDescription(r),
		})
	}
	return &domain.Report{
		Title:    "Evaluation runs",
		Subtitle: fmt.Sprintf("Assessment %s, %d runs", assessmentID, len(runs)),
		Sections: []domain.ReportSection{section},
	}
}

// RunReport renders the detail level of a run, including the sub-level
// carried by rv.
func RunReport(rv *console.RunView) *domain.Report {
	d := rv.Detail
	summary := map[string]interface{}{
		"Status":  d.Status,
		"Created": formatTime(d.CreatedAt),
		"Flags":   fmt.Sprintf("%d unresolved of %d", d.UnresolvedFlags, d.TotalFlags),
	}
	if d.CompletedAt != nil {
		summary["Completed"] = formatTime(*d.CompletedAt)
	}
	if d.ErrorMessage != "" {
		summary["Error"] = d.ErrorMessage
	}

	report := &domain.Report{
		Title:    fmt.Sprintf("Run #%d %s", d.RunNumber, d.ID),
		Subtitle: fmt.Sprintf("Assessment %s", d.AssessmentID),
		Sections: []domain.ReportSection{
			{Title: "Overview", Summary: summary},
			positionSection("Strategic position", rv.Position),
			metricsSection("Metrics", rv.Metrics),
		},
	}

	if rv.Breakdown != nil {
		section := domain.ReportSection{Title: "Question breakdown"}
		for _, q := range rv.Breakdown {
			section.Details = append(section.Details, domain.ReportDetail{
				Name:        q.QuestionCode,
				Value:       fmt.Sprintf("%.1f", q.Average),
				Unit:        "avg",
				Description: fmt.Sprintf("min %.1f, max %.1f over %d interviews", q.Min, q.Max, q.Interviews),
			})
		}
		report.Sections = append(report.Sections, section)
	}

	flags := d.Flags
	if iv := rv.Interview; iv != nil {
		title := "Interview " + iv.Source.Name
		report.Sections = append(report.Sections,
			positionSection(title+" position", iv.Position),
			metricsSection(title+" metrics", iv.Metrics),
		)
		section := domain.ReportSection{Title: title + " questions"}
		for _, q := range iv.Questions {
			section.Details = append(section.Details, domain.ReportDetail{
				Name:  q.QuestionCode,
				Value: fmt.Sprintf("%.1f", q.OverallScore),
			})
		}
		report.Sections = append(report.Sections, section)
		flags = iv.Flags
	}

	if len(flags) > 0 {
		report.Sections = append(report.Sections, flagsSection(flags))
	}
	return report
}

// InsightsSections renders a refined report as report sections.
func InsightsSections(r domain.RefinedReport) []domain.ReportSection {
	sections := make([]domain.ReportSection, 0, 4)
	if r.ExecutiveSummary != "" {
		sections = append(sections, domain.ReportSection{
			Title:   "Executive summary",
			Summary: map[string]interface{}{"Summary": r.ExecutiveSummary},
		})
	}
	groups := []struct {
		title string
		items []domain.InsightItem
	}{
		{"Key actions", r.KeyActions},
		{"Critical issues", r.CriticalIssues},
		{"Strengths", r.Strengths},
	}
	for _, g := range groups {
		if len(g.items) == 0 {
			continue
		}
		section := domain.ReportSection{Title: g.title}
		for _, item := range g.items {
			section.Details = append(section.Details, domain.ReportDetail{
				Name:        item.Title,
				Value:       item.Priority,
				Description: insightDescription(item),
			})
		}
		sections = append(sections, section)
	}
	return sections
}

func SnapshotsReport(snapshots []store.ScoreSnapshot) *domain.Report {
	section := domain.ReportSection{Title: "Cached runs"}
	for _, s := range snapshots {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        s.RunID,
			Value:       s.Status,
			Description: fmt.Sprintf("%d metrics, %d questions, cached %s", s.MetricCount, s.QuestionCount, formatTime(s.CachedAt)),
		})
	}
	return &domain.Report{
		Title:    "Score cache",
		Subtitle: fmt.Sprintf("%d runs", len(snapshots)),
		Sections: []domain.ReportSection{section},
	}
}

func positionSection(title string, p domain.Position) domain.ReportSection {
	if !p.HasData {
		return domain.ReportSection{
			Title:   title,
			Summary: map[string]interface{}{"Quadrant": "no metric data"},
		}
	}
	return domain.ReportSection{
		Title:   title,
		Summary: map[string]interface{}{"Quadrant": p.Quadrant},
		Details: []domain.ReportDetail{
			{Name: "Operational strength", Value: fmt.Sprintf("%.1f", p.OperationalStrength)},
			{Name: "Future readiness", Value: fmt.Sprintf("%.1f", p.FutureReadiness)},
			{Name: "Overall", Value: fmt.Sprintf("%.1f", p.Overall)},
			{Name: "Gap", Value: fmt.Sprintf("%.1f", p.Gap)},
		},
	}
}

func metricsSection(title string, metrics []domain.MetricScore) domain.ReportSection {
	section := domain.ReportSection{Title: title}
	for _, m := range metrics {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        m.MetricCode,
			Value:       fmt.Sprintf("%.1f", m.OverallScore),
			Description: m.MetricName,
		})
	}
	return section
}

func flagsSection(flags []domain.Flag) domain.ReportSection {
	section := domain.ReportSection{Title: "Flags"}
	for _, f := range flags {
		state := "open"
		if f.IsResolved {
			state = "resolved"
		}
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        f.ID,
			Value:       f.Severity,
			Unit:        state,
			Description: f.Title,
		})
	}
	return section
}

func runDescription(r domain.RunSummary) string {
	parts := []string{"created " + formatTime(r.CreatedAt)}
	if r.Status == domain.RunStatusCompleted {
		parts = append(parts, fmt.Sprintf("score %.1f", r.OverallScore))
	}
	if r.UnresolvedFlags > 0 {
		parts = append(parts, fmt.Sprintf("%d open flags", r.UnresolvedFlags))
	}
	return strings.Join(parts, ", ")
}

func insightDescription(item domain.InsightItem) string {
	if len(item.MetricCodes) == 0 {
		return item.Description
	}
	return fmt.Sprintf("%s [%s]", item.Description, strings.Join(item.MetricCodes, ", "))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(dateLayout)
}
