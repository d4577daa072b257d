package console

import (
	"github.com/de-tools/eval-atlas/pkg/models/domain"
	"github.com/de-tools/eval-atlas/pkg/services/aggregation"
	"github.com/de-tools/eval-atlas/pkg/services/navigation"
)

// View is a snapshot of what the session shows.
type View struct {
	State       navigation.State
	Breadcrumbs []navigation.Crumb
	Loading     bool
	Polling     bool
	LastError   string
	Progress    *domain.ProgressStep
	Businesses  []domain.Business
	Assessments []domain.Assessment
	Runs        []domain.RunSummary
	Run         *RunView
	Insights    *domain.RefinedReport
}

// RunView is the detail level. Metrics are run-level composites ordered by
// code. Breakdown is only set on the breakdown sub-level, Interview only on
// the interview sub-level.
type RunView struct {
	Detail    domain.RunDetail
	Metrics   []domain.MetricScore
	Position  domain.Position
	Breakdown []domain.QuestionBreakdown
	Interview *InterviewView
}

type InterviewView struct {
	Source    domain.Source
	Metrics   []domain.MetricScore
	Position  domain.Position
	Questions []domain.QuestionScore
	Flags     []domain.Flag
}

func (c *Console) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	v := View{
		State:       s,
		Breadcrumbs: navigation.Breadcrumbs(s),
		Loading:     c.pending > 0,
		Polling:     c.poll != nil,
		LastError:   c.lastError,
		Progress:    c.progress,
		Businesses:  c.businesses,
	}

	switch s.Level {
	case navigation.LevelAssessments:
		v.Assessments = c.assessments
	case navigation.LevelRuns:
		v.Assessments = c.assessments
		v.Runs = c.runs
	case navigation.LevelDetail:
		if c.run != nil && c.run.Detail.ID == s.RunID {
			v.Run = BuildRunView(*c.run, s.SubLevel, s.SourceID)
		}
		v.Insights = c.insights
	}
	return v
}

// BuildRunView derives the detail level from a loaded run.
func BuildRunView(bundle domain.RunBundle, sub navigation.SubLevel, sourceID string) *RunView {
	metrics := aggregation.SortMetricsByCode(aggregation.AggregateMetrics(bundle.Scores.Metrics))
	rv := &RunView{
		Detail:   bundle.Detail,
		Metrics:  metrics,
		Position: aggregation.StrategicPosition(metrics),
	}

	switch sub {
	case navigation.SubLevelBreakdown:
		rv.Breakdown = aggregation.BreakdownByQuestion(bundle.Scores.Questions)
	case navigation.SubLevelInterview:
		rv.Interview = buildInterviewView(bundle, sourceID)
	}
	return rv
}

func buildInterviewView(bundle domain.RunBundle, sourceID string) *InterviewView {
	source, ok := bundle.Detail.Source(sourceID)
	if !ok {
		source = domain.Source{ID: sourceID}
	}
	metrics := aggregation.SortMetricsByCode(aggregation.MetricsForInterview(bundle.Scores.Metrics, sourceID))
	return &InterviewView{
		Source:    source,
		Metrics:   metrics,
		Position:  aggregation.StrategicPosition(metrics),
		Questions: aggregation.QuestionsForInterview(bundle.Scores.Questions, sourceID),
		Flags:     aggregation.FlagsForSource(bundle.Detail.Flags, sourceID),
	}
}
