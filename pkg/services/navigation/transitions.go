package navigation

import (
	"fmt"

	"github.com/de-tools/eval-atlas/pkg/models/domain"
)

func invalid(s State, action string) (State, Effect, error) {
	return s, none(), fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, s)
}

// SelectBusiness is allowed from the business list and from the split pane
// showing another business's assessments.
func SelectBusiness(s State, b *domain.Business) (State, Effect, error) {
	if b == nil || b.ID == "" {
		return invalid(s, "select empty business")
	}
	if s.Level != LevelBusinesses && s.Level != LevelAssessments {
		return invalid(s, "select business")
	}
	next := State{Level: LevelAssessments, Business: b}
	return next, Effect{Kind: EffectLoadAssessments, BusinessID: b.ID}, nil
}

func SelectAssessment(s State, a *domain.Assessment) (State, Effect, error) {
	if a == nil || a.ID == "" {
		return invalid(s, "select empty assessment")
	}
	if s.Level != LevelAssessments && s.Level != LevelRuns {
		return invalid(s, "select assessment")
	}
	next := State{Level: LevelRuns, Business: s.Business, Assessment: a}
	return next, Effect{Kind: EffectLoadRuns, AssessmentID: a.ID}, nil
}

func SelectRun(s State, runID string) (State, Effect, error) {
	if runID == "" {
		return invalid(s, "select empty run")
	}
	if s.Level != LevelRuns {
		return invalid(s, "select run")
	}
	next := State{
		Level:      LevelDetail,
		SubLevel:   SubLevelSummary,
		Business:   s.Business,
		Assessment: s.Assessment,
		RunID:      runID,
	}
	return next, Effect{Kind: EffectLoadRunDetail, RunID: runID}, nil
}

func ViewBreakdown(s State) (State, Effect, error) {
	if s.Level != LevelDetail || s.SubLevel != SubLevelSummary {
		return invalid(s, "view breakdown")
	}
	s.SubLevel = SubLevelBreakdown
	return s, none(), nil
}

// SelectInterview needs no load, the run detail already carries every
// interview's scores.
func SelectInterview(s State, sourceID string) (State, Effect, error) {
	if sourceID == "" {
		return invalid(s, "select empty interview")
	}
	if s.Level != LevelDetail || (s.SubLevel != SubLevelSummary && s.SubLevel != SubLevelBreakdown) {
		return invalid(s, "select interview")
	}
	s.SubLevel = SubLevelInterview
	s.SourceID = sourceID
	return s, none(), nil
}

// Back returns to the parent view. Leaving the run summary, the run list or the
// assessment list lands on the business list with the business still selected.
func Back(s State) (State, Effect, error) {
	switch s.Level {
	case LevelDetail:
		switch s.SubLevel {
		case SubLevelInterview, SubLevelBreakdown:
			s.SubLevel = SubLevelSummary
			s.SourceID = ""
			return s, none(), nil
		default:
			return State{Level: LevelBusinesses, Business: s.Business}, none(), nil
		}
	case LevelRuns, LevelAssessments:
		return State{Level: LevelBusinesses, Business: s.Business}, none(), nil
	default:
		return invalid(s, "back")
	}
}

// JumpTo moves to an ancestor level shown in the breadcrumbs and reloads it.
// Jumping to detail from a detail sub-level returns to the run summary.
func JumpTo(s State, level Level) (State, Effect, error) {
	target, ok := levelRank[level]
	if !ok {
		return invalid(s, fmt.Sprintf("jump to %q", level))
	}
	current := levelRank[s.Level]
	isAncestor := target < current ||
		(level == LevelDetail && s.Level == LevelDetail && s.SubLevel != SubLevelSummary)
	if !isAncestor {
		return invalid(s, fmt.Sprintf("jump to %s", level))
	}
	if (level == LevelAssessments && s.Business == nil) || (level == LevelRuns && s.Assessment == nil) {
		return invalid(s, fmt.Sprintf("jump to %s without selection", level))
	}

	switch level {
	case LevelBusinesses:
		return State{Level: LevelBusinesses, Business: s.Business}, Effect{Kind: EffectLoadBusinesses}, nil
	case LevelAssessments:
		next := State{Level: LevelAssessments, Business: s.Business}
		return next, Effect{Kind: EffectLoadAssessments, BusinessID: s.BusinessID()}, nil
	case LevelRuns:
		next := State{Level: LevelRuns, Business: s.Business, Assessment: s.Assessment}
		return next, Effect{Kind: EffectLoadRuns, AssessmentID: s.AssessmentID()}, nil
	default:
		s.SubLevel = SubLevelSummary
		s.SourceID = ""
		return s, Effect{Kind: EffectLoadRunDetail, RunID: s.RunID}, nil
	}
}

// OpenRun navigates straight to a run summary from any level. Used after a
// new evaluation has been started.
func OpenRun(s State, b *domain.Business, a *domain.Assessment, runID string) (State, Effect, error) {
	if runID == "" {
		return invalid(s, "open empty run")
	}
	if a != nil && b == nil {
		return invalid(s, "open run without business")
	}
	next := State{
		Level:      LevelDetail,
		SubLevel:   SubLevelSummary,
		Business:   b,
		Assessment: a,
		RunID:      runID,
	}
	return next, Effect{Kind: EffectLoadRunDetail, RunID: runID}, nil
}

// Refresh reloads the current level in place. The state is unchanged.
func Refresh(s State) (State, Effect, error) {
	switch s.Level {
	case LevelBusinesses:
		return s, Effect{Kind: EffectLoadBusinesses}, nil
	case LevelAssessments:
		return s, Effect{Kind: EffectLoadAssessments, BusinessID: s.BusinessID()}, nil
	case LevelRuns:
		return s, Effect{Kind: EffectLoadRuns, AssessmentID: s.AssessmentID()}, nil
	case LevelDetail:
		return s, Effect{Kind: EffectLoadRunDetail, RunID: s.RunID}, nil
	default:
		return invalid(s, "refresh")
	}
}
