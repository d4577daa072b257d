// Package navigation models the drill-down through businesses, assessments,
// runs and run detail as pure transitions over State.
package navigation

import (
	"errors"
	"fmt"

	"github.com/de-tools/eval-atlas/pkg/models/domain"
)

type Level string

const (
	LevelBusinesses  Level = "businesses"
	LevelAssessments Level = "assessments"
	LevelRuns        Level = "runs"
	LevelDetail      Level = "detail"
)

var levelRank = map[Level]int{
	LevelBusinesses:  0,
	LevelAssessments: 1,
	LevelRuns:        2,
	LevelDetail:      3,
}

func ParseLevel(s string) (Level, error) {
	l := Level(s)
	if _, ok := levelRank[l]; !ok {
		return "", fmt.Errorf("unknown level %q", s)
	}
	return l, nil
}

type SubLevel string

const (
	SubLevelNone      SubLevel = ""
	SubLevelSummary   SubLevel = "summary"
	SubLevelBreakdown SubLevel = "breakdown"
	SubLevelInterview SubLevel = "interview"
)

var (
	ErrInvalidTransition = errors.New("invalid navigation transition")
	ErrInvalidState      = errors.New("invalid navigation state")
)

// State is the position of one console session. Business and Assessment are
// the selected entities, RunID and SourceID the selected run and interview.
type State struct {
	Level      Level
	SubLevel   SubLevel
	Business   *domain.Business
	Assessment *domain.Assessment
	RunID      string
	SourceID   string
}

func Initial() State {
	return State{Level: LevelBusinesses}
}

func (s State) BusinessID() string {
	if s.Business == nil {
		return ""
	}
	return s.Business.ID
}

func (s State) AssessmentID() string {
	if s.Assessment == nil {
		return ""
	}
	return s.Assessment.ID
}

func (s State) String() string {
	if s.Level == LevelDetail {
		return fmt.Sprintf("%s(%s)", s.Level, s.SubLevel)
	}
	return string(s.Level)
}

func (s State) Validate() error {
	if _, ok := levelRank[s.Level]; !ok {
		return fmt.Errorf("%w: unknown level %q", ErrInvalidState, s.Level)
	}
	if s.Assessment != nil && s.Business == nil {
		return fmt.Errorf("%w: assessment selected without business", ErrInvalidState)
	}
	if s.Level == LevelAssessments && s.Business == nil {
		return fmt.Errorf("%w: assessments level without business", ErrInvalidState)
	}
	if s.Level == LevelRuns && s.Assessment == nil {
		return fmt.Errorf("%w: runs level without assessment", ErrInvalidState)
	}
	if (s.RunID != "") != (s.Level == LevelDetail) {
		return fmt.Errorf("%w: run %q selected at level %s", ErrInvalidState, s.RunID, s.Level)
	}
	if (s.SubLevel != SubLevelNone) != (s.Level == LevelDetail) {
		return fmt.Errorf("%w: sub-level %q at level %s", ErrInvalidState, s.SubLevel, s.Level)
	}
	if (s.SubLevel == SubLevelInterview) != (s.SourceID != "") {
		return fmt.Errorf("%w: interview %q at sub-level %q", ErrInvalidState, s.SourceID, s.SubLevel)
	}
	return nil
}

type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectLoadBusinesses
	EffectLoadAssessments
	EffectLoadRuns
	EffectLoadRunDetail
)

func (k EffectKind) String() string {
	switch k {
	case EffectLoadBusinesses:
		return "load-businesses"
	case EffectLoadAssessments:
		return "load-assessments"
	case EffectLoadRuns:
		return "load-runs"
	case EffectLoadRunDetail:
		return "load-run-detail"
	default:
		return "none"
	}
}

// Effect is the load a caller must run after committing a transition.
type Effect struct {
	Kind         EffectKind
	BusinessID   string
	AssessmentID string
	RunID        string
}

func none() Effect {
	return Effect{Kind: EffectNone}
}
