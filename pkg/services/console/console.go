// Package console holds one interactive evaluation session: the navigation
// state, the data loaded for it and the background poll of a running
// evaluation.
package console

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/de-tools/eval-atlas/pkg/models/domain"
	"github.com/de-tools/eval-atlas/pkg/services/loader"
	"github.com/de-tools/eval-atlas/pkg/services/navigation"
	"github.com/de-tools/eval-atlas/pkg/services/trigger"
	"github.com/de-tools/eval-atlas/pkg/store/client"
	"github.com/rs/zerolog"
)

var (
	ErrClosed        = errors.New("console session is closed")
	ErrUnknownEntity = errors.New("unknown entity")
	ErrNoRunSelected = errors.New("no run selected")
)

type Config struct {
	PollInterval time.Duration
	Progress     trigger.SimulatedProgress
	SettleDelay  time.Duration
	// OnError receives one message per failed load or action.
	OnError func(message string)
}

func DefaultConfig() Config {
	return Config{
		PollInterval: loader.DefaultPollInterval,
		Progress:     trigger.DefaultProgress(),
		SettleDelay:  trigger.DefaultSettleDelay,
	}
}

type Console struct {
	loader       *loader.Loader
	orchestrator *trigger.Orchestrator
	poller       loader.Poller
	onError      func(message string)

	mu          sync.Mutex
	root        context.Context
	cancelRoot  context.CancelFunc
	closed      bool
	state       navigation.State
	businesses  []domain.Business
	assessments []domain.Assessment
	runs        []domain.RunSummary
	run         *domain.RunBundle
	insights    *domain.RefinedReport
	progress    *domain.ProgressStep
	pending     int
	lastError   string
	poll        *loader.PollHandle
}

func New(c client.AdminClient, l *loader.Loader, cfg Config) *Console {
	root, cancel := context.WithCancel(context.Background())
	con := &Console{
		loader:     l,
		poller:     loader.Poller{Interval: cfg.PollInterval},
		onError:    cfg.OnError,
		root:       root,
		cancelRoot: cancel,
		state:      navigation.Initial(),
	}
	con.orchestrator = trigger.NewOrchestrator(c, trigger.Options{
		Progress:    cfg.Progress,
		SettleDelay: cfg.SettleDelay,
	}, trigger.Hooks{
		Progress: con.setProgress,
		OnError:  con.reportError,
		Refresh:  con.refreshBusinesses,
		OpenRun:  con.openTriggeredRun,
		Reload:   con.reloadRun,
	})
	return con
}

// Open loads the business list. Background work started by the session
// inherits the values of ctx, such as its logger, but not its cancellation.
func (c *Console) Open(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.cancelRoot()
	c.root, c.cancelRoot = context.WithCancel(context.WithoutCancel(ctx))
	c.mu.Unlock()

	return c.execute(ctx, navigation.Effect{Kind: navigation.EffectLoadBusinesses})
}

// Close stops the background poll and waits for it to exit.
func (c *Console) Close() {
	c.mu.Lock()
	c.closed = true
	c.cancelRoot()
	h := c.poll
	c.poll = nil
	c.mu.Unlock()

	if h != nil {
		h.Cancel()
		<-h.Done()
	}
}

func (c *Console) SelectBusiness(ctx context.Context, businessID string) error {
	return c.transition(ctx, func(s navigation.State) (navigation.State, navigation.Effect, error) {
		b, ok := c.findBusiness(businessID)
		if !ok {
			return s, navigation.Effect{}, fmt.Errorf("%w: business %s", ErrUnknownEntity, businessID)
		}
		return navigation.SelectBusiness(s, b)
	})
}

func (c *Console) SelectAssessment(ctx context.Context, assessmentID string) error {
	return c.transition(ctx, func(s navigation.State) (navigation.State, navigation.Effect, error) {
		a, ok := c.findAssessment(assessmentID)
		if !ok {
			return s, navigation.Effect{}, fmt.Errorf("%w: assessment %s", ErrUnknownEntity, assessmentID)
		}
		return navigation.SelectAssessment(s, a)
	})
}

func (c *Console) SelectRun(ctx context.Context, runID string) error {
	return c.transition(ctx, func(s navigation.State) (navigation.State, navigation.Effect, error) {
		if s.Level == navigation.LevelRuns && !c.hasRun(runID) {
			return s, navigation.Effect{}, fmt.Errorf("%w: run %s", ErrUnknownEntity, runID)
		}
		return navigation.SelectRun(s, runID)
	})
}

func (c *Console) ViewBreakdown() error {
	return c.transition(context.Background(), navigation.ViewBreakdown)
}

func (c *Console) SelectInterview(sourceID string) error {
	return c.transition(context.Background(), func(s navigation.State) (navigation.State, navigation.Effect, error) {
		if s.Level == navigation.LevelDetail && c.run != nil {
			if _, ok := c.run.Detail.Source(sourceID); !ok {
				return s, navigation.Effect{}, fmt.Errorf("%w: interview %s", ErrUnknownEntity, sourceID)
			}
		}
		return navigation.SelectInterview(s, sourceID)
	})
}

func (c *Console) Back(ctx context.Context) error {
	return c.transition(ctx, navigation.Back)
}

func (c *Console) JumpTo(ctx context.Context, level navigation.Level) error {
	return c.transition(ctx, func(s navigation.State) (navigation.State, navigation.Effect, error) {
		return navigation.JumpTo(s, level)
	})
}

// Refresh reloads the current level, for instance after Open failed.
func (c *Console) Refresh(ctx context.Context) error {
	return c.transition(ctx, navigation.Refresh)
}

// OpenRun shows a run's summary regardless of the current level.
func (c *Console) OpenRun(ctx context.Context, runID string) error {
	return c.transition(ctx, func(s navigation.State) (navigation.State, navigation.Effect, error) {
		b, a := c.locateRun(runID, s.Business, s.Assessment)
		return navigation.OpenRun(s, b, a, runID)
	})
}

func (c *Console) TriggerEvaluation(ctx context.Context, assessmentID string) (*domain.TriggerResult, error) {
	if c.isClosed() {
		return nil, ErrClosed
	}
	return c.orchestrator.TriggerEvaluation(ctx, assessmentID)
}

func (c *Console) ResolveFlag(ctx context.Context, flagID, resolution string) error {
	if c.isClosed() {
		return ErrClosed
	}
	c.mu.Lock()
	runID := c.state.RunID
	c.mu.Unlock()
	if runID == "" {
		return ErrNoRunSelected
	}
	return c.orchestrator.ResolveFlag(ctx, flagID, resolution)
}

// LoadInsights fetches the refined report of the selected run.
func (c *Console) LoadInsights(ctx context.Context) error {
	c.mu.Lock()
	closed, runID := c.closed, c.state.RunID
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if runID == "" {
		return ErrNoRunSelected
	}

	return c.guard(ctx, func(ctx context.Context) error {
		report, err := c.loader.LoadRefinedReport(ctx, runID)
		if err != nil {
			return err
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.state.RunID == runID {
			c.insights = &report
		}
		return nil
	})
}

// transition applies a navigation step under the lock, then runs its load.
func (c *Console) transition(
	ctx context.Context,
	step func(navigation.State) (navigation.State, navigation.Effect, error),
) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	next, effect, err := step(c.state)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.commitStateLocked(next)
	c.mu.Unlock()

	zerolog.Ctx(ctx).Debug().
		Str("level", next.String()).
		Str("effect", effect.Kind.String()).
		Msg("navigated")

	return c.execute(ctx, effect)
}

func (c *Console) commitStateLocked(next navigation.State) {
	prev := c.state
	c.state = next

	// Lists belong to the selection they were loaded for. A failed reload
	// must leave them empty, not showing the previous parent's children.
	if next.BusinessID() != prev.BusinessID() {
		c.assessments = nil
	}
	if next.AssessmentID() != prev.AssessmentID() {
		c.runs = nil
	}
	if next.RunID != prev.RunID {
		c.stopPollLocked()
		c.run = nil
		c.insights = nil
	}
	if next.Level != navigation.LevelDetail {
		c.stopPollLocked()
	}
}

func (c *Console) stopPollLocked() {
	if c.poll != nil {
		c.poll.Cancel()
		c.poll = nil
	}
}

func (c *Console) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
