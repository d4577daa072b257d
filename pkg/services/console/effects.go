package console

import (
	"context"

	"github.com/de-tools/eval-atlas/pkg/models/domain"
	"github.com/de-tools/eval-atlas/pkg/services/loader"
	"github.com/de-tools/eval-atlas/pkg/services/navigation"
	"github.com/rs/zerolog"
)

func (c *Console) execute(ctx context.Context, effect navigation.Effect) error {
	switch effect.Kind {
	case navigation.EffectLoadBusinesses:
		return c.guard(ctx, c.refreshBusinesses)
	case navigation.EffectLoadAssessments:
		return c.guard(ctx, func(ctx context.Context) error {
			return c.loadAssessments(ctx, effect.BusinessID)
		})
	case navigation.EffectLoadRuns:
		return c.guard(ctx, func(ctx context.Context) error {
			return c.loadRuns(ctx, effect.AssessmentID)
		})
	case navigation.EffectLoadRunDetail:
		return c.loadRunDetail(ctx, effect.RunID)
	default:
		return nil
	}
}

// guard runs a foreground load with the loading flag raised and reports a
// failure exactly once. The flag is always lowered. Background polls do not
// go through guard; their failures arrive through the poll's onError.
func (c *Console) guard(ctx context.Context, load func(ctx context.Context) error) error {
	c.mu.Lock()
	c.pending++
	c.lastError = ""
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.pending--
		c.mu.Unlock()
	}()

	if err := load(ctx); err != nil {
		c.reportError(err)
		return err
	}
	return nil
}

func (c *Console) reportError(err error) {
	message := err.Error()

	c.mu.Lock()
	c.lastError = message
	onError := c.onError
	c.mu.Unlock()

	if onError != nil {
		onError(message)
	}
}

func (c *Console) refreshBusinesses(ctx context.Context) error {
	businesses, err := c.loader.LoadEnrichedBusinesses(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.businesses = businesses
	return nil
}

func (c *Console) loadAssessments(ctx context.Context, businessID string) error {
	assessments, err := c.loader.LoadAssessments(ctx, businessID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.BusinessID() == businessID {
		c.assessments = assessments
	}
	return nil
}

func (c *Console) loadRuns(ctx context.Context, assessmentID string) error {
	runs, err := c.loader.LoadRuns(ctx, assessmentID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.AssessmentID() == assessmentID {
		c.runs = runs
	}
	return nil
}

// loadRunDetail loads a run and starts polling it when it is still being
// evaluated.
func (c *Console) loadRunDetail(ctx context.Context, runID string) error {
	return c.guard(ctx, func(ctx context.Context) error {
		bundle, err := c.loader.LoadRunDetail(ctx, runID)
		if err != nil {
			return err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.isSelectedLocked(runID) {
			return nil
		}
		c.run = bundle
		if !bundle.Detail.Status.IsTerminal() && c.poll == nil {
			c.startPollLocked(runID)
		}
		return nil
	})
}

func (c *Console) startPollLocked(runID string) {
	var h *loader.PollHandle

	onUpdate := func(bundle *domain.RunBundle) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.poll != h || !c.isSelectedLocked(runID) {
			return
		}
		c.run = bundle
		if bundle.Detail.Status.IsTerminal() {
			c.poll = nil
		}
	}
	onError := func(err error) {
		c.mu.Lock()
		current := c.poll == h
		if current {
			c.poll = nil
		}
		c.mu.Unlock()
		if current {
			c.reportError(err)
		}
	}

	h = c.loader.PollRunDetail(c.root, c.poller, runID, onUpdate, onError)
	c.poll = h
	zerolog.Ctx(c.root).Debug().Str("run_id", runID).Msg("watching run until it finishes")
}

func (c *Console) isSelectedLocked(runID string) bool {
	return c.state.Level == navigation.LevelDetail && c.state.RunID == runID
}

func (c *Console) reloadRun(ctx context.Context) {
	c.mu.Lock()
	runID := c.state.RunID
	c.mu.Unlock()
	if runID == "" {
		return
	}
	_ = c.loadRunDetail(ctx, runID)
}

func (c *Console) setProgress(step *domain.ProgressStep) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.progress = step
}

// openTriggeredRun navigates to a run created by TriggerEvaluation.
func (c *Console) openTriggeredRun(ctx context.Context, run domain.TriggerResult) {
	_ = c.transition(ctx, func(s navigation.State) (navigation.State, navigation.Effect, error) {
		b, a := c.locateAssessment(run.AssessmentID, s.Business, s.Assessment)
		return navigation.OpenRun(s, b, a, run.RunID)
	})
}
