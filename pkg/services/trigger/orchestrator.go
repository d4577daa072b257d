package trigger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/de-tools/eval-atlas/pkg/adapters"
	"github.com/de-tools/eval-atlas/pkg/models/domain"
	"github.com/de-tools/eval-atlas/pkg/store/client"
	"github.com/rs/zerolog"
)

const DefaultSettleDelay = 500 * time.Millisecond

var (
	ErrTriggerInProgress = errors.New("an evaluation is already being started")
	ErrInvalidInput      = errors.New("invalid input")
)

// Hooks connect the orchestrator to the session that owns the UI state. Any
// hook may be nil.
type Hooks struct {
	// Progress receives each simulated step, then nil once progress is cleared.
	Progress func(step *domain.ProgressStep)
	OnError  func(err error)
	// Refresh reloads the business list after a run was created.
	Refresh func(ctx context.Context) error
	// OpenRun navigates to the new run.
	OpenRun func(ctx context.Context, run domain.TriggerResult)
	// Reload reloads the current run after a flag was resolved.
	Reload func(ctx context.Context)
}

type Options struct {
	Progress    SimulatedProgress
	SettleDelay time.Duration
}

func DefaultOptions() Options {
	return Options{
		Progress:    DefaultProgress(),
		SettleDelay: DefaultSettleDelay,
	}
}

type Orchestrator struct {
	client  client.AdminClient
	opts    Options
	hooks   Hooks
	running atomic.Bool
}

func NewOrchestrator(c client.AdminClient, opts Options, hooks Hooks) *Orchestrator {
	return &Orchestrator{
		client: c,
		opts:   opts,
		hooks:  hooks,
	}
}

// TriggerEvaluation starts a run for assessmentID while playing the simulated
// progress. A successful request still waits for the simulation to finish.
// It ends either with OnError called once or with OpenRun called once.
func (o *Orchestrator) TriggerEvaluation(ctx context.Context, assessmentID string) (*domain.TriggerResult, error) {
	if assessmentID == "" {
		return nil, o.fail(ctx, fmt.Errorf("%w: assessment id is required", ErrInvalidInput))
	}
	if !o.running.CompareAndSwap(false, true) {
		return nil, o.fail(ctx, ErrTriggerInProgress)
	}
	defer o.running.Store(false)

	logger := zerolog.Ctx(ctx).With().Str("assessment_id", assessmentID).Logger()
	logger.Info().Msg("triggering evaluation")

	simCtx, stopSimulation := context.WithCancel(ctx)
	defer stopSimulation()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = o.opts.Progress.Run(simCtx, o.reportStep)
	}()

	resp, err := o.client.RunEvaluation(ctx, assessmentID)
	if err != nil {
		stopSimulation()
		wg.Wait()
		o.clearProgress()
		return nil, o.fail(ctx, fmt.Errorf("failed to start evaluation: %w", err))
	}
	wg.Wait()

	result := adapters.MapApiTriggerToDomain(assessmentID, resp)
	logger.Info().
		Str("run_id", result.RunID).
		Int("run_number", result.RunNumber).
		Msg("evaluation started")

	if o.hooks.Refresh != nil {
		if err := o.hooks.Refresh(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to refresh businesses after evaluation")
		}
	}

	if err := sleep(ctx, o.opts.SettleDelay); err != nil {
		o.clearProgress()
		return nil, o.fail(ctx, err)
	}

	o.clearProgress()
	if o.hooks.OpenRun != nil {
		o.hooks.OpenRun(ctx, result)
	}
	return &result, nil
}

// ResolveFlag marks a flag resolved and reloads the current run. Nothing is
// changed locally when the request fails.
func (o *Orchestrator) ResolveFlag(ctx context.Context, flagID, resolution string) error {
	resolution = strings.TrimSpace(resolution)
	if flagID == "" || resolution == "" {
		return o.fail(ctx, fmt.Errorf("%w: flag id and resolution are required", ErrInvalidInput))
	}

	if _, err := o.client.ResolveFlag(ctx, flagID, resolution); err != nil {
		return o.fail(ctx, fmt.Errorf("failed to resolve flag %s: %w", flagID, err))
	}
	zerolog.Ctx(ctx).Info().Str("flag_id", flagID).Msg("flag resolved")

	if o.hooks.Reload != nil {
		o.hooks.Reload(ctx)
	}
	return nil
}

func (o *Orchestrator) fail(ctx context.Context, err error) error {
	zerolog.Ctx(ctx).Error().Err(err).Msg("evaluation action failed")
	if o.hooks.OnError != nil {
		o.hooks.OnError(err)
	}
	return err
}

func (o *Orchestrator) reportStep(step domain.ProgressStep) {
	if o.hooks.Progress != nil {
		o.hooks.Progress(&step)
	}
}

func (o *Orchestrator) clearProgress() {
	if o.hooks.Progress != nil {
		o.hooks.Progress(nil)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

