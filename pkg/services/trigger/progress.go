// Package trigger starts evaluation runs and resolves flags on behalf of the
// console.
package trigger

import (
	"context"
	"time"

	"github.com/de-tools/eval-atlas/pkg/models/domain"
)

const DefaultStepDuration = 800 * time.Millisecond

var DefaultSteps = []string{
	"Collecting interview responses",
	"Scoring questions",
	"Computing metrics",
	"Detecting flags",
	"Finalizing report",
}

// SimulatedProgress plays a fixed sequence of labels at a fixed pace. It
// knows nothing about the backend and only exists to give the user feedback
// while an evaluation request is in flight.
type SimulatedProgress struct {
	Steps        []string
	StepDuration time.Duration
}

func DefaultProgress() SimulatedProgress {
	return SimulatedProgress{
		Steps:        DefaultSteps,
		StepDuration: DefaultStepDuration,
	}
}

// Run reports each step and then holds it for StepDuration. It returns
// ctx.Err() if cancelled before the last step has been held.
func (p SimulatedProgress) Run(ctx context.Context, onStep func(domain.ProgressStep)) error {
	for i, label := range p.Steps {
		if onStep != nil {
			onStep(domain.ProgressStep{
				Index: i,
				Total: len(p.Steps),
				Label: label,
			})
		}

		timer := time.NewTimer(p.StepDuration)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// Duration is the total time Run takes when not cancelled.
func (p SimulatedProgress) Duration() time.Duration {
	return time.Duration(len(p.Steps)) * p.StepDuration
}
