package trigger

import (
	"context"
	"testing"
	"time"

	"github.com/de-tools/eval-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestDefaultProgress(t *testing.T) {
	p := DefaultProgress()
	assert.Len(t, p.Steps, 5)
	assert.Equal(t, 800*time.Millisecond, p.StepDuration)
	assert.Equal(t, 4*time.Second, p.Duration())
}

func TestSimulatedProgress_Run(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := SimulatedProgress{Steps: DefaultSteps, StepDuration: 5 * time.Millisecond}
	var steps []domain.ProgressStep

	start := time.Now()
	err := p.Run(context.Background(), func(step domain.ProgressStep) {
		steps = append(steps, step)
	})

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), p.Duration())
	assert.Len(t, steps, 5)
	for i, step := range steps {
		assert.Equal(t, i, step.Index)
		assert.Equal(t, 5, step.Total)
		assert.Equal(t, DefaultSteps[i], step.Label)
	}
}

func TestSimulatedProgress_Cancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := SimulatedProgress{Steps: DefaultSteps, StepDuration: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())

	var steps []domain.ProgressStep
	done := make(chan error)
	go func() {
		done <- p.Run(ctx, func(step domain.ProgressStep) { steps = append(steps, step) })
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("progress did not stop")
	}
	assert.Len(t, steps, 1)
}
