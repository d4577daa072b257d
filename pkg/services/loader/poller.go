package loader

import (
	"context"
	"time"

	"github.com/de-tools/eval-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const DefaultPollInterval = 3 * time.Second

type FetchFunc func(ctx context.Context) (*domain.RunBundle, error)

// Poller re-fetches a run on a fixed interval until it reaches a terminal
// status. There is no backoff and no retry cap.
type Poller struct {
	Interval time.Duration
}

// PollHandle controls one polling task.
type PollHandle struct {
	runID  string
	cancel context.CancelFunc
	done   chan struct{}
}

func (h *PollHandle) RunID() string {
	return h.runID
}

// Cancel stops the task. It does not wait; use Done for that.
func (h *PollHandle) Cancel() {
	h.cancel()
}

// Done is closed once the polling goroutine has exited.
func (h *PollHandle) Done() <-chan struct{} {
	return h.done
}

// Poll starts polling runID. Each tick calls fetch and hands the result to
// onUpdate. The task stops after a terminal status, after the first error
// (reported through onError), or when ctx or the handle is cancelled.
// Callbacks are never invoked after cancellation is observed.
func (p Poller) Poll(
	ctx context.Context,
	runID string,
	fetch FetchFunc,
	onUpdate func(*domain.RunBundle),
	onError func(error),
) *PollHandle {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	h := &PollHandle{
		runID:  runID,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(h.done)
		defer cancel()

		logger := zerolog.Ctx(ctx).With().Str("run_id", runID).Logger()
		logger.Info().Dur("interval", interval).Msg("polling run")
		defer logger.Info().Msg("stopped polling run")

		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			bundle, err := fetch(ctx)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				logger.Warn().Err(err).Msg("poll failed")
				if onError != nil {
					onError(err)
				}
				return
			}
			if onUpdate != nil {
				onUpdate(bundle)
			}
			if bundle.Detail.Status.IsTerminal() {
				return
			}
			timer.Reset(interval)
		}
	}()

	return h
}

// PollRunDetail polls a run through LoadRunDetail.
func (l *Loader) PollRunDetail(
	ctx context.Context,
	p Poller,
	runID string,
	onUpdate func(*domain.RunBundle),
	onError func(error),
) *PollHandle {
	fetch := func(ctx context.Context) (*domain.RunBundle, error) {
		return l.LoadRunDetail(ctx, runID)
	}
	return p.Poll(ctx, runID, fetch, onUpdate, onError)
}
