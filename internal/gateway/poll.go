// internal/gateway/poll.go
package gateway

import (
	"context"
	"time"

	commonerrors "venture-agents/internal/common/errors"
)

// AwaitOptions bounds a poll loop. Zero values are rejected so an
// unbounded wait can never be configured by accident.
type AwaitOptions struct {
	Interval    time.Duration
	MaxAttempts int
}

// Await polls the job until it completes, fails, the attempt budget is
// spent, or the context is cancelled. Exceeding the budget returns a
// GENERATION_TIMEOUT failure, distinct from a transport error: the job
// may still be running remotely, but this caller is done waiting.
func Await(ctx context.Context, poller Poller, jobID string, opts AwaitOptions) Result {
	if opts.Interval <= 0 || opts.MaxAttempts <= 0 {
		return Failed(ModalityVideo, commonerrors.NewInvalidOptionsError("await requires a positive interval and attempt budget"))
	}

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		result := poller.Poll(ctx, jobID)
		if result.Status != StatusPending {
			return result
		}

		if attempt == opts.MaxAttempts {
			break
		}

		select {
		case <-time.After(opts.Interval):
		case <-ctx.Done():
			return Failed(ModalityVideo, commonerrors.NewTransportError("await", ctx.Err()))
		}
	}

	return Failed(ModalityVideo, commonerrors.NewGenerationTimeoutError(jobID, opts.MaxAttempts))
}
