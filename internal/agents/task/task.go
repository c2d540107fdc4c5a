// internal/agents/task/task.go
package task

import (
	"time"

	commonerrors "venture-agents/internal/common/errors"
	"venture-agents/internal/common/logger"
	"venture-agents/internal/common/metrics"
)

// State is the lifecycle position of one task invocation. Transitions
// only move forward; a failure at any step jumps straight to StateFailed
// and the invocation never emits a partial result.
type State string

const (
	StateStart              State = "START"
	StatePromptRendered     State = "PROMPT_RENDERED"
	StateGenerated          State = "GENERATED"
	StateExtracted          State = "EXTRACTED"
	StateDependentGenerated State = "DEPENDENT_GENERATED"
	StateDone               State = "DONE"
	StateFailed             State = "FAILED"
)

// Tracker observes one invocation: it logs each state transition and
// records the task outcome metrics when the invocation finishes.
type Tracker struct {
	task    string
	state   State
	started time.Time
	logger  logger.Logger
}

func NewTracker(taskName string, log logger.Logger) *Tracker {
	return &Tracker{
		task:    taskName,
		state:   StateStart,
		started: time.Now(),
		logger:  log.With(map[string]interface{}{"task": taskName}),
	}
}

// Advance moves to the next state.
func (t *Tracker) Advance(next State) {
	t.state = next
	t.logger.Debug("task state transition", map[string]interface{}{
		"state": string(next),
	})
}

// Done marks the invocation successful.
func (t *Tracker) Done() {
	t.state = StateDone
	elapsed := time.Since(t.started)

	metrics.TasksCompleted.WithLabelValues(t.task).Inc()
	metrics.TaskDuration.WithLabelValues(t.task).Observe(elapsed.Seconds())

	t.logger.Info("task completed", map[string]interface{}{
		"state":      string(StateDone),
		"durationMs": elapsed.Milliseconds(),
	})
}

// Fail marks the invocation failed and returns the error in structured
// form so call sites can fail in a single statement.
func (t *Tracker) Fail(failure error) *commonerrors.StandardError {
	err := commonerrors.FromError(failure)
	t.state = StateFailed
	elapsed := time.Since(t.started)

	metrics.TasksFailed.WithLabelValues(t.task, string(err.Code)).Inc()
	metrics.TaskDuration.WithLabelValues(t.task).Observe(elapsed.Seconds())

	t.logger.WithError(err).Error("task failed", map[string]interface{}{
		"state":      string(StateFailed),
		"durationMs": elapsed.Milliseconds(),
	})
	return err
}

// State returns the current lifecycle position.
func (t *Tracker) State() State { return t.state }
