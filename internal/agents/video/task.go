// internal/agents/video/task.go
package video

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/google/uuid"

	"venture-agents/internal/agents/task"
	"venture-agents/internal/capability/notify"
	"venture-agents/internal/common/logger"
	"venture-agents/internal/gateway"
	"venture-agents/internal/prompt"
	"venture-agents/internal/store"
)

// Request starts one brand-video generation.
type Request struct {
	BrandName string
	Tagline   string
}

// Task runs asynchronous brand-video generation. Start submits the job
// and returns immediately with a pending job record; a background poll
// loop drives the job to its terminal state and publishes a completion
// event.
type Task struct {
	registry *prompt.Registry
	gw       gateway.Gateway
	poller   gateway.Poller
	jobs     *store.JobStore
	notifier notify.Notifier
	cfg      Config
	logger   logger.Logger
}

func NewTask(registry *prompt.Registry, gw gateway.Gateway, poller gateway.Poller, jobs *store.JobStore, notifier notify.Notifier, cfg Config, log logger.Logger) *Task {
	return &Task{
		registry: registry,
		gw:       gw,
		poller:   poller,
		jobs:     jobs,
		notifier: notifier,
		cfg:      cfg,
		logger:   log.With(map[string]interface{}{"task": TaskName}),
	}
}

// Start submits the generation and records the pending job. The
// returned job is what poll requests are answered from; its ID is ours,
// not the provider's.
func (t *Task) Start(ctx context.Context, req Request) (*store.VideoJob, error) {
	tracker := task.NewTracker(TaskName, t.logger)

	videoPrompt, err := t.registry.Render(prompt.TemplateBrandingVideo, map[string]string{
		"brand_name": req.BrandName,
		"tagline":    req.Tagline,
	})
	if err != nil {
		return nil, tracker.Fail(err)
	}
	tracker.Advance(task.StatePromptRendered)

	result := t.gw.Generate(ctx, gateway.Request{
		Modality: gateway.ModalityVideo,
		Prompt:   videoPrompt,
	})
	if result.Status == gateway.StatusFailed {
		return nil, tracker.Fail(result.Err)
	}
	tracker.Advance(task.StateGenerated)

	job := store.VideoJob{
		ID:          uuid.New().String(),
		BrandName:   req.BrandName,
		Tagline:     req.Tagline,
		Status:      "pending",
		ProviderRef: result.JobID,
		CreatedAt:   time.Now().UTC(),
	}
	if storeErr := t.jobs.Put(ctx, job); storeErr != nil {
		return nil, tracker.Fail(storeErr)
	}

	go t.await(job)

	tracker.Done()
	return &job, nil
}

// Status answers a poll request from the job store. Unknown ids return
// nil without error.
func (t *Task) Status(ctx context.Context, jobID string) (*store.VideoJob, error) {
	return t.jobs.Get(ctx, jobID)
}

// await drives a submitted job to its terminal state. It runs detached
// from the submitting request, bounded by the poll budget.
func (t *Task) await(job store.VideoJob) {
	ctx, cancel := context.WithTimeout(context.Background(), t.awaitBudget())
	defer cancel()

	log := t.logger.With(map[string]interface{}{"jobId": job.ID})

	result := gateway.Await(ctx, t.poller, job.ProviderRef, gateway.AwaitOptions{
		Interval:    t.cfg.PollInterval,
		MaxAttempts: t.cfg.MaxPollAttempts,
	})

	event := notify.JobEvent{
		JobID:     job.ID,
		Task:      TaskName,
		Timestamp: time.Now().UTC(),
	}

	if assetRef := assetReference(result); result.Status == gateway.StatusComplete && assetRef != "" {
		if err := t.jobs.MarkComplete(ctx, job.ID, assetRef); err != nil {
			log.WithError(err).Error("failed to record job completion", nil)
		}
		event.Status = "complete"
		event.AssetRef = assetRef
		log.Info("video job completed", map[string]interface{}{"assetRef": assetRef})
	} else if result.Status == gateway.StatusComplete {
		// Completed with neither a URI nor inline bytes: nothing for the
		// caller to fetch, so the job cannot be reported complete.
		reason := "video completed without a retrievable asset"
		if err := t.jobs.MarkFailed(ctx, job.ID, reason); err != nil {
			log.WithError(err).Error("failed to record job failure", nil)
		}
		event.Status = "failed"
		event.Error = reason
		log.Warn("video job completed without asset", nil)
	} else {
		reason := "video generation failed"
		if result.Err != nil {
			reason = result.Err.Message
		}
		if err := t.jobs.MarkFailed(ctx, job.ID, reason); err != nil {
			log.WithError(err).Error("failed to record job failure", nil)
		}
		event.Status = "failed"
		event.Error = reason
		log.WithError(result.Err).Warn("video job failed", nil)
	}

	if t.notifier != nil {
		if err := t.notifier.Publish(ctx, event); err != nil {
			log.WithError(err).Warn("job event publish failed", nil)
		}
	}
}

// assetReference resolves how the finished asset is reached: the
// provider URI when one was issued, otherwise the inline bytes as a
// data URI.
func assetReference(result gateway.Result) string {
	if result.Ref != "" {
		return result.Ref
	}
	if len(result.Data) > 0 {
		return "data:video/mp4;base64," + base64.StdEncoding.EncodeToString(result.Data)
	}
	return ""
}

// awaitBudget leaves headroom past the final poll for the store writes.
func (t *Task) awaitBudget() time.Duration {
	return t.cfg.PollInterval*time.Duration(t.cfg.MaxPollAttempts+1) + 30*time.Second
}
