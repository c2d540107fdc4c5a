// internal/agents/branding/task.go
package branding

import (
	"context"
	"encoding/base64"

	"venture-agents/internal/agents/task"
	"venture-agents/internal/common/logger"
	"venture-agents/internal/extract"
	"venture-agents/internal/gateway"
	"venture-agents/internal/prompt"
	"venture-agents/internal/store"
)

// Task turns a business idea into a brand name, tagline, and logo. The
// logo call depends on the extracted name and tagline, so it only runs
// after the text stage validated; a logo failure degrades the result
// instead of failing it.
type Task struct {
	registry  *prompt.Registry
	gw        gateway.Gateway
	artifacts *store.ArtifactStore
	cfg       Config
	logger    logger.Logger
}

// NewTask wires the branding task. artifacts may be nil when
// persistence is disabled.
func NewTask(registry *prompt.Registry, gw gateway.Gateway, artifacts *store.ArtifactStore, cfg Config, log logger.Logger) *Task {
	return &Task{
		registry:  registry,
		gw:        gw,
		artifacts: artifacts,
		cfg:       cfg,
		logger:    log.With(map[string]interface{}{"task": TaskName}),
	}
}

// Run executes one branding invocation for the idea.
func (t *Task) Run(ctx context.Context, idea string) (*Output, error) {
	tracker := task.NewTracker(TaskName, t.logger)

	// ==========================
	// 1. Text stage
	// ==========================
	textPrompt, err := t.registry.Render(prompt.TemplateBrandingText, map[string]string{
		"idea": idea,
	})
	if err != nil {
		return nil, tracker.Fail(err)
	}
	tracker.Advance(task.StatePromptRendered)

	textResult := t.gw.Generate(ctx, gateway.Request{
		Modality: gateway.ModalityText,
		Prompt:   textPrompt,
		Options:  gateway.Options{Temperature: &t.cfg.Temperature},
	})
	if textResult.Status != gateway.StatusComplete {
		return nil, tracker.Fail(textResult.Err)
	}
	tracker.Advance(task.StateGenerated)

	var assets BrandAssets
	if extractErr := extract.Parse(textResult.Text, brandAssetsSchema, &assets); extractErr != nil {
		return nil, tracker.Fail(extractErr)
	}
	tracker.Advance(task.StateExtracted)

	// ==========================
	// 2. Logo stage
	// ==========================
	output := &Output{
		BrandName: assets.BrandName,
		Tagline:   assets.Tagline,
		LogoRef:   t.generateLogo(ctx, tracker, assets),
	}

	t.persist(ctx, idea, output)
	tracker.Done()
	return output, nil
}

// generateLogo returns a reference to the generated logo, or an empty
// string when generation failed.
func (t *Task) generateLogo(ctx context.Context, tracker *task.Tracker, assets BrandAssets) string {
	logoPrompt, err := t.registry.Render(prompt.TemplateBrandingLogo, map[string]string{
		"brand_name": assets.BrandName,
		"tagline":    assets.Tagline,
	})
	if err != nil {
		t.logger.WithError(err).Warn("logo prompt render failed, continuing without logo", nil)
		return ""
	}

	result := t.gw.Generate(ctx, gateway.Request{
		Modality: gateway.ModalityImage,
		Prompt:   logoPrompt,
		Options: gateway.Options{
			Width:  t.cfg.ImageWidth,
			Height: t.cfg.ImageHeight,
			Count:  1,
		},
	})
	if result.Status != gateway.StatusComplete {
		t.logger.WithError(result.Err).Warn("logo generation failed, continuing without logo", map[string]interface{}{
			"brandName": assets.BrandName,
		})
		return ""
	}
	tracker.Advance(task.StateDependentGenerated)

	if result.Ref != "" {
		return result.Ref
	}
	if len(result.Data) > 0 {
		return "data:image/png;base64," + base64.StdEncoding.EncodeToString(result.Data)
	}
	return ""
}

func (t *Task) persist(ctx context.Context, idea string, output *Output) {
	if t.artifacts == nil {
		return
	}
	if _, err := t.artifacts.Save(ctx, TaskName, idea, output); err != nil {
		t.logger.WithError(err).Warn("artifact persistence failed", nil)
	}
}
