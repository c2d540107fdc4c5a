// internal/agents/legaldocs/task.go
package legaldocs

import (
	"context"
	"fmt"
	"strconv"

	"venture-agents/internal/agents/task"
	commonerrors "venture-agents/internal/common/errors"
	"venture-agents/internal/common/logger"
	"venture-agents/internal/extract"
	"venture-agents/internal/gateway"
	"venture-agents/internal/prompt"
	"venture-agents/internal/store"
)

// Task drafts the bootstrap legal document set for a store idea. The
// document set is all-or-nothing: a reply with the wrong number of
// documents fails the invocation rather than returning a partial set.
type Task struct {
	registry  *prompt.Registry
	gw        gateway.Gateway
	artifacts *store.ArtifactStore
	cfg       Config
	logger    logger.Logger
}

func NewTask(registry *prompt.Registry, gw gateway.Gateway, artifacts *store.ArtifactStore, cfg Config, log logger.Logger) *Task {
	return &Task{
		registry:  registry,
		gw:        gw,
		artifacts: artifacts,
		cfg:       cfg,
		logger:    log.With(map[string]interface{}{"task": TaskName}),
	}
}

func (t *Task) Run(ctx context.Context, idea string) (*Output, error) {
	tracker := task.NewTracker(TaskName, t.logger)

	if t.cfg.DocumentCount < 1 || t.cfg.DocumentCount > len(documentTypes) {
		return nil, tracker.Fail(commonerrors.NewInvalidOptionsError(
			fmt.Sprintf("document count must be between 1 and %d, got %d", len(documentTypes), t.cfg.DocumentCount)))
	}

	docsPrompt, err := t.registry.Render(prompt.TemplateLegalDocs, map[string]string{
		"idea":           idea,
		"document_count": countWord(t.cfg.DocumentCount),
		"document_list":  documentList(t.cfg.DocumentCount),
	})
	if err != nil {
		return nil, tracker.Fail(err)
	}
	tracker.Advance(task.StatePromptRendered)

	result := t.gw.Generate(ctx, gateway.Request{
		Modality: gateway.ModalityText,
		Prompt:   docsPrompt,
		Options:  gateway.Options{Temperature: &t.cfg.Temperature},
	})
	if result.Status != gateway.StatusComplete {
		return nil, tracker.Fail(result.Err)
	}
	tracker.Advance(task.StateGenerated)

	var documents []Document
	if extractErr := extract.Parse(result.Text, documentSetSchema(t.cfg.DocumentCount), &documents); extractErr != nil {
		return nil, tracker.Fail(extractErr)
	}
	tracker.Advance(task.StateExtracted)

	output := &Output{Documents: documents}
	t.persist(ctx, idea, output)
	tracker.Done()
	return output, nil
}

func (t *Task) persist(ctx context.Context, idea string, output *Output) {
	if t.artifacts == nil {
		return
	}
	if _, err := t.artifacts.Save(ctx, TaskName, idea, output); err != nil {
		t.logger.WithError(err).Warn("artifact persistence failed", nil)
	}
}

// countWord spells out small counts the way the drafting prompt expects.
func countWord(n int) string {
	words := map[int]string{1: "one", 2: "two", 3: "three", 4: "four", 5: "five"}
	if w, ok := words[n]; ok {
		return w
	}
	return strconv.Itoa(n)
}
