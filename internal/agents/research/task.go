// internal/agents/research/task.go
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"venture-agents/internal/agents/task"
	"venture-agents/internal/capability/search"
	commonerrors "venture-agents/internal/common/errors"
	"venture-agents/internal/common/logger"
	"venture-agents/internal/extract"
	"venture-agents/internal/gateway"
	"venture-agents/internal/prompt"
	"venture-agents/internal/store"
)

// analyst is one specialist in the research crew: a prompt, a schema its
// reply must satisfy, and the search query that grounds it.
type analyst struct {
	name       string
	templateID string
	schema     extract.Schema
	query      func(idea string) string
}

var analysts = []analyst{
	{
		name:       "market_analyst",
		templateID: prompt.TemplateMarketAnalyst,
		schema:     marketAnalysisSchema,
		query: func(idea string) string {
			return fmt.Sprintf("%s market size competitors trends", idea)
		},
	},
	{
		name:       "consumer_psychologist",
		templateID: prompt.TemplateConsumerAnalyst,
		schema:     consumerProfileSchema,
		query: func(idea string) string {
			return fmt.Sprintf("%s target customers demographics buying behavior", idea)
		},
	},
	{
		name:       "cultural_strategist",
		templateID: prompt.TemplateCulturalAnalyst,
		schema:     brandGuidelinesSchema,
		query: func(idea string) string {
			return fmt.Sprintf("%s branding visual identity cultural trends", idea)
		},
	},
}

// Task runs the research crew: three analysts in parallel, each grounded
// with web search results, then a synthesis pass that merges whatever
// they produced. A failed analyst contributes an empty section. When
// every analyst fails, or the synthesis pass itself fails, the run
// returns an all-empty report instead of an error.
type Task struct {
	registry    *prompt.Registry
	analystGW   gateway.Gateway
	synthesisGW gateway.Gateway
	searcher    search.Searcher
	reports     *store.ReportStore
	artifacts   *store.ArtifactStore
	cfg         Config
	logger      logger.Logger
}

// NewTask wires the research task. reports and artifacts may be nil when
// persistence is disabled.
func NewTask(registry *prompt.Registry, analystGW, synthesisGW gateway.Gateway, searcher search.Searcher, reports *store.ReportStore, artifacts *store.ArtifactStore, cfg Config, log logger.Logger) *Task {
	return &Task{
		registry:    registry,
		analystGW:   analystGW,
		synthesisGW: synthesisGW,
		searcher:    searcher,
		reports:     reports,
		artifacts:   artifacts,
		cfg:         cfg,
		logger:      log.With(map[string]interface{}{"task": TaskName}),
	}
}

func (t *Task) Run(ctx context.Context, idea string) (*Output, error) {
	tracker := task.NewTracker(TaskName, t.logger)

	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
	defer cancel()

	// ==========================
	// 1. Analyst stage
	// ==========================
	tracker.Advance(task.StatePromptRendered)

	sections := make([]string, len(analysts))
	var wg sync.WaitGroup
	for i, a := range analysts {
		wg.Add(1)
		go func(i int, a analyst) {
			defer wg.Done()
			sections[i] = t.runAnalyst(ctx, a, idea)
		}(i, a)
	}
	wg.Wait()
	tracker.Advance(task.StateGenerated)

	if allEmpty(sections) {
		t.logger.Warn("every analyst failed, returning empty report", map[string]interface{}{
			"idea": idea,
		})
		return t.emptyReport(ctx, idea, tracker), nil
	}

	// ==========================
	// 2. Synthesis stage
	// ==========================
	// Every failure past this point degrades to the all-empty report so
	// callers always receive the full record shape.
	synthesisPrompt, err := t.registry.Render(prompt.TemplateResearchSynthesis, map[string]string{
		"idea":             idea,
		"market_analysis":  sections[0],
		"consumer_profile": sections[1],
		"brand_guidelines": sections[2],
	})
	if err != nil {
		t.logger.WithError(err).Error("synthesis prompt render failed, returning empty report", nil)
		return t.emptyReport(ctx, idea, tracker), nil
	}

	result := t.synthesisGW.Generate(ctx, gateway.Request{
		Modality: gateway.ModalityText,
		Prompt:   synthesisPrompt,
	})
	if result.Status != gateway.StatusComplete {
		t.logger.WithError(result.Err).Warn("synthesis generation failed, returning empty report", nil)
		return t.emptyReport(ctx, idea, tracker), nil
	}
	tracker.Advance(task.StateDependentGenerated)

	var output Output
	if extractErr := extract.Parse(result.Text, researchReportSchema, &output); extractErr != nil {
		t.logger.WithError(extractErr).Warn("synthesis extraction failed, returning empty report", nil)
		return t.emptyReport(ctx, idea, tracker), nil
	}
	tracker.Advance(task.StateExtracted)

	t.persist(ctx, idea, &output)
	tracker.Done()
	return &output, nil
}

// runAnalyst produces the analyst's validated section as compact JSON,
// or an empty string when the analyst failed within its attempt budget.
func (t *Task) runAnalyst(ctx context.Context, a analyst, idea string) string {
	log := t.logger.With(map[string]interface{}{"analyst": a.name})

	hits := t.searchGrounding(ctx, a.query(idea), log)

	analystPrompt, err := t.registry.Render(a.templateID, map[string]string{
		"idea":           idea,
		"search_results": formatHits(hits),
	})
	if err != nil {
		log.WithError(err).Error("analyst prompt render failed", nil)
		return ""
	}

	var lastErr *commonerrors.StandardError
	for attempt := 1; attempt <= t.cfg.MaxIterations; attempt++ {
		result := t.analystGW.Generate(ctx, gateway.Request{
			Modality: gateway.ModalityText,
			Prompt:   analystPrompt,
		})
		if result.Status != gateway.StatusComplete {
			lastErr = result.Err
			continue
		}

		var section map[string]interface{}
		if extractErr := extract.Parse(result.Text, a.schema, &section); extractErr != nil {
			lastErr = extractErr
			continue
		}

		payload, marshalErr := json.Marshal(section)
		if marshalErr != nil {
			lastErr = commonerrors.FromError(marshalErr)
			continue
		}
		return string(payload)
	}

	log.WithError(lastErr).Warn("analyst failed, section left empty", map[string]interface{}{
		"attempts": t.cfg.MaxIterations,
	})
	return ""
}

// searchGrounding fetches web hits for the analyst. Search failures
// degrade to an ungrounded prompt rather than failing the analyst.
func (t *Task) searchGrounding(ctx context.Context, query string, log logger.Logger) []search.Hit {
	if t.searcher == nil {
		return nil
	}
	hits, err := t.searcher.Search(ctx, query)
	if err != nil {
		log.WithError(err).Warn("search grounding unavailable", map[string]interface{}{
			"query": query,
		})
		return nil
	}
	return hits
}

func formatHits(hits []search.Hit) string {
	if len(hits) == 0 {
		return "(no search results available)"
	}
	lines := make([]string, 0, len(hits))
	for i, hit := range hits {
		lines = append(lines, fmt.Sprintf("%d. %s: %s (%s)", i+1, hit.Title, hit.Snippet, hit.Link))
	}
	return strings.Join(lines, "\n")
}

// emptyReport finishes the run with the all-empty record, keeping the
// response shape intact when generation could not produce a report.
func (t *Task) emptyReport(ctx context.Context, idea string, tracker *task.Tracker) *Output {
	output := &Output{}
	t.persist(ctx, idea, output)
	tracker.Done()
	return output
}

func allEmpty(sections []string) bool {
	for _, s := range sections {
		if s != "" {
			return false
		}
	}
	return true
}

func (t *Task) persist(ctx context.Context, idea string, output *Output) {
	if t.artifacts != nil {
		if _, err := t.artifacts.Save(ctx, TaskName, idea, output); err != nil {
			t.logger.WithError(err).Warn("artifact persistence failed", nil)
		}
	}
	if t.reports != nil {
		if _, err := t.reports.Index(ctx, idea, output); err != nil {
			t.logger.WithError(err).Warn("report indexing failed", nil)
		}
	}
}
