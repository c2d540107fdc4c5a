// internal/gateway/openai.go
package gateway

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"venture-agents/internal/common/config"
	commonerrors "venture-agents/internal/common/errors"
	"venture-agents/internal/common/logger"
	"venture-agents/internal/common/metrics"
)

const openaiProvider = "openai"

// OpenAIGateway is a text-only gateway used by the research analysts.
type OpenAIGateway struct {
	client openai.Client
	cfg    config.OpenAIConfig
	logger logger.Logger
}

func NewOpenAIGateway(cfg config.OpenAIConfig, log logger.Logger) *OpenAIGateway {
	return &OpenAIGateway{
		client: openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		cfg:    cfg,
		logger: log.With(map[string]interface{}{"provider": openaiProvider}),
	}
}

func (g *OpenAIGateway) Generate(ctx context.Context, req Request) Result {
	if verr := ValidateRequest(req); verr != nil {
		return Failed(req.Modality, verr)
	}

	if req.Modality != ModalityText {
		return Failed(req.Modality, commonerrors.NewInvalidOptionsError(
			fmt.Sprintf("openai gateway supports text only, got %s", req.Modality)))
	}

	model := req.Options.Model
	if model == "" {
		model = g.cfg.Model
	}

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		Model: model,
	}
	if req.Options.Temperature != nil {
		params.Temperature = openai.Float(float64(*req.Options.Temperature))
	}

	completion, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		metrics.GenerationCalls.WithLabelValues(openaiProvider, string(ModalityText), "failed").Inc()
		g.logger.Error("text generation failed", map[string]interface{}{
			"model": model,
			"error": err.Error(),
		})
		return Failed(ModalityText, commonerrors.NewTransportError(openaiProvider, err))
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		metrics.GenerationCalls.WithLabelValues(openaiProvider, string(ModalityText), "empty").Inc()
		return Failed(ModalityText, commonerrors.NewEmptyResponseError(openaiProvider))
	}

	metrics.GenerationCalls.WithLabelValues(openaiProvider, string(ModalityText), "complete").Inc()
	return Result{Modality: ModalityText, Status: StatusComplete, Text: completion.Choices[0].Message.Content}
}
