// internal/gateway/gemini.go
package gateway

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"venture-agents/internal/common/config"
	commonerrors "venture-agents/internal/common/errors"
	"venture-agents/internal/common/logger"
	"venture-agents/internal/common/metrics"
)

const geminiProvider = "gemini"

// GeminiGateway serves text and image generation plus asynchronous video
// jobs through the Google GenAI API. Safe for concurrent use; the client
// is read-only after construction.
type GeminiGateway struct {
	client *genai.Client
	cfg    config.GeminiConfig
	logger logger.Logger
}

func NewGeminiGateway(ctx context.Context, cfg config.GeminiConfig, log logger.Logger) (*GeminiGateway, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiGateway{
		client: client,
		cfg:    cfg,
		logger: log.With(map[string]interface{}{"provider": geminiProvider}),
	}, nil
}

func (g *GeminiGateway) Generate(ctx context.Context, req Request) Result {
	if verr := ValidateRequest(req); verr != nil {
		return Failed(req.Modality, verr)
	}

	switch req.Modality {
	case ModalityText:
		return g.generateText(ctx, req)
	case ModalityImage:
		return g.generateImage(ctx, req)
	case ModalityVideo:
		return g.submitVideo(ctx, req)
	default:
		return Failed(req.Modality, commonerrors.NewInvalidOptionsError(fmt.Sprintf("unknown modality: %s", req.Modality)))
	}
}

func (g *GeminiGateway) generateText(ctx context.Context, req Request) Result {
	model := req.Options.Model
	if model == "" {
		model = g.cfg.TextModel
	}

	genCfg := &genai.GenerateContentConfig{}
	if req.Options.Temperature != nil {
		genCfg.Temperature = genai.Ptr[float32](*req.Options.Temperature)
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), genCfg)
	if err != nil {
		metrics.GenerationCalls.WithLabelValues(geminiProvider, string(ModalityText), "failed").Inc()
		g.logger.Error("text generation failed", map[string]interface{}{
			"model": model,
			"error": err.Error(),
		})
		return Failed(ModalityText, commonerrors.NewTransportError(geminiProvider, err))
	}

	text := resp.Text()
	if text == "" {
		metrics.GenerationCalls.WithLabelValues(geminiProvider, string(ModalityText), "empty").Inc()
		return Failed(ModalityText, commonerrors.NewEmptyResponseError(geminiProvider))
	}

	metrics.GenerationCalls.WithLabelValues(geminiProvider, string(ModalityText), "complete").Inc()
	return Result{Modality: ModalityText, Status: StatusComplete, Text: text}
}

func (g *GeminiGateway) generateImage(ctx context.Context, req Request) Result {
	model := req.Options.Model
	if model == "" {
		model = g.cfg.ImageModel
	}

	count := req.Options.Count
	if count == 0 {
		count = 1
	}

	resp, err := g.client.Models.GenerateImages(ctx, model, req.Prompt, &genai.GenerateImagesConfig{
		NumberOfImages: int32(count),
	})
	if err != nil {
		metrics.GenerationCalls.WithLabelValues(geminiProvider, string(ModalityImage), "failed").Inc()
		g.logger.Error("image generation failed", map[string]interface{}{
			"model": model,
			"error": err.Error(),
		})
		return Failed(ModalityImage, commonerrors.NewTransportError(geminiProvider, err))
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		metrics.GenerationCalls.WithLabelValues(geminiProvider, string(ModalityImage), "empty").Inc()
		return Failed(ModalityImage, commonerrors.NewEmptyResponseError(geminiProvider))
	}

	image := resp.GeneratedImages[0].Image
	metrics.GenerationCalls.WithLabelValues(geminiProvider, string(ModalityImage), "complete").Inc()
	return Result{
		Modality: ModalityImage,
		Status:   StatusComplete,
		Data:     image.ImageBytes,
		Ref:      image.GCSURI,
	}
}

func (g *GeminiGateway) submitVideo(ctx context.Context, req Request) Result {
	model := req.Options.Model
	if model == "" {
		model = g.cfg.VideoModel
	}

	op, err := g.client.Models.GenerateVideos(ctx, model, req.Prompt, nil, nil)
	if err != nil {
		metrics.GenerationCalls.WithLabelValues(geminiProvider, string(ModalityVideo), "failed").Inc()
		g.logger.Error("video submit failed", map[string]interface{}{
			"model": model,
			"error": err.Error(),
		})
		return Failed(ModalityVideo, commonerrors.NewTransportError(geminiProvider, err))
	}

	metrics.GenerationCalls.WithLabelValues(geminiProvider, string(ModalityVideo), "submitted").Inc()
	g.logger.Info("video job submitted", map[string]interface{}{
		"model": model,
		"jobId": op.Name,
	})

	return Result{Modality: ModalityVideo, Status: StatusPending, JobID: op.Name}
}

// Poll resolves a video job previously submitted through Generate.
func (g *GeminiGateway) Poll(ctx context.Context, jobID string) Result {
	op, err := g.client.Operations.GetVideosOperation(ctx, &genai.GenerateVideosOperation{Name: jobID}, nil)
	if err != nil {
		return Failed(ModalityVideo, commonerrors.NewTransportError(geminiProvider, err))
	}

	if !op.Done {
		return Result{Modality: ModalityVideo, Status: StatusPending, JobID: jobID}
	}

	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		return Failed(ModalityVideo, commonerrors.NewEmptyResponseError(geminiProvider))
	}

	video := op.Response.GeneratedVideos[0].Video
	result := Result{Modality: ModalityVideo, Status: StatusComplete, JobID: jobID}
	if video != nil {
		result.Ref = video.URI
		result.Data = video.VideoBytes
	}
	return result
}
