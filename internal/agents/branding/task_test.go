// internal/agents/branding/task_test.go
package branding

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "venture-agents/internal/common/errors"
	"venture-agents/internal/common/logger"
	"venture-agents/internal/gateway"
	"venture-agents/internal/prompt"
)

// fakeGateway scripts one result per modality and records the requests
// it saw.
type fakeGateway struct {
	textResult  gateway.Result
	imageResult gateway.Result

	textCalls  int
	imageCalls int
	lastText   gateway.Request
	lastImage  gateway.Request
}

func (f *fakeGateway) Generate(_ context.Context, req gateway.Request) gateway.Result {
	switch req.Modality {
	case gateway.ModalityText:
		f.textCalls++
		f.lastText = req
		return f.textResult
	case gateway.ModalityImage:
		f.imageCalls++
		f.lastImage = req
		return f.imageResult
	default:
		return gateway.Failed(req.Modality, commonerrors.NewInvalidOptionsError("unexpected modality"))
	}
}

func textComplete(text string) gateway.Result {
	return gateway.Result{Modality: gateway.ModalityText, Status: gateway.StatusComplete, Text: text}
}

func newTestTask(t *testing.T, gw gateway.Gateway) *Task {
	return NewTask(prompt.NewRegistry(), gw, nil, DefaultConfig(), logger.NewTestLogger(t))
}

func TestTask_Run_Success(t *testing.T) {
	gw := &fakeGateway{
		textResult: textComplete(`{"brand_name": "Urban Paws", "tagline": "Style for city pets"}`),
		imageResult: gateway.Result{
			Modality: gateway.ModalityImage,
			Status:   gateway.StatusComplete,
			Ref:      "gs://assets/logo.png",
		},
	}

	output, err := newTestTask(t, gw).Run(context.Background(), "eco-friendly pet store")

	require.NoError(t, err)
	assert.Equal(t, "Urban Paws", output.BrandName)
	assert.Equal(t, "Style for city pets", output.Tagline)
	assert.Equal(t, "gs://assets/logo.png", output.LogoRef)

	assert.Equal(t, 1, gw.textCalls)
	assert.Equal(t, 1, gw.imageCalls)
	assert.Contains(t, gw.lastText.Prompt, "eco-friendly pet store")
	assert.Contains(t, gw.lastImage.Prompt, "Urban Paws")
	assert.Contains(t, gw.lastImage.Prompt, "Style for city pets")

	require.NotNil(t, gw.lastText.Options.Temperature)
	assert.InDelta(t, 0.7, float64(*gw.lastText.Options.Temperature), 0.001)
	assert.Equal(t, 512, gw.lastImage.Options.Width)
	assert.Equal(t, 512, gw.lastImage.Options.Height)
}

func TestTask_Run_AcceptsFencedReply(t *testing.T) {
	gw := &fakeGateway{
		textResult: textComplete("```json\n{\"brand_name\": \"Urban Paws\", \"tagline\": \"Style for city pets\"}\n```"),
		imageResult: gateway.Result{
			Modality: gateway.ModalityImage,
			Status:   gateway.StatusComplete,
			Ref:      "gs://assets/logo.png",
		},
	}

	output, err := newTestTask(t, gw).Run(context.Background(), "eco-friendly pet store")

	require.NoError(t, err)
	assert.Equal(t, "Urban Paws", output.BrandName)
}

func TestTask_Run_TextFailureSkipsImageStage(t *testing.T) {
	gw := &fakeGateway{
		textResult: gateway.Failed(gateway.ModalityText, commonerrors.NewTransportError("gemini", assert.AnError)),
	}

	output, err := newTestTask(t, gw).Run(context.Background(), "eco-friendly pet store")

	require.Error(t, err)
	assert.Nil(t, output)
	assert.Equal(t, commonerrors.ErrCodeTransport, err.(*commonerrors.StandardError).Code)
	assert.Equal(t, 0, gw.imageCalls)
}

func TestTask_Run_UnparseableReplySkipsImageStage(t *testing.T) {
	gw := &fakeGateway{
		textResult: textComplete("Sure! Here are some great branding ideas for you."),
	}

	output, err := newTestTask(t, gw).Run(context.Background(), "eco-friendly pet store")

	require.Error(t, err)
	assert.Nil(t, output)
	assert.Equal(t, commonerrors.ErrCodeExtractionFailed, err.(*commonerrors.StandardError).Code)
	assert.Equal(t, 0, gw.imageCalls)
}

func TestTask_Run_ImageFailureDegradesToEmptyLogoRef(t *testing.T) {
	gw := &fakeGateway{
		textResult:  textComplete(`{"brand_name": "Urban Paws", "tagline": "Style for city pets"}`),
		imageResult: gateway.Failed(gateway.ModalityImage, commonerrors.NewTransportError("gemini", assert.AnError)),
	}

	output, err := newTestTask(t, gw).Run(context.Background(), "eco-friendly pet store")

	require.NoError(t, err)
	assert.Equal(t, "Urban Paws", output.BrandName)
	assert.Empty(t, output.LogoRef)
}

func TestTask_Run_InlineImageBytesBecomeDataURI(t *testing.T) {
	gw := &fakeGateway{
		textResult: textComplete(`{"brand_name": "Urban Paws", "tagline": "Style for city pets"}`),
		imageResult: gateway.Result{
			Modality: gateway.ModalityImage,
			Status:   gateway.StatusComplete,
			Data:     []byte{0x89, 0x50, 0x4e, 0x47},
		},
	}

	output, err := newTestTask(t, gw).Run(context.Background(), "eco-friendly pet store")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(output.LogoRef, "data:image/png;base64,"))
}
