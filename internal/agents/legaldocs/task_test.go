// internal/agents/legaldocs/task_test.go
package legaldocs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "venture-agents/internal/common/errors"
	"venture-agents/internal/common/logger"
	"venture-agents/internal/gateway"
	"venture-agents/internal/prompt"
)

type fakeGateway struct {
	result gateway.Result
	calls  int
	last   gateway.Request
}

func (f *fakeGateway) Generate(_ context.Context, req gateway.Request) gateway.Result {
	f.calls++
	f.last = req
	return f.result
}

const twoDocsReply = `[
	{
		"doc_type": "privacy_policy_bootstrap",
		"title": "Privacy Policy",
		"summary": "How customer data is collected and used.",
		"placeholders": ["Company Name", "Contact Email"],
		"defaults_used": {"sell_data": false},
		"content": "# Privacy Policy\n\nWe collect account info and order details."
	},
	{
		"doc_type": "website_terms_bootstrap",
		"title": "Website Terms of Use",
		"summary": "Rules for using the store website.",
		"placeholders": ["Governing Law"],
		"defaults_used": {"arbitration": true},
		"content": "# Terms of Use\n\nLimited, revocable license."
	}
]`

func newTestTask(t *testing.T, gw gateway.Gateway) *Task {
	return NewTask(prompt.NewRegistry(), gw, nil, DefaultConfig(), logger.NewTestLogger(t))
}

func TestTask_Run_Success(t *testing.T) {
	gw := &fakeGateway{result: gateway.Result{
		Modality: gateway.ModalityText,
		Status:   gateway.StatusComplete,
		Text:     twoDocsReply,
	}}

	output, err := newTestTask(t, gw).Run(context.Background(), "handmade candle store")

	require.NoError(t, err)
	require.Len(t, output.Documents, 2)
	assert.Equal(t, "privacy_policy_bootstrap", output.Documents[0].DocType)
	assert.Equal(t, "website_terms_bootstrap", output.Documents[1].DocType)
	assert.Contains(t, output.Documents[0].Content, "Privacy Policy")

	assert.Contains(t, gw.last.Prompt, "handmade candle store")
	assert.Contains(t, gw.last.Prompt, "exactly a JSON array of two items: Privacy Policy and Website Terms of Use")
	require.NotNil(t, gw.last.Options.Temperature)
	assert.InDelta(t, 0.3, float64(*gw.last.Options.Temperature), 0.001)
}

func TestTask_Run_ThreeDocumentsWithNDA(t *testing.T) {
	threeDocsReply := `[
		{"doc_type": "privacy_policy_bootstrap", "title": "Privacy Policy", "summary": "s", "content": "c"},
		{"doc_type": "website_terms_bootstrap", "title": "Website Terms of Use", "summary": "s", "content": "c"},
		{"doc_type": "nda_bootstrap", "title": "Mutual NDA", "summary": "s", "content": "c"}
	]`
	gw := &fakeGateway{result: gateway.Result{
		Modality: gateway.ModalityText,
		Status:   gateway.StatusComplete,
		Text:     threeDocsReply,
	}}

	cfg := DefaultConfig()
	cfg.DocumentCount = 3
	legalTask := NewTask(prompt.NewRegistry(), gw, nil, cfg, logger.NewTestLogger(t))

	output, err := legalTask.Run(context.Background(), "handmade candle store")

	require.NoError(t, err)
	require.Len(t, output.Documents, 3)
	assert.Equal(t, "nda_bootstrap", output.Documents[2].DocType)

	assert.Contains(t, gw.last.Prompt, "exactly a JSON array of three items")
	assert.Contains(t, gw.last.Prompt, "Privacy Policy, Website Terms of Use, and Mutual Non-Disclosure Agreement")
}

func TestTask_Run_DocumentCountOutOfRange(t *testing.T) {
	gw := &fakeGateway{}
	cfg := DefaultConfig()
	cfg.DocumentCount = 4
	legalTask := NewTask(prompt.NewRegistry(), gw, nil, cfg, logger.NewTestLogger(t))

	output, err := legalTask.Run(context.Background(), "handmade candle store")

	require.Error(t, err)
	assert.Nil(t, output)
	assert.Equal(t, commonerrors.ErrCodeInvalidOptions, err.(*commonerrors.StandardError).Code)
	assert.Equal(t, 0, gw.calls)
}

func TestTask_Run_WrongDocumentCountFails(t *testing.T) {
	gw := &fakeGateway{result: gateway.Result{
		Modality: gateway.ModalityText,
		Status:   gateway.StatusComplete,
		Text: `[
			{"doc_type": "privacy_policy_bootstrap", "title": "Privacy Policy", "summary": "s", "content": "c"}
		]`,
	}}

	output, err := newTestTask(t, gw).Run(context.Background(), "handmade candle store")

	require.Error(t, err)
	assert.Nil(t, output)
	stdErr := err.(*commonerrors.StandardError)
	assert.Equal(t, commonerrors.ErrCodeCountMismatch, stdErr.Code)
}

func TestTask_Run_ObjectInsteadOfArrayFails(t *testing.T) {
	gw := &fakeGateway{result: gateway.Result{
		Modality: gateway.ModalityText,
		Status:   gateway.StatusComplete,
		Text:     `{"doc_type": "privacy_policy_bootstrap", "title": "Privacy Policy", "summary": "s", "content": "c"}`,
	}}

	_, err := newTestTask(t, gw).Run(context.Background(), "handmade candle store")

	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeExtractionFailed, err.(*commonerrors.StandardError).Code)
}

func TestTask_Run_UnknownDocTypeFails(t *testing.T) {
	gw := &fakeGateway{result: gateway.Result{
		Modality: gateway.ModalityText,
		Status:   gateway.StatusComplete,
		Text: `[
			{"doc_type": "refund_policy", "title": "Refunds", "summary": "s", "content": "c"},
			{"doc_type": "website_terms_bootstrap", "title": "Terms", "summary": "s", "content": "c"}
		]`,
	}}

	_, err := newTestTask(t, gw).Run(context.Background(), "handmade candle store")

	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeSchemaViolation, err.(*commonerrors.StandardError).Code)
}

func TestTask_Run_GenerationFailure(t *testing.T) {
	gw := &fakeGateway{result: gateway.Failed(gateway.ModalityText, commonerrors.NewEmptyResponseError("gemini"))}

	_, err := newTestTask(t, gw).Run(context.Background(), "handmade candle store")

	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeEmptyResponse, err.(*commonerrors.StandardError).Code)
}

func TestCountWord(t *testing.T) {
	assert.Equal(t, "two", countWord(2))
	assert.Equal(t, "five", countWord(5))
	assert.Equal(t, "12", countWord(12))
}

func TestDocumentList(t *testing.T) {
	assert.Equal(t, "Privacy Policy", documentList(1))
	assert.Equal(t, "Privacy Policy and Website Terms of Use", documentList(2))
	assert.Equal(t, "Privacy Policy, Website Terms of Use, and Mutual Non-Disclosure Agreement", documentList(3))
}
