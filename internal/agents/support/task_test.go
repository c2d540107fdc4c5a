// internal/agents/support/task_test.go
package support

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venture-agents/internal/capability/mail"
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

type fakeMailer struct {
	sendErr error
	sent    []mail.Message
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	f.sent = append(f.sent, msg)
	if f.sendErr != nil {
		return f.sendErr
	}
	return nil
}

func (f *fakeMailer) ListWebhooks(context.Context) ([]mail.Webhook, error) { return nil, nil }
func (f *fakeMailer) CreateWebhook(context.Context, string, []string) (mail.Webhook, error) {
	return mail.Webhook{}, nil
}

func newTestTask(t *testing.T, gw gateway.Gateway, mailer mail.Mailer) *Task {
	return NewTask(prompt.NewRegistry(), gw, mailer, DefaultConfig(), logger.NewTestLogger(t))
}

func inboundFixture() Inbound {
	return Inbound{
		Subject: "Missing order",
		From:    "Jane Doe <jane@example.com>",
		Body:    "My order #123 never arrived. Can you help?",
	}
}

func TestTask_Run_SendsReply(t *testing.T) {
	gw := &fakeGateway{result: gateway.Result{
		Modality: gateway.ModalityText,
		Status:   gateway.StatusComplete,
		Text:     "Hi Jane, sorry about that. We are tracking down order #123 now.",
	}}
	mailer := &fakeMailer{}

	output, err := newTestTask(t, gw, mailer).Run(context.Background(), inboundFixture())

	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", output.To)
	assert.Equal(t, "Hey Jane Doe! Re: Missing order", output.Subject)

	require.Len(t, mailer.sent, 1)
	sent := mailer.sent[0]
	assert.Equal(t, "jane@example.com", sent.To)
	assert.Equal(t, "Hey Jane Doe! Re: Missing order", sent.Subject)
	assert.Equal(t, []string{"support"}, sent.Labels)

	assert.Contains(t, gw.last.Prompt, "Missing order")
	assert.Contains(t, gw.last.Prompt, "Jane Doe <jane@example.com>")
	assert.Contains(t, gw.last.Prompt, "order #123 never arrived")
	require.NotNil(t, gw.last.Options.Temperature)
	assert.InDelta(t, 0.5, float64(*gw.last.Options.Temperature), 0.001)
}

func TestTask_Run_BareAddressFallsBackToLocalPart(t *testing.T) {
	gw := &fakeGateway{result: gateway.Result{
		Modality: gateway.ModalityText,
		Status:   gateway.StatusComplete,
		Text:     "Happy to help.",
	}}
	mailer := &fakeMailer{}

	output, err := newTestTask(t, gw, mailer).Run(context.Background(), Inbound{
		Subject: "Question",
		From:    "jane@example.com",
		Body:    "Do you ship internationally?",
	})

	require.NoError(t, err)
	assert.Equal(t, "Hey jane! Re: Question", output.Subject)
}

func TestTask_Run_UnparseableSender(t *testing.T) {
	gw := &fakeGateway{}
	mailer := &fakeMailer{}

	_, err := newTestTask(t, gw, mailer).Run(context.Background(), Inbound{
		Subject: "Question",
		From:    "not an address",
		Body:    "hello",
	})

	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeInvalidOptions, err.(*commonerrors.StandardError).Code)
	assert.Equal(t, 0, gw.calls)
	assert.Empty(t, mailer.sent)
}

func TestTask_Run_GenerationFailureSendsNothing(t *testing.T) {
	gw := &fakeGateway{result: gateway.Failed(gateway.ModalityText, commonerrors.NewTransportError("gemini", assert.AnError))}
	mailer := &fakeMailer{}

	_, err := newTestTask(t, gw, mailer).Run(context.Background(), inboundFixture())

	require.Error(t, err)
	assert.Empty(t, mailer.sent)
}

func TestTask_Run_SendFailureIsReportedNotRetried(t *testing.T) {
	gw := &fakeGateway{result: gateway.Result{
		Modality: gateway.ModalityText,
		Status:   gateway.StatusComplete,
		Text:     "Happy to help.",
	}}
	mailer := &fakeMailer{sendErr: commonerrors.NewMailSendFailedError(assert.AnError)}

	output, err := newTestTask(t, gw, mailer).Run(context.Background(), inboundFixture())

	require.Error(t, err)
	assert.Nil(t, output)
	assert.Equal(t, commonerrors.ErrCodeMailSendFailed, err.(*commonerrors.StandardError).Code)
	assert.Len(t, mailer.sent, 1)
}
