// internal/agents/support/task.go
package support

import (
	"context"
	"fmt"
	netmail "net/mail"
	"strings"

	"venture-agents/internal/agents/task"
	"venture-agents/internal/capability/mail"
	commonerrors "venture-agents/internal/common/errors"
	"venture-agents/internal/common/logger"
	"venture-agents/internal/gateway"
	"venture-agents/internal/prompt"
)

const replyLabel = "support"

// Task drafts and sends a reply to an inbound support email. A failed
// send is reported to the caller; the webhook layer must not resend,
// the provider will redeliver the event if it wants a retry.
type Task struct {
	registry *prompt.Registry
	gw       gateway.Gateway
	mailer   mail.Mailer
	cfg      Config
	logger   logger.Logger
}

func NewTask(registry *prompt.Registry, gw gateway.Gateway, mailer mail.Mailer, cfg Config, log logger.Logger) *Task {
	return &Task{
		registry: registry,
		gw:       gw,
		mailer:   mailer,
		cfg:      cfg,
		logger:   log.With(map[string]interface{}{"task": TaskName}),
	}
}

func (t *Task) Run(ctx context.Context, inbound Inbound) (*Output, error) {
	tracker := task.NewTracker(TaskName, t.logger)

	name, address, err := parseSender(inbound.From)
	if err != nil {
		return nil, tracker.Fail(err)
	}

	replyPrompt, renderErr := t.registry.Render(prompt.TemplateSupportReply, map[string]string{
		"subject": inbound.Subject,
		"name":    name,
		"address": address,
		"body":    inbound.Body,
	})
	if renderErr != nil {
		return nil, tracker.Fail(renderErr)
	}
	tracker.Advance(task.StatePromptRendered)

	result := t.gw.Generate(ctx, gateway.Request{
		Modality: gateway.ModalityText,
		Prompt:   replyPrompt,
		Options:  gateway.Options{Temperature: &t.cfg.Temperature},
	})
	if result.Status != gateway.StatusComplete {
		return nil, tracker.Fail(result.Err)
	}
	tracker.Advance(task.StateGenerated)

	reply := mail.Message{
		To:      address,
		Subject: fmt.Sprintf("Hey %s! Re: %s", name, inbound.Subject),
		Text:    result.Text,
		Labels:  []string{replyLabel},
	}
	if sendErr := t.mailer.Send(ctx, reply); sendErr != nil {
		return nil, tracker.Fail(sendErr)
	}
	tracker.Advance(task.StateDependentGenerated)

	t.logger.Info("support reply sent", map[string]interface{}{
		"to": address,
	})

	tracker.Done()
	return &Output{To: reply.To, Subject: reply.Subject, Body: reply.Text}, nil
}

// parseSender splits a From header into a display name and address. A
// missing display name falls back to the mailbox local part.
func parseSender(from string) (name, address string, err *commonerrors.StandardError) {
	parsed, parseErr := netmail.ParseAddress(from)
	if parseErr != nil {
		return "", "", commonerrors.NewInvalidOptionsError(fmt.Sprintf("unparseable sender address: %s", from))
	}

	name = parsed.Name
	if name == "" {
		name = strings.SplitN(parsed.Address, "@", 2)[0]
	}
	return name, parsed.Address, nil
}
