// internal/capability/notify/sns.go
package notify

import (
	"context"
	"encoding/json"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	commonaws "venture-agents/internal/common/aws"
	commonerrors "venture-agents/internal/common/errors"
	"venture-agents/internal/common/logger"
)

// JobEvent announces the terminal state of an asynchronous generation
// job to downstream consumers.
type JobEvent struct {
	JobID     string    `json:"job_id"`
	Task      string    `json:"task"`
	Status    string    `json:"status"`
	AssetRef  string    `json:"asset_ref,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier publishes job completion events.
type Notifier interface {
	Publish(ctx context.Context, event JobEvent) error
}

// SNSNotifier publishes to an SNS topic.
type SNSNotifier struct {
	client   *commonaws.SNSClient
	topicARN string
	logger   logger.Logger
}

func NewSNSNotifier(client *commonaws.SNSClient, topicARN string, log logger.Logger) *SNSNotifier {
	return &SNSNotifier{
		client:   client,
		topicARN: topicARN,
		logger:   log.With(map[string]interface{}{"capability": "notify"}),
	}
}

func (n *SNSNotifier) Publish(ctx context.Context, event JobEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return commonerrors.NewNotifyFailedError(err)
	}

	_, err = n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: awssdk.String(n.topicARN),
		Message:  awssdk.String(string(payload)),
	})
	if err != nil {
		return commonerrors.NewNotifyFailedError(err)
	}

	n.logger.Info("job event published", map[string]interface{}{
		"jobId":  event.JobID,
		"status": event.Status,
	})
	return nil
}

// NoOpNotifier is used when notifications are disabled in config.
type NoOpNotifier struct{}

func (NoOpNotifier) Publish(ctx context.Context, event JobEvent) error { return nil }
