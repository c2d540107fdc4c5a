// internal/store/jobs.go
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	commonerrors "venture-agents/internal/common/errors"
	"venture-agents/internal/common/logger"
)

// VideoJob tracks one asynchronous video generation from submission to
// its terminal state, so poll requests can be answered without touching
// the provider.
type VideoJob struct {
	ID        string `json:"id"`
	BrandName string `json:"brand_name"`
	Tagline   string `json:"tagline"`
	Status    string `json:"status"` // pending, complete, failed

	// ProviderRef is the backend's own operation name, kept so the poll
	// loop can resume against the provider.
	ProviderRef string `json:"provider_ref,omitempty"`

	AssetRef  string    `json:"asset_ref,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JobStore keeps video job state in Redis with a TTL; finished jobs age
// out on their own.
type JobStore struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewJobStore(client *redis.Client, ttl time.Duration, log logger.Logger) *JobStore {
	return &JobStore{
		client: client,
		ttl:    ttl,
		logger: log.With(map[string]interface{}{"store": "jobs"}),
	}
}

func jobKey(id string) string { return "videojob:" + id }

// Put writes the job state, refreshing the TTL.
func (s *JobStore) Put(ctx context.Context, job VideoJob) error {
	job.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(job)
	if err != nil {
		return commonerrors.NewStoreWriteFailedError(err)
	}

	if err := s.client.Set(ctx, jobKey(job.ID), payload, s.ttl).Err(); err != nil {
		return commonerrors.NewStoreWriteFailedError(err)
	}
	return nil
}

// Get returns the job, or nil when unknown or expired.
func (s *JobStore) Get(ctx context.Context, id string) (*VideoJob, error) {
	payload, err := s.client.Get(ctx, jobKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var job VideoJob
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// MarkComplete records the terminal success state.
func (s *JobStore) MarkComplete(ctx context.Context, id, assetRef string) error {
	return s.transition(ctx, id, func(job *VideoJob) {
		job.Status = "complete"
		job.AssetRef = assetRef
		job.Error = ""
	})
}

// MarkFailed records the terminal failure state.
func (s *JobStore) MarkFailed(ctx context.Context, id, reason string) error {
	return s.transition(ctx, id, func(job *VideoJob) {
		job.Status = "failed"
		job.Error = reason
	})
}

func (s *JobStore) transition(ctx context.Context, id string, mutate func(*VideoJob)) error {
	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if job == nil {
		return commonerrors.NewStoreWriteFailedError(redis.Nil)
	}

	mutate(job)
	if err := s.Put(ctx, *job); err != nil {
		return err
	}

	s.logger.Info("job state updated", map[string]interface{}{
		"jobId":  id,
		"status": job.Status,
	})
	return nil
}
