// internal/gateway/gateway_test.go
package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	commonerrors "venture-agents/internal/common/errors"
)

func floatPtr(v float32) *float32 { return &v }

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{
			name: "text with temperature",
			req:  Request{Modality: ModalityText, Prompt: "hello", Options: Options{Temperature: floatPtr(0.7)}},
		},
		{
			name:    "text with image size",
			req:     Request{Modality: ModalityText, Prompt: "hello", Options: Options{Width: 512}},
			wantErr: true,
		},
		{
			name: "image with size and count",
			req:  Request{Modality: ModalityImage, Prompt: "a logo", Options: Options{Width: 512, Height: 512, Count: 1}},
		},
		{
			name:    "image with temperature",
			req:     Request{Modality: ModalityImage, Prompt: "a logo", Options: Options{Temperature: floatPtr(0.7)}},
			wantErr: true,
		},
		{
			name: "video plain",
			req:  Request{Modality: ModalityVideo, Prompt: "a promo clip"},
		},
		{
			name:    "video with temperature",
			req:     Request{Modality: ModalityVideo, Prompt: "a promo clip", Options: Options{Temperature: floatPtr(0.2)}},
			wantErr: true,
		},
		{
			name:    "empty prompt",
			req:     Request{Modality: ModalityText, Prompt: ""},
			wantErr: true,
		},
		{
			name:    "unknown modality",
			req:     Request{Modality: Modality("audio"), Prompt: "hello"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if tt.wantErr {
				assert.NotNil(t, err)
				assert.Equal(t, commonerrors.ErrCodeInvalidOptions, err.Code)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

// fakePoller scripts a sequence of poll results and counts calls.
type fakePoller struct {
	results []Result
	calls   int
}

func (f *fakePoller) Poll(ctx context.Context, jobID string) Result {
	f.calls++
	if f.calls <= len(f.results) {
		return f.results[f.calls-1]
	}
	return Result{Modality: ModalityVideo, Status: StatusPending, JobID: jobID}
}

func alwaysPending() *fakePoller {
	return &fakePoller{}
}

func TestAwait_CompletesMidway(t *testing.T) {
	poller := &fakePoller{results: []Result{
		{Modality: ModalityVideo, Status: StatusPending},
		{Modality: ModalityVideo, Status: StatusPending},
		{Modality: ModalityVideo, Status: StatusComplete, Ref: "videos/final.mp4"},
	}}

	result := Await(context.Background(), poller, "job-1", AwaitOptions{
		Interval:    time.Millisecond,
		MaxAttempts: 10,
	})

	assert.Equal(t, StatusComplete, result.Status)
	assert.Equal(t, "videos/final.mp4", result.Ref)
	assert.Equal(t, 3, poller.calls)
}

func TestAwait_TimeoutIsBounded(t *testing.T) {
	poller := alwaysPending()

	start := time.Now()
	result := Await(context.Background(), poller, "job-2", AwaitOptions{
		Interval:    time.Millisecond,
		MaxAttempts: 5,
	})
	elapsed := time.Since(start)

	assert.Equal(t, StatusFailed, result.Status)
	assert.NotNil(t, result.Err)
	assert.Equal(t, commonerrors.ErrCodeGenerationTimeout, result.Err.Code)
	assert.Equal(t, 5, poller.calls, "must stop polling after the attempt budget")
	assert.Less(t, elapsed, time.Second)
}

func TestAwait_FailedJobStopsPolling(t *testing.T) {
	poller := &fakePoller{results: []Result{
		Failed(ModalityVideo, commonerrors.NewEmptyResponseError("gemini")),
	}}

	result := Await(context.Background(), poller, "job-3", AwaitOptions{
		Interval:    time.Millisecond,
		MaxAttempts: 10,
	})

	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, commonerrors.ErrCodeEmptyResponse, result.Err.Code)
	assert.Equal(t, 1, poller.calls)
}

func TestAwait_ContextCancellation(t *testing.T) {
	poller := alwaysPending()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := Await(ctx, poller, "job-4", AwaitOptions{
		Interval:    time.Hour,
		MaxAttempts: 10,
	})

	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, commonerrors.ErrCodeTransport, result.Err.Code)
}

func TestAwait_RejectsUnboundedBudget(t *testing.T) {
	result := Await(context.Background(), alwaysPending(), "job-5", AwaitOptions{})

	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, commonerrors.ErrCodeInvalidOptions, result.Err.Code)
}

func TestFailed(t *testing.T) {
	err := commonerrors.NewTransportError("gemini", context.DeadlineExceeded)

	result := Failed(ModalityText, err)

	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, ModalityText, result.Modality)
	assert.Empty(t, result.Text)
	assert.Same(t, err, result.Err)
}
