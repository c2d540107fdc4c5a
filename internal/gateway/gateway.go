// internal/gateway/gateway.go
package gateway

import (
	"context"
	"fmt"

	commonerrors "venture-agents/internal/common/errors"
)

// Modality selects the kind of artifact a generation request produces.
type Modality string

const (
	ModalityText  Modality = "text"
	ModalityImage Modality = "image"
	ModalityVideo Modality = "video"
)

// Status of a generation result. Video jobs start pending and must be
// polled until complete or failed; no partial payload is returned while
// pending.
type Status string

const (
	StatusComplete Status = "complete"
	StatusPending  Status = "pending"
	StatusFailed   Status = "failed"
)

// Options carries per-request tuning. Temperature applies to text only;
// Width, Height and Count apply to images only. Model overrides the
// configured default when set.
type Options struct {
	Temperature *float32
	Width       int
	Height      int
	Count       int
	Model       string
}

// Request is one generation call built by an agent task and consumed by
// a gateway. Not persisted.
type Request struct {
	Modality Modality
	Prompt   string
	Options  Options
}

// Result is what a gateway hands back. A failed remote call is encoded
// here, never returned as a Go error, so callers must branch explicitly
// instead of reading success-path fields inside a recovery path.
type Result struct {
	Modality Modality
	Status   Status
	Text     string
	Data     []byte
	Ref      string
	JobID    string
	Err      *commonerrors.StandardError
}

// Failed builds a failed result for the given modality.
func Failed(modality Modality, err *commonerrors.StandardError) Result {
	return Result{Modality: modality, Status: StatusFailed, Err: err}
}

// Gateway is the capability boundary over a hosted generation backend.
type Gateway interface {
	// Generate performs a synchronous generation call. For ModalityVideo
	// it behaves like Submit and returns a pending result with a JobID.
	Generate(ctx context.Context, req Request) Result
}

// Poller resolves asynchronous jobs started by Generate.
type Poller interface {
	Poll(ctx context.Context, jobID string) Result
}

// ValidateRequest checks that the options are legal for the modality.
// An invalid request never reaches the wire.
func ValidateRequest(req Request) *commonerrors.StandardError {
	if req.Prompt == "" {
		return commonerrors.NewInvalidOptionsError("prompt must not be empty")
	}

	switch req.Modality {
	case ModalityText:
		if req.Options.Width != 0 || req.Options.Height != 0 || req.Options.Count != 0 {
			return commonerrors.NewInvalidOptionsError("size and count options are image-only")
		}
	case ModalityImage:
		if req.Options.Temperature != nil {
			return commonerrors.NewInvalidOptionsError("temperature is a text-only option")
		}
		if req.Options.Count < 0 {
			return commonerrors.NewInvalidOptionsError("count must be non-negative")
		}
	case ModalityVideo:
		if req.Options.Temperature != nil {
			return commonerrors.NewInvalidOptionsError("temperature is a text-only option")
		}
		if req.Options.Width != 0 || req.Options.Height != 0 || req.Options.Count != 0 {
			return commonerrors.NewInvalidOptionsError("size and count options are image-only")
		}
	default:
		return commonerrors.NewInvalidOptionsError(fmt.Sprintf("unknown modality: %s", req.Modality))
	}

	return nil
}
