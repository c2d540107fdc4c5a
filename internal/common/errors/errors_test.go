// internal/common/errors/errors_test.go
package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError_PassesStructuredErrorsThrough(t *testing.T) {
	stdErr := NewTransportError("gemini", fmt.Errorf("connection reset"))

	assert.Same(t, stdErr, FromError(stdErr))
}

func TestFromError_WrapsPlainErrors(t *testing.T) {
	coerced := FromError(fmt.Errorf("disk full"))

	require.NotNil(t, coerced)
	assert.Equal(t, ErrCodeInternal, coerced.Code)
	assert.Equal(t, "disk full", coerced.Details)
	assert.False(t, coerced.Retryable)
}

func TestFromError_NilInput(t *testing.T) {
	coerced := FromError(nil)

	require.NotNil(t, coerced)
	assert.Equal(t, ErrCodeInternal, coerced.Code)
}

func TestFromError_TypedNilStandardError(t *testing.T) {
	var stdErr *StandardError
	var err error = stdErr

	coerced := FromError(err)

	require.NotNil(t, coerced)
	assert.Equal(t, ErrCodeInternal, coerced.Code)
	assert.NotEmpty(t, coerced.Details)
}

func TestStandardError_ErrorOnNilReceiver(t *testing.T) {
	var stdErr *StandardError

	assert.NotPanics(t, func() { _ = stdErr.Error() })
}
