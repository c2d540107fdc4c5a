// Package errors provides standardized error handling for agent task execution.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Template errors are programmer errors: a call site asked for a template
	// that does not exist or failed to supply a placeholder value. Never
	// retried, never silently defaulted.
	ErrCodeTemplateNotFound        ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeTemplateMissingVariable ErrorCode = "TEMPLATE_MISSING_VARIABLE"

	// Generation errors cover the remote model providers.
	ErrCodeTransport         ErrorCode = "TRANSPORT_ERROR"
	ErrCodeEmptyResponse     ErrorCode = "EMPTY_RESPONSE"
	ErrCodeGenerationTimeout ErrorCode = "GENERATION_TIMEOUT"
	ErrCodeInvalidOptions    ErrorCode = "INVALID_GENERATION_OPTIONS"

	// Extraction errors cover parsing untrusted model output.
	ErrCodeExtractionFailed ErrorCode = "EXTRACTION_FAILED"
	ErrCodeCountMismatch    ErrorCode = "COUNT_MISMATCH"
	ErrCodeSchemaViolation  ErrorCode = "SCHEMA_VIOLATION"

	// Capability errors cover the SaaS collaborators.
	ErrCodeMailSendFailed    ErrorCode = "MAIL_SEND_FAILED"
	ErrCodeWebhookFailed     ErrorCode = "WEBHOOK_SETUP_FAILED"
	ErrCodeSearchFailed      ErrorCode = "SEARCH_FAILED"
	ErrCodeSearchTimeout     ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeCommerceAuth      ErrorCode = "COMMERCE_AUTH_FAILED"
	ErrCodeNotifyFailed      ErrorCode = "NOTIFY_PUBLISH_FAILED"
	ErrCodeStoreWriteFailed  ErrorCode = "STORE_WRITE_FAILED"
	ErrCodeReportIndexFailed ErrorCode = "REPORT_INDEX_FAILED"

	// ErrCodeInternal wraps errors that escaped classification.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e == nil {
		return "StandardError[nil]"
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewTemplateNotFoundError creates a non-retryable template error.
func NewTemplateNotFoundError(templateID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateNotFound,
		Message:   "Template not found in registry",
		Details:   fmt.Sprintf("templateId: %s", templateID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingVariableError creates a non-retryable template rendering error.
func NewMissingVariableError(templateID, variable string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateMissingVariable,
		Message:   "Template variable not supplied",
		Details:   fmt.Sprintf("templateId: %s, variable: %s", templateID, variable),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransportError creates a retryable remote provider error.
func NewTransportError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransport,
		Message:   fmt.Sprintf("Provider '%s' transport error", provider),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmptyResponseError creates a non-retryable empty/filtered payload error.
func NewEmptyResponseError(provider string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyResponse,
		Message:   fmt.Sprintf("Provider '%s' returned an empty or filtered payload", provider),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationTimeoutError creates a terminal async-job timeout error.
// Distinct from TRANSPORT_ERROR: the job may still be running remotely,
// but the caller's polling budget is spent.
func NewGenerationTimeoutError(jobID string, attempts int) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationTimeout,
		Message:   "Generation job exceeded polling budget",
		Details:   fmt.Sprintf("jobId: %s, attempts: %d", jobID, attempts),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidOptionsError creates a non-retryable request validation error.
func NewInvalidOptionsError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidOptions,
		Message:   "Generation options invalid for modality",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionFailedError creates a non-retryable extraction error carrying
// a truncated snippet of the offending payload.
func NewExtractionFailedError(snippet, reason string) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionFailed,
		Message:   "Model output could not be parsed into the expected schema",
		Details:   reason,
		Retryable: false,
		Metadata:  map[string]interface{}{"snippet": snippet},
		Timestamp: time.Now().UTC(),
	}
}

// NewCountMismatchError creates a non-retryable cardinality error.
func NewCountMismatchError(expected, got int) *StandardError {
	return &StandardError{
		Code:      ErrCodeCountMismatch,
		Message:   "Extracted list cardinality does not match schema",
		Details:   fmt.Sprintf("expected: %d, got: %d", expected, got),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSchemaViolationError creates a non-retryable schema validation error.
func NewSchemaViolationError(violations []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemaViolation,
		Message:   "Extracted value violates schema",
		Details:   strings.Join(violations, "; "),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMailSendFailedError creates a retryable mail delivery error.
func NewMailSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMailSendFailed,
		Message:   "Mail delivery failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewWebhookFailedError creates a retryable webhook registration error.
func NewWebhookFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWebhookFailed,
		Message:   "Mail webhook registration failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchFailedError creates a retryable web search error.
func NewSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchFailed,
		Message:   "Web search API error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchTimeoutError creates a non-retryable (returns empty) search timeout error.
func NewSearchTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Web search API timeout",
		Details:   "Search call exceeded timeout threshold",
		Retryable: false, // Research grounding degrades to empty results, no retry
		Timestamp: time.Now().UTC(),
	}
}

// NewCommerceAuthError creates a non-retryable commerce OAuth error.
func NewCommerceAuthError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCommerceAuth,
		Message:   "Commerce platform authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotifyFailedError creates a retryable notification publish error.
func NewNotifyFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotifyFailed,
		Message:   "Completion notification publish failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreWriteFailedError creates a retryable artifact persistence error.
func NewStoreWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreWriteFailed,
		Message:   "Artifact store write failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewReportIndexFailedError creates a retryable report indexing error.
func NewReportIndexFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeReportIndexFailed,
		Message:   "Report index write failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// FromError coerces any error into a StandardError. Errors that are
// already structured pass through untouched. Nil input, including a
// typed-nil *StandardError, coerces to a generic internal error rather
// than propagating a nil that call sites would dereference.
func FromError(err error) *StandardError {
	if err == nil {
		return internalError("failure reported without an error value")
	}
	if stdErr, ok := err.(*StandardError); ok {
		if stdErr == nil {
			return internalError("failure reported without an error value")
		}
		return stdErr
	}
	return internalError(err.Error())
}

func internalError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal error",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// GetRetryCount returns the recommended retry count for a wrapping layer.
// The core never retries on its own; these counts document tolerated budgets.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeTransport,
		ErrCodeMailSendFailed,
		ErrCodeWebhookFailed,
		ErrCodeSearchFailed,
		ErrCodeNotifyFailed,
		ErrCodeStoreWriteFailed,
		ErrCodeReportIndexFailed:
		return 3

	case ErrCodeSearchTimeout:
		return 0 // Degrades to empty results instead

	default:
		return 0 // Template, extraction and option errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "TEMPLATE"):
		return "TEMPLATE"
	case strings.Contains(codeStr, "TRANSPORT") || strings.Contains(codeStr, "GENERATION") || strings.Contains(codeStr, "EMPTY"):
		return "GENERATION"
	case strings.Contains(codeStr, "EXTRACTION") || strings.Contains(codeStr, "COUNT") || strings.Contains(codeStr, "SCHEMA"):
		return "EXTRACTION"
	case strings.Contains(codeStr, "MAIL") || strings.Contains(codeStr, "WEBHOOK"):
		return "MAIL"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "STORE") || strings.Contains(codeStr, "REPORT"):
		return "PERSISTENCE"
	default:
		return "OTHER"
	}
}
