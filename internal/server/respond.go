// internal/server/respond.go
package server

import (
	"encoding/json"
	"net/http"

	commonerrors "venture-agents/internal/common/errors"
	"venture-agents/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	stdErr := commonerrors.FromError(err)
	writeJSON(w, httpStatus(stdErr.Code), models.ErrorResponse{
		Code:    string(stdErr.Code),
		Message: stdErr.Message,
		Details: stdErr.Details,
	})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
		Code:    "BAD_REQUEST",
		Message: message,
	})
}

// httpStatus maps internal error codes onto transport status codes.
// Upstream provider failures surface as 502: the request was fine, the
// dependency was not.
func httpStatus(code commonerrors.ErrorCode) int {
	switch code {
	case commonerrors.ErrCodeInvalidOptions:
		return http.StatusBadRequest
	case commonerrors.ErrCodeCommerceAuth:
		return http.StatusUnauthorized
	case commonerrors.ErrCodeTransport,
		commonerrors.ErrCodeEmptyResponse,
		commonerrors.ErrCodeExtractionFailed,
		commonerrors.ErrCodeCountMismatch,
		commonerrors.ErrCodeSchemaViolation,
		commonerrors.ErrCodeMailSendFailed,
		commonerrors.ErrCodeSearchFailed:
		return http.StatusBadGateway
	case commonerrors.ErrCodeGenerationTimeout, commonerrors.ErrCodeSearchTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
