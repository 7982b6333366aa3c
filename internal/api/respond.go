package api

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/lingraph/lingraph/pkg/errors"
)

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusForCode maps application error codes onto HTTP status codes.
func statusForCode(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeDecodeFailed:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeStoreUnavailable, apperrors.ErrCodeCacheError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes v as an indented JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// writeError derives the HTTP status from the application error code
// and writes the error body. Errors without a code read as internal.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	s.writeJSON(w, statusForCode(code), errorResponse{
		Error: apperrors.UserMessage(err),
		Code:  string(code),
	})
}
