package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Euphoric-Coder/Travel-Insights/internal/domain"
)

// ErrorResponse is the body returned for every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Model-generated text rides through here as JSON string values only —
	// encoding/json escapes it, so it is never emitted as raw markup.
	_ = json.NewEncoder(w).Encode(v)
}

// respondError writes an ErrorResponse with the given status, code, and message.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// respondServiceError maps a service error to the appropriate HTTP response:
// domain.ErrNotFound → 404, domain.ErrValidation → 422, anything else → 500
// with a generic message (internals are logged, never leaked).
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", "trip not found")
	case errors.Is(err, domain.ErrValidation):
		respondError(w, http.StatusUnprocessableEntity, "validation_error", validationMessage(err))
	default:
		s.log.ErrorContext(r.Context(), "internal error", "method", r.Method, "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// validationMessage extracts the human-readable part from a wrapped
// domain.ErrValidation error, e.g.
// "service.TripService.Create: validation error: country is required"
// → "country is required".
func validationMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
