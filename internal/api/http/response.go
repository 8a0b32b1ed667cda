package http

import (
	"encoding/json"
	"net/http"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
)

type envelope struct {
	Message string `json:"message"`
	Result  any    `json:"result,omitempty"`
}

type errorBody struct {
	Message   string `json:"message"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

const codeUnauthenticated = "unauthenticated"

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeResult(w http.ResponseWriter, result any) {
	writeJSON(w, http.StatusOK, envelope{Message: "success", Result: result})
}

// writeError maps the error kind to a status. Execution failures and unknown
// errors are logged and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.WithRequestID(r.Context()).Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = "internal server error"
	}
	writeJSON(w, status, errorBody{Message: msg, Code: code, RequestID: logger.RequestID(r.Context())})
}

func writeUnauthenticated(w http.ResponseWriter, r *http.Request, msg string) {
	writeJSON(w, http.StatusUnauthorized, errorBody{Message: msg, Code: codeUnauthenticated, RequestID: logger.RequestID(r.Context())})
}

func statusOf(err error) (int, string) {
	kind := domain.KindOf(err)
	switch kind {
	case domain.KindInvalidRequest, domain.KindInvalidInput:
		return http.StatusBadRequest, string(kind)
	case domain.KindForbidden:
		return http.StatusForbidden, string(kind)
	case domain.KindNotFound:
		return http.StatusNotFound, string(kind)
	case domain.KindExecutionFailure:
		return http.StatusInternalServerError, string(kind)
	}
	return http.StatusInternalServerError, "internal_error"
}
