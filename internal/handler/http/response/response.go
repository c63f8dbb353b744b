package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorBody is the JSON shape of every non-2xx response.
type ErrorBody struct {
	Code   string            `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "status", statusCode, "error", err)
	}
}

// Success responses carry the bare resource

func OK(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, data)
}

// Error responses
func BadRequest(w http.ResponseWriter, detail string, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, ErrorBody{
		Code:   "BAD_REQUEST",
		Detail: detail,
		Fields: fields,
	})
}

func ValidationError(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, ErrorBody{
		Code:   "VALIDATION_ERROR",
		Detail: "Validation failed",
		Fields: fields,
	})
}

func NotFound(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusNotFound, ErrorBody{
		Code:   "NOT_FOUND",
		Detail: detail,
	})
}

func Conflict(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusConflict, ErrorBody{
		Code:   "CONFLICT",
		Detail: detail,
	})
}

func TooManyRequests(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusTooManyRequests, ErrorBody{
		Code:   "TOO_MANY_REQUESTS",
		Detail: detail,
	})
}

func InternalServerError(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusInternalServerError, ErrorBody{
		Code:   "INTERNAL_SERVER_ERROR",
		Detail: detail,
	})
}

func ServiceUnavailable(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusServiceUnavailable, data)
}
