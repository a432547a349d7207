package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/navelogic/rpgbot/internal/domain"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every 4xx/5xx answer. Kind names the
// evaluation error class for roll failures.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// maxPooledBuffer keeps one huge breakdown from pinning memory in the pool
const maxPooledBuffer = 64 << 10

var encodeBuffers = sync.Pool{
	New: func() any { return bytes.NewBuffer(make([]byte, 0, 1024)) },
}

// respondJSON encodes payload fully before writing so an encoding failure
// can still become a 500
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := encodeBuffers.Get().(*bytes.Buffer)
	defer func() {
		if buf.Cap() <= maxPooledBuffer {
			buf.Reset()
			encodeBuffers.Put(buf)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + domain.ErrMsgProcessingCommandFailure + `"}` + "\n"))
		return
	}

	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a roll service error and writes it.
func respondServiceError(w http.ResponseWriter, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	resp := ErrorResponse{Error: message}
	if domain.IsEvaluationError(err) {
		resp.Kind = domain.ErrorKind(err)
	}
	respondJSON(w, status, resp)
}

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Evaluation errors are the user's fault and keep their chat message; anything
// else is a server error with the generic processing failure text.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, domain.ErrMsgProcessingCommandFailure
	}

	switch {
	case domain.IsEvaluationError(err):
		return http.StatusBadRequest, domain.UserMessage(err)
	case errors.Is(err, domain.ErrInvalidPlatform), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	}

	return http.StatusInternalServerError, domain.ErrMsgProcessingCommandFailure
}
