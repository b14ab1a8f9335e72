// Package response writes the API's JSON bodies. The wire format is flat:
// payloads are returned as-is, failures carry a "message" field mobile and
// CLI clients surface verbatim.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// messageBody is the error / confirmation shape: {"message": "..."}.
type messageBody struct {
	Message string `json:"message"`
}

// dataBody is the write-confirmation shape: {"message": "...", "data": ...}.
type dataBody struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// userBody is the auth shape: {"message": "...", "user": ...}.
type userBody struct {
	Message string `json:"message"`
	User    any    `json:"user"`
}

// JSON writes an arbitrary payload with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Message writes a {"message": ...} body.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, messageBody{Message: message})
}

// MessageData writes a {"message": ..., "data": ...} body.
func MessageData(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, dataBody{Message: message, Data: data})
}

// MessageUser writes a {"message": ..., "user": ...} body.
func MessageUser(w http.ResponseWriter, status int, message string, user any) {
	JSON(w, status, userBody{Message: message, User: user})
}

// Internal logs the error and writes a generic 500 body.
func Internal(w http.ResponseWriter, requestID string, err error) {
	slog.Error("internal error", "error", err, "requestId", requestID)
	Message(w, http.StatusInternalServerError, "Something went wrong")
}
