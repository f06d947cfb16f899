// Package respond centralizes the JSON envelope every API handler replies
// with: payloads on success, {"success":false,"error":...} on failure.
package respond

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a bare success envelope.
func OK(w http.ResponseWriter) {
	JSON(w, http.StatusOK, map[string]any{"success": true})
}

// Created writes a success envelope carrying the new row's id.
func Created(w http.ResponseWriter, id int64) {
	JSON(w, http.StatusCreated, map[string]any{"success": true, "id": id})
}

// Error writes the uniform error envelope. Callers are expected to have
// already logged any server-side detail; msg is what the client sees.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]any{"success": false, "error": msg})
}

// BadRequest reports a validation failure.
func BadRequest(w http.ResponseWriter, msg string) {
	Error(w, http.StatusBadRequest, msg)
}

// NotFound reports a missing resource.
func NotFound(w http.ResponseWriter, msg string) {
	Error(w, http.StatusNotFound, msg)
}

// Conflict reports a uniqueness violation.
func Conflict(w http.ResponseWriter, msg string) {
	Error(w, http.StatusConflict, msg)
}

// Internal reports an unexpected failure with a generic message; the cause
// stays in the server logs only.
func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "something went wrong")
}
