// Package api holds the small response helpers and grid metadata
// shared by every screen handler.
package api

import (
	"encoding/json"
	"net/http"
)

// Column describes how a screen presents one field of its grid:
// which header to show and whether the column is visible at all.
type Column struct {
	Field  string `json:"field"`
	Header string `json:"header,omitempty"`
	Hidden bool   `json:"hidden,omitempty"`
}

// WriteJSON writes v as the JSON response body.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Error writes a JSON error body with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}
