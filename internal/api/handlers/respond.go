package handlers

import (
	"encoding/json"
	"net/http"
)

// The mobile client reads failures from a JSON "message" field, so handlers
// answer with JSON bodies rather than plain-text http.Error.

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}
