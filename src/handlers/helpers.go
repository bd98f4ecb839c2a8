package handlers

import (
	"budget-tracker-server/src/apperr"
	"encoding/json"
	"net/http"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError maps an error to its HTTP status and client-safe message.
// Anything that is not an apperr collapses to a generic 500 message, raw
// error detail stays in the server logs.
func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, apperr.Status(err), map[string]string{"message": apperr.Message(err)})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}
