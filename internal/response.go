package internal

import (
	"encoding/json"
	"log"
	"net/http"
)

// sendJSON writes a JSON response with the given status code.
func sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("error encoding response: %v", err)
		}
	}
}

// sendError writes a JSON error body `{"error": ...}`.
func sendError(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, map[string]string{"error": message})
}

// sendMessage writes a JSON success body `{"message": ...}`.
func sendMessage(w http.ResponseWriter, message string) {
	sendJSON(w, http.StatusOK, map[string]string{"message": message})
}
