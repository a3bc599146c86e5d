package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Sark-Rakib/e-tuition-bd-server/internal/services"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps service sentinels onto the HTTP statuses the API uses:
// 400 malformed id/amount, 403 not admin, 404 absent, 500 otherwise.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidID):
		respondMessage(w, http.StatusBadRequest, "invalid id")
	case errors.Is(err, services.ErrInvalidAmount):
		respondMessage(w, http.StatusBadRequest, "invalid salary amount")
	case errors.Is(err, services.ErrNotAdmin):
		respondMessage(w, http.StatusForbidden, "forbidden: admin access required")
	case errors.Is(err, services.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "not found")
	default:
		log.Printf("Request failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
