package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Tarush5253/swasthya-setu/internal/core/ports"
)

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// writeServiceError folds the error taxonomy into one short message per
// failure: upstream messages pass through with their status, transport
// failures become 502, everything else reads as a bad request.
func writeServiceError(w http.ResponseWriter, err error) {
	var ue *ports.UpstreamError
	if errors.As(err, &ue) {
		writeError(w, ue.StatusCode, ue.Message)
		return
	}
	if errors.Is(err, ports.ErrUpstreamUnavailable) {
		writeError(w, http.StatusBadGateway, "service temporarily unavailable")
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}
