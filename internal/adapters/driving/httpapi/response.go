package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/custodia-labs/treestore/internal/logger"
)

// saveResponse is the body returned by PUT /api/save.
type saveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("encoding response: %v", err)
	}
}

// writeRaw sends already-encoded JSON.
func writeRaw(w http.ResponseWriter, status int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Warn("writing response: %v", err)
	}
}

func writeSave(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, saveResponse{Success: status == http.StatusOK, Message: message})
}
