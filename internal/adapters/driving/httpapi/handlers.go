package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-labs/treestore/internal/core/domain"
	"github.com/custodia-labs/treestore/internal/logger"
)

// maxSaveBytes caps the size of a save request body.
const maxSaveBytes = 10 << 20

// Save response messages.
const (
	msgSaved         = "File saved successfully"
	msgInvalidBody   = "Request body must be a JSON object"
	msgMissingFields = "Missing group, file, or treeData"
	msgSaveFailed    = "Failed to save file"
)

// saveRequest is the body accepted by PUT /api/save.
type saveRequest struct {
	Group    string          `json:"group"`
	File     string          `json:"file"`
	TreeData json.RawMessage `json:"treeData"`
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.ports.Tree.ListGroups(r.Context())
	if err != nil {
		logger.Error("listing groups: %v", err)
		writeJSON(w, http.StatusInternalServerError, []domain.GroupSummary{})
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// handleLoad always answers with a tree. Only an unavailable default
// document changes the status code.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result := s.ports.Tree.Load(r.Context(), query.Get("group"), query.Get("file"))

	status := http.StatusOK
	if result.Status == domain.LoadStatusDefaultUnavailable {
		status = http.StatusBadRequest
	}
	writeRaw(w, status, result.Content)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var body saveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSaveBytes))
	if err := dec.Decode(&body); err != nil {
		logger.Warn("decoding save request: %v", err)
		writeSave(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	err := s.ports.Tree.Save(r.Context(), domain.SaveRequest{
		Group:   body.Group,
		File:    body.File,
		Content: body.TreeData,
	})
	switch {
	case err == nil:
		writeSave(w, http.StatusOK, msgSaved)
	case errors.Is(err, domain.ErrMissingField):
		writeSave(w, http.StatusBadRequest, msgMissingFields)
	default:
		writeSave(w, http.StatusInternalServerError, msgSaveFailed)
	}
}

// handleFiles answers an empty list for unknown or invalid groups.
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	group := r.URL.Query().Get("group")
	files, err := s.ports.Tree.ListFiles(r.Context(), group)
	if err != nil {
		logger.Debug("listing files in %q: %v", group, err)
		files = []string{}
	}
	writeJSON(w, http.StatusOK, files)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
