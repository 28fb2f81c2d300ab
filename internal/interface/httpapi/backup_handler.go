package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"logbook-service/internal/usecase"
	"logbook-service/pkg/backup"
	"logbook-service/pkg/logger"
)

// Owner identity headers set by the authentication layer in front of this
// service.
const (
	headerUserID    = "X-User-ID"
	headerUserEmail = "X-User-Email"
)

const historyLimit = 20

// BackupHandler serves the backup preview, import, export and history
// endpoints.
type BackupHandler struct {
	service  *usecase.ImportService
	maxBytes int64
	logger   logger.Logger
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(service *usecase.ImportService, maxBytes int64, logger logger.Logger) *BackupHandler {
	return &BackupHandler{
		service:  service,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Preview handles POST /api/v1/backup/preview
func (h *BackupHandler) Preview(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	raw, fileName, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	result, err := h.service.Preview(r.Context(), userID, raw, fileName)
	if err != nil {
		h.writeValidationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Import handles POST /api/v1/backup/import
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	raw, fileName, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	strategy, err := usecase.ParseStrategy(r.FormValue("strategy"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Import(r.Context(), userID, raw, strategy, fileName)
	if err != nil {
		h.writeValidationError(w, err)
		return
	}

	// Record-level failures live inside result.Results; the request
	// itself still succeeded.
	writeJSON(w, http.StatusOK, result)
}

// Export handles GET /api/v1/backup/export
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	userEmail := r.Header.Get(headerUserEmail)

	snapshot, err := h.service.Export(r.Context(), userID, userEmail)
	if err != nil {
		h.logger.Error("Export failed", "userID", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	fileName := fmt.Sprintf("logbook-backup-%s.json", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	writeJSON(w, http.StatusOK, snapshot)
}

// History handles GET /api/v1/backup/history
func (h *BackupHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	runs, err := h.service.History(r.Context(), userID, historyLimit)
	if err != nil {
		h.logger.Error("History lookup failed", "userID", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "history lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, runs)
}

// requireUser extracts the authenticated owner identity. Requests without
// one are rejected before any processing.
func (h *BackupHandler) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get(headerUserID)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return "", false
	}
	return userID, true
}

// readUpload reads the multipart "file" field. The size bound is enforced
// again by the validator; the extra byte here just lets it see the excess.
func (h *BackupHandler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing backup file")
		return nil, "", false
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		h.logger.Error("Failed to read upload", "error", err)
		writeError(w, http.StatusBadRequest, "unreadable backup file")
		return nil, "", false
	}

	return raw, header.Filename, true
}

func (h *BackupHandler) writeValidationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, backup.ErrTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, backup.ErrMalformed),
		errors.Is(err, backup.ErrMissingField),
		errors.Is(err, backup.ErrUnsupportedVersion):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Backup request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
