// Package httphandler is the HTTP driving adapter that serves the REST API.
package httphandler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jay-reddin/api-keys/internal/application"
	"github.com/jay-reddin/api-keys/internal/domain/port/driven"
)

// maxImportBytes caps the size of an uploaded import file.
const maxImportBytes = 8 << 20

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	keySvc *application.KeyService
	logger *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(keySvc *application.KeyService, logger *slog.Logger) *Handler {
	return &Handler{
		keySvc: keySvc,
		logger: logger,
	}
}

// RegisterAPIRoutes registers all REST API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/keys", h.ListKeys)
	mux.HandleFunc("POST /api/v1/keys", h.AddKey)
	mux.HandleFunc("PUT /api/v1/keys/{id}", h.UpdateKey)
	mux.HandleFunc("DELETE /api/v1/keys/{id}", h.DeleteKey)
	mux.HandleFunc("GET /api/v1/keys/export", h.ExportKeys)
	mux.HandleFunc("POST /api/v1/keys/import", h.ImportKeys)
	mux.HandleFunc("GET /api/v1/health", h.Health)
}

// ApplyMiddleware wraps a handler with logging and recovery middleware.
// Recovery is innermost so panics are caught before logging.
func ApplyMiddleware(handler http.Handler, logger *slog.Logger) http.Handler {
	wrapped := recoveryMiddleware(logger, handler)
	wrapped = loggingMiddleware(logger, wrapped)
	return wrapped
}

// NewServeMux creates an http.Handler with all API routes registered and
// wrapped with middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	return ApplyMiddleware(mux, logger)
}

// ListKeys returns the whole collection in insertion order.
func (h *Handler) ListKeys(w http.ResponseWriter, _ *http.Request) {
	keys := h.keySvc.Keys()

	resp := make([]KeyResponse, 0, len(keys))
	for _, k := range keys {
		resp = append(resp, toKeyResponse(k))
	}

	writeJSON(w, http.StatusOK, resp)
}

// AddKey appends a new record and persists the grown collection.
func (h *Handler) AddKey(w http.ResponseWriter, r *http.Request) {
	var req KeyRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		return
	}

	record, err := h.keySvc.Add(r.Context(), req.Label, req.Key)
	if err != nil {
		h.writeServiceError(w, "add key", err)
		return
	}

	writeJSON(w, http.StatusCreated, toKeyResponse(record))
}

// UpdateKey replaces the label and key of an existing record.
func (h *Handler) UpdateKey(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req KeyRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		return
	}

	if err := h.keySvc.Update(r.Context(), id, req.Label, req.Key); err != nil {
		h.writeServiceError(w, "update key", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteKey removes a record from the collection.
func (h *Handler) DeleteKey(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.keySvc.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, "delete key", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportKeys returns the collection as a downloadable JSON file.
func (h *Handler) ExportKeys(w http.ResponseWriter, _ *http.Request) {
	data, name, err := h.keySvc.Export()
	if err != nil {
		h.logger.Error("export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ImportKeys accepts a multipart upload under the "file" field, runs the
// import pipeline, and reports how many records were added.
func (h *Handler) ImportKeys(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart form with a file field")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	added, err := h.keySvc.Import(r.Context(), data)
	if err != nil {
		h.writeServiceError(w, "import keys", err)
		return
	}

	writeJSON(w, http.StatusOK, ImportResponse{Imported: added})
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Loaded: h.keySvc.Loaded(),
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// writeServiceError maps KeyService errors to HTTP status codes. Unexpected
// errors are logged and hidden behind a generic 502, since from the
// browser's point of view the key-value store is the upstream that failed.
func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	var invalid *application.InvalidRecordError

	switch {
	case errors.Is(err, application.ErrMissingField):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &invalid):
		writeError(w, http.StatusUnprocessableEntity, invalid.Error())
	case errors.Is(err, application.ErrNoKeysFound):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, application.ErrAllDuplicate):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, driven.ErrStoreUnavailable):
		writeError(w, http.StatusBadGateway, "key-value store is not available")
	case errors.Is(err, application.ErrCorruptData):
		h.logger.Error(op+" failed", "error", err)
		writeError(w, http.StatusBadGateway, "stored key data is corrupt")
	default:
		h.logger.Error(op+" failed", "error", err)
		writeError(w, http.StatusBadGateway, "failed to reach the key-value store")
	}
}
