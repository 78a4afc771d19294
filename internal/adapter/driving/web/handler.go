// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"log/slog"
	"net/http"

	"github.com/jay-reddin/api-keys/internal/adapter/driving/web/templates"
	"github.com/jay-reddin/api-keys/internal/adapter/driving/web/templates/pages"
)

// Handler is the web GUI driving adapter that serves HTML via templ
// components. The page is a static shell; the key list itself is fetched
// and rendered client-side against the REST API, so secrets never end up
// in server-rendered HTML.
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Dashboard renders the key manager page with the full HTML layout.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	component := pages.Dashboard()
	layout := templates.Layout("API Keys", component)

	if err := layout.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render dashboard", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
