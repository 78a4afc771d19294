package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/jay-reddin/api-keys/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSONBody decodes the request body into v, writing a 400 response on
// failure. Returns the decode error so callers can bail out.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return err
	}
	return nil
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// KeyResponse is the JSON representation of a stored API key. The field
// names match the persisted blob so an exported file and a list response
// look alike.
type KeyResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Key       string `json:"key"`
	CreatedAt int64  `json:"createdAt"`
}

// KeyRequest is the JSON body for the add and update endpoints.
type KeyRequest struct {
	Label string `json:"label"`
	Key   string `json:"key"`
}

// ImportResponse reports how many records an import appended.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Loaded bool   `json:"loaded"`
	Time   string `json:"time"`
}

// toKeyResponse converts a domain APIKey to its JSON response representation.
func toKeyResponse(k model.APIKey) KeyResponse {
	return KeyResponse{
		ID:        k.ID,
		Label:     k.Label,
		Key:       k.Key,
		CreatedAt: k.CreatedAt,
	}
}
