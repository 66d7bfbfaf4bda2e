// Package handlers implements the HTTP handlers of the reference document
// server.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/docsync/pkg/api"
)

// contextKey is the type for request context keys
type contextKey string

// ClientIDKey is the context key holding the authenticated client ID
const ClientIDKey contextKey = "client_id"

// GetClientID extracts the authenticated client ID from the request
// context (set by the auth middleware).
func GetClientID(ctx context.Context) (string, bool) {
	clientID, ok := ctx.Value(ClientIDKey).(string)
	return clientID, ok
}

// sendJSON writes a JSON response with the given status code
func sendJSON(logger *slog.Logger, w http.ResponseWriter, v interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

// sendError writes an api.ErrorResponse with the given status code
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, status int) {
	sendJSON(logger, w, api.ErrorResponse{Error: message}, status)
}
