package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/docsync/internal/server/storage"
	"github.com/iudanet/docsync/pkg/api"
)

// TokenIssuer signs access tokens for authenticated clients
type TokenIssuer interface {
	GenerateAccessToken(clientID string) (string, int64, error)
}

// AuthHandler handles the client-credentials token exchange
type AuthHandler struct {
	logger  *slog.Logger
	clients storage.ClientStorage
	issuer  TokenIssuer
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(logger *slog.Logger, clients storage.ClientStorage, issuer TokenIssuer) *AuthHandler {
	return &AuthHandler{
		logger:  logger,
		clients: clients,
		issuer:  issuer,
	}
}

// Token handles POST /auth/token: it verifies the client credentials and
// issues a bearer access token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode token request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.ClientID == "" || req.ClientSecret == "" {
		sendError(h.logger, w, "client_id and client_secret are required", http.StatusBadRequest)
		return
	}

	client, err := h.clients.GetClient(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, storage.ErrClientNotFound) {
			h.logger.WarnContext(ctx, "unknown client", slog.String("client_id", req.ClientID))
			sendError(h.logger, w, "invalid client credentials", http.StatusUnauthorized)
			return
		}

		h.logger.ErrorContext(ctx, "failed to load client", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.SecretHash), []byte(req.ClientSecret)); err != nil {
		h.logger.WarnContext(ctx, "client secret mismatch", slog.String("client_id", req.ClientID))
		sendError(h.logger, w, "invalid client credentials", http.StatusUnauthorized)
		return
	}

	token, expiresIn, err := h.issuer.GenerateAccessToken(client.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "access token issued", slog.String("client_id", client.ID))

	sendJSON(h.logger, w, api.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, http.StatusOK)
}
