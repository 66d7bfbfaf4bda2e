// Package server assembles the reference document server: routes,
// middleware and handlers.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/docsync/internal/server/handlers"
	"github.com/iudanet/docsync/internal/server/jwt"
	"github.com/iudanet/docsync/internal/server/middleware"
	"github.com/iudanet/docsync/internal/server/storage"
)

// Config tunes the assembled handler.
type Config struct {
	// TokenRate limits token exchange requests per client IP per window.
	TokenRate   int
	TokenWindow time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		TokenRate:   10,
		TokenWindow: time.Minute,
	}
}

// Storage is the combined persistence surface the server needs.
type Storage interface {
	storage.DocumentStorage
	storage.ClientStorage
}

// New builds the server's http.Handler: public health and token-exchange
// endpoints, bearer-authenticated document endpoints, request logging and
// panic recovery around everything.
func New(logger *slog.Logger, store Storage, tokens *jwt.Service, cfg Config) http.Handler {
	healthHandler := handlers.NewHealthHandler(logger)
	authHandler := handlers.NewAuthHandler(logger, store, tokens)
	docsHandler := handlers.NewDocumentsHandler(logger, store)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Health)

	tokenLimit := middleware.RateLimitMiddleware(cfg.TokenRate, cfg.TokenWindow, logger)
	mux.Handle("POST /auth/token", tokenLimit(http.HandlerFunc(authHandler.Token)))

	protected := http.NewServeMux()
	protected.HandleFunc("GET /drive/v1/folders/{folderID}", docsHandler.GetFolder)
	protected.HandleFunc("GET /drive/v1/folders/{folderID}/documents", docsHandler.ListDocuments)
	protected.HandleFunc("GET /drive/v1/folders/{folderID}/documents/{docID}", docsHandler.GetDocument)
	protected.HandleFunc("PUT /drive/v1/folders/{folderID}/documents/{docID}", docsHandler.PutDocument)

	auth := middleware.AuthMiddleware(logger, tokens)
	mux.Handle("/drive/", auth(protected))

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(logger)(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return handler
}
