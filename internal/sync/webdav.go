package sync

import (
	"context"
	"log/slog"

	"github.com/iudanet/docsync/internal/remote"
	"github.com/iudanet/docsync/internal/remote/webdav"
)

// WebDAVAdapter synchronizes against a generic WebDAV-style server using
// explicit merge passes.
type WebDAVAdapter struct {
	*reconciler

	// dial builds the backend client for one config; swapped in tests.
	dial func(cfg WebDAVConfig) remote.Backend
}

var _ Adapter = (*WebDAVAdapter)(nil)

func NewWebDAVAdapter(logger *slog.Logger) *WebDAVAdapter {
	return &WebDAVAdapter{
		reconciler: newReconciler(newCore(logger.With("adapter", "webdav"))),
		dial: func(cfg WebDAVConfig) remote.Backend {
			return webdav.NewClient(cfg.URL, cfg.Username, cfg.Password)
		},
	}
}

// Connect validates the config and performs the handshake. On failure it
// captures the error into the status, dispatches connection-error and
// returns false. Reconnecting replaces the prior config and backend.
func (a *WebDAVAdapter) Connect(ctx context.Context, cfg WebDAVConfig) bool {
	a.beginConnect()

	if err := cfg.validate(); err != nil {
		a.failConnect("invalid configuration", err)
		return false
	}

	return a.handshake(ctx, a.dial(cfg), cfg.AutoSyncInterval)
}
