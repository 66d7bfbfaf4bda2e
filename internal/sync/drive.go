package sync

import (
	"context"
	"log/slog"

	"github.com/iudanet/docsync/internal/remote"
	"github.com/iudanet/docsync/internal/remote/drive"
)

// DriveAdapter synchronizes against a token-based cloud-drive provider
// using explicit merge passes.
type DriveAdapter struct {
	*reconciler

	dial func(cfg DriveConfig) remote.Backend
}

var _ Adapter = (*DriveAdapter)(nil)

func NewDriveAdapter(logger *slog.Logger) *DriveAdapter {
	return &DriveAdapter{
		reconciler: newReconciler(newCore(logger.With("adapter", "drive"))),
		dial: func(cfg DriveConfig) remote.Backend {
			return drive.NewClient(cfg.Endpoint, cfg.FolderID, cfg.AccessToken)
		},
	}
}

// Connect validates the config (including the access-token expiry when
// the token is a JWT) and performs the handshake.
func (a *DriveAdapter) Connect(ctx context.Context, cfg DriveConfig) bool {
	a.beginConnect()

	if err := cfg.validate(); err != nil {
		a.failConnect("invalid configuration", err)
		return false
	}

	return a.handshake(ctx, a.dial(cfg), cfg.AutoSyncInterval)
}
