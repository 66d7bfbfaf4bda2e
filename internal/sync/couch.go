package sync

import (
	"context"
	"log/slog"

	"github.com/iudanet/docsync/internal/replication"
)

// CouchAdapter synchronizes against a self-hosted document database
// through the external bidirectional replication engine.
type CouchAdapter struct {
	*replica
}

var _ Adapter = (*CouchAdapter)(nil)

func NewCouchAdapter(engine replication.Engine, logger *slog.Logger) *CouchAdapter {
	return &CouchAdapter{
		replica: newReplica(engine, newCore(logger.With("adapter", "couch"))),
	}
}

// Connect validates the config and opens the replication session.
func (a *CouchAdapter) Connect(ctx context.Context, cfg CouchConfig) bool {
	a.beginConnect()

	if err := cfg.validate(); err != nil {
		a.failConnect("invalid configuration", err)
		return false
	}

	target := replication.Target{
		URL:      cfg.URL,
		Database: cfg.Database,
		Username: cfg.Username,
		Password: cfg.Password,
	}

	return a.open(ctx, target, cfg.AutoSyncInterval)
}
