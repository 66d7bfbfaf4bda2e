package sync

import (
	"context"
	"log/slog"
	"strings"

	"github.com/iudanet/docsync/internal/discovery"
	"github.com/iudanet/docsync/internal/replication"
)

// HostedAdapter synchronizes against a discovery-based hosted provider:
// the user address is resolved to an endpoint descriptor, a token is
// obtained when none was supplied, and the pass itself runs through the
// external replication engine.
type HostedAdapter struct {
	*replica

	resolver discovery.Resolver
	tokens   discovery.TokenSource
}

var _ Adapter = (*HostedAdapter)(nil)

func NewHostedAdapter(engine replication.Engine, resolver discovery.Resolver, tokens discovery.TokenSource, logger *slog.Logger) *HostedAdapter {
	return &HostedAdapter{
		replica:  newReplica(engine, newCore(logger.With("adapter", "hosted"))),
		resolver: resolver,
		tokens:   tokens,
	}
}

// Connect resolves the address, exchanges credentials for a token when
// needed and opens the replication session against the resolved endpoint.
func (a *HostedAdapter) Connect(ctx context.Context, cfg HostedConfig) bool {
	a.beginConnect()

	if err := cfg.validate(); err != nil {
		a.failConnect("invalid configuration", err)
		return false
	}

	desc, err := a.resolver.Resolve(ctx, cfg.Address)
	if err != nil {
		a.failConnect("address resolution failed", err)
		return false
	}

	token := cfg.Token
	if token == "" {
		creds := discovery.Credentials{ClientID: cfg.ClientID, ClientSecret: cfg.ClientSecret}

		token, err = a.tokens.Exchange(ctx, desc, creds)
		if err != nil {
			a.failConnect("token exchange failed", err)
			return false
		}
	}

	target := replication.Target{
		URL:      strings.TrimRight(desc.Server, "/") + desc.BasePath,
		Database: cfg.Module,
		Token:    token,
	}

	return a.open(ctx, target, cfg.AutoSyncInterval)
}
