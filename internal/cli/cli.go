// Package cli implements the docsync command-line client. Commands
// operate on the local document store; the sync commands additionally
// connect one of the backend adapters selected by the global flags.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/docsync/internal/iocli"
	"github.com/iudanet/docsync/internal/storage"
	"github.com/iudanet/docsync/internal/sync"
)

// ConnectFunc builds the adapter selected by the global flags and
// connects it. It is supplied by the entrypoint so the data commands
// work without any remote configuration at all.
type ConnectFunc func(ctx context.Context) (sync.Adapter, error)

type Cli struct {
	io      iocli.IO
	store   storage.LocalStore
	connect ConnectFunc
	logger  *slog.Logger
}

func New(io iocli.IO, store storage.LocalStore, connect ConnectFunc, logger *slog.Logger) *Cli {
	return &Cli{
		io:      io,
		store:   store,
		connect: connect,
		logger:  logger,
	}
}

// Run dispatches one command. It returns an error instead of exiting so
// the entrypoint owns the process exit code.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "add":
		return c.runAdd(ctx, args)
	case "list":
		return c.runList(ctx)
	case "get":
		return c.runGet(ctx, args)
	case "delete":
		return c.runDelete(ctx, args)
	case "status":
		return c.runStatus(ctx)
	case "sync":
		return c.runSync(ctx)
	case "watch":
		return c.runWatch(ctx)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func PrintUsage() {
	fmt.Println("docsync - synchronize local documents with a remote backend")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  docsync [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version             Show version information")
	fmt.Println("  --db PATH             Path to the local database (default: docsync.db)")
	fmt.Println("  --backend NAME        Remote backend: webdav, drive, couch or hosted")
	fmt.Println("  --url URL             Server URL (webdav, couch)")
	fmt.Println("  --username USER       Username (webdav, couch)")
	fmt.Println("  --password PASS       Password (or DOCSYNC_PASSWORD env var; prompted when empty)")
	fmt.Println("  --endpoint URL        Drive API endpoint (drive)")
	fmt.Println("  --folder ID           Drive folder ID (drive)")
	fmt.Println("  --token TOKEN         Access token (or DOCSYNC_TOKEN env var)")
	fmt.Println("  --database NAME       Remote database name (couch)")
	fmt.Println("  --address ADDR        User address, e.g. notes@provider.example (hosted)")
	fmt.Println("  --module NAME         Remote module name (hosted)")
	fmt.Println("  --client-id ID        Client ID for token exchange (hosted)")
	fmt.Println("  --client-secret SEC   Client secret (or DOCSYNC_CLIENT_SECRET env var; prompted when empty)")
	fmt.Println("  --interval DURATION   Auto-sync interval for 'watch', e.g. 30s (default: 1m)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  add                   Add a new document (interactive)")
	fmt.Println("  list                  List local documents")
	fmt.Println("  get <id>              Show one document")
	fmt.Println("  delete <id>           Delete a document (soft delete)")
	fmt.Println("  status                Show local store statistics")
	fmt.Println("  sync                  Run one synchronization pass")
	fmt.Println("  watch                 Keep syncing on an interval until interrupted")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  docsync add")
	fmt.Println("  docsync list")
	fmt.Println("  docsync --backend webdav --url https://dav.example.com --username alice sync")
	fmt.Println("  docsync --backend drive --endpoint https://api.example.com --folder f1 sync")
	fmt.Println("  docsync --backend couch --url http://localhost:5984 --database notes sync")
	fmt.Println("  docsync --backend hosted --address notes@provider.example --module notes watch")
}
