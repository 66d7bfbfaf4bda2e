package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/docsync/internal/cli"
	"github.com/iudanet/docsync/internal/discovery"
	"github.com/iudanet/docsync/internal/iocli"
	"github.com/iudanet/docsync/internal/replication"
	"github.com/iudanet/docsync/internal/storage/boltdb"
	"github.com/iudanet/docsync/internal/sync"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

type backendFlags struct {
	backend      string
	url          string
	username     string
	password     string
	endpoint     string
	folderID     string
	token        string
	database     string
	address      string
	module       string
	clientID     string
	clientSecret string
	interval     time.Duration
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	dbPath := flag.String("db", "docsync.db", "Path to the local database")

	var bf backendFlags
	flag.StringVar(&bf.backend, "backend", "", "Remote backend: webdav, drive, couch or hosted")
	flag.StringVar(&bf.url, "url", "", "Server URL (webdav, couch)")
	flag.StringVar(&bf.username, "username", "", "Username (webdav, couch)")
	flag.StringVar(&bf.password, "password", "", "Password (or DOCSYNC_PASSWORD env var)")
	flag.StringVar(&bf.endpoint, "endpoint", "", "Drive API endpoint (drive)")
	flag.StringVar(&bf.folderID, "folder", "", "Drive folder ID (drive)")
	flag.StringVar(&bf.token, "token", "", "Access token (or DOCSYNC_TOKEN env var)")
	flag.StringVar(&bf.database, "database", "", "Remote database name (couch)")
	flag.StringVar(&bf.address, "address", "", "User address, e.g. notes@provider.example (hosted)")
	flag.StringVar(&bf.module, "module", "", "Remote module name (hosted)")
	flag.StringVar(&bf.clientID, "client-id", "", "Client ID for token exchange (hosted)")
	flag.StringVar(&bf.clientSecret, "client-secret", "", "Client secret (or DOCSYNC_CLIENT_SECRET env var)")
	flag.DurationVar(&bf.interval, "interval", time.Minute, "Auto-sync interval for 'watch'")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	if bf.password == "" {
		bf.password = os.Getenv("DOCSYNC_PASSWORD")
	}
	if bf.token == "" {
		bf.token = os.Getenv("DOCSYNC_TOKEN")
	}
	if bf.clientSecret == "" {
		bf.clientSecret = os.Getenv("DOCSYNC_CLIENT_SECRET")
	}

	// The scheduler only runs in watch mode; one-shot sync passes leave
	// it disarmed.
	if command != "watch" {
		bf.interval = 0
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	stdio := iocli.NewStdio()

	var connect cli.ConnectFunc
	if bf.backend != "" {
		connect = buildConnect(bf, stdio, logger)
	}

	c := cli.New(stdio, store, connect, logger)
	if err := c.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildConnect returns the ConnectFunc for the selected backend. The
// adapter is constructed lazily so data-only commands never touch the
// network; credentials the flags and environment left empty are prompted
// for on the terminal at that point.
func buildConnect(bf backendFlags, stdio iocli.IO, logger *slog.Logger) cli.ConnectFunc {
	return func(ctx context.Context) (sync.Adapter, error) {
		switch bf.backend {
		case "webdav":
			password := bf.password
			if bf.username != "" {
				var err error
				if password, err = cli.EnsureSecret(stdio, "Password: ", bf.password); err != nil {
					return nil, err
				}
			}

			adapter := sync.NewWebDAVAdapter(logger)
			ok := adapter.Connect(ctx, sync.WebDAVConfig{
				URL:              bf.url,
				Username:         bf.username,
				Password:         password,
				AutoSyncInterval: bf.interval,
			})
			return connected(adapter, ok)

		case "drive":
			adapter := sync.NewDriveAdapter(logger)
			ok := adapter.Connect(ctx, sync.DriveConfig{
				Endpoint:         bf.endpoint,
				AccessToken:      bf.token,
				FolderID:         bf.folderID,
				AutoSyncInterval: bf.interval,
			})
			return connected(adapter, ok)

		case "couch":
			password := bf.password
			if bf.username != "" {
				var err error
				if password, err = cli.EnsureSecret(stdio, "Password: ", bf.password); err != nil {
					return nil, err
				}
			}

			adapter := sync.NewCouchAdapter(replication.NewHTTPEngine(logger), logger)
			ok := adapter.Connect(ctx, sync.CouchConfig{
				URL:              bf.url,
				Username:         bf.username,
				Password:         password,
				Database:         bf.database,
				AutoSyncInterval: bf.interval,
			})
			return connected(adapter, ok)

		case "hosted":
			clientSecret := bf.clientSecret
			if bf.token == "" && bf.clientID != "" {
				var err error
				if clientSecret, err = cli.EnsureSecret(stdio, "Client secret: ", bf.clientSecret); err != nil {
					return nil, err
				}
			}

			adapter := sync.NewHostedAdapter(
				replication.NewHTTPEngine(logger),
				discovery.NewHTTPResolver(),
				discovery.NewHTTPTokenSource(),
				logger,
			)
			ok := adapter.Connect(ctx, sync.HostedConfig{
				Address:          bf.address,
				Token:            bf.token,
				ClientID:         bf.clientID,
				ClientSecret:     clientSecret,
				Module:           bf.module,
				AutoSyncInterval: bf.interval,
			})
			return connected(adapter, ok)

		default:
			return nil, fmt.Errorf("unknown backend %q: want webdav, drive, couch or hosted", bf.backend)
		}
	}
}

// connected turns the Connect outcome into the (Adapter, error) shape the
// CLI expects, surfacing the captured status error.
func connected(adapter sync.Adapter, ok bool) (sync.Adapter, error) {
	if ok {
		return adapter, nil
	}

	if st := adapter.SyncStatus(); st.Err != nil {
		return nil, st.Err
	}

	return nil, fmt.Errorf("connection failed")
}

func printVersion() {
	fmt.Printf("docsync client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
