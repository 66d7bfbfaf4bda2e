package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/docsync/internal/server"
	"github.com/iudanet/docsync/internal/server/jwt"
	"github.com/iudanet/docsync/internal/server/storage"
	"github.com/iudanet/docsync/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", ":8080", "Listen address")
	dbPath := flag.String("db", "docsyncd.db", "Path to the SQLite database")
	jwtSecret := flag.String("jwt-secret", "", "JWT signing secret (or DOCSYNC_JWT_SECRET env var)")
	tokenTTL := flag.Duration("token-ttl", time.Hour, "Access token lifetime")
	bootstrapClient := flag.String("bootstrap-client", "", "Register a client as id:secret on startup")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	secret := *jwtSecret
	if secret == "" {
		secret = os.Getenv("DOCSYNC_JWT_SECRET")
	}
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT secret is required: set --jwt-secret or DOCSYNC_JWT_SECRET")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	if *bootstrapClient != "" {
		if err := bootstrap(ctx, store, *bootstrapClient); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to bootstrap client: %v\n", err)
			os.Exit(1)
		}
	}

	tokens := jwt.NewService(secret, *tokenTTL)
	handler := server.New(logger, store, tokens, server.DefaultConfig())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("server starting", "addr", *addr, "version", Version)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// bootstrap registers one API client from an id:secret pair. An already
// registered ID is not an error so restarts stay idempotent.
func bootstrap(ctx context.Context, store *sqlite.Storage, spec string) error {
	id, secret, ok := strings.Cut(spec, ":")
	if !ok || id == "" || secret == "" {
		return fmt.Errorf("invalid --bootstrap-client value: want id:secret")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash client secret: %w", err)
	}

	err = store.CreateClient(ctx, &storage.Client{
		ID:         id,
		SecretHash: string(hash),
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil && !errors.Is(err, storage.ErrClientAlreadyExists) {
		return err
	}

	return nil
}

func printVersion() {
	fmt.Printf("docsync server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
