package sync

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/iudanet/docsync/internal/validation"
)

// WebDAVConfig configures the generic-server adapter. Credentials are
// optional for servers that allow anonymous access.
type WebDAVConfig struct {
	URL              string
	Username         string
	Password         string
	AutoSyncInterval time.Duration // zero disables auto-sync
}

func (c WebDAVConfig) validate() error {
	if err := validation.ValidateURL(c.URL); err != nil {
		return fmt.Errorf("url: %w", err)
	}

	if err := validation.ValidateInterval(c.AutoSyncInterval); err != nil {
		return fmt.Errorf("auto-sync interval: %w", err)
	}

	return nil
}

// DriveConfig configures the token cloud-drive adapter.
type DriveConfig struct {
	Endpoint         string
	AccessToken      string
	FolderID         string
	AutoSyncInterval time.Duration
}

func (c DriveConfig) validate() error {
	if err := validation.ValidateURL(c.Endpoint); err != nil {
		return fmt.Errorf("endpoint: %w", err)
	}

	if c.AccessToken == "" {
		return fmt.Errorf("access token is required")
	}

	if c.FolderID == "" {
		return fmt.Errorf("folder ID is required")
	}

	if err := validation.ValidateInterval(c.AutoSyncInterval); err != nil {
		return fmt.Errorf("auto-sync interval: %w", err)
	}

	// Opaque tokens pass through untouched, but a token that parses as a
	// JWT with an elapsed expiry is rejected up front instead of failing
	// on the first request.
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.AccessToken, claims); err == nil {
		exp, err := claims.GetExpirationTime()
		if err == nil && exp != nil && exp.Before(time.Now()) {
			return fmt.Errorf("access token expired at %s", exp.Time.Format(time.RFC3339))
		}
	}

	return nil
}

// CouchConfig configures the adapter backed by the native replication
// engine against a self-hosted document database.
type CouchConfig struct {
	URL              string
	Username         string
	Password         string
	Database         string
	AutoSyncInterval time.Duration
}

func (c CouchConfig) validate() error {
	if err := validation.ValidateURL(c.URL); err != nil {
		return fmt.Errorf("url: %w", err)
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if err := validation.ValidateInterval(c.AutoSyncInterval); err != nil {
		return fmt.Errorf("auto-sync interval: %w", err)
	}

	return nil
}

// HostedConfig configures the discovery-based hosted adapter. The user
// address is resolved to an endpoint descriptor; when Token is empty the
// client credentials are exchanged for one at the provider's auth
// endpoint.
type HostedConfig struct {
	Address          string // user-style address, e.g. "notes@provider.example"
	Token            string
	ClientID         string
	ClientSecret     string
	Module           string // remote module (per-application document set) name
	AutoSyncInterval time.Duration
}

func (c HostedConfig) validate() error {
	if err := validation.ValidateAddress(c.Address); err != nil {
		return fmt.Errorf("address: %w", err)
	}

	if c.Module == "" {
		return fmt.Errorf("module name is required")
	}

	if c.Token == "" && (c.ClientID == "" || c.ClientSecret == "") {
		return fmt.Errorf("either a token or client credentials are required")
	}

	if err := validation.ValidateInterval(c.AutoSyncInterval); err != nil {
		return fmt.Errorf("auto-sync interval: %w", err)
	}

	return nil
}
