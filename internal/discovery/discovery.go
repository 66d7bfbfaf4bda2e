// Package discovery resolves user-style addresses to hosted backend
// endpoints and exchanges client credentials for access tokens. The full
// discovery and authorization protocols live with the provider; this
// package carries the contract plus a thin HTTP lookup.
package discovery

import "context"

//go:generate moq -out discovery_mock.go . Resolver TokenSource

// Descriptor is the resolved backend endpoint for a user address.
type Descriptor struct {
	Server       string `json:"server"`        // backend base URL
	BasePath     string `json:"base_path"`     // per-user document path on the server
	AuthEndpoint string `json:"auth_endpoint"` // token exchange endpoint
}

// Credentials identifies the client application during token exchange.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Resolver maps a user-style address ("user@provider.example") to the
// backend endpoint descriptor.
type Resolver interface {
	Resolve(ctx context.Context, address string) (*Descriptor, error)
}

// TokenSource exchanges client credentials for an access token at the
// descriptor's auth endpoint.
type TokenSource interface {
	Exchange(ctx context.Context, desc *Descriptor, creds Credentials) (string, error)
}
