package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var _ Resolver = (*HTTPResolver)(nil)

// HTTPResolver resolves addresses with a well-known lookup against the
// provider named in the address: GET
// https://<provider>/.well-known/docsync?resource=<address>.
type HTTPResolver struct {
	httpClient *http.Client

	// Scheme overrides the lookup scheme, used by tests. Defaults to
	// https.
	Scheme string
}

// NewHTTPResolver creates the default HTTP resolver.
func NewHTTPResolver() *HTTPResolver {
	return &HTTPResolver{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		Scheme: "https",
	}
}

// Resolve looks up the endpoint descriptor for a user-style address.
func (r *HTTPResolver) Resolve(ctx context.Context, address string) (*Descriptor, error) {
	_, host, ok := strings.Cut(address, "@")
	if !ok || host == "" {
		return nil, fmt.Errorf("invalid address %q: want user@host", address)
	}

	lookupURL := fmt.Sprintf("%s://%s/.well-known/docsync?resource=%s",
		r.Scheme, host, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discovery lookup failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("discovery lookup failed with status %d: %s", resp.StatusCode, string(body))
	}

	var desc Descriptor
	if err := json.NewDecoder(resp.Body).Decode(&desc); err != nil {
		return nil, fmt.Errorf("failed to decode descriptor: %w", err)
	}

	if desc.Server == "" {
		return nil, fmt.Errorf("descriptor for %q has no server", address)
	}

	return &desc, nil
}
