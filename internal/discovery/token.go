package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iudanet/docsync/pkg/api"
)

var _ TokenSource = (*HTTPTokenSource)(nil)

// HTTPTokenSource exchanges client credentials for an access token with a
// POST to the descriptor's auth endpoint.
type HTTPTokenSource struct {
	httpClient *http.Client
}

func NewHTTPTokenSource() *HTTPTokenSource {
	return &HTTPTokenSource{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (t *HTTPTokenSource) Exchange(ctx context.Context, desc *Descriptor, creds Credentials) (string, error) {
	if desc.AuthEndpoint == "" {
		return "", fmt.Errorf("descriptor has no auth endpoint")
	}

	body, err := json.Marshal(api.TokenRequest{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, desc.AuthEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return "", fmt.Errorf("token exchange failed (%d): %s", resp.StatusCode, errResp.Error)
		}
		return "", fmt.Errorf("token exchange failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var tokenResp api.TokenResponse
	if err := json.Unmarshal(respBody, &tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("token response has no access token")
	}

	return tokenResp.AccessToken, nil
}
