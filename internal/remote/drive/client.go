// Package drive implements the remote backend for token-based cloud-drive
// providers. Documents live inside one drive folder and are addressed by
// ID; all requests carry the caller-supplied bearer token.
package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iudanet/docsync/internal/models"
	"github.com/iudanet/docsync/internal/remote"
	"github.com/iudanet/docsync/pkg/api"
)

var _ remote.Backend = (*Client)(nil)

// Client talks to a cloud-drive document API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	folderID   string
	token      string
}

// NewClient creates a drive backend client. endpoint is the provider base
// URL, folderID identifies the synchronized folder, token is the access
// token obtained by the caller.
func NewClient(endpoint, folderID, token string) *Client {
	return &Client{
		endpoint: endpoint,
		folderID: folderID,
		token:    token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Ping verifies the folder is reachable and the token is accepted.
func (c *Client) Ping(ctx context.Context) error {
	path := fmt.Sprintf("/drive/v1/folders/%s", url.PathEscape(c.folderID))
	if err := c.doRequest(ctx, http.MethodGet, path, nil, nil); err != nil {
		return fmt.Errorf("drive handshake failed: %w", err)
	}
	return nil
}

// List returns the listing projection of every document in the folder.
func (c *Client) List(ctx context.Context) ([]models.DocumentInfo, error) {
	var resp api.ListDocumentsResponse
	path := fmt.Sprintf("/drive/v1/folders/%s/documents", url.PathEscape(c.folderID))
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("drive list failed: %w", err)
	}

	infos := make([]models.DocumentInfo, 0, len(resp.Documents))
	for _, d := range resp.Documents {
		infos = append(infos, models.DocumentInfo{ID: d.ID, Rev: d.Rev, Deleted: d.Deleted})
	}
	return infos, nil
}

// Get retrieves a full document by ID.
func (c *Client) Get(ctx context.Context, id string) (*models.Document, error) {
	var resp api.Document
	path := fmt.Sprintf("/drive/v1/folders/%s/documents/%s", url.PathEscape(c.folderID), url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("drive get failed: %w", err)
	}

	return &models.Document{
		ID:        resp.ID,
		Rev:       resp.Rev,
		Data:      resp.Data,
		Deleted:   resp.Deleted,
		CreatedAt: resp.CreatedAt,
		UpdatedAt: resp.UpdatedAt,
	}, nil
}

// Put stores or overwrites a document.
func (c *Client) Put(ctx context.Context, doc *models.Document) error {
	body := api.Document{
		ID:        doc.ID,
		Rev:       doc.Rev,
		Data:      doc.Data,
		Deleted:   doc.Deleted,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	path := fmt.Sprintf("/drive/v1/folders/%s/documents/%s", url.PathEscape(c.folderID), url.PathEscape(doc.ID))
	if err := c.doRequest(ctx, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("drive put failed: %w", err)
	}
	return nil
}

// doRequest performs one authenticated HTTP round-trip.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	reqURL := c.endpoint + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
