// Package webdav implements the remote backend for generic WebDAV-style
// servers. Each document is stored as a single <id>.json resource inside
// one collection; listing uses a Depth:1 PROPFIND.
package webdav

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/iudanet/docsync/internal/models"
	"github.com/iudanet/docsync/internal/remote"
)

var _ remote.Backend = (*Client)(nil)

const propfindBody = `<?xml version="1.0" encoding="utf-8"?><propfind xmlns="DAV:"><prop><resourcetype/></prop></propfind>`

// Client talks to a WebDAV collection holding one JSON resource per
// document.
type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
}

// multistatus is the subset of the PROPFIND reply the client cares about.
type multistatus struct {
	XMLName   xml.Name `xml:"multistatus"`
	Responses []struct {
		Href string `xml:"href"`
	} `xml:"response"`
}

// NewClient creates a WebDAV backend client for the collection at baseURL.
func NewClient(baseURL, username, password string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Ping performs the handshake: a Depth:0 PROPFIND on the collection
// verifies reachability and credentials in one round-trip.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, "PROPFIND", c.baseURL+"/", strings.NewReader(propfindBody))
	if err != nil {
		return err
	}
	req.Header.Set("Depth", "0")
	req.Header.Set("Content-Type", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webdav handshake failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusMultiStatus && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webdav handshake failed with status %d", resp.StatusCode)
	}

	return nil
}

// List enumerates the collection and reads each document to recover its
// revision marker. WebDAV itself carries no document metadata, so the
// marker has to come from the stored JSON body.
func (c *Client) List(ctx context.Context) ([]models.DocumentInfo, error) {
	ids, err := c.listIDs(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]models.DocumentInfo, 0, len(ids))
	for _, id := range ids {
		doc, err := c.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to read document %q: %w", id, err)
		}
		infos = append(infos, doc.Info())
	}

	return infos, nil
}

// Get retrieves a document resource by ID.
func (c *Client) Get(ctx context.Context, id string) (*models.Document, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.documentURL(id), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webdav get failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, remote.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("webdav get failed with status %d: %s", resp.StatusCode, string(body))
	}

	var doc models.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	return &doc, nil
}

// Put stores or overwrites a document resource.
func (c *Client) Put(ctx context.Context, doc *models.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPut, c.documentURL(doc.ID), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webdav put failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	default:
		return fmt.Errorf("webdav put failed with status %d", resp.StatusCode)
	}
}

// listIDs runs a Depth:1 PROPFIND and extracts the document IDs from the
// returned hrefs.
func (c *Client) listIDs(ctx context.Context) ([]string, error) {
	req, err := c.newRequest(ctx, "PROPFIND", c.baseURL+"/", strings.NewReader(propfindBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Depth", "1")
	req.Header.Set("Content-Type", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webdav list failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusMultiStatus {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("webdav list failed with status %d: %s", resp.StatusCode, string(body))
	}

	var ms multistatus
	if err := xml.NewDecoder(resp.Body).Decode(&ms); err != nil {
		return nil, fmt.Errorf("failed to parse multistatus response: %w", err)
	}

	var ids []string
	for _, r := range ms.Responses {
		name := path.Base(strings.TrimRight(r.Href, "/"))
		if !strings.HasSuffix(name, ".json") {
			// The collection itself and any unrelated resources.
			continue
		}
		id, err := url.PathUnescape(strings.TrimSuffix(name, ".json"))
		if err != nil {
			return nil, fmt.Errorf("failed to unescape href %q: %w", r.Href, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (c *Client) documentURL(id string) string {
	return c.baseURL + "/" + url.PathEscape(id) + ".json"
}

func (c *Client) newRequest(ctx context.Context, method, reqURL string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	return req, nil
}
