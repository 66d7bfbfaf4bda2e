package replication

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iudanet/docsync/internal/models"
	"github.com/iudanet/docsync/internal/storage"
	"github.com/iudanet/docsync/pkg/api"
)

var _ Engine = (*HTTPEngine)(nil)

// HTTPEngine is the built-in replication engine. It speaks the document
// HTTP protocol against {url}/{database}: GET on the database root lists
// the documents, GET/PUT on {database}/{id} transfers one document.
// Direction per document is decided by the lexicographic revision order,
// the same rule the merge pass uses.
type HTTPEngine struct {
	httpClient *http.Client
	logger     *slog.Logger
}

func NewHTTPEngine(logger *slog.Logger) *HTTPEngine {
	return &HTTPEngine{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type httpSession struct {
	client *http.Client
	base   string
	target Target
}

func (s *httpSession) Close() error { return nil }

// Open validates the target by listing the remote database once.
func (e *HTTPEngine) Open(ctx context.Context, target Target) (Session, error) {
	if target.URL == "" || target.Database == "" {
		return nil, fmt.Errorf("replication target needs a URL and a database")
	}

	s := &httpSession{
		client: e.httpClient,
		base:   strings.TrimRight(target.URL, "/") + "/" + url.PathEscape(target.Database),
		target: target,
	}

	if _, err := s.list(ctx); err != nil {
		return nil, fmt.Errorf("replication target unreachable: %w", err)
	}

	return s, nil
}

// Replicate starts one bidirectional pass in the background and returns
// its handle. The pass emits change events with cumulative counters and
// closes the stream after complete or error; a cancelled pass closes the
// stream without a terminal event.
func (e *HTTPEngine) Replicate(ctx context.Context, store storage.LocalStore, session Session, opts Options) (Handle, error) {
	s, ok := session.(*httpSession)
	if !ok {
		return nil, fmt.Errorf("session was not opened by this engine")
	}

	ctx, cancel := context.WithCancel(ctx)
	h := &httpHandle{
		events: make(chan Event, 16),
		cancel: cancel,
	}

	go h.run(ctx, e.logger, store, s, opts)

	return h, nil
}

type httpHandle struct {
	events chan Event
	cancel context.CancelFunc
}

func (h *httpHandle) Events() <-chan Event { return h.events }

func (h *httpHandle) Cancel() { h.cancel() }

func (h *httpHandle) run(ctx context.Context, logger *slog.Logger, store storage.LocalStore, s *httpSession, opts Options) {
	defer close(h.events)

	read, written, err := h.pass(ctx, store, s, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}

		h.emit(ctx, Event{Kind: EventError, DocumentsRead: read, DocumentsWritten: written, Err: err})

		return
	}

	logger.Debug("replication pass finished", "read", read, "written", written)
	h.emit(ctx, Event{Kind: EventComplete, DocumentsRead: read, DocumentsWritten: written})
}

func (h *httpHandle) pass(ctx context.Context, store storage.LocalStore, s *httpSession, opts Options) (read, written int64, err error) {
	remoteInfos, err := s.list(ctx)
	if err != nil {
		return read, written, fmt.Errorf("listing remote documents: %w", err)
	}

	localDocs, err := store.ListAll(ctx)
	if err != nil {
		return read, written, fmt.Errorf("listing local documents: %w", err)
	}

	local := make(map[string]*models.Document, len(localDocs))
	for _, doc := range localDocs {
		local[doc.ID] = doc
	}

	remote := make(map[string]models.DocumentInfo, len(remoteInfos))
	for _, info := range remoteInfos {
		remote[info.ID] = info
	}

	for id, info := range remote {
		if !matchesFilter(id, opts.Filter) {
			continue
		}

		localDoc, exists := local[id]
		if exists && !models.RevNewerThan(info.Rev, localDoc.Rev) {
			continue
		}

		doc, err := s.get(ctx, id)
		if err != nil {
			return read, written, fmt.Errorf("fetching %s: %w", id, err)
		}

		if err := store.Put(ctx, doc); err != nil {
			return read, written, fmt.Errorf("storing %s: %w", id, err)
		}

		read++
		h.emit(ctx, Event{Kind: EventChange, DocumentsRead: read, DocumentsWritten: written})
	}

	for id, doc := range local {
		if !matchesFilter(id, opts.Filter) {
			continue
		}

		info, exists := remote[id]
		if exists && !models.RevNewerThan(doc.Rev, info.Rev) {
			continue
		}

		if err := s.put(ctx, doc); err != nil {
			return read, written, fmt.Errorf("pushing %s: %w", id, err)
		}

		written++
		h.emit(ctx, Event{Kind: EventChange, DocumentsRead: read, DocumentsWritten: written})
	}

	return read, written, nil
}

func (h *httpHandle) emit(ctx context.Context, ev Event) {
	select {
	case h.events <- ev:
	case <-ctx.Done():
	}
}

// matchesFilter applies the pass filter: a non-empty filter restricts the
// pass to document IDs with that prefix.
func matchesFilter(id, filter string) bool {
	return filter == "" || strings.HasPrefix(id, filter)
}

func (s *httpSession) list(ctx context.Context) ([]models.DocumentInfo, error) {
	var resp api.ListDocumentsResponse
	if err := s.doRequest(ctx, http.MethodGet, "", nil, &resp); err != nil {
		return nil, err
	}

	infos := make([]models.DocumentInfo, 0, len(resp.Documents))
	for _, d := range resp.Documents {
		infos = append(infos, models.DocumentInfo{ID: d.ID, Rev: d.Rev, Deleted: d.Deleted})
	}

	return infos, nil
}

func (s *httpSession) get(ctx context.Context, id string) (*models.Document, error) {
	var resp api.Document
	if err := s.doRequest(ctx, http.MethodGet, "/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
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

func (s *httpSession) put(ctx context.Context, doc *models.Document) error {
	body := api.Document{
		ID:        doc.ID,
		Rev:       doc.Rev,
		Data:      doc.Data,
		Deleted:   doc.Deleted,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}

	return s.doRequest(ctx, http.MethodPut, "/"+url.PathEscape(doc.ID), body, nil)
}

func (s *httpSession) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.base+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	switch {
	case s.target.Token != "":
		req.Header.Set("Authorization", "Bearer "+s.target.Token)
	case s.target.Username != "":
		req.SetBasicAuth(s.target.Username, s.target.Password)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
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
