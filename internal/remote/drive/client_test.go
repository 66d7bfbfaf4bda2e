package drive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/docsync/internal/models"
	"github.com/iudanet/docsync/pkg/api"
)

func TestPing(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/drive/v1/folders/folder-1", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "folder-1", "tok-123")

	err := client.Ping(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestPing_RejectedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "invalid token"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "folder-1", "bad-token")

	err := client.Ping(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/drive/v1/folders/folder-1/documents", r.URL.Path)
		_ = json.NewEncoder(w).Encode(api.ListDocumentsResponse{
			Documents: []api.DocumentInfo{
				{ID: "doc-1", Rev: "1"},
				{ID: "doc-2", Rev: "3", Deleted: true},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "folder-1", "tok")

	infos, err := client.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.DocumentInfo{
		{ID: "doc-1", Rev: "1"},
		{ID: "doc-2", Rev: "3", Deleted: true},
	}, infos)
}

func TestGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/drive/v1/folders/folder-1/documents/doc-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(api.Document{
			ID:   "doc-1",
			Rev:  "2",
			Data: json.RawMessage(`{"title":"remote"}`),
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "folder-1", "tok")

	doc, err := client.Get(context.Background(), "doc-1")

	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, "2", doc.Rev)
	assert.JSONEq(t, `{"title":"remote"}`, string(doc.Data))
}

func TestPut(t *testing.T) {
	var received api.Document
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/drive/v1/folders/folder-1/documents/doc-1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_ = json.NewEncoder(w).Encode(api.PutDocumentResponse{ID: "doc-1", Rev: "2"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "folder-1", "tok")

	err := client.Put(context.Background(), &models.Document{
		ID:   "doc-1",
		Rev:  "2",
		Data: json.RawMessage(`{"title":"local"}`),
	})

	require.NoError(t, err)
	assert.Equal(t, "doc-1", received.ID)
	assert.Equal(t, "2", received.Rev)
}

func TestGet_ServerError_PlainBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "folder-1", "tok")

	_, err := client.Get(context.Background(), "doc-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
