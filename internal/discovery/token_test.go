package discovery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/docsync/pkg/api"
)

func TestExchange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var req api.TokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "client-1", req.ClientID)
		assert.Equal(t, "secret", req.ClientSecret)

		_ = json.NewEncoder(w).Encode(api.TokenResponse{
			AccessToken: "tok-abc",
			TokenType:   "Bearer",
			ExpiresIn:   3600,
		})
	}))
	defer server.Close()

	tokens := NewHTTPTokenSource()
	desc := &Descriptor{AuthEndpoint: server.URL}

	token, err := tokens.Exchange(context.Background(), desc, Credentials{ClientID: "client-1", ClientSecret: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
}

func TestExchange_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "invalid client credentials"})
	}))
	defer server.Close()

	tokens := NewHTTPTokenSource()

	_, err := tokens.Exchange(context.Background(), &Descriptor{AuthEndpoint: server.URL}, Credentials{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid client credentials")
}

func TestExchange_NoAuthEndpoint(t *testing.T) {
	tokens := NewHTTPTokenSource()

	_, err := tokens.Exchange(context.Background(), &Descriptor{}, Credentials{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no auth endpoint")
}

func TestExchange_EmptyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.TokenResponse{TokenType: "Bearer"})
	}))
	defer server.Close()

	tokens := NewHTTPTokenSource()

	_, err := tokens.Exchange(context.Background(), &Descriptor{AuthEndpoint: server.URL}, Credentials{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no access token")
}
