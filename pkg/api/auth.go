package api

// TokenRequest represents a client-credentials token exchange request
type TokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// TokenResponse represents the issued access token
type TokenResponse struct {
	AccessToken string `json:"access_token"` // JWT access token
	TokenType   string `json:"token_type"`   // always "Bearer"
	ExpiresIn   int64  `json:"expires_in"`   // access token lifetime in seconds
}

// ErrorResponse represents an error reply
type ErrorResponse struct {
	Error   string `json:"error"`             // short error description
	Message string `json:"message,omitempty"` // additional detail
}
