package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid http", "http://dav.example.com/docs", false},
		{"valid https", "https://dav.example.com", false},
		{"empty", "", true},
		{"missing scheme", "dav.example.com/docs", true},
		{"bad scheme", "ftp://dav.example.com", true},
		{"missing host", "https://", true},
		{"garbage", "://nope", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{"valid", "notes@hub.example.com", false},
		{"valid with port", "notes@hub.example.com:8443", false},
		{"valid bare host", "notes@localhost", false},
		{"empty", "", true},
		{"no separator", "hub.example.com", true},
		{"double separator", "a@b@c", true},
		{"whitespace", "notes @hub.example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.address)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateInterval(t *testing.T) {
	assert.NoError(t, ValidateInterval(0))
	assert.NoError(t, ValidateInterval(30*time.Second))
	assert.Error(t, ValidateInterval(-time.Second))
}
