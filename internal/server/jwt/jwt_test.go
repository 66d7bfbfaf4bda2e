package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewService("signing-key", time.Hour)

	token, expiresIn, err := svc.GenerateAccessToken("client-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "client-1", claims.ClientID())
}

func TestValidateRejectsWrongKey(t *testing.T) {
	token, _, err := NewService("key-a", time.Hour).GenerateAccessToken("client-1")
	require.NoError(t, err)

	_, err = NewService("key-b", time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewService("signing-key", -time.Minute)

	token, _, err := svc.GenerateAccessToken("client-1")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewService("signing-key", time.Hour)

	_, err := svc.ValidateAccessToken("not.a.token")
	assert.Error(t, err)
}
