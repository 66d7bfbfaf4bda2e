package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/docsync/internal/iocli"
)

func TestEnsureSecret_SuppliedValueSkipsPrompt(t *testing.T) {
	mockIO := &iocli.IOMock{}

	secret, err := EnsureSecret(mockIO, "Password: ", "from-flag")

	require.NoError(t, err)
	assert.Equal(t, "from-flag", secret)
	assert.Empty(t, mockIO.ReadPasswordCalls())
}

func TestEnsureSecret_PromptsWhenEmpty(t *testing.T) {
	mockIO := &iocli.IOMock{
		ReadPasswordFunc: func(prompt string) (string, error) {
			return "typed-secret", nil
		},
	}

	secret, err := EnsureSecret(mockIO, "Password: ", "")

	require.NoError(t, err)
	assert.Equal(t, "typed-secret", secret)
	require.Len(t, mockIO.ReadPasswordCalls(), 1)
	assert.Equal(t, "Password: ", mockIO.ReadPasswordCalls()[0].Prompt)
}

func TestEnsureSecret_ReadFailure(t *testing.T) {
	mockIO := &iocli.IOMock{
		ReadPasswordFunc: func(prompt string) (string, error) {
			return "", errors.New("not a terminal")
		},
	}

	_, err := EnsureSecret(mockIO, "Client secret: ", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read client secret")
}

func TestEnsureSecret_EmptyInput(t *testing.T) {
	mockIO := &iocli.IOMock{
		ReadPasswordFunc: func(prompt string) (string, error) {
			return "", nil
		},
	}

	_, err := EnsureSecret(mockIO, "Password: ", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "password cannot be empty")
}
