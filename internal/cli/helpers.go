package cli

import (
	"fmt"
	"strings"

	"github.com/iudanet/docsync/internal/iocli"
)

// EnsureSecret returns value unchanged when the flags or environment
// already supplied it, otherwise reads it from the terminal without echo.
func EnsureSecret(io iocli.IO, prompt, value string) (string, error) {
	if value != "" {
		return value, nil
	}

	secret, err := io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", promptName(prompt), err)
	}

	if secret == "" {
		return "", fmt.Errorf("%s cannot be empty", promptName(prompt))
	}

	return secret, nil
}

// promptName turns a prompt like "Password: " into a lowercase noun for
// error messages.
func promptName(prompt string) string {
	name := strings.ToLower(strings.TrimRight(prompt, ": "))
	if name == "" {
		return "secret"
	}

	return name
}
