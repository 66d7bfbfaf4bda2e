package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"time"
)

// AddressPattern defines the accepted user-style address format: a
// local part and a host joined by a single "@", neither empty and
// neither containing whitespace or another "@".
var AddressPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

// ValidateURL checks that raw parses as an absolute http(s) URL.
func ValidateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("URL cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}

	return nil
}

// ValidateAddress checks the user-style address used by discovery-based
// backends.
func ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("address cannot be empty")
	}

	if !AddressPattern.MatchString(address) {
		return fmt.Errorf("address must look like user@host, got %q", address)
	}

	return nil
}

// ValidateInterval checks an auto-sync interval. Zero disables
// scheduling; negative values are rejected.
func ValidateInterval(interval time.Duration) error {
	if interval < 0 {
		return fmt.Errorf("interval cannot be negative, got %s", interval)
	}

	return nil
}
