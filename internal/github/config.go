package github

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// DefaultAPIURL is the base URL of the public GitHub REST API.
const DefaultAPIURL = "https://api.github.com"

// Supported URL schemes.
const (
	schemeHTTP  = "http://"
	schemeHTTPS = "https://"
)

// Config holds everything needed to construct a Client.
type Config struct {
	// APIURL is the base URL of the API (e.g., "https://api.github.com").
	// Must include the scheme (http:// or https://).
	APIURL string

	// Username and Password are sent with every request using basic authentication.
	// Password may be a personal access token.
	Username string
	Password string

	// CommitterName and CommitterEmail identify the committer of file writes.
	// Both default to Username when empty.
	CommitterName  string
	CommitterEmail string

	// Timeout bounds each HTTP request. Zero keeps the transport default.
	Timeout time.Duration

	// MeterProvider receives request metrics. Nil uses the global provider.
	MeterProvider metric.MeterProvider
}

// Validate returns an error if any field is invalid.
//
// Validation rules:
//   - Username and Password must not be empty
//   - APIURL must start with http:// or https://
//   - Timeout must not be negative
func (c Config) Validate() error {
	if c.Username == "" {
		return errors.New("invalid configuration: username cannot be empty")
	}

	if c.Password == "" {
		return errors.New("invalid configuration: password cannot be empty")
	}

	if !strings.HasPrefix(c.APIURL, schemeHTTP) && !strings.HasPrefix(c.APIURL, schemeHTTPS) {
		return fmt.Errorf("invalid configuration: API URL must have http:// or https:// scheme, got %q", c.APIURL)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("invalid configuration: timeout cannot be negative, got %v", c.Timeout)
	}

	return nil
}

func (c Config) committer() Committer {
	committer := Committer{Name: c.CommitterName, Email: c.CommitterEmail}
	if committer.Name == "" {
		committer.Name = c.Username
	}
	if committer.Email == "" {
		committer.Email = c.Username
	}
	return committer
}
