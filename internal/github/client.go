// Package github provides a minimal client for the GitHub REST API.
// It authenticates every request with HTTP basic authentication, decodes
// responses into typed results, and reports failures as *Error values with
// a stable Kind.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// userAgent is the User-Agent header value sent with all API requests.
	userAgent = "ghrepo/1.0"

	// contentTypeJSON is the Content-Type header value for JSON requests.
	contentTypeJSON = "application/json"

	// acceptGitHubJSON is the media type recommended by the REST API.
	acceptGitHubJSON = "application/vnd.github+json"

	// API endpoint paths.
	pathUser      = "/user"
	pathUserRepos = "/user/repos"
)

// credentials are fixed at construction and never exposed.
type credentials struct {
	username string
	password string
}

// Client provides methods for interacting with the GitHub API on behalf of
// one user. It is safe to reuse for any number of sequential calls.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	credentials credentials
	committer   Committer
	metrics     *requestMetrics
}

// NewClient creates a client and verifies connectivity and credentials with
// one request to the user profile endpoint.
//
// It fails with a KindConnection error if the host cannot be reached and with
// a KindAuthentication error if the host rejects the request with a 4xx status.
func NewClient(ctx context.Context, config *Config) (*Client, error) {
	return NewClientWithHTTPClient(ctx, config, nil)
}

// NewClientWithHTTPClient is like NewClient but sends requests through httpClient.
// If httpClient is nil, a default HTTP client with the configured timeout is used.
func NewClientWithHTTPClient(ctx context.Context, config *Config, httpClient *http.Client) (*Client, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	metrics, err := newRequestMetrics(config.MeterProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to create request metrics: %w", err)
	}

	c := &Client{
		baseURL:    strings.TrimRight(config.APIURL, "/"),
		httpClient: httpClient,
		credentials: credentials{
			username: config.Username,
			password: config.Password,
		},
		committer: config.committer(),
		metrics:   metrics,
	}

	if err := c.verify(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

// Username returns the login the client authenticates as.
func (c *Client) Username() string {
	return c.credentials.username
}

// verify performs the connectivity and credential check done at construction.
func (c *Client) verify(ctx context.Context) error {
	err := c.doRequest(ctx, http.MethodGet, pathUser, nil, nil)

	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindRequest &&
		apiErr.StatusCode >= http.StatusBadRequest && apiErr.StatusCode < http.StatusInternalServerError {
		apiErr.Kind = KindAuthentication
	}

	return err
}

// doRequest performs one HTTP request and decodes the response.
// If body is non-nil, it is JSON-encoded and sent with Content-Type: application/json.
// If result is non-nil and the response has a body, the body is JSON-decoded into it.
// No retries are attempted.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptGitHubJSON)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	req.SetBasicAuth(c.credentials.username, c.credentials.password)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.record(ctx, method, 0, time.Since(start))
		return connectionError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	c.metrics.record(ctx, method, resp.StatusCode, time.Since(start))
	if err != nil {
		return connectionError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return requestError(resp.StatusCode, data)
	}

	if result == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, result); err != nil {
		return decodingError("failed to decode response", err)
	}

	return nil
}

// requestError builds a KindRequest error from a non-success response.
// A body without a usable message falls back to the status text.
func requestError(statusCode int, data []byte) *Error {
	var body errorBody
	err := json.Unmarshal(data, &body)
	if err == nil && body.Message != "" {
		return &Error{Kind: KindRequest, StatusCode: statusCode, Message: body.Message}
	}

	return &Error{
		Kind:       KindRequest,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		Err:        err,
	}
}

// repositoryPath returns the API path of a repository owned by the client user.
func (c *Client) repositoryPath(repository string) string {
	return "/repos/" + url.PathEscape(c.credentials.username) + "/" + url.PathEscape(repository)
}

// contentsPath returns the contents API path of filePath inside repository.
// An empty filePath addresses the repository root.
func (c *Client) contentsPath(repository, filePath string) string {
	path := c.repositoryPath(repository) + "/contents"
	if escaped := escapeFilePath(filePath); escaped != "" {
		path += "/" + escaped
	}
	return path
}

// escapeFilePath escapes each segment of a slash-separated path.
func escapeFilePath(filePath string) string {
	trimmed := strings.Trim(filePath, "/")
	if trimmed == "" {
		return ""
	}

	segments := strings.Split(trimmed, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

func requireArgument(value, name string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidArgument, name)
	}
	return nil
}
