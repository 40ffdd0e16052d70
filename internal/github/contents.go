package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// emptyRepositoryMessage is the message of the 404 returned for a repository without commits.
const (
	emptyRepositoryMessage = "repository is empty"
	contentEncodingBase64  = "base64"
)

// ListRepositoryContents returns the items at the root of repository.
// A repository without files yields an empty slice, not an error.
func (c *Client) ListRepositoryContents(ctx context.Context, repository string) ([]RepositoryItem, error) {
	if err := requireArgument(repository, "repository name"); err != nil {
		return nil, err
	}

	var entries []contentEntry
	err := c.doRequest(ctx, http.MethodGet, c.contentsPath(repository, ""), nil, &entries)
	if isEmptyRepository(err) {
		return []RepositoryItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	result := make([]RepositoryItem, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type.Valid() {
			return nil, decodingError(fmt.Sprintf("unexpected item type %q for %q", entry.Type, entry.Name), nil)
		}
		result = append(result, RepositoryItem{
			Name: entry.Name,
			Type: entry.Type,
			Size: entry.Size,
			URL:  entry.HTMLURL,
			SHA:  entry.SHA,
		})
	}
	return result, nil
}

// GetFileContent returns the UTF-8 text of the file at filePath.
// Reading a directory fails with a KindDecoding error.
func (c *Client) GetFileContent(ctx context.Context, repository, filePath string) (string, error) {
	if err := requireArgument(repository, "repository name"); err != nil {
		return "", err
	}
	if err := requireArgument(filePath, "file path"); err != nil {
		return "", err
	}

	var entry fileEntry
	if err := c.doRequest(ctx, http.MethodGet, c.contentsPath(repository, filePath), nil, &entry); err != nil {
		return "", err
	}

	if entry.Content == nil || (entry.Type != "" && entry.Type != ItemFile) {
		return "", decodingError(fmt.Sprintf("%q is not a file", filePath), nil)
	}
	// Files above 1 MB come back with encoding "none" and no content.
	if entry.Encoding != "" && entry.Encoding != contentEncodingBase64 {
		return "", decodingError(fmt.Sprintf("%q has unsupported content encoding %q", filePath, entry.Encoding), nil)
	}

	return DecodeContent(*entry.Content)
}

// CreateOrUpdateFile writes content to filePath and returns the new content SHA.
// An empty sha creates the file; updating an existing file requires its current sha.
func (c *Client) CreateOrUpdateFile(
	ctx context.Context,
	repository, filePath, content, message, sha string,
) (string, error) {
	if err := requireArgument(repository, "repository name"); err != nil {
		return "", err
	}
	if err := requireArgument(filePath, "file path"); err != nil {
		return "", err
	}

	req := FileWriteRequest{
		Message:   message,
		Content:   EncodeContent(content),
		Committer: c.committer,
		SHA:       sha,
	}

	var resp fileCommitResponse
	if err := c.doRequest(ctx, http.MethodPut, c.contentsPath(repository, filePath), req, &resp); err != nil {
		return "", err
	}

	if resp.Content == nil || resp.Content.SHA == "" {
		return "", decodingError("response has no content sha", nil)
	}
	return resp.Content.SHA, nil
}

// DeleteFile deletes filePath. sha must be the current content SHA of the file.
func (c *Client) DeleteFile(ctx context.Context, repository, filePath, message, sha string) (bool, error) {
	if err := requireArgument(repository, "repository name"); err != nil {
		return false, err
	}
	if err := requireArgument(filePath, "file path"); err != nil {
		return false, err
	}
	if err := requireArgument(sha, "sha"); err != nil {
		return false, err
	}

	req := FileDeleteRequest{
		Message:   message,
		Committer: c.committer,
		SHA:       sha,
	}

	if err := c.doRequest(ctx, http.MethodDelete, c.contentsPath(repository, filePath), req, nil); err != nil {
		return false, err
	}
	return true, nil
}

// EncodeContent base64-encodes text for the contents API.
func EncodeContent(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// DecodeContent decodes a base64 contents payload into UTF-8 text.
// Line breaks inserted by the API are ignored.
func DecodeContent(encoded string) (string, error) {
	cleaned := strings.NewReplacer("\n", "", "\r", "").Replace(encoded)

	data, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return "", decodingError("failed to decode file content", err)
	}

	if !utf8.Valid(data) {
		return "", decodingError("file content is not valid UTF-8", nil)
	}

	return string(data), nil
}

func isEmptyRepository(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindRequest &&
		apiErr.StatusCode == http.StatusNotFound &&
		strings.Contains(strings.ToLower(apiErr.Message), emptyRepositoryMessage)
}
