package github

import (
	"context"
	"net/http"
)

// repositoryHomepage is the homepage set on every created repository.
const repositoryHomepage = "https://github.com"

// ListUserRepositories returns every repository of the authenticated user.
// The result is empty, never nil, when the user owns none.
func (c *Client) ListUserRepositories(ctx context.Context) ([]RepositorySummary, error) {
	var entries []repositoryEntry
	if err := c.doRequest(ctx, http.MethodGet, pathUserRepos, nil, &entries); err != nil {
		return nil, err
	}

	result := make([]RepositorySummary, 0, len(entries))
	for _, entry := range entries {
		result = append(result, RepositorySummary{
			Name:        entry.Name,
			Description: entry.Description,
			URL:         entry.HTMLURL,
			Private:     entry.Private,
			SizeBytes:   entry.Size * 1024,
			Language:    entry.Language,
		})
	}
	return result, nil
}

// CreateRepository creates a repository for the authenticated user.
// When autoInit is set the repository starts with a README.md commit.
func (c *Client) CreateRepository(ctx context.Context, name, description string, private, autoInit bool) (bool, error) {
	if err := requireArgument(name, "repository name"); err != nil {
		return false, err
	}

	req := RepositoryCreateRequest{
		Name:        name,
		Description: description,
		Homepage:    repositoryHomepage,
		Private:     private,
		HasIssues:   true,
		HasProjects: true,
		HasWiki:     true,
		AutoInit:    autoInit,
	}

	if err := c.doRequest(ctx, http.MethodPost, pathUserRepos, req, nil); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteRepository irreversibly deletes a repository of the authenticated user.
func (c *Client) DeleteRepository(ctx context.Context, repository string) (bool, error) {
	if err := requireArgument(repository, "repository name"); err != nil {
		return false, err
	}

	if err := c.doRequest(ctx, http.MethodDelete, c.repositoryPath(repository), nil, nil); err != nil {
		return false, err
	}
	return true, nil
}
