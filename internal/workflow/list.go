package workflow

import (
	"context"
	"errors"
	"fmt"

	"ghrepo/internal/github"
	"ghrepo/internal/logging"
)

// Lister fetches the repositories of the authenticated user.
type Lister struct {
	api    RepositoryLister
	logger logging.ApplicationLogger
}

// NewLister creates a Lister. A nil logger discards log entries.
func NewLister(api RepositoryLister, logger logging.ApplicationLogger) (*Lister, error) {
	if api == nil {
		return nil, errors.New("repository lister cannot be nil")
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Lister{api: api, logger: logger.WithComponent("list-workflow")}, nil
}

// List returns the user's repositories in the order reported by the server.
func (l *Lister) List(ctx context.Context) ([]github.RepositorySummary, error) {
	ctx = logging.EnsureCorrelationID(ctx)

	repos, err := l.api.ListUserRepositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}

	l.logger.Debug(ctx, "Listed repositories", logging.Fields{"count": len(repos)})
	return repos, nil
}
