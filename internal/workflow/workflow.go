// Package workflow orchestrates multi-step operations on top of the API
// client: creating a repository with a local working copy, and listing
// repositories.
package workflow

import (
	"context"
	"fmt"

	"ghrepo/internal/github"
)

// RepositoryCreator creates remote repositories for the authenticated user.
type RepositoryCreator interface {
	Username() string
	CreateRepository(ctx context.Context, name, description string, private, autoInit bool) (bool, error)
}

// RepositoryLister lists the repositories of the authenticated user.
type RepositoryLister interface {
	ListUserRepositories(ctx context.Context) ([]github.RepositorySummary, error)
}

// WorkingCopyInitializer creates a local working copy of a remote repository.
type WorkingCopyInitializer interface {
	Init(ctx context.Context, parent, owner, repo string) (string, error)
}

// FolderOpener opens a folder, typically in an editor.
type FolderOpener interface {
	Open(ctx context.Context, folder string) error
}

// Step names a stage of a workflow.
type Step string

// Stages of the create workflow.
const (
	StepCreateRepository Step = "create repository"
	StepInitWorkingCopy  Step = "initialize working copy"
	StepOpenEditor       Step = "open editor"
)

// StepError reports the workflow stage that failed. Earlier stages are not rolled back.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
