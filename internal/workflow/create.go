package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"ghrepo/internal/github"
	"ghrepo/internal/logging"
	"ghrepo/internal/output"
)

// CreateOptions are the inputs of the create workflow.
type CreateOptions struct {
	Name        string
	Description string
	Private     bool

	// Dir is the parent folder of the working copy. Empty means the current directory.
	Dir string

	// OpenEditor opens the working copy once it is initialized.
	OpenEditor bool
}

// CreateResult describes what the create workflow produced.
type CreateResult struct {
	Name         string `json:"name" yaml:"name"`
	Owner        string `json:"owner" yaml:"owner"`
	Folder       string `json:"folder" yaml:"folder"`
	EditorOpened bool   `json:"editor_opened" yaml:"editor_opened"`
}

// Creator creates a remote repository with an initial commit, clones it into
// a local working copy and opens it in an editor.
type Creator struct {
	api       RepositoryCreator
	workspace WorkingCopyInitializer
	editor    FolderOpener
	progress  *output.Progress
	logger    logging.ApplicationLogger
}

// NewCreator creates a Creator. editor may be nil when no editor is configured;
// progress and logger default to discarding output.
func NewCreator(
	api RepositoryCreator,
	workspace WorkingCopyInitializer,
	editor FolderOpener,
	progress *output.Progress,
	logger logging.ApplicationLogger,
) (*Creator, error) {
	if api == nil {
		return nil, errors.New("repository creator cannot be nil")
	}
	if workspace == nil {
		return nil, errors.New("working copy initializer cannot be nil")
	}
	if progress == nil {
		progress = output.NewProgress(io.Discard)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &Creator{
		api:       api,
		workspace: workspace,
		editor:    editor,
		progress:  progress,
		logger:    logger.WithComponent("create-workflow"),
	}, nil
}

// Create runs the workflow and stops at the first failing step.
func (c *Creator) Create(ctx context.Context, opts CreateOptions) (*CreateResult, error) {
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: repository name cannot be empty", github.ErrInvalidArgument)
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	ctx = logging.EnsureCorrelationID(ctx)
	owner := c.api.Username()
	result := &CreateResult{Name: name, Owner: owner}

	c.logger.Info(ctx, "Creating repository", logging.Fields{
		"repository": name,
		"private":    opts.Private,
	})
	if _, err := c.api.CreateRepository(ctx, name, opts.Description, opts.Private, true); err != nil {
		return nil, &StepError{Step: StepCreateRepository, Err: err}
	}
	c.progress.Success("Repository %q has been created.", name)

	c.progress.Step("Initializing repository:")
	folder, err := c.workspace.Init(ctx, dir, owner, name)
	if err != nil {
		c.logger.ErrorWithError(ctx, err, "Working copy initialization failed", logging.Fields{
			"repository": name,
			"dir":        dir,
		})
		return nil, &StepError{Step: StepInitWorkingCopy, Err: err}
	}
	result.Folder = folder

	if opts.OpenEditor && c.editor != nil {
		if err := c.editor.Open(ctx, folder); err != nil {
			return nil, &StepError{Step: StepOpenEditor, Err: err}
		}
		result.EditorOpened = true
	}

	c.progress.Success("Done!")
	c.logger.Info(ctx, "Repository ready", logging.Fields{
		"repository": name,
		"folder":     folder,
	})
	return result, nil
}
