package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"ghrepo/internal/logging"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// ErrWorkingCopyExists is returned when the target folder of a new working copy already exists.
var ErrWorkingCopyExists = errors.New("working copy already exists")

const (
	remoteOrigin = "origin"

	sshURLTemplate   = "git@github.com:{owner}/{repo}.git"
	httpsURLTemplate = "https://github.com/{owner}/{repo}.git"
)

// BootstrapConfig configures how new working copies are initialized.
type BootstrapConfig struct {
	// DefaultBranch is created locally, pulled from origin and tracked.
	DefaultBranch string

	// Protocol selects the default origin URL: "ssh" or "https".
	Protocol string

	// RemoteURLTemplate overrides the origin URL. {owner} and {repo} are substituted.
	RemoteURLTemplate string

	// Username and Password authenticate pulls over HTTPS.
	Username string
	Password string
}

// Bootstrapper creates local working copies tracking a remote repository.
type Bootstrapper struct {
	config BootstrapConfig
	logger logging.ApplicationLogger
}

// NewBootstrapper creates a Bootstrapper. A nil logger discards log entries.
func NewBootstrapper(config BootstrapConfig, logger logging.ApplicationLogger) *Bootstrapper {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Bootstrapper{config: config, logger: logger.WithComponent("workspace")}
}

// RemoteURL returns the origin URL for repo owned by owner.
func (b *Bootstrapper) RemoteURL(owner, repo string) string {
	template := b.config.RemoteURLTemplate
	if template == "" {
		template = sshURLTemplate
		if b.config.Protocol == "https" {
			template = httpsURLTemplate
		}
	}
	return strings.NewReplacer("{owner}", owner, "{repo}", repo).Replace(template)
}

// Init creates <parent>/<repo> as a working copy of owner/repo and returns its path.
//
// It initializes the repository, registers origin, pulls the default branch
// and sets origin/<branch> as upstream. A folder left behind by a failed pull
// is not removed.
func (b *Bootstrapper) Init(ctx context.Context, parent, owner, repo string) (string, error) {
	folder := filepath.Join(parent, repo)

	if _, err := os.Stat(folder); err == nil {
		return "", fmt.Errorf("%w: %s", ErrWorkingCopyExists, folder)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to inspect %s: %w", folder, err)
	}

	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", folder, err)
	}

	branch := plumbing.NewBranchReferenceName(b.config.DefaultBranch)
	r, err := git.PlainInitWithOptions(folder, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: branch},
	})
	if err != nil {
		return "", fmt.Errorf("git init failed: %w", err)
	}

	remoteURL := b.RemoteURL(owner, repo)
	if _, err := r.CreateRemote(&gitconfig.RemoteConfig{
		Name: remoteOrigin,
		URLs: []string{remoteURL},
	}); err != nil {
		return "", fmt.Errorf("git remote add failed: %w", err)
	}

	b.logger.Debug(ctx, "Pulling initial commit", logging.Fields{
		"folder": folder,
		"remote": remoteURL,
		"branch": b.config.DefaultBranch,
	})

	wt, err := r.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to open worktree: %w", err)
	}

	err = wt.PullContext(ctx, &git.PullOptions{
		RemoteName:    remoteOrigin,
		ReferenceName: branch,
		Auth:          b.auth(remoteURL),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return "", fmt.Errorf("git pull %s %s failed: %w", remoteOrigin, b.config.DefaultBranch, err)
	}

	if err := r.CreateBranch(&gitconfig.Branch{
		Name:   b.config.DefaultBranch,
		Remote: remoteOrigin,
		Merge:  branch,
	}); err != nil {
		return "", fmt.Errorf("failed to track %s/%s: %w", remoteOrigin, b.config.DefaultBranch, err)
	}

	b.logger.Info(ctx, "Working copy initialized", logging.Fields{
		"folder": folder,
		"remote": remoteURL,
	})
	return folder, nil
}

// auth returns basic auth for HTTPS remotes; other transports use their defaults.
func (b *Bootstrapper) auth(remoteURL string) transport.AuthMethod {
	if !strings.HasPrefix(remoteURL, "https://") || b.config.Username == "" {
		return nil
	}
	return &githttp.BasicAuth{Username: b.config.Username, Password: b.config.Password}
}
