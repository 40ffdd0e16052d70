package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createSourceRepository creates a local repository with a single commit on
// branch, standing in for a freshly auto-initialized remote.
func createSourceRepository(t *testing.T, branch string) string {
	t.Helper()

	dir := t.TempDir()
	r, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName(branch)},
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# hello\n"), 0o600))

	wt, err := r.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	_, err = wt.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "octocat", Email: "octocat@github.com", When: time.Now()},
	})
	require.NoError(t, err)

	return dir
}

func TestBootstrapper_RemoteURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   BootstrapConfig
		expected string
	}{
		{
			name:     "ssh by default",
			config:   BootstrapConfig{},
			expected: "git@github.com:octocat/hello.git",
		},
		{
			name:     "https",
			config:   BootstrapConfig{Protocol: "https"},
			expected: "https://github.com/octocat/hello.git",
		},
		{
			name:     "template wins over protocol",
			config:   BootstrapConfig{Protocol: "https", RemoteURLTemplate: "ssh://git@ghe.example.com/{owner}/{repo}"},
			expected: "ssh://git@ghe.example.com/octocat/hello",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, NewBootstrapper(tt.config, nil).RemoteURL("octocat", "hello"))
		})
	}
}

func TestBootstrapper_Auth(t *testing.T) {
	t.Parallel()

	b := NewBootstrapper(BootstrapConfig{Username: "octocat", Password: "s3cret"}, nil)

	assert.NotNil(t, b.auth("https://github.com/octocat/hello.git"))
	assert.Nil(t, b.auth("git@github.com:octocat/hello.git"))
	assert.Nil(t, NewBootstrapper(BootstrapConfig{}, nil).auth("https://github.com/octocat/hello.git"))
}

func TestBootstrapper_Init(t *testing.T) {
	t.Parallel()

	source := createSourceRepository(t, "main")
	parent := t.TempDir()
	b := NewBootstrapper(BootstrapConfig{
		DefaultBranch:     "main",
		RemoteURLTemplate: source,
	}, nil)

	folder, err := b.Init(context.Background(), parent, "octocat", "hello")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(parent, "hello"), folder)

	readme, err := os.ReadFile(filepath.Join(folder, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# hello\n", string(readme))

	r, err := git.PlainOpen(folder)
	require.NoError(t, err)

	head, err := r.Head()
	require.NoError(t, err)
	assert.Equal(t, plumbing.NewBranchReferenceName("main"), head.Name())

	remote, err := r.Remote("origin")
	require.NoError(t, err)
	assert.Equal(t, []string{source}, remote.Config().URLs)

	cfg, err := r.Config()
	require.NoError(t, err)
	branch, ok := cfg.Branches["main"]
	require.True(t, ok, "main must track a remote branch")
	assert.Equal(t, "origin", branch.Remote)
	assert.Equal(t, plumbing.NewBranchReferenceName("main"), branch.Merge)
}

func TestBootstrapper_Init_CustomBranch(t *testing.T) {
	t.Parallel()

	source := createSourceRepository(t, "master")
	b := NewBootstrapper(BootstrapConfig{DefaultBranch: "master", RemoteURLTemplate: source}, nil)

	folder, err := b.Init(context.Background(), t.TempDir(), "octocat", "legacy")

	require.NoError(t, err)
	r, err := git.PlainOpen(folder)
	require.NoError(t, err)
	head, err := r.Head()
	require.NoError(t, err)
	assert.Equal(t, plumbing.NewBranchReferenceName("master"), head.Name())
}

func TestBootstrapper_Init_ExistingFolder(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(parent, "hello"), 0o755))

	b := NewBootstrapper(BootstrapConfig{DefaultBranch: "main"}, nil)
	_, err := b.Init(context.Background(), parent, "octocat", "hello")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWorkingCopyExists)
}

func TestBootstrapper_Init_PullFailure(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	b := NewBootstrapper(BootstrapConfig{
		DefaultBranch:     "main",
		RemoteURLTemplate: filepath.Join(t.TempDir(), "missing", "{repo}"),
	}, nil)

	_, err := b.Init(context.Background(), parent, "octocat", "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "git pull origin main failed")

	_, statErr := os.Stat(filepath.Join(parent, "hello", ".git"))
	assert.NoError(t, statErr, "the initialized folder is left in place")
}
