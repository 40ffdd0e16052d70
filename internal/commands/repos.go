package commands

import (
	"fmt"
	"io"

	"ghrepo/internal/output"
	"ghrepo/internal/workflow"
	"ghrepo/internal/workspace"

	"github.com/spf13/cobra"
)

// newCreateCmd creates the create command: a new remote repository with a
// local working copy, opened in the configured editor.
func newCreateCmd(a *app) *cobra.Command {
	var (
		description string
		private     bool
		dir         string
		noEditor    bool
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a repository and a local working copy",
		Long: `Create a repository with an initial README, initialize a local working copy
in <dir>/<name> tracking origin, and open it in the configured editor.

Steps are not rolled back: if the working copy cannot be created, the
remote repository still exists.`,
		Args: a.args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c, err := a.client(ctx)
			if err != nil {
				return a.fail(cmd, err)
			}

			ws := a.cfg.Workspace
			bootstrapper := workspace.NewBootstrapper(workspace.BootstrapConfig{
				DefaultBranch:     ws.DefaultBranch,
				Protocol:          ws.RemoteProtocol,
				RemoteURLTemplate: ws.RemoteURLTemplate,
				Username:          a.cfg.GitHub.Username,
				Password:          a.cfg.GitHub.Password,
			}, a.logger)

			openEditor := ws.OpenEditor && !noEditor
			var opener workflow.FolderOpener
			if openEditor {
				editor, err := workspace.NewEditor(workspace.NewExecRunnerWithTimeout(ws.CommandTimeout), ws.Editor)
				if err != nil {
					return a.fail(cmd, &configError{err: err})
				}
				opener = editor
			}

			creator, err := workflow.NewCreator(c, bootstrapper, opener,
				output.NewProgress(a.progressWriter(cmd)), a.logger)
			if err != nil {
				return a.fail(cmd, err)
			}

			if dir == "" {
				dir = ws.Dir
			}
			result, err := creator.Create(ctx, workflow.CreateOptions{
				Name:        args[0],
				Description: description,
				Private:     private,
				Dir:         dir,
				OpenEditor:  openEditor,
			})
			if err != nil {
				return a.fail(cmd, err)
			}

			return a.succeed(cmd, result, func(io.Writer) error { return nil })
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Repository description")
	cmd.Flags().BoolVarP(&private, "private", "p", false, "Create a private repository")
	cmd.Flags().StringVar(&dir, "dir", "", "Parent folder of the working copy (default: workspace.dir or the current directory)")
	cmd.Flags().BoolVar(&noEditor, "no-editor", false, "Do not open the working copy in the editor")

	return cmd
}

// newListCmd creates the list command.
func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your repositories",
		Long: `List the repositories of the authenticated user.

The size column is the repository size reported by the API, which is already in
KB, shown with one decimal. The json and yaml outputs also carry size_bytes.`,
		Args:  a.args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			c, err := a.client(ctx)
			if err != nil {
				return a.fail(cmd, err)
			}

			lister, err := workflow.NewLister(c, a.logger)
			if err != nil {
				return a.fail(cmd, err)
			}

			repos, err := lister.List(ctx)
			if err != nil {
				return a.fail(cmd, err)
			}

			return a.succeed(cmd, repos, func(w io.Writer) error {
				output.RepositoryTable(w, repos)
				return nil
			})
		},
	}
}

// newDeleteCmd creates the delete command. Deleting requires --yes.
func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <repo>",
		Short: "Delete a repository",
		Args:  a.args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := args[0]
			if !yes {
				return a.fail(cmd, invalidArgument("refusing to delete %q without --yes", repo))
			}

			ctx := cmd.Context()
			c, err := a.client(ctx)
			if err != nil {
				return a.fail(cmd, err)
			}

			if _, err := c.DeleteRepository(ctx, repo); err != nil {
				return a.fail(cmd, err)
			}

			data := map[string]any{"name": repo, "deleted": true}
			return a.succeed(cmd, data, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Repository %q has been deleted.\n", repo)
				return err
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}
