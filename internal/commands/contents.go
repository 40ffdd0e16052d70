package commands

import (
	"fmt"
	"io"
	"os"

	"ghrepo/internal/output"

	"github.com/spf13/cobra"
)

// newContentsCmd creates the contents command listing the root of a repository.
func newContentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "contents <repo>",
		Short: "List the files and folders at the root of a repository",
		Args:  a.args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c, err := a.client(ctx)
			if err != nil {
				return a.fail(cmd, err)
			}

			items, err := c.ListRepositoryContents(ctx, args[0])
			if err != nil {
				return a.fail(cmd, err)
			}

			return a.succeed(cmd, items, func(w io.Writer) error {
				output.ItemTable(w, items)
				return nil
			})
		},
	}
}

// newCatCmd creates the cat command printing the decoded content of a file.
func newCatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <repo> <path>",
		Short: "Print the content of a file",
		Args:  a.args(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c, err := a.client(ctx)
			if err != nil {
				return a.fail(cmd, err)
			}

			content, err := c.GetFileContent(ctx, args[0], args[1])
			if err != nil {
				return a.fail(cmd, err)
			}

			data := map[string]any{"path": args[1], "content": content}
			return a.succeed(cmd, data, func(w io.Writer) error {
				_, err := io.WriteString(w, content)
				return err
			})
		},
	}
}

// newPutCmd creates the put command creating or updating one file.
func newPutCmd(a *app) *cobra.Command {
	var (
		content  string
		fromFile string
		message  string
		sha      string
	)

	cmd := &cobra.Command{
		Use:   "put <repo> <path>",
		Short: "Create or update a file",
		Long: `Create or update a file with one commit.

The content comes from --content or --file. Updating an existing file requires
its current blob SHA in --sha; without it the file is created.`,
		Args: a.args(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			contentSet := cmd.Flags().Changed("content")
			if contentSet == (fromFile != "") {
				return a.fail(cmd, invalidArgument("exactly one of --content or --file is required"))
			}
			if message == "" {
				return a.fail(cmd, invalidArgument("a commit message is required (--message)"))
			}

			if fromFile != "" {
				data, err := os.ReadFile(fromFile)
				if err != nil {
					return a.fail(cmd, invalidArgument("unable to read %s: %v", fromFile, err))
				}
				content = string(data)
			}

			ctx := cmd.Context()
			c, err := a.client(ctx)
			if err != nil {
				return a.fail(cmd, err)
			}

			newSHA, err := c.CreateOrUpdateFile(ctx, args[0], args[1], content, message, sha)
			if err != nil {
				return a.fail(cmd, err)
			}

			data := map[string]any{"path": args[1], "sha": newSHA}
			return a.succeed(cmd, data, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, newSHA)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "File content")
	cmd.Flags().StringVarP(&fromFile, "file", "f", "", "Read the file content from a local file")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")
	cmd.Flags().StringVar(&sha, "sha", "", "Blob SHA of the file being replaced")

	return cmd
}

// newRmCmd creates the rm command deleting one file.
func newRmCmd(a *app) *cobra.Command {
	var (
		message string
		sha     string
	)

	cmd := &cobra.Command{
		Use:   "rm <repo> <path>",
		Short: "Delete a file",
		Args:  a.args(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if message == "" {
				return a.fail(cmd, invalidArgument("a commit message is required (--message)"))
			}

			ctx := cmd.Context()
			c, err := a.client(ctx)
			if err != nil {
				return a.fail(cmd, err)
			}

			if _, err := c.DeleteFile(ctx, args[0], args[1], message, sha); err != nil {
				return a.fail(cmd, err)
			}

			data := map[string]any{"path": args[1], "deleted": true}
			return a.succeed(cmd, data, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s has been deleted.\n", args[1])
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")
	cmd.Flags().StringVar(&sha, "sha", "", "Blob SHA of the file being deleted (required)")

	return cmd
}
