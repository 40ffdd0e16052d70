package commands

import (
	"io"

	"ghrepo/internal/version"

	"github.com/spf13/cobra"
)

// newVersionCmd creates the version command. It does not read configuration.
func newVersionCmd(a *app) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  a.args(cobra.NoArgs),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.parseOutputFormat(cmd); err != nil {
				return a.fail(cmd, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetVersion()

			var data any = info
			if short {
				data = info.FormatShort()
			}
			return a.succeed(cmd, data, func(w io.Writer) error {
				return info.Write(w, short)
			})
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Show only version number")
	return cmd
}

// newConfigCmd creates the config command printing the effective configuration.
func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration with secrets redacted",
		Args:  a.args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.succeed(cmd, a.cfg.Redacted(), func(w io.Writer) error {
				data, err := a.cfg.ToYAML()
				if err != nil {
					return err
				}
				_, err = w.Write(data)
				return err
			})
		},
	}
}
