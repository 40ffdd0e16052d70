// Package commands provides the cobra command tree of the ghrepo CLI.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"ghrepo/internal/config"
	"ghrepo/internal/github"
	"ghrepo/internal/logging"
	"ghrepo/internal/output"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag names for persistent global flags.
const (
	flagConfig    = "config"
	flagOutput    = "output"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
	flagAPIURL    = "api-url"
)

// boundFlags maps configuration keys to the persistent flags overriding them.
var boundFlags = map[string]string{
	"log.level":      flagLogLevel,
	"log.format":     flagLogFormat,
	"github.api_url": flagAPIURL,
}

// app is the state shared by the commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	format  output.Format
	cfg     *config.Config
	logger  logging.ApplicationLogger
}

// NewRootCmd creates the root command with all subcommands registered.
//
// Global Flags:
//   - --config: configuration file
//   - --output, -o: text, json or yaml
//   - --log-level, --log-format: diagnostics written to stderr
//   - --api-url: API base URL, for GitHub Enterprise or tests
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), format: output.FormatText, logger: logging.Discard()}

	cmd := &cobra.Command{
		Use:   "ghrepo",
		Short: "Manage GitHub repositories from the command line",
		Long: `ghrepo creates, lists and deletes GitHub repositories and reads or writes
their files through the REST API.

Credentials are read from the configuration file (github.username and
github.password) or from GHREPO_GITHUB_USERNAME and GHREPO_GITHUB_PASSWORD.
A personal access token can be used as password.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initialize,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, flagConfig, "",
		"config file (default: ./ghrepo.yaml, then <user config dir>/ghrepo/ghrepo.yaml)")
	flags.StringP(flagOutput, "o", string(output.FormatText), "Output format (text, json, yaml)")
	flags.String(flagLogLevel, "warn", "Log level (debug, info, warn, error)")
	flags.String(flagLogFormat, "text", "Log format (json, text)")
	flags.String(flagAPIURL, github.DefaultAPIURL, "API base URL")

	cmd.AddCommand(newCreateCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newContentsCmd(a))
	cmd.AddCommand(newCatCmd(a))
	cmd.AddCommand(newPutCmd(a))
	cmd.AddCommand(newRmCmd(a))
	cmd.AddCommand(newDeleteCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newVersionCmd(a))

	return cmd
}

// Execute runs the CLI with the process arguments and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// Run runs the CLI with args and returns the exit code. All log entries of one
// run share a correlation ID. Errors not yet reported by a command are printed to stderr.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(logging.EnsureCorrelationID(ctx)); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// initialize resolves the output format, loads configuration and creates the logger.
func (a *app) initialize(cmd *cobra.Command, _ []string) error {
	if err := a.parseOutputFormat(cmd); err != nil {
		return a.fail(cmd, err)
	}

	if err := bindFlags(a.v, cmd.Root().PersistentFlags()); err != nil {
		return a.fail(cmd, &configError{err: err})
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return a.fail(cmd, &configError{err: err})
	}
	a.cfg = cfg

	logger, err := logging.NewApplicationLogger(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	}, cmd.ErrOrStderr())
	if err != nil {
		return a.fail(cmd, &configError{err: err})
	}
	a.logger = logger.WithComponent("cli")

	a.logger.Debug(cmd.Context(), "Configuration loaded", logging.Fields{
		"command":   cmd.CommandPath(),
		"api_url":   cfg.GitHub.APIURL,
		"config":    a.v.ConfigFileUsed(),
		"workspace": cfg.Workspace.Dir,
	})
	return nil
}

func (a *app) parseOutputFormat(cmd *cobra.Command) error {
	value, err := cmd.Flags().GetString(flagOutput)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(value)
	if err != nil {
		return fmt.Errorf("%w: %v", github.ErrInvalidArgument, err)
	}
	a.format = format
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range boundFlags {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// client builds an API client from the loaded configuration.
func (a *app) client(ctx context.Context) (*github.Client, error) {
	clientConfig := a.cfg.GitHub.ClientConfig()
	if err := clientConfig.Validate(); err != nil {
		return nil, &configError{err: err}
	}

	a.logger.Debug(ctx, "Connecting to API", logging.Fields{
		"api_url":  clientConfig.APIURL,
		"username": clientConfig.Username,
	})
	return github.NewClient(ctx, clientConfig)
}

// progressWriter keeps stdout free for the envelope in structured formats.
func (a *app) progressWriter(cmd *cobra.Command) io.Writer {
	if a.format.Structured() {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}

// succeed writes data in structured formats and calls text otherwise.
func (a *app) succeed(cmd *cobra.Command, data any, text func(w io.Writer) error) error {
	if a.format.Structured() {
		return output.WriteSuccess(cmd.OutOrStdout(), a.format, data)
	}
	return text(cmd.OutOrStdout())
}
