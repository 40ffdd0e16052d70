package commands

import (
	"errors"
	"fmt"

	"ghrepo/internal/github"
	"ghrepo/internal/logging"
	"ghrepo/internal/output"
	"ghrepo/internal/workflow"

	"github.com/spf13/cobra"
)

// Error codes used in error responses.
const (
	errCodeConnectionError     = "CONNECTION_ERROR"
	errCodeAuthenticationError = "AUTHENTICATION_ERROR"
	errCodeNotFound            = "NOT_FOUND"
	errCodeRequestFailed       = "REQUEST_FAILED"
	errCodeDecodingError       = "DECODING_ERROR"
	errCodeInvalidArgument     = "INVALID_ARGUMENT"
	errCodeInvalidConfig       = "INVALID_CONFIG"
	errCodeWorkspaceError      = "WORKSPACE_ERROR"
	errCodeInternalError       = "INTERNAL_ERROR"
)

// configError marks failures to load or validate configuration.
type configError struct {
	err error
}

func (e *configError) Error() string {
	return e.err.Error()
}

func (e *configError) Unwrap() error {
	return e.err
}

// reportedError is an error already written to the command output.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string {
	return e.err.Error()
}

func (e *reportedError) Unwrap() error {
	return e.err
}

// invalidArgument reports bad command input.
func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", github.ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// determineErrorCode maps an error to its stable error code.
func determineErrorCode(err error) string {
	var cfgErr *configError
	var stepErr *workflow.StepError

	switch {
	case errors.As(err, &cfgErr):
		return errCodeInvalidConfig
	case errors.Is(err, github.ErrInvalidArgument):
		return errCodeInvalidArgument
	case github.IsNotFound(err):
		return errCodeNotFound
	case errors.Is(err, github.ErrConnectionFailure):
		return errCodeConnectionError
	case errors.Is(err, github.ErrAuthenticationFailure):
		return errCodeAuthenticationError
	case errors.Is(err, github.ErrDecodingFailure):
		return errCodeDecodingError
	case errors.Is(err, github.ErrRequestFailure):
		return errCodeRequestFailed
	case errors.As(err, &stepErr) && stepErr.Step != workflow.StepCreateRepository:
		return errCodeWorkspaceError
	default:
		return errCodeInternalError
	}
}

// fail writes err to the command output and returns it marked as reported.
// Structured formats write an error envelope to stdout; text goes to stderr.
func (a *app) fail(cmd *cobra.Command, err error) error {
	code := determineErrorCode(err)

	a.logger.Debug(cmd.Context(), "Command failed", logging.Fields{
		"command": cmd.CommandPath(),
		"code":    code,
		"error":   err.Error(),
	})

	w := cmd.ErrOrStderr()
	if a.format.Structured() {
		w = cmd.OutOrStdout()
	}
	if writeErr := output.WriteError(w, a.format, code, err.Error(), nil); writeErr != nil {
		return writeErr
	}
	return &reportedError{err: err}
}

// args wraps a positional argument validator so violations are reported like other failures.
func (a *app) args(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			if formatErr := a.parseOutputFormat(cmd); formatErr != nil {
				a.format = output.FormatText
			}
			return a.fail(cmd, invalidArgument("%v", err))
		}
		return nil
	}
}
