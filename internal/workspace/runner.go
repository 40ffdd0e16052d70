// Package workspace prepares local working copies of remote repositories:
// it initializes them with go-git and opens them in an external editor.
package workspace

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultCommandTimeout bounds commands run by an ExecRunner created with NewExecRunner.
const DefaultCommandTimeout = 30 * time.Second

// Runner executes an external command and returns its trimmed combined output.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// CommandError reports a failed external command together with its output.
type CommandError struct {
	Command string
	Output  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("command %q failed: %v, output: %s", e.Command, e.Err, e.Output)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	timeout time.Duration
}

// NewExecRunner creates an ExecRunner with the default timeout.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{timeout: DefaultCommandTimeout}
}

// NewExecRunnerWithTimeout creates an ExecRunner with a custom timeout.
func NewExecRunnerWithTimeout(timeout time.Duration) *ExecRunner {
	return &ExecRunner{timeout: timeout}
}

// Run executes name with args in dir. An empty dir uses the current directory.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmdCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, name, args...)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	trimmed := strings.TrimSpace(string(output))
	if err != nil {
		return "", &CommandError{
			Command: strings.TrimSpace(name + " " + strings.Join(args, " ")),
			Output:  trimmed,
			Err:     err,
		}
	}

	return trimmed, nil
}
