package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Editor opens folders with an external editor command.
type Editor struct {
	runner Runner
	name   string
	args   []string
}

// NewEditor creates an Editor from a command line such as "code" or "code -n".
// The folder is appended as the last argument. The command must return once the
// editor is launched: it runs under the workspace command timeout.
func NewEditor(runner Runner, command string) (*Editor, error) {
	if runner == nil {
		return nil, errors.New("runner cannot be nil")
	}

	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, errors.New("editor command cannot be empty")
	}

	return &Editor{runner: runner, name: fields[0], args: fields[1:]}, nil
}

// Open launches the editor on folder.
func (e *Editor) Open(ctx context.Context, folder string) error {
	args := make([]string, 0, len(e.args)+1)
	args = append(args, e.args...)
	args = append(args, folder)

	if _, err := e.runner.Run(ctx, "", e.name, args...); err != nil {
		return fmt.Errorf("unable to open %s with %s: %w", folder, e.name, err)
	}
	return nil
}
