package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Progress writes human-readable progress lines for long-running workflows.
// Lines are colored only when written to a terminal stdout.
type Progress struct {
	w       io.Writer
	step    *color.Color
	success *color.Color
}

// NewProgress creates a Progress writing to w.
func NewProgress(w io.Writer) *Progress {
	p := &Progress{
		w:       w,
		step:    color.New(color.FgCyan),
		success: color.New(color.FgGreen, color.Bold),
	}
	if w != io.Writer(os.Stdout) {
		p.DisableColor()
	}
	return p
}

// DisableColor forces plain output.
func (p *Progress) DisableColor() *Progress {
	p.step.DisableColor()
	p.success.DisableColor()
	return p
}

// Step reports a workflow step in progress.
func (p *Progress) Step(format string, args ...any) {
	p.step.Fprintln(p.w, fmt.Sprintf(format, args...))
}

// Success reports a completed step.
func (p *Progress) Success(format string, args ...any) {
	p.success.Fprintln(p.w, fmt.Sprintf(format, args...))
}
