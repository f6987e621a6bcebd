package output

import (
	"fmt"
	"io"
	"sync"
)

// ANSI color codes for terminal status lines.
const (
	colorReset = "\033[0m"
	colorDim   = "\033[2m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
)

// StatusReporter prints progress lines to a terminal.
// Status goes to stderr so the digest on stdout stays clean.
type StatusReporter struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
	quiet bool
}

// NewStatusReporter creates a reporter for the given writer.
// Color is enabled only for interactive terminals outside CI,
// and NO_COLOR always wins.
func NewStatusReporter(w io.Writer, quiet bool) *StatusReporter {
	return &StatusReporter{
		out:   w,
		color: IsTTY(w) && !DetectNoColor() && !DetectCI(),
		quiet: quiet,
	}
}

// Step prints a progress line.
func (r *StatusReporter) Step(format string, args ...any) {
	if r.quiet {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if r.color {
		_, _ = fmt.Fprintf(r.out, "%s-> %s%s\n", colorDim, msg, colorReset)
	} else {
		_, _ = fmt.Fprintf(r.out, "-> %s\n", msg)
	}
}

// Done prints a completion line.
func (r *StatusReporter) Done(format string, args ...any) {
	if r.quiet {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if r.color {
		_, _ = fmt.Fprintf(r.out, "%sok%s %s\n", colorGreen, colorReset, msg)
	} else {
		_, _ = fmt.Fprintf(r.out, "ok %s\n", msg)
	}
}

// Fail prints an error line. Failures print even in quiet mode.
func (r *StatusReporter) Fail(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if r.color {
		_, _ = fmt.Fprintf(r.out, "%serror%s %s\n", colorRed, colorReset, msg)
	} else {
		_, _ = fmt.Fprintf(r.out, "error %s\n", msg)
	}
}
