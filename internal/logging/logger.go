// Package logging provides the leveled console logger shared by the
// optimize and scan commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#81A1C1"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A3BE8C"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EBCB8B"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#BF616A")).Bold(true)
	debugStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7A8291"))
)

// Logger writes leveled lines to stdout, with errors mirrored to stderr.
// A nil *Logger is valid and discards everything, so collaborators can
// be exercised in tests without wiring output.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	verbose bool
}

// New returns a Logger writing to stdout/stderr. Debug lines are only
// emitted when verbose is set.
func New(verbose bool) *Logger {
	return &Logger{out: os.Stdout, errOut: os.Stderr, verbose: verbose}
}

// NewWithWriters is the test constructor.
func NewWithWriters(out, errOut io.Writer, verbose bool) *Logger {
	return &Logger{out: out, errOut: errOut, verbose: verbose}
}

func (l *Logger) line(w io.Writer, level string, style lipgloss.Style, format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(w, "%s %s\n", style.Render("["+level+"]"), fmt.Sprintf(format, args...))
}

// Info logs routine progress.
func (l *Logger) Info(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.line(l.out, "INFO", infoStyle, format, args...)
}

// Success logs a completed conversion or staging operation.
func (l *Logger) Success(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.line(l.out, "OK", successStyle, format, args...)
}

// Warn logs a recoverable failure: unreadable directory, failed encode
// format, failed deletion, failed staging. Warnings never change the
// exit status.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.line(l.out, "WARN", warnStyle, format, args...)
}

// Error logs to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.line(l.errOut, "ERROR", errorStyle, format, args...)
}

// Debug logs only when the logger is verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l == nil || !l.verbose {
		return
	}
	l.line(l.out, "DEBUG", debugStyle, format, args...)
}
