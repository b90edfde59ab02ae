package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is where the sandbox log lands, relative to the working
// directory (project root when run via go run ./cmd/sandbox).
const DefaultPath = "logs/sandbox.txt"

// Logger stores lines in memory and appends them to a file on disk. Used for
// simulation lifecycle events and dropped operations; safe for concurrent use.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
}

// New returns a Logger writing to DefaultPath and ensures the log directory
// exists.
func New() *Logger {
	return NewAt(DefaultPath)
}

// NewAt returns a Logger writing to the given path. An empty path keeps the
// log in memory only.
func NewAt(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path}
}

// Log appends a line to the logger and to the log file. Each entry is
// prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
	stamped := "[" + time.Now().Format("2006-01-02 15:04:05") + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	path := l.path
	l.mu.Unlock()

	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats like fmt.Sprintf and logs the result.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
