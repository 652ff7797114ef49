package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultPath is the log file path, relative to the working directory.
const DefaultPath = "logs/showcase.txt"

// maxLines bounds the in-memory history.
const maxLines = 1000

// Logger keeps recent log lines in memory and appends every line to a file on disk.
// It is an io.Writer so a slog handler can write through it.
type Logger struct {
	mu    sync.Mutex
	path  string
	echo  io.Writer
	lines []string
}

// New returns a Logger appending to path and ensures its directory exists. An empty path
// keeps lines in memory only. echo, when non-nil, receives a copy of every line.
func New(path string, echo io.Writer) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, echo: echo, lines: make([]string, 0)}
}

// Path returns the log file path.
func (l *Logger) Path() string { return l.path }

// Log records a line prefixed with [timestamp] using local time.
func (l *Logger) Log(line string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.append("[" + ts + "] " + line)
}

// Write records each non-empty line of p as-is. It never fails.
func (l *Logger) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line != "" {
			l.append(line)
		}
	}
	return len(p), nil
}

func (l *Logger) append(line string) {
	l.mu.Lock()
	l.lines = append(l.lines, line)
	if len(l.lines) > maxLines {
		l.lines = append(l.lines[:0], l.lines[len(l.lines)-maxLines:]...)
	}
	if l.echo != nil {
		_, _ = io.WriteString(l.echo, line+"\n")
	}
	l.mu.Unlock()

	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(line + "\n")
	_ = f.Close()
}

// Lines returns a copy of the stored lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Slog returns a structured logger writing text records through l at the given level.
func (l *Logger) Slog(level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(l, &slog.HandlerOptions{Level: level}))
}

// ParseLevel maps debug, info, warn or error (any case) to a slog level. Anything else
// is info.
func ParseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
