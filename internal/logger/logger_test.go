package logger

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesFileAndMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "showcase.txt")
	l := New(path, nil)
	l.Log("hello")
	l.Log("world")

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "["))
	assert.True(t, strings.HasSuffix(lines[1], "] world"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, lines[0]+"\n"+lines[1]+"\n", string(data))
}

func TestSlogThroughLogger(t *testing.T) {
	var echo bytes.Buffer
	l := New("", &echo)
	log := l.Slog(slog.LevelInfo)
	log.Debug("hidden")
	log.Info("overlay opened", "identity", "go_logo")

	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "msg=\"overlay opened\"")
	assert.Contains(t, lines[0], "identity=go_logo")
	assert.Equal(t, lines[0]+"\n", echo.String())
}

func TestLinesBounded(t *testing.T) {
	l := New("", nil)
	for i := 0; i < maxLines+10; i++ {
		fmt.Fprintf(l, "line %d\n", i)
	}
	lines := l.Lines()
	assert.Len(t, lines, maxLines)
	assert.Equal(t, "line 10", lines[0])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}
