package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logFileWith(t *testing.T, lines ...string) *ZapLogger {
	t.Helper()

	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return &ZapLogger{filePath: path}
}

func TestGetLogs_NewestFirst(t *testing.T) {
	l := logFileWith(t,
		`{"timestamp":"2025-06-01T10:00:00Z","level":"INFO","message":"first"}`,
		`{"timestamp":"2025-06-01T10:01:00Z","level":"INFO","message":"second"}`,
		`{"timestamp":"2025-06-01T10:02:00Z","level":"WARN","message":"third"}`,
	)

	entries, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Message)
	assert.Equal(t, "first", entries[2].Message)
}

func TestGetLogs_LevelFilter(t *testing.T) {
	l := logFileWith(t,
		`{"level":"INFO","message":"fine"}`,
		`{"level":"ERROR","message":"broken"}`,
		`{"level":"INFO","message":"also fine"}`,
	)

	entries, err := l.GetLogs("ERROR", 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "broken", entries[0].Message)
}

func TestGetLogs_Pagination(t *testing.T) {
	l := logFileWith(t,
		`{"level":"INFO","message":"a"}`,
		`{"level":"INFO","message":"b"}`,
		`{"level":"INFO","message":"c"}`,
		`{"level":"INFO","message":"d"}`,
	)

	entries, err := l.GetLogs("", 2, 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].Message)
	assert.Equal(t, "b", entries[1].Message)

	entries, err = l.GetLogs("", 10, 99)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetLogs_SkipsMalformedLines(t *testing.T) {
	l := logFileWith(t,
		`{"level":"INFO","message":"kept"}`,
		`not json at all`,
	)

	entries, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Message)
}

func TestGetLogs_MissingFileIsEmpty(t *testing.T) {
	l := &ZapLogger{filePath: filepath.Join(t.TempDir(), "nope.log")}

	entries, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
