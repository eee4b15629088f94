package logger

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"DEBUG": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"Warn":  slog.LevelWarn,
		"ERROR": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := ParseLevel("verbose")
	assert.Error(t, err)
	assert.Equal(t, slog.LevelInfo, got)
}

func TestInitWritesFile(t *testing.T) {
	defer slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	logPath := filepath.Join(t.TempDir(), "pagesim.log")
	closer, err := Init(logPath, "WARN")
	require.NoError(t, err)

	slog.Info("dropped")
	slog.Warn("kept", "frames", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "frames=3")
}

func TestInitStdoutOnly(t *testing.T) {
	defer slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	closer, err := Init("", "DEBUG")
	require.NoError(t, err)
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
	assert.NoError(t, closer.Close())
	assert.NoError(t, closer.Close())
}
