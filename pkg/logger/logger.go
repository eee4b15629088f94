package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init installs the default slog logger. Output goes to stdout and, when
// logPath is not empty, to that file as well. The returned closer releases the file.
func Init(logPath string, logLevel string) (io.Closer, error) {
	var (
		out    io.Writer = os.Stdout
		closer io.Closer = nopCloser{}
	)
	if logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
		if err != nil {
			return nil, err
		}
		out = io.MultiWriter(os.Stdout, logFile)
		closer = logFile
	}

	level, err := ParseLevel(logLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	if err != nil {
		slog.Warn(err.Error())
	}
	return closer, nil
}

// nopCloser is returned when only stdout is written.
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func ParseLevel(levelStr string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q, using INFO", levelStr)
}
