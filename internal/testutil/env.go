// Package testutil provides shared helpers for tests.
package testutil

import (
	"log/slog"
	"os"
	"testing"
)

// Logger returns a logger suitable for test output. Set VERSELINK_TEST_DEBUG
// to see debug-level logs from the code under test.
func Logger(t *testing.T) *slog.Logger {
	t.Helper()
	level := slog.LevelInfo
	if os.Getenv("VERSELINK_TEST_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
