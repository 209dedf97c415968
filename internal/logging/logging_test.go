package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "typeuber.log")
	logger, err := New(Options{Level: "warn", File: path})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Fatalf("expected warn entry, got %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info entry to be filtered, got %s", out)
	}
}

func TestVerboseForcesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typeuber.log")
	logger, err := New(Options{Level: "error", File: path, Verbose: true})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug level to be enabled")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
