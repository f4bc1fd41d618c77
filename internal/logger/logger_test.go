package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	want := filepath.Join(logDir, "habitdash.log")
	if Path() != want {
		t.Errorf("Path() = %q, want %q", Path(), want)
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestInitDebugModeWritesConsole(t *testing.T) {
	var console bytes.Buffer
	err := Init(Config{
		Debug:     true,
		ConfigDir: t.TempDir(),
		Console:   &console,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}

	Debug("fetching habits", "count", 3)

	out := console.String()
	if !strings.Contains(out, "fetching habits") {
		t.Errorf("console output %q missing message", out)
	}
	if !strings.Contains(out, "habitdash") {
		t.Errorf("console output %q missing prefix", out)
	}
}

func TestInitNormalModeIsQuietOnConsole(t *testing.T) {
	var console bytes.Buffer
	if err := Init(Config{ConfigDir: t.TempDir(), Console: &console}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Warn("backend slow")
	if console.Len() != 0 {
		t.Errorf("console received %q outside debug mode", console.String())
	}
}

func TestWith(t *testing.T) {
	Logger = nil
	if With("session", "abc") != nil {
		t.Error("With() before Init should return nil")
	}

	if err := Init(Config{ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if With("session", "abc") == nil {
		t.Error("With() after Init returned nil")
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
