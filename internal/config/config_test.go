package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := Load(path, Overrides{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Config{
		Path:         path,
		Dir:          filepath.Dir(path),
		APIURL:       "http://localhost:8000",
		ChartTimeout: 10 * time.Second,
		Preferences:  filepath.Join(filepath.Dir(path), "habitdash.db"),
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
api_url = "http://habits.lan:9000/"
request_timeout = "15s"
chart_timeout = "20s"
preferences = "postgres://me@db/habitdash"
debug = true
`)

	cfg, err := Load(path, Overrides{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIURL != "http://habits.lan:9000" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.RequestTimeout != 15*time.Second || cfg.ChartTimeout != 20*time.Second {
		t.Errorf("timeouts = %v, %v", cfg.RequestTimeout, cfg.ChartTimeout)
	}
	if cfg.Preferences != "postgres://me@db/habitdash" {
		t.Errorf("Preferences = %q", cfg.Preferences)
	}
	if !cfg.Debug {
		t.Error("Debug = false")
	}
}

func TestOverridesWin(t *testing.T) {
	path := writeConfig(t, `api_url = "http://from-file:8000"`)

	cfg, err := Load(path, Overrides{APIURL: "https://from-flag", Debug: true})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIURL != "https://from-flag" {
		t.Errorf("APIURL = %q, want flag value", cfg.APIURL)
	}
	if !cfg.Debug {
		t.Error("Debug override ignored")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad toml", `api_url = `, "failed to parse"},
		{"unknown key", `colour = "red"`, "unknown keys"},
		{"bad duration", `request_timeout = "soon"`, "failed to parse"},
		{"negative duration", `chart_timeout = "-1s"`, "failed to parse"},
		{"bad scheme", `api_url = "localhost:8000"`, "must start with http"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), Overrides{})
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	in := File{
		APIURL:         "http://localhost:8000",
		RequestTimeout: Duration{30 * time.Second},
		ChartTimeout:   Duration{10 * time.Second},
		Preferences:    "/tmp/prefs.db",
	}
	if err := WriteFile(path, in); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("HABITDASH_TEST_DOTENV=from-file\nHABITDASH_TEST_PRESET=from-file\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HABITDASH_TEST_PRESET", "from-env")
	t.Cleanup(func() { os.Unsetenv("HABITDASH_TEST_DOTENV") })

	if err := LoadDotEnv(envPath, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("HABITDASH_TEST_DOTENV"); got != "from-file" {
		t.Errorf("HABITDASH_TEST_DOTENV = %q", got)
	}
	if got := os.Getenv("HABITDASH_TEST_PRESET"); got != "from-env" {
		t.Errorf("existing variable overridden: %q", got)
	}
}
