// Package config merges the TOML config file, the environment and command
// line flags. Flags and environment win over the file; the file wins over
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/julianstephens/habitdash/internal/constants"
)

// Duration decodes TOML strings such as "15s"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	if parsed < 0 {
		return fmt.Errorf("duration %s cannot be negative", parsed)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// File is the on-disk config.toml
type File struct {
	APIURL         string   `toml:"api_url"`
	RequestTimeout Duration `toml:"request_timeout"`
	ChartTimeout   Duration `toml:"chart_timeout"`
	Preferences    string   `toml:"preferences"`
	Debug          bool     `toml:"debug"`
}

// Overrides are values from flags or the environment. Empty means unset.
type Overrides struct {
	APIURL      string
	Preferences string
	Debug       bool
}

// Config is the resolved runtime configuration
type Config struct {
	Path           string
	Dir            string
	APIURL         string
	RequestTimeout time.Duration
	ChartTimeout   time.Duration
	Preferences    string
	Debug          bool
}

// ExpandPath resolves a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

// LoadDotEnv loads KEY=value pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ReadFile decodes a config file. A missing file yields an empty File.
func ReadFile(path string) (File, error) {
	var f File
	expanded, err := ExpandPath(path)
	if err != nil {
		return f, err
	}

	md, err := toml.DecodeFile(expanded, &f)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("failed to parse %s: %w", expanded, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return File{}, fmt.Errorf("unknown keys in %s: %v", expanded, undecoded)
	}
	return f, nil
}

// WriteFile saves f, creating the parent directory
func WriteFile(path string, f File) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out, err := os.OpenFile(expanded, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := toml.NewEncoder(out).Encode(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", expanded, err)
	}
	return nil
}

// Resolve applies defaults, then the file, then overrides
func Resolve(path string, f File, o Overrides) (Config, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Path:         expanded,
		Dir:          filepath.Dir(expanded),
		APIURL:       constants.DefaultAPIURL,
		ChartTimeout: constants.ChartTimeout,
		Preferences:  filepath.Join(filepath.Dir(expanded), constants.AppName+".db"),
	}

	if f.APIURL != "" {
		cfg.APIURL = f.APIURL
	}
	cfg.RequestTimeout = f.RequestTimeout.Duration
	if f.ChartTimeout.Duration > 0 {
		cfg.ChartTimeout = f.ChartTimeout.Duration
	}
	if f.Preferences != "" {
		cfg.Preferences = f.Preferences
	}
	cfg.Debug = f.Debug

	if o.APIURL != "" {
		cfg.APIURL = o.APIURL
	}
	if o.Preferences != "" {
		cfg.Preferences = o.Preferences
	}
	if o.Debug {
		cfg.Debug = true
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if !strings.HasPrefix(cfg.APIURL, "http://") && !strings.HasPrefix(cfg.APIURL, "https://") {
		return Config{}, fmt.Errorf("api url %q must start with http:// or https://", cfg.APIURL)
	}

	if !strings.HasPrefix(cfg.Preferences, "postgres://") && !strings.HasPrefix(cfg.Preferences, "postgresql://") {
		prefs, err := ExpandPath(cfg.Preferences)
		if err != nil {
			return Config{}, err
		}
		cfg.Preferences = prefs
	}

	return cfg, nil
}

// Load reads the file at path and resolves it against o
func Load(path string, o Overrides) (Config, error) {
	f, err := ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Resolve(path, f, o)
}

// FileFromConfig returns the file representation written by init
func FileFromConfig(cfg Config) File {
	return File{
		APIURL:         cfg.APIURL,
		RequestTimeout: Duration{cfg.RequestTimeout},
		ChartTimeout:   Duration{cfg.ChartTimeout},
		Preferences:    cfg.Preferences,
		Debug:          cfg.Debug,
	}
}
