package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// ErrMissingAPIKey is returned by Validate when no API key is configured.
var ErrMissingAPIKey = errors.New("missing API key: set api_key in config, LENS_API_KEY, or --api-key")

// Config holds everything lens needs at startup.
type Config struct {
	APIKey         string
	APIURL         string
	DownloadDir    string
	DownloadMode   string
	LibraryPath    string
	LogFile        string
	RequestTimeout time.Duration
}

// Overrides carries command-line values that win over the file and
// environment. Empty fields are ignored.
type Overrides struct {
	APIKey      string
	DownloadDir string
}

const (
	defaultConfigPath     = "~/.config/lens/config.toml"
	defaultAPIURL         = "https://pixabay.com/api/"
	defaultDownloadDir    = "~/Pictures/lens"
	defaultDownloadMode   = "file"
	defaultLibraryPath    = "~/.local/share/lens/library.db"
	defaultLogFile        = "~/.local/state/lens/lens.log"
	defaultRequestTimeout = 10 * time.Second
)

// apiKeyEnv lists the environment variables checked for the API key, in
// priority order.
var apiKeyEnv = []string{"LENS_API_KEY", "PIXABAY_API_KEY"}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the lens config, falling back to defaults when missing.
// The API key from the environment replaces the one in the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyEnv()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIKey                string `toml:"api_key"`
		APIURL                string `toml:"api_url"`
		DownloadDir           string `toml:"download_dir"`
		DownloadMode          string `toml:"download_mode"`
		LibraryPath           string `toml:"library_path"`
		LogFile               string `toml:"log_file"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(raw.APIKey)
	cfg.APIURL = orDefault(raw.APIURL, defaultAPIURL)
	cfg.DownloadDir = mustExpand(orDefault(raw.DownloadDir, defaultDownloadDir))
	cfg.LibraryPath = mustExpand(orDefault(raw.LibraryPath, defaultLibraryPath))
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))

	mode := strings.ToLower(orDefault(raw.DownloadMode, defaultDownloadMode))
	switch mode {
	case "file", "browser":
		cfg.DownloadMode = mode
	default:
		return Config{}, fmt.Errorf("parse config: download_mode %q must be file or browser", raw.DownloadMode)
	}

	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}

	cfg.applyEnv()
	return cfg, nil
}

// Apply returns a copy of c with the non-empty overrides set.
func (c Config) Apply(o Overrides) Config {
	if key := strings.TrimSpace(o.APIKey); key != "" {
		c.APIKey = key
	}
	if dir := strings.TrimSpace(o.DownloadDir); dir != "" {
		c.DownloadDir = mustExpand(dir)
	}
	return c
}

// Validate reports configuration that makes startup impossible.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func defaults() Config {
	return Config{
		APIURL:         defaultAPIURL,
		DownloadDir:    mustExpand(defaultDownloadDir),
		DownloadMode:   defaultDownloadMode,
		LibraryPath:    mustExpand(defaultLibraryPath),
		LogFile:        mustExpand(defaultLogFile),
		RequestTimeout: defaultRequestTimeout,
	}
}

func (c *Config) applyEnv() {
	for _, name := range apiKeyEnv {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			c.APIKey = v
			return
		}
	}
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
