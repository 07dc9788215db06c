// Package config provides application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultFileName is the hook config file looked up at the repository root
// when HOOKCHECK_CONFIG is not set.
const DefaultFileName = ".hookcheck.yaml"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ConfigFile  string        // Hook config file, relative to the repo root
	LogLevel    string
	LintTimeout time.Duration // Upper bound on a single linter subprocess

	// GitHub check run reporting (optional, CI only)
	GitHubAppID          int64
	GitHubInstallationID int64
	GitHubPrivateKey     string // PEM file contents
	GitHubRepository     string // "owner/repo", as set by GitHub Actions

	// OpenTelemetry (optional)
	OTelEnabled bool // OTEL_ENABLED feature flag
}

// GitHubEnabled reports whether enough GitHub App settings are present to
// publish check runs.
func (c Config) GitHubEnabled() bool {
	return c.GitHubAppID != 0 && c.GitHubInstallationID != 0 && c.GitHubPrivateKey != ""
}

// FileName returns the name of the hook config file: HOOKCHECK_CONFIG if
// set, DefaultFileName otherwise. Checkers use it in user-facing messages.
func FileName() string {
	return getEnvOrDefault("HOOKCHECK_CONFIG", DefaultFileName)
}

// Load reads configuration from environment variables and applies defaults
// for LogLevel ("info") and LintTimeout (60s).
func Load() (Config, error) {
	cfg := Config{
		ConfigFile:  FileName(),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		LintTimeout: 60 * time.Second,
	}

	dur, err := parseDurationOrDefault("HOOKCHECK_LINT_TIMEOUT", cfg.LintTimeout)
	if err != nil {
		return Config{}, err
	}
	if dur <= 0 {
		return Config{}, fmt.Errorf("invalid HOOKCHECK_LINT_TIMEOUT %q: must be positive", os.Getenv("HOOKCHECK_LINT_TIMEOUT"))
	}
	cfg.LintTimeout = dur

	if err := loadGitHubConfig(&cfg); err != nil {
		return Config{}, err
	}

	loadOTelConfig(&cfg)

	return cfg, nil
}

func loadGitHubConfig(cfg *Config) error {
	if os.Getenv("GITHUB_APP_ID") == "" {
		return nil // check run reporting is optional
	}

	var err error
	cfg.GitHubAppID, err = parseRequiredInt64("GITHUB_APP_ID")
	if err != nil {
		return err
	}

	cfg.GitHubInstallationID, err = parseRequiredInt64("GITHUB_INSTALLATION_ID")
	if err != nil {
		return err
	}

	cfg.GitHubPrivateKey = os.Getenv("GITHUB_PRIVATE_KEY")
	if cfg.GitHubPrivateKey == "" {
		return errors.New("GITHUB_PRIVATE_KEY is required when GITHUB_APP_ID is set")
	}

	cfg.GitHubRepository = os.Getenv("GITHUB_REPOSITORY")
	if cfg.GitHubRepository == "" {
		return errors.New("GITHUB_REPOSITORY is required when GITHUB_APP_ID is set")
	}

	return nil
}

func parseRequiredInt64(envKey string) (int64, error) {
	v := os.Getenv(envKey)
	if v == "" {
		return 0, fmt.Errorf("%s is required", envKey)
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, v, err)
	}
	return id, nil
}

func getEnvOrDefault(envKey, defaultValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return defaultValue
}

func loadOTelConfig(cfg *Config) {
	cfg.OTelEnabled = os.Getenv("OTEL_ENABLED") == "true"
}

func parseDurationOrDefault(envKey string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(envKey)
	if v == "" {
		return defaultValue, nil
	}
	dur, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, v, err)
	}
	return dur, nil
}
