package config

import (
	"strings"
	"testing"
	"time"
)

var configEnvKeys = []string{
	"HOOKCHECK_CONFIG",
	"HOOKCHECK_LINT_TIMEOUT",
	"LOG_LEVEL",
	"GITHUB_APP_ID",
	"GITHUB_INSTALLATION_ID",
	"GITHUB_PRIVATE_KEY",
	"GITHUB_REPOSITORY",
	"OTEL_ENABLED",
}

// clearEnv blanks every variable Load reads; empty values are treated as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			want: Config{
				ConfigFile:  ".hookcheck.yaml",
				LogLevel:    "info",
				LintTimeout: 60 * time.Second,
			},
		},
		{
			name: "all optional env vars set",
			env: map[string]string{
				"HOOKCHECK_CONFIG":       "ci/hooks.yaml",
				"HOOKCHECK_LINT_TIMEOUT": "5s",
				"LOG_LEVEL":              "debug",
				"GITHUB_APP_ID":          "123456",
				"GITHUB_INSTALLATION_ID": "789012",
				"GITHUB_PRIVATE_KEY":     "test-key",
				"GITHUB_REPOSITORY":      "octo/repo",
				"OTEL_ENABLED":           "true",
			},
			want: Config{
				ConfigFile:           "ci/hooks.yaml",
				LogLevel:             "debug",
				LintTimeout:          5 * time.Second,
				GitHubAppID:          123456,
				GitHubInstallationID: 789012,
				GitHubPrivateKey:     "test-key",
				GitHubRepository:     "octo/repo",
				OTelEnabled:          true,
			},
		},
		{
			name:    "invalid lint timeout",
			env:     map[string]string{"HOOKCHECK_LINT_TIMEOUT": "soon"},
			wantErr: true,
			errMsg:  "HOOKCHECK_LINT_TIMEOUT",
		},
		{
			name:    "non-positive lint timeout",
			env:     map[string]string{"HOOKCHECK_LINT_TIMEOUT": "0s"},
			wantErr: true,
			errMsg:  "must be positive",
		},
		{
			name: "missing GITHUB_INSTALLATION_ID",
			env: map[string]string{
				"GITHUB_APP_ID":      "123456",
				"GITHUB_PRIVATE_KEY": "test-key",
				"GITHUB_REPOSITORY":  "octo/repo",
			},
			wantErr: true,
			errMsg:  "GITHUB_INSTALLATION_ID",
		},
		{
			name: "missing GITHUB_PRIVATE_KEY",
			env: map[string]string{
				"GITHUB_APP_ID":          "123456",
				"GITHUB_INSTALLATION_ID": "789012",
				"GITHUB_REPOSITORY":      "octo/repo",
			},
			wantErr: true,
			errMsg:  "GITHUB_PRIVATE_KEY",
		},
		{
			name: "missing GITHUB_REPOSITORY",
			env: map[string]string{
				"GITHUB_APP_ID":          "123456",
				"GITHUB_INSTALLATION_ID": "789012",
				"GITHUB_PRIVATE_KEY":     "test-key",
			},
			wantErr: true,
			errMsg:  "GITHUB_REPOSITORY",
		},
		{
			name: "invalid GITHUB_APP_ID",
			env: map[string]string{
				"GITHUB_APP_ID":          "not-a-number",
				"GITHUB_INSTALLATION_ID": "789012",
				"GITHUB_PRIVATE_KEY":     "test-key",
			},
			wantErr: true,
			errMsg:  "GITHUB_APP_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Load() expected error containing %q, got nil", tt.errMsg)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Load() error = %v, want error containing %q", err, tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("Load() unexpected error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Load() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConfig_GitHubEnabled(t *testing.T) {
	if (Config{}).GitHubEnabled() {
		t.Error("GitHubEnabled() = true for empty config, want false")
	}
	cfg := Config{GitHubAppID: 1, GitHubInstallationID: 2, GitHubPrivateKey: "pem"}
	if !cfg.GitHubEnabled() {
		t.Error("GitHubEnabled() = false for complete config, want true")
	}
}

func TestFileName(t *testing.T) {
	t.Setenv("HOOKCHECK_CONFIG", "")
	if got := FileName(); got != DefaultFileName {
		t.Errorf("FileName() = %q, want %q", got, DefaultFileName)
	}

	t.Setenv("HOOKCHECK_CONFIG", "tox.yaml")
	if got := FileName(); got != "tox.yaml" {
		t.Errorf("FileName() = %q, want %q", got, "tox.yaml")
	}
}
