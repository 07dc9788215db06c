// Package hookconfig loads the hook config file from the repository root.
package hookconfig

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nathantilsley/hookcheck/api"
	"github.com/nathantilsley/hookcheck/internal/check/domain"
)

// Adapter implements ports.ConfigPort by reading a YAML file such as
// .hookcheck.yaml.
type Adapter struct {
	path string
}

// New creates a config adapter for fileName, resolved against root when it
// is relative.
func New(root, fileName string) *Adapter {
	path := fileName
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, fileName)
	}
	return &Adapter{path: path}
}

// Path returns the resolved config file path.
func (a *Adapter) Path() string {
	return a.path
}

// Load parses the config file. A missing file yields an empty config so
// every check keeps its registration defaults.
func (a *Adapter) Load(_ context.Context) (api.HookConfig, error) {
	content, err := os.ReadFile(a.path)
	if errors.Is(err, fs.ErrNotExist) {
		return api.HookConfig{}, nil
	}
	if err != nil {
		return api.HookConfig{}, fmt.Errorf("reading hook config: %w", err)
	}

	var cfg api.HookConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return api.HookConfig{}, fmt.Errorf("parsing hook config %s: %w", a.path, err)
	}

	if err := validate(cfg); err != nil {
		return api.HookConfig{}, fmt.Errorf("invalid hook config %s: %w", a.path, err)
	}
	return cfg, nil
}

func validate(cfg api.HookConfig) error {
	for name, c := range cfg.Checks {
		if c.State != "" {
			if _, err := domain.ParseState(c.State); err != nil {
				return fmt.Errorf("checks.%s.state: %w", name, err)
			}
		}
		for _, ext := range c.Extensions {
			if len(ext) < 2 || ext[0] != '.' {
				return fmt.Errorf("checks.%s.extensions: %q must start with a dot", name, ext)
			}
		}
	}
	return nil
}
