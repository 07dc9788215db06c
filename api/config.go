package api

// HookConfig is the top-level schema of the .hookcheck.yaml file stored at
// the repository root.
type HookConfig struct {
	Checks map[string]CheckConfig `yaml:"checks"`
}

// CheckConfig overrides the registration defaults of one check, keyed by
// check name in HookConfig.Checks.
type CheckConfig struct {
	// State is "on" or "off". Empty keeps the check's default.
	State string `yaml:"state"`
	// Extensions replaces the file extensions a check matches, leading dot
	// included (e.g. [".yaml", ".yml"]).
	Extensions []string `yaml:"extensions"`
}

// Check returns the config for name, or the zero CheckConfig.
func (c HookConfig) Check(name string) CheckConfig {
	if c.Checks == nil {
		return CheckConfig{}
	}
	return c.Checks[name]
}
