package config

import "strings"

// Overrides carries command line values that replace file settings when set.
type Overrides struct {
	Version    string
	OutputDir  string
	SourceKind string
	SourceDir  string
}

// Apply returns a copy of cfg with non-empty overrides applied and validated.
func (o Overrides) Apply(cfg *Config) (*Config, error) {
	out := *cfg
	if v := strings.TrimSpace(o.Version); v != "" {
		out.Version = v
	}
	if v := strings.TrimSpace(o.OutputDir); v != "" {
		out.Output.Dir = v
	}
	if v := strings.TrimSpace(o.SourceKind); v != "" {
		out.Source.Kind = v
	}
	if v := strings.TrimSpace(o.SourceDir); v != "" {
		out.Source.Dir = v
		if o.SourceKind == "" {
			out.Source.Kind = SourceDir
		}
	}

	if err := ValidateConfig(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
