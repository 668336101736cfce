package config

import "time"

// Source kinds understood by the build.
const (
	SourceZip = "zip"
	SourceGit = "git"
	SourceDir = "dir"
)

// Collision handling modes.
const (
	CollisionsWarn   = "warn"
	CollisionsError  = "error"
	CollisionsIgnore = "ignore"
)

// Config represents a themeable build configuration document.
type Config struct {
	Version    string        `yaml:"version,omitempty" validate:"omitempty,semver"`
	Source     SourceConfig  `yaml:"source"`
	Output     OutputConfig  `yaml:"output"`
	Layout     LayoutConfig  `yaml:"layout"`
	Package    PackageConfig `yaml:"package"`
	Collisions string        `yaml:"collisions" validate:"required,oneof=warn error ignore"`
}

// SourceConfig selects where the upstream source tree comes from.
type SourceConfig struct {
	Kind       string `yaml:"kind" validate:"required,source_kind"`
	ArchiveURL string `yaml:"archive_url,omitempty" validate:"omitempty,url"`
	RepoURL    string `yaml:"repo_url,omitempty" validate:"omitempty,git_url"`
	TagPrefix  string `yaml:"tag_prefix,omitempty"`
	Dir        string `yaml:"dir,omitempty"`
	Timeout    int    `yaml:"timeout" validate:"required,min=1,max=3600"`
}

// TimeoutDuration returns the fetch timeout.
func (s SourceConfig) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// OutputConfig describes where the distribution is written.
type OutputConfig struct {
	Dir string `yaml:"dir" validate:"required"`
}

// LayoutConfig names the directories and files of the upstream tree.
type LayoutConfig struct {
	SourceDir      string `yaml:"source_dir" validate:"required,segment"`
	DefinitionsDir string `yaml:"definitions_dir" validate:"required,segment"`
	ThemesDir      string `yaml:"themes_dir" validate:"required,segment"`
	DefaultTheme   string `yaml:"default_theme" validate:"required,segment"`
	GlobalsDir     string `yaml:"globals_dir" validate:"required,segment"`
	BaseImport     string `yaml:"base_import" validate:"required,segment"`
}

// PackageConfig lists the local files copied into the distribution.
type PackageConfig struct {
	Manifest string `yaml:"manifest" validate:"required"`
	Readme   string `yaml:"readme,omitempty"`
	License  string `yaml:"license,omitempty"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Source: SourceConfig{
			Kind:       SourceZip,
			ArchiveURL: "https://github.com/Semantic-Org/Semantic-UI/archive",
			RepoURL:    "https://github.com/Semantic-Org/Semantic-UI.git",
			Timeout:    120,
		},
		Output: OutputConfig{Dir: "dist"},
		Layout: LayoutConfig{
			SourceDir:      "src",
			DefinitionsDir: "definitions",
			ThemesDir:      "themes",
			DefaultTheme:   "default",
			GlobalsDir:     "globals",
			BaseImport:     "semantic.less",
		},
		Package: PackageConfig{
			Manifest: "package.json",
			Readme:   "README.md",
			License:  "LICENSE.md",
		},
		Collisions: CollisionsWarn,
	}
}
