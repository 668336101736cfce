package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	apperrors "github.com/alexisbeaulieu97/themeable/pkg/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "themeable.yaml"

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseConfig loads a configuration file on top of Default and validates it.
func ParseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewParseError(path, 0, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, apperrors.NewParseError(path, extractLine(err), err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load parses path when given. With an empty path it reads DefaultPath when
// that file exists and otherwise returns the validated defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		return ParseConfig(path)
	}

	if _, err := os.Stat(DefaultPath); err == nil {
		return ParseConfig(DefaultPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, apperrors.NewParseError(DefaultPath, 0, err)
	}

	cfg := Default()
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
