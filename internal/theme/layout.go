package theme

import (
	"github.com/alexisbeaulieu97/themeable/internal/config"
	"github.com/alexisbeaulieu97/themeable/internal/pathseg"
)

// File extensions of the upstream tree.
const (
	LessExt      = "less"
	VariablesExt = "variables"
	OverridesExt = "overrides"
)

// Layout names the directories of the upstream tree. The definitions and
// themes directory names are reused for the output tree.
type Layout struct {
	SourceDir      string
	DefinitionsDir string
	ThemesDir      string
	DefaultTheme   string
	GlobalsDir     string
	BaseImport     string
}

// NewLayout builds a Layout from configuration.
func NewLayout(cfg config.LayoutConfig) Layout {
	return Layout{
		SourceDir:      cfg.SourceDir,
		DefinitionsDir: cfg.DefinitionsDir,
		ThemesDir:      cfg.ThemesDir,
		DefaultTheme:   cfg.DefaultTheme,
		GlobalsDir:     cfg.GlobalsDir,
		BaseImport:     cfg.BaseImport,
	}
}

// DefaultLayout mirrors the Semantic UI source tree.
func DefaultLayout() Layout {
	return NewLayout(config.Default().Layout)
}

func (l Layout) definitionsRoot() pathseg.Path {
	return pathseg.Join(l.SourceDir, l.DefinitionsDir)
}

func (l Layout) themesRoot() pathseg.Path {
	return pathseg.Join(l.SourceDir, l.ThemesDir)
}

func (l Layout) baseImportPath() pathseg.Path {
	return pathseg.Join(l.SourceDir, l.BaseImport)
}
