// Package theme assembles components and themes from an archive index and
// renders the rewritten distribution.
package theme

import (
	"fmt"
	"sort"

	"github.com/alexisbeaulieu97/themeable/internal/archive"
	"github.com/alexisbeaulieu97/themeable/internal/less"
	"github.com/alexisbeaulieu97/themeable/internal/logger"
	"github.com/alexisbeaulieu97/themeable/internal/pathseg"
	apperrors "github.com/alexisbeaulieu97/themeable/pkg/errors"
)

// Theme groups one theme's variables and overrides by component name.
type Theme struct {
	Name      string
	Variables map[string]ThemeVariables
	Overrides map[string]ThemeOverrides
}

func newTheme(name string) *Theme {
	return &Theme{
		Name:      name,
		Variables: make(map[string]ThemeVariables),
		Overrides: make(map[string]ThemeOverrides),
	}
}

// SortedVariables returns the theme's variables files ordered by path.
func (t *Theme) SortedVariables() []ThemeVariables {
	out := make([]ThemeVariables, 0, len(t.Variables))
	for _, v := range t.Variables {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path.String() < out[j].Path.String() })
	return out
}

// SortedOverrides returns the theme's overrides files ordered by path.
func (t *Theme) SortedOverrides() []ThemeOverrides {
	out := make([]ThemeOverrides, 0, len(t.Overrides))
	for _, o := range t.Overrides {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path.String() < out[j].Path.String() })
	return out
}

// Project is the assembled view of one source version.
type Project struct {
	Version    string
	Layout     Layout
	index      *archive.Index
	components map[string]Component
	themes     map[string]*Theme
	log        *logger.Logger
}

// Load classifies every file of idx into components and theme files.
func Load(idx *archive.Index, version string, layout Layout, log *logger.Logger) (*Project, error) {
	p := &Project{
		Version:    version,
		Layout:     layout,
		index:      idx,
		components: make(map[string]Component),
		themes:     make(map[string]*Theme),
		log:        log,
	}

	if err := p.loadComponents(); err != nil {
		return nil, err
	}
	if err := p.loadThemes(); err != nil {
		return nil, err
	}

	log.WithFields(map[string]any{
		"version":    version,
		"components": len(p.components),
		"themes":     len(p.themes),
	}).Info("source tree assembled")
	return p, nil
}

func (p *Project) loadComponents() error {
	root := p.Layout.definitionsRoot()
	for _, path := range p.index.Under(root) {
		if !path.HasExt(LessExt) {
			continue
		}
		rel := path.Rel(root).TrimExt(LessExt)
		content, _ := p.index.Text(path)
		component := NewComponent(rel, content)

		if existing, ok := p.components[component.Name]; ok {
			return apperrors.NewValidationError(component.Name,
				fmt.Sprintf("component defined twice: %s and %s", existing.Path, component.Path), nil)
		}
		p.components[component.Name] = component
		p.log.With("component", rel.String()).Debug("component loaded")
	}
	return nil
}

func (p *Project) loadThemes() error {
	root := p.Layout.themesRoot()
	for _, path := range p.index.Under(root) {
		rel := path.Rel(root)
		if rel.Len() < 2 {
			continue
		}
		themeName := rel.Segment(0)
		filePath := pathseg.Join(rel.Segments()[1:]...)

		switch {
		case filePath.HasExt(VariablesExt):
			content, _ := p.index.Text(path)
			vars := NewThemeVariables(themeName, filePath.TrimExt(VariablesExt), content, p.Layout.GlobalsDir)
			t := p.theme(themeName)
			if existing, ok := t.Variables[vars.Name]; ok {
				return apperrors.NewValidationError(vars.Name,
					fmt.Sprintf("theme %s declares variables twice: %s and %s", themeName, existing.Path, vars.Path), nil)
			}
			t.Variables[vars.Name] = vars
		case filePath.HasExt(OverridesExt):
			content, _ := p.index.Text(path)
			overrides := NewThemeOverrides(themeName, filePath.TrimExt(OverridesExt), content)
			t := p.theme(themeName)
			if existing, ok := t.Overrides[overrides.Name]; ok {
				return apperrors.NewValidationError(overrides.Name,
					fmt.Sprintf("theme %s declares overrides twice: %s and %s", themeName, existing.Path, overrides.Path), nil)
			}
			t.Overrides[overrides.Name] = overrides
		}
	}
	return nil
}

func (p *Project) theme(name string) *Theme {
	t, ok := p.themes[name]
	if !ok {
		t = newTheme(name)
		p.themes[name] = t
	}
	return t
}

// Components returns every component ordered by path.
func (p *Project) Components() []Component {
	out := make([]Component, 0, len(p.components))
	for _, c := range p.components {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path.String() < out[j].Path.String() })
	return out
}

// Component looks up a component by name.
func (p *Project) Component(name string) (Component, bool) {
	c, ok := p.components[name]
	return c, ok
}

// ThemeNames returns the theme names in order.
func (p *Project) ThemeNames() []string {
	names := make([]string, 0, len(p.themes))
	for name := range p.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Theme looks up a theme by name.
func (p *Project) Theme(name string) (*Theme, bool) {
	t, ok := p.themes[name]
	return t, ok
}

// DefaultTheme returns the theme whose variables define every rename. It is
// empty when the source has no default theme.
func (p *Project) DefaultTheme() *Theme {
	if t, ok := p.themes[p.Layout.DefaultTheme]; ok {
		return t
	}
	return newTheme(p.Layout.DefaultTheme)
}

// RenamesFor returns the rename list of a component's default theme
// variables. Components without default variables get an empty list.
func (p *Project) RenamesFor(name string) []less.Rename {
	vars, ok := p.DefaultTheme().Variables[name]
	if !ok {
		return nil
	}
	return vars.Renames
}
