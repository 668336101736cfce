package theme

import (
	"github.com/alexisbeaulieu97/themeable/internal/less"
	"github.com/alexisbeaulieu97/themeable/internal/pathseg"
)

// Component is one stylesheet from the definitions tree.
type Component struct {
	Name    string
	Path    pathseg.Path
	Content string
}

// NewComponent creates a Component from its path relative to the definitions
// directory, extension removed (for example "elements/button").
func NewComponent(path pathseg.Path, content string) Component {
	return Component{Name: path.Base(), Path: path, Content: content}
}

// OutputPath returns "<definitionsDir>/<group>/<name>.less".
func (c Component) OutputPath(layout Layout) string {
	return pathseg.Join(layout.DefinitionsDir).Append(c.Path.String()).WithExt(LessExt).String()
}

// Compile rewrites the stylesheet with renames and strips source markers.
func (c Component) Compile(renames []less.Rename) string {
	return less.CompileComponent(renames, c.Content)
}

// ThemeVariables is one theme's variables file for a component. The
// variables and renames are derived once at construction.
type ThemeVariables struct {
	Theme     string
	Name      string
	Path      pathseg.Path
	Content   string
	Global    bool
	Variables less.Variables
	Renames   []less.Rename
}

// NewThemeVariables parses content and computes the rename list. Files whose
// first path segment is globalsDir keep their names.
func NewThemeVariables(theme string, path pathseg.Path, content, globalsDir string) ThemeVariables {
	vars := less.ExtractVariables(content)
	global := path.Segment(0) == globalsDir
	return ThemeVariables{
		Theme:     theme,
		Name:      path.Base(),
		Path:      path,
		Content:   content,
		Global:    global,
		Variables: vars,
		Renames:   less.ComputeRenames(path.Base(), vars.Names(), global),
	}
}

// OutputPath returns "<themesDir>/<theme>/<group>/<name>.variables.less".
func (v ThemeVariables) OutputPath(layout Layout) string {
	return themeOutputPath(layout, v.Theme, v.Path, VariablesExt)
}

// Compile rewrites the file with renames and drops self assignments.
func (v ThemeVariables) Compile(renames []less.Rename) string {
	return less.CompileVariables(renames, v.Content)
}

// ThemeOverrides is one theme's overrides file for a component.
type ThemeOverrides struct {
	Theme   string
	Name    string
	Path    pathseg.Path
	Content string
}

// NewThemeOverrides creates a ThemeOverrides.
func NewThemeOverrides(theme string, path pathseg.Path, content string) ThemeOverrides {
	return ThemeOverrides{Theme: theme, Name: path.Base(), Path: path, Content: content}
}

// OutputPath returns "<themesDir>/<theme>/<group>/<name>.overrides.less".
func (o ThemeOverrides) OutputPath(layout Layout) string {
	return themeOutputPath(layout, o.Theme, o.Path, OverridesExt)
}

// Compile rewrites the file with renames.
func (o ThemeOverrides) Compile(renames []less.Rename) string {
	return less.CompileOverrides(renames, o.Content)
}

func themeOutputPath(layout Layout, theme string, path pathseg.Path, ext string) string {
	return pathseg.Join(layout.ThemesDir, theme).Append(path.String()).WithExt(ext).WithExt(LessExt).String()
}
