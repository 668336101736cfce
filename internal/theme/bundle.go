package theme

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/alexisbeaulieu97/themeable/pkg/errors"
)

// ManifestPath is the output path of the trimmed package manifest.
const ManifestPath = "package.json"

const importOrderNote = "  Import this file, then import theme files, then override variables"

// File is one output file, path relative to the output directory.
type File struct {
	Path    string
	Content []byte
}

// Bundle is the complete output tree ordered by path.
type Bundle struct {
	Files []File
}

// Len returns the number of files.
func (b *Bundle) Len() int {
	return len(b.Files)
}

// File looks up a file by output path.
func (b *Bundle) File(path string) (File, bool) {
	for _, f := range b.Files {
		if f.Path == path {
			return f, true
		}
	}
	return File{}, false
}

// BundleOptions carries the inputs that do not come from the source tree.
type BundleOptions struct {
	// Description is injected into the base import header.
	Description string
	// Manifest is the trimmed package.json, omitted when nil.
	Manifest []byte
	// Extras are copied verbatim, for example README.md and LICENSE.md.
	Extras []File
}

// Bundle renders every component and theme file with the default theme
// renames, plus the base import, manifest and extras.
func (p *Project) Bundle(opts BundleOptions) (*Bundle, error) {
	files := make([]File, 0, len(p.components)+len(opts.Extras)+2)

	for _, component := range p.Components() {
		files = append(files, File{
			Path:    component.OutputPath(p.Layout),
			Content: []byte(component.Compile(p.RenamesFor(component.Name))),
		})
	}

	for _, name := range p.ThemeNames() {
		t := p.themes[name]
		for _, vars := range t.SortedVariables() {
			files = append(files, File{
				Path:    vars.OutputPath(p.Layout),
				Content: []byte(vars.Compile(p.RenamesFor(vars.Name))),
			})
		}
		for _, overrides := range t.SortedOverrides() {
			files = append(files, File{
				Path:    overrides.OutputPath(p.Layout),
				Content: []byte(overrides.Compile(p.RenamesFor(overrides.Name))),
			})
		}
	}

	base, err := p.BaseImport(opts.Description)
	if err != nil {
		return nil, err
	}
	files = append(files, File{Path: p.Layout.BaseImport, Content: []byte(base)})

	if opts.Manifest != nil {
		files = append(files, File{Path: ManifestPath, Content: opts.Manifest})
	}
	files = append(files, opts.Extras...)

	sort.SliceStable(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	for i := 1; i < len(files); i++ {
		if files[i].Path == files[i-1].Path {
			return nil, apperrors.NewValidationError(files[i].Path, "output path produced twice", nil)
		}
	}

	p.log.With("files", len(files)).Debug("bundle rendered")
	return &Bundle{Files: files}, nil
}

// BaseImport renders the aggregator stylesheet: the upstream header with the
// description injected, the default theme variables imports, the rest of the
// upstream file, then the default theme overrides imports.
func (p *Project) BaseImport(description string) (string, error) {
	path := p.Layout.baseImportPath()
	text, ok := p.index.Text(path)
	if !ok {
		return "", apperrors.NewParseError(path.String(), 0, fmt.Errorf("base import file not found"))
	}

	lines := strings.Split(text, "\n")
	defaults := p.DefaultTheme()

	out := make([]string, 0, len(lines)*2+len(defaults.Variables)+len(defaults.Overrides)+4)
	out = append(out, sliceLines(lines, 0, 9)...)
	out = append(out, "  "+description, importOrderNote)
	out = append(out, sliceLines(lines, 10, 12)...)
	out = append(out, "/* Default Variables */")
	for _, vars := range defaults.SortedVariables() {
		out = append(out, importLine(vars.OutputPath(p.Layout)))
	}
	out = append(out, "")
	out = append(out, sliceLines(lines, 11, len(lines))...)
	out = append(out, "/* Default Overrides */")
	for _, overrides := range defaults.SortedOverrides() {
		out = append(out, importLine(overrides.OutputPath(p.Layout)))
	}
	return strings.Join(out, "\n"), nil
}

func importLine(path string) string {
	return fmt.Sprintf("@import %q;", path)
}

func sliceLines(lines []string, from, to int) []string {
	if from > len(lines) {
		from = len(lines)
	}
	if to > len(lines) {
		to = len(lines)
	}
	return lines[from:to]
}
