// Package less rewrites LESS variable declarations and references so that
// component scoped variables become globally unique.
package less

import (
	"regexp"
	"sort"
)

// declarationPattern matches "@name: value;" and "@name:value;". The value runs
// to the last semicolon on the line.
var declarationPattern = regexp.MustCompile(`@([A-Za-z]+) *: ?(.+);`)

// Variables maps a declared variable name to its declared value.
type Variables map[string]string

// ExtractVariables scans text for variable declarations. Later declarations
// of the same name replace earlier ones. Text without declarations yields an
// empty, non-nil map.
func ExtractVariables(text string) Variables {
	vars := Variables{}
	for _, match := range declarationPattern.FindAllStringSubmatch(text, -1) {
		vars[match[1]] = match[2]
	}
	return vars
}

// Names returns the declared names in lexicographic order.
func (v Variables) Names() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
