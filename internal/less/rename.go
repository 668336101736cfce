package less

import "sort"

// Rename maps an original variable name to its replacement.
type Rename struct {
	Original string `json:"original"`
	Renamed  string `json:"renamed"`
}

// ComputeRenames derives the rename list for one variables file. Global files
// keep every name; component files prefix each name with the component name
// and upper-case the first letter of the original.
//
// Every non-global target starts with component, and originals are letters
// only, so a target can equal another original only when that original itself
// starts with the component name. The rewriter is single pass, so even that
// case cannot cascade.
func ComputeRenames(component string, names []string, global bool) []Rename {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	renames := make([]Rename, 0, len(sorted))
	for i, name := range sorted {
		if i > 0 && sorted[i-1] == name {
			continue
		}
		renamed := name
		if !global {
			renamed = PrefixedName(component, name)
		}
		renames = append(renames, Rename{Original: name, Renamed: renamed})
	}
	return renames
}

// PrefixedName returns component followed by name with its first ASCII
// letter upper-cased.
func PrefixedName(component, name string) string {
	if name == "" {
		return component
	}
	first := name[0]
	if first >= 'a' && first <= 'z' {
		first -= 'a' - 'A'
	}
	return component + string(first) + name[1:]
}
