// Package archive loads a versioned source tree into an immutable in-memory
// index keyed by slash separated path.
package archive

import (
	"context"
	"sort"

	"github.com/alexisbeaulieu97/themeable/internal/pathseg"
)

// Source fetches the source tree for one version.
type Source interface {
	Name() string
	Fetch(ctx context.Context, version string) (*Index, error)
}

// Index is a read-only mapping from path to file content. Directories are not
// stored; they are implied by the paths of their files.
type Index struct {
	files map[string][]byte
	paths []pathseg.Path
}

// NewIndex copies files into an Index, normalizing every key.
func NewIndex(files map[string][]byte) *Index {
	idx := &Index{files: make(map[string][]byte, len(files))}
	for raw, content := range files {
		p := pathseg.Parse(raw)
		if p.IsEmpty() {
			continue
		}
		key := p.String()
		if _, exists := idx.files[key]; !exists {
			idx.paths = append(idx.paths, p)
		}
		idx.files[key] = append([]byte(nil), content...)
	}
	sort.Slice(idx.paths, func(i, j int) bool {
		return idx.paths[i].String() < idx.paths[j].String()
	})
	return idx
}

// Len returns the number of files.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.paths)
}

// Paths returns every file path in lexicographic order.
func (i *Index) Paths() []pathseg.Path {
	if i == nil {
		return nil
	}
	return append([]pathseg.Path(nil), i.paths...)
}

// Under returns the files strictly below parent, in order.
func (i *Index) Under(parent pathseg.Path) []pathseg.Path {
	var out []pathseg.Path
	for _, p := range i.Paths() {
		if p.Under(parent) {
			out = append(out, p)
		}
	}
	return out
}

// Read returns a copy of the content stored at p.
func (i *Index) Read(p pathseg.Path) ([]byte, bool) {
	if i == nil {
		return nil, false
	}
	content, ok := i.files[p.String()]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), content...), true
}

// Text returns the content at p decoded as a string.
func (i *Index) Text(p pathseg.Path) (string, bool) {
	if i == nil {
		return "", false
	}
	content, ok := i.files[p.String()]
	return string(content), ok
}
