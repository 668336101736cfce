// Package pathseg classifies archive paths as normalized segment lists.
//
// Paths are always slash separated regardless of the host OS. Empty segments
// are dropped on parse, so "a//b/" and "a/b" are the same Path.
package pathseg

import "strings"

// Path is an immutable, normalized list of path segments.
type Path struct {
	segments []string
}

// Parse splits a slash separated path into segments.
func Parse(raw string) Path {
	parts := strings.Split(raw, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		segments = append(segments, part)
	}
	return Path{segments: segments}
}

// Join builds a Path from already split segments.
func Join(segments ...string) Path {
	return Parse(strings.Join(segments, "/"))
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}

// IsEmpty reports whether p has no segments.
func (p Path) IsEmpty() bool {
	return len(p.segments) == 0
}

// Segment returns the i-th segment or "" when out of range.
func (p Path) Segment(i int) string {
	if i < 0 || i >= len(p.segments) {
		return ""
	}
	return p.segments[i]
}

// Segments returns a copy of the segments.
func (p Path) Segments() []string {
	return append([]string(nil), p.segments...)
}

// Base returns the last segment.
func (p Path) Base() string {
	return p.Segment(len(p.segments) - 1)
}

// String joins the segments with "/".
func (p Path) String() string {
	return strings.Join(p.segments, "/")
}

// Append returns a new Path with extra segments added.
func (p Path) Append(segments ...string) Path {
	out := p.Segments()
	for _, s := range segments {
		out = append(out, Parse(s).segments...)
	}
	return Path{segments: out}
}

// Equal reports whether both paths have identical segments.
func (p Path) Equal(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i := range p.segments {
		if p.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether parent's segments are a prefix of p's.
// A path is a prefix of itself.
func (p Path) HasPrefix(parent Path) bool {
	if len(parent.segments) > len(p.segments) {
		return false
	}
	for i, s := range parent.segments {
		if p.segments[i] != s {
			return false
		}
	}
	return true
}

// Under reports whether p lies strictly below parent. A path equal to parent
// is not under it.
func (p Path) Under(parent Path) bool {
	return len(p.segments) > len(parent.segments) && p.HasPrefix(parent)
}

// ChildOf reports whether p is an immediate child of parent.
func (p Path) ChildOf(parent Path) bool {
	return p.Under(parent) && len(p.segments) == len(parent.segments)+1
}

// Rel returns p with parent's segments removed. When p is not under parent
// the result is empty.
func (p Path) Rel(parent Path) Path {
	if !p.Under(parent) {
		return Path{}
	}
	return Path{segments: append([]string(nil), p.segments[len(parent.segments):]...)}
}

// HasExt reports whether the last segment ends with ".<ext>" and has a
// non-empty stem.
func (p Path) HasExt(ext string) bool {
	base := p.Base()
	suffix := "." + ext
	return len(base) > len(suffix) && strings.HasSuffix(base, suffix)
}

// TrimExt removes a literal ".<ext>" suffix from the last segment. Paths
// without that suffix are returned unchanged.
func (p Path) TrimExt(ext string) Path {
	if !p.HasExt(ext) {
		return p
	}
	out := p.Segments()
	last := len(out) - 1
	out[last] = strings.TrimSuffix(out[last], "."+ext)
	return Path{segments: out}
}

// WithExt appends ".<ext>" to the last segment.
func (p Path) WithExt(ext string) Path {
	if p.IsEmpty() {
		return p
	}
	out := p.Segments()
	out[len(out)-1] += "." + ext
	return Path{segments: out}
}
