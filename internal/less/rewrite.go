package less

import (
	"regexp"
	"strings"
)

// Rewrite replaces every reference "@original" whose next character is not a
// letter (or that ends the text), and every interpolation "@{original}", with
// the renamed identifier.
//
// Text is scanned once. Each maximal letter run after "@" is looked up in a
// table built from renames, so replaced text is never matched again.
func Rewrite(renames []Rename, text string) string {
	if len(renames) == 0 {
		return text
	}

	lookup := make(map[string]string, len(renames))
	for _, r := range renames {
		lookup[r.Original] = r.Renamed
	}

	var b strings.Builder
	b.Grow(len(text))

	rest := text
	for {
		at := strings.IndexByte(rest, '@')
		if at < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:at])
		rest = rest[at:]

		consumed, replacement := matchReference(rest, lookup)
		if consumed == 0 {
			b.WriteByte('@')
			rest = rest[1:]
			continue
		}
		b.WriteString(replacement)
		rest = rest[consumed:]
	}

	return b.String()
}

// matchReference inspects text starting at "@" and returns how many bytes a
// renamed reference spans together with its replacement. It returns zero when
// there is nothing to rewrite.
func matchReference(text string, lookup map[string]string) (int, string) {
	start := 1
	interpolated := len(text) > 1 && text[1] == '{'
	if interpolated {
		start = 2
	}

	end := start
	for end < len(text) && isLetter(text[end]) {
		end++
	}
	if end == start {
		return 0, ""
	}

	renamed, ok := lookup[text[start:end]]
	if !ok {
		return 0, ""
	}

	if interpolated {
		if end >= len(text) || text[end] != '}' {
			return 0, ""
		}
		return end + 1, "@{" + renamed + "}"
	}
	return end, "@" + renamed
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// RemoveSelfAssignments deletes "@x: @x;" lines left behind after a variables
// file has been rewritten with its own rename list.
func RemoveSelfAssignments(renames []Rename, text string) string {
	for _, r := range renames {
		line := "@" + r.Renamed + ": @" + r.Renamed + ";"
		text = strings.ReplaceAll(text, line+"\r\n", "")
		text = strings.ReplaceAll(text, line+"\n", "")
		if strings.HasSuffix(text, line) {
			head := strings.TrimSuffix(text, line)
			if head == "" || strings.HasSuffix(head, "\n") {
				text = head
			}
		}
	}
	return text
}

// Structural markers of the upstream source tree that mean nothing once
// components are imported through the generated aggregator.
var markerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/\*[* \r\n]+Theme[* \r\n]+\*/[\r\n ]*`),
	regexp.MustCompile(`@type *:.+;[\r\n ]*`),
	regexp.MustCompile(`@element *:.+;[\r\n ]*`),
	regexp.MustCompile(`@import \(multiple\) '\.\./\.\./theme\.config';[\r\n ]*`),
	regexp.MustCompile(`\.loadUIOverrides\(\);[\r\n ]*`),
	regexp.MustCompile(`\.loadFonts\(\);[\r\n ]*`),
}

// StripMarkers removes the theme banner, @type and @element declarations, the
// theme.config import and the load directives. Missing markers are ignored.
func StripMarkers(text string) string {
	for _, pattern := range markerPatterns {
		text = pattern.ReplaceAllLiteralString(text, "")
	}
	return text
}

// CompileComponent rewrites a component stylesheet and strips its markers.
func CompileComponent(renames []Rename, text string) string {
	return StripMarkers(Rewrite(renames, text))
}

// CompileVariables rewrites a theme variables file and drops self assignments.
func CompileVariables(renames []Rename, text string) string {
	return RemoveSelfAssignments(renames, Rewrite(renames, text))
}

// CompileOverrides rewrites a theme overrides file.
func CompileOverrides(renames []Rename, text string) string {
	return Rewrite(renames, text)
}
