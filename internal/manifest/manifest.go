// Package manifest trims an npm package manifest down to the fields published
// with the generated distribution.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/alexisbeaulieu97/themeable/pkg/errors"
)

// PublishKeys lists the manifest fields carried into the distribution, in
// output order. The resolved version is appended after them.
var PublishKeys = []string{"name", "author", "title", "description", "license", "homepage", "repository", "bugs"}

// Manifest is a parsed package.json whose values are kept verbatim.
type Manifest struct {
	fields map[string]json.RawMessage
}

// Parse decodes a package.json document.
func Parse(path string, data []byte) (*Manifest, error) {
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, apperrors.NewParseError(path, 0, err)
	}
	return &Manifest{fields: fields}, nil
}

// String returns a string field, or "" when missing or not a string.
func (m *Manifest) String(key string) string {
	raw, ok := m.fields[key]
	if !ok {
		return ""
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return value
}

// Version returns the manifest's own version, used when no version is requested.
func (m *Manifest) Version() string {
	return strings.TrimPrefix(m.String("version"), "v")
}

// Description returns the manifest description.
func (m *Manifest) Description() string {
	return m.String("description")
}

// Len returns the number of top-level fields.
func (m *Manifest) Len() int {
	return len(m.fields)
}

// Trim renders a manifest holding exactly PublishKeys plus "version" set to
// version. Every publish key must be present in the source manifest.
func (m *Manifest) Trim(version string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for _, key := range PublishKeys {
		raw, ok := m.fields[key]
		if !ok {
			return nil, apperrors.NewValidationError(key, "required manifest field is missing", nil)
		}
		if err := writeField(&buf, key, raw); err != nil {
			return nil, err
		}
		buf.WriteString(",\n")
	}

	encodedVersion, err := json.Marshal(version)
	if err != nil {
		return nil, fmt.Errorf("encode version: %w", err)
	}
	if err := writeField(&buf, "version", encodedVersion); err != nil {
		return nil, err
	}
	buf.WriteString("\n}\n")
	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, key string, raw json.RawMessage) error {
	encodedKey, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("encode key %s: %w", key, err)
	}

	var value bytes.Buffer
	if err := json.Indent(&value, raw, "  ", "  "); err != nil {
		return apperrors.NewValidationError(key, "field is not valid JSON", err)
	}

	buf.WriteString("  ")
	buf.Write(encodedKey)
	buf.WriteString(": ")
	buf.Write(value.Bytes())
	return nil
}
