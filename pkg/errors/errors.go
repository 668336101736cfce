package errors

import (
	"fmt"
	"strings"
)

// ParseError represents a parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration or manifest validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FetchError reports that a source archive could not be retrieved or read.
type FetchError struct {
	Source  string
	Version string
	Err     error
}

// NewFetchError constructs a FetchError for the given source kind and version.
func NewFetchError(source, version string, err error) error {
	return &FetchError{Source: source, Version: version, Err: err}
}

func (e *FetchError) Error() string {
	if e == nil {
		return ""
	}
	if e.Version != "" {
		return fmt.Sprintf("fetch error [%s@%s]: %v", e.Source, e.Version, e.Err)
	}
	return fmt.Sprintf("fetch error [%s]: %v", e.Source, e.Err)
}

// Unwrap exposes the root error.
func (e *FetchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Collision describes one renamed identifier claimed by more than one owner.
type Collision struct {
	Identifier string   `json:"identifier"`
	Owners     []string `json:"owners"`
}

// CollisionError lists renamed variable identifiers that are not unique.
type CollisionError struct {
	Collisions []Collision
}

// NewCollisionError constructs a CollisionError.
func NewCollisionError(collisions []Collision) error {
	return &CollisionError{Collisions: collisions}
}

func (e *CollisionError) Error() string {
	if e == nil {
		return ""
	}
	parts := make([]string, 0, len(e.Collisions))
	for _, c := range e.Collisions {
		parts = append(parts, fmt.Sprintf("@%s (%s)", c.Identifier, strings.Join(c.Owners, ", ")))
	}
	return fmt.Sprintf("variable collision: %s", strings.Join(parts, "; "))
}

// WriteError indicates a failure while writing an output file.
type WriteError struct {
	Path string
	Err  error
}

// NewWriteError constructs a WriteError for path.
func NewWriteError(path string, err error) error {
	return &WriteError{Path: path, Err: err}
}

func (e *WriteError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("write error: %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying error.
func (e *WriteError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
