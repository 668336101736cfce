// Package output writes a rendered bundle to disk. Evaluate compares the
// bundle with what is already on disk; Apply writes only what changed.
package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alexisbeaulieu97/themeable/internal/logger"
	"github.com/alexisbeaulieu97/themeable/internal/theme"
	"github.com/alexisbeaulieu97/themeable/pkg/diff"
	apperrors "github.com/alexisbeaulieu97/themeable/pkg/errors"
)

// Action describes what Apply does with one file.
type Action string

const (
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionUnchanged Action = "unchanged"
)

const (
	dirMode  fs.FileMode = 0o755
	fileMode fs.FileMode = 0o644
)

// Change is the evaluated state of one output file.
type Change struct {
	Path    string
	Action  Action
	Diff    string
	content []byte
}

// Plan lists every bundle file with its action, in bundle order.
type Plan struct {
	Dir     string
	Changes []Change
}

// Count returns how many changes have action a.
func (p *Plan) Count(a Action) int {
	n := 0
	for _, c := range p.Changes {
		if c.Action == a {
			n++
		}
	}
	return n
}

// RequiresAction reports whether Apply would touch the disk.
func (p *Plan) RequiresAction() bool {
	return p.Count(ActionCreate)+p.Count(ActionUpdate) > 0
}

// Writer materializes bundles under Dir.
type Writer struct {
	Dir string
	Log *logger.Logger
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string, log *logger.Logger) *Writer {
	return &Writer{Dir: dir, Log: log}
}

// Evaluate compares bundle with the files under Dir without writing.
// Updated files carry a unified diff from the current to the new content.
func (w *Writer) Evaluate(bundle *theme.Bundle) (*Plan, error) {
	plan := &Plan{Dir: w.Dir, Changes: make([]Change, 0, bundle.Len())}
	for _, f := range bundle.Files {
		target := w.target(f.Path)
		existing, err := os.ReadFile(target)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			plan.Changes = append(plan.Changes, Change{Path: f.Path, Action: ActionCreate, content: f.Content})
		case err != nil:
			return nil, apperrors.NewWriteError(target, fmt.Errorf("read existing file: %w", err))
		case bytes.Equal(existing, f.Content):
			plan.Changes = append(plan.Changes, Change{Path: f.Path, Action: ActionUnchanged, content: f.Content})
		default:
			plan.Changes = append(plan.Changes, Change{
				Path:    f.Path,
				Action:  ActionUpdate,
				Diff:    diff.Unified(existing, f.Content, f.Path),
				content: f.Content,
			})
		}
	}
	return plan, nil
}

// Apply writes every created or updated file of plan. Files are replaced
// atomically through a temporary sibling.
func (w *Writer) Apply(ctx context.Context, plan *Plan) error {
	for _, change := range plan.Changes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if change.Action == ActionUnchanged {
			continue
		}

		target := w.target(change.Path)
		if err := writeFile(target, change.content); err != nil {
			return err
		}
		w.Log.WithFields(map[string]any{
			"path":   change.Path,
			"action": string(change.Action),
		}).Debug("file written")
	}

	w.Log.WithFields(map[string]any{
		"dir":       plan.Dir,
		"created":   plan.Count(ActionCreate),
		"updated":   plan.Count(ActionUpdate),
		"unchanged": plan.Count(ActionUnchanged),
	}).Info("output written")
	return nil
}

func (w *Writer) target(path string) string {
	return filepath.Join(w.Dir, filepath.FromSlash(path))
}

func writeFile(target string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), dirMode); err != nil {
		return apperrors.NewWriteError(target, fmt.Errorf("create directory: %w", err))
	}

	tmpPath := target + ".tmp"
	if err := os.WriteFile(tmpPath, content, fileMode); err != nil {
		return apperrors.NewWriteError(target, err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return apperrors.NewWriteError(target, err)
	}
	return nil
}
