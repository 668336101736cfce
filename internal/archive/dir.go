package archive

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alexisbeaulieu97/themeable/internal/logger"
	apperrors "github.com/alexisbeaulieu97/themeable/pkg/errors"
)

const dirSourceName = "dir"

// DirSource indexes a local checkout. The version is only used for reporting.
type DirSource struct {
	Root string
	Log  *logger.Logger
}

// NewDirSource creates a DirSource rooted at root.
func NewDirSource(root string, log *logger.Logger) *DirSource {
	return &DirSource{Root: root, Log: log}
}

// Name identifies the source kind.
func (s *DirSource) Name() string {
	return dirSourceName
}

// Fetch reads every regular file below Root, skipping .git.
func (s *DirSource) Fetch(ctx context.Context, version string) (*Index, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.Log.With("root", s.Root).Info("reading local source tree")

	info, err := os.Stat(s.Root)
	if err != nil {
		return nil, apperrors.NewFetchError(dirSourceName, version, err)
	}
	if !info.IsDir() {
		return nil, apperrors.NewFetchError(dirSourceName, version, fmt.Errorf("%s is not a directory", s.Root))
	}

	files := make(map[string][]byte)
	err = filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = content
		return nil
	})
	if err != nil {
		return nil, apperrors.NewFetchError(dirSourceName, version, err)
	}

	return NewIndex(files), nil
}
