package archive

import (
	"context"
	"fmt"
	"io"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/alexisbeaulieu97/themeable/internal/logger"
	apperrors "github.com/alexisbeaulieu97/themeable/pkg/errors"
)

const gitSourceName = "git"

// GitSource clones a single tag into memory and indexes its tree.
type GitSource struct {
	URL       string
	TagPrefix string
	Log       *logger.Logger
}

// NewGitSource creates a GitSource for url.
func NewGitSource(url, tagPrefix string, log *logger.Logger) *GitSource {
	return &GitSource{URL: url, TagPrefix: tagPrefix, Log: log}
}

// Name identifies the source kind.
func (s *GitSource) Name() string {
	return gitSourceName
}

// Fetch clones the tag "<TagPrefix><version>" with depth 1 and reads every
// file of its commit tree.
func (s *GitSource) Fetch(ctx context.Context, version string) (*Index, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	tag := s.TagPrefix + version
	log := s.Log.WithFields(map[string]any{"url": s.URL, "tag": tag})
	log.Info("cloning source repository")

	repo, err := git.CloneContext(ctx, memory.NewStorage(), nil, &git.CloneOptions{
		URL:           s.URL,
		ReferenceName: plumbing.NewTagReferenceName(tag),
		SingleBranch:  true,
		Depth:         1,
		Tags:          git.NoTags,
	})
	if err != nil {
		return nil, apperrors.NewFetchError(gitSourceName, version, fmt.Errorf("clone %s: %w", tag, err))
	}

	commit, err := headCommit(repo)
	if err != nil {
		return nil, apperrors.NewFetchError(gitSourceName, version, err)
	}

	idx, err := indexCommit(commit)
	if err != nil {
		return nil, apperrors.NewFetchError(gitSourceName, version, err)
	}
	log.WithFields(map[string]any{"files": idx.Len(), "commit": commit.Hash.String()}).Debug("tree indexed")
	return idx, nil
}

// headCommit resolves HEAD to a commit, peeling an annotated tag if needed.
func headCommit(repo *git.Repository) (*object.Commit, error) {
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	if commit, err := repo.CommitObject(head.Hash()); err == nil {
		return commit, nil
	}

	tag, err := repo.TagObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD %s: %w", head.Hash(), err)
	}
	commit, err := tag.Commit()
	if err != nil {
		return nil, fmt.Errorf("peel tag %s: %w", tag.Name, err)
	}
	return commit, nil
}

func indexCommit(commit *object.Commit) (*Index, error) {
	iter, err := commit.Files()
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer iter.Close()

	files := make(map[string][]byte)
	err = iter.ForEach(func(f *object.File) error {
		reader, err := f.Reader()
		if err != nil {
			return fmt.Errorf("open %s: %w", f.Name, err)
		}
		defer reader.Close()

		content, err := io.ReadAll(reader)
		if err != nil {
			return fmt.Errorf("read %s: %w", f.Name, err)
		}
		files[f.Name] = content
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewIndex(files), nil
}
