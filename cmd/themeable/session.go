package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/themeable/internal/archive"
	"github.com/alexisbeaulieu97/themeable/internal/config"
	"github.com/alexisbeaulieu97/themeable/internal/logger"
	"github.com/alexisbeaulieu97/themeable/internal/manifest"
	"github.com/alexisbeaulieu97/themeable/internal/theme"
	apperrors "github.com/alexisbeaulieu97/themeable/pkg/errors"
)

// session holds what every command resolves before touching the source.
type session struct {
	cfg      *config.Config
	log      *logger.Logger
	manifest *manifest.Manifest
	version  string
}

func newSession(cmd *cobra.Command, operation string, root *rootFlags, overrides config.Overrides, requireManifest bool) (*session, error) {
	cfg, err := config.Load(root.configPath)
	if err != nil {
		return nil, newCommandError(operation, "loading configuration", err, "Check the configuration file syntax and field values.")
	}
	cfg, err = overrides.Apply(cfg)
	if err != nil {
		return nil, newCommandError(operation, "applying command line flags", err, "Check the flag values against the configuration schema.")
	}

	log, err := newLogger(cmd.ErrOrStderr(), root.verbose)
	if err != nil {
		return nil, newCommandError(operation, "creating logger", err, "Report this issue.")
	}

	s := &session{cfg: cfg, log: log}

	m, err := readManifest(cfg.Package.Manifest)
	switch {
	case err == nil:
		s.manifest = m
	case requireManifest || !errors.Is(err, os.ErrNotExist):
		return nil, newCommandError(operation, "reading package manifest", err,
			fmt.Sprintf("Run from the package root or set package.manifest (currently %q).", cfg.Package.Manifest))
	}

	s.version = cfg.Version
	if s.version == "" && s.manifest != nil {
		s.version = s.manifest.Version()
	}
	if s.version == "" && cfg.Source.Kind != config.SourceDir {
		return nil, newCommandError(operation, "resolving source version", errors.New("no version requested and the manifest has none"),
			"Pass --version or set \"version\" in the package manifest.")
	}

	return s, nil
}

func newLogger(w io.Writer, verbose bool) (*logger.Logger, error) {
	level := "info"
	if verbose {
		level = "debug"
	}
	return logger.New(logger.Options{Level: level, HumanReadable: isTerminal(w), Writer: w})
}

func isTerminal(w io.Writer) bool {
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func readManifest(path string) (*manifest.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return manifest.Parse(path, data)
}

func (s *session) source() (archive.Source, error) {
	src := s.cfg.Source
	switch src.Kind {
	case config.SourceZip:
		return archive.NewZipSource(src.ArchiveURL, src.TimeoutDuration(), s.log), nil
	case config.SourceGit:
		return archive.NewGitSource(src.RepoURL, src.TagPrefix, s.log), nil
	case config.SourceDir:
		return archive.NewDirSource(src.Dir, s.log), nil
	default:
		return nil, apperrors.NewValidationError("source.kind", fmt.Sprintf("unsupported source %q", src.Kind), nil)
	}
}

// loadProject fetches the source tree and assembles it.
func (s *session) loadProject(ctx context.Context, operation string) (*theme.Project, error) {
	src, err := s.source()
	if err != nil {
		return nil, newCommandError(operation, "selecting source", err, "Set source.kind to zip, git or dir.")
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Source.TimeoutDuration())
	defer cancel()

	log := s.log.WithFields(map[string]any{"source": src.Name(), "version": s.version})
	log.Info("fetching source")

	idx, err := src.Fetch(ctx, s.version)
	if err != nil {
		return nil, newCommandError(operation, fmt.Sprintf("fetching %s source %s", src.Name(), s.version), err,
			"Check the version exists upstream and that the source is reachable.")
	}

	project, err := theme.Load(idx, s.version, theme.NewLayout(s.cfg.Layout), s.log)
	if err != nil {
		return nil, newCommandError(operation, "assembling source tree", err, "Check the layout settings match the source tree.")
	}
	return project, nil
}

// checkCollisions applies the configured collision policy.
func (s *session) checkCollisions(project *theme.Project, operation string) error {
	if s.cfg.Collisions == config.CollisionsIgnore {
		return nil
	}

	err := project.CheckCollisions()
	var collisionErr *apperrors.CollisionError
	if !errors.As(err, &collisionErr) {
		return err
	}

	if s.cfg.Collisions == config.CollisionsError {
		return newCommandError(operation, "checking renamed variables", err,
			"Rename the clashing variables upstream or set collisions to warn.")
	}
	for _, c := range collisionErr.Collisions {
		s.log.WithFields(map[string]any{
			"identifier": c.Identifier,
			"owners":     c.Owners,
		}).Warn("renamed variable collision")
	}
	return nil
}

// extras reads the files copied verbatim next to the manifest. Missing files
// are skipped with a warning.
func (s *session) extras() ([]theme.File, error) {
	var files []theme.File
	for _, path := range []string{s.cfg.Package.Readme, s.cfg.Package.License} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			s.log.With("path", path).Warn("skipping missing package file")
			continue
		}
		if err != nil {
			return nil, err
		}
		files = append(files, theme.File{Path: filepath.Base(path), Content: data})
	}
	return files, nil
}

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}
