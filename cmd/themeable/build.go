package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themeable/internal/config"
	"github.com/alexisbeaulieu97/themeable/internal/output"
	"github.com/alexisbeaulieu97/themeable/internal/theme"
)

type buildOptions struct {
	version   string
	outDir    string
	source    string
	sourceDir string
	dryRun    bool
}

func newBuildCmd(root *rootFlags) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Fetch a source version and write the themeable distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.version, "version", "", "Source version to build (default: manifest version)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Output directory")
	cmd.Flags().StringVar(&opts.source, "source", "", "Source kind: zip, git or dir")
	cmd.Flags().StringVar(&opts.sourceDir, "source-dir", "", "Local source checkout (implies --source dir)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show what would be written without writing")

	return cmd
}

func runBuild(cmd *cobra.Command, root *rootFlags, opts *buildOptions) error {
	overrides := config.Overrides{
		Version:    opts.version,
		OutputDir:  opts.outDir,
		SourceKind: opts.source,
		SourceDir:  opts.sourceDir,
	}
	s, err := newSession(cmd, "build", root, overrides, true)
	if err != nil {
		return err
	}

	project, err := s.loadProject(cmd.Context(), "build")
	if err != nil {
		return err
	}
	if err := s.checkCollisions(project, "build"); err != nil {
		return err
	}

	trimmed, err := s.manifest.Trim(s.version)
	if err != nil {
		return newCommandError("build", "trimming package manifest", err, "Add the missing field to the package manifest.")
	}
	extras, err := s.extras()
	if err != nil {
		return newCommandError("build", "reading package files", err, "Check the package.readme and package.license paths.")
	}

	bundle, err := project.Bundle(theme.BundleOptions{
		Description: s.manifest.Description(),
		Manifest:    trimmed,
		Extras:      extras,
	})
	if err != nil {
		return newCommandError("build", "rendering distribution", err, "Check the source tree contains the base import file.")
	}

	writer := output.NewWriter(s.cfg.Output.Dir, s.log)
	plan, err := writer.Evaluate(bundle)
	if err != nil {
		return newCommandError("build", "comparing with existing output", err, "Check permissions on the output directory.")
	}

	if opts.dryRun {
		return renderPlan(cmd.OutOrStdout(), plan)
	}
	if !plan.RequiresAction() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date in %s\n", valueOrFallback(s.version, "local source"), plan.Dir)
		return nil
	}

	if err := writer.Apply(cmd.Context(), plan); err != nil {
		return newCommandError("build", "writing distribution", err, "Check permissions and free space in the output directory.")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Built %s into %s: %d created, %d updated, %d unchanged\n",
		valueOrFallback(s.version, "local source"), plan.Dir,
		plan.Count(output.ActionCreate), plan.Count(output.ActionUpdate), plan.Count(output.ActionUnchanged))
	return nil
}

func renderPlan(w io.Writer, plan *output.Plan) error {
	p := newPainter(w)

	fmt.Fprintf(w, "%s %d files in %s (%d create, %d update, %d unchanged)\n",
		p.heading("Dry run:"), len(plan.Changes), plan.Dir,
		plan.Count(output.ActionCreate), plan.Count(output.ActionUpdate), plan.Count(output.ActionUnchanged))

	for _, change := range plan.Changes {
		fmt.Fprintf(w, "  %s %s\n", p.action(change.Action)+padding(change.Action), change.Path)
	}

	for _, change := range plan.Changes {
		if change.Diff == "" {
			continue
		}
		fmt.Fprintln(w)
		fmt.Fprint(w, change.Diff)
	}
	return nil
}

func padding(a output.Action) string {
	const width = len(output.ActionUnchanged)
	n := width - len(a)
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%*s", n, "")
}
