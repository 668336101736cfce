package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themeable/internal/config"
	"github.com/alexisbeaulieu97/themeable/internal/less"
	"github.com/alexisbeaulieu97/themeable/internal/theme"
	apperrors "github.com/alexisbeaulieu97/themeable/pkg/errors"
)

type inspectOptions struct {
	version    string
	source     string
	sourceDir  string
	component  string
	jsonOutput bool
}

func newInspectCmd(root *rootFlags) *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show components, themes and variable renames of a source version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.version, "version", "", "Source version to inspect (default: manifest version)")
	cmd.Flags().StringVar(&opts.source, "source", "", "Source kind: zip, git or dir")
	cmd.Flags().StringVar(&opts.sourceDir, "source-dir", "", "Local source checkout (implies --source dir)")
	cmd.Flags().StringVar(&opts.component, "component", "", "Show the rename table of one component")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

type inspectComponent struct {
	Name      string        `json:"name"`
	Path      string        `json:"path"`
	Themes    []string      `json:"themes"`
	Renames   []less.Rename `json:"renames"`
	Variables int           `json:"variables"`
}

type inspectPayload struct {
	Version    string                `json:"version"`
	Themes     []string              `json:"themes"`
	Components []inspectComponent    `json:"components"`
	Collisions []apperrors.Collision `json:"collisions,omitempty"`
}

func runInspect(cmd *cobra.Command, root *rootFlags, opts *inspectOptions) error {
	overrides := config.Overrides{
		Version:    opts.version,
		SourceKind: opts.source,
		SourceDir:  opts.sourceDir,
	}
	s, err := newSession(cmd, "inspect", root, overrides, false)
	if err != nil {
		return err
	}

	project, err := s.loadProject(cmd.Context(), "inspect")
	if err != nil {
		return err
	}

	payload := buildInspectPayload(project)
	if opts.component != "" {
		filtered, ok := findComponent(payload.Components, opts.component)
		if !ok {
			return newCommandError("inspect", fmt.Sprintf("looking up component %q", opts.component),
				errors.New("component not found"), "Run 'themeable inspect' to list the available components.")
		}
		payload.Components = []inspectComponent{filtered}
	}

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	if opts.component != "" {
		return renderRenameTable(cmd.OutOrStdout(), payload.Components[0])
	}
	return renderInspectTable(cmd.OutOrStdout(), payload)
}

func buildInspectPayload(project *theme.Project) inspectPayload {
	payload := inspectPayload{
		Version: project.Version,
		Themes:  project.ThemeNames(),
	}

	for _, c := range project.Components() {
		entry := inspectComponent{
			Name:    c.Name,
			Path:    c.Path.String(),
			Themes:  []string{},
			Renames: project.RenamesFor(c.Name),
		}
		if entry.Renames == nil {
			entry.Renames = []less.Rename{}
		}
		entry.Variables = len(entry.Renames)

		for _, name := range payload.Themes {
			t, _ := project.Theme(name)
			_, hasVariables := t.Variables[c.Name]
			_, hasOverrides := t.Overrides[c.Name]
			if hasVariables || hasOverrides {
				entry.Themes = append(entry.Themes, name)
			}
		}
		payload.Components = append(payload.Components, entry)
	}

	var collisionErr *apperrors.CollisionError
	if errors.As(project.CheckCollisions(), &collisionErr) {
		payload.Collisions = collisionErr.Collisions
	}
	return payload
}

func findComponent(components []inspectComponent, name string) (inspectComponent, bool) {
	for _, c := range components {
		if c.Name == name {
			return c, true
		}
	}
	return inspectComponent{}, false
}

func renderInspectTable(w io.Writer, payload inspectPayload) error {
	p := newPainter(w)

	fmt.Fprintf(w, "%s %s\n", p.heading("Source version:"), valueOrFallback(payload.Version, "(local)"))
	fmt.Fprintf(w, "%s %s\n\n", p.heading("Themes:"), valueOrFallback(strings.Join(payload.Themes, ", "), "(none)"))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COMPONENT\tPATH\tVARIABLES\tTHEMES")
	for _, c := range payload.Components {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", c.Name, c.Path, c.Variables, len(c.Themes))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(payload.Collisions) > 0 {
		fmt.Fprintf(w, "\n%s\n", p.warning("Collisions:"))
		for _, c := range payload.Collisions {
			fmt.Fprintf(w, "  @%s <- %s\n", c.Identifier, strings.Join(c.Owners, ", "))
		}
	}
	return nil
}

func renderRenameTable(w io.Writer, c inspectComponent) error {
	p := newPainter(w)

	fmt.Fprintf(w, "%s %s (%s)\n", p.heading("Component:"), c.Name, c.Path)
	fmt.Fprintf(w, "%s %s\n\n", p.heading("Themes:"), valueOrFallback(strings.Join(c.Themes, ", "), "(none)"))

	if len(c.Renames) == 0 {
		fmt.Fprintln(w, "No default theme variables; references are left unchanged.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORIGINAL\tRENAMED")
	for _, r := range c.Renames {
		fmt.Fprintf(tw, "@%s\t@%s\n", r.Original, r.Renamed)
	}
	return tw.Flush()
}

func valueOrFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
