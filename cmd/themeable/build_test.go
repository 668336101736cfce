package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const fixtureManifest = `{
  "name": "semantic-ui-less-themeable",
  "version": "2.4.2",
  "title": "Semantic UI",
  "description": "LESS only distribution of Semantic UI with importable themes",
  "homepage": "http://www.semantic-ui.com",
  "author": "Jack Lukic <jack@semantic-ui.com>",
  "license": "MIT",
  "repository": {"type": "git", "url": "git://github.com/example/semantic-ui-less-themeable.git"},
  "bugs": {"url": "https://github.com/example/semantic-ui-less-themeable/issues"},
  "scripts": {"build": "themeable build"}
}`

type fixture struct {
	root   string
	config string
	out    string
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func newFixture(t *testing.T, collisions string) fixture {
	t.Helper()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"upstream/src/definitions/elements/button.less":         "@type: 'element';\n.ui.button { color: @color; }\n",
		"upstream/src/themes/default/elements/button.variables": "@color: red;\n",
		"upstream/src/themes/default/elements/button.overrides": ".ui.button:hover { color: @color; }\n",
		"upstream/src/themes/default/globals/site.variables":    "@fontSize: 14px;\n",
		"upstream/src/semantic.less":                            "/*\n header\n*/\n",
		"package.json":                                          fixtureManifest,
		"README.md":                                             "# themeable\n",
	})

	f := fixture{
		root:   root,
		config: filepath.Join(root, "themeable.yaml"),
		out:    filepath.Join(root, "dist"),
	}
	cfg := fmt.Sprintf(`source:
  kind: dir
  dir: %q
output:
  dir: %q
package:
  manifest: %q
  readme: %q
  license: %q
collisions: %s
`,
		filepath.Join(root, "upstream"), f.out,
		filepath.Join(root, "package.json"), filepath.Join(root, "README.md"), filepath.Join(root, "LICENSE.md"),
		collisions)
	require.NoError(t, os.WriteFile(f.config, []byte(cfg), 0o644))
	return f
}

func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	cmd.SetArgs(args)
	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return stdout.String(), err
}

func readOutput(t *testing.T, f fixture, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(f.out, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestBuildWritesDistribution(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "warn")
	stdout, err := executeCommand(newRootCmd(), "build", "--config", f.config)
	require.NoError(t, err)
	require.Contains(t, stdout, "Built 2.4.2 into "+f.out)

	require.Equal(t, ".ui.button { color: @buttonColor; }\n", readOutput(t, f, "definitions/elements/button.less"))
	require.Equal(t, "@buttonColor: red;\n", readOutput(t, f, "themes/default/elements/button.variables.less"))
	require.Equal(t, ".ui.button:hover { color: @buttonColor; }\n", readOutput(t, f, "themes/default/elements/button.overrides.less"))
	require.Equal(t, "# themeable\n", readOutput(t, f, "README.md"))
	require.Contains(t, readOutput(t, f, "semantic.less"), `@import "themes/default/elements/button.variables.less";`)

	var pkg map[string]any
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, f, "package.json")), &pkg))
	require.Len(t, pkg, 9)
	require.Equal(t, "2.4.2", pkg["version"])
	require.NotContains(t, pkg, "scripts")

	_, err = os.Stat(filepath.Join(f.out, "LICENSE.md"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuildVersionFlagOverridesManifest(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "warn")
	_, err := executeCommand(newRootCmd(), "build", "--config", f.config, "--version", "v2.5.0")
	require.NoError(t, err)

	var pkg map[string]any
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, f, "package.json")), &pkg))
	require.Equal(t, "v2.5.0", pkg["version"])
}

func TestBuildDryRunWritesNothing(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "warn")
	stdout, err := executeCommand(newRootCmd(), "build", "--config", f.config, "--dry-run")
	require.NoError(t, err)
	require.Contains(t, stdout, "Dry run:")
	require.Contains(t, stdout, "create    definitions/elements/button.less")

	_, err = os.Stat(f.out)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuildDryRunShowsDiffForChangedFiles(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "warn")
	_, err := executeCommand(newRootCmd(), "build", "--config", f.config)
	require.NoError(t, err)

	writeFiles(t, f.root, map[string]string{
		"upstream/src/themes/default/elements/button.variables": "@color: blue;\n",
	})

	stdout, err := executeCommand(newRootCmd(), "build", "--config", f.config, "--dry-run")
	require.NoError(t, err)
	require.Contains(t, stdout, "update    themes/default/elements/button.variables.less")
	require.Contains(t, stdout, "unchanged definitions/elements/button.less")
	require.Contains(t, stdout, "-@buttonColor: red;\n+@buttonColor: blue;\n")
}

func TestBuildFailsOnCollisionsWhenConfigured(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "error")
	writeFiles(t, f.root, map[string]string{
		"upstream/src/themes/default/elements/label.variables": "@color: green;\n@Color: black;\n",
	})

	_, err := executeCommand(newRootCmd(), "build", "--config", f.config)
	require.Error(t, err)
	require.Contains(t, err.Error(), "variable collision")
	require.Contains(t, err.Error(), "labelColor")

	_, err = os.Stat(f.out)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuildWarnsOnCollisionsByDefault(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "warn")
	writeFiles(t, f.root, map[string]string{
		"upstream/src/themes/default/elements/label.variables": "@color: green;\n@Color: black;\n",
	})

	_, err := executeCommand(newRootCmd(), "build", "--config", f.config)
	require.NoError(t, err)
}

func TestBuildRequiresManifest(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "warn")
	require.NoError(t, os.Remove(filepath.Join(f.root, "package.json")))

	_, err := executeCommand(newRootCmd(), "build", "--config", f.config)
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading package manifest")
}

func TestBuildRejectsUnknownSourceKind(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "warn")
	_, err := executeCommand(newRootCmd(), "build", "--config", f.config, "--source", "ftp")
	require.Error(t, err)
	require.Contains(t, err.Error(), "applying command line flags")
}

func TestBuildRejectsZeroSourceTimeout(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "warn")
	cfg, err := os.ReadFile(f.config)
	require.NoError(t, err)
	cfg = bytes.Replace(cfg, []byte("source:\n"), []byte("source:\n  timeout: 0\n"), 1)
	require.NoError(t, os.WriteFile(f.config, cfg, 0o644))

	_, err = executeCommand(newRootCmd(), "build", "--config", f.config)
	require.Error(t, err)
	require.Contains(t, err.Error(), "source.timeout")

	_, err = os.Stat(f.out)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuildReportsUpToDateOutput(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "warn")
	_, err := executeCommand(newRootCmd(), "build", "--config", f.config)
	require.NoError(t, err)

	stdout, err := executeCommand(newRootCmd(), "build", "--config", f.config)
	require.NoError(t, err)
	require.Contains(t, stdout, "is up to date")
}
