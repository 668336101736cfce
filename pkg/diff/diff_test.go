package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateUnifiedDiff_IdenticalContent(t *testing.T) {
	t.Parallel()

	content := []byte("@buttonColor: red;\n@buttonSize: 1em;\n")
	require.Empty(t, GenerateUnifiedDiff(content, content, "a", "b"))
}

func TestGenerateUnifiedDiff_SingleLineChange(t *testing.T) {
	t.Parallel()

	current := []byte("@buttonColor: red;\n@buttonSize: 1em;\n@buttonMargin: 0;\n")
	proposed := []byte("@buttonColor: blue;\n@buttonSize: 1em;\n@buttonMargin: 0;\n")

	result := GenerateUnifiedDiff(current, proposed, "current", "proposed")
	require.Equal(t, strings.Join([]string{
		"--- current",
		"+++ proposed",
		"@@ -1,3 +1,3 @@",
		"-@buttonColor: red;",
		"+@buttonColor: blue;",
		" @buttonSize: 1em;",
		" @buttonMargin: 0;",
		"",
	}, "\n"), result)
}

func TestGenerateUnifiedDiff_Deterministic(t *testing.T) {
	t.Parallel()

	current := []byte("one\ntwo\n")
	proposed := []byte("one\nthree\n")
	require.Equal(t,
		GenerateUnifiedDiff(current, proposed, "a", "b"),
		GenerateUnifiedDiff(current, proposed, "a", "b"))
}

func TestGenerateUnifiedDiff_Truncation(t *testing.T) {
	t.Parallel()

	var expectedLines, actualLines []string
	for i := 0; i < 11000; i++ {
		expectedLines = append(expectedLines, "expected line")
		if i%2 == 0 {
			actualLines = append(actualLines, "actual line")
		} else {
			actualLines = append(actualLines, "expected line")
		}
	}

	result := GenerateUnifiedDiff(
		[]byte(strings.Join(expectedLines, "\n")),
		[]byte(strings.Join(actualLines, "\n")),
		"expected", "actual")

	require.Contains(t, result, truncateMessage)
	require.LessOrEqual(t, strings.Count(result, "\n"), maxDiffLines+1)
}

func TestGenerateUnifiedDiff_EmptyContent(t *testing.T) {
	t.Parallel()

	result := GenerateUnifiedDiff(nil, []byte("new content\n"), "a", "b")
	require.Contains(t, result, "@@ -1,0 +1,1 @@")
	require.Contains(t, result, "+new content\n")
}

func TestUnifiedLabels(t *testing.T) {
	t.Parallel()

	result := Unified([]byte("old"), []byte("new"), "semantic.less")
	require.True(t, strings.HasPrefix(result, "--- a/semantic.less\n+++ b/semantic.less\n"))
	require.Contains(t, result, "-old\n")
	require.Contains(t, result, "+new\n")
}
