package less

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractVariables(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"/* Button */",
		"@verticalMargin: 0em;",
		"@horizontalMargin:0.25em;",
		"@backgroundColor   : #E0E1E2;",
		"@textColor: rgba(0, 0, 0, 0.6);",
		"@verticalMargin: 1em;",
		"@font-size: 1rem;",
		".ui.button { color: @textColor; }",
	}, "\n")

	vars := ExtractVariables(text)
	require.Equal(t, Variables{
		"verticalMargin":   "1em",
		"horizontalMargin": "0.25em",
		"backgroundColor":  "#E0E1E2",
		"textColor":        "rgba(0, 0, 0, 0.6)",
	}, vars)
	require.Equal(t, []string{"backgroundColor", "horizontalMargin", "textColor", "verticalMargin"}, vars.Names())
}

func TestExtractVariablesWithoutDeclarations(t *testing.T) {
	t.Parallel()

	vars := ExtractVariables(".ui.button { margin: 0; }")
	require.NotNil(t, vars)
	require.Empty(t, vars)
	require.Empty(t, vars.Names())
}

func TestComputeRenamesForComponent(t *testing.T) {
	t.Parallel()

	renames := ComputeRenames("button", []string{"verticalMargin", "color", "Shadow"}, false)
	require.Equal(t, []Rename{
		{Original: "Shadow", Renamed: "buttonShadow"},
		{Original: "color", Renamed: "buttonColor"},
		{Original: "verticalMargin", Renamed: "buttonVerticalMargin"},
	}, renames)

	for _, r := range renames {
		require.Equal(t, "button"+strings.ToUpper(r.Original[:1])+r.Original[1:], r.Renamed)
	}
}

func TestComputeRenamesForGlobals(t *testing.T) {
	t.Parallel()

	renames := ComputeRenames("site", []string{"pageFont", "emSize"}, true)
	require.Equal(t, []Rename{
		{Original: "emSize", Renamed: "emSize"},
		{Original: "pageFont", Renamed: "pageFont"},
	}, renames)
}

func TestComputeRenamesEmpty(t *testing.T) {
	t.Parallel()

	require.Empty(t, ComputeRenames("button", nil, false))
}

func TestRewriteEmptyRenamesIsIdentity(t *testing.T) {
	t.Parallel()

	text := "@a: 1;\n.x { color: @a; }\n"
	require.Equal(t, text, Rewrite(nil, text))
}

func TestRewriteRespectsLetterBoundary(t *testing.T) {
	t.Parallel()

	renames := []Rename{{Original: "a", Renamed: "x"}, {Original: "b", Renamed: "y"}}
	out := Rewrite(renames, "margin: @a-foo; padding: @aa; top: @b")

	require.Equal(t, "margin: @x-foo; padding: @aa; top: @y", out)
}

func TestRewriteInterpolation(t *testing.T) {
	t.Parallel()

	renames := []Rename{{Original: "imagePath", Renamed: "siteImagePath"}}
	out := Rewrite(renames, `url("@{imagePath}/flags.png"); @{imagePathx}; @{imagePath`)

	require.Equal(t, `url("@{siteImagePath}/flags.png"); @{imagePathx}; @{imagePath`, out)
}

func TestRewriteDoesNotCascade(t *testing.T) {
	t.Parallel()

	renames := ComputeRenames("button", []string{"a", "buttonA"}, false)
	out := Rewrite(renames, "@a @buttonA")

	require.Equal(t, "@buttonA @buttonButtonA", out)
}

func TestRewriteMatchesSequentialSubstitution(t *testing.T) {
	t.Parallel()

	text := "@color: red;\n@hoverColor: darken(@color, 5%);\n.ui { color: @color; &:hover { color: @hoverColor } }\n@@color\n"
	renames := ComputeRenames("button", []string{"color", "hoverColor"}, false)

	sequential := text
	for _, r := range renames {
		pattern := regexp.MustCompile(`@` + r.Original + `([^A-Za-z])`)
		sequential = pattern.ReplaceAllString(sequential, "@"+r.Renamed+"${1}")
	}

	require.Equal(t, sequential, Rewrite(renames, text))
	require.Contains(t, sequential, "@@buttonColor")
}

func TestCompileVariablesRemovesSelfAssignment(t *testing.T) {
	t.Parallel()

	renames := ComputeRenames("button", []string{"primaryColor"}, false)
	text := "@primaryColor: #fff;\n@primaryColor: @primaryColor;\n"

	out := CompileVariables(renames, text)
	require.Contains(t, out, "@buttonPrimaryColor: #fff;")
	require.NotContains(t, out, "@buttonPrimaryColor: @buttonPrimaryColor;")
	require.Equal(t, "@buttonPrimaryColor: #fff;\n", out)
}

func TestRemoveSelfAssignmentsHandlesCRLF(t *testing.T) {
	t.Parallel()

	renames := []Rename{{Original: "pageFont", Renamed: "pageFont"}}
	out := RemoveSelfAssignments(renames, "@pageFont: @pageFont;\r\n@other: 1;\r\n")

	require.Equal(t, "@other: 1;\r\n", out)
}

func TestRemoveSelfAssignmentsOnLastLine(t *testing.T) {
	t.Parallel()

	renames := []Rename{{Original: "pageFont", Renamed: "pageFont"}}
	require.Equal(t, "@other: 1;\n", RemoveSelfAssignments(renames, "@other: 1;\n@pageFont: @pageFont;"))
	require.Equal(t, "", RemoveSelfAssignments(renames, "@pageFont: @pageFont;"))
	require.Equal(t, "x@pageFont: @pageFont;", RemoveSelfAssignments(renames, "x@pageFont: @pageFont;"))
}

func TestStripMarkers(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"/*******************************",
		"            Theme",
		"*******************************/",
		"",
		"@type    : 'element';",
		"@element : 'button';",
		"",
		"@import (multiple) '../../theme.config';",
		"",
		".ui.button { color: @textColor; }",
		".loadUIOverrides();",
		".loadFonts();",
	}, "\n")

	out := StripMarkers(text)
	require.NotContains(t, out, "Theme")
	require.NotContains(t, out, "@type")
	require.NotContains(t, out, "@element")
	require.NotContains(t, out, "theme.config")
	require.NotContains(t, out, "loadUIOverrides")
	require.NotContains(t, out, "loadFonts")
	require.Equal(t, ".ui.button { color: @textColor; }\n", out)
}

func TestStripMarkersWithoutMarkersIsNoop(t *testing.T) {
	t.Parallel()

	text := ".ui.label { margin: 0; }\n"
	require.Equal(t, text, StripMarkers(text))
}

func TestCompileComponent(t *testing.T) {
	t.Parallel()

	renames := ComputeRenames("button", []string{"color"}, false)
	text := "/* Theme */\n@type: 'element';\n.ui.button { color: @color; }\n.loadFonts();"

	out := CompileComponent(renames, text)
	require.Equal(t, ".ui.button { color: @buttonColor; }\n", out)
}

func TestCompileOverrides(t *testing.T) {
	t.Parallel()

	renames := ComputeRenames("button", []string{"color"}, false)
	out := CompileOverrides(renames, ".ui.button:hover { color: darken(@color, 10%); }")

	require.Equal(t, ".ui.button:hover { color: darken(@buttonColor, 10%); }", out)
}

func TestPrefixedName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "buttonColor", PrefixedName("button", "color"))
	require.Equal(t, "buttonColor", PrefixedName("button", "Color"))
	require.Equal(t, "button", PrefixedName("button", ""))
}
