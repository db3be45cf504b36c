// Copyright © 2024 The junkcheck authors

package diagnostic

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRenderer returns a Renderer with colors disabled and a fake source reader.
func testRenderer(sources map[string]string) (*Renderer, *int) {
	reads := 0
	return &Renderer{
		Color: ColorNever,
		SourceReader: func(name string) ([]byte, error) {
			reads++
			s, ok := sources[name]
			if !ok {
				return nil, &fakeErr{name}
			}
			return []byte(s), nil
		},
	}, &reads
}

type fakeErr struct{ name string }

func (e *fakeErr) Error() string { return "not found: " + e.name }

func render(t *testing.T, r *Renderer, d Diagnostic) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, d))
	return buf.String()
}

func TestRenderError(t *testing.T) {
	r, _ := testRenderer(map[string]string{
		"a.php": "<?php\n\nvar_dump($user);\n",
	})
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Code:     "junk_checker",
		Message:  "junk call to var_dump",
		Spans:    []Span{{File: "a.php", Line: 3, Col: 1, Label: "banned function"}},
	})
	want := strings.Join([]string{
		"error[junk_checker]: junk call to var_dump",
		"  --> a.php:3:1",
		"   |",
		" 3 |  var_dump($user);",
		"   |  ^^^^^^^^ banned function",
		"   |",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRenderWarningNoCode(t *testing.T) {
	r, _ := testRenderer(map[string]string{"a.php": "<?php dump(1);"})
	got := render(t, r, Diagnostic{
		Severity: SeverityWarning,
		Message:  "junk call to dump",
		Spans:    []Span{{File: "a.php", Line: 1, Col: 7, EndCol: 10}},
	})
	assert.True(t, strings.HasPrefix(got, "warning: junk call to dump\n"), got)
	assert.Contains(t, got, "--> a.php:1:7")
	assert.Contains(t, got, "\n   |        ^^^^\n")
}

func TestRenderNoSource(t *testing.T) {
	r, _ := testRenderer(nil)
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Message:  "some error",
		Spans:    []Span{{File: "<stdin>", Line: 5, Col: 3}},
	})
	assert.Contains(t, got, "error: some error")
	assert.Contains(t, got, "--> <stdin>:5:3")
	assert.Contains(t, got, "|")
	assert.NotContains(t, got, "^")
}

func TestRenderLineOutOfRange(t *testing.T) {
	r, _ := testRenderer(map[string]string{"a.php": "<?php"})
	got := render(t, r, Diagnostic{
		Message: "junk call to dd",
		Spans:   []Span{{File: "a.php", Line: 9, Col: 1}},
	})
	assert.Contains(t, got, "--> a.php:9:1")
	assert.NotContains(t, got, "^")
}

func TestRenderUnknownLine(t *testing.T) {
	r, reads := testRenderer(map[string]string{"a.php": "<?php"})
	got := render(t, r, Diagnostic{
		Message: "junk call to dd",
		Spans:   []Span{{File: "a.php"}},
	})
	assert.Contains(t, got, "--> a.php\n")
	assert.Equal(t, 0, *reads)
}

func TestRenderNotesAndHelp(t *testing.T) {
	r, _ := testRenderer(map[string]string{"a.php": "<?php dd($x);"})
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Message:  "junk call to dd",
		Spans:    []Span{{File: "a.php", Line: 1, Col: 7}},
		Notes:    []string{"dd is listed in junks"},
		Help:     []string{"remove the call before committing"},
	})
	assert.Contains(t, got, "   = note: dd is listed in junks\n")
	assert.Contains(t, got, "   = help: remove the call before committing\n")
}

func TestRenderDetectsQualifiedName(t *testing.T) {
	r, _ := testRenderer(map[string]string{"a.php": "<?php \\var_dump(1);"})
	got := render(t, r, Diagnostic{
		Message: "junk call to var_dump",
		Spans:   []Span{{File: "a.php", Line: 1, Col: 7}},
	})
	assert.Contains(t, got, "\n   |        ^^^^^^^^^\n")
}

func TestRenderTabsAndMultibyte(t *testing.T) {
	r, _ := testRenderer(map[string]string{"a.php": "<?php\n\t$é = dump();"})
	got := render(t, r, Diagnostic{
		Message: "junk call to dump",
		Spans:   []Span{{File: "a.php", Line: 2, Col: 7}},
	})
	assert.Contains(t, got, " 2 |      $é = dump();\n")
	assert.Contains(t, got, "\n   |           ^^^^\n")
}

func TestRenderCRLF(t *testing.T) {
	r, _ := testRenderer(map[string]string{"a.php": "<?php\r\ndump();\r\n"})
	got := render(t, r, Diagnostic{
		Message: "junk call to dump",
		Spans:   []Span{{File: "a.php", Line: 2, Col: 1}},
	})
	assert.Contains(t, got, " 2 |  dump();\n")
	assert.NotContains(t, got, "\r")
}

func TestRenderColumnPastEnd(t *testing.T) {
	r, _ := testRenderer(map[string]string{"a.php": "abc"})
	got := render(t, r, Diagnostic{
		Message: "m",
		Spans:   []Span{{File: "a.php", Line: 1, Col: 20}},
	})
	assert.Contains(t, got, "\n   |     ^\n")
}

func TestRenderAll(t *testing.T) {
	r, reads := testRenderer(map[string]string{
		"a.php": "<?php\ndump(1);\ndd(2);",
	})
	diags := []Diagnostic{
		{Message: "junk call to dump", Spans: []Span{{File: "a.php", Line: 2, Col: 1}}},
		{Message: "junk call to dd", Spans: []Span{{File: "a.php", Line: 3, Col: 1}}},
	}
	var buf bytes.Buffer
	require.NoError(t, r.RenderAll(&buf, diags))
	got := buf.String()
	parts := strings.Split(got, "\n\n")
	assert.Len(t, parts, 2, got)
	assert.Contains(t, parts[0], "junk call to dump")
	assert.Contains(t, parts[1], "junk call to dd")
	assert.Equal(t, 1, *reads, "source should be read once")
}

func TestRenderNoSpans(t *testing.T) {
	r, _ := testRenderer(nil)
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Message:  "junk_checker: option \"junks\": expected a list of strings, got string",
	})
	assert.Equal(t, "error: junk_checker: option \"junks\": expected a list of strings, got string\n", got)
}

func TestRenderColor(t *testing.T) {
	r, _ := testRenderer(map[string]string{"a.php": "<?php dd();"})
	r.Color = ColorAlways
	got := render(t, r, Diagnostic{
		Message: "junk call to dd",
		Spans:   []Span{{File: "a.php", Line: 1, Col: 7}},
	})
	assert.Contains(t, got, "\033[1;31m")
	assert.Contains(t, got, "\033[0m")
}

func TestParseColorMode(t *testing.T) {
	for _, mode := range []ColorMode{ColorAuto, ColorAlways, ColorNever} {
		got, err := ParseColorMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}
	got, err := ParseColorMode("")
	require.NoError(t, err)
	assert.Equal(t, ColorAuto, got)
	_, err = ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestChoosePalette(t *testing.T) {
	assert.Equal(t, ansiPalette, choosePalette(ColorAlways, nil))
	assert.Equal(t, noPalette, choosePalette(ColorNever, nil))
	assert.Equal(t, noPalette, choosePalette(ColorAuto, nil))
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, noPalette, choosePalette(ColorAuto, nil))
}
