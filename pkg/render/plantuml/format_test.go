package plantuml

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(buf *bytes.Buffer) *log.Logger {
	return log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
}

func TestParseFormatCaseAndDot(t *testing.T) {
	for _, name := range []string{".PNG", "png", "Png", " png ", ".png"} {
		t.Run(name, func(t *testing.T) {
			f, ok := ParseFormat(name)
			require.True(t, ok)
			assert.Equal(t, PNG, f)
		})
	}
}

func TestParseFormatUnknown(t *testing.T) {
	for _, name := range []string{"bogus", "", ".", "..png", "jpeg"} {
		t.Run(name, func(t *testing.T) {
			_, ok := ParseFormat(name)
			assert.False(t, ok)
		})
	}
}

func TestParseFormatsWarnsOncePerUnknownName(t *testing.T) {
	var buf bytes.Buffer
	got := ParseFormats([]string{"svg", "bogus", ".PNG"}, testLogger(&buf))

	assert.Equal(t, []Format{PNG, SVG}, got)
	assert.Equal(t, 1, strings.Count(buf.String(), "unrecognized image format"))
	assert.Contains(t, buf.String(), "bogus")
}

func TestParseFormatsDeduplicates(t *testing.T) {
	got := ParseFormats([]string{"png", "PNG", ".png", "svg"}, nil)
	assert.Equal(t, []Format{PNG, SVG}, got)
}

func TestParseFormatsEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.Empty(t, ParseFormats(nil, testLogger(&buf)))
	assert.NotContains(t, buf.String(), "unrecognized")
}

func TestFormatMetadata(t *testing.T) {
	tests := []struct {
		f      Format
		name   string
		suffix string
		flag   string
	}{
		{PNG, "png", ".png", "png"},
		{SVG, "svg", ".svg", "svg"},
		{EPSText, "eps_text", ".eps", "eps:text"},
		{ATXT, "atxt", ".atxt", "txt"},
		{LaTeXNoPreamble, "latex_no_preamble", ".latex", "latex:nopreamble"},
		{BraillePNG, "braille_png", ".braille.png", "braille"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.f.String())
			assert.Equal(t, tt.suffix, tt.f.Suffix())
			assert.Equal(t, tt.flag, tt.f.Flag())

			parsed, ok := ParseFormat(strings.ToUpper(tt.name))
			require.True(t, ok)
			assert.Equal(t, tt.f, parsed)
		})
	}
}

func TestAllFormatsHaveSuffix(t *testing.T) {
	all := All()
	assert.Len(t, all, len(formats))
	for _, f := range all {
		assert.True(t, f.Valid())
		assert.True(t, strings.HasPrefix(f.Suffix(), "."), f.String())
		assert.NotEmpty(t, f.Flag(), f.String())
	}
	assert.False(t, Format(0).Valid())
	assert.Equal(t, "unknown", Format(99).String())
}

func TestServerPath(t *testing.T) {
	p, ok := SVG.ServerPath()
	assert.True(t, ok)
	assert.Equal(t, "svg", p)

	_, ok = PDF.ServerPath()
	assert.False(t, ok)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"png", "svg"}, Names([]Format{PNG, SVG}))
}

func TestNormalizeFormats(t *testing.T) {
	var buf bytes.Buffer
	got := NormalizeFormats([]string{"svg", "bogus", ".PNG", "Svg"}, testLogger(&buf))

	assert.Equal(t, []string{"svg", "png"}, got)
	assert.Equal(t, 1, strings.Count(buf.String(), "unrecognized image format"))

	buf.Reset()
	again := ParseFormats(got, testLogger(&buf))
	assert.Equal(t, []Format{PNG, SVG}, again)
	assert.NotContains(t, buf.String(), "unrecognized", "normalized names parse without warnings")
}

func TestNormalizeFormatsEmpty(t *testing.T) {
	assert.Empty(t, NormalizeFormats(nil, nil))
	assert.Empty(t, NormalizeFormats([]string{"bogus"}, nil))
}
