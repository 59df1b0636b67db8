package uml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/umldoc/pkg/indent"
	"github.com/matzehuels/umldoc/pkg/typename"
)

func TestParseVisibility(t *testing.T) {
	tests := map[string]Visibility{
		"private":         Private,
		"PACKAGE":         PackagePrivate,
		"package-private": PackagePrivate,
		"default":         PackagePrivate,
		" protected ":     Protected,
		"public":          Public,
	}
	for in, want := range tests {
		got, err := ParseVisibility(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseVisibility("internal")
	assert.Error(t, err)
}

func TestVisibilitySigils(t *testing.T) {
	assert.Equal(t, "-", Private.Sigil())
	assert.Equal(t, "~", PackagePrivate.Sigil())
	assert.Equal(t, "#", Protected.Sigil())
	assert.Equal(t, "+", Public.Sigil())
}

func TestVisibilitySet(t *testing.T) {
	s, err := ParseVisibilitySet([]string{"public", "private"})
	require.NoError(t, err)
	assert.True(t, s.Include(Public))
	assert.True(t, s.Include(Private))
	assert.False(t, s.Include(Protected))
	assert.Equal(t, "{private, public}", s.String())

	assert.Equal(t, "{protected, public}", DefaultVisibilities.String())

	_, err = ParseVisibilitySet([]string{"public", "bogus"})
	assert.Error(t, err)
}

func TestParseParamNames(t *testing.T) {
	tests := map[string]ParamNames{
		"none":        ParamNamesNone,
		"before-type": ParamNamesBeforeType,
		"BEFORE_TYPE": ParamNamesBeforeType,
		"after-type":  ParamNamesAfterType,
	}
	for in, want := range tests {
		got, err := ParseParamNames(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseParamNames("inline")
	assert.Error(t, err)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings(nil)

	assert.NotNil(t, s.Logger())
	assert.Equal(t, indent.Default, s.Indentation())
	assert.Empty(t, s.DestinationDirectory())
	assert.Equal(t, []string{"svg", "png"}, s.ImageFormats())
	assert.Nil(t, s.Converter())

	assert.True(t, s.Fields().Include(Public))
	assert.False(t, s.Fields().Include(Private))
	assert.Equal(t, typename.Simple, s.Fields().TypeDisplay())
	assert.Equal(t, ParamNamesNone, s.Methods().ParamNames())
	assert.Equal(t, typename.Simple, s.Methods().ParamTypes())
	assert.Equal(t, typename.Simple, s.Methods().ReturnType())

	for _, name := range []string{"java.lang.Object", "java.lang.Enum", "java.lang.annotation.Annotation"} {
		assert.True(t, s.Excluded(name), name)
	}
	assert.False(t, s.Excluded("java.lang.String"))
}

func TestSettingsAreIsolated(t *testing.T) {
	formats := []string{"svg"}
	s := NewSettings(Settings{Formats: formats, Exclusions: []string{" com.example.Hidden "}})
	formats[0] = "png"

	assert.Equal(t, []string{"svg"}, s.ImageFormats())
	got := s.ImageFormats()
	got[0] = "pdf"
	assert.Equal(t, []string{"svg"}, s.ImageFormats())
	assert.True(t, s.Excluded("com.example.Hidden"))
}
