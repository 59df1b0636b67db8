package typename

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQualifiedNeverEmpty(t *testing.T) {
	tests := []struct {
		simple, qualified string
		wantSimple        string
		wantQualified     string
	}{
		{"List", "java.util.List", "List", "java.util.List"},
		{"List", "", "List", "List"},
		{"", "java.util.List", "java.util.List", "java.util.List"},
		{"", "", "?", "?"},
	}
	for _, tt := range tests {
		got := New(tt.simple, tt.qualified)
		assert.Equal(t, tt.wantSimple, got.Simple())
		assert.Equal(t, tt.wantQualified, got.Qualified())
	}
}

func TestGenericsAreCopied(t *testing.T) {
	args := []TypeName{New("A", "x.A"), New("B", "x.B")}
	tn := New("Pair", "x.Pair", args...)
	args[0] = New("Z", "x.Z")

	got := tn.Generics()
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Simple())

	got[1] = New("Y", "x.Y")
	assert.Equal(t, "B", tn.Generics()[1].Simple())
}

func TestArrayOfGeneric(t *testing.T) {
	list := New("List", "java.util.List", New("String", "java.lang.String"))
	arr := Array(list)

	assert.Equal(t, "List[]", arr.Simple())
	assert.Equal(t, "List<String>[]", arr.UML(Simple))
	assert.Equal(t, "java.util.List<java.lang.String>[]", arr.UML(QualifiedGenerics))
}

func TestVariableQualifiedBound(t *testing.T) {
	tn := ExtendsBound("T", New("Number", "java.lang.Number"))
	assert.Equal(t, "T extends Number", tn.UML(Simple))
	assert.Equal(t, "T extends java.lang.Number", tn.UML(Qualified))
	assert.True(t, tn.IsVariable())
	assert.Equal(t, "T", tn.Qualified())
}

func TestParseDisplay(t *testing.T) {
	tests := []struct {
		in      string
		want    Display
		wantErr bool
	}{
		{"simple", Simple, false},
		{"SIMPLE", Simple, false},
		{"qualified", Qualified, false},
		{"qualified_generics", QualifiedGenerics, false},
		{" Qualified-Generics ", QualifiedGenerics, false},
		{"none", None, false},
		{"fancy", None, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDisplay(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.String(), displayNames[got])
		})
	}
}

func TestKindText(t *testing.T) {
	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("TypeVar")))
	assert.Equal(t, KindTypeVar, k)

	require.NoError(t, k.UnmarshalText([]byte("interface")))
	assert.Equal(t, KindDeclared, k)

	require.NoError(t, k.UnmarshalText([]byte("no-such-kind")))
	assert.Equal(t, KindOther, k)

	text, err := KindWildcard.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "wildcard", string(text))
}

func TestRefString(t *testing.T) {
	ref := Declared("Map", "java.util.Map", str, ArrayOf(Wildcard(nil, integer)))
	assert.Equal(t, "java.util.Map<java.lang.String,? super java.lang.Integer[]>", ref.String())
	assert.Equal(t, "none", (*Ref)(nil).String())
}
