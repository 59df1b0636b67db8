package plantuml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRoundTrip(t *testing.T) {
	sources := []string{
		"",
		"Bob -> Alice : hello",
		"@startuml\n\n  class com.example.Counter {\n    +count: int\n  }\n\n@enduml\n",
		strings.Repeat("class Äpfel<T>\n", 200),
	}
	for _, src := range sources {
		encoded, err := Encode(src)
		require.NoError(t, err)
		for _, r := range encoded {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q", r)
		}
		assert.Zero(t, len(encoded)%4, "groups of three bytes encode to four runes")

		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, src, decoded)
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode("not+valid/")
	assert.Error(t, err)
}
