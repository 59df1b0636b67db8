package plantuml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/umldoc/pkg/errors"
)

func TestNewEngine(t *testing.T) {
	tests := []struct {
		kind string
		want any
	}{
		{"", &Exec{}},
		{"exec", &Exec{}},
		{"plantuml", &Exec{}},
		{"server", &Server{}},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			conv, err := NewEngine(EngineOptions{Kind: tt.kind})
			require.NoError(t, err)
			assert.IsType(t, tt.want, conv)
		})
	}
}

func TestNewEngineNone(t *testing.T) {
	conv, err := NewEngine(EngineOptions{Kind: EngineNone})
	require.NoError(t, err)
	assert.Nil(t, conv)
}

func TestNewEngineUnknown(t *testing.T) {
	_, err := NewEngine(EngineOptions{Kind: "graphviz"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestEngineIdentity(t *testing.T) {
	tests := []struct {
		name string
		opts EngineOptions
		want string
	}{
		{"default exec", EngineOptions{}, "exec:plantuml"},
		{"exec command", EngineOptions{Kind: "exec", Command: "java  -jar /opt/plantuml.jar"}, "exec:java -jar /opt/plantuml.jar"},
		{"plantuml alias", EngineOptions{Kind: "PlantUML", Command: "plantuml"}, "exec:plantuml"},
		{"default server", EngineOptions{Kind: "server"}, "server:" + DefaultServerURL},
		{"server url", EngineOptions{Kind: "server", ServerURL: "http://localhost:8080/"}, "server:http://localhost:8080"},
		{"none", EngineOptions{Kind: "none"}, "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.Identity())
		})
	}
}

func TestEngineIdentityDistinguishesRenderers(t *testing.T) {
	local := EngineOptions{Kind: "server", ServerURL: "http://localhost:8080"}
	public := EngineOptions{Kind: "server"}
	assert.NotEqual(t, local.Identity(), public.Identity())

	jar := EngineOptions{Kind: "exec", Command: "java -jar plantuml.jar"}
	assert.NotEqual(t, jar.Identity(), EngineOptions{}.Identity())
}
