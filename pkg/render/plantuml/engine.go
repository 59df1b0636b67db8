package plantuml

import (
	"strings"
	"time"

	"github.com/matzehuels/umldoc/pkg/errors"
)

// Engine names accepted by NewEngine.
const (
	EngineExec   = "exec"
	EngineServer = "server"
	EngineNone   = "none"
)

// EngineOptions selects and configures a rendering engine.
type EngineOptions struct {
	Kind      string        // exec, server or none
	Command   string        // plantuml command line for exec
	ServerURL string        // base URL for server
	Timeout   time.Duration // per conversion
}

// Identity names the renderer the options select, such as
// "exec:java -jar plantuml.jar" or "server:https://www.plantuml.com/plantuml".
// Artifacts produced by different identities never share a cache entry.
func (o EngineOptions) Identity() string {
	switch kind := strings.ToLower(strings.TrimSpace(o.Kind)); kind {
	case "", EngineExec, "plantuml":
		command := strings.Join(strings.Fields(o.Command), " ")
		if command == "" {
			command = DefaultCommand
		}
		return EngineExec + ":" + command
	case EngineServer:
		url := strings.TrimRight(strings.TrimSpace(o.ServerURL), "/")
		if url == "" {
			url = DefaultServerURL
		}
		return EngineServer + ":" + url
	default:
		return kind
	}
}

// NewEngine returns the configured converter. The "none" engine returns a
// nil Converter, which makes ImageWriter write the text file only.
func NewEngine(opts EngineOptions) (Converter, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Kind)) {
	case "", EngineExec, "plantuml":
		e, err := NewExec(opts.Command, opts.Timeout)
		if err != nil {
			return nil, err
		}
		return e, nil
	case EngineServer:
		s, err := NewServer(opts.ServerURL, opts.Timeout)
		if err != nil {
			return nil, err
		}
		return s, nil
	case EngineNone:
		return nil, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown engine %q (must be exec, server or none)", opts.Kind)
	}
}
