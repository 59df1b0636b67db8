package plantuml

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/matzehuels/umldoc/pkg/errors"
)

// DefaultCommand is the plantuml command line used when none is configured.
const DefaultCommand = "plantuml"

// Exec converts diagrams by piping them through the plantuml command.
type Exec struct {
	argv    []string
	timeout time.Duration
}

// NewExec parses command with shell quoting rules, for example
// "java -jar /opt/plantuml.jar". A zero timeout means no limit beyond ctx.
func NewExec(command string, timeout time.Duration) (*Exec, error) {
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand
	}
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse plantuml command %q", command)
	}
	if len(argv) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "empty plantuml command")
	}
	return &Exec{argv: argv, timeout: timeout}, nil
}

// Command returns the parsed command line without the per-format options.
func (e *Exec) Command() []string {
	return append([]string(nil), e.argv...)
}

// Args returns the full argument list used to produce f.
func (e *Exec) Args(f Format) []string {
	args := append([]string(nil), e.argv[1:]...)
	return append(args, "-pipe", "-charset", "UTF-8", "-t"+f.Flag())
}

// Available reports whether the command can be found on PATH.
func (e *Exec) Available() bool {
	_, err := exec.LookPath(e.argv[0])
	return err == nil
}

// Convert implements Converter.
func (e *Exec) Convert(ctx context.Context, source string, f Format) ([]byte, error) {
	if !f.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %d", int(f))
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.argv[0], e.Args(f)...)
	cmd.Stdin = strings.NewReader(source)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		switch {
		case stderrors.Is(err, exec.ErrNotFound):
			return nil, errors.Wrap(errors.ErrCodeEngineNotFound, err,
				"%s not found. Install PlantUML or set engine.command", e.argv[0])
		case stderrors.Is(ctx.Err(), context.DeadlineExceeded):
			return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "plantuml %s", f)
		case ctx.Err() != nil:
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "plantuml %s: %s", f, strings.TrimSpace(errBuf.String()))
	}
	return out.Bytes(), nil
}
