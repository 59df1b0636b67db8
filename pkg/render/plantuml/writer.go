package plantuml

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umldoc/pkg/errors"
	"github.com/matzehuels/umldoc/pkg/render"
)

// Converter turns PlantUML source into image bytes of one format.
// Implementations must be safe for concurrent use.
type Converter interface {
	Convert(ctx context.Context, source string, f Format) ([]byte, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(ctx context.Context, source string, f Format) ([]byte, error)

// Convert implements Converter.
func (fn ConverterFunc) Convert(ctx context.Context, source string, f Format) ([]byte, error) {
	return fn(ctx, source, f)
}

// Options configures an ImageWriter.
type Options struct {
	Dir       string      // Directory receiving the images
	BaseName  string      // File name without suffix
	Formats   []string    // Format names, parsed with ParseFormats
	Converter Converter   // Nil writes the text only
	Logger    *log.Logger // Defaults to log.Default()
	FileMode  os.FileMode // Defaults to 0o644
}

// ImageWriter passes diagram text through to a delegate while buffering it,
// then generates one image file per format from the buffer.
//
// Generation is two-phase: [ImageWriter.Finish] closes the delegate and
// freezes the text, [ImageWriter.Generate] converts it. [ImageWriter.Close]
// does both in order.
type ImageWriter struct {
	*render.BufferingWriter

	dir     string
	base    string
	formats []Format
	conv    Converter
	logger  *log.Logger
	mode    os.FileMode

	mu        sync.Mutex
	finished  bool
	finishErr error
	generated bool
	genErr    error
}

// NewImageWriter returns a writer over delegate. Unknown format names are
// dropped with one warning each.
func NewImageWriter(delegate io.Writer, opts Options) *ImageWriter {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	mode := opts.FileMode
	if mode == 0 {
		mode = 0o644
	}
	return &ImageWriter{
		BufferingWriter: render.NewBufferingWriter(delegate),
		dir:             opts.Dir,
		base:            opts.BaseName,
		formats:         ParseFormats(opts.Formats, logger),
		conv:            opts.Converter,
		logger:          logger,
		mode:            mode,
	}
}

// Formats returns the formats that will be generated.
func (w *ImageWriter) Formats() []Format {
	return append([]Format(nil), w.formats...)
}

// Target returns the image path for f.
func (w *ImageWriter) Target(f Format) string {
	return filepath.Join(w.dir, w.base+f.Suffix())
}

// Targets returns the image paths in generation order.
func (w *ImageWriter) Targets() []string {
	out := make([]string, len(w.formats))
	for i, f := range w.formats {
		out[i] = w.Target(f)
	}
	return out
}

// Finish closes the delegate. The buffered text is final afterwards.
// Calling Finish again returns the first result.
func (w *ImageWriter) Finish() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.finishLocked()
}

func (w *ImageWriter) finishLocked() error {
	if w.finished {
		return w.finishErr
	}
	w.finished = true
	if err := w.BufferingWriter.Close(); err != nil {
		w.finishErr = errors.Wrap(errors.ErrCodeIO, err, "close diagram text")
	}
	return w.finishErr
}

// Generate finishes the writer if needed and converts the buffered text
// once per format into <dir>/<base><suffix>.
//
// A conversion failure is logged and the remaining formats are still
// attempted; such failures are returned joined. The first failure writing a
// target file aborts generation and is returned. Generate runs once; later
// calls return the first result.
func (w *ImageWriter) Generate(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.finishLocked(); err != nil {
		return err
	}
	if w.generated {
		return w.genErr
	}
	w.generated = true
	w.genErr = w.generate(ctx)
	return w.genErr
}

func (w *ImageWriter) generate(ctx context.Context) error {
	if len(w.formats) == 0 {
		return nil
	}
	if w.conv == nil {
		w.logger.Warn("no rendering engine configured, skipping images", "file", w.String())
		return nil
	}

	source := w.BufferingWriter.String()
	var convErrs []error
	for _, f := range w.formats {
		if err := ctx.Err(); err != nil {
			return err
		}
		target := w.Target(f)
		start := time.Now()
		w.logger.Info("generating file", "file", target)

		data, err := w.conv.Convert(ctx, source, f)
		if err != nil {
			w.logger.Error("couldn't convert diagram", "file", target, "format", f, "err", errors.UserMessage(err))
			convErrs = append(convErrs, errors.Wrap(errors.ErrCodeRenderFailed, err, "convert %s", target))
			continue
		}
		if err := os.WriteFile(target, data, w.mode); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "write %s", target)
		}
		w.logger.Debug("generated file", "file", target, "bytes", len(data), "duration", time.Since(start).Round(time.Millisecond))
	}
	return stderrors.Join(convErrs...)
}

// CloseContext finishes the writer and generates the images.
func (w *ImageWriter) CloseContext(ctx context.Context) error {
	return w.Generate(ctx)
}

// Close implements io.Closer. It is CloseContext with a background context.
func (w *ImageWriter) Close() error {
	return w.CloseContext(context.Background())
}

// String describes the files the writer generates, for example
// "ImageWriter{out/Foo.svg}" or "ImageWriter{out/Foo.{png,svg}}".
func (w *ImageWriter) String() string {
	var sb strings.Builder
	sb.WriteString("ImageWriter{")
	if w.dir != "" {
		sb.WriteString(w.dir)
		sb.WriteString(string(filepath.Separator))
	}
	sb.WriteString(w.base)
	switch len(w.formats) {
	case 0:
	case 1:
		sb.WriteString(w.formats[0].Suffix())
	default:
		sb.WriteString(".{")
		for i, f := range w.formats {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strings.TrimPrefix(f.Suffix(), "."))
		}
		sb.WriteByte('}')
	}
	sb.WriteByte('}')
	return sb.String()
}

// Text returns the buffered diagram text.
func (w *ImageWriter) Text() string {
	return w.BufferingWriter.String()
}
