// Package indent provides a writer that indents every line it starts.
//
// A [Writer] wraps a sink and tracks whether the cursor sits at the start of
// a line. The first [Writer.Append] on a line emits the indentation unit once
// per nesting level before the text itself. [Writer.Indent] returns a view one
// level deeper over the same sink, so nested parts write through shared
// state:
//
//	w := indent.Wrap(f, indent.Default)
//	w.Append("package a {").Newline()
//	w.Indent().Append("class A").Newline()
//	w.Append("}").Newline()
//	err := w.Close()
//
// All views share one sink, one cursor and one error. Closing any view closes
// the sink exactly once.
package indent

import (
	"errors"
	"io"
	"strings"
	"sync"
)

// Indentation describes the indent unit and the nesting level of a view.
type Indentation struct {
	Width int  // Number of Char repetitions per level
	Char  rune // Usually ' ' or '\t'
	Level int  // Nesting depth, never negative
}

// Default indents with two spaces per level.
var Default = Spaces(2)

// Spaces returns an indentation of width spaces at level zero.
func Spaces(width int) Indentation {
	return Indentation{Width: width, Char: ' '}
}

// Tabs returns an indentation of one tab per level.
func Tabs() Indentation {
	return Indentation{Width: 1, Char: '\t'}
}

// Unit returns the string emitted once per level.
func (i Indentation) Unit() string {
	if i.Width <= 0 {
		return ""
	}
	c := i.Char
	if c == 0 {
		c = ' '
	}
	return strings.Repeat(string(c), i.Width)
}

// Increase returns the indentation one level deeper.
func (i Indentation) Increase() Indentation {
	i.Level++
	return i
}

// Decrease returns the indentation one level shallower, stopping at zero.
func (i Indentation) Decrease() Indentation {
	if i.Level > 0 {
		i.Level--
	}
	return i
}

// String returns the full prefix for the current level.
func (i Indentation) String() string {
	if i.Level <= 0 {
		return ""
	}
	return strings.Repeat(i.Unit(), i.Level)
}

// ErrClosed is returned by writes after the sink was closed.
var ErrClosed = errors.New("indent: write to closed writer")

// state is shared by all views over one sink.
type state struct {
	mu          sync.Mutex
	sink        io.Writer
	atLineStart bool
	lastSpace   bool
	closed      bool
	err         error
}

// Writer is an indenting view over a shared sink.
type Writer struct {
	st  *state
	ind Indentation
}

// Wrap returns a writer over w at the given indentation. If w already is a
// *Writer, the returned view shares its sink and cursor.
func Wrap(w io.Writer, ind Indentation) *Writer {
	if iw, ok := w.(*Writer); ok {
		return &Writer{st: iw.st, ind: ind}
	}
	return &Writer{st: &state{sink: w, atLineStart: true}, ind: ind}
}

// Indentation returns the indentation of this view.
func (w *Writer) Indentation() Indentation { return w.ind }

// Level returns the nesting depth of this view.
func (w *Writer) Level() int { return w.ind.Level }

// Indent returns a view one level deeper over the same sink.
func (w *Writer) Indent() *Writer {
	return &Writer{st: w.st, ind: w.ind.Increase()}
}

// Unindent returns a view one level shallower over the same sink.
func (w *Writer) Unindent() *Writer {
	return &Writer{st: w.st, ind: w.ind.Decrease()}
}

// Append writes s, emitting the indentation first whenever a line is started.
// Every line a multi-line string begins is indented. Write failures are kept
// for [Writer.Err]; Append always returns w so calls can be chained.
func (w *Writer) Append(s string) *Writer {
	if s == "" {
		return w
	}
	st := w.st
	st.mu.Lock()
	defer st.mu.Unlock()

	prefix := w.ind.String()
	for len(s) > 0 {
		line, rest, nl := strings.Cut(s, "\n")
		if line != "" {
			if st.atLineStart {
				st.write(prefix)
			}
			st.write(line)
			st.atLineStart = false
			st.lastSpace = isSpace(line[len(line)-1])
		}
		if nl {
			st.write("\n")
			st.atLineStart = true
			st.lastSpace = false
		}
		s = rest
	}
	return w
}

// Newline ends the current line. It never emits indentation.
func (w *Writer) Newline() *Writer {
	st := w.st
	st.mu.Lock()
	defer st.mu.Unlock()
	st.write("\n")
	st.atLineStart = true
	st.lastSpace = false
	return w
}

// Whitespace writes a single space unless the cursor is at the start of a
// line or the previous character already was whitespace.
func (w *Writer) Whitespace() *Writer {
	st := w.st
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.atLineStart || st.lastSpace {
		return w
	}
	st.write(" ")
	st.lastSpace = true
	return w
}

// Write implements io.Writer by appending p as text.
func (w *Writer) Write(p []byte) (int, error) {
	w.Append(string(p))
	if err := w.Err(); err != nil {
		return 0, err
	}
	return len(p), nil
}

// AtLineStart reports whether the next Append starts a line.
func (w *Writer) AtLineStart() bool {
	w.st.mu.Lock()
	defer w.st.mu.Unlock()
	return w.st.atLineStart
}

// Err returns the first error encountered by any view.
func (w *Writer) Err() error {
	w.st.mu.Lock()
	defer w.st.mu.Unlock()
	return w.st.err
}

// Close closes the shared sink exactly once, no matter how many views call
// it, and returns the first write or close error.
func (w *Writer) Close() error {
	st := w.st
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.closed {
		return st.err
	}
	st.closed = true
	if c, ok := st.sink.(io.Closer); ok {
		if err := c.Close(); err != nil && st.err == nil {
			st.err = err
		}
	}
	return st.err
}

func (st *state) write(s string) {
	if s == "" || st.err != nil {
		return
	}
	if st.closed {
		st.err = ErrClosed
		return
	}
	if _, err := io.WriteString(st.sink, s); err != nil {
		st.err = err
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}
