package indent

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeCounter struct {
	bytes.Buffer
	closes int
}

func (c *closeCounter) Close() error {
	c.closes++
	return nil
}

type failingWriter struct {
	n    int
	err  error
	seen int
}

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.seen >= f.n {
		return 0, f.err
	}
	f.seen++
	return len(p), nil
}

func TestAppendIndentsLineStart(t *testing.T) {
	var buf bytes.Buffer
	w := Wrap(&buf, Default)

	w.Append("a {").Newline()
	w.Indent().Append("b").Append("c").Newline()
	w.Indent().Indent().Append("d").Newline()
	w.Append("}").Newline()

	require.NoError(t, w.Err())
	assert.Equal(t, "a {\n  bc\n    d\n}\n", buf.String())
}

func TestIndentDepthPerLine(t *testing.T) {
	var buf bytes.Buffer
	root := Wrap(&buf, Spaces(3))

	views := []*Writer{root}
	for i := 1; i < 6; i++ {
		views = append(views, views[i-1].Indent())
	}
	// Interleave levels so every line is started by a different view.
	order := []int{0, 3, 1, 5, 2, 4, 0}
	for _, lvl := range order {
		views[lvl].Append("x").Newline()
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, len(order))
	for i, line := range lines {
		indent := len(line) - len(strings.TrimLeft(line, " "))
		assert.Equal(t, order[i]*3, indent, "line %d", i)
	}
}

func TestIndentationUsesLevelOfFirstAppend(t *testing.T) {
	var buf bytes.Buffer
	w := Wrap(&buf, Default)

	// The line is started at level 2; a shallower view continues it.
	w.Indent().Indent().Append("deep")
	w.Append(" tail").Newline()

	assert.Equal(t, "    deep tail\n", buf.String())
}

func TestNewlineDoesNotIndent(t *testing.T) {
	var buf bytes.Buffer
	w := Wrap(&buf, Default).Indent()

	w.Newline().Newline()
	assert.Equal(t, "\n\n", buf.String())
	assert.True(t, w.AtLineStart())
}

func TestMultiLineAppend(t *testing.T) {
	var buf bytes.Buffer
	w := Wrap(&buf, Default).Indent()

	w.Append("one\ntwo\n\nthree")
	assert.Equal(t, "  one\n  two\n\n  three", buf.String())
	assert.False(t, w.AtLineStart())
}

func TestWhitespace(t *testing.T) {
	var buf bytes.Buffer
	w := Wrap(&buf, Default).Indent()

	w.Whitespace().Append("a").Whitespace().Whitespace().Append("b ").Whitespace().Append("c").Newline()
	w.Whitespace().Append("d").Newline()

	assert.Equal(t, "  a b c\n  d\n", buf.String())
}

func TestWrapReusesWriter(t *testing.T) {
	sink := &closeCounter{}
	root := Wrap(sink, Default)
	root.Append("start")

	nested := Wrap(root, Default.Increase())
	assert.Equal(t, 1, nested.Level())
	nested.Append(" more").Newline()
	nested.Append("next").Newline()

	require.NoError(t, nested.Close())
	require.NoError(t, root.Close())
	assert.Equal(t, "start more\n  next\n", sink.String())
	assert.Equal(t, 1, sink.closes)
}

func TestCloseOnce(t *testing.T) {
	sink := &closeCounter{}
	w := Wrap(sink, Default)
	views := []*Writer{w, w.Indent(), w.Indent().Indent(), w.Indent().Unindent()}

	for _, v := range views {
		require.NoError(t, v.Close())
	}
	assert.Equal(t, 1, sink.closes)

	w.Append("late")
	assert.ErrorIs(t, w.Err(), ErrClosed)
}

func TestStickyError(t *testing.T) {
	boom := errors.New("disk full")
	sink := &failingWriter{n: 2, err: boom}
	w := Wrap(sink, Default)

	w.Append("a").Newline() // two writes succeed
	w.Indent().Append("b")  // indentation write fails
	w.Append("c").Newline()

	assert.ErrorIs(t, w.Err(), boom)
	assert.ErrorIs(t, w.Indent().Err(), boom)
	assert.Equal(t, 2, sink.seen)
	assert.ErrorIs(t, w.Close(), boom)
}

func TestWriteImplementsIOWriter(t *testing.T) {
	var buf bytes.Buffer
	w := Wrap(&buf, Tabs()).Indent()

	n, err := w.Write([]byte("x\ny\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "\tx\n\ty\n", buf.String())
}

func TestIndentation(t *testing.T) {
	ind := Spaces(4)
	assert.Equal(t, "    ", ind.Unit())
	assert.Equal(t, "", ind.String())
	assert.Equal(t, "        ", ind.Increase().Increase().String())
	assert.Equal(t, 0, ind.Decrease().Level)

	assert.Equal(t, "", Indentation{}.Unit())
	assert.Equal(t, "  ", Indentation{Width: 2}.Unit())
}
