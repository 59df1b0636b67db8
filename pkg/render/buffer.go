package render

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

// ErrWriterClosed is returned by writes after Close.
var ErrWriterClosed = errors.New("render: write to closed writer")

// BufferingWriter passes every write through to a delegate while keeping a
// copy of everything written. The copy stays available after Close.
type BufferingWriter struct {
	mu       sync.Mutex
	delegate io.Writer
	buf      bytes.Buffer
	closed   bool
	closeErr error
}

// NewBufferingWriter returns a writer passing through to delegate. A nil
// delegate only buffers.
func NewBufferingWriter(delegate io.Writer) *BufferingWriter {
	if delegate == nil {
		delegate = io.Discard
	}
	return &BufferingWriter{delegate: delegate}
}

// Write writes p to the delegate and buffers the bytes the delegate
// accepted.
func (b *BufferingWriter) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return 0, ErrWriterClosed
	}
	n, err := b.delegate.Write(p)
	b.buf.Write(p[:n])
	return n, err
}

// String returns the buffered text.
func (b *BufferingWriter) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Len returns the number of buffered bytes.
func (b *BufferingWriter) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Len()
}

// Closed reports whether Close was called.
func (b *BufferingWriter) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Close closes the delegate once if it implements io.Closer. Later calls
// return the first result.
func (b *BufferingWriter) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return b.closeErr
	}
	b.closed = true
	if c, ok := b.delegate.(io.Closer); ok {
		b.closeErr = c.Close()
	}
	return b.closeErr
}
