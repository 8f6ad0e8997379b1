package lexer

import (
	"io"

	"github.com/pkg/errors"
)

const (
	// readChunk is how much we ask the stream for per refill. The stream
	// may return less (or more is impossible with io.Reader), including
	// zero bytes without EOF, which just means "try again".
	readChunk = 4096

	// compactAt is the consumed-prefix size past which the buffer slides
	// its contents down, so a long-lived connection doesn't grow the
	// backing array without bound.
	compactAt = 4096
)

// buffer is an append-only byte store with a monotone read cursor. It
// absorbs the mismatch between arbitrary network chunk boundaries and
// protocol-unit boundaries: the lexer asks for "at least k more bytes"
// and the buffer pulls from the stream however many times that takes.
type buffer struct {
	r    io.Reader
	data []byte
	pos  int // cursor; data[:pos] is consumed, data[pos:] is not
	base int // absolute stream offset of data[0]

	eof bool  // stream reported clean end-of-data
	err error // sticky transport error, never io.EOF
}

func newBuffer(r io.Reader) *buffer {
	return &buffer{r: r}
}

// offset is the absolute stream offset of the cursor.
func (b *buffer) offset() int { return b.base + b.pos }

// avail is the number of buffered, unconsumed bytes.
func (b *buffer) avail() int { return len(b.data) - b.pos }

// atEOF reports that the stream is done and everything buffered is consumed.
func (b *buffer) atEOF() bool { return b.eof && b.avail() == 0 }

// failed returns the sticky transport error, if any.
func (b *buffer) failed() error { return b.err }

// at returns the unconsumed byte i positions past the cursor.
// The caller must have established i < avail() via ensure.
func (b *buffer) at(i int) byte { return b.data[b.pos+i] }

// ensure pulls from the stream until at least k unconsumed bytes are
// buffered, the stream ends, or the transport fails. A single read may
// deliver fewer or more bytes than the shortfall; availability is
// re-evaluated after every pull.
func (b *buffer) ensure(k int) {
	for b.avail() < k && !b.eof && b.err == nil {
		b.fill()
	}
}

// fill performs one read, appending whatever arrives. A read may return
// bytes together with an error; the bytes are kept either way.
func (b *buffer) fill() {
	chunk := make([]byte, readChunk)
	n, err := b.r.Read(chunk)
	if n > 0 {
		b.data = append(b.data, chunk[:n]...)
	}
	switch {
	case err == nil:
	case err == io.EOF:
		b.eof = true
	default:
		b.err = errors.Wrap(err, "read stream")
	}
}

// take consumes n bytes and returns them as an owned string. The result
// never aliases the backing array, so later compaction cannot touch it.
func (b *buffer) take(n int) string {
	s := string(b.data[b.pos : b.pos+n])
	b.skip(n)
	return s
}

// skip consumes n bytes without materializing them.
func (b *buffer) skip(n int) {
	b.pos += n
	b.compact()
}

// compact drops the consumed prefix once it is large enough to matter.
// Only the cursor-relative view changes; absolute offsets are preserved
// through base.
func (b *buffer) compact() {
	if b.pos < compactAt {
		return
	}
	n := copy(b.data, b.data[b.pos:])
	b.data = b.data[:n]
	b.base += b.pos
	b.pos = 0
}

// contents returns a copy of everything currently retained, for error
// diagnostics.
func (b *buffer) contents() string {
	return string(b.data)
}
