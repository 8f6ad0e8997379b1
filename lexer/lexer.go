// Package lexer tokenizes the raw byte stream an IMAP server sends: the
// mixed text/binary wire form of RFC 3501-family responses. It classifies
// lexical shape only; whether a token sequence forms a valid response is
// the parser's concern, one layer up.
package lexer

import (
	"io"
	"strconv"
)

// Lexer scans an IMAP server stream into tokens. It owns its buffer and
// stream handle for the life of a connection and is single-caller: one
// token is fully classified and returned before the next call begins. The
// only point that can block is the stream read issued on refill.
type Lexer struct {
	buf *buffer
}

// New returns a Lexer reading from r. Clean end-of-data is io.EOF from r;
// any other read error is reported as a StreamError.
func New(r io.Reader) *Lexer {
	return &Lexer{buf: newBuffer(r)}
}

// Next returns the next token. At clean end-of-input it returns a KindEOF
// token and nil error, repeatably. Token identity is independent of how
// the stream chunks its reads: the buffer pulls until each token can be
// decided whole.
func (lx *Lexer) Next() (Token, error) {
	lx.skipBlank()

	lx.buf.ensure(1)
	if lx.buf.avail() == 0 {
		if err := lx.buf.failed(); err != nil {
			return Token{}, &StreamError{Err: err}
		}
		return Token{Kind: KindEOF, Offset: lx.buf.offset()}, nil
	}

	start := lx.buf.offset()
	switch c := lx.buf.at(0); c {
	case '\r':
		return lx.scanCrlf(start)
	case '\n':
		// A conforming server never sends a bare LF; treat it like a
		// broken line ending rather than swallowing it.
		return Token{}, lx.parseErr(KeyLineEnding, "bare LF without preceding CR", start)
	case '(':
		return lx.delim(KindListOpen, "(", start), nil
	case ')':
		return lx.delim(KindListClose, ")", start), nil
	case '[':
		return lx.delim(KindCodeOpen, "[", start), nil
	case ']':
		return lx.delim(KindCodeClose, "]", start), nil
	case '"':
		return lx.scanQuoted(start)
	case '<':
		return lx.scanAddress(start)
	case '{':
		return lx.scanLiteral(start)
	default:
		return lx.scanAtom(start)
	}
}

// skipBlank consumes runs of space and tab. CR and LF are structurally
// significant and are never skipped.
func (lx *Lexer) skipBlank() {
	for {
		lx.buf.ensure(1)
		if lx.buf.avail() == 0 {
			return
		}
		if c := lx.buf.at(0); c != ' ' && c != '\t' {
			return
		}
		lx.buf.skip(1)
	}
}

func (lx *Lexer) delim(kind Kind, text string, start int) Token {
	lx.buf.skip(1)
	return Token{Kind: kind, Text: text, Offset: start}
}

// scanCrlf handles a CR at the cursor: the next byte must be LF. Anything
// else, including end-of-data, is a hard protocol violation.
func (lx *Lexer) scanCrlf(start int) (Token, error) {
	lx.buf.ensure(2)
	if lx.buf.avail() < 2 {
		if err := lx.buf.failed(); err != nil {
			return Token{}, &StreamError{Err: err}
		}
		return Token{}, lx.parseErr(KeyLineEnding, "CR at end of input, expected LF", start)
	}
	if c := lx.buf.at(1); c != '\n' {
		return Token{}, lx.parseErr(KeyLineEnding, "CR not followed by LF (got "+strconv.QuoteRune(rune(c))+")", start)
	}
	lx.buf.skip(2)
	return Token{Kind: KindCrlf, Text: "\r\n", Offset: start}, nil
}

// scanQuoted reads a double-quoted string. A backslash escapes the byte
// after it: the backslash is dropped and the byte kept literally, which
// resolves the two meaningful escapes \" and \\. The closing quote is
// consumed but not part of the payload.
func (lx *Lexer) scanQuoted(start int) (Token, error) {
	var out []byte
	i := 1 // past the opening quote
	for {
		lx.buf.ensure(i + 1)
		if lx.buf.avail() <= i {
			if err := lx.buf.failed(); err != nil {
				return Token{}, &StreamError{Err: err}
			}
			return Token{}, lx.parseErr(KeyUnterminatedQuote, "unterminated quoted string", start)
		}
		switch c := lx.buf.at(i); c {
		case '\\':
			lx.buf.ensure(i + 2)
			if lx.buf.avail() <= i+1 {
				if err := lx.buf.failed(); err != nil {
					return Token{}, &StreamError{Err: err}
				}
				return Token{}, lx.parseErr(KeyUnterminatedQuote, "unterminated quoted string", start)
			}
			out = append(out, lx.buf.at(i+1))
			i += 2
		case '"':
			lx.buf.skip(i + 1)
			return Token{Kind: KindQuoted, Text: string(out), Offset: start}, nil
		default:
			out = append(out, c)
			i++
		}
	}
}

// scanAddress reads an angle-bracketed address; the payload is the
// interior with both brackets stripped.
func (lx *Lexer) scanAddress(start int) (Token, error) {
	var out []byte
	i := 1 // past '<'
	for {
		lx.buf.ensure(i + 1)
		if lx.buf.avail() <= i {
			if err := lx.buf.failed(); err != nil {
				return Token{}, &StreamError{Err: err}
			}
			return Token{}, lx.parseErr(KeyUnterminatedAddr, "unterminated address", start)
		}
		c := lx.buf.at(i)
		if c == '>' {
			lx.buf.skip(i + 1)
			return Token{Kind: KindAddress, Text: string(out), Offset: start}, nil
		}
		out = append(out, c)
		i++
	}
}

// scanLiteral reads a {n} header, its framing CRLF, and then exactly n raw
// bytes. The content bypasses all text scanning: whitespace, CRLF and
// control bytes inside it are payload, verbatim. The n-byte read is atomic
// with respect to tokenization; a stream that ends short of n is a
// StreamError, because the text so far was valid and it is the transport
// that failed to deliver.
func (lx *Lexer) scanLiteral(start int) (Token, error) {
	var digits []byte
	i := 1 // past '{'
	for {
		lx.buf.ensure(i + 1)
		if lx.buf.avail() <= i {
			if err := lx.buf.failed(); err != nil {
				return Token{}, &StreamError{Err: err}
			}
			return Token{}, lx.parseErr(KeyLiteralHeader, "unterminated literal header", start)
		}
		c := lx.buf.at(i)
		if c == '}' {
			i++
			break
		}
		if c < '0' || c > '9' {
			return Token{}, lx.parseErr(KeyLiteralHeader, "unexpected "+strconv.QuoteRune(rune(c))+" in literal length", start)
		}
		digits = append(digits, c)
		i++
	}
	if len(digits) == 0 {
		return Token{}, lx.parseErr(KeyLiteralHeader, "empty literal length", start)
	}
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return Token{}, lx.parseErr(KeyLiteralHeader, "literal length out of range", start)
	}

	// The header's CRLF is framing, consumed here, never emitted as a
	// separate token.
	lx.buf.ensure(i + 2)
	if lx.buf.avail() < i+2 {
		if err := lx.buf.failed(); err != nil {
			return Token{}, &StreamError{Err: err}
		}
		return Token{}, lx.parseErr(KeyLiteralHeader, "literal header not followed by CRLF", start)
	}
	if lx.buf.at(i) != '\r' || lx.buf.at(i+1) != '\n' {
		return Token{}, lx.parseErr(KeyLiteralHeader, "literal header not followed by CRLF", start)
	}
	lx.buf.skip(i + 2)

	lx.buf.ensure(n)
	if got := lx.buf.avail(); got < n {
		return Token{}, &StreamError{Wanted: n, Got: got, Err: lx.buf.failed()}
	}
	return Token{Kind: KindLiteral, Text: lx.buf.take(n), Offset: start}, nil
}

// scanAtom reads a maximal run of non-delimiter bytes. Embedded
// punctuation that is not reserved stays in the run, so \Seen, LITERAL+
// and 0.002 are each one atom. An all-digit run is a Number instead.
func (lx *Lexer) scanAtom(start int) (Token, error) {
	i := 0
	digitsOnly := true
	for {
		lx.buf.ensure(i + 1)
		if lx.buf.avail() <= i {
			if err := lx.buf.failed(); err != nil {
				// The run may be cut short by the failure; don't emit a
				// token that might be a truncated one.
				return Token{}, &StreamError{Err: err}
			}
			break // clean EOF terminates the run
		}
		c := lx.buf.at(i)
		if atomEnd(c) {
			break
		}
		if c < '0' || c > '9' {
			digitsOnly = false
		}
		i++
	}
	kind := KindAtom
	if digitsOnly {
		kind = KindNumber
	}
	return Token{Kind: kind, Text: lx.buf.take(i), Offset: start}, nil
}

// atomEnd reports whether c terminates an atom or number run. Delimiters
// end a run even with no whitespace before them; '>' and '}' do not,
// since they only close constructs that begin with '<' and '{'.
func atomEnd(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '(', ')', '[', ']', '"', '<', '{':
		return true
	}
	return false
}

// parseErr builds a ParseError snapshotting the retained buffer, so an
// out-of-sync session can be debugged from the error alone.
func (lx *Lexer) parseErr(key, msg string, off int) error {
	return &ParseError{Key: key, Msg: msg, Offset: off, Buffer: lx.buf.contents()}
}
