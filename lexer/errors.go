package lexer

import "fmt"

// Two error families leave Next, and callers must be able to tell them
// apart: a ParseError means the byte stream itself diverged from IMAP's
// lexical grammar (usually fatal to the session), while a StreamError
// means the text so far was fine but the transport could not supply the
// bytes it promised (a reconnect may be the right response upstream).
// Both are plain result values; nothing in this package panics on input.

// Stable keys for parse errors, so tooling can match on the failure class
// without string-scraping messages.
const (
	KeyLineEnding        = "malformed_line_ending"
	KeyUnterminatedQuote = "unterminated_quoted_string"
	KeyUnterminatedAddr  = "unterminated_address"
	KeyLiteralHeader     = "malformed_literal_header"
)

// ParseError reports protocol text that cannot be tokenized as IMAP.
// Offset is the absolute stream offset where the offending construct
// began; Buffer is the lexer's retained bytes at the time of failure, kept
// for debugging an out-of-sync session.
type ParseError struct {
	Key    string
	Msg    string
	Offset int
	Buffer string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("imap lex: offset %d: %s", e.Offset, e.Msg)
}

// StreamError reports a transport that ended or failed while bytes were
// still owed, such as a literal header promising more data than the
// stream delivered. Err is the underlying I/O error, nil when the stream
// simply hit clean EOF early.
type StreamError struct {
	Wanted int
	Got    int
	Err    error
}

func (e *StreamError) Error() string {
	switch {
	case e.Wanted == 0 && e.Err != nil:
		return fmt.Sprintf("imap lex: stream: %v", e.Err)
	case e.Err != nil:
		return fmt.Sprintf("imap lex: stream failed with %d of %d promised bytes delivered: %v", e.Got, e.Wanted, e.Err)
	default:
		return fmt.Sprintf("imap lex: stream ended with %d of %d promised bytes delivered", e.Got, e.Wanted)
	}
}

func (e *StreamError) Unwrap() error { return e.Err }
