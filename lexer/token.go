package lexer

// Kind enumerates token kinds produced by the lexer.
// The set is closed: IMAP's lexical shapes are fixed by RFC 3501, so
// consumers switch on Kind exhaustively.
type Kind int

const (
	// KindEOF marks clean end-of-input: the stream reported EOF and the
	// buffer is fully drained. It is not an error.
	KindEOF Kind = iota

	// Payload-carrying kinds
	KindAtom    // OK, *, \Seen, LITERAL+, 0.002
	KindNumber  // 1000, 23 (all ASCII digits)
	KindQuoted  // "..." with \" and \\ resolved
	KindLiteral // {n}CRLF followed by exactly n raw bytes
	KindAddress // <local@domain>

	// Structural single-byte delimiters
	KindListOpen  // (
	KindListClose // )
	KindCodeOpen  // [  (response code)
	KindCodeClose // ]

	KindCrlf // \r\n
)

var kindNames = [...]string{
	KindEOF:       "EOF",
	KindAtom:      "ATOM",
	KindNumber:    "NUMBER",
	KindQuoted:    "QUOTED",
	KindLiteral:   "LITERAL",
	KindAddress:   "ADDRESS",
	KindListOpen:  "LPAREN",
	KindListClose: "RPAREN",
	KindCodeOpen:  "LBRACKET",
	KindCodeClose: "RBRACKET",
	KindCrlf:      "CRLF",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "INVALID"
	}
	return kindNames[k]
}

// Token is a single lexeme with its absolute stream offset.
// Text holds the decoded payload only: delimiters, surrounding quotes and
// the {n} literal header are never part of it, and quoted-string escapes
// are already resolved. Text is an owned copy, never a view into the
// lexer's buffer, so it stays valid after the buffer compacts.
type Token struct {
	Kind   Kind
	Text   string
	Offset int
}
