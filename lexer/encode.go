package lexer

import (
	"strconv"
	"strings"
)

// Encode renders the token back into its wire form: payload plus the
// kind-appropriate delimiters the lexer stripped. Re-tokenizing the result
// yields an identical token, which is the property the dump and diff
// tooling lean on.
func (t Token) Encode() string {
	switch t.Kind {
	case KindEOF:
		return ""
	case KindQuoted:
		var b strings.Builder
		b.WriteByte('"')
		for i := 0; i < len(t.Text); i++ {
			c := t.Text[i]
			if c == '"' || c == '\\' {
				b.WriteByte('\\')
			}
			b.WriteByte(c)
		}
		b.WriteByte('"')
		return b.String()
	case KindLiteral:
		return "{" + strconv.Itoa(len(t.Text)) + "}\r\n" + t.Text
	case KindAddress:
		return "<" + t.Text + ">"
	case KindCrlf:
		return "\r\n"
	case KindListOpen:
		return "("
	case KindListClose:
		return ")"
	case KindCodeOpen:
		return "["
	case KindCodeClose:
		return "]"
	default: // KindAtom, KindNumber
		return t.Text
	}
}
