package lexer_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	lx "github.com/mailwire/imaplex/lexer"
)

// Conformance run over a realistic multi-line session fragment: untagged
// greeting, EXISTS, a FETCH with flags, a literal body and an address, and
// the tagged completion.
func TestSessionTranscript(t *testing.T) {
	transcript := "* OK [CAPABILITY IMAP4rev1 LITERAL+] Dovecot ready.\r\n" +
		"* 172 EXISTS\r\n" +
		"* 12 FETCH (FLAGS (\\Seen \\Answered) INTERNALDATE \"17-Jul-1996 02:44:25 -0700\" " +
		"ENVELOPE (<johndoe@email.com>) RFC822.SIZE 4827 BODY[HEADER] {26}\r\n" +
		"Subject: hi\r\nDate: today\r\n)\r\n" +
		"a001 OK FETCH completed\r\n"

	type tk struct {
		kind lx.Kind
		text string
	}
	want := []tk{
		{lx.KindAtom, "*"}, {lx.KindAtom, "OK"},
		{lx.KindCodeOpen, "["}, {lx.KindAtom, "CAPABILITY"}, {lx.KindAtom, "IMAP4rev1"}, {lx.KindAtom, "LITERAL+"}, {lx.KindCodeClose, "]"},
		{lx.KindAtom, "Dovecot"}, {lx.KindAtom, "ready."}, {lx.KindCrlf, "\r\n"},

		{lx.KindAtom, "*"}, {lx.KindNumber, "172"}, {lx.KindAtom, "EXISTS"}, {lx.KindCrlf, "\r\n"},

		{lx.KindAtom, "*"}, {lx.KindNumber, "12"}, {lx.KindAtom, "FETCH"},
		{lx.KindListOpen, "("},
		{lx.KindAtom, "FLAGS"}, {lx.KindListOpen, "("}, {lx.KindAtom, `\Seen`}, {lx.KindAtom, `\Answered`}, {lx.KindListClose, ")"},
		{lx.KindAtom, "INTERNALDATE"}, {lx.KindQuoted, "17-Jul-1996 02:44:25 -0700"},
		{lx.KindAtom, "ENVELOPE"}, {lx.KindListOpen, "("}, {lx.KindAddress, "johndoe@email.com"}, {lx.KindListClose, ")"},
		{lx.KindAtom, "RFC822.SIZE"}, {lx.KindNumber, "4827"},
		{lx.KindAtom, "BODY"}, {lx.KindCodeOpen, "["}, {lx.KindAtom, "HEADER"}, {lx.KindCodeClose, "]"},
		{lx.KindLiteral, "Subject: hi\r\nDate: today\r\n"},
		{lx.KindListClose, ")"}, {lx.KindCrlf, "\r\n"},

		{lx.KindAtom, "a001"}, {lx.KindAtom, "OK"}, {lx.KindAtom, "FETCH"}, {lx.KindAtom, "completed"}, {lx.KindCrlf, "\r\n"},
	}

	for _, chunk := range []int{len(transcript), 1, 7} {
		l := lx.New(&slowReader{s: transcript, chunk: chunk})
		for i, w := range want {
			tok, err := l.Next()
			require.NoError(t, err, "chunk=%d token %d", chunk, i)
			require.Equal(t, w.kind, tok.Kind, "chunk=%d token %d", chunk, i)
			require.Equal(t, w.text, tok.Text, "chunk=%d token %d", chunk, i)
		}
		tok, err := l.Next()
		require.NoError(t, err)
		require.Equal(t, lx.KindEOF, tok.Kind)
	}
}

// slowReader delivers at most chunk bytes per read.
type slowReader struct {
	s     string
	chunk int
}

func (r *slowReader) Read(p []byte) (int, error) {
	if len(r.s) == 0 {
		return 0, io.EOF
	}
	n := r.chunk
	if n > len(r.s) {
		n = len(r.s)
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, r.s[:n])
	r.s = r.s[n:]
	return n, nil
}
