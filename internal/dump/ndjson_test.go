package dump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailwire/imaplex/lexer"
)

func TestCollectWriteParseRoundTrip(t *testing.T) {
	const transcript = "* OK [CAPABILITY IMAP4rev1] ready\r\n{3}\r\nabc \"q\"\r\n"
	rows, err := Collect(lexer.New(strings.NewReader(transcript)))
	require.NoError(t, err)
	require.Equal(t, "EOF", rows[len(rows)-1].Kind, "dumps are self-delimiting")

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, rows))

	parsed, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, rows, parsed)
}

func TestCollectRecordsFailure(t *testing.T) {
	rows, err := Collect(lexer.New(strings.NewReader("OK \"never closed")))
	require.Error(t, err)
	last := rows[len(rows)-1]
	assert.Equal(t, "ERR", last.Kind)
	assert.Equal(t, lexer.KeyUnterminatedQuote, last.Key)
	assert.Equal(t, 3, last.Offset)
}

func TestParseSkipsMalformedLines(t *testing.T) {
	in := "\ufeff{\"kind\":\"ATOM\",\"text\":\"OK\",\"offset\":0}\n" +
		"not json at all\n" +
		"\n" +
		"{\"kind\":\"CRLF\",\"text\":\"\\r\\n\",\"offset\":2}\n"
	rows, err := Parse(strings.NewReader(in))
	require.Error(t, err, "malformed lines are reported")
	assert.Contains(t, err.Error(), "ignored 1 malformed")
	require.Len(t, rows, 2)
	assert.Equal(t, "ATOM", rows[0].Kind)
	assert.Equal(t, "CRLF", rows[1].Kind)
}

func TestDebugFormat(t *testing.T) {
	rows := []Row{
		{Kind: "ATOM", Text: "OK", Offset: 2},
		{Kind: "LITERAL", Text: "a\r\nb" + strings.Repeat("x", 60), Offset: 5},
		{Kind: "EOF", Offset: 70},
	}
	out := DebugFormat(rows, 0)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ATOM")
	assert.Contains(t, lines[1], `a\r\nb`, "control bytes are escaped for display")
	assert.Contains(t, lines[1], "...", "long texts are clipped")
	assert.Contains(t, lines[2], "EOF")

	assert.Equal(t, lines[0]+"\n"+lines[1]+"\n", DebugFormat(rows, 2))
}

func TestBuildDiff(t *testing.T) {
	left := []Row{
		{Kind: "ATOM", Text: "OK", Offset: 0},
		{Kind: "NUMBER", Text: "12", Offset: 3},
		{Kind: "EOF", Offset: 5},
	}
	right := []Row{
		{Kind: "ATOM", Text: "OK", Offset: 100}, // offsets don't matter
		{Kind: "NUMBER", Text: "13", Offset: 3},
	}
	rows := BuildDiff(left, right)
	require.Len(t, rows, 3)
	assert.True(t, rows[0].Equal)
	assert.False(t, rows[1].Equal)
	assert.False(t, rows[2].Equal, "missing right row is a mismatch")
	assert.Equal(t, 2, Mismatches(rows))

	out := FormatDiff(rows, 1)
	assert.Contains(t, out, "'12'")
	assert.Contains(t, out, "1 more mismatch")
}

func TestFormatDiffEqual(t *testing.T) {
	rows := BuildDiff(
		[]Row{{Kind: "EOF"}},
		[]Row{{Kind: "EOF"}},
	)
	out := FormatDiff(rows, 0)
	assert.Contains(t, out, "token streams match (1 rows)")
}
