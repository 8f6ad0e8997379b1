// Package dump records and replays token streams as NDJSON, one token per
// line. Dumps are the interchange format for the CLI's lex and diff
// commands: tokenize a captured server transcript once, keep the dump, and
// diff later runs against it.
package dump

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mailwire/imaplex/internal/term"
	"github.com/mailwire/imaplex/lexer"
)

// Row is the NDJSON schema for one token. Example rows:
//
//	{"kind":"ATOM","text":"OK","offset":2}
//	{"kind":"ERR","text":"CR at end of input, expected LF","offset":11,"key":"malformed_line_ending"}
type Row struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Offset int    `json:"offset"`
	// Key is present on error rows only; it carries the stable failure
	// class from the lexer error types.
	Key string `json:"key,omitempty"`
}

// Collect drains src into rows. A lex failure terminates the stream with a
// single ERR row and is also returned, so callers can both persist the
// dump and fail loudly. The EOF token is recorded as the final row, which
// keeps dumps self-delimiting.
func Collect(src lexer.Source) ([]Row, error) {
	var rows []Row
	for {
		t, err := src.Next()
		if err != nil {
			rows = append(rows, errRow(err))
			return rows, err
		}
		rows = append(rows, Row{Kind: t.Kind.String(), Text: t.Text, Offset: t.Offset})
		if t.Kind == lexer.KindEOF {
			return rows, nil
		}
	}
}

func errRow(err error) Row {
	r := Row{Kind: "ERR", Text: err.Error()}
	var pe *lexer.ParseError
	var se *lexer.StreamError
	switch {
	case errors.As(err, &pe):
		r.Key = pe.Key
		r.Text = pe.Msg
		r.Offset = pe.Offset
	case errors.As(err, &se):
		r.Key = "stream"
	}
	return r
}

// Write emits rows as NDJSON.
func Write(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// Parse reads NDJSON rows from r. Lines that fail to parse as JSON are
// skipped but counted into the returned error, so a slightly mangled dump
// still yields its good rows.
func Parse(r io.Reader) ([]Row, error) {
	var rows []Row

	sc := bufio.NewScanner(r)
	// Literal payloads can make rows large; 64 KiB initial, 8 MiB max.
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	lineNo := 0
	var bad []string
	for sc.Scan() {
		lineNo++
		raw := strings.TrimSpace(sc.Text())
		// Tolerate a UTF-8 BOM, most importantly on line 1.
		raw = strings.TrimPrefix(raw, "\ufeff")
		if raw == "" {
			continue
		}
		var row Row
		if err := json.Unmarshal([]byte(raw), &row); err != nil {
			if len(bad) < 5 {
				bad = append(bad, fmt.Sprintf("L%d: %s", lineNo, raw))
			}
			continue
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return rows, err
	}
	if len(bad) > 0 {
		return rows, fmt.Errorf("ignored %d malformed NDJSON line(s), first few: %s",
			len(bad), strings.Join(bad, " | "))
	}
	return rows, nil
}

// DebugFormat returns a readable dump, "OFFSET  KIND  'text'" per row.
// If limit > 0 only the first limit rows are rendered.
func DebugFormat(rows []Row, limit int) string {
	var b strings.Builder
	n := len(rows)
	if limit > 0 && limit < n {
		n = limit
	}
	for i := 0; i < n; i++ {
		r := rows[i]
		txt := clip(r.Text)
		if txt == "" {
			term.Bprintf(&b, "%-6d %s\n", r.Offset, r.Kind)
		} else {
			term.Bprintf(&b, "%-6d %-9s '%s'\n", r.Offset, r.Kind, txt)
		}
	}
	return b.String()
}

// clip trims long texts and escapes CR/LF/TAB for one-line display.
func clip(s string) string {
	if len(s) > 40 {
		s = s[:37] + "..."
	}
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}
