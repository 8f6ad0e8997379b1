package dump

import (
	"strings"

	"github.com/mailwire/imaplex/internal/term"
)

// DiffRow is one aligned line of left-vs-right tokens (by index).
type DiffRow struct {
	Index int
	Left  Row
	Right Row
	Equal bool
}

// BuildDiff aligns two dumps index-wise; the result length is the longer
// of the two. Offsets are ignored for equality so dumps of the same bytes
// recorded through differently chunked streams still compare equal.
func BuildDiff(left, right []Row) []DiffRow {
	n := len(left)
	if len(right) > n {
		n = len(right)
	}
	rows := make([]DiffRow, n)
	for i := 0; i < n; i++ {
		var l, r Row
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		rows[i] = DiffRow{
			Index: i,
			Left:  l,
			Right: r,
			Equal: l.Kind == r.Kind && l.Text == r.Text && l.Key == r.Key,
		}
	}
	return rows
}

// Mismatches counts unequal rows.
func Mismatches(rows []DiffRow) int {
	n := 0
	for _, r := range rows {
		if !r.Equal {
			n++
		}
	}
	return n
}

// FormatDiff pretty prints a side-by-side diff table. If limit > 0, only
// the first limit mismatching rows are printed; equal rows are elided.
func FormatDiff(rows []DiffRow, limit int) string {
	var b strings.Builder

	term.Wprintf(&b, "%-6s | %-9s | %-30s || %-9s | %-30s\n", "idx", "L KIND", "L TEXT", "R KIND", "R TEXT")
	term.Wprintf(&b, "%s\n", strings.Repeat("-", 6+3+9+3+30+3+2+3+9+3+30))

	printed := 0
	for _, r := range rows {
		if r.Equal {
			continue
		}
		if limit > 0 && printed >= limit {
			term.Wprintf(&b, "... (%d more mismatches)\n", Mismatches(rows)-printed)
			break
		}
		lKind, rKind := r.Left.Kind, r.Right.Kind
		if lKind == "" {
			lKind = "-"
		}
		if rKind == "" {
			rKind = "-"
		}
		term.Wprintf(&b, "%-6d | %-9s | %-30s || %-9s | %-30s\n",
			r.Index, lKind, "'"+clip(r.Left.Text)+"'", rKind, "'"+clip(r.Right.Text)+"'")
		printed++
	}
	if printed == 0 {
		term.Wprintf(&b, "token streams match (%d rows)\n", len(rows))
	}
	return b.String()
}
