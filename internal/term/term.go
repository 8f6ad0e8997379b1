// Package term holds print helpers that deliberately ignore (n, err)
// results so linters don't flag every fmt call on stdout/stderr.
package term

import (
	"fmt"
	"io"
	"os"
	"strings"
)

func Printf(format string, a ...any)  { _, _ = fmt.Printf(format, a...) }
func Println(a ...any)                { _, _ = fmt.Println(a...) }
func Eprintf(format string, a ...any) { _, _ = fmt.Fprintf(os.Stderr, format, a...) }
func Eprintln(a ...any)               { _, _ = fmt.Fprintln(os.Stderr, a...) }

// Wprintf writes formatted text to any io.Writer.
func Wprintf(w io.Writer, format string, a ...any) { _, _ = fmt.Fprintf(w, format, a...) }

// Bprintf writes formatted text into a strings.Builder.
func Bprintf(b *strings.Builder, format string, a ...any) { _, _ = fmt.Fprintf(b, format, a...) }
