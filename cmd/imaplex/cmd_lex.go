package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mailwire/imaplex/internal/dump"
	"github.com/mailwire/imaplex/internal/term"
	"github.com/mailwire/imaplex/lexer"
)

func lexCmd() *cobra.Command {
	var (
		format string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "lex <file|->",
		Short: "Tokenize a recorded IMAP server transcript and print the tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var in io.Reader
			if args[0] == "-" {
				in = os.Stdin
			} else {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(err, "open transcript")
				}
				defer f.Close()
				in = f
			}

			rows, lexErr := dump.Collect(lexer.New(in))
			logrus.WithFields(logrus.Fields{"rows": len(rows), "failed": lexErr != nil}).
				Debug("tokenized transcript")

			switch format {
			case "ndjson":
				if err := dump.Write(os.Stdout, rows); err != nil {
					return errors.Wrap(err, "write dump")
				}
			case "pretty":
				term.Printf("%s", dump.DebugFormat(rows, limit))
			default:
				return errors.Errorf("unknown --format=%q (want pretty or ndjson)", format)
			}

			// The dump is still printed above so the failure point is
			// visible in context; the error decides the exit code.
			return lexErr
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format: pretty|ndjson")
	cmd.Flags().IntVar(&limit, "limit", 0, "print at most N rows (pretty only, 0 = all)")
	return cmd
}
