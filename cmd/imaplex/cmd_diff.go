package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mailwire/imaplex/internal/dump"
	"github.com/mailwire/imaplex/internal/term"
)

func diffCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "diff <a.ndjson> <b.ndjson>",
		Short: "Compare two token dumps index-wise",
		Long: "Compare two NDJSON token dumps produced by 'imaplex lex --format=ndjson'.\n" +
			"Exits non-zero when the streams disagree, so it can back regression checks\n" +
			"against recorded sessions.",
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			left, err := readDump(args[0])
			if err != nil {
				return err
			}
			right, err := readDump(args[1])
			if err != nil {
				return err
			}

			rows := dump.BuildDiff(left, right)
			term.Printf("%s", dump.FormatDiff(rows, limit))
			if n := dump.Mismatches(rows); n > 0 {
				return errors.Errorf("%d token mismatch(es)", n)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "print at most N mismatching rows (0 = all)")
	return cmd
}

func readDump(path string) ([]dump.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open dump")
	}
	defer f.Close()

	rows, err := dump.Parse(f)
	if err != nil {
		// Malformed lines are skipped, not fatal; surface them for eyes only.
		logrus.WithField("dump", path).Warnf("parse: %v", err)
	}
	logrus.WithFields(logrus.Fields{"dump": path, "rows": len(rows)}).Debug("loaded dump")
	return rows, nil
}
