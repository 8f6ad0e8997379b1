package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mailwire/imaplex/internal/term"
)

var flagVerbose bool

func main() {
	root := &cobra.Command{
		Use:           "imaplex",
		Short:         "imaplex — IMAP stream tokenizer tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logrus.SetOutput(os.Stderr)
			logrus.SetLevel(logrus.WarnLevel)
			if flagVerbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
	root.AddCommand(lexCmd(), diffCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		term.Eprintf("imaplex: %v\n", err)
		os.Exit(1)
	}
}
