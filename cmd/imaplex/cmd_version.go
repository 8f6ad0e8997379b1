package main

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mailwire/imaplex/internal/term"
)

// version is overridable at build time:
//
//	go build -ldflags "-X main.version=v1.2.3" ./cmd/imaplex
var version = "dev"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			term.Printf("imaplex %s %s/%s\n", version, runtime.GOOS, runtime.GOARCH)
		},
	}
}
