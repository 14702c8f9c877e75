package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/guangfu250923/fieldsync/cmd/fieldsync/app"
)

// newVersionCommand builds the version subcommand.
func newVersionCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "fieldsync %s\n", a.Version())
			fmt.Fprintf(out, "go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
