// Package cmd defines the fieldsync command tree. Commands are thin: they
// parse arguments, resolve resource schemas, and hand off to the pipeline
// wired by the app package.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/guangfu250923/fieldsync/cmd/fieldsync/app"
)

// NewRootCommand builds the root command with all subcommands attached.
func NewRootCommand(a *app.App) *cobra.Command {
	root := &cobra.Command{
		Use:   "fieldsync",
		Short: "Reconcile field survey placemarks against the relief map API",
		Long: `Fieldsync reads a placemark export from field surveys, compares each
facility against the live relief map API, and emits snapshot CSVs plus a
replayable JSON plan of the create and update requests that would bring the
remote dataset in line with the survey.

No write request is ever sent; the plan files are the output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	config := a.Config()
	flags := root.PersistentFlags()
	flags.StringVarP(&config.InputFile, "input", "i", config.InputFile, "placemark CSV exported from the survey map")
	flags.StringVarP(&config.OutputDir, "output-dir", "o", config.OutputDir, "directory for snapshot and plan files")
	flags.StringVar(&config.BaseURL, "base-url", config.BaseURL, "relief map API base URL")

	root.AddCommand(newSyncCommand(a))
	root.AddCommand(newCSVCommand(a))
	root.AddCommand(newVersionCommand(a))

	return root
}
