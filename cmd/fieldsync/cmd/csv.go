package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guangfu250923/fieldsync/cmd/fieldsync/app"
	"github.com/guangfu250923/fieldsync/pkg/placemarks"
)

// newCSVCommand builds the csv subcommand, a dry inspection of the input
// file: parse it, print counts, touch nothing remote.
func newCSVCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "csv",
		Short: "Parse the placemark CSV and report its contents",
		Long: `Csv reads the input file, validates its columns, and prints how many
placemarks were found and how many are missing coordinates. Use it to check
an export before running sync.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pms, err := placemarks.ReadFile(a.Config().InputFile)
			if err != nil {
				return err
			}

			summary := placemarks.Summarize(pms)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d placemarks\n", a.Config().InputFile, summary.Total)
			fmt.Fprintf(out, "  with coordinates:    %d\n", summary.WithCoords)
			fmt.Fprintf(out, "  without coordinates: %d\n", summary.WithoutCoords)
			for _, name := range summary.MissingNames {
				fmt.Fprintf(out, "    - %s\n", name)
			}
			return nil
		},
	}
}
