package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guangfu250923/fieldsync/cmd/fieldsync/app"
	"github.com/guangfu250923/fieldsync/pkg/placemarks"
	"github.com/guangfu250923/fieldsync/pkg/resources"
)

// newSyncCommand builds the sync subcommand. It runs the full pipeline for
// one resource type, or for every type in order when asked for "all".
func newSyncCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync [water|medical|restroom|shower|all]",
		Short: "Plan create and update requests for one or all facility types",
		Long: `Sync normalizes the survey placemarks for the selected facility type,
fetches the matching remote collection, and writes three artifacts per type:
a source snapshot CSV, a remote snapshot CSV, and a JSON plan of the HTTP
requests that would reconcile the two.

With no argument, or with "all", every facility type runs in a fixed order.`,
		Example: `  fieldsync sync water
  fieldsync sync all -i placemarks.csv -o out/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selection := "all"
			if len(args) == 1 {
				selection = args[0]
			}

			selected, err := selectResources(a.Registry(), selection)
			if err != nil {
				return err
			}

			pms, err := readPlacemarks(a)
			if err != nil {
				return err
			}

			a.Pipeline().RunAll(cmd.Context(), selected, pms)
			return nil
		},
	}
}

// selectResources resolves a command-line selection into resource schemas,
// preserving the fixed execution order for "all".
func selectResources(registry *resources.Registry, selection string) ([]*resources.Resource, error) {
	if selection == "all" {
		return registry.All(), nil
	}

	res, ok := registry.Get(resources.Type(selection))
	if !ok {
		return nil, fmt.Errorf("unknown facility type %q (expected water, medical, restroom, shower, or all)", selection)
	}
	return []*resources.Resource{res}, nil
}

// readPlacemarks loads the input CSV once and logs its summary. A file that
// cannot be read or parsed aborts the run; individual bad rows do not.
func readPlacemarks(a *app.App) ([]placemarks.Placemark, error) {
	pms, err := placemarks.ReadFile(a.Config().InputFile)
	if err != nil {
		return nil, err
	}

	summary := placemarks.Summarize(pms)
	event := a.Logger().Info().
		Str("file", a.Config().InputFile).
		Int("total", summary.Total).
		Int("with_coordinates", summary.WithCoords).
		Int("without_coordinates", summary.WithoutCoords)
	if len(summary.MissingNames) > 0 {
		event = event.Strs("missing_coordinates", summary.MissingNames)
	}
	event.Msg("loaded placemarks")

	return pms, nil
}
