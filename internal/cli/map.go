package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gougewatch/internal/flags"
	"gougewatch/internal/layers"
)

var mapLayerID string

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Render the choropleth map layers",
	Long: `Render only the map sections: one choropleth layer per configured region
set (supervisor districts, council districts, ZIP codes, cities by default).

The console shows each layer's ranked region table; use --html for the
interactive Leaflet maps.

Examples:
  export SUPABASE_KEY="<your_key>"
  gougewatch map --url https://myproject.supabase.co --html maps.html

  # A single layer
  gougewatch map --url https://myproject.supabase.co --layer cities --html cities.html
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		selector, err := mapSectionSelector(cfg.Datasets.LayersFile, mapLayerID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		cfg.Sections.Selector = selector
		runDashboard(cfg)
	},
}

// mapSectionSelector builds the --sections selector covering the configured
// map layers, optionally narrowed to a single layer ID.
func mapSectionSelector(layersFile, layerID string) (string, error) {
	layerSet, err := layers.Load(layersFile)
	if err != nil {
		return "", err
	}

	if layerID != "" {
		for _, l := range layerSet {
			if l.ID == layerID {
				return "map-" + l.ID, nil
			}
		}
		ids := make([]string, 0, len(layerSet))
		for _, l := range layerSet {
			ids = append(ids, l.ID)
		}
		return "", fmt.Errorf("unknown layer %q (available: %s)", layerID, strings.Join(ids, ", "))
	}

	ids := make([]string, 0, len(layerSet))
	for _, l := range layerSet {
		ids = append(ids, "map-"+l.ID)
	}
	return strings.Join(ids, ","), nil
}

func init() {
	rootCmd.AddCommand(mapCmd)

	addSourceFlags(mapCmd)
	mapCmd.Flags().StringVar(&cfg.Datasets.LayersFile, flags.FlagLayersFile, "", "YAML file defining the map layer set (default: built-in LA County layers)")
	mapCmd.Flags().StringVar(&mapLayerID, flags.FlagLayer, "", "Render a single layer by ID (e.g. cities)")
	addOutputFlags(mapCmd)
	addRuntimeFlags(mapCmd)
}
