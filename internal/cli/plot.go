package cli

import (
	"github.com/spf13/cobra"
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render the headline metrics and gouging timeline",
	Long: `Render only the summary sections: headline metrics and the cumulative
gouged listings timeline.

Equivalent to:
  gougewatch render --sections headline-metrics,gouged-timeline

Examples:
  export SUPABASE_KEY="<your_key>"
  gougewatch plot --url https://myproject.supabase.co
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg.Sections.Selector = "headline-metrics,gouged-timeline"
		runDashboard(cfg)
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)

	addSourceFlags(plotCmd)
	addOutputFlags(plotCmd)
	addRuntimeFlags(plotCmd)
}
