package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "gougewatch",
	Short: "Render the LA County rent gouging dashboard from Supabase data",
	Long: `GougeWatch reads rent gouging datasets from a Supabase project and renders
them as a dashboard: headline metrics, a gouging timeline, choropleth maps,
gouged listing tables, and enforcement actions.

GougeWatch is read-only: it fetches published tables and never mutates state.

Examples:
	# Show available commands and global flags
	gougewatch --help

	# Render the full dashboard to the console and an HTML page
	gougewatch render --url https://myproject.supabase.co --html dashboard.html

	# List sections
	gougewatch sections list

	# Print build info
	gougewatch version

Output:
	By default, commands write human-readable output to stdout.
	Some commands support structured output via emitter flags (see each command's --help).`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, "verbose", false, "Enable verbose logging (prints every Supabase API call and full error details)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
