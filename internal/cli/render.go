package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gougewatch/internal/config"
	"gougewatch/internal/engine"
	"gougewatch/internal/flags"
	"gougewatch/internal/logging"
	"gougewatch/internal/supabase"
)

var cfg = config.New()

const renderHelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}Usage:
  {{.UseLine}}

{{if .HasAvailableLocalFlags}}Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}Environment:
	GougeWatch authenticates to Supabase using a service key.

	Sources (in order):
	1) --key flag
	2) SUPABASE_KEY environment variable
	3) A YAML secrets file with a supabase_key entry (see --secrets-file)

  The key is sent as the PostgREST apikey header on every request and is
  never printed.

  Examples:
    # macOS/Linux
    export SUPABASE_KEY="<your_key>"
    gougewatch render --url https://myproject.supabase.co

    # Secrets file
    gougewatch render --url https://myproject.supabase.co --secrets-file secrets.yaml

    # Windows PowerShell
    $env:SUPABASE_KEY = "<your_key>"
    gougewatch render --url https://myproject.supabase.co

{{if .HasAvailableSubCommands}}Available Commands:
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.
{{end}}`

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the full dashboard",
	Long: `Render the full dashboard: headline metrics, the gouging timeline,
choropleth map layers, the gouged listings table, and enforcement actions.

GougeWatch is read-only: it fetches published tables via the Supabase
PostgREST API and never mutates state.

Authentication:
  GougeWatch uses a Supabase service key. It prefers --key, then the
  SUPABASE_KEY environment variable, then a YAML secrets file.

Output:
	Console output is controlled by --console-format (default: text).
	Structured outputs can be written via:
	- --html: write a self-contained HTML dashboard page (Leaflet maps)
	- --report: write a Markdown summary
	- --out / --out-format: write an aggregate JSON array or NDJSON stream to a file
	- --emit: write an additional structured stream to stdout (json or ndjson)
	- --no-console: suppress the console sink (use with --emit/--out for machine output)

	NDJSON mode emits one JSON object per line. Objects are lifecycle Events with a
	"type" field (run.started, dataset.fetched, section.rendered, run.finished).

Exit codes:
	0 = clean run, every section rendered
	2 = partial failure (some datasets or sections errored)
	3 = fatal error (dashboard did not render)

Examples:
  # Key via environment variable
  export SUPABASE_KEY="<your_key>"
  gougewatch render --url https://myproject.supabase.co

  # Render only the maps, to an HTML page
  gougewatch render --url https://myproject.supabase.co --sections map-cities --html maps.html

	# AI Agent: stream machine-readable events to stdout
	gougewatch render --url https://myproject.supabase.co --no-console --emit ndjson
`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 && cmd.Flags().NFlag() == 0 {
			_ = cmd.Help()
			return
		}
		runDashboard(cfg)
	},
}

// runDashboard validates config, resolves the service key, and runs the
// engine. Shared by render, plot, and map.
func runDashboard(cfg *config.Config) {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(3)
	}

	applyListingsTableOverride(cfg)

	key, _, err := supabase.ResolveServiceKey(cfg.Source.Key, cfg.Source.SecretsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve Supabase service key: %v\n", err)
		os.Exit(3)
	}

	log := logging.Nop()
	if cfg.Runtime.Verbose {
		if l, err := logging.New(); err == nil {
			log = l
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Runtime.Timeout)
	defer cancel()

	client, err := supabase.NewClient(ctx, cfg.Source.URL, key, supabase.WithVerbose(cfg.Runtime.Verbose, log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create Supabase client: %v\n", err)
		os.Exit(3)
	}

	eng := engine.NewEngine(client, log)
	code := eng.Run(ctx, cfg)
	cancel()
	os.Exit(code)
}

func applyListingsTableOverride(cfg *config.Config) {
	// --listings-table is sugar for --set listings-table.table=<name>.
	if cfg.Datasets.ListingsTable == "" {
		return
	}
	cfg.Sections.Set = append(cfg.Sections.Set, "listings-table.table="+cfg.Datasets.ListingsTable)
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cfg.Source.URL, flags.FlagURL, "", "Supabase project URL (required)")
	cmd.Flags().StringVar(&cfg.Source.Key, flags.FlagKey, "", "Supabase service key (prefer SUPABASE_KEY or --secrets-file)")
	cmd.Flags().StringVar(&cfg.Source.SecretsFile, flags.FlagSecretsFile, "", "YAML secrets file with a supabase_key entry")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, "text", "Console output format: text|json|ndjson (default: text)")
	cmd.Flags().StringVar(&cfg.Output.HTML, flags.FlagHTML, "", "Write a self-contained HTML dashboard page to this path")
	cmd.Flags().StringVar(&cfg.Output.Report, flags.FlagReport, "", "Write a Markdown report to this path")
	cmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this path")
	cmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson (default: inferred from file extension)")
	cmd.Flags().StringSliceVar(&cfg.Output.Emit, flags.FlagEmit, nil, "Emit additional structured stream to stdout: json|ndjson (repeatable; comma-separated accepted)")
	cmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --emit/--out/--html/--report)")
}

func addRuntimeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&cfg.Runtime.Concurrency, flags.FlagConcurrency, cfg.Runtime.Concurrency, "Concurrent dataset fetches (default: 4)")
	cmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Global timeout (default: 5m)")
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.SetHelpTemplate(renderHelpTemplate)

	addSourceFlags(renderCmd)

	// Datasets
	renderCmd.Flags().StringVar(&cfg.Datasets.ListingsTable, flags.FlagListingsTable, "", "Override the gouged listings source table")
	renderCmd.Flags().StringVar(&cfg.Datasets.LayersFile, flags.FlagLayersFile, "", "YAML file defining the map layer set (default: built-in LA County layers)")
	renderCmd.Flags().IntVar(&cfg.Datasets.Limit, flags.FlagLimit, 0, "Maximum listing rows to fetch (0 = unlimited)")

	// Sections
	renderCmd.Flags().StringVar(&cfg.Sections.Selector, flags.FlagSections, "", "Comma-separated section IDs to render (empty = all sections)")
	renderCmd.Flags().StringSliceVar(&cfg.Sections.Set, flags.FlagSet, nil, "Per-section options as sectionID.option=value (repeatable; comma-separated accepted)")

	addOutputFlags(renderCmd)
	addRuntimeFlags(renderCmd)
}
