package flags

// Package flags defines canonical CLI flag names shared across the CLI and engine.
// Keeping these as constants helps avoid drift between Cobra flag wiring and other
// code paths that need to reference flags (e.g. help text and error messages).
// IMPORTANT: These are flag *names* without leading dashes.
// Example usage:
//
//	cmd.Flags().StringVar(&cfg.Source.URL, flags.FlagURL, "", "...")
//	arg := "--" + flags.FlagURL
const (
	// Source
	FlagURL         = "url"
	FlagKey         = "key"
	FlagSecretsFile = "secrets-file"

	// Datasets
	FlagListingsTable = "listings-table"
	FlagLayersFile    = "layers-file"
	FlagLayer         = "layer"
	FlagLimit         = "limit"

	// Sections
	FlagSections = "sections"
	FlagSet      = "set"

	// Output
	FlagConsoleFormat = "console-format"
	FlagHTML          = "html"
	FlagReport        = "report"
	FlagOut           = "out"
	FlagOutFormat     = "out-format"
	FlagEmit          = "emit"
	FlagNoConsole     = "no-console"

	// Runtime
	FlagConcurrency = "concurrency"
	FlagTimeout     = "timeout"
)
