package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gougewatch/internal/engine"
	"gougewatch/internal/sections"
)

var sectionsListQuiet bool
var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Manage and list dashboard sections",
	Long: `Manage GougeWatch dashboard sections.

This command group helps you discover which sections exist and what each
section shows. Sections are rendered by "gougewatch render" (see its --help).

Examples:
  # List all available sections
  gougewatch sections list
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var sectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available sections",
	Long: `List all sections available in this build, including one map section per
configured layer (see --layers-file on "gougewatch render").

Sections are sorted by section ID; map sections follow in layer order.

Examples:
  gougewatch sections list

Output:
  A vertical list of sections:
    ----------------------------------------
    SECTION: {ID}
    ----------------------------------------
    {TITLE}
    {DESCRIPTION}
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := engine.ComposeSections(cfg)
		if err != nil {
			return err
		}

		for _, s := range all {
			if sectionsListQuiet {
				fmt.Fprintln(cmd.OutOrStdout(), s.ID())
			} else {
				printSection(cmd.OutOrStdout(), s)
			}
		}
		return nil
	},
}

var sectionsShowCmd = &cobra.Command{
	Use:   "show [section-id]",
	Short: "Show details of a specific section",
	Long: `Show details of a specific section by its ID.

Examples:
  gougewatch sections show headline-metrics
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := engine.ComposeSections(cfg)
		if err != nil {
			return err
		}
		for _, s := range all {
			if s.ID() == args[0] {
				printSection(cmd.OutOrStdout(), s)
				return nil
			}
		}
		return fmt.Errorf("section not found: %s", args[0])
	},
}

func printSection(w io.Writer, s sections.Section) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "SECTION: %s\n", s.ID())
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintln(w, s.Title())
	fmt.Fprintln(w, s.Description())

	if cs, ok := s.(sections.ConfigurableSection); ok {
		opts := cs.Options()
		if len(opts) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Options:")
			for _, opt := range opts {
				def := opt.Default
				if def == "" {
					def = "\"\""
				}
				fmt.Fprintf(w, "  %s\n", opt.Name)
				fmt.Fprintf(w, "    Description: %s\n", opt.Description)
				fmt.Fprintf(w, "    Default:     %s\n", def)
			}
		}
	}
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
	sectionsCmd.AddCommand(sectionsListCmd)
	sectionsListCmd.Flags().BoolVarP(&sectionsListQuiet, "quiet", "q", false, "Only print section IDs")
	sectionsCmd.AddCommand(sectionsShowCmd)
}
