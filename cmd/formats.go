package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jasonmoo/treeflect/internal/output"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List available output formats",
	Long: `List all available output formats.

Built-in formats:
  text       Human readable text (default)
  json       JSON output
  yaml       YAML output

Custom formats:
  template:<path>   Use a Go template file

Examples:
  treeflect formats
  treeflect paths --output yaml
  treeflect exec --output template:./result.tmpl 'stage:get'`,
	Run: runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	formatters := output.DefaultRegistry.All()

	sort.Slice(formatters, func(i, j int) bool {
		return formatters[i].Name() < formatters[j].Name()
	})

	fmt.Fprintln(out, "Available output formats:")
	fmt.Fprintln(out)

	for _, f := range formatters {
		fmt.Fprintf(out, "  %-12s  %s\n", f.Name(), f.Description())
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Custom formats:")
	fmt.Fprintln(out, "  template:<path>  Use a Go template file")
}
