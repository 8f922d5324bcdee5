package cmd

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/jasonmoo/treeflect/command"
	"github.com/jasonmoo/treeflect/internal/errors"
	"github.com/jasonmoo/treeflect/internal/output"
)

var parseCmd = &cobra.Command{
	Use:   "parse <command>",
	Short: "Show the tokens a command parses into",
	Long: `Parse a command without running it and print its token sequence.

Examples:
  treeflect parse 'players[0].state:variant Hitstun'
  treeflect parse --verbose 'fighters["mario"]:insert 1 "luigi"'`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var parseVerbose bool

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "dump the token structs")
}

func runParse(cmd *cobra.Command, args []string) error {
	writer, err := GetWriter(cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("invalid output format: %w", err)
	}

	tokens, err := command.Parse(args[0])
	if err != nil {
		return writeError(writer, errors.NewParseError(args[0], err))
	}

	if parseVerbose {
		_, err := pretty.Fprintf(cmd.OutOrStdout(), "%# v\n", tokens)
		return err
	}

	response := output.ParseResponse{Command: args[0]}
	for _, tok := range tokens {
		response.Tokens = append(response.Tokens, tok.String())
	}
	return writer.Write(response)
}
