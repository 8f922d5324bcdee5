package cmd

import (
	"fmt"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/jasonmoo/treeflect/internal/errors"
	"github.com/jasonmoo/treeflect/internal/output"
	"github.com/jasonmoo/treeflect/node"
)

var pathsCmd = &cobra.Command{
	Use:   "paths [query]",
	Short: "List the paths of the game tree",
	Long: `List every addressable path of the game tree. With a query the paths
are fuzzy matched and ranked.

Examples:
  treeflect paths
  treeflect paths weight
  treeflect paths --limit 3 plst`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPaths,
}

var pathsLimit int

func init() {
	rootCmd.AddCommand(pathsCmd)

	pathsCmd.Flags().IntVar(&pathsLimit, "limit", 0, "maximum results (0 for all)")
}

func runPaths(cmd *cobra.Command, args []string) error {
	writer, err := GetWriter(cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("invalid output format: %w", err)
	}

	game, terr := loadGame()
	if terr != nil {
		return writeError(writer, terr)
	}

	paths := node.Paths(game)
	response := output.PathsResponse{}
	if len(args) == 0 {
		response.Paths = paths
	} else {
		response.Query = args[0]
		matches := fuzzy.Find(args[0], paths)
		if len(matches) == 0 {
			return writeError(writer, errors.NewPathNotFound(args[0], errors.SuggestSimilar(args[0], paths, 3)))
		}
		for _, m := range matches {
			response.Paths = append(response.Paths, m.Str)
		}
	}
	if pathsLimit > 0 && len(response.Paths) > pathsLimit {
		response.Paths = response.Paths[:pathsLimit]
	}
	response.Count = len(response.Paths)

	return writer.Write(response)
}
