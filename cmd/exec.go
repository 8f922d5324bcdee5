package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jasonmoo/treeflect/internal/output"
	"github.com/jasonmoo/treeflect/node"
)

var execCmd = &cobra.Command{
	Use:   "exec <command>...",
	Short: "Run commands against the game tree",
	Long: `Run each command in order against the game tree and print the results.

Commands share one clipboard, so a copy in one command can be pasted by a
later one. Results of commands that succeed silently are left out of text
output.

Examples:
  treeflect exec 'players[0].x:get'
  treeflect exec 'players[1]:copy' 'players[0]:paste'
  treeflect exec --state game.json --save ':tick 60'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	writer, err := GetWriter(cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("invalid output format: %w", err)
	}

	game, terr := loadGame()
	if terr != nil {
		return writeError(writer, terr)
	}

	in := node.NewInterpreter(game, node.WithLogger(logger))
	response := output.ExecResponse{State: cfg.State}
	for _, c := range args {
		response.Results = append(response.Results, output.CommandResult{
			Command: c,
			Result:  in.Run(c),
		})
	}

	saved, terr := saveGame(game)
	if terr != nil {
		return writeError(writer, terr)
	}
	response.Saved = saved

	return writer.Write(response)
}
