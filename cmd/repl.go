package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jasonmoo/treeflect/internal/output"
	"github.com/jasonmoo/treeflect/node"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read commands from stdin and run them against the game tree",
	Long: `Start an interactive session. Each line is one command; exit or quit
ends the session. With --save the state file is written when the session
ends.

Examples:
  treeflect repl
  treeflect repl --state game.json --save`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	writer, err := GetWriter(cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("invalid output format: %w", err)
	}

	game, terr := loadGame()
	if terr != nil {
		return writeError(writer, terr)
	}

	in := node.NewInterpreter(game, node.WithLogger(logger))
	prompt := output.DefaultStyles().Prompt.Render(cfg.Prompt)
	if err := repl(cmd.InOrStdin(), cmd.OutOrStdout(), in, prompt); err != nil {
		return err
	}

	if _, terr := saveGame(game); terr != nil {
		return writeError(writer, terr)
	}
	return nil
}

// repl runs one command per line from r until EOF, exit or quit.
func repl(r io.Reader, w io.Writer, in *node.Interpreter, prompt string) error {
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		if result := in.Run(line); result != "" {
			fmt.Fprintln(w, result)
		}
	}
}
