package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jasonmoo/treeflect/internal/config"
	"github.com/jasonmoo/treeflect/internal/demo"
	"github.com/jasonmoo/treeflect/internal/errors"
	"github.com/jasonmoo/treeflect/internal/output"
)

var rootCmd = &cobra.Command{
	Use:   "treeflect",
	Short: "Drive a state tree with path commands",
	Long: `treeflect runs commands like players[0].state:get against a tree of
typed nodes. Paths select nodes with .property, [index], ["key"], [?] for the
current selection and [*] for every element; the action after the colon
decides what happens there.

The CLI drives a small demo game tree loaded from a JSON state file.

Examples:
  treeflect exec 'stage.name:get'
  treeflect exec --state game.json --save 'players[0]:move 5 0'
  treeflect repl --state game.json
  treeflect parse 'fighters["mario"].weight:set 98'
  treeflect paths state`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

var (
	flagConfig   string
	flagOutput   string
	flagLogLevel string
	flagState    string
	flagSave     bool

	cfg    = config.Default()
	logger = slog.Default()
)

func Execute() error {
	err := rootCmd.Execute()
	if _, reported := err.(reportedError); err != nil && !reported {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "error:", err)
	}
	return err
}

// reportedError is an error already written to the output.
type reportedError struct {
	*errors.TreeflectError
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&flagConfig, "config", "c", "", "config file path (.json, .yaml or .toml)")
	flags.StringVarP(&flagOutput, "output", "o", "", "output format (text, json, yaml, template:<path>)")
	flags.StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVarP(&flagState, "state", "s", "", "JSON state file for the game tree")
	flags.BoolVar(&flagSave, "save", false, "write the state file back after running commands")
}

// loadConfig reads the config file and lets flags override it.
func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(flagConfig)
	if err != nil {
		return errors.NewConfigError(flagConfig, err)
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		c.Output = flagOutput
	}
	if flags.Changed("log-level") {
		c.LogLevel = flagLogLevel
	}
	if flags.Changed("state") {
		c.State = flagState
	}
	if flags.Changed("save") {
		c.Save = flagSave
	}
	level, err := c.Level()
	if err != nil {
		return errors.NewConfigError(flagConfig, err)
	}

	cfg = c
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// GetWriter returns a writer for the configured output format.
func GetWriter(w io.Writer) (*output.Writer, error) {
	f, err := output.DefaultRegistry.Get(cfg.Output)
	if err != nil {
		return nil, err
	}
	return output.NewWriter(w, f), nil
}

// writeError reports err in the configured format and returns it so the
// process exits non-zero.
func writeError(w *output.Writer, err *errors.TreeflectError) error {
	if werr := w.WriteError(string(err.Code), err.Message, err.Suggestions, err.Context); werr != nil {
		return werr
	}
	return reportedError{err}
}

// loadGame loads the configured state file, or a fresh game without one.
func loadGame() (*demo.Game, *errors.TreeflectError) {
	if cfg.State == "" {
		return demo.NewGame(), nil
	}
	g, err := demo.Load(cfg.State)
	if err != nil {
		return nil, errors.NewStateError(cfg.State, err)
	}
	logger.Debug("loaded state", "path", cfg.State)
	return g, nil
}

// saveGame writes g back when saving is enabled. It reports whether the
// state was written.
func saveGame(g *demo.Game) (bool, *errors.TreeflectError) {
	if !cfg.Save {
		return false, nil
	}
	if cfg.State == "" {
		return false, errors.NewStateError("", fmt.Errorf("--save needs --state"))
	}
	if err := demo.Save(cfg.State, g); err != nil {
		return false, errors.NewStateError(cfg.State, err)
	}
	logger.Debug("saved state", "path", cfg.State)
	return true, nil
}
