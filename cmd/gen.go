package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jasonmoo/treeflect/internal/errors"
	"github.com/jasonmoo/treeflect/internal/gen"
	"github.com/jasonmoo/treeflect/internal/output"
)

var genCmd = &cobra.Command{
	Use:   "gen [package pattern]...",
	Short: "Generate dispatch code for annotated types",
	Long: `Generate NodeStep, NodeDefault and NodeChildren methods for structs
annotated with //treeflect:node and enums annotated with //treeflect:enum.

Each package gets one generated file next to its sources.

Directives:
  //treeflect:node [name=Display]
  //treeflect:action name=<action> func=<method> [args=N] [help="..."]
  //treeflect:enum [name=Display]
  //treeflect:variant enum=<Enum> [name=Display] [tuple]

Examples:
  treeflect gen ./internal/demo
  treeflect gen --dry-run ./...`,
	RunE: runGen,
}

var (
	genFile   string
	genDryRun bool
)

func init() {
	rootCmd.AddCommand(genCmd)

	genCmd.Flags().StringVar(&genFile, "file", gen.DefaultOutput, "name of the generated file in each package")
	genCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "print the generated code instead of writing it")
}

func runGen(cmd *cobra.Command, args []string) error {
	writer, err := GetWriter(cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("invalid output format: %w", err)
	}
	if len(args) == 0 {
		args = []string{"."}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g := &gen.Generator{Output: genFile, Logger: logger}
	files, err := g.Generate(ctx, args...)
	if err != nil {
		return writeError(writer, errors.NewGenerateError(args, err))
	}

	if genDryRun {
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s", f.Path, f.Source)
		}
		return nil
	}
	if err := gen.Write(files); err != nil {
		return writeError(writer, errors.NewGenerateError(args, err))
	}

	response := output.GenerateResponse{Patterns: args}
	for _, f := range files {
		response.Files = append(response.Files, f.Path)
		response.Types = append(response.Types, f.Types...)
	}
	return writer.Write(response)
}
