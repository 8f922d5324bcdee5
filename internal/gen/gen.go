// Package gen generates command dispatch code for annotated structs and
// enums, the code node.Struct and node.Enum expect to be driven by.
//
// A struct is annotated with //treeflect:node and may list custom actions:
//
//	//treeflect:node
//	//treeflect:action name=jump func=jump help="jump once"
//	type Fighter struct { ... }
//
// An enum is a holder struct whose single field is a sealed interface,
// with one //treeflect:variant type per variant. The first variant
// declared is the default.
//
//	//treeflect:enum
//	type State struct{ Value StateVariant }
//
//	//treeflect:variant enum=State
//	type Idle struct{}
//
//	//treeflect:variant enum=State tuple
//	type Hitstun struct{ V0 node.Uint32 }
package gen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultOutput is the file written into each package directory.
const DefaultOutput = "treeflect_gen.go"

// Generator writes dispatch code for annotated types.
type Generator struct {
	// Dir is the directory patterns are resolved from.
	Dir string
	// Output is the file name written into each package directory.
	Output string
	Logger *slog.Logger
}

// File is the generated source for one package.
type File struct {
	Package string
	Path    string
	Types   []string
	Source  []byte
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default().With("component", "gen")
}

func (g *Generator) output() string {
	if g.Output != "" {
		return g.Output
	}
	return DefaultOutput
}

// Generate loads the packages matching patterns and returns the generated
// file for each package that has annotated types.
func (g *Generator) Generate(ctx context.Context, patterns ...string) ([]File, error) {
	log := g.logger()
	pkgs, err := Load(ctx, g.Dir, g.output(), patterns...)
	if err != nil {
		return nil, err
	}

	var files []File
	for _, pkg := range pkgs {
		types := pkg.Types()
		if len(types) == 0 {
			log.Debug("no annotated types", "package", pkg.Path)
			continue
		}
		if pkg.Dir == "" {
			return nil, fmt.Errorf("%s: package has no files", pkg.Path)
		}
		src, err := Emit(pkg)
		if err != nil {
			return nil, err
		}
		files = append(files, File{
			Package: pkg.Path,
			Path:    filepath.Join(pkg.Dir, g.output()),
			Types:   types,
			Source:  src,
		})
		log.Debug("generated", "package", pkg.Path, "structs", len(pkg.Structs), "enums", len(pkg.Enums))
	}
	return files, nil
}

// Write writes the generated files to disk.
func Write(files []File) error {
	for _, f := range files {
		if err := os.WriteFile(f.Path, f.Source, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", f.Path, err)
		}
	}
	return nil
}
