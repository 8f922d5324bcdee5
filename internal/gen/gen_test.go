package gen

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

// declNames lists the top level declarations of a Go source file as
// "Recv.Name" for methods and "Name" for functions and variables.
func declNames(t *testing.T, src []byte) []string {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, 0)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, src)
	}
	var names []string
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			name := d.Name.Name
			if d.Recv != nil {
				recv := d.Recv.List[0].Type
				if star, ok := recv.(*ast.StarExpr); ok {
					recv = star.X
				}
				name = recv.(*ast.Ident).Name + "." + name
			}
			names = append(names, name)
		case *ast.GenDecl:
			if d.Tok != token.VAR {
				continue
			}
			for _, spec := range d.Specs {
				for _, n := range spec.(*ast.ValueSpec).Names {
					names = append(names, n.Name)
				}
			}
		}
	}
	sort.Strings(names)
	return names
}

func generate(t *testing.T, dir string) File {
	t.Helper()
	g := &Generator{Dir: dir}
	files, err := g.Generate(context.Background(), ".")
	if err != nil {
		t.Fatalf("Generate(%s) error = %v", dir, err)
	}
	if len(files) != 1 {
		t.Fatalf("Generate(%s) returned %d files, want 1", dir, len(files))
	}
	return files[0]
}

func TestGenerate_DemoUpToDate(t *testing.T) {
	dir := filepath.Join("..", "demo")
	file := generate(t, dir)

	checkedIn, err := os.ReadFile(filepath.Join(dir, DefaultOutput))
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(declNames(t, file.Source), declNames(t, checkedIn)); len(diff) > 0 {
		t.Errorf("generated declarations differ from %s:\n%s", DefaultOutput, diff)
	}
	if !strings.HasSuffix(file.Path, filepath.Join("demo", DefaultOutput)) {
		t.Errorf("Path = %s", file.Path)
	}

	wantTypes := []string{"Game", "Stage", "Platform", "Fighter", "Player", "PlayerState", "Idle", "Jumping", "Hitstun", "Launched", "Dead"}
	if diff := pretty.Diff(file.Types, wantTypes); len(diff) > 0 {
		t.Errorf("Types mismatch:\n%s", diff)
	}
}

func TestGenerate_Arena(t *testing.T) {
	file := generate(t, filepath.Join("testdata", "arena"))
	src := string(file.Source)

	if !strings.HasPrefix(src, Header+"\n\npackage arena\n") {
		t.Errorf("missing header:\n%s", src)
	}

	contains := []string{
		"var crateNode = &node.Struct{",
		`Name: "Arena",`,
		`{Name: "label", Type: "String"},`,
		`{Name: "Weight", Type: "Uint16"},`,
		`{Name: "mode", Type: "Mode"},`,
		"return c.Mode.NodeStep(r)",
		"func (n *Round) NodeStep(r command.Runner) string {",
		"return n.open(tok.Args)",
		`{Name: "open", Help: "open the crate"},`,
		"func (*stock) isMode() {}",
		"func newModeVariant(name string) modeVariant {",
		`e.Current = newModeVariant("Stock")`,
		"name, _, err := modeNode.DecodeVariant(data)",
		"func (e Mode) MarshalJSON() ([]byte, error) {\n\tswitch e.variant().(type) {",
		`return nil, fmt.Errorf("Mode: unknown variant %T", e.Current)`,
		"return node.CannotIndex(e.VariantName())",
	}
	for _, want := range contains {
		if !strings.Contains(src, want) {
			t.Errorf("generated code missing %q:\n%s", want, src)
		}
	}

	excludes := []string{`"Ignored"`, `"Hidden"`, "secret", `"encoding/json"`, "plain", "KindCustom:\n\t\tif out, ok := crateNode"}
	for _, bad := range excludes {
		if strings.Contains(src, bad) {
			t.Errorf("generated code should not contain %q:\n%s", bad, src)
		}
	}

	if diff := pretty.Diff(file.Types, []string{"crate", "Round", "Mode", "stock", "timed"}); len(diff) > 0 {
		t.Errorf("Types mismatch:\n%s", diff)
	}
	declNames(t, file.Source)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		dir         string
		wantContain string
	}{
		{"badfield", "field Count: type int is not a node type"},
		{"badaction", `action "jump": method jump must have signature func([]string) string`},
		{"novariants", "enum Empty has no variants"},
		{"badvariant", `variant Orphan: enum="Missing" is not an annotated enum`},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			g := &Generator{Dir: filepath.Join("testdata", tt.dir)}
			_, err := g.Generate(context.Background(), ".")
			if err == nil {
				t.Fatal("Generate() error = nil")
			}
			if !strings.Contains(err.Error(), tt.wantContain) {
				t.Errorf("Generate() error = %q, want to contain %q", err, tt.wantContain)
			}
		})
	}
}

func TestParseDirective(t *testing.T) {
	tests := []struct {
		text string
		want directive
	}{
		{
			text: "//treeflect:node",
			want: directive{verb: "node", args: map[string]string{}, flags: map[string]bool{}},
		},
		{
			text: `//treeflect:action name=move func=move args=2 help="move by dx dy"`,
			want: directive{
				verb:  "action",
				args:  map[string]string{"name": "move", "func": "move", "args": "2", "help": "move by dx dy"},
				flags: map[string]bool{},
			},
		},
		{
			text: "//treeflect:variant enum=State tuple",
			want: directive{verb: "variant", args: map[string]string{"enum": "State"}, flags: map[string]bool{"tuple": true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := parseDirective(tt.text)
			if err != nil {
				t.Fatalf("parseDirective() error = %v", err)
			}
			if diff := pretty.Diff(got, tt.want); len(diff) > 0 {
				t.Errorf("parseDirective() mismatch:\n%s", diff)
			}
		})
	}

	if _, err := parseDirective("//treeflect:"); err == nil {
		t.Error("empty directive should fail")
	}
}

func TestDirective_Checks(t *testing.T) {
	d, err := parseDirective("//treeflect:action name=x args=two color=red")
	if err != nil {
		t.Fatal(err)
	}
	if err := d.checkKeys("name", "args"); err == nil || !strings.Contains(err.Error(), `unknown argument "color"`) {
		t.Errorf("checkKeys() error = %v", err)
	}
	if _, err := d.intArg("args"); err == nil {
		t.Error("intArg(args=two) error = nil")
	}
	if n, err := d.intArg("missing"); err != nil || n != 0 {
		t.Errorf("intArg(missing) = %d, %v", n, err)
	}
}

func TestTypeNames(t *testing.T) {
	tests := []struct {
		in, upper, lower, recv string
	}{
		{"parent", "Parent", "parent", "p"},
		{"Round", "Round", "round", "n"},
		{"PlayerState", "PlayerState", "playerState", "p"},
	}
	for _, tt := range tests {
		if got := upperFirst(tt.in); got != tt.upper {
			t.Errorf("upperFirst(%q) = %q", tt.in, got)
		}
		if got := lowerFirst(tt.in); got != tt.lower {
			t.Errorf("lowerFirst(%q) = %q", tt.in, got)
		}
		if got := receiver(tt.in); got != tt.recv {
			t.Errorf("receiver(%q) = %q", tt.in, got)
		}
	}
}
