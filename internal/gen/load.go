package gen

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// builtinActions are parsed into dedicated tokens and can never reach a
// custom action.
var builtinActions = map[string]bool{
	"help": true, "get": true, "set": true, "copy": true, "paste": true,
	"edit": true, "reset": true, "getkeys": true, "keys": true,
	"insert": true, "remove": true, "variant": true,
}

// Load loads the packages matching patterns relative to dir and collects
// their annotated types. Declarations in files named outName are dropped
// before type checking so an earlier run's output cannot go stale on us.
func Load(ctx context.Context, dir string, outName string, patterns ...string) ([]*Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedTypesInfo,
		Dir: dir,
		// ParseFile with comments so we can read //treeflect: directives
		ParseFile: func(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
			f, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
			if err == nil && filepath.Base(filename) == outName {
				f.Decls = nil
				f.Imports = nil
			}
			return f, err
		},
	}
	ps, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, err
	}
	if len(ps) == 0 {
		return nil, fmt.Errorf("no packages match %q", patterns)
	}

	var result []*Package
	for _, p := range ps {
		// Type errors are expected while generated methods are missing.
		var errs []error
		for _, e := range p.Errors {
			if e.Kind != packages.TypeError {
				errs = append(errs, e)
			}
		}
		if len(errs) > 0 {
			return nil, fmt.Errorf("errors while loading %s: %w", p.PkgPath, errors.Join(errs...))
		}
		pkg, err := collect(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.PkgPath, err)
		}
		result = append(result, pkg)
	}
	return result, nil
}

type annotatedSpec struct {
	spec       *ast.TypeSpec
	directives []directive
}

func collect(p *packages.Package) (*Package, error) {
	out := &Package{Name: p.Name, Path: p.PkgPath}
	if len(p.GoFiles) > 0 {
		out.Dir = filepath.Dir(p.GoFiles[0])
	}

	var specs []annotatedSpec
	annotated := make(map[string]bool)
	for _, f := range p.Syntax {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				ds, err := directives(doc)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", p.Fset.Position(ts.Pos()), err)
				}
				if len(ds) == 0 {
					continue
				}
				// The node, enum or variant directive leads, actions follow.
				for i, d := range ds {
					if d.verb != "action" {
						copy(ds[1:i+1], ds[:i])
						ds[0] = d
						break
					}
				}
				specs = append(specs, annotatedSpec{ts, ds})
				annotated[ts.Name.Name] = true
			}
		}
	}

	c := &collector{pkg: p.Types, annotated: annotated, enums: make(map[string]*Enum)}

	// Enums first so variants declared earlier in the file can find them.
	for _, as := range specs {
		var err error
		switch as.directives[0].verb {
		case "node":
			var s *Struct
			if s, err = c.structType(as.spec.Name.Name, as.directives); err == nil {
				out.Structs = append(out.Structs, s)
			}
		case "enum":
			var e *Enum
			if e, err = c.enumType(as.spec.Name.Name, as.directives[0]); err == nil {
				out.Enums = append(out.Enums, e)
				c.enums[e.TypeName] = e
			}
		case "variant":
		default:
			err = fmt.Errorf("unknown directive %q", directivePrefix+as.directives[0].verb)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Fset.Position(as.spec.Pos()), err)
		}
	}
	for _, as := range specs {
		if as.directives[0].verb != "variant" {
			continue
		}
		if err := c.variantType(as.spec.Name.Name, as.directives[0]); err != nil {
			return nil, fmt.Errorf("%s: %w", p.Fset.Position(as.spec.Pos()), err)
		}
	}
	for _, e := range out.Enums {
		if len(e.Variants) == 0 {
			return nil, fmt.Errorf("enum %s has no variants", e.TypeName)
		}
	}
	return out, nil
}

type collector struct {
	pkg       *types.Package
	annotated map[string]bool
	enums     map[string]*Enum
}

func (c *collector) lookupStruct(name, verb string) (*types.TypeName, *types.Struct, error) {
	tn, ok := c.pkg.Scope().Lookup(name).(*types.TypeName)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %s is not a type", verb, name)
	}
	st, ok := tn.Type().Underlying().(*types.Struct)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %s is not a struct type", verb, name)
	}
	return tn, st, nil
}

func (c *collector) structType(name string, ds []directive) (*Struct, error) {
	d := ds[0]
	if err := d.checkKeys("name"); err != nil {
		return nil, err
	}
	tn, st, err := c.lookupStruct(name, d.verb)
	if err != nil {
		return nil, err
	}
	s := &Struct{TypeName: name, Display: upperFirst(name)}
	if v := d.args["name"]; v != "" {
		s.Display = v
	}
	if s.Fields, err = c.fields(st, false); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	seen := make(map[string]bool)
	for _, ad := range ds[1:] {
		if ad.verb != "action" {
			return nil, fmt.Errorf("%s: unexpected directive %q after node", name, directivePrefix+ad.verb)
		}
		a, err := c.action(tn, ad)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if seen[a.Name] {
			return nil, fmt.Errorf("%s: duplicate action %q", name, a.Name)
		}
		seen[a.Name] = true
		s.Actions = append(s.Actions, a)
	}
	return s, nil
}

func (c *collector) action(tn *types.TypeName, d directive) (Action, error) {
	if err := d.checkKeys("name", "func", "args", "help"); err != nil {
		return Action{}, err
	}
	a := Action{Name: d.args["name"], Func: d.args["func"], Help: d.args["help"]}
	if a.Name == "" || a.Func == "" {
		return Action{}, fmt.Errorf("action needs name= and func=")
	}
	if builtinActions[a.Name] {
		return Action{}, fmt.Errorf("action %q shadows a built-in action", a.Name)
	}
	var err error
	if a.Args, err = d.intArg("args"); err != nil {
		return Action{}, err
	}

	sel := types.NewMethodSet(types.NewPointer(tn.Type())).Lookup(c.pkg, a.Func)
	if sel == nil {
		return Action{}, fmt.Errorf("action %q: no method %s", a.Name, a.Func)
	}
	sig := sel.Type().(*types.Signature)
	if sig.Params().Len() != 1 || sig.Results().Len() != 1 ||
		!types.Identical(sig.Params().At(0).Type(), types.NewSlice(types.Typ[types.String])) ||
		!types.Identical(sig.Results().At(0).Type(), types.Typ[types.String]) {
		return Action{}, fmt.Errorf("action %q: method %s must have signature func([]string) string", a.Name, a.Func)
	}
	return a, nil
}

func (c *collector) enumType(name string, d directive) (*Enum, error) {
	if err := d.checkKeys("name"); err != nil {
		return nil, err
	}
	_, st, err := c.lookupStruct(name, d.verb)
	if err != nil {
		return nil, err
	}
	if st.NumFields() != 1 {
		return nil, fmt.Errorf("enum %s must have exactly one field holding the variant", name)
	}
	field := st.Field(0)
	named, ok := types.Unalias(field.Type()).(*types.Named)
	if !ok || named.Obj().Pkg() != c.pkg {
		return nil, fmt.Errorf("enum %s: field %s must be an interface declared in this package", name, field.Name())
	}
	iface, ok := named.Underlying().(*types.Interface)
	if !ok || iface.NumMethods() != 1 {
		return nil, fmt.Errorf("enum %s: %s must be an interface with one marker method", name, named.Obj().Name())
	}
	marker := iface.Method(0)
	if sig := marker.Type().(*types.Signature); sig.Params().Len() != 0 || sig.Results().Len() != 0 {
		return nil, fmt.Errorf("enum %s: marker method %s must take and return nothing", name, marker.Name())
	}

	e := &Enum{
		TypeName:   name,
		Display:    upperFirst(name),
		ValueField: field.Name(),
		Iface:      named.Obj().Name(),
		Marker:     marker.Name(),
	}
	if v := d.args["name"]; v != "" {
		e.Display = v
	}
	return e, nil
}

func (c *collector) variantType(name string, d directive) error {
	if err := d.checkKeys("enum", "name", "tuple"); err != nil {
		return err
	}
	e, ok := c.enums[d.args["enum"]]
	if !ok {
		return fmt.Errorf("variant %s: enum=%q is not an annotated enum", name, d.args["enum"])
	}
	_, st, err := c.lookupStruct(name, d.verb)
	if err != nil {
		return err
	}
	v := &Variant{TypeName: name, Name: upperFirst(name), Tuple: d.flags["tuple"]}
	if n := d.args["name"]; n != "" {
		v.Name = n
	}
	for _, other := range e.Variants {
		if other.Name == v.Name {
			return fmt.Errorf("enum %s: duplicate variant %q", e.TypeName, v.Name)
		}
	}
	if v.Fields, err = c.fields(st, v.Tuple); err != nil {
		return fmt.Errorf("variant %s: %w", name, err)
	}
	if len(v.Fields) == 0 {
		v.Tuple = false
	}
	e.Variants = append(e.Variants, v)
	return nil
}

// fields returns the addressable fields of st. Positional fields keep
// their Go names.
func (c *collector) fields(st *types.Struct, positional bool) ([]Field, error) {
	var fields []Field
	seen := make(map[string]bool)
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Exported() || f.Embedded() {
			continue
		}
		name, ok := jsonName(f, st.Tag(i))
		if !ok {
			continue
		}
		if positional {
			name = f.Name()
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate property %q", name)
		}
		seen[name] = true
		if err := c.checkNodeType(f.Type()); err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name(), err)
		}
		fields = append(fields, Field{GoName: f.Name(), Name: name, Type: typeLabel(f.Type())})
	}
	return fields, nil
}

// checkNodeType reports whether a pointer to t steps commands, counting
// annotated types of this package whose methods are not generated yet.
func (c *collector) checkNodeType(t types.Type) error {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return fmt.Errorf("type %s is not a node type", t)
	}
	if named.Obj().Pkg() == c.pkg && c.annotated[named.Obj().Name()] {
		return nil
	}
	if types.NewMethodSet(types.NewPointer(named)).Lookup(named.Obj().Pkg(), "NodeStep") != nil {
		return nil
	}
	return fmt.Errorf("type %s does not implement NodeStep", typeLabel(t))
}
