package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
)

const (
	nodePath    = "github.com/jasonmoo/treeflect/node"
	commandPath = "github.com/jasonmoo/treeflect/command"
)

// Header marks generated files.
const Header = "// Code generated by treeflect gen. DO NOT EDIT."

type emitter struct {
	buf bytes.Buffer
	q   string // qualifier for identifiers from the node package
}

func (g *emitter) p(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
	g.buf.WriteByte('\n')
}

// Emit returns the formatted dispatch code for the annotated types of pkg.
func Emit(pkg *Package) ([]byte, error) {
	g := &emitter{q: "node."}
	if pkg.Path == nodePath {
		g.q = ""
	}

	g.p("%s", Header)
	g.p("")
	g.p("package %s", pkg.Name)
	g.p("")
	g.p("import (")
	needJSON := false
	for _, e := range pkg.Enums {
		needJSON = needJSON || e.anyFields(false)
	}
	if needJSON {
		g.p("%q", "encoding/json")
	}
	if len(pkg.Enums) > 0 {
		g.p("%q", "fmt")
		g.p("")
	}
	g.p("%q", commandPath)
	if g.q != "" {
		g.p("%q", nodePath)
	}
	g.p(")")

	for _, s := range pkg.Structs {
		g.p("")
		g.structDecl(s)
	}
	for _, e := range pkg.Enums {
		g.p("")
		g.enumDecl(e)
	}

	src, err := format.Source(g.buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code for %s: %w", pkg.Path, err)
	}
	return src, nil
}

// receiver picks a receiver name that does not shadow the runner.
func receiver(typeName string) string {
	rv := strings.ToLower(typeName[:1])
	if rv == "r" {
		return "n"
	}
	return rv
}

func descriptor(typeName string) string {
	return lowerFirst(typeName) + "Node"
}

func (g *emitter) fieldList(fields []Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("{Name: %q, Type: %q}", f.Name, f.Type)
	}
	return fmt.Sprintf("[]%sField{%s}", g.q, strings.Join(parts, ", "))
}

func (g *emitter) structDecl(s *Struct) {
	desc := descriptor(s.TypeName)
	rv := receiver(s.TypeName)

	g.p("var %s = &%sStruct{", desc, g.q)
	g.p("Name: %q,", s.Display)
	if len(s.Fields) > 0 {
		g.p("Fields: []%sField{", g.q)
		for _, f := range s.Fields {
			g.p("{Name: %q, Type: %q},", f.Name, f.Type)
		}
		g.p("},")
	}
	if len(s.Actions) > 0 {
		g.p("Actions: []%sAction{", g.q)
		for _, a := range s.Actions {
			lit := fmt.Sprintf("Name: %q", a.Name)
			if a.Args > 0 {
				lit += fmt.Sprintf(", Args: %d", a.Args)
			}
			if a.Help != "" {
				lit += fmt.Sprintf(", Help: %q", a.Help)
			}
			g.p("{%s},", lit)
		}
		g.p("},")
	}
	g.p("}")
	g.p("")

	g.p("func (%s *%s) NodeStep(r command.Runner) string {", rv, s.TypeName)
	g.p("tok := r.Step()")
	g.p("switch tok.Kind {")
	g.p("case command.KindChainProperty:")
	if len(s.Fields) > 0 {
		g.p("switch tok.Name {")
		for _, f := range s.Fields {
			g.p("case %q:", f.Name)
			g.p("return %s.%s.NodeStep(r)", rv, f.GoName)
		}
		g.p("}")
	}
	g.p("return %sNoProperty(%s.Name, tok.Name)", g.q, desc)
	if len(s.Actions) > 0 {
		g.p("case command.KindCustom:")
		g.p("if out, ok := %s.CheckAction(tok); !ok {", desc)
		g.p("return out")
		g.p("}")
		g.p("switch tok.Name {")
		for _, a := range s.Actions {
			g.p("case %q:", a.Name)
			g.p("return %s.%s(tok.Args)", rv, a.Func)
		}
		g.p("}")
	}
	g.p("}")
	g.p("return %sStepStruct(%s, %s, tok, r)", g.q, rv, desc)
	g.p("}")
	g.p("")

	g.p("func (%s *%s) NodeDefault() {", rv, s.TypeName)
	for _, f := range s.Fields {
		g.p("%sSetDefault(&%s.%s)", g.q, rv, f.GoName)
	}
	g.p("}")
	g.p("")

	g.p("func (%s *%s) NodeChildren() []%sChild {", rv, s.TypeName, g.q)
	if len(s.Fields) == 0 {
		g.p("return nil")
	} else {
		g.p("return []%sChild{", g.q)
		for _, f := range s.Fields {
			g.p("{Segment: %q, Node: &%s.%s},", "."+f.Name, rv, f.GoName)
		}
		g.p("}")
	}
	g.p("}")
}

func (g *emitter) enumDecl(e *Enum) {
	desc := descriptor(e.TypeName)
	newFn := "new" + upperFirst(e.TypeName) + "Variant"

	for _, v := range e.Variants {
		g.p("func (*%s) %s() {}", v.TypeName, e.Marker)
	}
	g.p("")

	g.p("var %s = &%sEnum{", desc, g.q)
	g.p("Name: %q,", e.Display)
	g.p("Variants: []%sVariant{", g.q)
	for _, v := range e.Variants {
		lit := fmt.Sprintf("Name: %q", v.Name)
		if v.Tuple {
			lit += ", Positional: true"
		}
		if v.hasFields() {
			lit += ", Fields: " + g.fieldList(v.Fields)
		}
		g.p("{%s},", lit)
	}
	g.p("},")
	g.p("}")
	g.p("")

	g.p("func %s(name string) %s {", newFn, e.Iface)
	g.p("switch name {")
	for _, v := range e.Variants {
		g.p("case %q:", v.Name)
		if !v.hasFields() {
			g.p("return &%s{}", v.TypeName)
			continue
		}
		g.p("v := &%s{}", v.TypeName)
		for _, f := range v.Fields {
			g.p("%sSetDefault(&v.%s)", g.q, f.GoName)
		}
		g.p("return v")
	}
	g.p("}")
	g.p("return nil")
	g.p("}")
	g.p("")

	g.p("func (e *%s) variant() %s {", e.TypeName, e.Iface)
	g.p("if e.%s == nil {", e.ValueField)
	g.p("e.%s = %s(%q)", e.ValueField, newFn, e.Variants[0].Name)
	g.p("}")
	g.p("return e.%s", e.ValueField)
	g.p("}")
	g.p("")

	g.p("func (e *%s) VariantName() string {", e.TypeName)
	g.p("switch e.variant().(type) {")
	for _, v := range e.Variants {
		g.p("case *%s:", v.TypeName)
		g.p("return %q", v.Name)
	}
	g.p("}")
	g.p("return \"\"")
	g.p("}")
	g.p("")

	g.p("func (e *%s) NodeDefault() {", e.TypeName)
	g.p("e.%s = %s(%q)", e.ValueField, newFn, e.Variants[0].Name)
	g.p("}")
	g.p("")

	g.p("func (e *%s) NodeStep(r command.Runner) string {", e.TypeName)
	g.p("tok := r.Step()")
	g.p("switch tok.Kind {")
	g.p("case command.KindChainProperty:")
	if e.anyFields(false) {
		g.p("switch v := e.variant().(type) {")
		for _, v := range e.Variants {
			if v.Tuple || !v.hasFields() {
				continue
			}
			g.p("case *%s:", v.TypeName)
			g.p("switch tok.Name {")
			for _, f := range v.Fields {
				g.p("case %q:", f.Name)
				g.p("return v.%s.NodeStep(r)", f.GoName)
			}
			g.p("}")
		}
		g.p("}")
	}
	g.p("return %sNoProperty(e.VariantName(), tok.Name)", g.q)
	g.p("case command.KindChainIndex:")
	if e.anyFields(true) {
		g.p("switch v := e.variant().(type) {")
		for _, v := range e.Variants {
			if !v.Tuple {
				continue
			}
			g.p("case *%s:", v.TypeName)
			g.p("switch tok.Index {")
			for i, f := range v.Fields {
				g.p("case %d:", i)
				g.p("return v.%s.NodeStep(r)", f.GoName)
			}
			g.p("}")
			g.p("return %sVariantIndexError(%q, tok.Index, %d)", g.q, v.Name, len(v.Fields))
		}
		g.p("}")
	}
	g.p("return %sCannotIndex(e.VariantName())", g.q)
	g.p("case command.KindSetVariant:")
	g.p("v := %s(tok.Name)", newFn)
	g.p("if v == nil {")
	g.p("return %s.NoVariant(tok.Name)", desc)
	g.p("}")
	g.p("e.%s = v", e.ValueField)
	g.p("return \"\"")
	g.p("}")
	g.p("return %sStepEnum(e, %s, tok, r)", g.q, desc)
	g.p("}")
	g.p("")

	g.p("func (e *%s) NodeChildren() []%sChild {", e.TypeName, g.q)
	if e.anyVariantFields() {
		g.p("switch v := e.variant().(type) {")
		for _, v := range e.Variants {
			if !v.hasFields() {
				continue
			}
			children := make([]string, len(v.Fields))
			for i, f := range v.Fields {
				seg := "." + f.Name
				if v.Tuple {
					seg = fmt.Sprintf("[%d]", i)
				}
				children[i] = fmt.Sprintf("{Segment: %q, Node: &v.%s}", seg, f.GoName)
			}
			g.p("case *%s:", v.TypeName)
			g.p("return []%sChild{%s}", g.q, strings.Join(children, ", "))
		}
		g.p("}")
	}
	g.p("return nil")
	g.p("}")
	g.p("")

	bind := ""
	if e.anyVariantFields() {
		bind = "v := "
	}
	g.p("func (e %s) MarshalJSON() ([]byte, error) {", e.TypeName)
	g.p("switch %se.variant().(type) {", bind)
	for _, v := range e.Variants {
		g.p("case *%s:", v.TypeName)
		switch {
		case !v.hasFields():
			g.p("return %sMarshalVariant(%q, nil)", g.q, v.Name)
		case v.Tuple:
			args := make([]string, len(v.Fields))
			for i, f := range v.Fields {
				args[i] = "v." + f.GoName
			}
			g.p("return %sMarshalVariant(%q, %sTuple(%s))", g.q, v.Name, g.q, strings.Join(args, ", "))
		default:
			g.p("return %sMarshalVariant(%q, v)", g.q, v.Name)
		}
	}
	g.p("}")
	g.p("return nil, fmt.Errorf(%q, e.%s)", e.Display+": unknown variant %T", e.ValueField)
	g.p("}")
	g.p("")

	g.p("func (e *%s) UnmarshalJSON(data []byte) error {", e.TypeName)
	if e.anyVariantFields() {
		g.p("name, payload, err := %s.DecodeVariant(data)", desc)
	} else {
		g.p("name, _, err := %s.DecodeVariant(data)", desc)
	}
	g.p("if err != nil {")
	g.p("return err")
	g.p("}")
	g.p("v := %s(name)", newFn)
	if e.anyVariantFields() {
		g.p("if payload != nil {")
		g.p("switch v := v.(type) {")
		for _, v := range e.Variants {
			if !v.hasFields() {
				continue
			}
			g.p("case *%s:", v.TypeName)
			if v.Tuple {
				args := make([]string, len(v.Fields))
				for i, f := range v.Fields {
					args[i] = "&v." + f.GoName
				}
				g.p("if err := %sUnmarshalTuple(payload, %s); err != nil {", g.q, strings.Join(args, ", "))
			} else {
				g.p("if err := json.Unmarshal(payload, v); err != nil {")
			}
			g.p("return err")
			g.p("}")
		}
		g.p("}")
		g.p("}")
	}
	g.p("e.%s = v", e.ValueField)
	g.p("return nil")
	g.p("}")
}
