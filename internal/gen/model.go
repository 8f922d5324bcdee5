package gen

import (
	"go/types"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field is an addressable field of a struct or enum variant.
type Field struct {
	GoName string
	Name   string
	Type   string
}

// Action is a custom action bound to a method with the signature
// func([]string) string.
type Action struct {
	Name string
	Func string
	Args int
	Help string
}

// Struct is a struct annotated with //treeflect:node.
type Struct struct {
	TypeName string
	Display  string
	Fields   []Field
	Actions  []Action
}

// Variant is a type annotated with //treeflect:variant.
type Variant struct {
	TypeName string
	Name     string
	Fields   []Field
	Tuple    bool
}

func (v *Variant) hasFields() bool { return len(v.Fields) > 0 }

// Enum is a holder struct annotated with //treeflect:enum. Its single
// field holds the current variant behind a sealed interface.
type Enum struct {
	TypeName   string
	Display    string
	ValueField string
	Iface      string
	Marker     string
	Variants   []*Variant
}

func (e *Enum) anyFields(tuple bool) bool {
	for _, v := range e.Variants {
		if v.hasFields() && v.Tuple == tuple {
			return true
		}
	}
	return false
}

func (e *Enum) anyVariantFields() bool {
	return e.anyFields(true) || e.anyFields(false)
}

// Package holds the annotated types of one loaded package.
type Package struct {
	Name    string
	Path    string
	Dir     string
	Structs []*Struct
	Enums   []*Enum
}

// Types returns the names of the annotated types, variants included.
func (p *Package) Types() []string {
	var names []string
	for _, s := range p.Structs {
		names = append(names, s.TypeName)
	}
	for _, e := range p.Enums {
		names = append(names, e.TypeName)
		for _, v := range e.Variants {
			names = append(names, v.TypeName)
		}
	}
	return names
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[n:]
}

// typeLabel is the type name shown in help text: the bare name of a named
// type, with its first type argument for generic containers.
func typeLabel(t types.Type) string {
	t = types.Unalias(t)
	named, ok := t.(*types.Named)
	if !ok {
		return types.TypeString(t, func(*types.Package) string { return "" })
	}
	name := upperFirst(named.Obj().Name())
	if args := named.TypeArgs(); args != nil && args.Len() > 0 {
		return name + "[" + typeLabel(args.At(0)) + "]"
	}
	return name
}

// jsonName is the property name of a field: its json tag name, or the Go
// name. ok is false for fields excluded from the tree.
func jsonName(f *types.Var, tag string) (string, bool) {
	st := reflect.StructTag(tag)
	if st.Get("treeflect") == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(st.Get("json"), ",")
	if name == "-" {
		return "", false
	}
	if name == "" {
		name = f.Name()
	}
	return name, true
}
