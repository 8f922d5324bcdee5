package node

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jasonmoo/treeflect/command"
)

// Field describes an addressable field of a struct or enum variant.
type Field struct {
	Name string
	Type string
}

// Action describes a custom action a struct responds to.
type Action struct {
	Name string
	Args int
	Help string
}

// Struct describes a struct node. Generated code keeps one per type and
// handles property and custom action dispatch itself, passing every other
// token to StepStruct.
type Struct struct {
	Name    string
	Fields  []Field
	Actions []Action
}

// Help renders the help text for the struct.
func (s *Struct) Help() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s Help\n\nActions:\n", s.Name)
	b.WriteString("*   help  - display this help\n")
	b.WriteString("*   get   - display JSON\n")
	b.WriteString("*   set   - set to JSON\n")
	b.WriteString("*   copy  - copy the values from this struct\n")
	b.WriteString("*   paste - paste the copied values to this struct\n")
	b.WriteString("*   reset - reset to default values\n")
	for _, a := range s.Actions {
		if a.Help == "" {
			fmt.Fprintf(&b, "*   %s\n", a.Name)
		} else {
			fmt.Fprintf(&b, "*   %s - %s\n", a.Name, a.Help)
		}
	}
	b.WriteString("\nAccessors:\n")
	for _, f := range s.Fields {
		fmt.Fprintf(&b, "*   %s - %s\n", f.Name, f.Type)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// CheckAction returns an error result when tok has the wrong number of
// arguments for the named action.
func (s *Struct) CheckAction(tok command.Token) (string, bool) {
	for _, a := range s.Actions {
		if a.Name != tok.Name {
			continue
		}
		if len(tok.Args) != a.Args {
			return argCount(tok, a.Args), false
		}
		return "", true
	}
	return Cannot(s.Name, tok), false
}

// NoProperty is the result for a property owner does not expose.
func NoProperty(owner, property string) string {
	return fmt.Sprintf("%s does not have a property '%s'", owner, property)
}

// StepStruct performs the actions shared by every struct: get, set,
// copy, paste, reset and help. tok has already been taken from r.
func StepStruct[T any](v *T, s *Struct, tok command.Token, r command.Runner) string {
	if out, ok := stepAggregate(v, s.Name, tok, r); ok {
		return out
	}
	if tok.Kind == command.KindHelp {
		return s.Help()
	}
	return Cannot(s.Name, tok)
}

// stepAggregate handles the tokens structs and enums share.
func stepAggregate[T any](v *T, name string, tok command.Token, r command.Runner) (string, bool) {
	switch tok.Kind {
	case command.KindGet:
		data, err := marshal(v)
		if err != nil {
			return fmt.Sprintf("%s get Error: %s", name, err), true
		}
		return string(data), true
	case command.KindSet:
		value := defaultValue[T]()
		if err := Decode(tok.Payload, &value); err != nil {
			return fmt.Sprintf("%s set Error: %s", name, err), true
		}
		*v = value
		return "", true
	case command.KindCopyFrom:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%s copy Error: %s", name, err), true
		}
		r.Clipboard().CopyValue(name, data)
		return "", true
	case command.KindPasteTo:
		data, ok := r.Clipboard().PasteValue(name)
		if !ok {
			return fmt.Sprintf("Nothing to paste: no %s has been copied", name), true
		}
		value := defaultValue[T]()
		if err := json.Unmarshal(data, &value); err != nil {
			return fmt.Sprintf("%s paste Error: %s", name, err), true
		}
		*v = value
		return "", true
	case command.KindSetDefault:
		SetDefault(v)
		return "", true
	}
	return "", false
}

// Variant describes one variant of an enum. Positional variants address
// their fields by index, the rest by property name.
type Variant struct {
	Name       string
	Fields     []Field
	Positional bool
}

// Enum describes an enum node. The first variant is the default.
type Enum struct {
	Name     string
	Variants []Variant
}

// Default returns the name of the default variant.
func (e *Enum) Default() string {
	return e.Variants[0].Name
}

// Has reports whether name is a variant of e.
func (e *Enum) Has(name string) bool {
	for _, v := range e.Variants {
		if v.Name == name {
			return true
		}
	}
	return false
}

// NoVariant is the result for a variant e does not have.
func (e *Enum) NoVariant(name string) string {
	return fmt.Sprintf("%s does not have a variant '%s'", e.Name, name)
}

// Help renders the help text for the enum.
func (e *Enum) Help() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s Help\n\nActions:\n", e.Name)
	b.WriteString("*   help    - display this help\n")
	b.WriteString("*   get     - display JSON\n")
	b.WriteString("*   set     - set to JSON\n")
	b.WriteString("*   copy    - copy the values from this enum\n")
	b.WriteString("*   paste   - paste the copied values to this enum\n")
	b.WriteString("*   reset   - reset to default variant\n")
	b.WriteString("*   variant - set to the specified variant\n")
	b.WriteString("\nValid variants:\n")
	for _, v := range e.Variants {
		fmt.Fprintf(&b, "*   %s\n", v.Name)
	}
	b.WriteString("\nAccessors:\nChanges depending on which variant the enum is currently set to:\n\n")
	for _, v := range e.Variants {
		if len(v.Fields) == 0 {
			continue
		}
		fmt.Fprintf(&b, "As %s:\n", v.Name)
		for i, f := range v.Fields {
			if v.Positional {
				fmt.Fprintf(&b, "*   [%d] - %s\n", i, f.Type)
			} else {
				fmt.Fprintf(&b, "*   .%s - %s\n", f.Name, f.Type)
			}
		}
	}
	return b.String()
}

// StepEnum performs the actions shared by every enum: get, set, copy,
// paste, reset and help. tok has already been taken from r.
//
// A set payload that is a bare variant name, as left by the parser for
// `set "Foo"`, is decoded as that unit variant.
func StepEnum[T any](v *T, e *Enum, tok command.Token, r command.Runner) string {
	if tok.Kind == command.KindSet && e.Has(tok.Payload) {
		tok.Payload = strconv.Quote(tok.Payload)
	}
	if out, ok := stepAggregate(v, e.Name, tok, r); ok {
		return out
	}
	if tok.Kind == command.KindHelp {
		return e.Help()
	}
	return Cannot(e.Name, tok)
}

// CannotIndex is the result for indexing a variant without positional
// fields.
func CannotIndex(variant string) string {
	return "Cannot index " + variant
}

// VariantIndexError is the result for an index past the positional
// fields of a variant.
func VariantIndexError(variant string, i, n int) string {
	return fmt.Sprintf("Used index %d on a %s (try a value between 0-%d)", i, variant, n-1)
}

// MarshalVariant encodes a variant: unit variants as their name, others
// as an object with the name as its only member.
func MarshalVariant(name string, payload any) ([]byte, error) {
	k, err := json.Marshal(name)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return k, nil
	}
	p, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(p)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Tuple returns the payload of a positional variant: the value itself
// for a single field, otherwise the fields as an array.
func Tuple(fields ...any) any {
	if len(fields) == 1 {
		return fields[0]
	}
	return fields
}

// DecodeVariant splits an encoded variant into its name and payload. The
// payload is nil for the bare name form.
func (e *Enum) DecodeVariant(data []byte) (string, json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return "", nil, err
		}
		if err := e.checkVariant(name); err != nil {
			return "", nil, err
		}
		return name, nil, nil
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return "", nil, fmt.Errorf("expected a variant name or an object with one member: %w", err)
	}
	if len(members) != 1 {
		return "", nil, fmt.Errorf("expected an object with one member, found %d", len(members))
	}
	var name string
	var payload json.RawMessage
	for k, p := range members {
		name, payload = k, p
	}
	if err := e.checkVariant(name); err != nil {
		return "", nil, err
	}
	return name, payload, nil
}

func (e *Enum) checkVariant(name string) error {
	if e.Has(name) {
		return nil
	}
	expected := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		expected[i] = "`" + v.Name + "`"
	}
	return fmt.Errorf("unknown variant `%s`, expected one of %s", name, strings.Join(expected, ", "))
}

// UnmarshalTuple decodes the payload of a positional variant into fields.
func UnmarshalTuple(payload json.RawMessage, fields ...any) error {
	if len(fields) == 1 {
		return json.Unmarshal(payload, fields[0])
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(payload, &elems); err != nil {
		return err
	}
	if len(elems) != len(fields) {
		return fmt.Errorf("invalid length %d, expected tuple of %d elements", len(elems), len(fields))
	}
	for i, elem := range elems {
		if err := json.Unmarshal(elem, fields[i]); err != nil {
			return err
		}
	}
	return nil
}
