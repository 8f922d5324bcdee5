package node

import (
	"encoding/json"
	"fmt"
	"strconv"
	"testing"

	"github.com/kr/pretty"

	"github.com/jasonmoo/treeflect/command"
)

// The aggregates below are written the way internal/gen emits them.

type parent struct {
	Foo   String `json:"foo"`
	Bar   Uint32 `json:"bar"`
	Baz   Bool   `json:"baz"`
	Child child  `json:"child"`

	private int64
}

type child struct {
	Qux Int32 `json:"qux"`
}

func (c *child) addToQux(args []string) string {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return err.Error()
	}
	c.Qux += Int32(n)
	return ""
}

func (c *child) sameName(args []string) string {
	return "basic action"
}

var parentNode = &Struct{
	Name: "Parent",
	Fields: []Field{
		{Name: "foo", Type: "String"},
		{Name: "bar", Type: "Uint32"},
		{Name: "baz", Type: "Bool"},
		{Name: "child", Type: "Child"},
	},
}

func (p *parent) NodeStep(r command.Runner) string {
	tok := r.Step()
	switch tok.Kind {
	case command.KindChainProperty:
		switch tok.Name {
		case "foo":
			return p.Foo.NodeStep(r)
		case "bar":
			return p.Bar.NodeStep(r)
		case "baz":
			return p.Baz.NodeStep(r)
		case "child":
			return p.Child.NodeStep(r)
		}
		return NoProperty(parentNode.Name, tok.Name)
	}
	return StepStruct(p, parentNode, tok, r)
}

func (p *parent) NodeDefault() {
	SetDefault(&p.Foo)
	SetDefault(&p.Bar)
	SetDefault(&p.Baz)
	SetDefault(&p.Child)
}

func (p *parent) NodeChildren() []Child {
	return []Child{
		{Segment: ".foo", Node: &p.Foo},
		{Segment: ".bar", Node: &p.Bar},
		{Segment: ".baz", Node: &p.Baz},
		{Segment: ".child", Node: &p.Child},
	}
}

var childNode = &Struct{
	Name: "Child",
	Fields: []Field{
		{Name: "qux", Type: "Int32"},
	},
	Actions: []Action{
		{Name: "action_name", Args: 1, Help: "add the first argument to qux"},
		{Name: "same_name"},
	},
}

func (c *child) NodeStep(r command.Runner) string {
	tok := r.Step()
	switch tok.Kind {
	case command.KindChainProperty:
		switch tok.Name {
		case "qux":
			return c.Qux.NodeStep(r)
		}
		return NoProperty(childNode.Name, tok.Name)
	case command.KindCustom:
		if out, ok := childNode.CheckAction(tok); !ok {
			return out
		}
		switch tok.Name {
		case "action_name":
			return c.addToQux(tok.Args)
		case "same_name":
			return c.sameName(tok.Args)
		}
	}
	return StepStruct(c, childNode, tok, r)
}

func (c *child) NodeDefault() {
	SetDefault(&c.Qux)
}

func (c *child) NodeChildren() []Child {
	return []Child{
		{Segment: ".qux", Node: &c.Qux},
	}
}

func newParent() *parent {
	return &parent{Foo: "hiya", Bar: 42, Baz: true, Child: child{Qux: -13}, private: 1337}
}

func TestStruct_Chain(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		want string
	}{
		{"string", "foo:get", "hiya"},
		{"uint", "bar:get", "42"},
		{"bool", "baz:get", "true"},
		{"nested", "child.qux:get", "-13"},
		{"unknown", "notfoo:get", "Parent does not have a property 'notfoo'"},
		{"unexported", "private:get", "Parent does not have a property 'private'"},
		{"nested unknown", "child.quux:get", "Child does not have a property 'quux'"},
		{"variant", ":variant something", `Parent cannot 'SetVariant("something")'`},
		{"index", "[0]:get", "Parent cannot 'ChainIndex(0)'"},
		{"unknown action", ":frobnicate", "Parent cannot 'frobnicate'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Step(newParent(), tt.cmd); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.cmd, got, tt.want)
			}
		})
	}
}

func TestStruct_GetSet(t *testing.T) {
	want := `{
  "foo": "hiya",
  "bar": 42,
  "baz": true,
  "child": {
    "qux": -13
  }
}`
	if got := Step(newParent(), ":get"); got != want {
		t.Errorf("get = %q, want %q", got, want)
	}

	p := newParent()
	if got := Step(p, `:set {"foo":"Memes","bar":7,"baz":false,"child":{"qux":1337}}`); got != "" {
		t.Fatalf("set = %q", got)
	}
	// set replaces the whole value, unexported fields included.
	wantParent := &parent{Foo: "Memes", Bar: 7, Baz: false, Child: child{Qux: 1337}}
	if diff := pretty.Diff(p, wantParent); len(diff) > 0 {
		t.Errorf("after set:\n%s", diff)
	}

	p = newParent()
	got := Step(p, `:set {"bar": -1}`)
	if want := "Parent set Error: json: cannot unmarshal number -1 into Go struct field parent.bar of type node.Uint32"; got != want {
		t.Errorf("set invalid = %q, want %q", got, want)
	}
	if diff := pretty.Diff(p, newParent()); len(diff) > 0 {
		t.Errorf("parent changed after failed set:\n%s", diff)
	}
}

func TestStruct_Reset(t *testing.T) {
	p := newParent()
	if got := Step(p, ":reset"); got != "" {
		t.Fatalf("reset = %q", got)
	}
	if diff := pretty.Diff(p, &parent{}); len(diff) > 0 {
		t.Errorf("after reset:\n%s", diff)
	}
}

func TestStruct_CopyPaste(t *testing.T) {
	clip := command.NewClipboard()
	a := newParent()
	b := &parent{}

	if got := StepWith(b, ":paste", clip); got != "Nothing to paste: no Parent has been copied" {
		t.Errorf("paste before copy = %q", got)
	}
	if got := StepWith(a, ":copy", clip); got != "" {
		t.Fatalf("copy = %q", got)
	}
	if got := StepWith(b, ":paste", clip); got != "" {
		t.Fatalf("paste = %q", got)
	}
	if b.Bar != 42 || b.Child.Qux != -13 || b.Foo != "hiya" {
		t.Errorf("after paste b = %+v", b)
	}

	// Child has its own slot.
	if got := StepWith(&b.Child, ":paste", clip); got != "Nothing to paste: no Child has been copied" {
		t.Errorf("paste child = %q", got)
	}
}

func TestStruct_CustomActions(t *testing.T) {
	c := &child{Qux: 413}
	if got := Step(c, ":action_name 7"); got != "" {
		t.Fatalf("action_name = %q", got)
	}
	if c.Qux != 420 {
		t.Errorf("qux = %d, want 420", c.Qux)
	}
	if got := Step(c, ":same_name"); got != "basic action" {
		t.Errorf("same_name = %q", got)
	}
	if got := Step(c, ":action_name"); got != "Action 'action_name' takes 1 argument(s), got 0" {
		t.Errorf("action_name without args = %q", got)
	}
	if got := Step(c, ":same_name x"); got != "Action 'same_name' takes 0 argument(s), got 1" {
		t.Errorf("same_name with args = %q", got)
	}
	if c.Qux != 420 {
		t.Errorf("qux = %d after failed actions, want 420", c.Qux)
	}
}

func TestStruct_Help(t *testing.T) {
	wantParent := `
Parent Help

Actions:
*   help  - display this help
*   get   - display JSON
*   set   - set to JSON
*   copy  - copy the values from this struct
*   paste - paste the copied values to this struct
*   reset - reset to default values

Accessors:
*   foo - String
*   bar - Uint32
*   baz - Bool
*   child - Child`
	if got := Step(newParent(), ":help"); got != wantParent {
		t.Errorf("help = %q, want %q", got, wantParent)
	}

	wantChild := `
Child Help

Actions:
*   help  - display this help
*   get   - display JSON
*   set   - set to JSON
*   copy  - copy the values from this struct
*   paste - paste the copied values to this struct
*   reset - reset to default values
*   action_name - add the first argument to qux
*   same_name

Accessors:
*   qux - Int32`
	if got := Step(&child{}, ":help"); got != wantChild {
		t.Errorf("help = %q, want %q", got, wantChild)
	}
}

type someEnum struct {
	Value someEnumVariant
}

type someEnumVariant interface{ isSomeEnum() }

type (
	foo struct{}
	bar struct{}
	baz struct {
		X Float32 `json:"x"`
		Y Float32 `json:"y"`
	}
	qux  struct{ V0 Uint8 }
	quux struct {
		V0 Int64
		V1 String
		V2 Bool
	}
)

func (*foo) isSomeEnum()  {}
func (*bar) isSomeEnum()  {}
func (*baz) isSomeEnum()  {}
func (*qux) isSomeEnum()  {}
func (*quux) isSomeEnum() {}

var someEnumNode = &Enum{
	Name: "SomeEnum",
	Variants: []Variant{
		{Name: "Foo"},
		{Name: "Bar"},
		{Name: "Baz", Fields: []Field{{Name: "x", Type: "Float32"}, {Name: "y", Type: "Float32"}}},
		{Name: "Qux", Positional: true, Fields: []Field{{Name: "V0", Type: "Uint8"}}},
		{Name: "Quux", Positional: true, Fields: []Field{{Name: "V0", Type: "Int64"}, {Name: "V1", Type: "String"}, {Name: "V2", Type: "Bool"}}},
	},
}

func newSomeEnumVariant(name string) someEnumVariant {
	switch name {
	case "Foo":
		return &foo{}
	case "Bar":
		return &bar{}
	case "Baz":
		v := &baz{}
		SetDefault(&v.X)
		SetDefault(&v.Y)
		return v
	case "Qux":
		v := &qux{}
		SetDefault(&v.V0)
		return v
	case "Quux":
		v := &quux{}
		SetDefault(&v.V0)
		SetDefault(&v.V1)
		SetDefault(&v.V2)
		return v
	}
	return nil
}

func (e *someEnum) variant() someEnumVariant {
	if e.Value == nil {
		e.Value = newSomeEnumVariant("Foo")
	}
	return e.Value
}

func (e *someEnum) VariantName() string {
	switch e.variant().(type) {
	case *foo:
		return "Foo"
	case *bar:
		return "Bar"
	case *baz:
		return "Baz"
	case *qux:
		return "Qux"
	case *quux:
		return "Quux"
	}
	return ""
}

func (e *someEnum) NodeDefault() {
	e.Value = newSomeEnumVariant("Foo")
}

func (e *someEnum) NodeStep(r command.Runner) string {
	tok := r.Step()
	switch tok.Kind {
	case command.KindChainProperty:
		switch v := e.variant().(type) {
		case *baz:
			switch tok.Name {
			case "x":
				return v.X.NodeStep(r)
			case "y":
				return v.Y.NodeStep(r)
			}
		}
		return NoProperty(e.VariantName(), tok.Name)
	case command.KindChainIndex:
		switch v := e.variant().(type) {
		case *qux:
			switch tok.Index {
			case 0:
				return v.V0.NodeStep(r)
			}
			return VariantIndexError("Qux", tok.Index, 1)
		case *quux:
			switch tok.Index {
			case 0:
				return v.V0.NodeStep(r)
			case 1:
				return v.V1.NodeStep(r)
			case 2:
				return v.V2.NodeStep(r)
			}
			return VariantIndexError("Quux", tok.Index, 3)
		}
		return CannotIndex(e.VariantName())
	case command.KindSetVariant:
		v := newSomeEnumVariant(tok.Name)
		if v == nil {
			return someEnumNode.NoVariant(tok.Name)
		}
		e.Value = v
		return ""
	}
	return StepEnum(e, someEnumNode, tok, r)
}

func (e *someEnum) NodeChildren() []Child {
	switch v := e.variant().(type) {
	case *baz:
		return []Child{{Segment: ".x", Node: &v.X}, {Segment: ".y", Node: &v.Y}}
	case *qux:
		return []Child{{Segment: "[0]", Node: &v.V0}}
	case *quux:
		return []Child{{Segment: "[0]", Node: &v.V0}, {Segment: "[1]", Node: &v.V1}, {Segment: "[2]", Node: &v.V2}}
	}
	return nil
}

func (e someEnum) MarshalJSON() ([]byte, error) {
	switch v := e.variant().(type) {
	case *foo:
		return MarshalVariant("Foo", nil)
	case *bar:
		return MarshalVariant("Bar", nil)
	case *baz:
		return MarshalVariant("Baz", v)
	case *qux:
		return MarshalVariant("Qux", Tuple(v.V0))
	case *quux:
		return MarshalVariant("Quux", Tuple(v.V0, v.V1, v.V2))
	}
	return nil, fmt.Errorf("SomeEnum: unknown variant %T", e.Value)
}

func (e *someEnum) UnmarshalJSON(data []byte) error {
	name, payload, err := someEnumNode.DecodeVariant(data)
	if err != nil {
		return err
	}
	v := newSomeEnumVariant(name)
	if payload != nil {
		switch v := v.(type) {
		case *baz:
			if err := json.Unmarshal(payload, v); err != nil {
				return err
			}
		case *qux:
			if err := UnmarshalTuple(payload, &v.V0); err != nil {
				return err
			}
		case *quux:
			if err := UnmarshalTuple(payload, &v.V0, &v.V1, &v.V2); err != nil {
				return err
			}
		}
	}
	e.Value = v
	return nil
}

func TestEnum_Get(t *testing.T) {
	tests := []struct {
		name  string
		value someEnumVariant
		want  string
	}{
		{"nil is default", nil, `"Foo"`},
		{"unit", &bar{}, `"Bar"`},
		{"single tuple", &qux{V0: 42}, "{\n  \"Qux\": 42\n}"},
		{"tuple", &quux{V0: -1337, V1: "YOYOYO", V2: true}, "{\n  \"Quux\": [\n    -1337,\n    \"YOYOYO\",\n    true\n  ]\n}"},
		{"struct", &baz{X: 42.5, Y: 44.11}, "{\n  \"Baz\": {\n    \"x\": 42.5,\n    \"y\": 44.11\n  }\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &someEnum{Value: tt.value}
			if got := Step(e, ":get"); got != tt.want {
				t.Errorf("get = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnum_Set(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    someEnumVariant
	}{
		{"unit json", `"Bar"`, &bar{}},
		{"unit bare", `Bar`, &bar{}},
		{"single tuple", `{"Qux":13}`, &qux{V0: 13}},
		{"tuple", `{"Quux":[-42, "SomeString", true]}`, &quux{V0: -42, V1: "SomeString", V2: true}},
		{"struct", `{"Baz":{"x":1337.5,"y":42.25}}`, &baz{X: 1337.5, Y: 42.25}},
		{"struct partial", `{"Baz":{"y":2}}`, &baz{Y: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &someEnum{Value: &foo{}}
			if got := StepTokens(e, []command.Token{command.Set(tt.payload)}, nil); got != "" {
				t.Fatalf("set %s = %q", tt.payload, got)
			}
			if diff := pretty.Diff(e.Value, tt.want); len(diff) > 0 {
				t.Errorf("after set:\n%s", diff)
			}
		})
	}
}

func TestEnum_SetErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"unknown variant", `"Aether"`, "SomeEnum set Error: unknown variant `Aether`, expected one of `Foo`, `Bar`, `Baz`, `Qux`, `Quux`"},
		{"unknown in object", `{"Aether":1}`, "SomeEnum set Error: unknown variant `Aether`, expected one of `Foo`, `Bar`, `Baz`, `Qux`, `Quux`"},
		{"two members", `{"Qux":1,"Bar":null}`, "SomeEnum set Error: expected an object with one member, found 2"},
		{"tuple length", `{"Quux":[1, "a"]}`, "SomeEnum set Error: invalid length 2, expected tuple of 3 elements"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &someEnum{Value: &qux{V0: 9}}
			if got := StepTokens(e, []command.Token{command.Set(tt.payload)}, nil); got != tt.want {
				t.Errorf("set %s = %q, want %q", tt.payload, got, tt.want)
			}
			if diff := pretty.Diff(e.Value, &qux{V0: 9}); len(diff) > 0 {
				t.Errorf("enum changed after failed set:\n%s", diff)
			}
		})
	}
}

func TestEnum_Chain(t *testing.T) {
	tests := []struct {
		name  string
		value someEnumVariant
		cmd   string
		want  string
	}{
		{"property", &baz{X: 42, Y: 13.37}, "x:get", "42"},
		{"property y", &baz{X: 42, Y: 13.37}, "y:get", "13.37"},
		{"no property unit", &foo{}, "notx:get", "Foo does not have a property 'notx'"},
		{"no property tuple", &qux{V0: 42}, "notx:get", "Qux does not have a property 'notx'"},
		{"no property struct", &baz{}, "notx:get", "Baz does not have a property 'notx'"},
		{"index unit", &foo{}, "[0]:get", "Cannot index Foo"},
		{"index struct", &baz{}, "[0]:get", "Cannot index Baz"},
		{"index tuple 0", &quux{V0: -1337, V1: "YOYOYO", V2: true}, "[0]:get", "-1337"},
		{"index tuple 1", &quux{V0: -1337, V1: "YOYOYO", V2: true}, "[1]:get", "YOYOYO"},
		{"index tuple 2", &quux{V0: -1337, V1: "YOYOYO", V2: true}, "[2]:get", "true"},
		{"index tuple past end", &quux{}, "[3]:get", "Used index 3 on a Quux (try a value between 0-2)"},
		{"index nil default", nil, "[0]:get", "Cannot index Foo"},
		{"key", &foo{}, `["x"]:get`, `SomeEnum cannot 'ChainKey("x")'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &someEnum{Value: tt.value}
			if got := Step(e, tt.cmd); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.cmd, got, tt.want)
			}
		})
	}
}

func TestEnum_SetVariant(t *testing.T) {
	e := &someEnum{Value: &bar{}}
	steps := []struct {
		cmd  string
		want someEnumVariant
	}{
		{":variant Foo", &foo{}},
		{":variant Baz", &baz{}},
		{":variant Qux", &qux{}},
	}
	for _, s := range steps {
		if got := Step(e, s.cmd); got != "" {
			t.Fatalf("%s = %q", s.cmd, got)
		}
		if diff := pretty.Diff(e.Value, s.want); len(diff) > 0 {
			t.Errorf("after %s:\n%s", s.cmd, diff)
		}
	}

	e = &someEnum{Value: &bar{}}
	if got := Step(e, ":variant nonexistent"); got != "SomeEnum does not have a variant 'nonexistent'" {
		t.Errorf("variant nonexistent = %q", got)
	}
	if _, ok := e.Value.(*bar); !ok {
		t.Errorf("value = %T after failed variant, want *bar", e.Value)
	}
}

func TestEnum_DefaultAndCopyPaste(t *testing.T) {
	e := &someEnum{Value: &bar{}}
	if got := Step(e, ":reset"); got != "" {
		t.Fatalf("reset = %q", got)
	}
	if _, ok := e.Value.(*foo); !ok {
		t.Errorf("value = %T after reset, want *foo", e.Value)
	}

	clip := command.NewClipboard()
	a := &someEnum{Value: &qux{V0: 13}}
	b := &someEnum{Value: &foo{}}
	if got := StepWith(a, ":copy", clip); got != "" {
		t.Fatalf("copy = %q", got)
	}
	if got := StepWith(b, ":paste", clip); got != "" {
		t.Fatalf("paste = %q", got)
	}
	if diff := pretty.Diff(b.Value, &qux{V0: 13}); len(diff) > 0 {
		t.Errorf("after paste:\n%s", diff)
	}
}

func TestEnum_Help(t *testing.T) {
	want := `
SomeEnum Help

Actions:
*   help    - display this help
*   get     - display JSON
*   set     - set to JSON
*   copy    - copy the values from this enum
*   paste   - paste the copied values to this enum
*   reset   - reset to default variant
*   variant - set to the specified variant

Valid variants:
*   Foo
*   Bar
*   Baz
*   Qux
*   Quux

Accessors:
Changes depending on which variant the enum is currently set to:

As Baz:
*   .x - Float32
*   .y - Float32
As Qux:
*   [0] - Uint8
As Quux:
*   [0] - Int64
*   [1] - String
*   [2] - Bool
`
	if got := Step(&someEnum{}, ":help"); got != want {
		t.Errorf("help = %q, want %q", got, want)
	}
}

func TestEnum_InContainer(t *testing.T) {
	vec := NewContextVec[someEnum, *someEnum]()
	if got := Step(vec, ":insert"); got != "" {
		t.Fatalf("insert = %q", got)
	}
	if _, ok := vec.At(0).Value.(*foo); !ok {
		t.Errorf("inserted element = %T, want default variant *foo", vec.At(0).Value)
	}
	Step(vec, "[0]:variant Quux")
	Step(vec, `[0][1]:set "in a vector"`)
	if got, want := Step(vec, ":get"), "[\n  {\n    \"Quux\": [\n      0,\n      \"in a vector\",\n      false\n    ]\n  }\n]"; got != want {
		t.Errorf("get = %q, want %q", got, want)
	}
}
