package node

import (
	"testing"

	"github.com/kr/pretty"
)

type intMap = Map[Int32, *Int32]

func testMap4() *intMap {
	return &intMap{"foo": 100000, "bar": 13, "baz": -358, "qux": 42}
}
func testMap1() *intMap { return &intMap{"foo": 13} }
func testMap0() *intMap { return &intMap{} }

func TestMap_Chain(t *testing.T) {
	tests := []struct {
		name string
		m    *intMap
		cmd  string
		want string
	}{
		{"key", testMap4(), `["foo"]:get`, "100000"},
		{"key with space", &intMap{"a b": 7}, `["a b"]:get`, "7"},
		{"missing key", testMap4(), `["quux"]:get`, "Used key 'quux' on a map that does not contain it. Try one of: 'bar', 'baz', 'foo', 'qux'"},
		{"empty", testMap0(), `["map"]:get`, "Used key 'map' on an empty map."},
		{"all sorted", testMap4(), "[*]:get", "|13|-358|100000|42|"},
		{"length", testMap4(), ".length:get", "4"},
		{"keys", testMap4(), ":keys", "'bar', 'baz', 'foo', 'qux'"},
		{"index", testMap4(), "[0]:get", "map cannot 'ChainIndex(0)'"},
		{"context", testMap4(), "[?]:get", "map cannot 'ChainContext'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Step(tt.m, tt.cmd); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.cmd, got, tt.want)
			}
		})
	}
}

func TestMap_StepWritesBack(t *testing.T) {
	m := testMap4()
	if got := Step(m, `["bar"]:add 7`); got != "" {
		t.Fatalf("add = %q", got)
	}
	if got := (*m)["bar"]; got != 20 {
		t.Errorf(`m["bar"] = %d, want 20`, got)
	}
	if got := Step(m, "[*]:set 1"); got != "|||||" {
		t.Fatalf("[*]:set 1 = %q", got)
	}
	if diff := pretty.Diff(*m, intMap{"foo": 1, "bar": 1, "baz": 1, "qux": 1}); len(diff) > 0 {
		t.Errorf("map mismatch:\n%s", diff)
	}
}

func TestMap_Insert(t *testing.T) {
	m := testMap4()
	want := "Tried to insert key 'qux' on a map that already contains it. Current keys: 'bar', 'baz', 'foo', 'qux'"
	if got := Step(m, `:insert "qux"`); got != want {
		t.Errorf("insert duplicate = %q, want %q", got, want)
	}
	if (*m)["qux"] != 42 || len(*m) != 4 {
		t.Errorf("map changed after duplicate insert: %v", *m)
	}

	if got := Step(m, `:insert "quux"`); got != "" {
		t.Fatalf("insert = %q", got)
	}
	if v, ok := (*m)["quux"]; !ok || v != 0 || len(*m) != 5 {
		t.Errorf("after insert quux = %v, %v, len %d", v, ok, len(*m))
	}
}

func TestMap_Remove(t *testing.T) {
	m := testMap4()
	want := "Tried to remove key 'quux' on a map that doesnt contain it. Current keys: 'bar', 'baz', 'foo', 'qux'"
	if got := Step(m, `:remove "quux"`); got != want {
		t.Errorf("remove missing = %q, want %q", got, want)
	}
	if got := Step(m, `:remove "foo"`); got != "" {
		t.Fatalf("remove = %q", got)
	}
	if diff := pretty.Diff(*m, intMap{"bar": 13, "baz": -358, "qux": 42}); len(diff) > 0 {
		t.Errorf("map mismatch:\n%s", diff)
	}
}

func TestMap_GetSet(t *testing.T) {
	if got, want := Step(testMap1(), ":get"), "{\n  \"foo\": 13\n}"; got != want {
		t.Errorf("get = %q, want %q", got, want)
	}
	if got := Step(testMap0(), ":get"); got != "{}" {
		t.Errorf("get empty = %q, want {}", got)
	}

	m := testMap4()
	if got := Step(m, `:set {"value": 1, "string": 99, "a somewhat unusual string": 100}`); got != "" {
		t.Fatalf("set = %q", got)
	}
	if diff := pretty.Diff(*m, intMap{"value": 1, "string": 99, "a somewhat unusual string": 100}); len(diff) > 0 {
		t.Errorf("map mismatch:\n%s", diff)
	}

	m = testMap4()
	want := "map set error: invalid character 'l' looking for beginning of object key string"
	if got := Step(m, ":set {lol, 1]"); got != want {
		t.Errorf("set invalid = %q, want %q", got, want)
	}
	if len(*m) != 4 {
		t.Errorf("map changed after failed set: %v", *m)
	}
}

func TestMap_Reset(t *testing.T) {
	m := testMap4()
	if got := Step(m, ":reset"); got != "" {
		t.Fatalf("reset = %q", got)
	}
	if len(*m) != 0 {
		t.Errorf("len = %d after reset, want 0", len(*m))
	}
}

func TestMap_NilMap(t *testing.T) {
	var m intMap
	if got := Step(&m, `:insert "a"`); got != "" {
		t.Fatalf("insert into nil map = %q", got)
	}
	if len(m) != 1 {
		t.Errorf("len = %d, want 1", len(m))
	}
}
