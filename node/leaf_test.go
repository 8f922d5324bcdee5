package node

import (
	"testing"

	"github.com/jasonmoo/treeflect/command"
)

func TestBool(t *testing.T) {
	tests := []struct {
		name    string
		start   Bool
		cmd     string
		wantOut string
		want    Bool
	}{
		{"get true", true, ":get", "true", true},
		{"get false", false, ":get", "false", false},
		{"set true", false, ":set true", "", true},
		{"set false", true, ":set false", "", false},
		{"set invalid", true, ":set yes", "Invalid value for bool (needs to be: true or false)", true},
		{"set capitalized", false, ":set True", "Invalid value for bool (needs to be: true or false)", false},
		{"reset", true, ":reset", "", false},
		{"copy unsupported", true, ":copy", "bool cannot 'CopyFrom'", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.start
			if got := Step(&b, tt.cmd); got != tt.wantOut {
				t.Errorf("%s = %q, want %q", tt.cmd, got, tt.wantOut)
			}
			if b != tt.want {
				t.Errorf("value = %v, want %v", b, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name    string
		start   String
		cmd     string
		wantOut string
		want    String
	}{
		{"get", "hiya", ":get", "hiya", "hiya"},
		{"set word", "hiya", ":set Memes", "", "Memes"},
		{"set words", "", ":set some value here", "", "some value here"},
		{"set quoted", "", `:set "  padded  "`, "", "  padded  "},
		{"set empty", "hiya", `:set ""`, "", ""},
		{"reset", "hiya", ":reset", "", ""},
		{"index unsupported", "hiya", "[0]:get", "string cannot 'ChainIndex(0)'", "hiya"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.start
			if got := Step(&s, tt.cmd); got != tt.wantOut {
				t.Errorf("%s = %q, want %q", tt.cmd, got, tt.wantOut)
			}
			if s != tt.want {
				t.Errorf("value = %q, want %q", s, tt.want)
			}
		})
	}
}

func TestString_CopyPaste(t *testing.T) {
	clip := command.NewClipboard()
	a := String("copied value")
	b := String("something else")

	if got := StepWith(&b, ":paste", clip); got != "Nothing to paste: no string has been copied" {
		t.Errorf("paste before copy = %q", got)
	}
	if got := StepWith(&a, ":copy", clip); got != "" {
		t.Fatalf("copy = %q", got)
	}
	if got := StepWith(&b, ":paste", clip); got != "" {
		t.Fatalf("paste = %q", got)
	}
	if b != "copied value" {
		t.Errorf("b = %q, want %q", b, "copied value")
	}
}

func TestLeaf_GetIsIdempotent(t *testing.T) {
	nodes := []Node{ptr(Bool(true)), ptr(String("x")), ptr(Int(-4)), ptr(Float32(2.5))}
	for _, n := range nodes {
		if a, b := Step(n, ":get"), Step(n, ":get"); a != b {
			t.Errorf("get on %T not stable: %q then %q", n, a, b)
		}
		if a, b := Step(n, ":help"), Step(n, ":help"); a != b {
			t.Errorf("help on %T not stable", n)
		}
	}
}
