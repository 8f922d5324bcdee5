package gen

import (
	"fmt"
	"go/ast"
	"strconv"
	"strings"

	"github.com/google/shlex"
)

const directivePrefix = "//treeflect:"

// directive is one //treeflect:<verb> comment line. Arguments are
// shell-style words, either key=value or a bare flag.
type directive struct {
	verb  string
	args  map[string]string
	flags map[string]bool
}

func parseDirective(text string) (directive, error) {
	rest := strings.TrimPrefix(text, directivePrefix)
	words, err := shlex.Split(rest)
	if err != nil {
		return directive{}, fmt.Errorf("invalid directive %q: %w", text, err)
	}
	if len(words) == 0 {
		return directive{}, fmt.Errorf("empty directive %q", text)
	}
	d := directive{
		verb:  words[0],
		args:  make(map[string]string),
		flags: make(map[string]bool),
	}
	for _, w := range words[1:] {
		if k, v, ok := strings.Cut(w, "="); ok {
			d.args[k] = v
		} else {
			d.flags[w] = true
		}
	}
	return d, nil
}

// directives returns the treeflect directives in a doc comment.
func directives(doc *ast.CommentGroup) ([]directive, error) {
	if doc == nil {
		return nil, nil
	}
	var ds []directive
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, directivePrefix) {
			continue
		}
		d, err := parseDirective(c.Text)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return ds, nil
}

func (d directive) intArg(key string) (int, error) {
	s, ok := d.args[key]
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: %s=%q is not a valid count", d.verb, key, s)
	}
	return n, nil
}

// checkKeys reports keys and flags the verb does not accept.
func (d directive) checkKeys(keys ...string) error {
	allowed := make(map[string]bool, len(keys))
	for _, k := range keys {
		allowed[k] = true
	}
	for k := range d.args {
		if !allowed[k] {
			return fmt.Errorf("%s: unknown argument %q", d.verb, k)
		}
	}
	for f := range d.flags {
		if !allowed[f] {
			return fmt.Errorf("%s: unknown flag %q", d.verb, f)
		}
	}
	return nil
}
