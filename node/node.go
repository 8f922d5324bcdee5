// Package node implements the dispatch protocol that resolves parsed
// commands against a tree of values.
//
// Every value in a tree implements Node. A node pulls one token from the
// runner; chain tokens descend into children with the same runner, any
// other token is an action the node performs itself. Results and user
// facing errors are both returned as strings.
package node

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jasonmoo/treeflect/command"
)

// Node is a value that can be addressed by command paths.
type Node interface {
	NodeStep(r command.Runner) string
}

// Step parses cmd and dispatches it against root with a fresh clipboard.
// A parse failure is returned as the result.
func Step(root Node, cmd string) string {
	return StepWith(root, cmd, nil)
}

// StepWith is like Step but uses the given clipboard so that copy and
// paste work across calls.
func StepWith(root Node, cmd string, clipboard *command.Clipboard) string {
	r, err := command.ParseRunner(cmd, clipboard)
	if err != nil {
		return err.Error()
	}
	return root.NodeStep(r)
}

// StepTokens dispatches an already parsed command.
func StepTokens(root Node, tokens []command.Token, clipboard *command.Clipboard) string {
	return root.NodeStep(command.NewRunner(tokens, clipboard))
}

// Cannot is the result for a token typeName does not support.
func Cannot(typeName string, tok command.Token) string {
	return fmt.Sprintf("%s cannot '%s'", typeName, tok)
}

// Defaulter is implemented by values whose default is not their zero
// value, such as enums whose default is their first variant.
type Defaulter interface {
	NodeDefault()
}

// SetDefault resets v to its zero value and then applies NodeDefault when
// v implements Defaulter.
func SetDefault[T any](v *T) {
	var zero T
	*v = zero
	if d, ok := any(v).(Defaulter); ok {
		d.NodeDefault()
	}
}

// defaultValue returns the default element for a container.
func defaultValue[T any]() T {
	var v T
	SetDefault(&v)
	return v
}

// fanOut steps every node with its own copy of r and joins the results
// as |r1|r2|...|.
func fanOut(r command.Runner, nodes []Node) string {
	var b strings.Builder
	b.WriteByte('|')
	for _, n := range nodes {
		b.WriteString(n.NodeStep(r))
		b.WriteByte('|')
	}
	return b.String()
}

// Interpreter runs commands against a root node, keeping one clipboard
// for the lifetime of the session.
type Interpreter struct {
	root      Node
	clipboard *command.Clipboard
	logger    *slog.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(l *slog.Logger) Option {
	return func(in *Interpreter) {
		if l != nil {
			in.logger = l
		}
	}
}

// WithClipboard shares an existing clipboard with the interpreter.
func WithClipboard(c *command.Clipboard) Option {
	return func(in *Interpreter) {
		if c != nil {
			in.clipboard = c
		}
	}
}

// NewInterpreter returns an interpreter for root.
func NewInterpreter(root Node, opts ...Option) *Interpreter {
	in := &Interpreter{
		root:      root,
		clipboard: command.NewClipboard(),
		logger:    slog.Default().With("component", "treeflect"),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Run parses and dispatches cmd, returning the result string.
func (in *Interpreter) Run(cmd string) string {
	tokens, err := command.Parse(cmd)
	if err != nil {
		in.logger.Debug("parse failed", "command", cmd, "error", err)
		return err.Error()
	}
	in.logger.Debug("dispatch", "command", cmd, "tokens", len(tokens))
	return StepTokens(in.root, tokens, in.clipboard)
}

// Clipboard returns the interpreter's clipboard.
func (in *Interpreter) Clipboard() *command.Clipboard {
	return in.clipboard
}

// Root returns the node commands are dispatched against.
func (in *Interpreter) Root() Node {
	return in.root
}
