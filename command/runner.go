package command

import "fmt"

// Runner is a cursor over a parsed command. Nodes pull one token at a
// time with Step and hand the runner on to their children.
//
// A Runner is a small value: copying it yields an independent cursor over
// the same immutable token slice, which is how ChainContext and ChainAll
// fan out to several children without disturbing each other.
type Runner struct {
	tokens    []Token
	pos       int
	clipboard *Clipboard
}

// NewRunner returns a runner positioned at the first token. A nil
// clipboard is replaced by an empty one.
func NewRunner(tokens []Token, clipboard *Clipboard) Runner {
	if clipboard == nil {
		clipboard = NewClipboard()
	}
	return Runner{tokens: tokens, clipboard: clipboard}
}

// ParseRunner parses input and returns a runner over the result.
func ParseRunner(input string, clipboard *Clipboard) (Runner, error) {
	tokens, err := Parse(input)
	if err != nil {
		return Runner{}, err
	}
	return NewRunner(tokens, clipboard), nil
}

// Step returns the next unconsumed token. Stepping past the final token
// is a programming error and panics.
func (r *Runner) Step() Token {
	if r.pos >= len(r.tokens) {
		panic(fmt.Sprintf("command runner stepped past the end of %d tokens", len(r.tokens)))
	}
	t := r.tokens[r.pos]
	r.pos++
	return t
}

// Remaining returns the number of tokens left to consume.
func (r Runner) Remaining() int {
	return len(r.tokens) - r.pos
}

// Tokens returns the unconsumed tokens.
func (r Runner) Tokens() []Token {
	return r.tokens[r.pos:]
}

// Clipboard returns the clipboard shared by every copy of this runner.
// The zero Runner has none; use NewRunner or ParseRunner.
func (r Runner) Clipboard() *Clipboard {
	if r.clipboard == nil {
		panic("command runner has no clipboard; create it with NewRunner")
	}
	return r.clipboard
}
