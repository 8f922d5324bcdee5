package command

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError describes why a command could not be parsed.
type ParseError struct {
	Pos int    // byte offset into the input
	Msg string
}

func (e *ParseError) Error() string {
	return e.Msg
}

// Parse converts a command string into its token sequence.
//
// A command is zero or more path segments followed by exactly one action:
//
//	foo.bar[2]["key"][?][*]:set "some value"
//
// A command that does not start with '.', '[' or ':' begins with an
// implicit property. Parsing is a single left to right pass.
func Parse(input string) ([]Token, error) {
	if strings.TrimSpace(input) == "" {
		return nil, &ParseError{Pos: 0, Msg: "Empty command"}
	}

	p := &parser{input: input}
	if c := input[0]; c != '.' && c != '[' && c != ':' {
		if err := p.parseProperty(); err != nil {
			return nil, err
		}
	}
	return p.parse()
}

// parser holds state during parsing.
type parser struct {
	input  string
	pos    int
	tokens []Token
}

func (p *parser) errorf(pos int, format string, args ...any) error {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parse() ([]Token, error) {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '.':
			p.pos++
			if err := p.parseProperty(); err != nil {
				return nil, err
			}
		case '[':
			if err := p.parseIndex(); err != nil {
				return nil, err
			}
		case ':':
			p.pos++
			if err := p.parseAction(); err != nil {
				return nil, err
			}
			return p.tokens, nil
		default:
			return nil, p.errorf(p.pos, "Unexpected character %q at position %d", p.input[p.pos], p.pos)
		}
	}
	return nil, p.errorf(p.pos, "Missing action")
}

// parseProperty reads a property name up to the next '.', '[' or ':'.
func (p *parser) parseProperty() error {
	start := p.pos
	for p.pos < len(p.input) && !isSegmentEnd(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return p.errorf(start, "Empty property at position %d", start)
	}
	p.tokens = append(p.tokens, ChainProperty(p.input[start:p.pos]))
	return nil
}

func isSegmentEnd(c byte) bool {
	return c == '.' || c == '[' || c == ':'
}

// parseIndex reads one of [digits], ["key"], [?] or [*].
func (p *parser) parseIndex() error {
	open := p.pos
	p.pos++ // skip '['

	if p.pos < len(p.input) && p.input[p.pos] == '"' {
		key, err := p.parseQuoted()
		if err != nil {
			return err
		}
		if err := p.expect(']', open); err != nil {
			return err
		}
		p.tokens = append(p.tokens, ChainKey(key))
		return nil
	}

	end := strings.IndexByte(p.input[p.pos:], ']')
	if end < 0 {
		return p.errorf(open, "Unclosed '[' at position %d", open)
	}
	body := p.input[p.pos : p.pos+end]
	p.pos += end + 1

	switch body {
	case "?":
		p.tokens = append(p.tokens, ChainContext())
	case "*":
		p.tokens = append(p.tokens, ChainAll())
	default:
		i, ok := parseIndexValue(body)
		if !ok {
			return p.errorf(open, "Invalid index '%s' (use a number, a quoted key, ? or *)", body)
		}
		p.tokens = append(p.tokens, ChainIndex(i))
	}
	return nil
}

func (p *parser) expect(c byte, open int) error {
	if p.pos >= len(p.input) || p.input[p.pos] != c {
		return p.errorf(open, "Unclosed '[' at position %d", open)
	}
	p.pos++
	return nil
}

// parseQuoted reads a double quoted string starting at p.pos, resolving
// escapes. On return p.pos is just past the closing quote.
func (p *parser) parseQuoted() (string, error) {
	open := p.pos
	p.pos++ // skip opening quote

	var b strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch c {
		case '"':
			p.pos++
			return b.String(), nil
		case '\\':
			if p.pos+1 >= len(p.input) {
				return "", p.errorf(open, "Unterminated quote at position %d", open)
			}
			r, ok := unescape(p.input[p.pos+1])
			if !ok {
				return "", p.errorf(p.pos, "Invalid escape '\\%c' at position %d", p.input[p.pos+1], p.pos)
			}
			b.WriteByte(r)
			p.pos += 2
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", p.errorf(open, "Unterminated quote at position %d", open)
}

func unescape(c byte) (byte, bool) {
	switch c {
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	case ' ':
		return ' ', true
	case 't':
		return '\t', true
	case 'n':
		return '\n', true
	}
	return 0, false
}

// word is one whitespace separated piece of the action clause.
type word struct {
	text   string
	quoted bool
}

// parseAction tokenizes everything after ':' into an action and its
// arguments and appends the resulting terminal token.
func (p *parser) parseAction() error {
	start := p.pos
	words, err := p.splitWords()
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return p.errorf(start, "Missing action")
	}

	name, args := words[0].text, words[1:]
	tok, err := p.actionToken(name, args, start)
	if err != nil {
		return err
	}
	p.tokens = append(p.tokens, tok)
	return nil
}

// splitWords splits the rest of the input on whitespace. A word that is
// entirely one double quoted string keeps its whitespace and may contain
// escapes; any other quotes are literal so JSON payloads survive.
func (p *parser) splitWords() ([]word, error) {
	var (
		words  []word
		b      strings.Builder
		inWord bool
		quoted bool
	)
	flush := func() {
		if inWord {
			words = append(words, word{text: b.String(), quoted: quoted})
		}
		b.Reset()
		inWord, quoted = false, false
	}

	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case isSpace(c):
			flush()
			p.pos++
		case c == '"' && !inWord:
			start := p.pos
			s, err := p.parseQuoted()
			if err != nil {
				return nil, err
			}
			if p.pos < len(p.input) && !isSpace(p.input[p.pos]) {
				// "b": in a JSON payload; keep the word literal.
				p.pos = start
				b.WriteByte(c)
				inWord = true
				p.pos++
				continue
			}
			b.WriteString(s)
			inWord, quoted = true, true
		default:
			b.WriteByte(c)
			inWord = true
			p.pos++
		}
	}
	flush()
	return words, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func (p *parser) actionToken(name string, args []word, pos int) (Token, error) {
	switch name {
	case "get", "help", "reset", "edit", "copy", "paste", "getkeys", "keys":
		if len(args) > 0 {
			return Token{}, p.errorf(pos, "Action '%s' does not take arguments", name)
		}
		return simpleActions[name](), nil

	case "set":
		if len(args) == 0 {
			return Token{}, p.errorf(pos, "Missing value for 'set'")
		}
		return Set(joinWords(args)), nil

	case "insert":
		switch len(args) {
		case 0:
			return Insert(), nil
		case 1:
			if i, ok := wordIndex(args[0]); ok {
				return InsertIndex(i), nil
			}
			return InsertKey(args[0].text), nil
		case 2:
			i, ok := wordIndex(args[0])
			if !ok {
				return Token{}, p.errorf(pos, "Invalid index '%s' for 'insert'", args[0].text)
			}
			return InsertIndexKey(i, args[1].text), nil
		}
		return Token{}, p.errorf(pos, "Too many arguments for 'insert' (expected at most 2, got %d)", len(args))

	case "remove":
		switch len(args) {
		case 0:
			return Remove(), nil
		case 1:
			if i, ok := wordIndex(args[0]); ok {
				return RemoveIndex(i), nil
			}
			return RemoveKey(args[0].text), nil
		}
		return Token{}, p.errorf(pos, "Too many arguments for 'remove' (expected at most 1, got %d)", len(args))

	case "variant":
		switch len(args) {
		case 0:
			return SetVariant(""), nil
		case 1:
			return SetVariant(args[0].text), nil
		}
		return Token{}, p.errorf(pos, "Too many arguments for 'variant' (expected at most 1, got %d)", len(args))
	}

	var custom []string
	for _, a := range args {
		custom = append(custom, a.text)
	}
	return Custom(name, custom...), nil
}

var simpleActions = map[string]func() Token{
	"get":     Get,
	"help":    Help,
	"reset":   SetDefault,
	"edit":    Edit,
	"copy":    CopyFrom,
	"paste":   PasteTo,
	"getkeys": GetKeys,
	"keys":    GetKeys,
}

func joinWords(words []word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.text
	}
	return strings.Join(parts, " ")
}

// wordIndex interprets an unquoted argument as an element index.
func wordIndex(w word) (int, bool) {
	if w.quoted {
		return 0, false
	}
	return parseIndexValue(w.text)
}

func parseIndexValue(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return i, true
}
