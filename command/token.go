// Package command parses treeflect command paths into tokens and provides
// the cursor and clipboard that nodes consume while dispatching.
package command

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the instruction a Token carries.
type Kind uint8

const (
	KindChainProperty Kind = iota
	KindChainIndex
	KindChainKey
	KindChainContext
	KindChainAll
	KindGet
	KindSet
	KindHelp
	KindEdit
	KindCopyFrom
	KindPasteTo
	KindSetDefault
	KindSetVariant
	KindInsert
	KindInsertIndex
	KindInsertKey
	KindInsertIndexKey
	KindRemove
	KindRemoveIndex
	KindRemoveKey
	KindGetKeys
	KindCustom
)

var kindNames = [...]string{
	KindChainProperty:  "ChainProperty",
	KindChainIndex:     "ChainIndex",
	KindChainKey:       "ChainKey",
	KindChainContext:   "ChainContext",
	KindChainAll:       "ChainAll",
	KindGet:            "Get",
	KindSet:            "Set",
	KindHelp:           "Help",
	KindEdit:           "Edit",
	KindCopyFrom:       "CopyFrom",
	KindPasteTo:        "PasteTo",
	KindSetDefault:     "SetDefault",
	KindSetVariant:     "SetVariant",
	KindInsert:         "Insert",
	KindInsertIndex:    "InsertIndex",
	KindInsertKey:      "InsertKey",
	KindInsertIndexKey: "InsertIndexKey",
	KindRemove:         "Remove",
	KindRemoveIndex:    "RemoveIndex",
	KindRemoveKey:      "RemoveKey",
	KindGetKeys:        "GetKeys",
	KindCustom:         "Custom",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsChain reports whether k descends into children rather than terminating
// the command.
func (k Kind) IsChain() bool {
	return k <= KindChainAll
}

// Token is a single instruction of a parsed command.
//
// Only the fields relevant to Kind are set:
//   - Name: property name, key, variant name or custom action name
//   - Index: element index for the index-carrying kinds
//   - Payload: the value passed to Set
//   - Args: the arguments of a Custom action
type Token struct {
	Kind    Kind     `json:"kind"`
	Name    string   `json:"name,omitempty"`
	Index   int      `json:"index,omitempty"`
	Payload string   `json:"payload,omitempty"`
	Args    []string `json:"args,omitempty"`
}

func ChainProperty(name string) Token { return Token{Kind: KindChainProperty, Name: name} }
func ChainIndex(i int) Token          { return Token{Kind: KindChainIndex, Index: i} }
func ChainKey(key string) Token       { return Token{Kind: KindChainKey, Name: key} }
func ChainContext() Token             { return Token{Kind: KindChainContext} }
func ChainAll() Token                 { return Token{Kind: KindChainAll} }
func Get() Token                      { return Token{Kind: KindGet} }
func Set(payload string) Token        { return Token{Kind: KindSet, Payload: payload} }
func Help() Token                     { return Token{Kind: KindHelp} }
func Edit() Token                     { return Token{Kind: KindEdit} }
func CopyFrom() Token                 { return Token{Kind: KindCopyFrom} }
func PasteTo() Token                  { return Token{Kind: KindPasteTo} }
func SetDefault() Token               { return Token{Kind: KindSetDefault} }
func SetVariant(name string) Token    { return Token{Kind: KindSetVariant, Name: name} }
func Insert() Token                   { return Token{Kind: KindInsert} }
func InsertIndex(i int) Token         { return Token{Kind: KindInsertIndex, Index: i} }
func InsertKey(key string) Token      { return Token{Kind: KindInsertKey, Name: key} }
func Remove() Token                   { return Token{Kind: KindRemove} }
func RemoveIndex(i int) Token         { return Token{Kind: KindRemoveIndex, Index: i} }
func RemoveKey(key string) Token      { return Token{Kind: KindRemoveKey, Name: key} }
func GetKeys() Token                  { return Token{Kind: KindGetKeys} }

func InsertIndexKey(i int, key string) Token {
	return Token{Kind: KindInsertIndexKey, Index: i, Name: key}
}

// Custom builds a token for an application defined action.
func Custom(action string, args ...string) Token {
	return Token{Kind: KindCustom, Name: action, Args: args}
}

// String renders the token the way it appears in "cannot" messages,
// e.g. ChainProperty("foo"), InsertIndex(2) or CopyFrom. Custom tokens
// render as the bare action name.
func (t Token) String() string {
	switch t.Kind {
	case KindChainProperty, KindChainKey, KindSetVariant, KindInsertKey, KindRemoveKey:
		return fmt.Sprintf("%s(%s)", t.Kind, strconv.Quote(t.Name))
	case KindChainIndex, KindInsertIndex, KindRemoveIndex:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Index)
	case KindInsertIndexKey:
		return fmt.Sprintf("%s(%d, %s)", t.Kind, t.Index, strconv.Quote(t.Name))
	case KindSet:
		return fmt.Sprintf("%s(%s)", t.Kind, strconv.Quote(t.Payload))
	case KindCustom:
		return t.Name
	default:
		return t.Kind.String()
	}
}

// Equal reports whether two tokens carry the same instruction.
func (t Token) Equal(o Token) bool {
	if t.Kind != o.Kind || t.Name != o.Name || t.Index != o.Index || t.Payload != o.Payload {
		return false
	}
	if len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if t.Args[i] != o.Args[i] {
			return false
		}
	}
	return true
}

// Format renders a token sequence back into command path syntax.
func Format(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		switch t.Kind {
		case KindChainProperty:
			b.WriteByte('.')
			b.WriteString(t.Name)
		case KindChainIndex:
			fmt.Fprintf(&b, "[%d]", t.Index)
		case KindChainKey:
			fmt.Fprintf(&b, "[%s]", quote(t.Name))
		case KindChainContext:
			b.WriteString("[?]")
		case KindChainAll:
			b.WriteString("[*]")
		default:
			b.WriteByte(':')
			b.WriteString(formatAction(t))
		}
	}
	return strings.TrimPrefix(b.String(), ".")
}

func formatAction(t Token) string {
	switch t.Kind {
	case KindGet:
		return "get"
	case KindSet:
		return "set " + quote(t.Payload)
	case KindHelp:
		return "help"
	case KindEdit:
		return "edit"
	case KindCopyFrom:
		return "copy"
	case KindPasteTo:
		return "paste"
	case KindSetDefault:
		return "reset"
	case KindGetKeys:
		return "getkeys"
	case KindSetVariant:
		return "variant " + quote(t.Name)
	case KindInsert:
		return "insert"
	case KindInsertIndex:
		return fmt.Sprintf("insert %d", t.Index)
	case KindInsertKey:
		return "insert " + quote(t.Name)
	case KindInsertIndexKey:
		return fmt.Sprintf("insert %d %s", t.Index, quote(t.Name))
	case KindRemove:
		return "remove"
	case KindRemoveIndex:
		return fmt.Sprintf("remove %d", t.Index)
	case KindRemoveKey:
		return "remove " + quote(t.Name)
	}
	parts := []string{t.Name}
	for _, a := range t.Args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

// quote wraps s in double quotes using the escapes the parser understands.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
