package node

import (
	"github.com/jasonmoo/treeflect/command"
)

// Bool is a boolean leaf.
type Bool bool

const boolHelp = `
bool Help

Valid values: true or false

Commands:
*   help - display this help
*   get  - display value
*   set  - set to value`

func (b *Bool) NodeStep(r command.Runner) string {
	tok := r.Step()
	switch tok.Kind {
	case command.KindGet:
		if *b {
			return "true"
		}
		return "false"
	case command.KindSet:
		switch tok.Payload {
		case "true":
			*b = true
		case "false":
			*b = false
		default:
			return "Invalid value for bool (needs to be: true or false)"
		}
		return ""
	case command.KindHelp:
		return boolHelp
	case command.KindSetDefault:
		*b = false
		return ""
	}
	return Cannot("bool", tok)
}

// String is a text leaf.
type String string

const stringHelp = `
string Help

Valid values: Anything

Commands:
*   help  - display this help
*   copy  - copy this value
*   paste - paste the copied value here
*   get   - display value
*   set   - set to value`

func (s *String) NodeStep(r command.Runner) string {
	tok := r.Step()
	switch tok.Kind {
	case command.KindGet:
		return string(*s)
	case command.KindSet:
		*s = String(tok.Payload)
		return ""
	case command.KindHelp:
		return stringHelp
	case command.KindCopyFrom:
		r.Clipboard().CopyString(string(*s))
		return ""
	case command.KindPasteTo:
		v, ok := r.Clipboard().PasteString()
		if !ok {
			return "Nothing to paste: no string has been copied"
		}
		*s = String(v)
		return ""
	case command.KindSetDefault:
		*s = ""
		return ""
	}
	return Cannot("string", tok)
}
