package node

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/jasonmoo/treeflect/command"
)

// Map is a string keyed node. Elements are stored by value, so stepping
// into one works on a copy that is written back afterwards.
type Map[T any, P Elem[T]] map[string]T

const mapHelp = `
Map Help

Commands:
*   help    - display this help
*   keys    - display the keys
*   get     - display JSON
*   set     - set to JSON
*   insert  - create a new element
*   remove  - remove an element
*   reset   - reset to empty map

Accessors:
*   [key]   - access item at the string key
*   .length - display number of items`

// SortedKeys returns the keys of m in ascending order.
func (m Map[T, P]) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// stepKey steps the element under key and stores the result back.
func (m Map[T, P]) stepKey(key string, r command.Runner) string {
	value := m[key]
	out := P(&value).NodeStep(r)
	m[key] = value
	return out
}

func (m *Map[T, P]) NodeStep(r command.Runner) string {
	tok := r.Step()
	if *m == nil {
		*m = make(Map[T, P])
	}
	switch tok.Kind {
	case command.KindChainKey:
		if _, ok := (*m)[tok.Name]; ok {
			return m.stepKey(tok.Name, r)
		}
		if len(*m) == 0 {
			return fmt.Sprintf("Used key '%s' on an empty map.", tok.Name)
		}
		return fmt.Sprintf("Used key '%s' on a map that does not contain it. Try one of: %s", tok.Name, quoteKeys(m.SortedKeys()))
	case command.KindChainAll:
		combined := "|"
		for _, key := range m.SortedKeys() {
			combined += m.stepKey(key, r) + "|"
		}
		return combined
	case command.KindChainProperty:
		if tok.Name == "length" {
			return stepLength(len(*m), r)
		}
	case command.KindGet:
		return Encode(map[string]T(*m))
	case command.KindSet:
		var values map[string]T
		if err := Decode(tok.Payload, &values); err != nil {
			return "map set error: " + err.Error()
		}
		if values == nil {
			values = make(map[string]T)
		}
		*m = values
		return ""
	case command.KindGetKeys:
		return quoteKeys(m.SortedKeys())
	case command.KindInsertKey:
		if _, ok := (*m)[tok.Name]; ok {
			return fmt.Sprintf("Tried to insert key '%s' on a map that already contains it. Current keys: %s", tok.Name, quoteKeys(m.SortedKeys()))
		}
		(*m)[tok.Name] = defaultValue[T]()
		return ""
	case command.KindRemoveKey:
		if _, ok := (*m)[tok.Name]; !ok {
			return fmt.Sprintf("Tried to remove key '%s' on a map that doesnt contain it. Current keys: %s", tok.Name, quoteKeys(m.SortedKeys()))
		}
		delete(*m, tok.Name)
		return ""
	case command.KindSetDefault:
		*m = make(Map[T, P])
		return ""
	case command.KindHelp:
		return mapHelp
	}
	return Cannot("map", tok)
}

// NodeChildren lists every element in key order. Each child is a copy;
// writes through it do not reach the map.
func (m *Map[T, P]) NodeChildren() []Child {
	out := make([]Child, 0, len(*m))
	for _, key := range m.SortedKeys() {
		value := (*m)[key]
		out = append(out, Child{Segment: "[" + strconv.Quote(key) + "]", Node: P(&value)})
	}
	return out
}
