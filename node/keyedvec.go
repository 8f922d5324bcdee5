package node

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jasonmoo/treeflect/command"
)

// KeyedContextVec is a ContextVec whose elements also carry a unique
// string key. Keys are kept in a slice parallel to the elements, so key
// lookup is a linear scan; it is meant for small collections.
//
// It encodes as a JSON object whose members appear in element order.
type KeyedContextVec[T any, P Elem[T]] struct {
	context []int
	items   []T
	keys    []string
}

// KeyValue is one element of a KeyedContextVec together with its key.
type KeyValue[T any] struct {
	Key   string
	Value T
}

// NewKeyedContextVec returns a KeyedContextVec holding pairs in order.
// It panics if a key repeats.
func NewKeyedContextVec[T any, P Elem[T]](pairs ...KeyValue[T]) *KeyedContextVec[T, P] {
	v := &KeyedContextVec[T, P]{}
	for _, kv := range pairs {
		v.Push(kv.Key, kv.Value)
	}
	return v
}

func (v *KeyedContextVec[T, P]) Len() int       { return len(v.items) }
func (v *KeyedContextVec[T, P]) At(i int) P     { return P(&v.items[i]) }
func (v *KeyedContextVec[T, P]) Items() []T     { return v.items }
func (v *KeyedContextVec[T, P]) Context() []int { return append([]int(nil), v.context...) }
func (v *KeyedContextVec[T, P]) Keys() []string { return append([]string(nil), v.keys...) }

// IndexToKey returns the key of element i.
func (v *KeyedContextVec[T, P]) IndexToKey(i int) string { return v.keys[i] }

// KeyToIndex returns the index of key. This is O(n).
func (v *KeyedContextVec[T, P]) KeyToIndex(key string) (int, bool) {
	for i, k := range v.keys {
		if k == key {
			return i, true
		}
	}
	return 0, false
}

// KeyToValue returns the element stored under key, or nil.
func (v *KeyedContextVec[T, P]) KeyToValue(key string) P {
	i, ok := v.KeyToIndex(key)
	if !ok {
		return nil
	}
	return v.At(i)
}

// ContainsKey reports whether key is in use.
func (v *KeyedContextVec[T, P]) ContainsKey(key string) bool {
	_, ok := v.KeyToIndex(key)
	return ok
}

// Pairs returns the key/value pairs in order.
func (v *KeyedContextVec[T, P]) Pairs() []KeyValue[T] {
	out := make([]KeyValue[T], len(v.items))
	for i := range v.items {
		out[i] = KeyValue[T]{Key: v.keys[i], Value: v.items[i]}
	}
	return out
}

// SelectionFirst returns the first selected element, or nil.
func (v *KeyedContextVec[T, P]) SelectionFirst() P {
	if len(v.context) == 0 {
		return nil
	}
	return v.At(v.context[0])
}

// Selection returns the selected elements in context order.
func (v *KeyedContextVec[T, P]) Selection() []P {
	out := make([]P, 0, len(v.context))
	for _, i := range v.context {
		out = append(out, v.At(i))
	}
	return out
}

func (v *KeyedContextVec[T, P]) ClearContext() { v.context = v.context[:0] }

// SetContext selects exactly element i. It panics if i is out of range.
func (v *KeyedContextVec[T, P]) SetContext(i int) {
	v.SetContextVec([]int{i})
}

// SetContextVec replaces the selection. It panics if any index is out of
// range.
func (v *KeyedContextVec[T, P]) SetContextVec(indices []int) {
	for _, i := range indices {
		if i < 0 || i >= len(v.items) {
			panic(fmt.Sprintf("Attempted to set context %d on a KeyedContextVec of length %d", i, len(v.items)))
		}
	}
	v.context = append(v.context[:0], indices...)
}

// SetVec replaces every element and key and clears the context. It
// panics if a key repeats.
func (v *KeyedContextVec[T, P]) SetVec(pairs []KeyValue[T]) {
	v.Clear()
	for _, kv := range pairs {
		v.Push(kv.Key, kv.Value)
	}
}

// Clear removes every element and key and clears the context.
func (v *KeyedContextVec[T, P]) Clear() {
	v.context = v.context[:0]
	v.items = nil
	v.keys = nil
}

// Push appends value under key. It panics if key is already used.
func (v *KeyedContextVec[T, P]) Push(key string, value T) {
	if v.ContainsKey(key) {
		panic(fmt.Sprintf("Attempted to push duplicate key '%s' on a KeyedContextVec", key))
	}
	v.items = append(v.items, value)
	v.keys = append(v.keys, key)
}

// Insert places value under key at index i, shifting later elements and
// the context indices that point at them. It panics if key is already
// used or i is out of range.
func (v *KeyedContextVec[T, P]) Insert(i int, key string, value T) {
	if i < 0 || i > len(v.items) {
		panic(fmt.Sprintf("Attempted to insert at %d on a KeyedContextVec of length %d", i, len(v.items)))
	}
	if v.ContainsKey(key) {
		panic(fmt.Sprintf("Attempted to insert duplicate key '%s' on a KeyedContextVec", key))
	}
	v.items = append(v.items, value)
	copy(v.items[i+1:], v.items[i:])
	v.items[i] = value
	v.keys = append(v.keys, key)
	copy(v.keys[i+1:], v.keys[i:])
	v.keys[i] = key
	v.context = insertContext(v.context, i)
}

// Pop removes and returns the last element and its key.
func (v *KeyedContextVec[T, P]) Pop() (KeyValue[T], bool) {
	if len(v.items) == 0 {
		return KeyValue[T]{}, false
	}
	last := len(v.items) - 1
	kv := v.Remove(last)
	return kv, true
}

// Remove deletes element i and its key. It panics if i is out of range.
func (v *KeyedContextVec[T, P]) Remove(i int) KeyValue[T] {
	if i < 0 || i >= len(v.items) {
		panic(fmt.Sprintf("Attempted to remove %d on a KeyedContextVec of length %d", i, len(v.items)))
	}
	kv := KeyValue[T]{Key: v.keys[i], Value: v.items[i]}
	v.items = append(v.items[:i], v.items[i+1:]...)
	v.keys = append(v.keys[:i], v.keys[i+1:]...)
	v.context = removeContext(v.context, i)
	return kv
}

// RemoveKey deletes the element stored under key.
func (v *KeyedContextVec[T, P]) RemoveKey(key string) (T, bool) {
	i, ok := v.KeyToIndex(key)
	if !ok {
		var zero T
		return zero, false
	}
	return v.Remove(i).Value, true
}

func (v *KeyedContextVec[T, P]) formatKeys() string {
	return quoteKeys(v.keys)
}

func quoteKeys(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = "'" + k + "'"
	}
	return strings.Join(quoted, ", ")
}

// MarshalJSON encodes the elements as an object keyed by element key,
// preserving element order.
func (v KeyedContextVec[T, P]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range v.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		val, err := json.Marshal(v.items[i])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces every element and key, see decode.
func (v *KeyedContextVec[T, P]) UnmarshalJSON(data []byte) error {
	pairs, err := v.decode(data)
	if err != nil {
		return err
	}
	v.SetVec(pairs)
	return nil
}

// decode reads a JSON object of key to value, keeping member order, or an
// array holding one value per current key in key order. null clears the
// vector like it does a ContextVec.
func (v *KeyedContextVec[T, P]) decode(data []byte) ([]KeyValue[T], error) {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil, nil
	case len(data) > 0 && data[0] == '[':
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		if len(items) != len(v.keys) {
			return nil, fmt.Errorf("expected %d values to match the current keys, found %d", len(v.keys), len(items))
		}
		pairs := make([]KeyValue[T], len(items))
		for i, item := range items {
			pairs[i] = KeyValue[T]{Key: v.keys[i], Value: item}
		}
		return pairs, nil
	}
	return decodePairs[T](data)
}

func decodePairs[T any](data []byte) ([]KeyValue[T], error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected a JSON object, found %s", describeToken(tok))
	}

	var pairs []KeyValue[T]
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected an object key, found %s", describeToken(tok))
		}
		if seen[key] {
			return nil, fmt.Errorf("duplicate key '%s'", key)
		}
		seen[key] = true

		var value T
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		pairs = append(pairs, KeyValue[T]{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("invalid character after top-level value")
	}
	return pairs, nil
}

func describeToken(tok json.Token) string {
	switch t := tok.(type) {
	case json.Delim:
		return strconv.Quote(t.String())
	case string:
		return "string " + strconv.Quote(t)
	case nil:
		return "null"
	}
	return fmt.Sprintf("%v", tok)
}

const keyedContextVecHelp = `
Keyed Context Vector Help

Commands:
*   help               - display this help
*   get                - display JSON
*   set                - set to JSON
*   getkeys            - display the keys
*   insert $KEY        - create a new element at the end of the vector with $KEY
*   insert $INDEX $KEY - create a new element at $INDEX with $KEY
*   remove             - remove the element at the end of the vector
*   remove $KEY        - remove the element with $KEY
*   remove $INDEX      - remove the element at $INDEX
*   reset              - reset to empty vector

Accessors:
*   [INDEX] - access item at INDEX
*   ["KEY"] - access item with KEY
*   [?]     - access items at current context
*   [*]     - access every item
*   .length - display number of items`

const keyedName = "keyed context vector"

func (v *KeyedContextVec[T, P]) NodeStep(r command.Runner) string {
	tok := r.Step()
	switch tok.Kind {
	case command.KindChainIndex:
		if tok.Index < 0 || tok.Index >= len(v.items) {
			return indexError(keyedName, tok.Index, len(v.items))
		}
		return v.At(tok.Index).NodeStep(r)
	case command.KindChainKey:
		if n := v.KeyToValue(tok.Name); n != nil {
			return n.NodeStep(r)
		}
		if len(v.items) == 0 {
			return fmt.Sprintf("Used key '%s' on an empty keyed context vector.", tok.Name)
		}
		return fmt.Sprintf("Used key '%s' on a keyed context vector that does not contain it. Try one of: %s", tok.Name, v.formatKeys())
	case command.KindChainContext:
		nodes := make([]Node, 0, len(v.context))
		for _, i := range v.context {
			nodes = append(nodes, v.At(i))
		}
		return fanOut(r, nodes)
	case command.KindChainAll:
		nodes := make([]Node, 0, len(v.items))
		for i := range v.items {
			nodes = append(nodes, v.At(i))
		}
		return fanOut(r, nodes)
	case command.KindChainProperty:
		if tok.Name == "length" {
			return stepLength(len(v.items), r)
		}
	case command.KindGet:
		return Encode(v)
	case command.KindSet:
		pairs, err := v.decode([]byte(tok.Payload))
		if err != nil {
			return "keyed context vector set error: " + err.Error()
		}
		v.SetVec(pairs)
		return ""
	case command.KindGetKeys:
		return v.formatKeys()
	case command.KindInsertKey:
		if v.ContainsKey(tok.Name) {
			return v.duplicateKey(tok.Name)
		}
		v.Push(tok.Name, defaultValue[T]())
		return ""
	case command.KindInsertIndexKey:
		if tok.Index < 0 || tok.Index > len(v.items) {
			return insertIndexError(keyedName, tok.Index, len(v.items))
		}
		if v.ContainsKey(tok.Name) {
			return v.duplicateKey(tok.Name)
		}
		v.Insert(tok.Index, tok.Name, defaultValue[T]())
		return ""
	case command.KindRemove:
		if _, ok := v.Pop(); !ok {
			return "Tried to remove from an empty keyed context vector."
		}
		return ""
	case command.KindRemoveIndex:
		if len(v.items) == 0 {
			return "Tried to remove from an empty keyed context vector."
		}
		if tok.Index < 0 || tok.Index >= len(v.items) {
			return removeIndexError(keyedName, tok.Index, len(v.items))
		}
		v.Remove(tok.Index)
		return ""
	case command.KindRemoveKey:
		if _, ok := v.RemoveKey(tok.Name); !ok {
			return fmt.Sprintf("Tried to remove the value with key '%s' on a keyed context vector that doesnt contain it. Current keys: %s", tok.Name, v.formatKeys())
		}
		return ""
	case command.KindSetDefault:
		v.Clear()
		return ""
	case command.KindHelp:
		return keyedContextVecHelp
	}
	return Cannot(keyedName, tok)
}

func (v *KeyedContextVec[T, P]) duplicateKey(key string) string {
	return fmt.Sprintf("Tried to insert with key '%s' on a keyed context vector that already contains it. Current keys: %s", key, v.formatKeys())
}

// NodeChildren lists every element addressed by key.
func (v *KeyedContextVec[T, P]) NodeChildren() []Child {
	out := make([]Child, 0, len(v.items))
	for i, k := range v.keys {
		out = append(out, Child{Segment: "[" + strconv.Quote(k) + "]", Node: v.At(i)})
	}
	return out
}
