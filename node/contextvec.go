package node

import (
	"encoding/json"
	"fmt"

	"github.com/jasonmoo/treeflect/command"
)

// Elem constrains container element types: T is stored by value and *T
// implements Node.
type Elem[T any] interface {
	*T
	Node
}

// ContextVec is an ordered sequence of elements plus a context: the
// indices of the currently selected elements. The context may be empty,
// contain duplicates and be in any order.
//
// Invariants:
//   - every context index points at an element
//   - context indices keep pointing at the same element across Insert
//     and Remove; indices of a removed element are dropped
//
// Commands address the selection with [?].
type ContextVec[T any, P Elem[T]] struct {
	context []int
	items   []T
}

// NewContextVec returns a ContextVec holding items with an empty context.
func NewContextVec[T any, P Elem[T]](items ...T) *ContextVec[T, P] {
	return &ContextVec[T, P]{items: items}
}

// Len returns the number of elements.
func (v *ContextVec[T, P]) Len() int { return len(v.items) }

// At returns a pointer to element i. It panics if i is out of range.
func (v *ContextVec[T, P]) At(i int) P { return P(&v.items[i]) }

// Items returns the underlying elements. The slice is only valid until
// the next mutation.
func (v *ContextVec[T, P]) Items() []T { return v.items }

// Context returns a copy of the selected indices.
func (v *ContextVec[T, P]) Context() []int { return append([]int(nil), v.context...) }

// SelectionFirst returns the first selected element, or nil.
func (v *ContextVec[T, P]) SelectionFirst() P {
	if len(v.context) == 0 {
		return nil
	}
	return v.At(v.context[0])
}

// Selection returns the selected elements in context order.
func (v *ContextVec[T, P]) Selection() []P {
	out := make([]P, 0, len(v.context))
	for _, i := range v.context {
		out = append(out, v.At(i))
	}
	return out
}

// ClearContext empties the selection.
func (v *ContextVec[T, P]) ClearContext() { v.context = v.context[:0] }

// SetContext selects exactly element i. It panics if i is out of range.
func (v *ContextVec[T, P]) SetContext(i int) {
	v.SetContextVec([]int{i})
}

// SetContextVec replaces the selection. It panics if any index is out of
// range.
func (v *ContextVec[T, P]) SetContextVec(indices []int) {
	for _, i := range indices {
		if i < 0 || i >= len(v.items) {
			panic(fmt.Sprintf("Attempted to set context %d on a ContextVec of length %d", i, len(v.items)))
		}
	}
	v.context = append(v.context[:0], indices...)
}

// SetVec replaces every element and clears the context.
func (v *ContextVec[T, P]) SetVec(items []T) {
	v.context = v.context[:0]
	v.items = items
}

// Clear removes every element and clears the context.
func (v *ContextVec[T, P]) Clear() {
	v.context = v.context[:0]
	v.items = nil
}

// Push appends value.
func (v *ContextVec[T, P]) Push(value T) {
	v.items = append(v.items, value)
}

// Insert places value at index i, shifting later elements and the
// context indices that point at them.
func (v *ContextVec[T, P]) Insert(i int, value T) {
	if i < 0 || i > len(v.items) {
		panic(fmt.Sprintf("Attempted to insert at %d on a ContextVec of length %d", i, len(v.items)))
	}
	v.items = append(v.items, value)
	copy(v.items[i+1:], v.items[i:])
	v.items[i] = value
	v.context = insertContext(v.context, i)
}

// Pop removes and returns the last element. Context indices pointing at
// it are dropped.
func (v *ContextVec[T, P]) Pop() (T, bool) {
	var zero T
	if len(v.items) == 0 {
		return zero, false
	}
	last := len(v.items) - 1
	value := v.items[last]
	v.items[last] = zero
	v.items = v.items[:last]
	v.context = removeContext(v.context, last)
	return value, true
}

// Remove deletes and returns element i. It panics if i is out of range.
func (v *ContextVec[T, P]) Remove(i int) T {
	if i < 0 || i >= len(v.items) {
		panic(fmt.Sprintf("Attempted to remove %d on a ContextVec of length %d", i, len(v.items)))
	}
	value := v.items[i]
	v.items = append(v.items[:i], v.items[i+1:]...)
	v.context = removeContext(v.context, i)
	return value
}

// insertContext shifts every index at or after i up by one.
func insertContext(context []int, i int) []int {
	for n, c := range context {
		if c >= i {
			context[n] = c + 1
		}
	}
	return context
}

// removeContext drops indices equal to i and shifts larger ones down.
func removeContext(context []int, i int) []int {
	out := context[:0]
	for _, c := range context {
		switch {
		case c < i:
			out = append(out, c)
		case c > i:
			out = append(out, c-1)
		}
	}
	return out
}

// MarshalJSON encodes the elements as an array; the context is not part
// of the encoding.
func (v ContextVec[T, P]) MarshalJSON() ([]byte, error) {
	if v.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.items)
}

// UnmarshalJSON replaces the elements and clears the context.
func (v *ContextVec[T, P]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	v.SetVec(items)
	return nil
}

const contextVecHelp = `
Context Vector Help

Commands:
*   help          - display this help
*   get           - display JSON
*   set           - set to JSON
*   insert        - create a new element at the end of the vector
*   insert $INDEX - create a new element at $INDEX
*   remove        - remove the element at the end of the vector
*   remove $INDEX - remove the element at $INDEX
*   reset         - reset to empty vector

Accessors:
*   [INDEX] - access item at INDEX
*   [?]     - access items at current context
*   [*]     - access every item
*   .length - display number of items`

func (v *ContextVec[T, P]) NodeStep(r command.Runner) string {
	tok := r.Step()
	switch tok.Kind {
	case command.KindChainIndex:
		if tok.Index < 0 || tok.Index >= len(v.items) {
			return indexError("vector", tok.Index, len(v.items))
		}
		return v.At(tok.Index).NodeStep(r)
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
		var items []T
		if err := Decode(tok.Payload, &items); err != nil {
			return "vector set error: " + err.Error()
		}
		v.SetVec(items)
		return ""
	case command.KindInsert:
		v.Push(defaultValue[T]())
		return ""
	case command.KindInsertIndex:
		if tok.Index < 0 || tok.Index > len(v.items) {
			return insertIndexError("vector", tok.Index, len(v.items))
		}
		v.Insert(tok.Index, defaultValue[T]())
		return ""
	case command.KindRemove:
		if _, ok := v.Pop(); !ok {
			return "Tried to remove from an empty vector."
		}
		return ""
	case command.KindRemoveIndex:
		if len(v.items) == 0 {
			return "Tried to remove from an empty vector."
		}
		if tok.Index < 0 || tok.Index >= len(v.items) {
			return removeIndexError("vector", tok.Index, len(v.items))
		}
		v.Remove(tok.Index)
		return ""
	case command.KindSetDefault:
		v.Clear()
		return ""
	case command.KindHelp:
		return contextVecHelp
	}
	return Cannot("vector", tok)
}

// NodeChildren lists every element addressed by index.
func (v *ContextVec[T, P]) NodeChildren() []Child {
	out := make([]Child, 0, len(v.items))
	for i := range v.items {
		out = append(out, Child{Segment: fmt.Sprintf("[%d]", i), Node: v.At(i)})
	}
	return out
}

func indexError(container string, i, length int) string {
	switch length {
	case 0:
		return fmt.Sprintf("Used index %d on an empty %s", i, container)
	case 1:
		return fmt.Sprintf("Used index %d on a %s of size 1 (try 0)", i, container)
	}
	return fmt.Sprintf("Used index %d on a %s of size %d (try a value between 0-%d)", i, container, length, length-1)
}

func insertIndexError(container string, i, length int) string {
	return fmt.Sprintf("Tried to insert at index %d on a %s of size %d (try a value between 0-%d)", i, container, length, length)
}

func removeIndexError(container string, i, length int) string {
	return fmt.Sprintf("Tried to remove the value at index %d on a %s of size %d (try a value between 0-%d)", i, container, length, length-1)
}

// stepLength dispatches into a read only copy of a container length.
func stepLength(n int, r command.Runner) string {
	length := Uint(n)
	return length.NodeStep(r)
}
