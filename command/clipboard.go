package command

import (
	"math"
	"sync"
)

// NumberKind says which field of a Number holds the value.
type NumberKind uint8

const (
	NumberInt NumberKind = iota
	NumberUint
	NumberFloat
)

// Number is a copied numeric value tagged with its original kind so that
// pasting converts between integer and float types by casting.
type Number struct {
	Kind  NumberKind
	Int   int64
	Uint  uint64
	Float float64
}

func IntNumber(v int64) Number     { return Number{Kind: NumberInt, Int: v} }
func UintNumber(v uint64) Number   { return Number{Kind: NumberUint, Uint: v} }
func FloatNumber(v float64) Number { return Number{Kind: NumberFloat, Float: v} }

// AsInt64 converts n to an int64. Integers are reinterpreted, floats
// saturate at the int64 range and NaN becomes 0.
func (n Number) AsInt64() int64 {
	switch n.Kind {
	case NumberUint:
		return int64(n.Uint)
	case NumberFloat:
		return saturateInt64(n.Float)
	}
	return n.Int
}

// AsUint64 converts n to a uint64 with the same rules as AsInt64.
func (n Number) AsUint64() uint64 {
	switch n.Kind {
	case NumberInt:
		return uint64(n.Int)
	case NumberFloat:
		return saturateUint64(n.Float)
	}
	return n.Uint
}

// AsFloat64 converts n to a float64.
func (n Number) AsFloat64() float64 {
	switch n.Kind {
	case NumberInt:
		return float64(n.Int)
	case NumberUint:
		return float64(n.Uint)
	}
	return n.Float
}

func saturateInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

func saturateUint64(f float64) uint64 {
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= math.MaxUint64:
		return math.MaxUint64
	}
	return uint64(f)
}

// Clipboard holds the values captured by copy actions until a paste
// consumes them. There is one slot for strings, one for numbers and one
// per aggregate type name. A Clipboard is safe for concurrent use.
type Clipboard struct {
	mu     sync.Mutex
	text   *string
	number *Number
	values map[string][]byte
}

// NewClipboard returns an empty clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{values: make(map[string][]byte)}
}

func (c *Clipboard) CopyString(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = &s
}

// PasteString returns the last copied string, if any.
func (c *Clipboard) PasteString() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.text == nil {
		return "", false
	}
	return *c.text, true
}

func (c *Clipboard) CopyNumber(n Number) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.number = &n
}

// PasteNumber returns the last copied number, if any.
func (c *Clipboard) PasteNumber() (Number, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.number == nil {
		return Number{}, false
	}
	return *c.number, true
}

// CopyValue stores the encoded form of an aggregate under its type name.
func (c *Clipboard) CopyValue(typeName string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = make(map[string][]byte)
	}
	c.values[typeName] = append([]byte(nil), data...)
}

// PasteValue returns the encoded aggregate last copied for typeName.
func (c *Clipboard) PasteValue(typeName string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.values[typeName]
	return data, ok
}

// Clear empties every slot.
func (c *Clipboard) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = nil
	c.number = nil
	c.values = make(map[string][]byte)
}
