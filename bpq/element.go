package bpq

import "fmt"

// Element pairs a ranking value with a caller-assigned index. Elements are
// immutable once created.
type Element struct {
	value float64
	index int
}

// NewElement creates an element with the given rank and identity.
func NewElement(value float64, index int) *Element {
	return &Element{value: value, index: index}
}

// Copy returns an independent duplicate of e, or nil when e is nil.
func (e *Element) Copy() *Element {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}

// Value returns the ranking value.
func (e *Element) Value() float64 { return e.value }

// Index returns the identity assigned by the caller.
func (e *Element) Index() int { return e.index }

func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("(%d, %g)", e.index, e.value)
}

// Compare orders elements by value only: -1 when a < b, 0 when equal and 1
// when a > b. Both arguments must be non-nil. NaN is unordered and compares
// equal to everything, which is why Enqueue refuses it.
func Compare(a, b *Element) int {
	if a == nil || b == nil {
		panic("bpq: Compare called with nil element")
	}
	switch {
	case a.value < b.value:
		return -1
	case a.value > b.value:
		return 1
	}
	return 0
}
