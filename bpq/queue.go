package bpq

import (
	"container/list"
	"fmt"
	"math"
	"strings"
)

// Queue is a bounded priority queue of Elements ordered ascending by value.
// The front of the queue holds the minimal element, the back the maximal.
//
// Methods treat a nil or destroyed *Queue as absent: accessors return their
// sentinel (-1 or nil), mutators return ErrInvalidArgument or do nothing.
// IsEmpty and IsFull are the exception and panic on an absent queue.
type Queue struct {
	capacity int
	items    *list.List // of *Element, ascending
}

// New creates an empty queue holding at most capacity elements.
func New(capacity int) (*Queue, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: capacity %d, must be at least 1", ErrInvalidArgument, capacity)
	}
	return &Queue{capacity: capacity, items: list.New()}, nil
}

func (q *Queue) absent() bool { return q == nil || q.items == nil }

// Copy returns a deep copy of q with the same capacity and the same ordered
// element copies. q is left untouched.
func (q *Queue) Copy() (*Queue, error) {
	if q.absent() {
		return nil, ErrInvalidArgument
	}
	items := list.New()
	for it := q.items.Front(); it != nil; it = it.Next() {
		items.PushBack(it.Value.(*Element).Copy())
	}
	return &Queue{capacity: q.capacity, items: items}, nil
}

// Enqueue inserts a copy of e. When the queue is full the copy is admitted
// only if its value is strictly less than the current maximum, which is then
// evicted; otherwise ErrFull is returned and the queue is unchanged.
//
// Among equal values a newer element is placed before older ones, so when
// equal maxima compete for eviction the earliest inserted one goes first.
// A NaN value has no place in the order and yields ErrInvalidArgument.
func (q *Queue) Enqueue(e *Element) error {
	if q.absent() || e == nil || math.IsNaN(e.value) {
		return ErrInvalidArgument
	}
	input := e.Copy()
	if q.items.Len() == 0 {
		q.items.PushFront(input)
		return nil
	}
	if q.items.Len() == q.capacity {
		last := q.items.Back()
		if Compare(input, last.Value.(*Element)) >= 0 {
			return ErrFull
		}
		q.items.Remove(last)
	}
	for it := q.items.Front(); it != nil; it = it.Next() {
		if Compare(input, it.Value.(*Element)) <= 0 {
			q.items.InsertBefore(input, it)
			return nil
		}
	}
	q.items.PushBack(input)
	return nil
}

// Dequeue removes the minimal element.
func (q *Queue) Dequeue() error {
	if q.absent() {
		return ErrInvalidArgument
	}
	front := q.items.Front()
	if front == nil {
		return ErrEmpty
	}
	q.items.Remove(front)
	return nil
}

// Peek returns a copy of the minimal element, or nil if q is absent or empty.
func (q *Queue) Peek() *Element {
	if q.absent() || q.items.Len() == 0 {
		return nil
	}
	return q.items.Front().Value.(*Element).Copy()
}

// PeekLast returns a copy of the maximal element, or nil if q is absent or
// empty.
func (q *Queue) PeekLast() *Element {
	if q.absent() || q.items.Len() == 0 {
		return nil
	}
	return q.items.Back().Value.(*Element).Copy()
}

// MinValue returns the value of the minimal element, or -1 when q is absent
// or empty. Since -1 is also a legal value, callers that store negative
// ranks should use Min instead.
func (q *Queue) MinValue() float64 {
	v, ok := q.Min()
	if !ok {
		return -1
	}
	return v
}

// MaxValue returns the value of the maximal element, or -1 when q is absent
// or empty. See MinValue for the caveat on the sentinel.
func (q *Queue) MaxValue() float64 {
	v, ok := q.Max()
	if !ok {
		return -1
	}
	return v
}

// Min returns the minimal value and whether one exists.
func (q *Queue) Min() (float64, bool) {
	if q.absent() || q.items.Len() == 0 {
		return 0, false
	}
	return q.items.Front().Value.(*Element).value, true
}

// Max returns the maximal value and whether one exists.
func (q *Queue) Max() (float64, bool) {
	if q.absent() || q.items.Len() == 0 {
		return 0, false
	}
	return q.items.Back().Value.(*Element).value, true
}

// Size returns the number of elements, or -1 if q is absent.
func (q *Queue) Size() int {
	if q.absent() {
		return -1
	}
	return q.items.Len()
}

// Capacity returns the maximal number of elements, or -1 if q is absent.
func (q *Queue) Capacity() int {
	if q.absent() {
		return -1
	}
	return q.capacity
}

// IsEmpty reports whether q holds no elements. q must not be absent.
func (q *Queue) IsEmpty() bool {
	if q.absent() {
		panic("bpq: IsEmpty called on absent queue")
	}
	return q.items.Len() == 0
}

// IsFull reports whether q holds capacity elements. q must not be absent.
func (q *Queue) IsFull() bool {
	if q.absent() {
		panic("bpq: IsFull called on absent queue")
	}
	return q.items.Len() == q.capacity
}

// Elements returns copies of all elements in ascending order without
// modifying q.
func (q *Queue) Elements() []*Element {
	if q.absent() {
		return nil
	}
	out := make([]*Element, 0, q.items.Len())
	for it := q.items.Front(); it != nil; it = it.Next() {
		out = append(out, it.Value.(*Element).Copy())
	}
	return out
}

// Drain dequeues every element and returns them in ascending order.
func (q *Queue) Drain() []*Element {
	out := q.Elements()
	q.Clear()
	return out
}

// Clear removes all elements. The capacity is kept.
func (q *Queue) Clear() {
	if q.absent() {
		return
	}
	q.items.Init()
}

// Destroy releases all elements. Afterwards q behaves as an absent queue.
func (q *Queue) Destroy() {
	if q.absent() {
		return
	}
	q.items.Init()
	q.items = nil
}

func (q *Queue) String() string {
	if q.absent() {
		return "<nil>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "bpq[%d/%d]{", q.items.Len(), q.capacity)
	for it := q.items.Front(); it != nil; it = it.Next() {
		if it != q.items.Front() {
			b.WriteString(" ")
		}
		b.WriteString(it.Value.(*Element).String())
	}
	b.WriteString("}")
	return b.String()
}
