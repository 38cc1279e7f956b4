package bpq_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/knnq/bpq"
)

func values(q *bpq.Queue) []float64 {
	var out []float64
	for _, e := range q.Elements() {
		out = append(out, e.Value())
	}
	return out
}

func indexes(q *bpq.Queue) []int {
	var out []int
	for _, e := range q.Elements() {
		out = append(out, e.Index())
	}
	return out
}

func assertSorted(t *testing.T, q *bpq.Queue) {
	t.Helper()
	els := q.Elements()
	for i := 1; i < len(els); i++ {
		assert.LessOrEqual(t, els[i-1].Value(), els[i].Value(), "queue out of order: %v", q)
	}
	assert.LessOrEqual(t, q.Size(), q.Capacity())
}

func mustNew(t *testing.T, capacity int) *bpq.Queue {
	t.Helper()
	q, err := bpq.New(capacity)
	require.NoError(t, err)
	return q
}

func Test_Queue_New(t *testing.T) {
	q := mustNew(t, 4)
	assert.Equal(t, 0, q.Size())
	assert.Equal(t, 4, q.Capacity())
	assert.True(t, q.IsEmpty())
	assert.False(t, q.IsFull())

	for _, capacity := range []int{0, -1} {
		q, err := bpq.New(capacity)
		assert.ErrorIs(t, err, bpq.ErrInvalidArgument)
		assert.Nil(t, q)
	}
}

func Test_Queue_Scenario(t *testing.T) {
	q := mustNew(t, 4)
	for _, v := range []int{3, 2, 4, 1} {
		assert.NoError(t, q.Enqueue(bpq.NewElement(float64(v), v)))
		assertSorted(t, q)
	}
	assert.Equal(t, []float64{1, 2, 3, 4}, values(q))
	assert.True(t, q.IsFull())

	first := q.Peek()
	require.NotNil(t, first)
	assert.Equal(t, 1, first.Index())
	assert.Equal(t, 1.0, first.Value())

	last := q.PeekLast()
	require.NotNil(t, last)
	assert.Equal(t, 4, last.Index())
	assert.Equal(t, 4.0, last.Value())

	// Rejecting an element at or above the maximum leaves the queue alone.
	assert.ErrorIs(t, q.Enqueue(bpq.NewElement(5, 5)), bpq.ErrFull)
	assert.Equal(t, []float64{1, 2, 3, 4}, values(q))
	assert.Equal(t, 4, q.Size())

	assert.NoError(t, q.Enqueue(bpq.NewElement(0, 0)))
	assert.Equal(t, []float64{0, 1, 2, 3}, values(q))
	assert.Equal(t, 4, q.Size())
	assert.Equal(t, 3.0, q.PeekLast().Value())
}

func Test_Queue_FullRejectsTieWithMax(t *testing.T) {
	q := mustNew(t, 2)
	assert.NoError(t, q.Enqueue(bpq.NewElement(1, 1)))
	assert.NoError(t, q.Enqueue(bpq.NewElement(2, 2)))

	assert.ErrorIs(t, q.Enqueue(bpq.NewElement(2, 3)), bpq.ErrFull)
	assert.Equal(t, []int{1, 2}, indexes(q))
}

func Test_Queue_TieBreak(t *testing.T) {
	q := mustNew(t, 3)
	assert.NoError(t, q.Enqueue(bpq.NewElement(5, 1)))
	assert.NoError(t, q.Enqueue(bpq.NewElement(5, 2)))
	assert.NoError(t, q.Enqueue(bpq.NewElement(5, 3)))

	// Newer equal values are placed before older ones.
	assert.Equal(t, []int{3, 2, 1}, indexes(q))

	// The earliest inserted equal maximum is evicted first.
	assert.NoError(t, q.Enqueue(bpq.NewElement(4, 4)))
	assert.Equal(t, []int{4, 3, 2}, indexes(q))
	assert.NoError(t, q.Enqueue(bpq.NewElement(4, 5)))
	assert.Equal(t, []int{5, 4, 3}, indexes(q))
}

func Test_Queue_EqualInsertBeforeExisting(t *testing.T) {
	q := mustNew(t, 5)
	assert.NoError(t, q.Enqueue(bpq.NewElement(1, 1)))
	assert.NoError(t, q.Enqueue(bpq.NewElement(3, 3)))
	assert.NoError(t, q.Enqueue(bpq.NewElement(2, 20)))
	assert.NoError(t, q.Enqueue(bpq.NewElement(2, 21)))
	assert.NoError(t, q.Enqueue(bpq.NewElement(3, 30)))

	assert.Equal(t, []int{1, 21, 20, 30, 3}, indexes(q))
	assertSorted(t, q)
}

func Test_Queue_EnqueueInvalid(t *testing.T) {
	var absent *bpq.Queue
	assert.ErrorIs(t, absent.Enqueue(bpq.NewElement(1, 1)), bpq.ErrInvalidArgument)

	q := mustNew(t, 4)
	assert.ErrorIs(t, q.Enqueue(nil), bpq.ErrInvalidArgument)
	assert.Equal(t, 0, q.Size())
}

func Test_Queue_EnqueueNaN(t *testing.T) {
	q := mustNew(t, 3)
	assert.NoError(t, q.Enqueue(bpq.NewElement(2, 2)))
	assert.NoError(t, q.Enqueue(bpq.NewElement(1, 1)))

	assert.ErrorIs(t, q.Enqueue(bpq.NewElement(math.NaN(), 9)), bpq.ErrInvalidArgument)
	assert.Equal(t, []int{1, 2}, indexes(q))

	assert.NoError(t, q.Enqueue(bpq.NewElement(0, 0)))
	assert.Equal(t, []float64{0, 1, 2}, values(q))
	assertSorted(t, q)
}

func Test_Queue_EnqueueCopiesElement(t *testing.T) {
	q := mustNew(t, 2)
	e := bpq.NewElement(7, 70)
	assert.NoError(t, q.Enqueue(e))

	peeked := q.Peek()
	assert.NotSame(t, e, peeked)
	assert.NotSame(t, peeked, q.Peek())
	assert.Equal(t, 7.0, e.Value())
	assert.Equal(t, 70, e.Index())
}

func Test_Queue_FillWithSameElement(t *testing.T) {
	q := mustNew(t, 4)
	e := bpq.NewElement(1, 1)
	for i := 1; i <= 4; i++ {
		assert.NoError(t, q.Enqueue(e))
		assert.Equal(t, i, q.Size())
	}
	assert.ErrorIs(t, q.Enqueue(e), bpq.ErrFull)
	assert.Equal(t, 4, q.Size())
}

func Test_Queue_Dequeue(t *testing.T) {
	q := mustNew(t, 2)
	assert.NoError(t, q.Enqueue(bpq.NewElement(1, 1)))
	assert.NoError(t, q.Enqueue(bpq.NewElement(2, 2)))
	assert.True(t, q.IsFull())

	assert.NoError(t, q.Dequeue())
	assert.False(t, q.IsFull())
	assert.Equal(t, 2.0, q.MinValue())

	assert.NoError(t, q.Dequeue())
	assert.ErrorIs(t, q.Dequeue(), bpq.ErrEmpty)
	assert.True(t, q.IsEmpty())

	var absent *bpq.Queue
	assert.ErrorIs(t, absent.Dequeue(), bpq.ErrInvalidArgument)
}

func Test_Queue_DrainAscending(t *testing.T) {
	q := mustNew(t, 5)
	for i, v := range []float64{9, 3, 7, 1, 8, 2, 6} {
		err := q.Enqueue(bpq.NewElement(v, i))
		if err != nil {
			assert.ErrorIs(t, err, bpq.ErrFull)
		}
		assertSorted(t, q)
	}

	var got []float64
	for !q.IsEmpty() {
		got = append(got, q.MinValue())
		assert.NoError(t, q.Dequeue())
	}
	assert.Equal(t, []float64{1, 2, 3, 6, 7}, got)
}

func Test_Queue_Drain(t *testing.T) {
	q := mustNew(t, 3)
	for _, v := range []float64{3, 1, 2} {
		assert.NoError(t, q.Enqueue(bpq.NewElement(v, int(v))))
	}
	drained := q.Drain()
	require.Len(t, drained, 3)
	assert.Equal(t, 1, drained[0].Index())
	assert.Equal(t, 3, drained[2].Index())
	assert.True(t, q.IsEmpty())
	assert.Equal(t, 3, q.Capacity())
}

func Test_Queue_Copy(t *testing.T) {
	var absent *bpq.Queue
	_, err := absent.Copy()
	assert.ErrorIs(t, err, bpq.ErrInvalidArgument)

	q := mustNew(t, 4)
	empty, err := q.Copy()
	require.NoError(t, err)
	assert.Equal(t, q.Size(), empty.Size())
	assert.Equal(t, q.Capacity(), empty.Capacity())

	for _, v := range []int{3, 2, 4, 1} {
		assert.NoError(t, q.Enqueue(bpq.NewElement(float64(v), v)))
	}
	c, err := q.Copy()
	require.NoError(t, err)
	assert.Equal(t, values(q), values(c))
	assert.Equal(t, indexes(q), indexes(c))

	assert.NoError(t, q.Dequeue())
	assert.NoError(t, q.Enqueue(bpq.NewElement(0, 0)))
	assert.Equal(t, []float64{1, 2, 3, 4}, values(c))
	assert.Equal(t, 4, c.Size())

	assert.NoError(t, c.Dequeue())
	assert.NoError(t, c.Dequeue())
	assert.Equal(t, []float64{0, 2, 3, 4}, values(q))
}

func Test_Queue_MinMax(t *testing.T) {
	var absent *bpq.Queue
	assert.Equal(t, -1.0, absent.MinValue())
	assert.Equal(t, -1.0, absent.MaxValue())

	q := mustNew(t, 3)
	assert.Equal(t, -1.0, q.MinValue())
	assert.Equal(t, -1.0, q.MaxValue())
	_, ok := q.Min()
	assert.False(t, ok)

	assert.NoError(t, q.Enqueue(bpq.NewElement(-1, 1)))
	assert.NoError(t, q.Enqueue(bpq.NewElement(2.5, 2)))

	v, ok := q.Min()
	assert.True(t, ok)
	assert.Equal(t, -1.0, v)
	v, ok = q.Max()
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)
	assert.Equal(t, 2.5, q.MaxValue())
}

func Test_Queue_PeekEmpty(t *testing.T) {
	var absent *bpq.Queue
	assert.Nil(t, absent.Peek())
	assert.Nil(t, absent.PeekLast())

	q := mustNew(t, 1)
	assert.Nil(t, q.Peek())
	assert.Nil(t, q.PeekLast())
}

func Test_Queue_SizeAbsent(t *testing.T) {
	var absent *bpq.Queue
	assert.Equal(t, -1, absent.Size())
	assert.Equal(t, -1, absent.Capacity())
	assert.Panics(t, func() { absent.IsEmpty() })
	assert.Panics(t, func() { absent.IsFull() })
}

func Test_Queue_Clear(t *testing.T) {
	q := mustNew(t, 4)
	for _, v := range []float64{2, 1, 3} {
		assert.NoError(t, q.Enqueue(bpq.NewElement(v, int(v))))
	}
	q.Clear()
	assert.True(t, q.IsEmpty())
	assert.Equal(t, 4, q.Capacity())
	q.Clear()
	assert.True(t, q.IsEmpty())

	var absent *bpq.Queue
	assert.NotPanics(t, func() { absent.Clear() })
}

func Test_Queue_Destroy(t *testing.T) {
	q := mustNew(t, 2)
	assert.NoError(t, q.Enqueue(bpq.NewElement(1, 1)))
	q.Destroy()
	assert.Equal(t, -1, q.Size())
	assert.ErrorIs(t, q.Enqueue(bpq.NewElement(1, 1)), bpq.ErrInvalidArgument)
	assert.NotPanics(t, func() { q.Destroy() })

	var absent *bpq.Queue
	assert.NotPanics(t, func() { absent.Destroy() })
}

func Test_Queue_String(t *testing.T) {
	q := mustNew(t, 3)
	assert.NoError(t, q.Enqueue(bpq.NewElement(2, 7)))
	assert.NoError(t, q.Enqueue(bpq.NewElement(1, 3)))
	assert.Equal(t, "bpq[2/3]{(3, 1) (7, 2)}", q.String())
}
