// Package bpq implements a bounded priority queue: an ordered container of
// at most N (value, index) elements kept ascending by value. When the queue
// is full, a new element is admitted only if its value is strictly below the
// current maximum, which is then evicted. It is intended for top-k selection
// such as k-nearest-neighbour search, where N is small and a linear scan per
// insert is cheaper than maintaining a heap.
//
// Elements cross the queue boundary by copy only: Enqueue stores a copy of
// its argument and Peek/PeekLast return fresh copies.
//
// A Queue is not safe for concurrent use.
package bpq
