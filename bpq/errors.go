package bpq

import "errors"

// ErrInvalidArgument reports an absent queue, a nil element, a NaN value or
// a capacity below one.
var ErrInvalidArgument = errors.New("bpq: invalid argument")

// ErrFull is returned by Enqueue when a full queue rejects an element that
// is not strictly below its maximum.
var ErrFull = errors.New("bpq: queue is full")

// ErrEmpty is returned by Dequeue on an empty queue.
var ErrEmpty = errors.New("bpq: queue is empty")
