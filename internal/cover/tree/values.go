package tree

// values is the append-only value store addressed by point index. It is
// guarded by the tree lock.
type values[T any] struct {
	data []T
}

func (v *values[T]) put(value T) int32 {
	v.data = append(v.data, value)
	return int32(len(v.data) - 1)
}

func (v *values[T]) value(index int32) T {
	var zero T
	if index < 0 || int(index) >= len(v.data) {
		return zero
	}
	return v.data[index]
}
