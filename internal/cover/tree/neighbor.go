package tree

// Neighbor describes a point returned by a kNN search.
type Neighbor struct {
	Point    *Point
	Distance float32
}

// Index returns the insertion index of the neighbor's point, or -1.
func (n *Neighbor) Index() int32 {
	if n == nil || n.Point == nil {
		return -1
	}
	return n.Point.index
}
