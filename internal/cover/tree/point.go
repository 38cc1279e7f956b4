package tree

// Point is a vector stored in the tree. Magnitude is filled in on insert
// when left zero.
type Point struct {
	index     int32
	Magnitude float32
	Vector    []float32
}

// NewPoint constructs a point for the given vector.
func NewPoint(vector ...float32) *Point {
	return &Point{index: -1, Vector: vector}
}

// HasValue reports whether the point was inserted into a tree.
func (p *Point) HasValue() bool {
	return p != nil && p.index >= 0
}

// Index returns the insertion index, or -1 for a point never inserted.
func (p *Point) Index() int32 {
	if p == nil {
		return -1
	}
	return p.index
}
