package vector

import (
	"fmt"
	"math"

	"github.com/viant/knnq/bpq"
)

// Point is an indexed tuple of coordinates. Its coordinates are copied on
// construction and never shared with the caller.
type Point struct {
	coords []float64
	index  int
}

// NewPoint creates a point holding a copy of coords.
func NewPoint(coords []float64, index int) *Point {
	return &Point{coords: append([]float64(nil), coords...), index: index}
}

// Copy returns an independent duplicate of p.
func (p *Point) Copy() *Point { return NewPoint(p.coords, p.index) }

func (p *Point) Dimension() int { return len(p.coords) }

func (p *Point) Index() int { return p.index }

// Coord returns the coordinate on the given axis. It panics when axis is out
// of range.
func (p *Point) Coord(axis int) float64 {
	if axis < 0 || axis >= len(p.coords) {
		panic(fmt.Sprintf("vector: axis %d out of range for dimension %d", axis, len(p.coords)))
	}
	return p.coords[axis]
}

// Float32s converts the coordinates into an embedding.
func (p *Point) Float32s() []float32 {
	out := make([]float32, len(p.coords))
	for i, c := range p.coords {
		out[i] = float32(c)
	}
	return out
}

// SquaredDistance returns Σ (p_i - q_i)². Both points must have the same
// dimension.
func SquaredDistance(p, q *Point) (float64, error) {
	if p.Dimension() != q.Dimension() {
		return 0, fmt.Errorf("vector: point dimension mismatch: %d vs %d", p.Dimension(), q.Dimension())
	}
	var sum float64
	for i := range p.coords {
		d := p.coords[i] - q.coords[i]
		sum += d * d
	}
	return sum, nil
}

// Nearest returns the k points closest to query as elements carrying the
// point index and the squared distance, nearest first. Points at a NaN
// distance, e.g. from infinite coordinates, are skipped.
func Nearest(points []*Point, query *Point, k int) ([]*bpq.Element, error) {
	q, err := bpq.New(k)
	if err != nil {
		return nil, err
	}
	for _, p := range points {
		d, err := SquaredDistance(p, query)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(d) {
			continue
		}
		_ = q.Enqueue(bpq.NewElement(d, p.Index()))
	}
	return q.Drain(), nil
}
