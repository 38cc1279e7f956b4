package tree

import (
	"fmt"
	"math"
	"strings"

	"github.com/viant/vec/search"
)

// DistanceFunction enumerates supported distance metrics for the cover tree.
type DistanceFunction string

const (
	DistanceFunctionCosine    DistanceFunction = "cosine"
	DistanceFunctionEuclidean DistanceFunction = "euclidean"
)

// ParseDistanceFunction resolves a metric name; "l2" is accepted for
// euclidean.
func ParseDistanceFunction(name string) (DistanceFunction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(DistanceFunctionCosine):
		return DistanceFunctionCosine, nil
	case string(DistanceFunctionEuclidean), "l2":
		return DistanceFunctionEuclidean, nil
	}
	return "", fmt.Errorf("tree: unsupported distance %q", name)
}

// DistanceFunc computes the distance between two points.
type DistanceFunc func(p1, p2 *Point) float32

// Function resolves the callable distance implementation.
func (d DistanceFunction) Function() DistanceFunc {
	switch d {
	case DistanceFunctionCosine:
		return CosineDistance
	case DistanceFunctionEuclidean:
		return EuclideanDistance
	default:
		return nil
	}
}

// CosineDistance returns the cosine distance (1 - cosine similarity), using
// the cached magnitudes when present.
func CosineDistance(p1, p2 *Point) float32 {
	v1 := search.Float32s(p1.Vector)
	m1 := p1.Magnitude
	if m1 == 0 {
		m1 = v1.Magnitude()
	}
	v2 := search.Float32s(p2.Vector)
	m2 := p2.Magnitude
	if m2 == 0 {
		m2 = v2.Magnitude()
	}
	var dot float64
	for i, v := range p1.Vector {
		dot += float64(v) * float64(p2.Vector[i])
	}
	return float32(1 - dot/(float64(m1)*float64(m2)))
}

// EuclideanDistance returns the Euclidean distance between two points.
func EuclideanDistance(p1, p2 *Point) float32 {
	var sum float64
	for i, v := range p1.Vector {
		d := float64(v) - float64(p2.Vector[i])
		sum += d * d
	}
	return float32(math.Sqrt(sum))
}
