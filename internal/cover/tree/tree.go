package tree

// The tree layout follows github.com/viant/gds/tree/cover.

import (
	"math"
	"sync"

	"github.com/viant/vec/search"
)

// Tree is a cover tree answering cosine or euclidean kNN queries over
// vectors, each carrying a value of type T.
type Tree[T any] struct {
	root             *Node
	base             float32
	distanceFuncName DistanceFunction
	distanceFunc     DistanceFunc
	values           values[T]
	indexMap         map[int32]*Point
	version          uint64
	boundStrategy    BoundStrategy
	mu               sync.RWMutex
}

// Node is one level of the tree. Children are stored by value; radius caches
// the subtree radius for the tree version in radiusComputed.
type Node struct {
	level          int32
	baseLevel      float32
	point          *Point
	children       []Node
	radius         float32
	radiusComputed uint64
}

func newNode(point *Point, level int32, base float32) Node {
	n := Node{point: point}
	n.setLevel(level, base)
	return n
}

func (n *Node) setLevel(level int32, base float32) {
	n.level = level
	n.baseLevel = float32(math.Pow(float64(base), float64(level)))
}

// NewTree constructs a cover tree with the provided base and distance metric.
// A base <= 1 falls back to 1.3 and an unknown metric to cosine.
func NewTree[T any](base float32, distanceFn DistanceFunction) *Tree[T] {
	if base <= 1 {
		base = 1.3
	}
	fn := distanceFn.Function()
	if fn == nil {
		fn = DistanceFunctionCosine.Function()
		distanceFn = DistanceFunctionCosine
	}
	return &Tree[T]{
		base:             base,
		distanceFuncName: distanceFn,
		distanceFunc:     fn,
		indexMap:         make(map[int32]*Point),
		boundStrategy:    BoundPerNode,
	}
}

// Base returns the level base.
func (t *Tree[T]) Base() float32 { return t.base }

// Distance returns the metric the tree was built with.
func (t *Tree[T]) Distance() DistanceFunction { return t.distanceFuncName }

// SetBoundStrategy switches the pruning strategy.
func (t *Tree[T]) SetBoundStrategy(s BoundStrategy) {
	t.mu.Lock()
	t.boundStrategy = s
	t.mu.Unlock()
}

// Len returns the number of inserted points.
func (t *Tree[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.indexMap)
}

// Insert adds a new value/vector pair to the tree and returns its index.
func (t *Tree[T]) Insert(value T, point *Point) int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	point.index = t.values.put(value)
	t.indexMap[point.index] = point
	if point.Magnitude == 0 && len(point.Vector) > 0 {
		point.Magnitude = search.Float32s(point.Vector).Magnitude()
	}
	if t.root == nil {
		node := newNode(point, 0, t.base)
		t.root = &node
	} else {
		t.insert(point)
	}
	t.version++
	return point.index
}

// FindPointByIndex returns the point for a stored index.
func (t *Tree[T]) FindPointByIndex(index int32) *Point {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.indexMap[index]
}

// Value returns the stored value for the given point.
func (t *Tree[T]) Value(point *Point) T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var zero T
	if !point.HasValue() {
		return zero
	}
	return t.values.value(point.index)
}

// Values resolves the stored values for the provided points, skipping those
// that were never inserted.
func (t *Tree[T]) Values(points []*Point) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	result := make([]T, 0, len(points))
	for _, point := range points {
		if !point.HasValue() {
			continue
		}
		result = append(result, t.values.value(point.index))
	}
	return result
}

// insert keeps two invariants every search bound relies on: a child sits
// at a lower level than its parent, and within base^level of the parent.
// Hence all points below a node at level l lie within base^l*base/(base-1).
func (t *Tree[T]) insert(point *Point) {
	root := t.root
	for t.distanceFunc(point, root.point) > root.baseLevel {
		root.setLevel(root.level+1, t.base)
	}
	node := root
	for {
		next := -1
		for i := range node.children {
			child := &node.children[i]
			if t.distanceFunc(point, child.point) <= child.baseLevel {
				next = i
				break
			}
		}
		if next < 0 {
			node.children = append(node.children, newNode(point, node.level-1, t.base))
			return
		}
		node = &node.children[next]
	}
}
