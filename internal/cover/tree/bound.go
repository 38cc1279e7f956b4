package tree

import "math"

// BoundStrategy selects which lower-bound radius to use when pruning.
type BoundStrategy int

const (
	// BoundPerNode uses cached per-node subtree radius (tighter pruning).
	BoundPerNode BoundStrategy = iota
	// BoundLevel uses the geometric bound base^level*base/(base-1), which
	// holds for every node because children are inserted one level down
	// and within base^level of their parent. It needs no radius cache and
	// is as exact as BoundPerNode for a metric distance.
	BoundLevel
)

// String returns the option name of the strategy.
func (s BoundStrategy) String() string {
	if s == BoundLevel {
		return "level"
	}
	return "node"
}

func (t *Tree[T]) boundRadius(n *Node) float32 {
	if t.boundStrategy == BoundLevel {
		return t.levelCoverRadius(n)
	}
	return t.ensureRadius(n)
}

// ensureRadius returns the largest distance from n to any point below it,
// recomputing it when the tree changed since it was cached.
func (t *Tree[T]) ensureRadius(n *Node) float32 {
	if n == nil {
		return 0
	}
	if n.radiusComputed == t.version {
		return n.radius
	}
	maxR := float32(0)
	for i := range n.children {
		child := &n.children[i]
		d := t.distanceFunc(n.point, child.point) + t.ensureRadius(child)
		if d > maxR {
			maxR = d
		}
	}
	n.radius = maxR
	n.radiusComputed = t.version
	return maxR
}

func (t *Tree[T]) levelCoverRadius(n *Node) float32 {
	if t.base <= 1 || n == nil {
		return float32(math.MaxFloat32)
	}
	return n.baseLevel * t.base / (t.base - 1)
}
