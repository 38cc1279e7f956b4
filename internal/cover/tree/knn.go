package tree

import (
	"container/heap"
	"sort"

	"github.com/viant/knnq/bpq"
)

// KNearestNeighbors runs a depth-first kNN search and returns up to k
// neighbors, nearest first. Candidates are collected in a bounded priority
// queue keyed by distance; once it is full its maximum bounds the search.
func (t *Tree[T]) KNearestNeighbors(point *Point, k int) []*Neighbor {
	unlock := t.lockForSearch()
	defer unlock()
	if t.root == nil || k <= 0 {
		return nil
	}
	queue, _ := bpq.New(k)
	t.kNearestNeighbors(t.root, point, queue)
	return t.neighbors(queue)
}

func (t *Tree[T]) kNearestNeighbors(node *Node, point *Point, queue *bpq.Queue) {
	dc := t.distanceFunc(point, node.point)
	_ = queue.Enqueue(bpq.NewElement(float64(dc), int(node.point.index)))
	if len(node.children) == 0 {
		return
	}
	type childDist struct {
		child *Node
		dist  float32
	}
	cds := make([]childDist, 0, len(node.children))
	for i := range node.children {
		child := &node.children[i]
		cds = append(cds, childDist{child: child, dist: t.distanceFunc(point, child.point)})
	}
	sort.Slice(cds, func(i, j int) bool { return cds[i].dist < cds[j].dist })
	for _, cd := range cds {
		if t.pruned(queue, cd.dist-t.boundRadius(cd.child)) {
			continue
		}
		t.kNearestNeighbors(cd.child, point, queue)
	}
}

// KNearestNeighborsBestFirst performs a best-first search, expanding nodes in
// order of their distance lower bound.
func (t *Tree[T]) KNearestNeighborsBestFirst(point *Point, k int) []*Neighbor {
	unlock := t.lockForSearch()
	defer unlock()
	if t.root == nil || k <= 0 {
		return nil
	}
	queue, _ := bpq.New(k)
	frontier := &nodeQueue{}
	rootDist := t.distanceFunc(point, t.root.point)
	heap.Push(frontier, nodeItem{node: t.root, lb: rootDist - t.boundRadius(t.root), centerDist: rootDist})

	for frontier.Len() > 0 {
		top := heap.Pop(frontier).(nodeItem)
		if t.pruned(queue, top.lb) {
			break
		}
		_ = queue.Enqueue(bpq.NewElement(float64(top.centerDist), int(top.node.point.index)))
		for i := range top.node.children {
			child := &top.node.children[i]
			cd := t.distanceFunc(point, child.point)
			lb := cd - t.boundRadius(child)
			if t.pruned(queue, lb) {
				continue
			}
			heap.Push(frontier, nodeItem{node: child, lb: lb, centerDist: cd})
		}
	}
	return t.neighbors(queue)
}

// pruned reports whether a subtree whose points are all at least lowerBound
// away can no longer improve a full result queue.
func (t *Tree[T]) pruned(queue *bpq.Queue, lowerBound float32) bool {
	if !queue.IsFull() {
		return false
	}
	worst, _ := queue.Max()
	return float64(lowerBound) >= worst
}

// lockForSearch takes the write lock when the per-node radius cache may be
// refreshed during the search.
func (t *Tree[T]) lockForSearch() func() {
	t.mu.RLock()
	strategy := t.boundStrategy
	t.mu.RUnlock()
	if strategy == BoundPerNode {
		t.mu.Lock()
		return t.mu.Unlock
	}
	t.mu.RLock()
	return t.mu.RUnlock
}

func (t *Tree[T]) neighbors(queue *bpq.Queue) []*Neighbor {
	elements := queue.Drain()
	result := make([]*Neighbor, 0, len(elements))
	for _, e := range elements {
		result = append(result, &Neighbor{
			Point:    t.indexMap[int32(e.Index())],
			Distance: float32(e.Value()),
		})
	}
	return result
}

type nodeItem struct {
	node       *Node
	lb         float32
	centerDist float32
}

// nodeQueue is the unbounded search frontier ordered by lower bound.
type nodeQueue []nodeItem

func (q nodeQueue) Len() int            { return len(q) }
func (q nodeQueue) Less(i, j int) bool  { return q[i].lb < q[j].lb }
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(nodeItem)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}
