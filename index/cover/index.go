package cover

import (
	"fmt"
	"math"

	"github.com/viant/knnq/index/bruteforce"
	"github.com/viant/knnq/internal/cover/tree"
)

// BoundStrategy selects the pruning radius used during search.
type BoundStrategy = tree.BoundStrategy

// DistanceFunction names the metric the tree is built with.
type DistanceFunction = tree.DistanceFunction

const (
	BoundPerNode = tree.BoundPerNode
	BoundLevel   = tree.BoundLevel

	DistanceCosine    = tree.DistanceFunctionCosine
	DistanceEuclidean = tree.DistanceFunctionEuclidean
)

// Index is a kNN index backed by a cover tree. It serializes using the
// brute-force encoding so either index can load the other's data.
type Index struct {
	ids       []string
	vecs      [][]float32
	dim       int
	base      float32
	bound     BoundStrategy
	distance  DistanceFunction
	bestFirst bool
	tree      *tree.Tree[int]
}

// Option configures an Index.
type Option func(*Index)

// WithBase sets the level base of the tree; values <= 1 fall back to 1.3.
func WithBase(base float32) Option {
	return func(i *Index) { i.base = base }
}

// WithBoundStrategy sets the pruning strategy.
func WithBoundStrategy(s BoundStrategy) Option {
	return func(i *Index) { i.bound = s }
}

// WithDistance sets the metric. Unknown metrics fall back to cosine.
func WithDistance(d DistanceFunction) Option {
	return func(i *Index) { i.distance = d }
}

// WithBestFirst switches queries to best-first traversal.
func WithBestFirst(enabled bool) Option {
	return func(i *Index) { i.bestFirst = enabled }
}

// New creates an empty Index.
func New(opts ...Option) *Index {
	i := &Index{base: 1.3, bound: BoundPerNode, distance: DistanceCosine}
	for _, opt := range opts {
		opt(i)
	}
	if i.distance.Function() == nil {
		i.distance = DistanceCosine
	}
	return i
}

// Build inserts every vector into a fresh tree. For cosine, zero-magnitude
// vectors are kept for persistence but never returned by Query.
func (i *Index) Build(ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("cover: ids and vectors length mismatch: %d != %d", len(ids), len(vectors))
	}
	if i.distance == "" {
		*i = *New()
	}
	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	for j := range vectors {
		if len(vectors[j]) != dim {
			return fmt.Errorf("cover: inconsistent vector dims %d vs %d", len(vectors[j]), dim)
		}
	}
	t := tree.NewTree[int](i.base, i.distance)
	t.SetBoundStrategy(i.bound)
	for j, v := range vectors {
		if i.distance == DistanceCosine && magnitude(v) == 0 {
			continue
		}
		t.Insert(j, tree.NewPoint(v...))
	}
	i.ids = append([]string(nil), ids...)
	i.vecs = append([][]float32(nil), vectors...)
	i.dim = dim
	i.tree = t
	return nil
}

// Len returns the number of vectors the index was built with.
func (i *Index) Len() int { return len(i.ids) }

// Query returns up to k ids nearest to query. Scores are 1-distance for
// cosine and -distance for euclidean, so higher is always better.
func (i *Index) Query(query []float32, k int) ([]string, []float64, error) {
	if i.tree == nil || i.tree.Len() == 0 {
		return nil, nil, nil
	}
	if len(query) != i.dim {
		return nil, nil, fmt.Errorf("cover: query dim %d != index dim %d", len(query), i.dim)
	}
	if i.distance == DistanceCosine && magnitude(query) == 0 {
		return nil, nil, nil
	}
	if k <= 0 || k > i.tree.Len() {
		k = i.tree.Len()
	}
	point := tree.NewPoint(query...)
	var neighbors []*tree.Neighbor
	if i.bestFirst {
		neighbors = i.tree.KNearestNeighborsBestFirst(point, k)
	} else {
		neighbors = i.tree.KNearestNeighbors(point, k)
	}
	ids := make([]string, 0, len(neighbors))
	scores := make([]float64, 0, len(neighbors))
	for _, n := range neighbors {
		ids = append(ids, i.ids[i.tree.Value(n.Point)])
		scores = append(scores, i.score(n.Distance))
	}
	return ids, scores, nil
}

func (i *Index) score(distance float32) float64 {
	if i.distance == DistanceEuclidean {
		return -float64(distance)
	}
	return 1 - float64(distance)
}

// MarshalBinary uses the brute-force format for persistence.
func (i *Index) MarshalBinary() ([]byte, error) {
	return bruteforce.Encode(i.ids, i.vecs)
}

// UnmarshalBinary loads brute-force format and rebuilds the tree with the
// index's current options.
func (i *Index) UnmarshalBinary(data []byte) error {
	ids, vecs, err := bruteforce.Decode(data)
	if err != nil {
		return err
	}
	return i.Build(ids, vecs)
}

func magnitude(v []float32) float64 {
	var s float64
	for _, x := range v {
		s += float64(x) * float64(x)
	}
	return math.Sqrt(s)
}

// ParseDistance resolves a metric name such as "cosine", "euclidean" or "l2".
func ParseDistance(name string) (DistanceFunction, error) {
	return tree.ParseDistanceFunction(name)
}

// Distance converts a Query score back to the distance it was derived from.
func (i *Index) Distance(score float64) float64 {
	if i.distance == DistanceEuclidean {
		return -score
	}
	return 1 - score
}
