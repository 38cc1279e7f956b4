package tree

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomVectors(n, dim int, seed int64) [][]float32 {
	r := rand.New(rand.NewSource(seed))
	out := make([][]float32, n)
	for i := range out {
		v := make([]float32, dim)
		for j := range v {
			v[j] = r.Float32()*2 - 1
		}
		out[i] = v
	}
	return out
}

func exactDistances(vectors [][]float32, query []float32, k int) []float32 {
	q := NewPoint(query...)
	dists := make([]float32, len(vectors))
	for i, v := range vectors {
		dists[i] = EuclideanDistance(q, NewPoint(v...))
	}
	sort.Slice(dists, func(i, j int) bool { return dists[i] < dists[j] })
	return dists[:k]
}

func buildTree(vectors [][]float32, distance DistanceFunction) *Tree[int] {
	t := NewTree[int](1.3, distance)
	for i, v := range vectors {
		t.Insert(i, NewPoint(v...))
	}
	return t
}

func TestTree_KNearestNeighbors_Euclidean(t *testing.T) {
	vectors := randomVectors(300, 4, 7)
	for _, strategy := range []BoundStrategy{BoundPerNode, BoundLevel} {
		tree := buildTree(vectors, DistanceFunctionEuclidean)
		tree.SetBoundStrategy(strategy)
		require.Equal(t, 300, tree.Len())

		for _, query := range randomVectors(10, 4, 11) {
			expect := exactDistances(vectors, query, 5)
			for name, search := range map[string]func(*Point, int) []*Neighbor{
				"depthFirst": tree.KNearestNeighbors,
				"bestFirst":  tree.KNearestNeighborsBestFirst,
			} {
				got := search(NewPoint(query...), 5)
				require.Len(t, got, 5, name)
				for i, n := range got {
					assert.InDelta(t, expect[i], n.Distance, 1e-5, "%v %s", strategy, name)
					assert.Equal(t, vectors[tree.Value(n.Point)], n.Point.Vector, name)
				}
			}
		}
	}
}

func TestTree_KNearestNeighbors_MatchesExhaustiveScan(t *testing.T) {
	r := rand.New(rand.NewSource(136))
	for trial := 0; trial < 200; trial++ {
		n := 5 + r.Intn(60)
		k := 1 + r.Intn(6)
		if k > n {
			k = n
		}
		vectors := randomVectors(n, 3, int64(trial))
		query := randomVectors(1, 3, int64(1000+trial))[0]
		expect := exactDistances(vectors, query, k)

		for _, strategy := range []BoundStrategy{BoundPerNode, BoundLevel} {
			tree := buildTree(vectors, DistanceFunctionEuclidean)
			tree.SetBoundStrategy(strategy)
			for _, bestFirst := range []bool{false, true} {
				var got []*Neighbor
				if bestFirst {
					got = tree.KNearestNeighborsBestFirst(NewPoint(query...), k)
				} else {
					got = tree.KNearestNeighbors(NewPoint(query...), k)
				}
				require.Len(t, got, k)
				for i, nb := range got {
					require.InDelta(t, expect[i], nb.Distance, 1e-5,
						"trial %d strategy %v bestFirst %v rank %d", trial, strategy, bestFirst, i)
				}
			}
		}
	}
}

func TestTree_CoveringInvariant(t *testing.T) {
	tree := buildTree(randomVectors(150, 3, 5), DistanceFunctionEuclidean)
	var walk func(n *Node)
	walk = func(n *Node) {
		for i := range n.children {
			child := &n.children[i]
			assert.Less(t, child.level, n.level)
			assert.LessOrEqual(t, EuclideanDistance(n.point, child.point), n.baseLevel)
			walk(child)
		}
	}
	walk(tree.root)
}

func TestTree_KNearestNeighbors_CosineOrdered(t *testing.T) {
	vectors := randomVectors(100, 3, 3)
	tree := buildTree(vectors, DistanceFunctionCosine)
	tree.SetBoundStrategy(BoundLevel)

	got := tree.KNearestNeighbors(NewPoint(0.5, 0.5, 0.5), 8)
	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 8)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Distance, got[i].Distance)
	}
}

func TestTree_SmallSet(t *testing.T) {
	tree := NewTree[string](0, DistanceFunctionEuclidean)
	assert.Equal(t, float32(1.3), tree.Base())
	assert.Nil(t, tree.KNearestNeighbors(NewPoint(0, 0), 2))

	tree.Insert("origin", NewPoint(0, 0))
	tree.Insert("far", NewPoint(10, 10))
	tree.Insert("near", NewPoint(1, 0))

	got := tree.KNearestNeighbors(NewPoint(0.9, 0), 2)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"near", "origin"}, tree.Values([]*Point{got[0].Point, got[1].Point}))
	assert.InDelta(t, 0.1, got[0].Distance, 1e-6)

	all := tree.KNearestNeighborsBestFirst(NewPoint(9, 9), 10)
	require.Len(t, all, 3)
	assert.Equal(t, "far", tree.Value(all[0].Point))
	assert.Equal(t, int32(1), all[0].Index())
	assert.Same(t, all[0].Point, tree.FindPointByIndex(1))

	assert.Nil(t, tree.KNearestNeighbors(NewPoint(0, 0), 0))
	assert.Equal(t, "", tree.Value(NewPoint(1, 1)))
}

func TestDistance(t *testing.T) {
	a, b := NewPoint(1, 0), NewPoint(0, 1)
	assert.InDelta(t, 1.0, CosineDistance(a, b), 1e-6)
	assert.InDelta(t, math.Sqrt2, EuclideanDistance(a, b), 1e-6)

	for name, expect := range map[string]DistanceFunction{
		"":          DistanceFunctionCosine,
		"Cosine":    DistanceFunctionCosine,
		"euclidean": DistanceFunctionEuclidean,
		"l2":        DistanceFunctionEuclidean,
	} {
		got, err := ParseDistanceFunction(name)
		assert.NoError(t, err, name)
		assert.Equal(t, expect, got, name)
	}
	_, err := ParseDistanceFunction("manhattan")
	assert.Error(t, err)
	assert.Nil(t, DistanceFunction("manhattan").Function())
}
