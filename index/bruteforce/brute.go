package bruteforce

import (
	"fmt"
	"math"

	"github.com/viant/knnq/bpq"
	"github.com/viant/knnq/index"
)

// Index is a brute-force vector index ranking by cosine similarity.
type Index struct {
	ids  []string
	vecs [][]float32
	dim  int
	mags []float64
}

// Build loads ids and vectors and precomputes magnitudes.
func (i *Index) Build(ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("bruteforce: ids and vectors length mismatch: %d != %d", len(ids), len(vectors))
	}
	if len(ids) == 0 {
		i.ids, i.vecs, i.mags, i.dim = nil, nil, nil, 0
		return nil
	}
	dim := len(vectors[0])
	for j := range vectors {
		if len(vectors[j]) != dim {
			return fmt.Errorf("bruteforce: inconsistent vector dims %d vs %d", len(vectors[j]), dim)
		}
	}
	mags := make([]float64, len(vectors))
	for j := range vectors {
		mags[j] = magnitude(vectors[j])
	}
	i.ids = append([]string(nil), ids...)
	i.vecs = append([][]float32(nil), vectors...)
	i.dim = dim
	i.mags = mags
	return nil
}

// Len returns the number of indexed vectors.
func (i *Index) Len() int { return len(i.ids) }

// Query returns the top-k ids by cosine similarity, most similar first.
// Zero-magnitude vectors never match.
func (i *Index) Query(query []float32, k int) ([]string, []float64, error) {
	if i.dim == 0 || len(i.vecs) == 0 {
		return nil, nil, nil
	}
	if len(query) != i.dim {
		return nil, nil, fmt.Errorf("bruteforce: query dim %d != index dim %d", len(query), i.dim)
	}
	qm := magnitude(query)
	if qm == 0 {
		return nil, nil, nil
	}
	queue, err := index.TopK(k, len(i.vecs))
	if err != nil {
		return nil, nil, err
	}
	for j := range i.vecs {
		if i.mags[j] == 0 {
			continue
		}
		s := dot(query, i.vecs[j]) / (qm * i.mags[j])
		if math.IsNaN(s) {
			continue
		}
		// Negated similarity keeps the most similar at the queue head.
		_ = queue.Enqueue(bpq.NewElement(-s, j))
	}
	best := queue.Drain()
	outIDs := make([]string, len(best))
	outScores := make([]float64, len(best))
	for n, e := range best {
		outIDs[n] = i.ids[e.Index()]
		outScores[n] = -e.Value()
	}
	return outIDs, outScores, nil
}

// MarshalBinary stores the index in the format described by Encode.
func (i *Index) MarshalBinary() ([]byte, error) {
	return Encode(i.ids, i.vecs)
}

// UnmarshalBinary restores the index from bytes.
func (i *Index) UnmarshalBinary(data []byte) error {
	ids, vecs, err := Decode(data)
	if err != nil {
		return err
	}
	return i.Build(ids, vecs)
}

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}
func magnitude(v []float32) float64 { return math.Sqrt(dot(v, v)) }
