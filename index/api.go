package index

import "github.com/viant/knnq/bpq"

// Index defines a generic vector index with basic lifecycle methods.
// It enables building from (id, embedding) pairs, kNN queries, and
// binary serialization for persistence.
type Index interface {
	// Build constructs the index from the given ids and vectors.
	// ids and vectors must have the same length; vectors must be non-nil.
	Build(ids []string, vectors [][]float32) error

	// Query runs a kNN search against the index with the provided query vector
	// and returns up to k matches as parallel slices of ids and scores, best
	// match first, where higher score means more similar. k <= 0 asks for
	// every indexed vector.
	Query(query []float32, k int) (ids []string, scores []float64, err error)

	// MarshalBinary serializes the index into a byte slice.
	MarshalBinary() ([]byte, error)

	// UnmarshalBinary reconstructs the index from a serialized byte slice.
	UnmarshalBinary(data []byte) error
}

// TopK returns the bounded queue an index uses to collect the k best of n
// candidates, ranked by ascending value. k <= 0 or k > n selects all n.
func TopK(k, n int) (*bpq.Queue, error) {
	if k <= 0 || k > n {
		k = n
	}
	return bpq.New(k)
}
