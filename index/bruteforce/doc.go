// Package bruteforce provides a simple vector index that answers kNN queries
// by scanning all vectors and scoring via cosine similarity. The best k
// candidates are kept in a bounded priority queue while scanning. It
// supports a compact binary format for persistence.
package bruteforce
