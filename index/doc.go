// Package index defines a minimal abstraction for vector indexes that can be
// built from embeddings, queried for kNN, and serialized for persistence.
// Implementations select their top-k candidates with a bounded priority
// queue (see TopK): a brute-force baseline and a cover tree.
package index
