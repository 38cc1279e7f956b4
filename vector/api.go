package vector

import (
	"context"
)

// Document represents a logical document stored in the vector store.
type Document struct {
	// ID is the logical identifier of the document. When empty on insert, the
	// store generates one.
	ID string

	// Content holds the main text/body of the document.
	Content string

	// Metadata is an opaque JSON or structured payload associated with the
	// document, kept as a raw string.
	Metadata string

	// Embedding is the vector representation of the document content.
	Embedding []float32

	// Distance is the squared Euclidean distance to the query vector. It is
	// only set on documents returned by SimilaritySearch.
	Distance float64
}

// Store defines the application-level vector store API.
type Store interface {
	// AddDocuments inserts documents into the store and returns their assigned
	// IDs. A Document with ID set keeps it (subject to uniqueness constraints).
	AddDocuments(ctx context.Context, docs []Document) ([]string, error)

	// SimilaritySearch performs a k-nearest-neighbour search using the provided
	// embedding as the query vector and returns up to k matching documents,
	// nearest first.
	SimilaritySearch(ctx context.Context, queryEmbedding []float32, k int) ([]Document, error)

	// Remove deletes the document with the given ID.
	Remove(ctx context.Context, id string) error
}
