package vecutil

import (
	"context"
	"fmt"

	"github.com/viant/knnq/vector"
)

// EmbedFunc converts free-form text into an embedding.
//
// Implementations can call any embedding provider as long as they return a
// slice of float32 values; the store only sees numeric vectors.
type EmbedFunc func(ctx context.Context, text string) ([]float32, error)

// Index provides a text-in, text-out API on top of a vector.Store. It remains
// embedding-agnostic by requiring an EmbedFunc supplied by the caller.
type Index struct {
	Store vector.Store
	Embed EmbedFunc
}

// NewIndex constructs an Index over store.
func NewIndex(store vector.Store, embed EmbedFunc) (*Index, error) {
	if store == nil {
		return nil, fmt.Errorf("vecutil: store is nil")
	}
	if embed == nil {
		return nil, fmt.Errorf("vecutil: EmbedFunc is nil")
	}
	return &Index{Store: store, Embed: embed}, nil
}

// Document is a text document to be embedded and stored. Meta is an opaque
// string, typically JSON.
type Document struct {
	ID      string
	Content string
	Meta    string
}

// Match is a single similarity search hit.
type Match struct {
	ID       string
	Distance float64
	Content  string
	Meta     string
}

// UpsertText embeds each document's Content and stores it, replacing any
// document with the same ID. It returns the stored IDs; documents without an
// ID get a generated one.
func (ix *Index) UpsertText(ctx context.Context, docs []Document) ([]string, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	batch := make([]vector.Document, 0, len(docs))
	for _, d := range docs {
		emb, err := ix.Embed(ctx, d.Content)
		if err != nil {
			return nil, fmt.Errorf("vecutil: embed %s: %w", d.ID, err)
		}
		if d.ID != "" {
			if err := ix.Store.Remove(ctx, d.ID); err != nil {
				return nil, err
			}
		}
		batch = append(batch, vector.Document{ID: d.ID, Content: d.Content, Metadata: d.Meta, Embedding: emb})
	}
	return ix.Store.AddDocuments(ctx, batch)
}

// Delete removes documents with the given ids.
func (ix *Index) Delete(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		if err := ix.Store.Remove(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// QueryText embeds query and returns up to k nearest documents, nearest
// first. Distance is the squared Euclidean distance reported by the store.
func (ix *Index) QueryText(ctx context.Context, query string, k int) ([]Match, error) {
	qVec, err := ix.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	docs, err := ix.Store.SimilaritySearch(ctx, qVec, k)
	if err != nil {
		return nil, err
	}
	out := make([]Match, 0, len(docs))
	for _, d := range docs {
		out = append(out, Match{ID: d.ID, Distance: d.Distance, Content: d.Content, Meta: d.Metadata})
	}
	return out, nil
}
