// Package vecutil wraps a vector.Store with an embedding function so callers
// can upsert and query free-form text.
package vecutil
