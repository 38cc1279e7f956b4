// Package vector defines a lightweight vector-store API and SQLite-backed
// utilities used by this project. It includes:
//   - Document model and Store interface
//   - SQLiteStore: durable document storage with kNN similarity search
//   - Point: an indexed coordinate tuple with squared Euclidean distance
//   - Schema helpers to create a docs table
//   - Embedding encoding (BLOB) and distance functions
package vector
