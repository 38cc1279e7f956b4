// Package engine provides helpers for working with the modernc.org/sqlite
// driver in this module: opening connections and registering the vector SQL
// scalar functions (vec_cosine, vec_l2, vec_l2sq). It keeps a thin surface so
// other packages share the same driver instance.
package engine
