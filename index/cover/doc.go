// Package cover adapts the internal cover tree to the index.Index interface.
// Queries walk the tree depth-first (or best-first) and keep the k nearest
// points in a bounded priority queue whose maximum prunes subtrees.
package cover
