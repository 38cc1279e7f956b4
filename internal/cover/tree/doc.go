// Package tree implements a generic cover tree with depth-first and
// best-first k-nearest-neighbor search over cosine or euclidean distance.
package tree
