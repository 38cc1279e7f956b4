// Package vecadmin rebuilds kNN indexes from the docs table and keeps
// serialized snapshots of them in the vector_storage table.
package vecadmin
