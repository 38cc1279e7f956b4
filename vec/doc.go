// Package vec implements a SQLite virtual table that exposes a kNN index
// through MATCH:
//
//	CREATE VIRTUAL TABLE nearest USING vec(k=5);
//	SELECT id, score FROM nearest WHERE id MATCH ?;
//
// The index answering a table is bound from Go with Bind, per database handle
// and table name. The MATCH argument
// is an encoded embedding BLOB, a JSON float list, base64 or a comma list.
// Rows come back best first; rowid is the rank.
package vec
