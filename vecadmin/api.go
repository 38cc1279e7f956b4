package vecadmin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/viant/knnq/index"
	"github.com/viant/knnq/vector"
)

// ErrNotFound is returned by Load when no snapshot is stored under a name.
var ErrNotFound = errors.New("vecadmin: index snapshot not found")

const storageDDL = `CREATE TABLE IF NOT EXISTS vector_storage (
    name    TEXT PRIMARY KEY,
    "index" BLOB NOT NULL
)`

// EnsureStorage creates the vector_storage table that holds index snapshots.
func EnsureStorage(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, storageDDL)
	return err
}

// Reindex builds idx from every embedded document in the docs table and
// persists the serialized index under name. It returns the number of
// indexed documents.
func Reindex(ctx context.Context, db *sql.DB, name string, idx index.Index) (int, error) {
	if db == nil || idx == nil {
		return 0, fmt.Errorf("vecadmin: db and index are required")
	}
	if err := EnsureStorage(ctx, db); err != nil {
		return 0, err
	}
	ids, vecs, err := loadEmbeddings(ctx, db)
	if err != nil {
		return 0, err
	}
	if err := idx.Build(ids, vecs); err != nil {
		return 0, err
	}
	data, err := idx.MarshalBinary()
	if err != nil {
		return 0, err
	}
	if _, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO vector_storage(name, "index") VALUES(?, ?)`, name, data); err != nil {
		return 0, fmt.Errorf("vecadmin: persist %s: %w", name, err)
	}
	return len(ids), nil
}

// Load restores idx from the snapshot stored under name.
func Load(ctx context.Context, db *sql.DB, name string, idx index.Index) error {
	if err := EnsureStorage(ctx, db); err != nil {
		return err
	}
	var data []byte
	err := db.QueryRowContext(ctx, `SELECT "index" FROM vector_storage WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return err
	}
	return idx.UnmarshalBinary(data)
}

// loadEmbeddings reads ids and embeddings in insertion order, skipping rows
// without an embedding.
func loadEmbeddings(ctx context.Context, db *sql.DB) ([]string, [][]float32, error) {
	if err := vector.EnsureSchema(db); err != nil {
		return nil, nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT id, embedding FROM docs WHERE embedding IS NOT NULL ORDER BY rowid`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	var ids []string
	var vecs [][]float32
	for rows.Next() {
		var id string
		var emb []byte
		if err := rows.Scan(&id, &emb); err != nil {
			return nil, nil, err
		}
		if len(emb) == 0 {
			continue
		}
		v, err := vector.DecodeEmbedding(emb)
		if err != nil {
			return nil, nil, fmt.Errorf("vecadmin: decode %s: %w", id, err)
		}
		ids = append(ids, id)
		vecs = append(vecs, v)
	}
	return ids, vecs, rows.Err()
}
