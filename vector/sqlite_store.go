package vector

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/viant/knnq/bpq"
	"github.com/viant/knnq/logger"
)

// SQLiteStore implements Store on top of a SQLite database. Similarity
// search scans the stored embeddings and keeps the k nearest by squared
// Euclidean distance in a bounded priority queue.
type SQLiteStore struct {
	db  *sql.DB
	log *logger.Logger
}

// Option customises a SQLiteStore.
type Option func(*SQLiteStore)

// WithLogger makes the store report skipped rows and search statistics.
func WithLogger(l *logger.Logger) Option {
	return func(s *SQLiteStore) { s.log = l }
}

// NewSQLiteStore creates a new SQLite-backed Store. It ensures the base docs
// schema exists in the provided database.
func NewSQLiteStore(db *sql.DB, opts ...Option) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("vector: db is nil")
	}
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	s := &SQLiteStore{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AddDocuments inserts documents into the docs table in a single
// transaction. Documents without an ID get a random UUID.
func (s *SQLiteStore) AddDocuments(ctx context.Context, docs []Document) ([]string, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO docs(id, content, meta, embedding) VALUES(?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		id := d.ID
		if id == "" {
			id = uuid.NewString()
		}
		emb, err := EncodeEmbedding(d.Embedding)
		if err != nil {
			return nil, err
		}
		if _, err := stmt.ExecContext(ctx, id, d.Content, d.Metadata, emb); err != nil {
			return nil, fmt.Errorf("vector: insert %s: %w", id, err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	s.log.Debugf("added %d documents", len(ids))
	return ids, nil
}

// SimilaritySearch returns up to k documents nearest to queryEmbedding,
// nearest first, with Embedding and Distance populated. Rows without an
// embedding or with a different dimension are skipped.
func (s *SQLiteStore) SimilaritySearch(ctx context.Context, queryEmbedding []float32, k int) ([]Document, error) {
	if k <= 0 {
		return nil, nil
	}
	if len(queryEmbedding) == 0 {
		return nil, fmt.Errorf("vector: empty query embedding")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	queue, err := bpq.New(k)
	if err != nil {
		return nil, err
	}
	scanned, err := s.rank(ctx, queryEmbedding, queue)
	if err != nil {
		return nil, err
	}
	s.log.Debugf("similarity search scanned %d rows, kept %d", scanned, queue.Size())

	stmt, err := s.db.PrepareContext(ctx, `SELECT id, content, meta, embedding FROM docs WHERE rowid = ?`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	out := make([]Document, 0, queue.Size())
	for _, e := range queue.Drain() {
		var d Document
		var blob []byte
		if err := stmt.QueryRowContext(ctx, int64(e.Index())).Scan(&d.ID, &d.Content, &d.Metadata, &blob); err != nil {
			return nil, fmt.Errorf("vector: load rowid %d: %w", e.Index(), err)
		}
		if d.Embedding, err = DecodeEmbedding(blob); err != nil {
			return nil, err
		}
		d.Distance = e.Value()
		out = append(out, d)
	}
	return out, nil
}

// rank enqueues every usable row as (distance, rowid) and returns the number
// of rows scanned.
func (s *SQLiteStore) rank(ctx context.Context, query []float32, queue *bpq.Queue) (int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT rowid, id, embedding FROM docs ORDER BY rowid`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	scanned := 0
	for rows.Next() {
		var rowid int64
		var id string
		var blob []byte
		if err := rows.Scan(&rowid, &id, &blob); err != nil {
			return scanned, err
		}
		scanned++
		emb, err := DecodeEmbedding(blob)
		if err != nil {
			s.log.Warningf("skipping %s: %v", id, err)
			continue
		}
		if len(emb) == 0 {
			continue
		}
		dist, err := SquaredL2Distance(query, emb)
		if err != nil {
			s.log.Warningf("skipping %s: %v", id, err)
			continue
		}
		if math.IsNaN(dist) {
			s.log.Warningf("skipping %s: distance is NaN", id)
			continue
		}
		_ = queue.Enqueue(bpq.NewElement(dist, int(rowid)))
	}
	return scanned, rows.Err()
}

// Remove deletes a document by ID from the docs table.
func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("vector: Remove called with empty id")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM docs WHERE id = ?`, id)
	return err
}

// Ensure SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)
