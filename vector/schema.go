package vector

import (
	"database/sql"
)

const docsSchema = `
CREATE TABLE IF NOT EXISTS docs (
    id TEXT PRIMARY KEY,
    content TEXT,
    meta TEXT,
    embedding BLOB
);
`

// EnsureSchema creates the documents table if it does not already exist.
// Rows are scanned in rowid order during similarity search, so the implicit
// rowid is the only ordering the store relies on.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(docsSchema)
	return err
}
