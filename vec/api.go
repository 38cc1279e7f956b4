package vec

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/viant/knnq/index"
	"github.com/viant/knnq/vector"
	"modernc.org/sqlite/vtab"
)

const (
	defaultK = 10

	idxScan  = 0
	idxMatch = 1
)

// bindings maps a database handle and virtual table name to the index that
// answers MATCH queries. Tables look their index up on every Filter so
// rebinding takes effect without recreating the table.
var bindings = struct {
	mu   sync.RWMutex
	byDB map[bindingKey]index.Index
}{byDB: make(map[bindingKey]index.Index)}

type bindingKey struct {
	db    *sql.DB
	table string
}

func newBindingKey(db *sql.DB, table string) bindingKey {
	return bindingKey{db: db, table: strings.ToLower(table)}
}

// Bind associates idx with the virtual table called table in db. A nil idx
// removes the binding. Tables with the same name in other databases are
// unaffected.
func Bind(db *sql.DB, table string, idx index.Index) {
	key := newBindingKey(db, table)
	bindings.mu.Lock()
	defer bindings.mu.Unlock()
	if idx == nil {
		delete(bindings.byDB, key)
		return
	}
	bindings.byDB[key] = idx
}

func bound(db *sql.DB, table string) index.Index {
	bindings.mu.RLock()
	defer bindings.mu.RUnlock()
	return bindings.byDB[newBindingKey(db, table)]
}

// Module implements vtab.Module for the vec virtual table.
type Module struct {
	db *sql.DB
}

// Table is a single vec virtual table instance.
type Table struct {
	db   *sql.DB
	name string
	k    int
}

// Cursor iterates the ranked matches of one query.
type Cursor struct {
	table *Table
	rows  []match
	pos   int
}

type match struct {
	id    string
	score float64
}

// Register registers the vec virtual table module with the provided *sql.DB.
func Register(db *sql.DB) error {
	if err := vtab.RegisterModule(db, "vec", &Module{db: db}); err != nil {
		if !strings.Contains(err.Error(), "already registered") {
			return err
		}
	}
	return nil
}

// Create initializes a vec table instance.
func (m *Module) Create(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.connect(ctx, args)
}

// Connect attaches to an existing vec table instance.
func (m *Module) Connect(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.connect(ctx, args)
}

func (m *Module) connect(ctx vtab.Context, args []string) (vtab.Table, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("vec: expected at least 3 args, got %d", len(args))
	}
	if err := ctx.EnableConstraintSupport(); err != nil {
		return nil, fmt.Errorf("vec: EnableConstraintSupport failed: %w", err)
	}
	k, err := parseK(args[3:])
	if err != nil {
		return nil, err
	}
	if err := ctx.Declare(fmt.Sprintf("CREATE TABLE %s(id TEXT, score REAL)", args[2])); err != nil {
		return nil, err
	}
	return &Table{db: m.db, name: args[2], k: k}, nil
}

// parseK reads the k=N option; k=0 returns every match.
func parseK(args []string) (int, error) {
	k := defaultK
	for _, raw := range args {
		parts := strings.SplitN(strings.TrimSpace(raw), "=", 2)
		if len(parts) != 2 || strings.ToLower(strings.TrimSpace(parts[0])) != "k" {
			continue
		}
		n, err := strconv.Atoi(strings.Trim(strings.TrimSpace(parts[1]), `'"`))
		if err != nil || n < 0 {
			return 0, fmt.Errorf("vec: invalid k %q", parts[1])
		}
		k = n
	}
	return k, nil
}

// BestIndex pushes down MATCH on the id column.
func (t *Table) BestIndex(info *vtab.IndexInfo) error {
	info.IdxNum = idxScan
	for i := range info.Constraints {
		c := &info.Constraints[i]
		if c.Usable && c.Column == 0 && c.Op == vtab.OpMATCH {
			c.ArgIndex = 0
			c.Omit = true
			info.IdxNum = idxMatch
			return nil
		}
	}
	return nil
}

// Open allocates a new cursor.
func (t *Table) Open() (vtab.Cursor, error) { return &Cursor{table: t}, nil }

// Disconnect cleans up per-connection resources.
func (t *Table) Disconnect() error { return nil }

// Destroy removes the index binding of the table.
func (t *Table) Destroy() error {
	Bind(t.db, t.name, nil)
	return nil
}

// Filter runs the query. Without MATCH the table is empty.
func (c *Cursor) Filter(idxNum int, idxStr string, vals []vtab.Value) error {
	_ = idxStr
	c.rows, c.pos = nil, 0
	if idxNum != idxMatch {
		return nil
	}
	if len(vals) == 0 || vals[0] == nil {
		return fmt.Errorf("vec: MATCH argument is required")
	}
	query, err := decodeMatchArg(vals[0])
	if err != nil {
		return err
	}
	idx := bound(c.table.db, c.table.name)
	if idx == nil {
		return fmt.Errorf("vec: no index bound to %s", c.table.name)
	}
	ids, scores, err := idx.Query(query, c.table.k)
	if err != nil {
		return err
	}
	c.rows = make([]match, len(ids))
	for i, id := range ids {
		c.rows[i] = match{id: id}
		if i < len(scores) {
			c.rows[i].score = scores[i]
		}
	}
	return nil
}

func decodeMatchArg(v vtab.Value) ([]float32, error) {
	switch val := v.(type) {
	case []byte:
		return vector.DecodeEmbedding(val)
	case string:
		return vector.ParseEmbedding(val)
	default:
		return nil, fmt.Errorf("vec: expected MATCH arg as BLOB or string, got %T", v)
	}
}

// Next advances the cursor.
func (c *Cursor) Next() error {
	if c.pos < len(c.rows) {
		c.pos++
	}
	return nil
}

// Eof reports end-of-rows.
func (c *Cursor) Eof() bool { return c.pos >= len(c.rows) }

// Column returns the value of a column in the current row.
func (c *Cursor) Column(col int) (vtab.Value, error) {
	if c.pos >= len(c.rows) {
		return nil, fmt.Errorf("vec: Column out of range (pos=%d,len=%d)", c.pos, len(c.rows))
	}
	switch col {
	case 0:
		return c.rows[c.pos].id, nil
	case 1:
		return c.rows[c.pos].score, nil
	}
	return nil, fmt.Errorf("vec: unsupported column %d", col)
}

// Rowid returns the 1-based rank of the current row.
func (c *Cursor) Rowid() (int64, error) {
	if c.pos >= len(c.rows) {
		return 0, fmt.Errorf("vec: Rowid out of range (pos=%d,len=%d)", c.pos, len(c.rows))
	}
	return int64(c.pos + 1), nil
}

// Close releases resources.
func (c *Cursor) Close() error { c.rows = nil; c.pos = 0; return nil }
