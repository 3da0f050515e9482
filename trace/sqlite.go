package trace

import (
	"database/sql"
	"fmt"

	// SQLite driver for the trace database.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// SQLiteTraceWriter stores events in a SQLite database.
type SQLiteTraceWriter struct {
	db        *sql.DB
	statement *sql.Stmt

	dbName    string
	events    []Event
	batchSize int
}

// NewSQLiteTraceWriter creates a SQLite-backed tracer. If path is
// empty, a unique database name is generated.
func NewSQLiteTraceWriter(path string) *SQLiteTraceWriter {
	w := &SQLiteTraceWriter{
		dbName:    path,
		batchSize: 100000,
	}

	atexit.Register(func() { w.Flush() })

	return w
}

// Init creates the database and the events table.
func (t *SQLiteTraceWriter) Init() error {
	if t.dbName == "" {
		t.dbName = "vliwdbt_trace_" + xid.New().String()
	}

	db, err := sql.Open("sqlite3", t.dbName+".sqlite3")
	if err != nil {
		return err
	}
	t.db = db

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS trace (
			id TEXT PRIMARY KEY,
			kind TEXT,
			location TEXT,
			what TEXT
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create trace table: %w", err)
	}

	t.statement, err = db.Prepare(
		"INSERT INTO trace (id, kind, location, what) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare trace statement: %w", err)
	}

	return nil
}

// Record buffers an event, flushing when the batch fills.
func (t *SQLiteTraceWriter) Record(e Event) {
	if e.ID == "" {
		e.ID = NewID()
	}

	t.events = append(t.events, e)
	if len(t.events) >= t.batchSize {
		t.Flush()
	}
}

// Flush writes the buffered events in one transaction.
func (t *SQLiteTraceWriter) Flush() {
	if t.db == nil || len(t.events) == 0 {
		return
	}

	tx, err := t.db.Begin()
	if err != nil {
		panic(err)
	}

	stmt := tx.Stmt(t.statement)
	for _, e := range t.events {
		if _, err := stmt.Exec(e.ID, e.Kind, e.Where, e.What); err != nil {
			panic(err)
		}
	}

	if err := tx.Commit(); err != nil {
		panic(err)
	}

	t.events = nil
}
