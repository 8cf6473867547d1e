// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// One row holds one record of any kind. Tag and class sets are stored as
// JSON arrays of names, and the record's Hash is kept in an indexed column
// so duplicate checks only compare rows that can possibly be equal.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aanand-mishra/address-book/internal/config"
	"github.com/aanand-mishra/address-book/internal/storage"
	"github.com/aanand-mishra/address-book/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

// recordColumns is the column list every SELECT uses, in scanRecord order.
const recordColumns = "id, kind, name, phone, email, address, tags, subject, classes"

// New opens the SQLite database at cfg.StoragePath, creates the records
// table if it does not already exist, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", dsn(cfg.StoragePath))
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE ... IF NOT EXISTS is idempotent — safe to run on every startup.
	//
	// Schema:
	//   kind    — "person" or "student"
	//   tags    — JSON array of tag names (students include "student")
	//   subject — empty for plain persons
	//   classes — JSON array of class names, "[]" for plain persons
	//   hash    — types.Record.Hash reinterpreted as a signed integer
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			kind    TEXT    NOT NULL,
			name    TEXT    NOT NULL,
			phone   TEXT    NOT NULL,
			email   TEXT    NOT NULL,
			address TEXT    NOT NULL,
			tags    TEXT    NOT NULL DEFAULT '[]',
			subject TEXT    NOT NULL DEFAULT '',
			classes TEXT    NOT NULL DEFAULT '[]',
			hash    INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_records_hash ON records (hash);
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// dsn appends the driver options every connection needs:
//
//	_txlock=immediate  BeginTx issues BEGIN IMMEDIATE, so a transaction holds
//	                   the write lock from its first statement
//	_busy_timeout      a writer waits for that lock instead of failing
//	                   with SQLITE_BUSY
func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_txlock=immediate&_busy_timeout=5000"
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// row is the flattened column form of a record.
type row struct {
	kind    string
	name    string
	phone   string
	email   string
	address string
	tags    string
	subject string
	classes string
	hash    int64
}

func toRow(record types.Record) (row, error) {
	in := types.InputOf(record)

	tags, err := json.Marshal(in.Tags)
	if err != nil {
		return row{}, fmt.Errorf("encode tags: %w", err)
	}
	classes := in.Classes
	if classes == nil {
		classes = []string{}
	}
	classesJSON, err := json.Marshal(classes)
	if err != nil {
		return row{}, fmt.Errorf("encode classes: %w", err)
	}

	return row{
		kind:    string(in.Kind),
		name:    in.Name,
		phone:   in.Phone,
		email:   in.Email,
		address: in.Address,
		tags:    string(tags),
		subject: in.Subject,
		classes: string(classesJSON),
		hash:    int64(record.Hash()),
	}, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one row and rebuilds the record through the value-type
// constructors, so a stored row never bypasses validation.
func scanRecord(sc scanner) (storage.Stored, error) {
	var (
		id                  int64
		kind, tags, classes string
		in                  types.RecordInput
	)
	if err := sc.Scan(&id, &kind, &in.Name, &in.Phone, &in.Email, &in.Address,
		&tags, &in.Subject, &classes); err != nil {
		return storage.Stored{}, err
	}

	in.Kind = types.Kind(kind)
	if err := json.Unmarshal([]byte(tags), &in.Tags); err != nil {
		return storage.Stored{}, fmt.Errorf("decode tags of record %d: %w", id, err)
	}
	if err := json.Unmarshal([]byte(classes), &in.Classes); err != nil {
		return storage.Stored{}, fmt.Errorf("decode classes of record %d: %w", id, err)
	}

	record, err := types.Build(in)
	if err != nil {
		return storage.Stored{}, fmt.Errorf("rebuild record %d: %w", id, err)
	}
	return storage.Stored{ID: id, Record: record}, nil
}

// findDuplicate returns the id of a stored record Equal to record, other
// than excludeID, or 0 when there is none. It runs inside the caller's
// write transaction so no equal row can be inserted between the check and
// the write.
func findDuplicate(tx *sql.Tx, record types.Record, hash int64, excludeID int64) (int64, error) {
	rows, err := tx.Query(
		"SELECT "+recordColumns+" FROM records WHERE hash = ? AND id != ?",
		hash, excludeID,
	)
	if err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		stored, err := scanRecord(rows)
		if err != nil {
			return 0, err
		}
		if stored.Record.Equal(record) {
			return stored.ID, nil
		}
	}
	return 0, rows.Err()
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateRecord inserts a new row. The duplicate check and the INSERT share
// one BEGIN IMMEDIATE transaction, so concurrent creates of equal records
// are serialised and only the first succeeds.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreateRecord(record types.Record) (int64, error) {
	r, err := toRow(record)
	if err != nil {
		return 0, fmt.Errorf("CreateRecord: %w", err)
	}

	tx, err := s.Db.BeginTx(context.Background(), nil)
	if err != nil {
		return 0, fmt.Errorf("CreateRecord: begin: %w", err)
	}
	// Rollback after Commit is a no-op returning sql.ErrTxDone.
	defer tx.Rollback()

	dupID, err := findDuplicate(tx, record, r.hash, 0)
	if err != nil {
		return 0, fmt.Errorf("CreateRecord: duplicate check: %w", err)
	}
	if dupID != 0 {
		return 0, fmt.Errorf("CreateRecord: same as record %d: %w", dupID, storage.ErrDuplicate)
	}

	result, err := tx.Exec(`
		INSERT INTO records (kind, name, phone, email, address, tags, subject, classes, hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.kind, r.name, r.phone, r.email, r.address, r.tags, r.subject, r.classes, r.hash)
	if err != nil {
		return 0, fmt.Errorf("CreateRecord: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateRecord: last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("CreateRecord: commit: %w", err)
	}

	return lastID, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetRecordByID fetches exactly one row matched by primary key.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetRecordByID(id int64) (storage.Stored, error) {
	stmt, err := s.Db.Prepare("SELECT " + recordColumns + " FROM records WHERE id = ? LIMIT 1")
	if err != nil {
		return storage.Stored{}, fmt.Errorf("GetRecordByID: prepare: %w", err)
	}
	defer stmt.Close()

	stored, err := scanRecord(stmt.QueryRow(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Stored{}, fmt.Errorf("no record found with id %d: %w", id, storage.ErrNotFound)
		}
		return storage.Stored{}, fmt.Errorf("GetRecordByID: scan: %w", err)
	}

	return stored, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetRecords returns all rows as a slice.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetRecords() ([]storage.Stored, error) {
	records, err := s.list("SELECT " + recordColumns + " FROM records ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("GetRecords: %w", err)
	}
	return records, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// FindByTag returns the rows whose tag array contains tag. json_each
// expands the stored array into one row per name.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) FindByTag(tag types.Tag) ([]storage.Stored, error) {
	records, err := s.list(`
		SELECT `+recordColumns+` FROM records
		WHERE EXISTS (SELECT 1 FROM json_each(records.tags) WHERE json_each.value = ?)
		ORDER BY id
	`, tag.Name())
	if err != nil {
		return nil, fmt.Errorf("FindByTag: %w", err)
	}
	return records, nil
}

func (s *SQLite) list(query string, args ...any) ([]storage.Stored, error) {
	stmt, err := s.Db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	// Empty (non-nil) so the HTTP layer encodes [] rather than null.
	records := make([]storage.Stored, 0)

	for rows.Next() {
		stored, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		records = append(records, stored)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return records, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdateRecordByID replaces a row with the provided record, which may be of
// a different kind than before. The existence check, duplicate check and
// UPDATE run in one transaction. Returns the stored result.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) UpdateRecordByID(id int64, record types.Record) (storage.Stored, error) {
	r, err := toRow(record)
	if err != nil {
		return storage.Stored{}, fmt.Errorf("UpdateRecordByID: %w", err)
	}

	tx, err := s.Db.BeginTx(context.Background(), nil)
	if err != nil {
		return storage.Stored{}, fmt.Errorf("UpdateRecordByID: begin: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow("SELECT 1 FROM records WHERE id = ?", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Stored{}, fmt.Errorf("no record found with id %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return storage.Stored{}, fmt.Errorf("UpdateRecordByID: lookup: %w", err)
	}

	dupID, err := findDuplicate(tx, record, r.hash, id)
	if err != nil {
		return storage.Stored{}, fmt.Errorf("UpdateRecordByID: duplicate check: %w", err)
	}
	if dupID != 0 {
		return storage.Stored{}, fmt.Errorf("UpdateRecordByID: same as record %d: %w", dupID, storage.ErrDuplicate)
	}

	_, err = tx.Exec(`
		UPDATE records
		SET kind = ?, name = ?, phone = ?, email = ?, address = ?,
		    tags = ?, subject = ?, classes = ?, hash = ?
		WHERE id = ?
	`, r.kind, r.name, r.phone, r.email, r.address, r.tags, r.subject, r.classes, r.hash, id)
	if err != nil {
		return storage.Stored{}, fmt.Errorf("UpdateRecordByID: exec: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return storage.Stored{}, fmt.Errorf("UpdateRecordByID: commit: %w", err)
	}

	// Re-fetch the record so we return exactly what is stored in the DB.
	return s.GetRecordByID(id)
}

// ─────────────────────────────────────────────────────────────────────────────
// DeleteRecordByID removes a row by primary key.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) DeleteRecordByID(id int64) error {
	stmt, err := s.Db.Prepare("DELETE FROM records WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteRecordByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeleteRecordByID: exec: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteRecordByID: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no record found with id %d: %w", id, storage.ErrNotFound)
	}

	return nil
}
