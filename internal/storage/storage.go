// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to keep address-book records.
//
// Handlers (HTTP layer) should not know or care which database they are
// talking to. By depending only on this interface:
//
//   - Switching databases = implement the interface for the new DB,
//     change one line in main.go. Zero handler changes.
//
//   - Writing tests = pass a fake that satisfies the interface.
//     No real database needed for handler tests.
package storage

import (
	"errors"

	"github.com/aanand-mishra/address-book/internal/types"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a record Equal to the one being
	// written is already stored under another id.
	ErrDuplicate = errors.New("record already exists")
)

// Stored is a record together with its primary key.
type Stored struct {
	ID     int64
	Record types.Record
}

// Storage is the database contract.
type Storage interface {
	// CreateRecord inserts a record and returns its generated id.
	// Fails with ErrDuplicate if an equal record exists.
	CreateRecord(record types.Record) (int64, error)

	// GetRecordByID fetches a single record; ErrNotFound if missing.
	GetRecordByID(id int64) (Stored, error)

	// GetRecords returns every record ordered by id.
	// Returns an empty slice (not nil) if there are none.
	GetRecords() ([]Stored, error)

	// FindByTag returns the records carrying tag, ordered by id.
	FindByTag(tag types.Tag) ([]Stored, error)

	// UpdateRecordByID replaces the record stored under id and returns
	// the stored result. ErrNotFound if missing, ErrDuplicate if another
	// id already holds an equal record.
	UpdateRecordByID(id int64, record types.Record) (Stored, error)

	// DeleteRecordByID removes a record permanently; ErrNotFound if missing.
	DeleteRecordByID(id int64) error
}
