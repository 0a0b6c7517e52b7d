// Package repomanager vends SQL-backed note repositories and runs the
// embedded goose migrations for each supported dialect.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/sealnote/internal/dbx"
	"github.com/dmitrijs2005/sealnote/internal/server/repositories/notes"
)

type RepositoryManager interface {
	// DriverName is the database/sql driver to open the DSN with.
	DriverName() string
	RunMigrations(context.Context, *sql.DB) error
	Notes(db dbx.DBTX) notes.Repository
	// SnapshotTxOptions are the options for consistent multi-row reads.
	SnapshotTxOptions() *sql.TxOptions
}

// New returns the manager for the named storage backend ("postgres" or
// "sqlite"). ok is false for non-SQL backends.
func New(storage string) (m RepositoryManager, ok bool) {
	switch storage {
	case "postgres":
		return &PostgresRepositoryManager{}, true
	case "sqlite":
		return &SQLiteRepositoryManager{}, true
	default:
		return nil, false
	}
}
