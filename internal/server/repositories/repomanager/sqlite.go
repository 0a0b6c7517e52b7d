package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/sealnote/internal/dbx"
	"github.com/dmitrijs2005/sealnote/internal/server/migrations/sqlite"
	"github.com/dmitrijs2005/sealnote/internal/server/repositories/notes"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager works with the pure-Go modernc driver.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) DriverName() string { return "sqlite" }

func (m *SQLiteRepositoryManager) Notes(db dbx.DBTX) notes.Repository {
	return notes.NewSQLiteRepository(db)
}

// SnapshotTxOptions is nil: a plain SQLite transaction already reads a
// consistent snapshot.
func (m *SQLiteRepositoryManager) SnapshotTxOptions() *sql.TxOptions {
	return nil
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, sqlite.Migrations, "sqlite3")
}
