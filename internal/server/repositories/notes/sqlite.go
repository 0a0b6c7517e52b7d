package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/sealnote/internal/common"
	"github.com/dmitrijs2005/sealnote/internal/dbx"
	"github.com/dmitrijs2005/sealnote/internal/server/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository stores timestamps as integer unix nanoseconds so that
// expiry comparisons are numeric.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, n *models.Note) error {
	query :=
		`INSERT INTO notes (` + columns + `)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.EncryptedContent, n.IV, n.Salt, n.PasswordHash, n.LookupHash,
		toNanos(n.ExpiresAt), n.OneTime, n.ViewCount, n.CreatedAt.UnixNano())
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return common.ErrDuplicateID
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) FindByLookupHash(ctx context.Context, lookupHash []byte, now time.Time) (*models.Note, error) {
	query :=
		`SELECT ` + columns + ` FROM notes
		 WHERE lookup_hash = ? AND (expires_at IS NULL OR expires_at > ?)
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`

	n, err := scanSQLite(r.db.QueryRowContext(ctx, query, lookupHash, now.UnixNano()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) DeleteIfOneTime(ctx context.Context, id string) error {
	query := `DELETE FROM notes WHERE id = ? AND one_time = 1 RETURNING id`

	var deleted string
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&deleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkViewed(ctx context.Context, id string) (int64, error) {
	query := `UPDATE notes SET view_count = view_count + 1 WHERE id = ? RETURNING view_count`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *SQLiteRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM notes WHERE expires_at IS NOT NULL AND expires_at <= ?`

	res, err := r.db.ExecContext(ctx, query, now.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteRepository) ListActive(ctx context.Context, now time.Time) ([]*models.Note, error) {
	query :=
		`SELECT ` + columns + ` FROM notes
		 WHERE expires_at IS NULL OR expires_at > ?
		 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, now.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		n, err := scanSQLite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

func scanSQLite(s scanner) (*models.Note, error) {
	n := &models.Note{}
	var expires sql.NullInt64
	var created int64
	err := s.Scan(&n.ID, &n.EncryptedContent, &n.IV, &n.Salt, &n.PasswordHash, &n.LookupHash,
		&expires, &n.OneTime, &n.ViewCount, &created)
	if err != nil {
		return nil, err
	}
	if expires.Valid {
		t := time.Unix(0, expires.Int64).UTC()
		n.ExpiresAt = &t
	}
	n.CreatedAt = time.Unix(0, created).UTC()
	return n, nil
}

// isSQLiteUniqueViolation matches both primary and extended result codes.
func isSQLiteUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE")
}

func toNanos(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixNano()
}
