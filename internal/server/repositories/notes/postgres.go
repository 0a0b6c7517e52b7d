package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/sealnote/internal/common"
	"github.com/dmitrijs2005/sealnote/internal/dbx"
	"github.com/dmitrijs2005/sealnote/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, n *models.Note) error {
	query :=
		`INSERT INTO notes (` + columns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.EncryptedContent, n.IV, n.Salt, n.PasswordHash, n.LookupHash,
		n.ExpiresAt, n.OneTime, n.ViewCount, n.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrDuplicateID
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindByLookupHash(ctx context.Context, lookupHash []byte, now time.Time) (*models.Note, error) {
	query :=
		`SELECT ` + columns + ` FROM notes
		 WHERE lookup_hash = $1 AND (expires_at IS NULL OR expires_at > $2)
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`

	n, err := scanPostgres(r.db.QueryRowContext(ctx, query, lookupHash, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) DeleteIfOneTime(ctx context.Context, id string) error {
	query := `DELETE FROM notes WHERE id = $1 AND one_time RETURNING id`

	var deleted string
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&deleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) MarkViewed(ctx context.Context, id string) (int64, error) {
	query := `UPDATE notes SET view_count = view_count + 1 WHERE id = $1 RETURNING view_count`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM notes WHERE expires_at IS NOT NULL AND expires_at <= $1`

	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}

func (r *PostgresRepository) ListActive(ctx context.Context, now time.Time) ([]*models.Note, error) {
	query :=
		`SELECT ` + columns + ` FROM notes
		 WHERE expires_at IS NULL OR expires_at > $1
		 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		n, err := scanPostgres(rows)
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

type scanner interface {
	Scan(dest ...any) error
}

func scanPostgres(s scanner) (*models.Note, error) {
	n := &models.Note{}
	var expires sql.NullTime
	err := s.Scan(&n.ID, &n.EncryptedContent, &n.IV, &n.Salt, &n.PasswordHash, &n.LookupHash,
		&expires, &n.OneTime, &n.ViewCount, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	if expires.Valid {
		t := expires.Time.UTC()
		n.ExpiresAt = &t
	}
	n.CreatedAt = n.CreatedAt.UTC()
	return n, nil
}
