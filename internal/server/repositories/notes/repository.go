// Package notes persists note rows for the store server. Every backend
// (PostgreSQL, SQLite, MongoDB, memory) honours the same contract:
//
//   - FindByLookupHash never returns a row whose expiry is at or before now,
//     and returns the newest active row when several share a lookup hash.
//   - DeleteIfOneTime removes the row in a single atomic step, so of several
//     concurrent callers exactly one succeeds and the rest get ErrorNotFound.
//   - Missing rows are reported as common.ErrorNotFound and id clashes as
//     common.ErrDuplicateID.
package notes

import (
	"context"
	"time"

	"github.com/dmitrijs2005/sealnote/internal/server/models"
)

type Repository interface {
	Insert(ctx context.Context, n *models.Note) error
	FindByLookupHash(ctx context.Context, lookupHash []byte, now time.Time) (*models.Note, error)
	DeleteIfOneTime(ctx context.Context, id string) error
	MarkViewed(ctx context.Context, id string) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	ListActive(ctx context.Context, now time.Time) ([]*models.Note, error)
}

const columns = `id, encrypted_content, iv, salt, password_hash, lookup_hash, expires_at, one_time, view_count, created_at`
