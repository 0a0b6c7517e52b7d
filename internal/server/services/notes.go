// Package services contains server-side business logic. NoteService sits
// between the gRPC handlers and the note repository: it checks the shape of
// incoming rows, stamps server time and runs the maintenance jobs.
package services

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/sealnote/internal/common"
	"github.com/dmitrijs2005/sealnote/internal/dbx"
	"github.com/dmitrijs2005/sealnote/internal/logging"
	"github.com/dmitrijs2005/sealnote/internal/server/models"
	"github.com/dmitrijs2005/sealnote/internal/server/repositories/notes"
	"github.com/dmitrijs2005/sealnote/internal/server/repositories/repomanager"
)

const (
	saltSize = 16
	ivSize   = 12
	// gcmTagSize is the minimum ciphertext length.
	gcmTagSize = 16
)

type NoteService struct {
	repo    notes.Repository
	db      *sql.DB
	manager repomanager.RepositoryManager
	logger  logging.Logger
	now     func() time.Time
}

type Option func(*NoteService)

// WithSQL makes Snapshot read inside a single transaction on db.
func WithSQL(db *sql.DB, m repomanager.RepositoryManager) Option {
	return func(s *NoteService) {
		s.db = db
		s.manager = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *NoteService) { s.now = now }
}

func NewNoteService(repo notes.Repository, logger logging.Logger, opts ...Option) *NoteService {
	s := &NoteService{
		repo:   repo,
		logger: logger.With("module", "note_service"),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Insert stores a new encrypted note. CreatedAt is always the server's clock.
func (s *NoteService) Insert(ctx context.Context, n *models.Note) error {
	now := s.now().UTC()
	if err := validateNote(n, now); err != nil {
		return err
	}
	n.CreatedAt = now
	n.ViewCount = 0

	if err := s.repo.Insert(ctx, n); err != nil {
		return err
	}
	s.logger.Debug(ctx, "note inserted", "note_id", n.ID, "one_time", n.OneTime)
	return nil
}

// Find returns the newest active note for lookupHash.
func (s *NoteService) Find(ctx context.Context, lookupHash []byte) (*models.Note, error) {
	if len(lookupHash) != sha256.Size {
		return nil, fmt.Errorf("%w: lookup hash must be %d bytes", common.ErrorValidation, sha256.Size)
	}
	return s.repo.FindByLookupHash(ctx, lookupHash, s.now())
}

// Consume deletes a one-time note. Only one caller can succeed per note.
func (s *NoteService) Consume(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", common.ErrorValidation)
	}
	if err := s.repo.DeleteIfOneTime(ctx, id); err != nil {
		return err
	}
	s.logger.Debug(ctx, "one-time note consumed", "note_id", id)
	return nil
}

func (s *NoteService) MarkViewed(ctx context.Context, id string) (int64, error) {
	if id == "" {
		return 0, fmt.Errorf("%w: id is required", common.ErrorValidation)
	}
	return s.repo.MarkViewed(ctx, id)
}

// Sweep deletes every note whose expiry has passed.
func (s *NoteService) Sweep(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("sweep: %w", err)
	}
	if n > 0 {
		s.logger.Info(ctx, "expired notes removed", "count", n)
	}
	return n, nil
}

// Snapshot lists all active notes. SQL backends read them in one transaction.
func (s *NoteService) Snapshot(ctx context.Context) ([]*models.Note, error) {
	now := s.now()
	if s.db == nil || s.manager == nil {
		return s.repo.ListActive(ctx, now)
	}

	var result []*models.Note
	err := dbx.WithTx(ctx, s.db, s.manager.SnapshotTxOptions(), func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		result, err = s.manager.Notes(tx).ListActive(ctx, now)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return result, nil
}

func validateNote(n *models.Note, now time.Time) error {
	switch {
	case n == nil:
		return fmt.Errorf("%w: note is required", common.ErrorValidation)
	case n.ID == "":
		return fmt.Errorf("%w: id is required", common.ErrorValidation)
	case len(n.EncryptedContent) < gcmTagSize:
		return fmt.Errorf("%w: encrypted content too short", common.ErrorValidation)
	case len(n.IV) != ivSize:
		return fmt.Errorf("%w: iv must be %d bytes", common.ErrorValidation, ivSize)
	case len(n.Salt) != saltSize:
		return fmt.Errorf("%w: salt must be %d bytes", common.ErrorValidation, saltSize)
	case len(n.PasswordHash) != sha256.Size:
		return fmt.Errorf("%w: password hash must be %d bytes", common.ErrorValidation, sha256.Size)
	case len(n.LookupHash) != sha256.Size:
		return fmt.Errorf("%w: lookup hash must be %d bytes", common.ErrorValidation, sha256.Size)
	case n.ExpiresAt != nil && !n.ExpiresAt.After(now):
		return fmt.Errorf("%w: expiration must be in the future", common.ErrorValidation)
	}
	return nil
}
