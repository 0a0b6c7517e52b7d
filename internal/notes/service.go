package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/sealnote/internal/common"
	"github.com/dmitrijs2005/sealnote/internal/cryptox"
	"github.com/dmitrijs2005/sealnote/internal/lifecycle"
	"github.com/dmitrijs2005/sealnote/internal/logging"
	"github.com/google/uuid"
)

const (
	// MaxTextLength caps the note body, counted in characters.
	MaxTextLength = 5000
	// MinPasswordLength is the only strength rule applied to passwords.
	MinPasswordLength = 3
)

// StoreInput is what the form layer hands over on the store path.
type StoreInput struct {
	Text      string
	Password  string
	ExpiresAt *time.Time
	OneTime   bool
}

type StoreResult struct {
	ID string
}

// Meta describes a retrieved note without revealing anything about the password.
type Meta struct {
	OneTime   bool
	ViewCount int64
	ExpiresAt *time.Time
	CreatedAt time.Time
}

type Retrieved struct {
	Plaintext string
	Meta      Meta
}

// Service orchestrates the store and retrieve paths. It holds no mutable
// state and is safe for concurrent use.
type Service struct {
	store   Store
	suite   *cryptox.Suite
	cleanup CleanupReporter
	logger  logging.Logger
	now     func() time.Time
	newID   func() string
}

type ServiceOption func(*Service)

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(f func() string) ServiceOption {
	return func(s *Service) { s.newID = f }
}

func WithCleanupReporter(r CleanupReporter) ServiceOption {
	return func(s *Service) { s.cleanup = r }
}

func NewService(store Store, suite *cryptox.Suite, logger logging.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		store:  store,
		suite:  suite,
		logger: logger.With("module", "notes"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	if s.cleanup == nil {
		s.cleanup = logReporter{logger: s.logger}
	}
	return s
}

// Store encrypts in.Text under in.Password and inserts the resulting record.
// Store-layer errors are returned unchanged.
func (s *Service) Store(ctx context.Context, in StoreInput) (*StoreResult, error) {
	text, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	password := []byte(in.Password)

	key, salt, err := s.suite.DeriveKey(password, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	defer cryptox.Wipe(key)

	ciphertext, iv, err := s.suite.Encrypt(key, []byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: encrypt: %w", common.ErrorInternal, err)
	}

	rec := &Record{
		ID:               s.newID(),
		EncryptedContent: ciphertext,
		IV:               iv,
		Salt:             salt,
		PasswordHash:     cryptox.VerifierHash(key),
		LookupHash:       cryptox.LookupHash(password),
		ExpiresAt:        in.ExpiresAt,
		OneTime:          in.OneTime,
		CreatedAt:        s.now().UTC(),
	}

	if err := s.store.Insert(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "note stored", "note_id", rec.ID, "one_time", rec.OneTime, "expires", rec.ExpiresAt != nil)
	return &StoreResult{ID: rec.ID}, nil
}

// Retrieve finds the note stored under password and decrypts it.
//
// It returns common.ErrorNotFound when no readable note exists (including
// expired notes and one-time notes consumed by a concurrent reader) and
// common.ErrWrongPassword when a row matched but did not verify or decrypt.
// Store errors are returned unchanged.
func (s *Service) Retrieve(ctx context.Context, password string) (*Retrieved, error) {
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	pw := []byte(password)

	rec, err := s.store.FindByLookupHash(ctx, cryptox.LookupHash(pw))
	if err != nil {
		return nil, err
	}

	if lifecycle.Evaluate(rec.ExpiresAt, s.now()) == lifecycle.Expired {
		return nil, common.ErrorNotFound
	}

	plaintext, err := s.open(pw, rec)
	if err != nil {
		return nil, err
	}

	meta := Meta{
		OneTime:   rec.OneTime,
		ViewCount: rec.ViewCount,
		ExpiresAt: rec.ExpiresAt,
		CreatedAt: rec.CreatedAt,
	}

	_, action := lifecycle.AfterRead(rec.OneTime)
	switch action {
	case lifecycle.ActionDelete:
		err := s.store.DeleteIfOneTime(ctx, rec.ID)
		switch {
		case err == nil:
			meta.ViewCount = rec.ViewCount + 1
		case errors.Is(err, common.ErrorNotFound):
			// another reader consumed it first
			cryptox.Wipe(plaintext)
			return nil, common.ErrorNotFound
		default:
			s.cleanup.ReportFailedDelete(ctx, rec.ID, err)
			meta.ViewCount = rec.ViewCount + 1
		}
	case lifecycle.ActionMarkViewed:
		n, err := s.store.MarkViewed(ctx, rec.ID)
		if err != nil {
			s.logger.Warn(ctx, "view counter not updated", "note_id", rec.ID, "error", err)
		} else {
			meta.ViewCount = n
		}
	}

	return &Retrieved{Plaintext: string(plaintext), Meta: meta}, nil
}

func (s *Service) open(password []byte, rec *Record) ([]byte, error) {
	// a salt of the wrong size can only come from a damaged row
	if len(rec.Salt) != cryptox.SaltSize {
		return nil, common.ErrWrongPassword
	}

	key, _, err := s.suite.DeriveKey(password, rec.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	defer cryptox.Wipe(key)

	if !cryptox.VerifierMatches(key, rec.PasswordHash) {
		return nil, common.ErrWrongPassword
	}

	plaintext, err := s.suite.Decrypt(key, rec.EncryptedContent, rec.IV)
	if err != nil {
		return nil, common.ErrWrongPassword
	}
	return plaintext, nil
}

func (s *Service) validate(in StoreInput) (string, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return "", fmt.Errorf("%w: text is required", common.ErrorValidation)
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return "", fmt.Errorf("%w: text exceeds %d characters", common.ErrorValidation, MaxTextLength)
	}

	pw := strings.TrimSpace(in.Password)
	if pw == "" {
		return "", fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	if utf8.RuneCountInString(pw) < MinPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters long", common.ErrorValidation, MinPasswordLength)
	}

	if in.ExpiresAt != nil && !in.ExpiresAt.After(s.now()) {
		return "", fmt.Errorf("%w: expiration must be in the future", common.ErrorValidation)
	}
	return text, nil
}

// PublicMessage maps a Retrieve error to the text shown to end users. Missing,
// expired, wrong-password and corrupted notes all read the same.
func PublicMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrWrongPassword):
		return common.PublicRetrieveFailure
	case errors.Is(err, common.ErrorValidation):
		return err.Error()
	default:
		return "failed to retrieve note"
	}
}

type logReporter struct {
	logger logging.Logger
}

func (r logReporter) ReportFailedDelete(ctx context.Context, id string, err error) {
	r.logger.Error(ctx, "one-time note was read but not deleted", "note_id", id, "error", err)
}
