// Package notes runs the password-based note protocol on top of cryptox and
// lifecycle: it turns (text, password) into a fully populated encrypted
// record for the store, and a password back into plaintext.
//
// Persistence is a collaborator reached through the Store port. The package
// never sees the store's wire format and never retries store calls.
package notes

import (
	"context"
	"time"
)

// Record is a note row as handed to and received from the store.
type Record struct {
	ID               string
	EncryptedContent []byte
	IV               []byte
	Salt             []byte
	PasswordHash     []byte
	LookupHash       []byte
	ExpiresAt        *time.Time
	OneTime          bool
	ViewCount        int64
	CreatedAt        time.Time
}

// Store is the boundary contract with the external note store.
//
// FindByLookupHash must not return rows whose expiry has passed, and
// DeleteIfOneTime must be atomic with respect to concurrent readers so that
// only one of them observes success. Both report a missing row with
// common.ErrorNotFound. Insert reports an id clash with common.ErrDuplicateID.
type Store interface {
	Insert(ctx context.Context, r *Record) error
	FindByLookupHash(ctx context.Context, lookupHash []byte) (*Record, error)
	DeleteIfOneTime(ctx context.Context, id string) error
	MarkViewed(ctx context.Context, id string) (int64, error)
}

// CleanupReporter receives one-time deletes that failed after the plaintext
// was already released, so someone can finish the job.
type CleanupReporter interface {
	ReportFailedDelete(ctx context.Context, id string, err error)
}
