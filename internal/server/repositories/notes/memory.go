package notes

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/sealnote/internal/common"
	"github.com/dmitrijs2005/sealnote/internal/server/models"
)

// MemoryRepository keeps notes in process memory. Rows are copied on the way
// in and out so callers never share slices with the store.
type MemoryRepository struct {
	mu    sync.Mutex
	notes map[string]*models.Note
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{notes: make(map[string]*models.Note)}
}

func (r *MemoryRepository) Insert(_ context.Context, n *models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[n.ID]; ok {
		return common.ErrDuplicateID
	}
	r.notes[n.ID] = cloneNote(n)
	return nil
}

func (r *MemoryRepository) FindByLookupHash(_ context.Context, lookupHash []byte, now time.Time) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var found *models.Note
	for _, n := range r.notes {
		if !bytes.Equal(n.LookupHash, lookupHash) || !n.ActiveAt(now) {
			continue
		}
		if found == nil || newer(n, found) {
			found = n
		}
	}
	if found == nil {
		return nil, common.ErrorNotFound
	}
	return cloneNote(found), nil
}

func (r *MemoryRepository) DeleteIfOneTime(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[id]
	if !ok || !n.OneTime {
		return common.ErrorNotFound
	}
	delete(r.notes, id)
	return nil
}

func (r *MemoryRepository) MarkViewed(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	n.ViewCount++
	return n.ViewCount, nil
}

func (r *MemoryRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, n := range r.notes {
		if !n.ActiveAt(now) {
			delete(r.notes, id)
			removed++
		}
	}
	return removed, nil
}

func (r *MemoryRepository) ListActive(_ context.Context, now time.Time) ([]*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*models.Note
	for _, n := range r.notes {
		if n.ActiveAt(now) {
			result = append(result, cloneNote(n))
		}
	}
	sort.Slice(result, func(i, j int) bool { return newer(result[j], result[i]) })
	return result, nil
}

// newer orders by CreatedAt, breaking ties by id like the SQL backends.
func newer(a, b *models.Note) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func cloneNote(n *models.Note) *models.Note {
	c := *n
	c.EncryptedContent = bytes.Clone(n.EncryptedContent)
	c.IV = bytes.Clone(n.IV)
	c.Salt = bytes.Clone(n.Salt)
	c.PasswordHash = bytes.Clone(n.PasswordHash)
	c.LookupHash = bytes.Clone(n.LookupHash)
	if n.ExpiresAt != nil {
		t := *n.ExpiresAt
		c.ExpiresAt = &t
	}
	return &c
}
