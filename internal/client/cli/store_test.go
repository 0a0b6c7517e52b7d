package cli

import (
	"bytes"
	"context"
	"sync"

	"github.com/dmitrijs2005/sealnote/internal/common"
	"github.com/dmitrijs2005/sealnote/internal/notes"
)

// memStore is a minimal notes.Store for driving the commands.
type memStore struct {
	mu        sync.Mutex
	rows      map[string]*notes.Record
	deleteErr error
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[string]*notes.Record)}
}

func (m *memStore) Insert(_ context.Context, r *notes.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[r.ID]; ok {
		return common.ErrDuplicateID
	}
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}

func (m *memStore) FindByLookupHash(_ context.Context, h []byte) (*notes.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if bytes.Equal(r.LookupHash, h) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memStore) DeleteIfOneTime(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	r, ok := m.rows[id]
	if !ok || !r.OneTime {
		return common.ErrorNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memStore) MarkViewed(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	r.ViewCount++
	return r.ViewCount, nil
}
