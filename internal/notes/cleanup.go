package notes

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/sealnote/internal/common"
	"github.com/dmitrijs2005/sealnote/internal/logging"
)

// CleanupQueue remembers one-time notes whose delete failed after their
// plaintext was released, and retries them on Flush.
type CleanupQueue struct {
	mu      sync.Mutex
	pending map[string]error
	store   Store
	logger  logging.Logger
}

func NewCleanupQueue(store Store, logger logging.Logger) *CleanupQueue {
	return &CleanupQueue{
		pending: make(map[string]error),
		store:   store,
		logger:  logger.With("module", "cleanup"),
	}
}

func (q *CleanupQueue) ReportFailedDelete(ctx context.Context, id string, err error) {
	q.mu.Lock()
	q.pending[id] = err
	q.mu.Unlock()
	q.logger.Warn(ctx, "one-time note queued for deletion", "note_id", id, "error", err)
}

// Pending returns the ids still waiting for deletion.
func (q *CleanupQueue) Pending() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	ids := make([]string, 0, len(q.pending))
	for id := range q.pending {
		ids = append(ids, id)
	}
	return ids
}

// Flush retries every pending delete once. A row that is already gone counts
// as deleted. The first remaining failure is returned; failed ids stay queued.
func (q *CleanupQueue) Flush(ctx context.Context) error {
	var firstErr error
	for _, id := range q.Pending() {
		err := q.store.DeleteIfOneTime(ctx, id)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			q.mu.Lock()
			q.pending[id] = err
			q.mu.Unlock()
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		q.mu.Lock()
		delete(q.pending, id)
		q.mu.Unlock()
		q.logger.Info(ctx, "queued one-time note deleted", "note_id", id)
	}
	return firstErr
}
