package notes

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/sealnote/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContract exercises the behaviour every backend must share.
func runContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	ctx := context.Background()

	t.Run("insert and find", func(t *testing.T) {
		repo := newRepo(t)
		n := sampleNote("n1", "pw", baseTime, at(time.Hour), false)
		require.NoError(t, repo.Insert(ctx, n))

		got, err := repo.FindByLookupHash(ctx, lookup("pw"), baseTime)
		require.NoError(t, err)
		assert.Equal(t, n.ID, got.ID)
		assert.Equal(t, n.EncryptedContent, got.EncryptedContent)
		assert.Equal(t, n.IV, got.IV)
		assert.Equal(t, n.Salt, got.Salt)
		assert.Equal(t, n.PasswordHash, got.PasswordHash)
		require.NotNil(t, got.ExpiresAt)
		assert.True(t, n.ExpiresAt.Equal(*got.ExpiresAt))
		assert.True(t, baseTime.Equal(got.CreatedAt))

		_, err = repo.FindByLookupHash(ctx, lookup("other"), baseTime)
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("duplicate id", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, sampleNote("dup", "a", baseTime, nil, false)))
		assert.ErrorIs(t, repo.Insert(ctx, sampleNote("dup", "b", baseTime, nil, false)), common.ErrDuplicateID)
	})

	t.Run("expiry boundary", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, sampleNote("n1", "pw", baseTime, at(time.Hour), false)))

		_, err := repo.FindByLookupHash(ctx, lookup("pw"), baseTime.Add(time.Hour-time.Second))
		require.NoError(t, err)
		_, err = repo.FindByLookupHash(ctx, lookup("pw"), baseTime.Add(time.Hour))
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("newest active row wins", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, sampleNote("old", "pw", baseTime, nil, false)))
		require.NoError(t, repo.Insert(ctx, sampleNote("new", "pw", baseTime.Add(time.Minute), nil, false)))
		require.NoError(t, repo.Insert(ctx, sampleNote("newest-expired", "pw", baseTime.Add(2*time.Minute), at(5*time.Minute), false)))

		got, err := repo.FindByLookupHash(ctx, lookup("pw"), baseTime.Add(10*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, "new", got.ID)
	})

	t.Run("same created_at breaks ties by id", func(t *testing.T) {
		repo := newRepo(t)
		for _, id := range []string{"b", "d", "a", "c"} {
			require.NoError(t, repo.Insert(ctx, sampleNote(id, "pw", baseTime, nil, false)))
		}

		for range 5 {
			got, err := repo.FindByLookupHash(ctx, lookup("pw"), baseTime)
			require.NoError(t, err)
			assert.Equal(t, "d", got.ID)
		}

		active, err := repo.ListActive(ctx, baseTime)
		require.NoError(t, err)
		ids := make([]string, 0, len(active))
		for _, n := range active {
			ids = append(ids, n.ID)
		}
		assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
	})

	t.Run("delete if one-time", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, sampleNote("once", "a", baseTime, nil, true)))
		require.NoError(t, repo.Insert(ctx, sampleNote("many", "b", baseTime, nil, false)))

		require.NoError(t, repo.DeleteIfOneTime(ctx, "once"))
		assert.ErrorIs(t, repo.DeleteIfOneTime(ctx, "once"), common.ErrorNotFound)
		assert.ErrorIs(t, repo.DeleteIfOneTime(ctx, "many"), common.ErrorNotFound)
		assert.ErrorIs(t, repo.DeleteIfOneTime(ctx, "missing"), common.ErrorNotFound)

		_, err := repo.FindByLookupHash(ctx, lookup("a"), baseTime)
		assert.ErrorIs(t, err, common.ErrorNotFound)
		_, err = repo.FindByLookupHash(ctx, lookup("b"), baseTime)
		assert.NoError(t, err)
	})

	t.Run("concurrent delete has one winner", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, sampleNote("race", "a", baseTime, nil, true)))

		var wins atomic.Int32
		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if repo.DeleteIfOneTime(ctx, "race") == nil {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load())
	})

	t.Run("mark viewed", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, sampleNote("n1", "a", baseTime, nil, false)))

		n, err := repo.MarkViewed(ctx, "n1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		n, err = repo.MarkViewed(ctx, "n1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		got, err := repo.FindByLookupHash(ctx, lookup("a"), baseTime)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.ViewCount)

		_, err = repo.MarkViewed(ctx, "missing")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("delete expired and list active", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, sampleNote("forever", "a", baseTime, nil, false)))
		require.NoError(t, repo.Insert(ctx, sampleNote("short", "b", baseTime.Add(time.Second), at(time.Minute), false)))
		require.NoError(t, repo.Insert(ctx, sampleNote("long", "c", baseTime.Add(2*time.Second), at(time.Hour), true)))

		now := baseTime.Add(time.Minute)
		active, err := repo.ListActive(ctx, now)
		require.NoError(t, err)
		require.Len(t, active, 2)
		assert.Equal(t, "forever", active[0].ID)
		assert.Equal(t, "long", active[1].ID)

		removed, err := repo.DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		removed, err = repo.DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(0), removed)
	})
}

func TestMemoryRepository(t *testing.T) {
	runContract(t, func(*testing.T) Repository { return NewMemoryRepository() })
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	n := sampleNote("n1", "a", baseTime, at(time.Hour), false)
	require.NoError(t, repo.Insert(ctx, n))
	n.EncryptedContent[0] = 'X'

	got, err := repo.FindByLookupHash(ctx, lookup("a"), baseTime)
	require.NoError(t, err)
	assert.Equal(t, byte('c'), got.EncryptedContent[0])

	*got.ExpiresAt = baseTime
	again, err := repo.FindByLookupHash(ctx, lookup("a"), baseTime)
	require.NoError(t, err)
	assert.True(t, again.ExpiresAt.Equal(baseTime.Add(time.Hour)))
}
