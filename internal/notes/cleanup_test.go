package notes

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/sealnote/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupQueue_Flush(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	st.rows["a"] = &Record{ID: "a", OneTime: true}

	q := NewCleanupQueue(st, logging.Discard())
	q.ReportFailedDelete(ctx, "a", errors.New("network"))
	q.ReportFailedDelete(ctx, "gone", errors.New("network"))
	assert.ElementsMatch(t, []string{"a", "gone"}, q.Pending())

	require.NoError(t, q.Flush(ctx))
	assert.Empty(t, q.Pending())
	assert.Empty(t, st.rows)
}

func TestCleanupQueue_FlushKeepsFailures(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	st.deleteErr = errors.New("still down")

	q := NewCleanupQueue(st, logging.Discard())
	q.ReportFailedDelete(ctx, "a", errors.New("network"))

	err := q.Flush(ctx)
	assert.EqualError(t, err, "still down")
	assert.Equal(t, []string{"a"}, q.Pending())

	st.deleteErr = nil
	require.NoError(t, q.Flush(ctx))
	assert.Empty(t, q.Pending())
}

func TestService_WithCleanupQueue(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	q := NewCleanupQueue(st, logging.Discard())
	svc := newTestService(st, WithCleanupReporter(q))

	_, err := svc.Store(ctx, StoreInput{Text: "x", Password: "abc", OneTime: true})
	require.NoError(t, err)

	st.deleteErr = errors.New("down")
	_, err = svc.Retrieve(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, q.Pending(), 1)

	st.deleteErr = nil
	require.NoError(t, q.Flush(ctx))
	assert.Empty(t, st.rows)
}
