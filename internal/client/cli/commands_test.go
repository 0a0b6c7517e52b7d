package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/sealnote/internal/common"
	"github.com/dmitrijs2005/sealnote/internal/cryptox"
	"github.com/dmitrijs2005/sealnote/internal/lifecycle"
	"github.com/dmitrijs2005/sealnote/internal/logging"
	"github.com/dmitrijs2005/sealnote/internal/notes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, st *memStore, input string) (*App, *bytes.Buffer) {
	t.Helper()
	stubTerminal(t, false, nil, nil)

	var out bytes.Buffer
	a := newApp(st, cryptox.NewSuite(cryptox.WithIterations(1000)), logging.Discard(), strings.NewReader(input), &out)
	return a, &out
}

func onlyRecord(t *testing.T, st *memStore) notes.Record {
	t.Helper()
	require.Len(t, st.rows, 1)
	var rec notes.Record
	for _, r := range st.rows {
		rec = *r
	}
	return rec
}

func TestApp_Store(t *testing.T) {
	st := newMemStore()
	a, out := newTestApp(t, st, "line one\nline two\n\nhunter2\n1hour\ny\n")

	before := time.Now()
	require.NoError(t, a.Store(context.Background()))
	after := time.Now()

	rec := onlyRecord(t, st)
	assert.Contains(t, out.String(), "Note stored: "+rec.ID)
	assert.True(t, rec.OneTime)
	require.NotNil(t, rec.ExpiresAt)
	assert.WithinRange(t, *rec.ExpiresAt, before.Add(time.Hour).Add(-time.Second), after.Add(time.Hour))
}

func TestApp_StoreDefaultsToNeverAndKeep(t *testing.T) {
	st := newMemStore()
	a, _ := newTestApp(t, st, "text\n\nhunter2\n\n\n")

	require.NoError(t, a.Store(context.Background()))

	rec := onlyRecord(t, st)
	assert.False(t, rec.OneTime)
	assert.Nil(t, rec.ExpiresAt)
}

func TestApp_StoreUnknownExpiration(t *testing.T) {
	st := newMemStore()
	a, out := newTestApp(t, st, "text\n\nhunter2\nfortnight\n")

	err := a.Store(context.Background())
	assert.ErrorIs(t, err, lifecycle.ErrUnknownExpiration)
	assert.Contains(t, out.String(), "Unknown expiration")
	assert.Empty(t, st.rows)
}

func TestApp_StoreValidationMessage(t *testing.T) {
	st := newMemStore()
	a, out := newTestApp(t, st, "text\n\nab\n\nn\n")

	err := a.Store(context.Background())
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.Contains(t, out.String(), "password must be at least 3 characters long")
	assert.Empty(t, st.rows)
}

func TestApp_RetrieveShowsNoteAndViews(t *testing.T) {
	st := newMemStore()
	a, out := newTestApp(t, st, "secret text\n\nhunter2\n1day\nn\nhunter2\n")
	ctx := context.Background()

	require.NoError(t, a.Store(ctx))
	out.Reset()

	require.NoError(t, a.Retrieve(ctx))
	s := out.String()
	assert.Contains(t, s, "secret text")
	assert.Contains(t, s, "Views: 1")
	assert.Contains(t, s, "Expires: ")
}

func TestApp_RetrieveOneTime(t *testing.T) {
	st := newMemStore()
	a, out := newTestApp(t, st, "burn me\n\npw-burn\n\ny\npw-burn\npw-burn\n")
	ctx := context.Background()

	require.NoError(t, a.Store(ctx))
	out.Reset()

	require.NoError(t, a.Retrieve(ctx))
	assert.Contains(t, out.String(), "burn me")
	assert.Contains(t, out.String(), "cannot be read again")
	assert.Empty(t, st.rows)

	out.Reset()
	err := a.Retrieve(ctx)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, out.String(), common.PublicRetrieveFailure)
}

func TestApp_RetrieveUnknownPassword(t *testing.T) {
	a, out := newTestApp(t, newMemStore(), "nobody\n")

	err := a.Retrieve(context.Background())
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, out.String(), common.PublicRetrieveFailure)
}

func TestApp_FlushRetriesFailedDelete(t *testing.T) {
	st := newMemStore()
	a, _ := newTestApp(t, st, "burn me\n\npw-burn\n\ny\npw-burn\n")
	ctx := context.Background()

	require.NoError(t, a.Store(ctx))

	st.deleteErr = errors.New("network")
	require.NoError(t, a.Retrieve(ctx), "plaintext is still released")
	assert.Len(t, a.cleanup.Pending(), 1)

	assert.Error(t, a.Flush(ctx))
	st.deleteErr = nil
	require.NoError(t, a.Flush(ctx))
	assert.Empty(t, a.cleanup.Pending())
	assert.Empty(t, st.rows)
}

func TestApp_Expirations(t *testing.T) {
	a, out := newTestApp(t, newMemStore(), "")

	require.NoError(t, a.Expirations(context.Background()))
	for _, p := range lifecycle.Presets() {
		assert.Contains(t, out.String(), p.Name)
		assert.Contains(t, out.String(), p.Label)
	}
}
