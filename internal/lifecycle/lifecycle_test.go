package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Second)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      State
	}{
		{"never expires", nil, Active},
		{"in the future", &future, Active},
		{"in the past", &past, Expired},
		{"exactly now", &now, Expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.expiresAt, now))
		})
	}
}

func TestAfterRead(t *testing.T) {
	st, act := AfterRead(true)
	assert.Equal(t, Consumed, st)
	assert.Equal(t, ActionDelete, act)

	st, act = AfterRead(false)
	assert.Equal(t, Active, st)
	assert.Equal(t, ActionMarkViewed, act)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "active", Active.String())
	assert.Equal(t, "consumed", Consumed.String())
	assert.Equal(t, "expired", Expired.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestParseExpiration(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		want *time.Time
	}{
		{"never", nil},
		{"", nil},
		{"1hour", ptr(now.Add(time.Hour))},
		{"1day", ptr(now.Add(24 * time.Hour))},
		{"1week", ptr(now.Add(7 * 24 * time.Hour))},
		{"1month", ptr(now.Add(30 * 24 * time.Hour))},
	}
	for _, tt := range tests {
		t.Run("preset "+tt.name, func(t *testing.T) {
			e, err := ParseExpiration(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.At(now))
		})
	}

	_, err := ParseExpiration("2years")
	assert.ErrorIs(t, err, ErrUnknownExpiration)
}

func TestPresets_ReturnsCopy(t *testing.T) {
	p := Presets()
	require.Len(t, p, 5)
	assert.Equal(t, "never", p[0].Name)

	p[0].Name = "mutated"
	assert.Equal(t, "never", Presets()[0].Name)
}

func ptr(t time.Time) *time.Time { return &t }
