package lifecycle

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownExpiration = errors.New("unknown expiration")

// Expiration is one of the preset lifetimes offered when storing a note.
type Expiration struct {
	Name  string
	Label string
	TTL   time.Duration // zero means never
}

var presets = []Expiration{
	{Name: "never", Label: "Never"},
	{Name: "1hour", Label: "1 Hour", TTL: time.Hour},
	{Name: "1day", Label: "1 Day", TTL: 24 * time.Hour},
	{Name: "1week", Label: "1 Week", TTL: 7 * 24 * time.Hour},
	{Name: "1month", Label: "1 Month", TTL: 30 * 24 * time.Hour},
}

// Presets lists the accepted expirations in display order.
func Presets() []Expiration {
	out := make([]Expiration, len(presets))
	copy(out, presets)
	return out
}

// ParseExpiration resolves a preset by name. An empty name means "never".
func ParseExpiration(name string) (Expiration, error) {
	if name == "" {
		return presets[0], nil
	}
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Expiration{}, fmt.Errorf("%w: %q", ErrUnknownExpiration, name)
}

// At returns the absolute expiry for a note created at now, or nil for never.
func (e Expiration) At(now time.Time) *time.Time {
	if e.TTL <= 0 {
		return nil
	}
	t := now.Add(e.TTL).UTC()
	return &t
}
