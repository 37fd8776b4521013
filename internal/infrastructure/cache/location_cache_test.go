package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metekarasubasi/notiva/internal/domain"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

func TestLocationCache_RoundTrip(t *testing.T) {
	clock := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLocationCache(filepath.Join(t.TempDir(), "geo"), time.Hour, 10, clock)

	_, ok := c.Get("izmir")
	assert.False(t, ok)

	want := domain.Coordinates{Lat: 38.42, Lon: 27.13}
	require.NoError(t, c.Set("İzmir ", want))

	got, ok := c.Get("izmir")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestLocationCache_Expiry(t *testing.T) {
	clock := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLocationCache(t.TempDir(), time.Hour, 10, clock)
	require.NoError(t, c.Set("ankara", domain.Coordinates{Lat: 39.9, Lon: 32.8}))

	clock.now = clock.now.Add(59 * time.Minute)
	_, ok := c.Get("ankara")
	assert.True(t, ok)

	clock.now = clock.now.Add(2 * time.Minute)
	_, ok = c.Get("ankara")
	assert.False(t, ok)

	entries, err := c.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries, "expired entry is removed on read")
}

func TestLocationCache_EvictsOldest(t *testing.T) {
	clock := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLocationCache(t.TempDir(), 0, 2, clock)

	for _, city := range []string{"bursa", "konya", "adana"} {
		require.NoError(t, c.Set(city, domain.Coordinates{Lat: 1, Lon: 1}))
		clock.now = clock.now.Add(time.Minute)
	}

	_, ok := c.Get("bursa")
	assert.False(t, ok)
	_, ok = c.Get("konya")
	assert.True(t, ok)
	_, ok = c.Get("adana")
	assert.True(t, ok)
}

func TestLocationCache_ClearAndCorruptEntries(t *testing.T) {
	dir := t.TempDir()
	c := NewLocationCache(dir, 0, 0, nil)
	require.NoError(t, c.Set("mersin", domain.Coordinates{Lat: 36.8, Lon: 34.6}))

	require.NoError(t, os.WriteFile(c.pathFor("mersin"), []byte("{broken"), 0o644))
	_, ok := c.Get("mersin")
	assert.False(t, ok)

	require.NoError(t, c.Clear())
	entries, err := c.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, dir, c.Dir())
}
