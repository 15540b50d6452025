package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheGetSet(t *testing.T) {
	now := time.Date(2025, 11, 9, 12, 0, 0, 0, time.UTC)
	c := New(15*time.Minute, func() time.Time { return now })

	key := Key{Subject: "QB Alpha", Week: 10, Season: 2025, Strategy: "qb_td_props", ModelVersion: "baseline_v1"}

	_, found := c.Get(key)
	assert.False(t, found)

	c.Set(key, "because reasons")
	got, found := c.Get(key)
	assert.True(t, found)
	assert.Equal(t, "because reasons", got)
}

func TestCacheExpiresByInjectedClock(t *testing.T) {
	now := time.Date(2025, 11, 9, 12, 0, 0, 0, time.UTC)
	c := New(15*time.Minute, func() time.Time { return now })

	key := Key{Subject: "QB Alpha", Week: 10, Season: 2025}
	c.Set(key, "fresh")

	now = now.Add(14 * time.Minute)
	_, found := c.Get(key)
	assert.True(t, found)

	now = now.Add(2 * time.Minute)
	_, found = c.Get(key)
	assert.False(t, found)
}

func TestCacheStats(t *testing.T) {
	c := New(time.Minute, nil)
	key := Key{Subject: "QB Alpha"}

	c.Get(key)
	c.Set(key, "x")
	c.Get(key)

	hits, misses, ratio := c.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.InDelta(t, 0.5, ratio, 0.0001)
}

func TestCacheClear(t *testing.T) {
	c := New(time.Minute, nil)
	key := Key{Subject: "QB Alpha"}
	c.Set(key, "x")

	c.Clear()

	assert.Zero(t, c.ItemCount())
	_, found := c.Get(key)
	assert.False(t, found)
}
