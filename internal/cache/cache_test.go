package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := New(true)

	etag := c.Set("k", []byte("v"), time.Minute)
	assert.NotEmpty(t, etag)

	data, gotETag, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), data)
	assert.Equal(t, etag, gotETag)
}

func TestGetMissing(t *testing.T) {
	c := New(true)
	_, _, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c := New(true)
	c.Set("k", []byte("v"), -time.Second)
	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestDisabled(t *testing.T) {
	c := New(false)

	// Set still returns a usable ETag, but nothing is stored.
	etag := c.Set("k", []byte("v"), time.Minute)
	assert.Equal(t, ComputeETag([]byte("v")), etag)
	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	c := New(true)
	c.Set("live", []byte("1"), time.Minute)
	c.Set("dead", []byte("2"), -time.Second)

	stats := c.Stats()
	assert.Equal(t, true, stats["enabled"])
	assert.Equal(t, 2, stats["total_keys"])
	assert.Equal(t, 1, stats["active_keys"])
	assert.Equal(t, 1, stats["expired_keys"])
}

func TestComputeETag(t *testing.T) {
	a := ComputeETag([]byte("payload"))
	assert.Equal(t, a, ComputeETag([]byte("payload")))
	assert.NotEqual(t, a, ComputeETag([]byte("other")))
	assert.Contains(t, a, `W/"`)
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("x"))
	assert.True(t, CheckETagMatch(etag, etag))
	assert.True(t, CheckETagMatch("*", etag))
	assert.False(t, CheckETagMatch("", etag))
	assert.False(t, CheckETagMatch(`W/"other"`, etag))
}
