package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache_SetGet(t *testing.T) {
	m := NewMemoryCache()
	m.Set("k", []byte(`"v"`), time.Minute)

	data, ok := m.Get("k")
	assert.True(t, ok)
	assert.Equal(t, `"v"`, string(data))

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestMemoryCache_ZeroTTLIsNotStored(t *testing.T) {
	m := NewMemoryCache()
	m.Set("k", []byte("1"), 0)

	assert.Equal(t, 0, m.Len())
}

func TestMemoryCache_Expiry(t *testing.T) {
	now := time.Now()
	m := NewMemoryCache()
	m.now = func() time.Time { return now }

	m.Set("short", []byte("1"), time.Second)
	m.Set("long", []byte("2"), time.Hour)

	now = now.Add(time.Minute)

	_, ok := m.Get("short")
	assert.False(t, ok, "expired entry should not be returned")
	assert.Equal(t, 1, m.Len(), "expired entry should be dropped on read")

	m.Set("short", []byte("1"), time.Second)
	now = now.Add(time.Minute)
	assert.Equal(t, 1, m.Purge())

	_, ok = m.Get("long")
	assert.True(t, ok)
}

func TestMemoryCache_DeleteAndPattern(t *testing.T) {
	m := NewMemoryCache()
	for _, key := range []string{"tasks:all", "tasks:1", "users:all"} {
		m.Set(key, []byte("x"), time.Minute)
	}

	m.DeletePattern("tasks:*")
	assert.Equal(t, 1, m.Len())

	m.Delete("users:all", "nope")
	assert.Equal(t, 0, m.Len())
}
