package filecache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	cache, err := New(t.TempDir())
	require.NoError(t, err)

	value := map[string]string{"symbol": "sh600000"}
	require.NoError(t, cache.Set("prices_sh600000", value, time.Hour))

	var got map[string]string
	hit, err := cache.Get("prices_sh600000", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, value, got)
}

func TestCache_Miss(t *testing.T) {
	cache, err := New(t.TempDir())
	require.NoError(t, err)

	var got map[string]string
	hit, err := cache.Get("never_set", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCache_ExpiredEntryRemoved(t *testing.T) {
	dir := t.TempDir()
	cache, err := New(dir)
	require.NoError(t, err)

	now := time.Now()
	cache.now = func() time.Time { return now }
	require.NoError(t, cache.Set("stale", "v", time.Minute))

	cache.now = func() time.Time { return now.Add(2 * time.Minute) }

	var got string
	hit, err := cache.Get("stale", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	_, err = os.Stat(filepath.Join(dir, "stale.json"))
	assert.True(t, os.IsNotExist(err), "expired entry deleted on read")
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	cache, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))

	var got string
	hit, err := cache.Get("bad", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}
