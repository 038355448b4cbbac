package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore(nil)
	require.NotNil(t, store)
	assert.Empty(t, store.Keys())
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStore_CopiesSeed(t *testing.T) {
	seed := map[string]any{"search.cap": 5}
	store := NewConfigStore(seed)

	seed["search.cap"] = 9
	assert.Equal(t, 5, store.GetInt("search.cap"))
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore(nil)

	require.NoError(t, store.Set("download.dir", "/srv/books"))
	require.NoError(t, store.Set("download.dir", "/tmp/books"))

	val, ok := store.Get("download.dir")
	assert.True(t, ok)
	assert.Equal(t, "/tmp/books", val)

	_, ok = store.Get("download.missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"search.cap":                 int64(7),
		"search.repo_fallback":       true,
		"github.requests_per_second": 1.5,
		"search.repositories":        []any{"a/b", 3, "c/d"},
		"github.token":               "tok",
	})

	assert.Equal(t, 7, store.GetInt("search.cap"))
	assert.InDelta(t, 7.0, store.GetFloat("search.cap"), 0.0001)
	assert.True(t, store.GetBool("search.repo_fallback"))
	assert.InDelta(t, 1.5, store.GetFloat("github.requests_per_second"), 0.0001)
	assert.Equal(t, 1, store.GetInt("github.requests_per_second"))
	assert.Equal(t, []string{"a/b", "c/d"}, store.GetStringSlice("search.repositories"))
	assert.Equal(t, "tok", store.GetString("github.token"))

	t.Run("wrong types yield zero values", func(t *testing.T) {
		assert.Equal(t, "", store.GetString("search.cap"))
		assert.Equal(t, 0, store.GetInt("github.token"))
		assert.Zero(t, store.GetFloat("github.token"))
		assert.False(t, store.GetBool("github.token"))
		assert.Nil(t, store.GetStringSlice("github.token"))
	})
}

func TestConfigStore_Keys(t *testing.T) {
	store := NewConfigStore(map[string]any{"session.max_rounds": 3})
	require.NoError(t, store.Set("github.token", "x"))
	require.NoError(t, store.Set("search.cap", 1))

	assert.Equal(t, []string{"github.token", "search.cap", "session.max_rounds"}, store.Keys())
}

func TestConfigStore_LoadRestoresSeed(t *testing.T) {
	store := NewConfigStore(map[string]any{"search.cap": 5})
	require.NoError(t, store.Set("search.cap", 10))
	require.NoError(t, store.Set("github.token", "x"))

	require.NoError(t, store.Load())

	assert.Equal(t, 5, store.GetInt("search.cap"))
	assert.Equal(t, []string{"search.cap"}, store.Keys())
}

func TestConfigStore_InvalidKey(t *testing.T) {
	store := NewConfigStore(nil)

	for _, key := range []string{"", "  ", ".cap", "search."} {
		assert.Error(t, store.Set(key, 1), "key %q", key)
	}
	assert.Empty(t, store.Keys())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore(nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("session.max_rounds", n)
			_ = store.GetInt("session.max_rounds")
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("session.max_rounds")
	assert.True(t, ok)
}
