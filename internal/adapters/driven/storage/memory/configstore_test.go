package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("providers.newsapi.api_key", "secret"))
	require.NoError(t, store.Set("ingestion.concurrency", int64(2)))

	val, ok := store.Get("providers.newsapi.api_key")
	assert.True(t, ok)
	assert.Equal(t, "secret", val)
	assert.Equal(t, "2", store.GetString("ingestion.concurrency"))
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store := NewConfigStore()

	val, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_Set_EmptyKey(t *testing.T) {
	store := NewConfigStore()

	err := store.Set("", "value")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.Keys())
}

func TestConfigStore_Keys_Sorted(t *testing.T) {
	store := NewConfigStore()
	for _, k := range []string{"storage", "providers.guardian.enabled", "data_dir"} {
		require.NoError(t, store.Set(k, true))
	}

	assert.Equal(t, []string{"data_dir", "providers.guardian.enabled", "storage"}, store.Keys())
}

func TestConfigStore_SaveAndPath(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key.%d", n)
			_ = store.Set(key, n)
			_, _ = store.Get(key)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 50)
}
