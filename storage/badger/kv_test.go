package badger

import (
	"context"
	"testing"

	"github.com/poiesic/searchlight/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKV(t *testing.T) {
	kv, err := NewMemoryKV()
	require.NoError(t, err)
	defer kv.Close()

	ctx := context.Background()

	t.Run("get absent key", func(t *testing.T) {
		value, found, err := kv.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, value)
	})

	t.Run("put and get", func(t *testing.T) {
		require.NoError(t, kv.Put(ctx, storage.KeyIndex, []byte("payload")))

		value, found, err := kv.Get(ctx, storage.KeyIndex)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte("payload"), value)
	})

	t.Run("put replaces previous value", func(t *testing.T) {
		require.NoError(t, kv.Put(ctx, "k", []byte("one")))
		require.NoError(t, kv.Put(ctx, "k", []byte("two")))

		value, found, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte("two"), value)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, kv.Put(ctx, "gone", []byte("x")))
		require.NoError(t, kv.Remove(ctx, "gone"))

		_, found, err := kv.Get(ctx, "gone")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("remove absent key is a no-op", func(t *testing.T) {
		assert.NoError(t, kv.Remove(ctx, "never-existed"))
	})
}

func TestKVClosed(t *testing.T) {
	kv, err := NewMemoryKV()
	require.NoError(t, err)
	require.NoError(t, kv.Close())

	ctx := context.Background()
	_, _, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, kv.Put(ctx, "k", nil), storage.ErrStorageClosed)
	assert.ErrorIs(t, kv.Remove(ctx, "k"), storage.ErrStorageClosed)
}
