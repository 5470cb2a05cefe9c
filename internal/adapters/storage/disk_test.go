package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreRoundtrip(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key, err := store.Store(ctx, []byte("%PDF-1.4 content"), ".pdf")
	require.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(key))
	assert.True(t, store.Exists(ctx, key))

	data, err := store.Fetch(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 content"), data)

	assert.False(t, store.Exists(ctx, "missing.pdf"))
	_, err = store.Fetch(ctx, "missing.pdf")
	assert.Error(t, err)
}

func TestDiskStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	key, err := store.Store(context.Background(), []byte("x"), ".pdf")
	require.NoError(t, err)
	assert.True(t, store.Exists(context.Background(), key))
}
