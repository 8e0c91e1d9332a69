package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backendContract exercises the behavior every backend must share.
func backendContract(t *testing.T, b Backend) {
	t.Helper()

	_, ok, err := b.Load("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Save(CheckupsKey, []byte(`[{"id":"1"}]`)))
	data, ok, err := b.Load(CheckupsKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, string(data))

	// A save is a full overwrite
	require.NoError(t, b.Save(CheckupsKey, []byte(`[]`)))
	data, ok, err = b.Load(CheckupsKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(data))

	// Keys are independent
	require.NoError(t, b.Save(RemindersKey, []byte(`[{"id":"r1"}]`)))
	data, _, err = b.Load(CheckupsKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestMemoryBackend(t *testing.T) {
	b := NewMemoryBackend()
	backendContract(t, b)
	assert.NoError(t, b.Close())
}

func TestFileBackend(t *testing.T) {
	dir := t.TempDir()

	b, err := NewFileBackend(dir)
	require.NoError(t, err)
	backendContract(t, b)
	require.NoError(t, b.Close())

	t.Run("survives reopen", func(t *testing.T) {
		reopened, err := NewFileBackend(dir)
		require.NoError(t, err)
		data, ok, err := reopened.Load(RemindersKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":"r1"}]`, string(data))
	})

	t.Run("creates nested data dir", func(t *testing.T) {
		_, err := NewFileBackend(filepath.Join(dir, "a", "b"))
		assert.NoError(t, err)
	})
}

func TestSQLiteBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.db")

	b, err := NewSQLiteBackend(path)
	require.NoError(t, err)
	backendContract(t, b)
	require.NoError(t, b.Close())

	reopened, err := NewSQLiteBackend(path)
	require.NoError(t, err)
	defer reopened.Close()

	data, ok, err := reopened.Load(RemindersKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"r1"}]`, string(data))
}
