package kv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryRoundTrip(t *testing.T) {
	repo, err := NewRepository(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	_, ok, err := repo.Get("records")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set("records", "[]"))
	require.NoError(t, repo.Set("records", `[{"date":"2024-01-01"}]`))

	v, ok, err := repo.Get("records")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"date":"2024-01-01"}]`, v)

	keys, err := repo.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"records"}, keys)

	require.NoError(t, repo.Delete("records"))
	_, ok, err = repo.Get("records")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepositoryPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "shiftlog.db")

	repo, err := NewRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.Set("settings", `{"hourlyRate":10}`))
	require.NoError(t, repo.Close())

	repo, err = NewRepository(path)
	require.NoError(t, err)
	defer repo.Close()

	v, ok, err := repo.Get("settings")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"hourlyRate":10}`, v)
}
