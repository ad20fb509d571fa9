package datastore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValueGetMissing(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get("absent")
			require.Error(t, err)
			assert.True(t, IsNotFound(err))
		})
	}
}

func TestKeyValueSetAndOverwrite(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set("ws:dark-mode", "true"))
			got, err := store.Get("ws:dark-mode")
			require.NoError(t, err)
			assert.Equal(t, "true", got)

			require.NoError(t, store.Set("ws:dark-mode", "false"))
			got, err = store.Get("ws:dark-mode")
			require.NoError(t, err)
			assert.Equal(t, "false", got)
		})
	}
}

func TestKeyValueDelete(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set("k", `["#ffffff"]`))
			require.NoError(t, store.Delete("k"))

			_, err := store.Get("k")
			assert.True(t, IsNotFound(err))

			assert.NoError(t, store.Delete("never-set"))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NoRowsError{NoRows: true}))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", NoRowsError{NoRows: true})))
	assert.False(t, IsNotFound(NoRowsError{NoRows: false}))
	assert.False(t, IsNotFound(errors.New("boom")))
	assert.False(t, IsNotFound(nil))
}

func TestMemoryStoreZeroValue(t *testing.T) {
	var store MemoryStore
	require.NoError(t, store.Set("a", "1"))
	got, err := store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}
