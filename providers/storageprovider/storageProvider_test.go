package storageprovider

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStorageRoundTrip(t *testing.T) {
	store := NewSessionStorageProvider(filepath.Join(t.TempDir(), "session.db"))
	defer store.Close()

	value, err := store.Get("basicAuthToken")
	assert.NoError(t, err)
	assert.Empty(t, value, "absent key reads as empty string")

	assert.NoError(t, store.Set("basicAuthToken", "YWRtaW46c2VjcmV0"))
	assert.NoError(t, store.Set("authUsername", "admin"))

	value, err = store.Get("basicAuthToken")
	assert.NoError(t, err)
	assert.Equal(t, "YWRtaW46c2VjcmV0", value)

	// Overwrite keeps a single row per key.
	assert.NoError(t, store.Set("authUsername", "other"))
	value, err = store.Get("authUsername")
	assert.NoError(t, err)
	assert.Equal(t, "other", value)
}

func TestSessionStorageDelete(t *testing.T) {
	store := NewSessionStorageProvider(filepath.Join(t.TempDir(), "session.db"))
	defer store.Close()

	assert.NoError(t, store.Set("basicAuthToken", "tok"))
	assert.NoError(t, store.Set("authUsername", "admin"))
	assert.NoError(t, store.Set("authExpiry", "123"))

	assert.NoError(t, store.Delete("basicAuthToken", "authUsername", "authExpiry"))

	for _, key := range []string{"basicAuthToken", "authUsername", "authExpiry"} {
		value, err := store.Get(key)
		assert.NoError(t, err)
		assert.Empty(t, value)
	}

	// Deleting absent keys is not an error.
	assert.NoError(t, store.Delete("basicAuthToken"))
	assert.NoError(t, store.Delete())
}

func TestSessionStoragePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store := NewSessionStorageProvider(path)
	assert.NoError(t, store.Set("authUsername", "admin"))
	assert.NoError(t, store.Close())

	reopened := NewSessionStorageProvider(path)
	defer reopened.Close()

	value, err := reopened.Get("authUsername")
	assert.NoError(t, err)
	assert.Equal(t, "admin", value)
}
