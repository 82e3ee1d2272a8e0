// internal/store/secret_store_test.go
package store_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lanchat/internal/domain"
	"lanchat/internal/store"
)

func newStore(t *testing.T) *store.SecretFileStore {
	t.Helper()
	s := store.NewSecretFileStore(t.TempDir())
	s.UseFastKDF()
	return s
}

func TestSecret_SaveLoad_OK(t *testing.T) {
	s := newStore(t)
	var secrets domain.SecretStore = s

	ok, err := secrets.HasSecret()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, secrets.SaveSecret("pass", []byte("secret")))

	ok, err = secrets.HasSecret()
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := secrets.LoadSecret("pass")
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), got)

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSecret_WrongPassphrase_Fails(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SaveSecret("correct", []byte("secret")))

	_, err := s.LoadSecret("wrong")
	assert.ErrorIs(t, err, store.ErrWrongPassphrase)
}

func TestSecret_Missing(t *testing.T) {
	s := newStore(t)
	_, err := s.LoadSecret("pass")
	assert.ErrorIs(t, err, store.ErrNoSecret)
}

func TestSecret_Overwrite(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SaveSecret("pass", []byte("first")))
	require.NoError(t, s.SaveSecret("pass", []byte("second")))

	got, err := s.LoadSecret("pass")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestSecret_Tampered_Fails(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SaveSecret("pass", []byte("secret")))

	b, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	var sealed map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &sealed))
	var ct []byte
	require.NoError(t, json.Unmarshal(sealed["cipher"], &ct))
	ct[0] ^= 0x01
	sealed["cipher"], err = json.Marshal(ct)
	require.NoError(t, err)
	b, err = json.Marshal(sealed)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.Path(), b, 0o600))

	_, err = s.LoadSecret("pass")
	assert.ErrorIs(t, err, store.ErrWrongPassphrase)
}
