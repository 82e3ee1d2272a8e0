package secret_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lanchat/internal/crypto"
	"lanchat/internal/services/secret"
)

const strongPass = "Correct-Horse-9"

// memStore is an in-memory domain.SecretStore.
type memStore struct {
	pass   string
	secret []byte
	err    error
}

func (m *memStore) SaveSecret(passphrase string, s []byte) error {
	if m.err != nil {
		return m.err
	}
	m.pass, m.secret = passphrase, append([]byte(nil), s...)
	return nil
}

func (m *memStore) LoadSecret(passphrase string) ([]byte, error) {
	if passphrase != m.pass {
		return nil, errors.New("wrong passphrase")
	}
	return m.secret, nil
}

func (m *memStore) HasSecret() (bool, error) { return m.secret != nil, nil }

func TestGenerateSecret(t *testing.T) {
	st := new(memStore)
	svc := secret.New(st)

	s, fp, err := svc.GenerateSecret(strongPass, secret.DefaultSize)
	require.NoError(t, err)
	assert.Len(t, s, secret.DefaultSize)
	assert.Equal(t, s, st.secret)
	assert.Equal(t, crypto.Fingerprint(s), fp.String())

	loaded, err := svc.LoadSecret(strongPass)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestGenerateSecret_WeakPassphrase(t *testing.T) {
	svc := secret.New(new(memStore))
	for _, p := range []string{"", "short1!A", "alllowercase123!", "NoDigitsHere!!", "NoSymbols12345"} {
		_, _, err := svc.GenerateSecret(p, 16)
		assert.ErrorIs(t, err, secret.ErrWeakPassphrase, p)
	}
}

func TestGenerateSecret_BadSize(t *testing.T) {
	svc := secret.New(new(memStore))
	for _, n := range []int{0, -1, 257} {
		_, _, err := svc.GenerateSecret(strongPass, n)
		assert.ErrorIs(t, err, secret.ErrBadSize, n)
	}
}

func TestImportSecret(t *testing.T) {
	st := new(memStore)
	svc := secret.New(st)

	fp, err := svc.ImportSecret(strongPass, []byte("secret"))
	require.NoError(t, err)
	assert.Equal(t, svc.FingerprintSecret([]byte("secret")), fp)
	assert.Equal(t, []byte("secret"), st.secret)

	_, err = svc.ImportSecret(strongPass, nil)
	assert.ErrorIs(t, err, crypto.ErrEmptySecret)
}

func TestImportSecret_StoreError(t *testing.T) {
	boom := errors.New("disk full")
	svc := secret.New(&memStore{err: boom})
	_, err := svc.ImportSecret(strongPass, []byte("secret"))
	assert.ErrorIs(t, err, boom)
}
