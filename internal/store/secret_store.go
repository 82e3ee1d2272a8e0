package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"lanchat/internal/domain"
)

const secretFilename = "secret.json.enc"

// ErrNoSecret is returned by LoadSecret when no keystore file exists.
var ErrNoSecret = errors.New("no stored secret")

// SecretFileStore persists the shared group secret to disk.
type SecretFileStore struct {
	dir string
	kdf kdfParams
	mu  sync.Mutex
}

// NewSecretFileStore returns a SecretFileStore rooted at dir.
func NewSecretFileStore(dir string) *SecretFileStore {
	return &SecretFileStore{dir: dir, kdf: defaultKDFParams()}
}

// Path returns the keystore file location.
func (s *SecretFileStore) Path() string {
	return filepath.Join(s.dir, secretFilename)
}

// SaveSecret seals secret with passphrase and writes it to disk, replacing any
// previous secret.
func (s *SecretFileStore) SaveSecret(passphrase string, secret []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ct, err := seal(passphrase, secret, s.kdf)
	if err != nil {
		return err
	}
	return writeFile(s.Path(), ct, 0o600)
}

// LoadSecret reads and unseals the stored secret.
func (s *SecretFileStore) LoadSecret(passphrase string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.Path())
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNoSecret
	}
	return open(passphrase, b)
}

// HasSecret reports whether a keystore file exists.
func (s *SecretFileStore) HasSecret() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := os.Stat(s.Path())
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Compile-time assertion that SecretFileStore implements domain.SecretStore.
var _ domain.SecretStore = (*SecretFileStore)(nil)
