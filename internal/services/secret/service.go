package secret

import (
	"crypto/rand"
	"errors"
	"fmt"
	"unicode"

	"lanchat/internal/crypto"
	"lanchat/internal/domain"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12

	// DefaultSize is the number of random bytes in a generated secret.
	DefaultSize = 32

	// maxSize is the longest secret worth storing; key scheduling ignores
	// bytes past 256.
	maxSize = 256
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)

	// ErrBadSize is returned for secret sizes outside 1..256 bytes.
	ErrBadSize = errors.New("secret size must be between 1 and 256 bytes")
)

// Service manages the shared secret using a backing store.
type Service struct {
	store domain.SecretStore
}

// New returns a secret service backed by the given store.
func New(s domain.SecretStore) *Service { return &Service{store: s} }

// GenerateSecret creates size random bytes, saves them encrypted with the
// passphrase, and returns the secret plus its fingerprint.
func (s *Service) GenerateSecret(passphrase string, size int) ([]byte, domain.Fingerprint, error) {
	if size <= 0 || size > maxSize {
		return nil, "", ErrBadSize
	}
	if !isSecurePassphrase(passphrase) {
		return nil, "", ErrWeakPassphrase
	}
	secret := make([]byte, size)
	if _, err := rand.Read(secret); err != nil {
		return nil, "", err
	}
	if err := s.store.SaveSecret(passphrase, secret); err != nil {
		return nil, "", err
	}
	return secret, s.FingerprintSecret(secret), nil
}

// ImportSecret stores a secret obtained out-of-band.
func (s *Service) ImportSecret(passphrase string, secret []byte) (domain.Fingerprint, error) {
	if len(secret) == 0 {
		return "", crypto.ErrEmptySecret
	}
	if len(secret) > maxSize {
		return "", ErrBadSize
	}
	if !isSecurePassphrase(passphrase) {
		return "", ErrWeakPassphrase
	}
	if err := s.store.SaveSecret(passphrase, secret); err != nil {
		return "", err
	}
	return s.FingerprintSecret(secret), nil
}

// LoadSecret decrypts and returns the stored secret.
func (s *Service) LoadSecret(passphrase string) ([]byte, error) {
	return s.store.LoadSecret(passphrase)
}

// FingerprintSecret returns the short fingerprint of secret.
func (s *Service) FingerprintSecret(secret []byte) domain.Fingerprint {
	return domain.Fingerprint(crypto.Fingerprint(secret))
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.SecretService.
var _ domain.SecretService = (*Service)(nil)
