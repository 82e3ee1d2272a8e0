package interfaces

import domaintypes "lanchat/internal/domain/types"

// SecretService creates, imports and inspects the shared group secret.
type SecretService interface {
	GenerateSecret(passphrase string, size int) ([]byte, domaintypes.Fingerprint, error)
	ImportSecret(passphrase string, secret []byte) (domaintypes.Fingerprint, error)
	LoadSecret(passphrase string) ([]byte, error)
	FingerprintSecret(secret []byte) domaintypes.Fingerprint
}
