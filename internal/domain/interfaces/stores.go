package interfaces

// SecretStore persists the shared group secret, encrypted under a local
// passphrase.
type SecretStore interface {
	SaveSecret(passphrase string, secret []byte) error
	LoadSecret(passphrase string) ([]byte, error)
	HasSecret() (bool, error)
}
