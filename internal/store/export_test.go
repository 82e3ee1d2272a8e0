package store

// UseFastKDF lowers the scrypt cost so tests run quickly.
func (s *SecretFileStore) UseFastKDF() { s.kdf = kdfParams{N: 1 << 10, R: 8, P: 1} }
