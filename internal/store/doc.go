// Package store provides file-based persistence for lanchat.
//
// SecretFileStore keeps the shared group secret on disk, sealed with
// ChaCha20-Poly1305 under a key derived from a local passphrase with scrypt.
// The file is written atomically through a temporary file and rename, and all
// methods are safe for concurrent use. Files live under the configured home
// directory (default ~/.lanchat).
package store
