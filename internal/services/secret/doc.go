// Package secret manages the shared group secret kept in the local keystore.
//
// It enforces the passphrase policy, generates random secrets, imports
// secrets received out-of-band, and fingerprints them so participants can
// confirm they hold the same one.
package secret
