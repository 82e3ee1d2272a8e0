// Package commands defines the lanchat CLI and wires dependencies for subcommands.
//
// Commands
//
//   - join           Join the multicast group and chat
//   - keystream      Print keystream bytes for a key
//   - encrypt        Encrypt, decrypt and verify a message with a key
//   - secret         Generate, import or export the stored shared secret
//   - fingerprint    Print the fingerprint of the effective shared secret
//
// # Implementation
//
// The root command loads the configuration file, applies flag overrides and
// builds the dependency graph (log backend, metrics, keystore, secret
// service) before any subcommand runs.
package commands
