// Package app wires application dependencies for the CLI.
//
// It loads the TOML configuration, builds the log backend, metrics, keystore
// and secret service into a Wire, and runs the join flow that connects a
// console and the multicast transport to a chat session.
package app
