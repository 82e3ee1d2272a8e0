// Package domain defines the chat message model and the contracts between
// the chat session and its collaborators: transport, console and keystore.
// It contains plain types and interfaces only.
package domain
