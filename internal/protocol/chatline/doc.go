// Package chatline encodes and decodes the plaintext of a chat datagram.
//
// # Format
//
//	<sender>:@<target> <body>
//
// The sender ends at the first ':'. The target follows an '@' and ends at the
// first space; everything after that space is the body. The target "ALL"
// addresses every participant.
//
// There is no escaping. A sender containing ':' or a target containing a
// space cannot be decoded back to the same fields, and peers speaking the
// same format expect exactly this behaviour.
package chatline
