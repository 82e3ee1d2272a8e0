// Package crypto exposes the symmetric primitives used by lanchat.
//
// Contents
//
//   - RC4 key scheduling and keystream generation (Schedule, KeyState.Transform,
//     KeyState.Keystream)
//   - Short secret fingerprints for out-of-band comparison (Fingerprint)
//   - Byte tables for inspecting cipher input and output (FormatBytes)
//
// # Notes
//
// A KeyState is immutable once scheduled. Every Transform starts from the same
// permutation with both rolling indices at zero, so the same keystream prefix
// is applied to every message. Two ciphertexts produced under one KeyState
// XOR to the XOR of their plaintexts. This matches the chat protocol spoken by
// existing peers and must not be changed without breaking interoperability.
//
// There is no integrity protection: a flipped ciphertext bit flips the same
// plaintext bit.
package crypto
