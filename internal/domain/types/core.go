package types

// Username identifies a chat participant on the group.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }

// Everyone is the reserved target that addresses every participant.
const Everyone Username = "ALL"

// Fingerprint is a short identifier for a shared secret presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }
