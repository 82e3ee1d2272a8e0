package domain

import (
	interfaces "lanchat/internal/domain/interfaces"
	types "lanchat/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username    = types.Username
	Fingerprint = types.Fingerprint
	ChatMessage = types.ChatMessage
)

// Everyone is the reserved broadcast target.
const Everyone = types.Everyone

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	SecretService = interfaces.SecretService
	SecretStore   = interfaces.SecretStore
	Transport     = interfaces.Transport
	Console       = interfaces.Console
)
