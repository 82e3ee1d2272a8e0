package interfaces

import (
	"context"

	domaintypes "lanchat/internal/domain/types"
)

// Console is the line-based user interface of a chat participant.
type Console interface {
	// Prompt writes label and waits for the next input line.
	Prompt(ctx context.Context, label string) (string, error)
	// Display shows a received message.
	Display(msg domaintypes.ChatMessage)
	// Notify writes an informational line.
	Notify(format string, args ...any)
}
