package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lanchat/internal/domain/types"
)

func TestChatMessage_DeliverableTo(t *testing.T) {
	tests := []struct {
		name string
		msg  types.ChatMessage
		self types.Username
		want bool
	}{
		{"own broadcast is dropped", types.ChatMessage{Sender: "alice", Target: types.Everyone}, "alice", false},
		{"own directed message is dropped", types.ChatMessage{Sender: "alice", Target: "bob"}, "alice", false},
		{"own message to self is dropped", types.ChatMessage{Sender: "alice", Target: "alice"}, "alice", false},
		{"broadcast from peer is shown", types.ChatMessage{Sender: "alice", Target: types.Everyone}, "bob", true},
		{"directed to self is shown", types.ChatMessage{Sender: "alice", Target: "bob"}, "bob", true},
		{"directed to someone else is dropped", types.ChatMessage{Sender: "alice", Target: "carol"}, "bob", false},
		{"lower-case all is not a broadcast", types.ChatMessage{Sender: "alice", Target: "all"}, "bob", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.msg.DeliverableTo(tt.self))
		})
	}
}
