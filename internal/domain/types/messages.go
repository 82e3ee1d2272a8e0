package types

// ChatMessage is one line of chat as carried by a single datagram.
type ChatMessage struct {
	Sender Username
	Target Username
	Body   string
}

// Broadcast reports whether the message is addressed to Everyone.
func (m ChatMessage) Broadcast() bool { return m.Target == Everyone }

// DeliverableTo applies the delivery filter for the local participant self.
//
// Our own multicast traffic comes back through loopback and is dropped. Other
// messages are shown when they are broadcast or addressed to self.
func (m ChatMessage) DeliverableTo(self Username) bool {
	if m.Sender == self {
		return false
	}
	return m.Broadcast() || m.Target == self
}
