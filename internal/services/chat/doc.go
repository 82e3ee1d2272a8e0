// Package chat runs one participant's side of the group chat.
//
// A Session owns the local username, the keyed cipher state and the
// transport. Run drives two loops at once: the outbound loop prompts for a
// target and a message, encodes it as a chat line, encrypts it and sends one
// datagram; the inbound loop decrypts every datagram, decodes it and shows
// the ones that pass the delivery filter.
package chat
