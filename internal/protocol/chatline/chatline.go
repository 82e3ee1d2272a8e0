package chatline

import (
	"bytes"
	"errors"

	"lanchat/internal/domain"
)

const (
	senderDelim = ':'
	targetMark  = '@'
	bodyDelim   = ' '
)

// ErrMalformed is returned for payloads that do not follow the chat line format.
var ErrMalformed = errors.New("chatline: malformed payload")

// Encode formats m as "<sender>:@<target> <body>".
func Encode(m domain.ChatMessage) []byte {
	out := make([]byte, 0, len(m.Sender)+len(m.Target)+len(m.Body)+3)
	out = append(out, m.Sender...)
	out = append(out, senderDelim, targetMark)
	out = append(out, m.Target...)
	out = append(out, bodyDelim)
	out = append(out, m.Body...)
	return out
}

// Decode parses a chat line produced by Encode.
//
// It returns ErrMalformed when there is no ':' or when the text after the
// first ':' does not start with '@'. A line without a space after the target
// decodes with an empty body.
func Decode(b []byte) (domain.ChatMessage, error) {
	i := bytes.IndexByte(b, senderDelim)
	if i < 0 {
		return domain.ChatMessage{}, ErrMalformed
	}
	sender, rest := b[:i], b[i+1:]
	if len(rest) == 0 || rest[0] != targetMark {
		return domain.ChatMessage{}, ErrMalformed
	}
	rest = rest[1:]

	target, body := rest, []byte(nil)
	if j := bytes.IndexByte(rest, bodyDelim); j >= 0 {
		target, body = rest[:j], rest[j+1:]
	}
	return domain.ChatMessage{
		Sender: domain.Username(sender),
		Target: domain.Username(target),
		Body:   string(body),
	}, nil
}
