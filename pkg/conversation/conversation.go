// Package conversation holds the ordered dialogue history of one session.
package conversation

import (
	"errors"
	"fmt"
	"strings"
)

// Role tags who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

var (
	// ErrEmptyContent is returned when appending a blank user message.
	ErrEmptyContent = errors.New("message content is empty")
	// ErrInvalidRole is returned when appending a message with an unknown role.
	ErrInvalidRole = errors.New("invalid message role")
)

// Message is one role-tagged record.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is an append-only, insertion-ordered message sequence.
// The zero value is ready to use. It is not safe for concurrent use.
type Conversation struct {
	messages []Message
}

// New returns an empty conversation.
func New() *Conversation {
	return &Conversation{}
}

// Append adds a message after validating it. Assistant replies may be blank.
func (c *Conversation) Append(m Message) error {
	if !m.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, m.Role)
	}
	if m.Role == RoleUser && strings.TrimSpace(m.Content) == "" {
		return ErrEmptyContent
	}
	c.messages = append(c.messages, m)
	return nil
}

// AddUser appends a user message.
func (c *Conversation) AddUser(content string) error {
	return c.Append(Message{Role: RoleUser, Content: content})
}

// AddAssistant appends an assistant message.
func (c *Conversation) AddAssistant(content string) error {
	return c.Append(Message{Role: RoleAssistant, Content: content})
}

// Messages returns a copy of the history in insertion order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the most recent message, if any.
func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}
