package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single entry in a conversation. Messages are append-only and their order is the order in
// which they were added to the conversation.
type Message struct {
	ID        string
	Role      Role
	Text      string
	CreatedAt time.Time
}

// Role represents the role of a message participant.
type Role string

const (
	// RoleUser represents a message typed (or selected) by the person using the page.
	RoleUser Role = "user"
	// RoleAssistant represents a message produced by the chat service, or a local fallback in its place.
	RoleAssistant Role = "assistant"
)

// NewMessage creates a message with a fresh ID, stamped with the given time.
func NewMessage(role Role, text string, now time.Time) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      role,
		Text:      text,
		CreatedAt: now,
	}
}

// ConnectionStatus reflects the outcome of the most recent health check.
type ConnectionStatus string

const (
	StatusConnected    ConnectionStatus = "connected"
	StatusDisconnected ConnectionStatus = "disconnected"
)

// Connected reports whether s allows submissions.
func (s ConnectionStatus) Connected() bool {
	return s == StatusConnected
}
