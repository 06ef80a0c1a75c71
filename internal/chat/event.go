package chat

import "github.com/MegaGrindStone/finbot-web/internal/models"

// EventKind tells which part of the panel state changed.
type EventKind int

const (
	// EventMessage carries a message appended to the conversation.
	EventMessage EventKind = iota
	// EventComposing carries the new value of the composing flag.
	EventComposing
	// EventStatus carries the outcome of a health check.
	EventStatus
	// EventDraft carries draft text changed by the panel itself: a shortcut prefill or the clear on submit.
	EventDraft
)

func (k EventKind) String() string {
	switch k {
	case EventMessage:
		return "message"
	case EventComposing:
		return "composing"
	case EventStatus:
		return "connection"
	case EventDraft:
		return "draft"
	}
	return "unknown"
}

// Event describes one state change of a Panel. Only the field matching Kind is set.
type Event struct {
	Kind      EventKind
	Message   models.Message
	Composing bool
	Status    models.ConnectionStatus
	Draft     string
}

// Listener receives panel events. It is called while the panel is locked, so it must not call back into
// the panel and should return quickly.
type Listener func(Event)
