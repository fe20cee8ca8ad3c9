package core

import (
	"context"

	"github.com/avolkov/parley/internal/domain"
)

// Frame is a marshaled outbound event, ready for the wire.
type Frame []byte

type SessionID string

// SignalConnection abstracts a system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// EventKind names an outbound server event and carries its delivery policy.
type EventKind string

const (
	EventMembers      EventKind = "members"
	EventSystem       EventKind = "system"
	EventTyping       EventKind = "typing"
	EventStopTyping   EventKind = "stopTyping"
	EventGroupMessage EventKind = "groupMessage"
)

// IncludesSender reports whether the originating connection receives its own
// emission. A sender must see its message echoed and the fresh roster, but
// not a notice about itself.
func (k EventKind) IncludesSender() bool {
	switch k {
	case EventMembers, EventGroupMessage:
		return true
	}
	return false
}

// Hub delivers one frame to every connection subscribed to a room.
type Hub interface {
	Subscribe(room domain.RoomName, sid SessionID, conn SignalConnection)
	Unsubscribe(room domain.RoomName, sid SessionID)
	EmitToRoom(room domain.RoomName, kind EventKind, from SessionID, frame Frame)
}

// MessageStore is the append-only persisted chat log.
type MessageStore interface {
	Append(ctx context.Context, msg domain.Message) error
	LastN(ctx context.Context, room domain.RoomName, n int) ([]domain.Message, error)
}

// CredentialStore verifies and creates user accounts.
type CredentialStore interface {
	CreateAccount(ctx context.Context, username, firstname, lastname, password string) (*domain.User, error)
	VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error)
}
