package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/avolkov/parley/internal/app"
	"github.com/avolkov/parley/internal/core"
	"github.com/avolkov/parley/internal/domain"
)

type membersEvent struct {
	Type    string   `json:"type"`
	Members []string `json:"members"`
}

type systemEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type typingEvent struct {
	Type     string `json:"type"`
	Username string `json:"username,omitempty"`
}

type groupMessageEvent struct {
	Type string `json:"type"`
	domain.Message
}

func (ctl *ChatWSController) emit(room domain.RoomName, kind core.EventKind, from core.SessionID, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("emit marshal")
		return
	}
	ctl.Hub.EmitToRoom(room, kind, from, core.Frame(b))
}

// emitRoomUpdate publishes one membership change: the fresh roster to
// everyone (sender included) and the system notice to everyone else.
func (ctl *ChatWSController) emitRoomUpdate(from core.SessionID, u app.RoomUpdate) {
	ctl.emit(u.Room, core.EventMembers, from, membersEvent{Type: "members", Members: u.Roster})
	ctl.emit(u.Room, core.EventSystem, from, systemEvent{Type: "system", Message: u.Notice})
}
