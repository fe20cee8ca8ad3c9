package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/avolkov/parley/internal/domain"
)

// BroadcastHub is a threadsafe map from room to its live connections.
// It never closes adapter-owned resources. Sends are non-blocking
// (buffered channels behind TrySend), so holding the read lock across
// the fan-out loop cannot stall on recipient I/O.
type BroadcastHub struct {
	mu    sync.RWMutex
	rooms map[domain.RoomName]map[SessionID]SignalConnection
}

func NewBroadcastHub() *BroadcastHub {
	return &BroadcastHub{
		rooms: make(map[domain.RoomName]map[SessionID]SignalConnection),
	}
}

func (h *BroadcastHub) Subscribe(room domain.RoomName, sid SessionID, conn SignalConnection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.rooms[room]
	if !ok {
		conns = make(map[SessionID]SignalConnection)
		h.rooms[room] = conns
	}
	conns[sid] = conn
	log.Debug().Str("module", "core.hub").Str("sid", string(sid)).Str("room", string(room)).Msg("subscribed")
}

func (h *BroadcastHub) Unsubscribe(room domain.RoomName, sid SessionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(conns, sid)
	if len(conns) == 0 {
		delete(h.rooms, room)
	}
	log.Debug().Str("module", "core.hub").Str("sid", string(sid)).Str("room", string(room)).Msg("unsubscribed")
}

// EmitToRoom fans one frame out to the room. A recipient that cannot
// accept the frame is skipped; delivery to the rest proceeds.
func (h *BroadcastHub) EmitToRoom(room domain.RoomName, kind EventKind, from SessionID, frame Frame) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sent, dropped := 0, 0
	for sid, conn := range h.rooms[room] {
		if sid == from && !kind.IncludesSender() {
			continue
		}
		if err := conn.TrySend(frame); err != nil {
			dropped++
			continue
		}
		sent++
	}
	log.Debug().Str("module", "core.hub").
		Str("room", string(room)).
		Str("kind", string(kind)).
		Int("sent_to", sent).
		Int("dropped", dropped).
		Msg("broadcast result")
}
