package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/avolkov/parley/internal/app"
	"github.com/avolkov/parley/internal/core"
	"github.com/avolkov/parley/internal/domain"
)

func (ctl *ChatWSController) handleJoinRoom(sid core.SessionID, sess *app.Session, conn core.SignalConnection, data []byte) {
	type joinPayload struct {
		Type     string `json:"type"`
		Username string `json:"username"`
		Room     string `json:"room"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Debug().Err(err).Str("module", "signal").Msg("bad joinRoom payload")
		return
	}

	res := ctl.Coordinator.Join(sess, domain.RoomName(p.Room), p.Username)
	if !res.Joined {
		log.Debug().Str("module", "signal").Str("sid", string(sid)).Str("room", p.Room).Msg("join rejected")
		return
	}

	// The old room's leave notifications go out before the new room's
	// join notifications.
	if res.Left != nil {
		ctl.Hub.Unsubscribe(res.Left.Room, sid)
		ctl.emitRoomUpdate(sid, *res.Left)
	}

	ctl.Hub.Subscribe(res.Entered.Room, sid, conn)
	ctl.emitRoomUpdate(sid, res.Entered)
}

func (ctl *ChatWSController) handleLeaveRoom(sid core.SessionID, sess *app.Session) {
	res := ctl.Coordinator.Leave(sess)
	if !res.Left {
		return
	}
	ctl.Hub.Unsubscribe(res.Update.Room, sid)
	ctl.emitRoomUpdate(sid, res.Update)
}

// handleDisconnect runs exactly once, from the read loop's defer. It
// must complete even though the peer is already gone.
func (ctl *ChatWSController) handleDisconnect(sid core.SessionID, sess *app.Session) {
	res := ctl.Coordinator.Disconnect(sess)
	if !res.Left {
		return
	}
	ctl.Hub.Unsubscribe(res.Update.Room, sid)
	ctl.emitRoomUpdate(sid, res.Update)
}
