package signal

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/avolkov/parley/internal/app"
	"github.com/avolkov/parley/internal/core"
	"github.com/avolkov/parley/internal/domain"
)

func (ctl *ChatWSController) handleTyping(sid core.SessionID, sess *app.Session) {
	if !sess.Identified() {
		return
	}
	ctl.emit(sess.Room, core.EventTyping, sid, typingEvent{Type: "typing", Username: sess.Username})
}

func (ctl *ChatWSController) handleStopTyping(sid core.SessionID, sess *app.Session) {
	if !sess.InRoom() {
		return
	}
	ctl.emit(sess.Room, core.EventStopTyping, sid, typingEvent{Type: "stopTyping"})
}

// handleGroupMessage persists and fans out one chat message. The
// timestamp is assigned here, at persistence time. A failed append is
// logged but the broadcast still goes out; losing history beats losing
// the live conversation.
func (ctl *ChatWSController) handleGroupMessage(ctx context.Context, sid core.SessionID, sess *app.Session, data []byte) {
	if !sess.Identified() {
		return
	}

	type messagePayload struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	var p messagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Debug().Err(err).Str("module", "signal").Msg("bad groupMessage payload")
		return
	}

	body := strings.TrimSpace(p.Message)
	if body == "" {
		return
	}

	msg := domain.Message{
		Room:     sess.Room,
		FromUser: sess.Username,
		Body:     body,
		DateSent: domain.FormatSentAt(time.Now()),
	}
	if err := ctl.Messages.Append(ctx, msg); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("room", string(msg.Room)).Msg("message not persisted")
	}

	ctl.emit(msg.Room, core.EventGroupMessage, sid, groupMessageEvent{Type: "groupMessage", Message: msg})
}
