package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/avolkov/parley/internal/core"
	"github.com/avolkov/parley/internal/domain"
)

type HistoryHandlers struct {
	Messages core.MessageStore
	Limit    int
}

// RoomMessages returns the room's most recent messages, oldest first.
func (h *HistoryHandlers) RoomMessages(c *gin.Context) {
	room := c.Query("room")
	if room == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "room is required"})
		return
	}

	msgs, err := h.Messages.LastN(c.Request.Context(), domain.RoomName(room), h.Limit)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Str("room", room).Msg("room messages")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, msgs)
}
