package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/chatbees/server/internal/domain"
)

// ResolveRoom returns the room id for a participant set, minting one if the
// conversation has no room yet. The relay consumes the id verbatim.
func (a *API) ResolveRoom(c *gin.Context) {
	var req struct {
		Users []string `json:"users"`
	}
	if err := c.BindJSON(&req); err != nil || len(req.Users) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "need at least two participants"})
		return
	}

	id, err := a.Store.ResolveRoom(c.Request.Context(), req.Users)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("resolve room")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roomId": id})
}

// AppendMessage durably stores a message. Independent of the live relay:
// the client calls both paths for the same message.
func (a *API) AppendMessage(c *gin.Context) {
	var req struct {
		RoomID string `json:"roomId"`
		Body   string `json:"body"`
	}
	if err := c.BindJSON(&req); err != nil || req.RoomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_payload"})
		return
	}

	msg, err := a.Store.AppendMessage(c.Request.Context(), domain.Message{
		RoomID: domain.RoomID(req.RoomID),
		Sender: c.GetString("username"),
		Body:   req.Body,
	})
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("append message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// RoomHistory returns the ordered message history for a room.
func (a *API) RoomHistory(c *gin.Context) {
	room := domain.RoomID(c.Param("id"))

	msgs, err := a.Store.RoomHistory(c.Request.Context(), room)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("room history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
