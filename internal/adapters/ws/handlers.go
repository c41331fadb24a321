package ws

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/chatbees/server/internal/domain"
)

func (ctl *Controller) handleAnnounce(c *clientConn, data []byte) {
	var p struct {
		Type     string `json:"type"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("bad announce payload")
		ctl.sendJSON(c, map[string]any{"type": "error", "error": "bad_payload"})
		return
	}
	if err := domain.ValidateUsername(p.Username); err != nil {
		ctl.sendJSON(c, map[string]any{"type": "error", "error": err.Error()})
		return
	}

	log.Info().Str("module", "adapters.ws").Str("conn", string(c.id)).Str("username", p.Username).Msg("announce")
	ctl.relay.Announce(c, p.Username)
}

func (ctl *Controller) handleJoin(c *clientConn, data []byte) {
	var p struct {
		Type string `json:"type"`
		Room string `json:"room"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("bad join payload")
		ctl.sendJSON(c, map[string]any{"type": "error", "error": "bad_payload"})
		return
	}

	log.Info().Str("module", "adapters.ws").Str("conn", string(c.id)).Str("room", p.Room).Msg("join")
	ctl.relay.Join(c, domain.RoomID(p.Room))
}

func (ctl *Controller) handleLeave(c *clientConn, data []byte) {
	var p struct {
		Type string `json:"type"`
		Room string `json:"room"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("bad leave payload")
		ctl.sendJSON(c, map[string]any{"type": "error", "error": "bad_payload"})
		return
	}

	log.Info().Str("module", "adapters.ws").Str("conn", string(c.id)).Str("room", p.Room).Msg("leave")
	ctl.relay.Leave(c.id, domain.RoomID(p.Room))
}

func (ctl *Controller) handleMessage(c *clientConn, data []byte) {
	var p struct {
		Type    string          `json:"type"`
		Room    string          `json:"room"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("bad message payload")
		ctl.sendJSON(c, map[string]any{"type": "error", "error": "bad_payload"})
		return
	}
	if !ctl.limiter.Allow(c.id) {
		log.Warn().Str("module", "adapters.ws").Str("conn", string(c.id)).Msg("message rate limited")
		return
	}

	ctl.relay.Message(c, domain.RoomID(p.Room), p.Payload)
}

func (ctl *Controller) handleTyping(c *clientConn, data []byte, started bool) {
	var p struct {
		Type string `json:"type"`
		Room string `json:"room"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("bad typing payload")
		return
	}

	if started {
		ctl.relay.TypingStarted(c, domain.RoomID(p.Room))
		return
	}
	ctl.relay.TypingStopped(c, domain.RoomID(p.Room))
}

func (ctl *Controller) handlePing(c *clientConn) {
	ctl.sendJSON(c, map[string]any{"type": "pong"})
}
