package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeWait = 5 * time.Second

func (ctl *Controller) writePump(ctx context.Context, c *clientConn) {
	ticker := time.NewTicker(ctl.pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "adapters.ws").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "adapters.ws").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *Controller) readPump(ctx context.Context, cancel context.CancelFunc, c *clientConn) {
	defer func() {
		log.Info().Str("module", "adapters.ws").Str("conn", string(c.id)).Msg("readPump closing")
		cancel()
		ctl.relay.Disconnect(c.id)
		ctl.limiter.Drop(c.id)
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "adapters.ws").Str("conn", string(c.id)).Msg("readPump read error")
				return
			}
			ctl.dispatch(c, data)
		}
	}
}

func (ctl *Controller) dispatch(c *clientConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("bad json")
		return
	}

	switch env.Type {
	case "announce-identity":
		ctl.handleAnnounce(c, data)
	case "join-room":
		ctl.handleJoin(c, data)
	case "leave-room":
		ctl.handleLeave(c, data)
	case "message":
		ctl.handleMessage(c, data)
	case "typing-start":
		ctl.handleTyping(c, data, true)
	case "typing-stop":
		ctl.handleTyping(c, data, false)
	case "ping":
		ctl.handlePing(c)
	default:
		log.Warn().Str("module", "adapters.ws").Str("type", env.Type).Msg("unknown event")
	}
}

func (ctl *Controller) sendJSON(c *clientConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
