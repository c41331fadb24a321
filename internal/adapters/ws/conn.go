package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/chatbees/server/internal/core"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

// clientConn wraps a *websocket.Conn behind core.ClientConn. Writes go
// through a buffered channel drained by the write pump; TrySend never
// blocks and tolerates sends after close.
type clientConn struct {
	id   core.ConnID
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func newClientConn(id core.ConnID, conn *websocket.Conn) *clientConn {
	return &clientConn{
		id:   id,
		conn: conn,
		send: make(chan core.Frame, 32),
	}
}

func (c *clientConn) ID() core.ConnID { return c.id }

func (c *clientConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *clientConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}
