package core

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Presence tracks every live connection and the identity it has announced.
// A connection appears in names only between Announce and Forget; conns
// covers the whole attach/detach window so unannounced connections still
// receive presence snapshots.
type Presence struct {
	mu    sync.RWMutex
	conns map[ConnID]ClientConn
	names map[ConnID]string
}

func NewPresence() *Presence {
	return &Presence{
		conns: make(map[ConnID]ClientConn),
		names: make(map[ConnID]string),
	}
}

// Attach registers a live connection before it has announced an identity.
func (p *Presence) Attach(c ClientConn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conns[c.ID()] = c
	log.Info().Str("module", "core.presence").Str("conn", string(c.ID())).Msg("connection attached")
}

// Detach drops the connection entirely. Safe to call for unknown ids.
func (p *Presence) Detach(id ConnID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.conns, id)
	delete(p.names, id)
	log.Info().Str("module", "core.presence").Str("conn", string(id)).Msg("connection detached")
}

// Announce records the identity for a connection. Re-announcing overwrites
// the previous identity: last writer wins.
func (p *Presence) Announce(id ConnID, username string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.names[id] = username
	log.Info().Str("module", "core.presence").Str("conn", string(id)).Str("username", username).Msg("identity announced")
}

// Forget removes the connection's identity if present. Unknown connections
// are tolerated so disconnect cleanup stays unconditional.
func (p *Presence) Forget(id ConnID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.names, id)
	log.Info().Str("module", "core.presence").Str("conn", string(id)).Msg("identity forgotten")
}

// Identity returns the announced username for a connection, if any.
func (p *Presence) Identity(id ConnID) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	name, ok := p.names[id]
	return name, ok
}

// Snapshot returns a point-in-time copy of the announced ConnID->username
// mapping. Callers own the returned map.
func (p *Presence) Snapshot() map[ConnID]string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[ConnID]string, len(p.names))
	for id, name := range p.names {
		out[id] = name
	}
	return out
}

// Conns returns a point-in-time copy of every live connection, announced
// or not. Used as the fan-out target set for presence broadcasts.
func (p *Presence) Conns() []ClientConn {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]ClientConn, 0, len(p.conns))
	for _, c := range p.conns {
		out = append(out, c)
	}
	return out
}
