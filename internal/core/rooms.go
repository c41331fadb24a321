package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/chatbees/server/internal/domain"
)

// Rooms is the in-memory room membership table: RoomID -> set of live
// connections. Join and Leave are idempotent per (connection, room) pair;
// a connection may belong to several rooms at once.
type Rooms struct {
	mu      sync.RWMutex
	members map[domain.RoomID]map[ConnID]ClientConn
}

func NewRooms() *Rooms {
	return &Rooms{members: make(map[domain.RoomID]map[ConnID]ClientConn)}
}

// Join adds the connection to the room's member set. Any string is accepted
// as a room id; minting and resolution happen outside the relay.
func (r *Rooms) Join(room domain.RoomID, c ClientConn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.members[room]
	if !ok {
		set = make(map[ConnID]ClientConn)
		r.members[room] = set
	}
	if _, ok := set[c.ID()]; ok {
		return
	}
	set[c.ID()] = c
	log.Info().Str("module", "core.rooms").Str("conn", string(c.ID())).Str("room", string(room)).Msg("joined room")
}

// Leave removes the connection from the room if present. Empty rooms are
// pruned so the table reflects only current membership.
func (r *Rooms) Leave(room domain.RoomID, id ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.members[room]
	if !ok {
		return
	}
	if _, ok := set[id]; !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(r.members, room)
	}
	log.Info().Str("module", "core.rooms").Str("conn", string(id)).Str("room", string(room)).Msg("left room")
}

// LeaveAll removes the connection from every room it belongs to.
// Used on disconnect.
func (r *Rooms) LeaveAll(id ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for room, set := range r.members {
		if _, ok := set[id]; !ok {
			continue
		}
		delete(set, id)
		if len(set) == 0 {
			delete(r.members, room)
		}
		log.Info().Str("module", "core.rooms").Str("conn", string(id)).Str("room", string(room)).Msg("left room on disconnect")
	}
}

// MembersExcluding returns a point-in-time copy of the room's members other
// than the excluded connection, so a sender never receives its own echo.
func (r *Rooms) MembersExcluding(room domain.RoomID, excluded ConnID) []ClientConn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := r.members[room]
	out := make([]ClientConn, 0, len(set))
	for id, c := range set {
		if id == excluded {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Contains reports current membership. Intended for introspection and tests.
func (r *Rooms) Contains(room domain.RoomID, id ConnID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[room][id]
	return ok
}
