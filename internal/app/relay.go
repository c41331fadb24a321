package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/chatbees/server/internal/core"
	"github.com/chatbees/server/internal/domain"
)

// Relay is the connection/presence/room-broadcast engine. It owns no
// transport resources; adapters attach connections and feed it inbound
// events, and it fans encoded frames back out through core.ClientConn.
//
// Every send is fire-and-forget: a slow or already-closed recipient is
// skipped with a debug log and never stalls delivery to the rest.
type Relay struct {
	Presence *core.Presence
	Rooms    *core.Rooms
}

func NewRelay() *Relay {
	return &Relay{
		Presence: core.NewPresence(),
		Rooms:    core.NewRooms(),
	}
}

// Connect registers a freshly accepted connection. No presence broadcast
// happens until the client announces an identity.
func (r *Relay) Connect(c core.ClientConn) {
	r.Presence.Attach(c)
}

// Announce records the connection's identity (last writer wins) and pushes
// a fresh presence snapshot to every live connection.
func (r *Relay) Announce(c core.ClientConn, username string) {
	r.Presence.Announce(c.ID(), username)
	r.broadcastPresence()
}

// Disconnect runs the full cleanup for a closed connection: leave every
// room, drop the identity and the connection itself, then push exactly one
// presence snapshot reflecting the absence. Idempotent, and safe even if
// the connection never announced.
func (r *Relay) Disconnect(id core.ConnID) {
	r.Rooms.LeaveAll(id)
	r.Presence.Forget(id)
	r.Presence.Detach(id)
	r.broadcastPresence()
}

// Join subscribes the connection to a room. Idempotent.
func (r *Relay) Join(c core.ClientConn, room domain.RoomID) {
	r.Rooms.Join(room, c)
}

// Leave unsubscribes the connection from a room. Idempotent no-op for
// non-members.
func (r *Relay) Leave(id core.ConnID, room domain.RoomID) {
	r.Rooms.Leave(room, id)
}

// Message forwards the payload verbatim to every other member of the room.
// The relay neither interprets nor persists the payload; durable storage is
// a separate write path.
func (r *Relay) Message(from core.ClientConn, room domain.RoomID, payload json.RawMessage) {
	frame, err := encode(messageReceivedEvent{
		Type:    EventMessageReceived,
		Room:    room,
		From:    r.identityOf(from.ID()),
		Payload: payload,
	})
	if err != nil {
		log.Error().Err(err).Str("module", "app.relay").Msg("encode message event")
		return
	}
	r.fanOut(r.Rooms.MembersExcluding(room, from.ID()), frame)
}

// TypingStarted relays a status-only typing signal to the rest of the room.
// Repeated signals are forwarded as-is; collapsing them is the client's job.
func (r *Relay) TypingStarted(from core.ClientConn, room domain.RoomID) {
	r.relayTyping(EventTypingStarted, from, room)
}

// TypingStopped relays the matching stop signal.
func (r *Relay) TypingStopped(from core.ClientConn, room domain.RoomID) {
	r.relayTyping(EventTypingStopped, from, room)
}

func (r *Relay) relayTyping(kind string, from core.ClientConn, room domain.RoomID) {
	frame, err := encode(typingEvent{Type: kind, Room: room, From: r.identityOf(from.ID())})
	if err != nil {
		log.Error().Err(err).Str("module", "app.relay").Msg("encode typing event")
		return
	}
	r.fanOut(r.Rooms.MembersExcluding(room, from.ID()), frame)
}

func (r *Relay) identityOf(id core.ConnID) string {
	name, _ := r.Presence.Identity(id)
	return name
}

// broadcastPresence pushes the full current snapshot to every live
// connection. Unconditional and undiffed: the online set is small relative
// to event frequency.
func (r *Relay) broadcastPresence() {
	frame, err := encode(presenceSnapshotEvent{
		Type:   EventPresenceSnapshot,
		Online: r.Presence.Snapshot(),
	})
	if err != nil {
		log.Error().Err(err).Str("module", "app.relay").Msg("encode presence snapshot")
		return
	}
	r.fanOut(r.Presence.Conns(), frame)
}

func (r *Relay) fanOut(targets []core.ClientConn, frame core.Frame) {
	sent := 0
	for _, c := range targets {
		if err := c.TrySend(frame); err != nil {
			log.Debug().Err(err).Str("module", "app.relay").Str("conn", string(c.ID())).Msg("send skipped")
			continue
		}
		sent++
	}
	log.Debug().Str("module", "app.relay").Int("sent_to", sent).Int("targets", len(targets)).Msg("fan-out done")
}
