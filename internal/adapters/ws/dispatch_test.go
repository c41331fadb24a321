package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatbees/server/internal/app"
	"github.com/chatbees/server/internal/core"
)

// peerConn stands in for another client's transport during dispatch tests.
type peerConn struct {
	id     core.ConnID
	frames []core.Frame
}

func (p *peerConn) ID() core.ConnID            { return p.id }
func (p *peerConn) TrySend(f core.Frame) error { p.frames = append(p.frames, f); return nil }
func (p *peerConn) Close()                     {}

func (p *peerConn) typesReceived(t *testing.T) []string {
	t.Helper()
	out := make([]string, 0, len(p.frames))
	for _, fr := range p.frames {
		var env struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(fr, &env))
		out = append(out, env.Type)
	}
	return out
}

func newTestController() (*Controller, *app.Relay) {
	relay := app.NewRelay()
	return NewController(relay, 32768, time.Minute, 100, time.Minute), relay
}

func TestDispatchFullSession(t *testing.T) {
	ctl, relay := newTestController()

	sender := newClientConn("sender", nil)
	peer := &peerConn{id: "peer"}
	relay.Connect(sender)
	relay.Connect(peer)
	relay.Join(peer, "room1")

	ctl.dispatch(sender, []byte(`{"type":"announce-identity","username":"alice"}`))
	ctl.dispatch(sender, []byte(`{"type":"join-room","room":"room1"}`))
	ctl.dispatch(sender, []byte(`{"type":"typing-start","room":"room1"}`))
	ctl.dispatch(sender, []byte(`{"type":"message","room":"room1","payload":{"text":"hi"}}`))
	ctl.dispatch(sender, []byte(`{"type":"typing-stop","room":"room1"}`))
	ctl.dispatch(sender, []byte(`{"type":"leave-room","room":"room1"}`))

	types := peer.typesReceived(t)
	assert.Contains(t, types, app.EventPresenceSnapshot)
	assert.Contains(t, types, app.EventTypingStarted)
	assert.Contains(t, types, app.EventMessageReceived)
	assert.Contains(t, types, app.EventTypingStopped)

	assert.True(t, relay.Rooms.Contains("room1", "peer"))
	assert.False(t, relay.Rooms.Contains("room1", "sender"))
}

func TestDispatchIgnoresMalformedAndUnknown(t *testing.T) {
	ctl, relay := newTestController()

	sender := newClientConn("sender", nil)
	relay.Connect(sender)

	ctl.dispatch(sender, []byte(`not json at all`))
	ctl.dispatch(sender, []byte(`{"type":"no-such-event"}`))
	ctl.dispatch(sender, []byte(`{"type":"join-room"}`))

	assert.Empty(t, relay.Presence.Snapshot())
}

func TestDispatchRateLimitsMessages(t *testing.T) {
	relay := app.NewRelay()
	ctl := NewController(relay, 32768, time.Minute, 2, time.Minute)

	sender := newClientConn("sender", nil)
	peer := &peerConn{id: "peer"}
	relay.Connect(sender)
	relay.Connect(peer)
	relay.Join(peer, "room1")
	relay.Join(sender, "room1")

	for i := 0; i < 5; i++ {
		ctl.dispatch(sender, []byte(`{"type":"message","room":"room1","payload":"spam"}`))
	}

	delivered := 0
	for _, typ := range peer.typesReceived(t) {
		if typ == app.EventMessageReceived {
			delivered++
		}
	}
	assert.Equal(t, 2, delivered)
}
