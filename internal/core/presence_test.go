package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn is a minimal ClientConn for registry tests.
type fakeConn struct {
	id     ConnID
	frames []Frame
	fail   bool
}

func (f *fakeConn) ID() ConnID { return f.id }

func (f *fakeConn) TrySend(fr Frame) error {
	if f.fail {
		return assert.AnError
	}
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeConn) Close() {}

func TestPresenceAnnounceForget(t *testing.T) {
	p := NewPresence()
	a := &fakeConn{id: "a"}
	b := &fakeConn{id: "b"}

	p.Attach(a)
	p.Attach(b)
	assert.Empty(t, p.Snapshot(), "no identities before announce")

	p.Announce("a", "alice")
	p.Announce("b", "bob")

	snap := p.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "alice", snap["a"])
	assert.Equal(t, "bob", snap["b"])

	p.Forget("a")
	snap = p.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "bob", snap["b"])
}

func TestPresenceLastWriterWins(t *testing.T) {
	p := NewPresence()
	p.Attach(&fakeConn{id: "a"})

	p.Announce("a", "alice")
	p.Announce("a", "alicia")

	snap := p.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "alicia", snap["a"])
}

func TestPresenceForgetUnknownIsNoop(t *testing.T) {
	p := NewPresence()
	p.Forget("ghost")
	assert.Empty(t, p.Snapshot())
}

func TestPresenceSnapshotIsCopy(t *testing.T) {
	p := NewPresence()
	p.Attach(&fakeConn{id: "a"})
	p.Announce("a", "alice")

	snap := p.Snapshot()
	snap["a"] = "mallory"

	name, ok := p.Identity("a")
	require.True(t, ok)
	assert.Equal(t, "alice", name)
}

func TestPresenceConnsIncludesUnannounced(t *testing.T) {
	p := NewPresence()
	p.Attach(&fakeConn{id: "a"})
	p.Attach(&fakeConn{id: "b"})
	p.Announce("a", "alice")

	assert.Len(t, p.Conns(), 2, "unannounced connections still receive broadcasts")

	p.Detach("b")
	assert.Len(t, p.Conns(), 1)
}
