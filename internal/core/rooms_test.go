package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chatbees/server/internal/domain"
)

const room1 = domain.RoomID("room1")

func TestJoinIsIdempotent(t *testing.T) {
	r := NewRooms()
	a := &fakeConn{id: "a"}

	r.Join(room1, a)
	r.Join(room1, a)

	assert.True(t, r.Contains(room1, "a"))
	assert.Len(t, r.MembersExcluding(room1, "none"), 1)
}

func TestDoubleJoinSingleLeave(t *testing.T) {
	r := NewRooms()
	a := &fakeConn{id: "a"}

	r.Join(room1, a)
	r.Join(room1, a)
	r.Leave(room1, "a")

	assert.False(t, r.Contains(room1, "a"))
}

func TestLeaveNonMemberIsNoop(t *testing.T) {
	r := NewRooms()
	a := &fakeConn{id: "a"}
	r.Join(room1, a)

	r.Leave(room1, "b")
	r.Leave("otherroom", "a")

	assert.True(t, r.Contains(room1, "a"))
}

func TestMembersExcludingNeverContainsExcluded(t *testing.T) {
	r := NewRooms()
	a := &fakeConn{id: "a"}
	b := &fakeConn{id: "b"}
	r.Join(room1, a)
	r.Join(room1, b)

	members := r.MembersExcluding(room1, "a")
	assert.Len(t, members, 1)
	assert.Equal(t, ConnID("b"), members[0].ID())
}

func TestLeaveAllRemovesEveryMembership(t *testing.T) {
	r := NewRooms()
	a := &fakeConn{id: "a"}
	b := &fakeConn{id: "b"}
	r.Join("room1", a)
	r.Join("room2", a)
	r.Join("room1", b)

	r.LeaveAll("a")

	assert.False(t, r.Contains("room1", "a"))
	assert.False(t, r.Contains("room2", "a"))
	assert.True(t, r.Contains("room1", "b"))
}

func TestMultiRoomMembershipTolerated(t *testing.T) {
	r := NewRooms()
	a := &fakeConn{id: "a"}
	r.Join("room1", a)
	r.Join("room2", a)

	assert.True(t, r.Contains("room1", "a"))
	assert.True(t, r.Contains("room2", "a"))
}
