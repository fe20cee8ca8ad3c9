package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/parley/internal/domain"
)

var testRooms = []domain.RoomName{"devops", "cloud computing", "sports"}

func TestPresenceCoordinator_JoinRejections(t *testing.T) {
	tests := []struct {
		name     string
		room     domain.RoomName
		username string
	}{
		{name: "unknown room", room: "gardening", username: "alice"},
		{name: "empty room", room: "", username: "alice"},
		{name: "empty username", room: "devops", username: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewPresenceCoordinator(testRooms)
			sess := &Session{}

			res := c.Join(sess, tt.room, tt.username)

			assert.False(t, res.Joined)
			assert.Nil(t, res.Left)
			assert.Empty(t, sess.Room, "rejection leaves session untouched")
			assert.Empty(t, c.Members(tt.room))
		})
	}
}

func TestPresenceCoordinator_Join(t *testing.T) {
	c := NewPresenceCoordinator(testRooms)
	sess := &Session{}

	res := c.Join(sess, "devops", "alice")

	require.True(t, res.Joined)
	assert.Nil(t, res.Left)
	assert.Equal(t, domain.RoomName("devops"), res.Entered.Room)
	assert.Equal(t, []string{"alice"}, res.Entered.Roster)
	assert.Equal(t, "alice joined the room.", res.Entered.Notice)
	assert.Equal(t, domain.RoomName("devops"), sess.Room)
	assert.Equal(t, "alice", sess.Username)
}

func TestPresenceCoordinator_JoinSwitchesRoom(t *testing.T) {
	c := NewPresenceCoordinator(testRooms)
	stay := &Session{}
	c.Join(stay, "devops", "alice")

	mover := &Session{}
	c.Join(mover, "devops", "bob")

	res := c.Join(mover, "sports", "bob")

	require.True(t, res.Joined)
	require.NotNil(t, res.Left, "switching rooms leaves the old one first")
	assert.Equal(t, domain.RoomName("devops"), res.Left.Room)
	assert.Equal(t, []string{"alice"}, res.Left.Roster)
	assert.Equal(t, "bob left the room.", res.Left.Notice)

	assert.Equal(t, domain.RoomName("sports"), res.Entered.Room)
	assert.Equal(t, []string{"bob"}, res.Entered.Roster)
	assert.Equal(t, "bob joined the room.", res.Entered.Notice)

	assert.ElementsMatch(t, []string{"alice"}, c.Members("devops"))
	assert.ElementsMatch(t, []string{"bob"}, c.Members("sports"))
}

func TestPresenceCoordinator_Leave(t *testing.T) {
	c := NewPresenceCoordinator(testRooms)
	sess := &Session{}
	c.Join(sess, "devops", "alice")

	res := c.Leave(sess)

	require.True(t, res.Left)
	assert.Equal(t, "alice left the room.", res.Update.Notice)
	assert.Empty(t, res.Update.Roster)
	assert.Empty(t, sess.Room, "session is unbound after leave")
	assert.Equal(t, "alice", sess.Username, "identity survives leaving")
	assert.Empty(t, c.Members("devops"))
}

func TestPresenceCoordinator_LeaveWithoutRoomIsNoop(t *testing.T) {
	c := NewPresenceCoordinator(testRooms)

	res := c.Leave(&Session{Username: "alice"})
	assert.False(t, res.Left)

	res = c.Disconnect(&Session{})
	assert.False(t, res.Left)
}

func TestPresenceCoordinator_DisconnectWording(t *testing.T) {
	c := NewPresenceCoordinator(testRooms)
	sess := &Session{}
	c.Join(sess, "devops", "bob")

	res := c.Disconnect(sess)

	require.True(t, res.Left)
	assert.Equal(t, "bob disconnected.", res.Update.Notice)
	assert.Empty(t, c.Members("devops"))
}

func TestPresenceCoordinator_RoomRejoinableAfterLastLeave(t *testing.T) {
	c := NewPresenceCoordinator(testRooms)
	sess := &Session{}
	c.Join(sess, "devops", "alice")
	c.Leave(sess)

	res := c.Join(sess, "devops", "alice")
	require.True(t, res.Joined)
	assert.Equal(t, []string{"alice"}, res.Entered.Roster, "no stale state after the room emptied")
}

func TestPresenceCoordinator_SameUsernameCollapses(t *testing.T) {
	c := NewPresenceCoordinator(testRooms)
	first := &Session{}
	second := &Session{}

	c.Join(first, "devops", "alice")
	c.Join(second, "devops", "alice")
	require.Len(t, c.Members("devops"), 1, "two connections, one membership slot")

	// Disconnect of either connection clears the membership entirely.
	c.Disconnect(first)
	assert.Empty(t, c.Members("devops"))
}
