package app

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/avolkov/parley/internal/domain"
)

// RoomUpdate describes one room's state change: the post-change roster
// and the system notice to show everyone else in that room.
type RoomUpdate struct {
	Room   domain.RoomName
	Roster []string
	Notice string
}

type JoinResult struct {
	Joined bool
	// Left is set when the connection was bound to another room before
	// the join; its update must be emitted before Entered's.
	Left    *RoomUpdate
	Entered RoomUpdate
}

type LeaveResult struct {
	Left   bool
	Update RoomUpdate
}

// PresenceCoordinator owns the membership map. All mutations go through
// its mutex; the lock is held only across the map mutation, never across
// broadcast fan-out or persistence.
type PresenceCoordinator struct {
	mu       sync.Mutex
	registry *RoomRegistry
	allowed  map[domain.RoomName]struct{}
}

func NewPresenceCoordinator(rooms []domain.RoomName) *PresenceCoordinator {
	allowed := make(map[domain.RoomName]struct{}, len(rooms))
	for _, r := range rooms {
		allowed[r] = struct{}{}
	}
	return &PresenceCoordinator{
		registry: NewRoomRegistry(),
		allowed:  allowed,
	}
}

func (c *PresenceCoordinator) Allowed(room domain.RoomName) bool {
	_, ok := c.allowed[room]
	return ok
}

// Members returns the current roster snapshot for a room.
func (c *PresenceCoordinator) Members(room domain.RoomName) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.Members(room)
}

// Join binds the session to a room. Unknown rooms and empty fields are
// silent no-ops. A session already bound to another room leaves it
// first; both the leave and the join notifications are returned.
func (c *PresenceCoordinator) Join(sess *Session, room domain.RoomName, username string) JoinResult {
	if username == "" || room == "" || !c.Allowed(room) {
		return JoinResult{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	res := JoinResult{Joined: true}
	if sess.InRoom() {
		old := sess.Room
		c.registry.Remove(old, sess.Username)
		res.Left = &RoomUpdate{
			Room:   old,
			Roster: c.registry.Members(old),
			Notice: fmt.Sprintf("%s left the room.", sess.Username),
		}
	}

	sess.Username = username
	sess.Room = room
	c.registry.Add(room, username)
	res.Entered = RoomUpdate{
		Room:   room,
		Roster: c.registry.Members(room),
		Notice: fmt.Sprintf("%s joined the room.", username),
	}

	log.Info().Str("module", "app.coordinator").Str("username", username).Str("room", string(room)).Msg("joined room")
	return res
}

// Leave unbinds the session from its room. No-op when unbound.
func (c *PresenceCoordinator) Leave(sess *Session) LeaveResult {
	return c.unbind(sess, "%s left the room.")
}

// Disconnect is Leave with disconnect wording. Invoked exactly once when
// the underlying connection terminates; it must always run to completion.
func (c *PresenceCoordinator) Disconnect(sess *Session) LeaveResult {
	return c.unbind(sess, "%s disconnected.")
}

func (c *PresenceCoordinator) unbind(sess *Session, noticeFormat string) LeaveResult {
	if !sess.Identified() {
		return LeaveResult{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	room := sess.Room
	c.registry.Remove(room, sess.Username)
	sess.Room = ""

	log.Info().Str("module", "app.coordinator").Str("username", sess.Username).Str("room", string(room)).Msg("left room")
	return LeaveResult{
		Left: true,
		Update: RoomUpdate{
			Room:   room,
			Roster: c.registry.Members(room),
			Notice: fmt.Sprintf(noticeFormat, sess.Username),
		},
	}
}
