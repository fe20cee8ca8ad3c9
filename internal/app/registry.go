package app

import "github.com/avolkov/parley/internal/domain"

// RoomRegistry is the room -> member-set map. Membership is a set of
// usernames: a user connected twice to the same room occupies one slot.
// Pure data structure, no locking; the coordinator serializes access.
type RoomRegistry struct {
	rooms map[domain.RoomName]map[string]struct{}
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{rooms: make(map[domain.RoomName]map[string]struct{})}
}

func (r *RoomRegistry) Add(room domain.RoomName, username string) {
	members, ok := r.rooms[room]
	if !ok {
		members = make(map[string]struct{})
		r.rooms[room] = members
	}
	members[username] = struct{}{}
}

// Remove drops the username from the room. Removing the last member
// deletes the room entry entirely, so an emptied room leaves no slot behind.
func (r *RoomRegistry) Remove(room domain.RoomName, username string) {
	members, ok := r.rooms[room]
	if !ok {
		return
	}
	delete(members, username)
	if len(members) == 0 {
		delete(r.rooms, room)
	}
}

// Members returns the roster. Order is map iteration order, unspecified.
func (r *RoomRegistry) Members(room domain.RoomName) []string {
	members := r.rooms[room]
	out := make([]string, 0, len(members))
	for username := range members {
		out = append(out, username)
	}
	return out
}

func (r *RoomRegistry) Rooms() int {
	return len(r.rooms)
}
