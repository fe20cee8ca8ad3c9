package app

import "github.com/avolkov/parley/internal/domain"

// Session is the per-connection state: who the connection claims to be
// and which room it is currently bound to. One per live connection,
// owned by that connection's read loop; the coordinator mutates it only
// from within calls made by that loop.
type Session struct {
	Username string
	Room     domain.RoomName
}

func (s *Session) InRoom() bool {
	return s.Room != ""
}

func (s *Session) Identified() bool {
	return s.Room != "" && s.Username != ""
}
