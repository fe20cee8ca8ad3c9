package domain

// RoomName identifies one of the server-defined rooms. Rooms are fixed
// by configuration; they are not created or destroyed at runtime.
type RoomName string
