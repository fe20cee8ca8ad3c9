package store

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/avolkov/parley/internal/domain"
)

// Append writes one message to the log. The rowid sequence is the
// canonical append order across all rooms.
func (s *Store) Append(ctx context.Context, msg domain.Message) error {
	id := msg.ID
	if id == "" {
		id = ulid.Make().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, room, from_user, body, date_sent) VALUES (?, ?, ?, ?, ?)`,
		id, string(msg.Room), msg.FromUser, msg.Body, msg.DateSent,
	)
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// LastN returns the room's most recent n messages, oldest first.
func (s *Store) LastN(ctx context.Context, room domain.RoomName, n int) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, room, from_user, body, date_sent
		 FROM messages WHERE room = ? ORDER BY seq DESC LIMIT ?`,
		string(room), n,
	)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var newestFirst []domain.Message
	for rows.Next() {
		var m domain.Message
		var roomName string
		if err := rows.Scan(&m.ID, &roomName, &m.FromUser, &m.Body, &m.DateSent); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Room = domain.RoomName(roomName)
		newestFirst = append(newestFirst, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.Message, 0, len(newestFirst))
	for i := len(newestFirst) - 1; i >= 0; i-- {
		out = append(out, newestFirst[i])
	}
	return out, nil
}
