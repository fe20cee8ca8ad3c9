package domain

import "time"

// SentAtLayout is the wire format for message timestamps:
// MM-DD-YYYY hh:mm AM/PM, 12-hour clock, zero-padded.
const SentAtLayout = "01-02-2006 03:04 PM"

// Message is an immutable chat record. DateSent is assigned when the
// message is persisted, not when the client typed it.
type Message struct {
	ID       string   `json:"id,omitempty"`
	Room     RoomName `json:"room"`
	FromUser string   `json:"from_user"`
	Body     string   `json:"message"`
	DateSent string   `json:"date_sent"`
}

func FormatSentAt(t time.Time) string {
	return t.Format(SentAtLayout)
}
