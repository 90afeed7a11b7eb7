// Package queue defines message payloads exchanged over the message broker.
package queue

// Seat event actions.
const (
	ActionBooked    = "booked"
	ActionCancelled = "cancelled"
)

// SeatEvent is published after a confirmed claim or release.  It
// carries everything a downstream notifier needs to tell the actor
// about their booking without querying the primary database: the
// same recap a chat frontend renders as a confirmation message.
type SeatEvent struct {
	Action   string `json:"action"` // "booked" or "cancelled"
	UserID   int64  `json:"user_id"`
	ShowDate string `json:"date"`
	ShowTime string `json:"time"`
	Row      int    `json:"row"`
	Seat     int    `json:"seat"`
	At       string `json:"at"` // RFC3339 timestamp of the state change
}
