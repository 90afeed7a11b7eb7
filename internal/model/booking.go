package model

import "time"

// Booking records one claimed seat for a specific showing.  A booking
// is created by a successful claim and removed by a release performed
// by its owner; it is never updated in place.
//
// Fields:
//  ID        – primary key identifier.
//  ShowDate  – catalog date label of the showing (e.g. "12 June").
//  ShowTime  – session label within the date (e.g. "10:00").
//  Row       – row number, 1-based.
//  Seat      – seat number within the row, 1-based.
//  UserID    – numeric identity of the actor holding the seat.
//  CreatedAt – creation timestamp.
type Booking struct {
	ID        uint64    // bookings.id
	ShowDate  string    // bookings.show_date
	ShowTime  string    // bookings.show_time
	Row       int       // bookings.row_no
	Seat      int       // bookings.seat_no
	UserID    int64     // bookings.user_id
	CreatedAt time.Time // bookings.created_at
}

// VenueLayout describes the fixed seating grid of the venue.  The same
// layout applies to every date and session.
type VenueLayout struct {
	Rows        int // number of rows, >= 1
	SeatsPerRow int // seats in each row, >= 1
}

// ValidRow reports whether row falls inside the venue bounds.
func (v VenueLayout) ValidRow(row int) bool { return row >= 1 && row <= v.Rows }

// ValidSeat reports whether seat falls inside a row's bounds.
func (v VenueLayout) ValidSeat(seat int) bool { return seat >= 1 && seat <= v.SeatsPerRow }
