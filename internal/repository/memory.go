package repository

import (
	"context"
	"sync"
	"time"

	"github.com/annagav/cinema-booking/internal/model"
)

// seatKey identifies one seat of one showing.
type seatKey struct {
	date    string
	session string
	row     int
	seat    int
}

// MemoryStore is an in-memory occupancy store with the same contract
// as BookingRepo.  A single mutex makes claim and release atomic per
// process, mirroring the uniqueness guarantee the MySQL schema
// provides.  It backs the test suite and the memory store driver.
type MemoryStore struct {
	mu    sync.Mutex
	seats map[seatKey]int64
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{seats: make(map[seatKey]int64)}
}

// Occupied returns a snapshot of the claimed seats in one row.
func (s *MemoryStore) Occupied(_ context.Context, date, session string, row int) (map[int]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	occupied := make(map[int]int64)
	for k, owner := range s.seats {
		if k.date == date && k.session == session && k.row == row {
			occupied[k.seat] = owner
		}
	}
	return occupied, nil
}

// Claim records a booking for the seat key, or returns
// ErrSeatOccupied when a live booking already holds it.
func (s *MemoryStore) Claim(_ context.Context, date, session string, row, seat int, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := seatKey{date: date, session: session, row: row, seat: seat}
	if _, taken := s.seats[k]; taken {
		return ErrSeatOccupied
	}
	s.seats[k] = userID
	return nil
}

// Release removes the booking for the seat key when owned by userID,
// or returns ErrBookingNotFound.
func (s *MemoryStore) Release(_ context.Context, date, session string, row, seat int, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := seatKey{date: date, session: session, row: row, seat: seat}
	owner, ok := s.seats[k]
	if !ok || owner != userID {
		return ErrBookingNotFound
	}
	delete(s.seats, k)
	return nil
}

// ListByUser returns the bookings held by userID.  Ordering follows
// map iteration and is not significant for the in-memory store's
// callers (tests and local development).
func (s *MemoryStore) ListByUser(_ context.Context, userID int64) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bookings := make([]model.Booking, 0)
	for k, owner := range s.seats {
		if owner != userID {
			continue
		}
		bookings = append(bookings, model.Booking{
			ShowDate:  k.date,
			ShowTime:  k.session,
			Row:       k.row,
			Seat:      k.seat,
			UserID:    owner,
			CreatedAt: time.Now().UTC(),
		})
	}
	return bookings, nil
}
