// Package engine implements the reservation engine: domain validation
// and view construction on top of the occupancy store.  The store's
// uniqueness guarantee is the only synchronization; the engine never
// reads occupancy before claiming a seat.
package engine

import (
	"context"
	"errors"

	"github.com/annagav/cinema-booking/internal/catalog"
	"github.com/annagav/cinema-booking/internal/model"
	"github.com/annagav/cinema-booking/internal/repository"
)

// Store is the occupancy store contract the engine depends on.  It is
// satisfied by repository.BookingRepo (MySQL) and
// repository.MemoryStore.  Claim must be atomic per seat key across
// all concurrent callers.
type Store interface {
	Occupied(ctx context.Context, date, session string, row int) (map[int]int64, error)
	Claim(ctx context.Context, date, session string, row, seat int, userID int64) error
	Release(ctx context.Context, date, session string, row, seat int, userID int64) error
	ListByUser(ctx context.Context, userID int64) ([]model.Booking, error)
}

// Outcome is the typed result of a booking or cancellation attempt.
// Every value but OutcomeConfirmed is a routine condition of
// concurrent use or a stale view, reported to the caller rather than
// raised as a fault.
type Outcome string

const (
	// OutcomeConfirmed means the operation succeeded.
	OutcomeConfirmed Outcome = "CONFIRMED"
	// OutcomeSeatTaken means another live booking already holds the
	// seat.  A claim on a seat the caller already owns reports this
	// too: the engine deliberately does not pre-read ownership, since
	// any read before the claim would reopen the check-then-act race.
	OutcomeSeatTaken Outcome = "SEAT_TAKEN"
	// OutcomeNothingToCancel means no booking owned by the caller
	// exists for the seat; a double-tapped cancel lands here.
	OutcomeNothingToCancel Outcome = "NOTHING_TO_CANCEL"
	// OutcomeInvalidSelection means the date, session, row or seat is
	// not a valid target: unknown catalog keys or out-of-bounds
	// numbers.
	OutcomeInvalidSelection Outcome = "INVALID_SELECTION"
)

// Engine arbitrates seat claims and builds occupancy views.  It is
// safe for concurrent use; all mutable state lives in the store.
type Engine struct {
	store   Store
	catalog *catalog.Catalog
	layout  model.VenueLayout
}

// New returns an Engine over the given store, catalog and venue
// layout.
func New(store Store, cat *catalog.Catalog, layout model.VenueLayout) *Engine {
	if store == nil || cat == nil {
		panic("nil store or catalog passed to engine.New")
	}
	return &Engine{store: store, catalog: cat, layout: layout}
}

// Layout returns the venue layout the engine validates against.
func (e *Engine) Layout() model.VenueLayout { return e.layout }

// validSelection checks a seat coordinate against the catalog and the
// venue bounds.
func (e *Engine) validSelection(date, session string, row, seat int) bool {
	return e.catalog.HasSession(date, session) && e.layout.ValidRow(row) && e.layout.ValidSeat(seat)
}

// BookSeat attempts to claim a seat for userID.  Invalid coordinates
// yield OutcomeInvalidSelection without touching the store; a seat
// held by any live booking yields OutcomeSeatTaken.  Only storage
// faults are returned as errors.
func (e *Engine) BookSeat(ctx context.Context, date, session string, row, seat int, userID int64) (Outcome, error) {
	if !e.validSelection(date, session, row, seat) {
		return OutcomeInvalidSelection, nil
	}
	if err := e.store.Claim(ctx, date, session, row, seat, userID); err != nil {
		if errors.Is(err, repository.ErrSeatOccupied) {
			return OutcomeSeatTaken, nil
		}
		return "", err
	}
	return OutcomeConfirmed, nil
}

// CancelSeat releases a seat previously claimed by userID.  When no
// such booking exists, whether already cancelled or owned by someone
// else, it reports OutcomeNothingToCancel.
func (e *Engine) CancelSeat(ctx context.Context, date, session string, row, seat int, userID int64) (Outcome, error) {
	if !e.validSelection(date, session, row, seat) {
		return OutcomeInvalidSelection, nil
	}
	if err := e.store.Release(ctx, date, session, row, seat, userID); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return OutcomeNothingToCancel, nil
		}
		return "", err
	}
	return OutcomeConfirmed, nil
}

// RowView classifies every seat of a row for the calling actor.  The
// view is a snapshot: two concurrent calls may legitimately differ,
// and a claim racing the view is resolved by the store at claim time.
func (e *Engine) RowView(ctx context.Context, date, session string, row int, callerID int64) (*model.RowView, Outcome, error) {
	if !e.catalog.HasSession(date, session) || !e.layout.ValidRow(row) {
		return nil, OutcomeInvalidSelection, nil
	}
	occupied, err := e.store.Occupied(ctx, date, session, row)
	if err != nil {
		return nil, "", err
	}
	view := &model.RowView{
		ShowDate: date,
		ShowTime: session,
		Row:      row,
		Seats:    make([]model.SeatView, 0, e.layout.SeatsPerRow),
	}
	for seat := 1; seat <= e.layout.SeatsPerRow; seat++ {
		state := model.SeatAvailable
		if owner, taken := occupied[seat]; taken {
			if owner == callerID {
				state = model.SeatOccupiedByCaller
			} else {
				state = model.SeatOccupiedByOther
			}
		}
		view.Seats = append(view.Seats, model.SeatView{Seat: seat, State: state})
	}
	return view, OutcomeConfirmed, nil
}

// ListBookings returns all live bookings held by userID.
func (e *Engine) ListBookings(ctx context.Context, userID int64) ([]model.Booking, error) {
	return e.store.ListByUser(ctx, userID)
}
