// Package repository implements the occupancy store: the durable
// record of which seats are claimed and by whom.  Sentinel errors
// defined here let higher layers distinguish routine concurrent-use
// conditions from real faults without inspecting driver errors.
package repository

import "errors"

// ErrSeatOccupied is returned by Claim when the seat already has a
// live booking.  The exclusivity guarantee comes from the storage
// layer itself (a uniqueness constraint on the seat key), so of N
// concurrent claims on the same seat exactly one succeeds and the
// rest observe this error.
var ErrSeatOccupied = errors.New("seat occupied")

// ErrBookingNotFound is returned by Release when no booking exists
// for the seat key and owner.  Releasing another actor's seat is
// indistinguishable from releasing a free one.
var ErrBookingNotFound = errors.New("booking not found")
