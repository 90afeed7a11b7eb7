package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/annagav/cinema-booking/internal/model"
)

// mysqlErrDupEntry is the MySQL error number raised when an insert
// violates a unique key.
const mysqlErrDupEntry = 1062

// BookingRepo provides claim, release and occupancy queries over the
// bookings table.  The table carries a unique key on
// (show_date, show_time, row_no, seat_no), which is what makes Claim
// atomic: the insert and the uniqueness check are one indivisible
// operation inside the database, with no check-then-act window at the
// caller.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Occupied returns a seat → owner map of all live bookings in one row
// of a showing.  Seats absent from the map are free.  The result is a
// point-in-time snapshot; no ordering is promised relative to
// concurrent claims or releases.
func (r *BookingRepo) Occupied(ctx context.Context, date, session string, row int) (map[int]int64, error) {
	const q = `SELECT seat_no, user_id FROM bookings
	           WHERE show_date = ? AND show_time = ? AND row_no = ?`
	rows, err := r.db.QueryContext(ctx, q, date, session, row)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	occupied := make(map[int]int64)
	for rows.Next() {
		var seat int
		var userID int64
		if err := rows.Scan(&seat, &userID); err != nil {
			return nil, err
		}
		occupied[seat] = userID
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return occupied, nil
}

// Claim inserts a booking for the seat key.  When the seat already has
// a live booking the unique key rejects the insert and ErrSeatOccupied
// is returned; the store is left untouched.  Claim never reads before
// writing.
func (r *BookingRepo) Claim(ctx context.Context, date, session string, row, seat int, userID int64) error {
	const q = `INSERT INTO bookings (show_date, show_time, row_no, seat_no, user_id)
	           VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, date, session, row, seat, userID)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDupEntry {
			return ErrSeatOccupied
		}
		return err
	}
	return nil
}

// Release deletes the booking for the seat key, but only when it is
// owned by userID.  When no matching row exists (the seat is free,
// or it belongs to someone else) ErrBookingNotFound is returned and
// nothing changes.
func (r *BookingRepo) Release(ctx context.Context, date, session string, row, seat int, userID int64) error {
	const q = `DELETE FROM bookings
	           WHERE show_date = ? AND show_time = ? AND row_no = ? AND seat_no = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, q, date, session, row, seat, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// ListByUser returns every live booking held by userID, ordered by
// date label, session, row and seat for deterministic output.
func (r *BookingRepo) ListByUser(ctx context.Context, userID int64) ([]model.Booking, error) {
	const q = `SELECT id, show_date, show_time, row_no, seat_no, user_id, created_at
	           FROM bookings WHERE user_id = ?
	           ORDER BY show_date, show_time, row_no, seat_no`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.ShowDate, &b.ShowTime, &b.Row, &b.Seat, &b.UserID, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}
