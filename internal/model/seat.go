package model

// SeatState classifies a single seat in a row view from the point of
// view of the requesting actor.
type SeatState string

const (
	// SeatAvailable means no live booking holds the seat.
	SeatAvailable SeatState = "AVAILABLE"
	// SeatOccupiedByCaller means the requesting actor holds the seat.
	// The only action offered for such a seat is cancellation.
	SeatOccupiedByCaller SeatState = "MINE"
	// SeatOccupiedByOther means a different actor holds the seat.
	SeatOccupiedByOther SeatState = "TAKEN"
)

// SeatView is one entry of a row view: a seat number and its state at
// the moment the view was computed.
type SeatView struct {
	Seat  int       `json:"seat"`
	State SeatState `json:"state"`
}

// RowView is a read-only projection of one row's occupancy for a
// specific actor.  It is recomputed from the store on every request
// and may be stale by the time it is rendered; a claim or release is
// re-validated at the moment of action, not at view construction.
type RowView struct {
	ShowDate string     `json:"date"`
	ShowTime string     `json:"time"`
	Row      int        `json:"row"`
	Seats    []SeatView `json:"seats"`
}
