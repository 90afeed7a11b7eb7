package engine

import (
	"context"
	"sync"
	"testing"

	"github.com/annagav/cinema-booking/internal/catalog"
	"github.com/annagav/cinema-booking/internal/model"
	"github.com/annagav/cinema-booking/internal/repository"
)

func newTestEngine() *Engine {
	store := repository.NewMemoryStore()
	layout := model.VenueLayout{Rows: 3, SeatsPerRow: 8}
	return New(store, catalog.Default(), layout)
}

func TestConcurrentClaimsExactlyOneWins(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	const actors = 50
	outcomes := make([]Outcome, actors)
	var wg sync.WaitGroup
	for i := 0; i < actors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := e.BookSeat(ctx, "12 June", "10:00", 1, 5, int64(i+1))
			if err != nil {
				t.Errorf("actor %d: unexpected error: %v", i+1, err)
				return
			}
			outcomes[i] = out
		}(i)
	}
	wg.Wait()

	confirmed, taken := 0, 0
	for _, out := range outcomes {
		switch out {
		case OutcomeConfirmed:
			confirmed++
		case OutcomeSeatTaken:
			taken++
		default:
			t.Fatalf("unexpected outcome %q", out)
		}
	}
	if confirmed != 1 || taken != actors-1 {
		t.Fatalf("expected 1 confirmed and %d taken, got %d and %d", actors-1, confirmed, taken)
	}
}

func TestCancelIsIdempotentlySafe(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	if out, err := e.BookSeat(ctx, "12 June", "10:00", 1, 5, 100); err != nil || out != OutcomeConfirmed {
		t.Fatalf("book: outcome=%v err=%v", out, err)
	}
	if out, err := e.CancelSeat(ctx, "12 June", "10:00", 1, 5, 100); err != nil || out != OutcomeConfirmed {
		t.Fatalf("first cancel: outcome=%v err=%v", out, err)
	}
	if out, err := e.CancelSeat(ctx, "12 June", "10:00", 1, 5, 100); err != nil || out != OutcomeNothingToCancel {
		t.Fatalf("second cancel: outcome=%v err=%v", out, err)
	}
}

func TestRowViewClassification(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	if out, err := e.BookSeat(ctx, "12 June", "10:00", 1, 5, 100); err != nil || out != OutcomeConfirmed {
		t.Fatalf("book: outcome=%v err=%v", out, err)
	}

	seatState := func(callerID int64, seat int) model.SeatState {
		t.Helper()
		view, out, err := e.RowView(ctx, "12 June", "10:00", 1, callerID)
		if err != nil || out != OutcomeConfirmed {
			t.Fatalf("row view: outcome=%v err=%v", out, err)
		}
		if len(view.Seats) != 8 {
			t.Fatalf("expected 8 seats in view, got %d", len(view.Seats))
		}
		return view.Seats[seat-1].State
	}

	if got := seatState(100, 5); got != model.SeatOccupiedByCaller {
		t.Fatalf("owner sees seat 5 as %q", got)
	}
	if got := seatState(200, 5); got != model.SeatOccupiedByOther {
		t.Fatalf("other actor sees seat 5 as %q", got)
	}
	if got := seatState(100, 6); got != model.SeatAvailable {
		t.Fatalf("seat 6 should be available, got %q", got)
	}
}

func TestBoundsRejectedWithoutMutation(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	e := New(store, catalog.Default(), model.VenueLayout{Rows: 3, SeatsPerRow: 8})

	cases := []struct {
		name      string
		row, seat int
	}{
		{"row zero", 0, 1},
		{"row past last", 4, 1},
		{"seat zero", 1, 0},
		{"seat past last", 1, 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := e.BookSeat(ctx, "12 June", "10:00", tc.row, tc.seat, 100)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != OutcomeInvalidSelection {
				t.Fatalf("expected invalid selection, got %q", out)
			}
		})
	}

	occupied, err := store.Occupied(ctx, "12 June", "10:00", 1)
	if err != nil {
		t.Fatalf("occupied: %v", err)
	}
	if len(occupied) != 0 {
		t.Fatalf("rejected claims must not mutate the store, found %v", occupied)
	}
}

func TestUnknownCatalogKeysRejected(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	if out, _ := e.BookSeat(ctx, "31 February", "10:00", 1, 1, 100); out != OutcomeInvalidSelection {
		t.Fatalf("unknown date: got %q", out)
	}
	if out, _ := e.BookSeat(ctx, "12 June", "23:59", 1, 1, 100); out != OutcomeInvalidSelection {
		t.Fatalf("unknown session: got %q", out)
	}
	if _, out, _ := e.RowView(ctx, "31 February", "10:00", 1, 100); out != OutcomeInvalidSelection {
		t.Fatalf("row view on unknown date: got %q", out)
	}
}

func TestRebookingOwnSeatReportsTaken(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	if out, _ := e.BookSeat(ctx, "12 June", "10:00", 2, 2, 100); out != OutcomeConfirmed {
		t.Fatalf("book: got %q", out)
	}
	// The claim is not offered for an owned seat, but a stale intent
	// can still arrive; the store's uniqueness check answers it.
	if out, _ := e.BookSeat(ctx, "12 June", "10:00", 2, 2, 100); out != OutcomeSeatTaken {
		t.Fatalf("rebooking own seat: got %q", out)
	}
}

func TestBookCancelScenario(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	if out, _ := e.BookSeat(ctx, "12 June", "10:00", 1, 5, 1); out != OutcomeConfirmed {
		t.Fatalf("actor A book: got %q", out)
	}
	if out, _ := e.BookSeat(ctx, "12 June", "10:00", 1, 5, 2); out != OutcomeSeatTaken {
		t.Fatalf("actor B book: got %q", out)
	}
	if out, _ := e.CancelSeat(ctx, "12 June", "10:00", 1, 5, 1); out != OutcomeConfirmed {
		t.Fatalf("actor A cancel: got %q", out)
	}
	for _, caller := range []int64{1, 2} {
		view, _, err := e.RowView(ctx, "12 June", "10:00", 1, caller)
		if err != nil {
			t.Fatalf("row view: %v", err)
		}
		if got := view.Seats[4].State; got != model.SeatAvailable {
			t.Fatalf("caller %d sees released seat as %q", caller, got)
		}
	}
}
