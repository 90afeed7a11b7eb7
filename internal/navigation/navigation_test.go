package navigation

import (
	"context"
	"testing"

	"github.com/annagav/cinema-booking/internal/catalog"
	"github.com/annagav/cinema-booking/internal/engine"
	"github.com/annagav/cinema-booking/internal/model"
	"github.com/annagav/cinema-booking/internal/repository"
)

func newTestMachine() *Machine {
	cat := catalog.Default()
	eng := engine.New(repository.NewMemoryStore(), cat, model.VenueLayout{Rows: 3, SeatsPerRow: 8})
	return New(cat, eng)
}

func apply(t *testing.T, m *Machine, token Token, actorID int64, intent Intent) *Result {
	t.Helper()
	res, err := m.Apply(context.Background(), token, actorID, intent)
	if err != nil {
		t.Fatalf("apply %s: %v", intent.Kind, err)
	}
	return res
}

func TestDrillDownToSeats(t *testing.T) {
	m := newTestMachine()

	res := apply(t, m, Token{}, 100, Intent{Kind: IntentSelectDate, Date: "12 June"})
	if res.Step != StepDate || res.Token.Date != "12 June" {
		t.Fatalf("after date: step=%s token=%+v", res.Step, res.Token)
	}
	if len(res.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %v", res.Sessions)
	}

	res = apply(t, m, res.Token, 100, Intent{Kind: IntentSelectSession, Session: "10:00"})
	if res.Step != StepSession {
		t.Fatalf("after session: step=%s", res.Step)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %v", res.Rows)
	}

	res = apply(t, m, res.Token, 100, Intent{Kind: IntentSelectRow, Row: 2})
	if res.Step != StepRow {
		t.Fatalf("after row: step=%s", res.Step)
	}
	if res.SeatMap == nil || len(res.SeatMap.Seats) != 8 {
		t.Fatalf("expected a seat map with 8 seats, got %+v", res.SeatMap)
	}
}

func TestUnknownDateStaysAtRoot(t *testing.T) {
	m := newTestMachine()
	res := apply(t, m, Token{}, 100, Intent{Kind: IntentSelectDate, Date: "31 February"})
	if res.Step != StepRoot {
		t.Fatalf("expected root, got %s", res.Step)
	}
	if res.Signal != SignalUnknownDate {
		t.Fatalf("expected unknown date signal, got %q", res.Signal)
	}
	if len(res.Dates) != 3 {
		t.Fatalf("root view should list the dates, got %v", res.Dates)
	}
}

func TestUnknownSessionAndRowSignals(t *testing.T) {
	m := newTestMachine()

	res := apply(t, m, Token{Date: "12 June"}, 100, Intent{Kind: IntentSelectSession, Session: "23:59"})
	if res.Step != StepDate || res.Signal != SignalUnknownSession {
		t.Fatalf("unknown session: step=%s signal=%q", res.Step, res.Signal)
	}

	res = apply(t, m, Token{Date: "12 June", Session: "10:00"}, 100, Intent{Kind: IntentSelectRow, Row: 9})
	if res.Step != StepSession || res.Signal != SignalUnknownRow {
		t.Fatalf("unknown row: step=%s signal=%q", res.Step, res.Signal)
	}
}

func TestGoBackWalksUp(t *testing.T) {
	m := newTestMachine()
	token := Token{Date: "12 June", Session: "10:00", Row: 1}

	res := apply(t, m, token, 100, Intent{Kind: IntentGoBack})
	if res.Step != StepSession {
		t.Fatalf("back from row: %s", res.Step)
	}
	res = apply(t, m, res.Token, 100, Intent{Kind: IntentGoBack})
	if res.Step != StepDate {
		t.Fatalf("back from session: %s", res.Step)
	}
	res = apply(t, m, res.Token, 100, Intent{Kind: IntentGoBack})
	if res.Step != StepRoot {
		t.Fatalf("back from date: %s", res.Step)
	}
}

func TestGoRootFromAnyDepth(t *testing.T) {
	m := newTestMachine()
	res := apply(t, m, Token{Date: "12 June", Session: "10:00", Row: 3}, 100, Intent{Kind: IntentGoRoot})
	if res.Step != StepRoot || res.Token != (Token{}) {
		t.Fatalf("expected an empty root token, got step=%s token=%+v", res.Step, res.Token)
	}
}

func TestClaimAndCancelStayOnRow(t *testing.T) {
	m := newTestMachine()
	token := Token{Date: "12 June", Session: "10:00", Row: 1}

	res := apply(t, m, token, 100, Intent{Kind: IntentClaimSeat, Seat: 5})
	if res.Step != StepRow || res.Outcome != engine.OutcomeConfirmed {
		t.Fatalf("claim: step=%s outcome=%q", res.Step, res.Outcome)
	}
	if got := res.SeatMap.Seats[4].State; got != model.SeatOccupiedByCaller {
		t.Fatalf("claimed seat shows %q in refreshed view", got)
	}

	res = apply(t, m, token, 200, Intent{Kind: IntentClaimSeat, Seat: 5})
	if res.Outcome != engine.OutcomeSeatTaken {
		t.Fatalf("racing claim: outcome=%q", res.Outcome)
	}
	if got := res.SeatMap.Seats[4].State; got != model.SeatOccupiedByOther {
		t.Fatalf("loser's view shows %q", got)
	}

	res = apply(t, m, token, 100, Intent{Kind: IntentCancelSeat, Seat: 5})
	if res.Outcome != engine.OutcomeConfirmed {
		t.Fatalf("cancel: outcome=%q", res.Outcome)
	}
	if got := res.SeatMap.Seats[4].State; got != model.SeatAvailable {
		t.Fatalf("released seat shows %q", got)
	}
}

func TestStaleTokenCollapses(t *testing.T) {
	m := newTestMachine()

	// A token whose date is not on the schedule falls back to root.
	res := apply(t, m, Token{Date: "31 February", Session: "10:00", Row: 1}, 100, Intent{Kind: IntentGoBack})
	if res.Step != StepRoot {
		t.Fatalf("stale token should collapse to root, got %s", res.Step)
	}

	// A claim against a stale token cannot reach the engine.
	res = apply(t, m, Token{Date: "12 June"}, 100, Intent{Kind: IntentClaimSeat, Seat: 1})
	if res.Signal != SignalUnknownRow || res.Outcome != "" {
		t.Fatalf("claim without a row: signal=%q outcome=%q", res.Signal, res.Outcome)
	}
}
