// Package navigation implements the stateless drill-down machine a
// chat frontend drives: date → session → row → seat and back.  The
// machine keeps no session storage; each intent carries a token with
// the path chosen so far, and every step is re-validated against the
// catalog so stale tokens degrade instead of corrupting state.
package navigation

import (
	"context"

	"github.com/annagav/cinema-booking/internal/catalog"
	"github.com/annagav/cinema-booking/internal/engine"
	"github.com/annagav/cinema-booking/internal/model"
)

// Step names the current depth of the drill-down.
type Step string

const (
	StepRoot    Step = "ROOT"
	StepDate    Step = "DATE"
	StepSession Step = "SESSION"
	StepRow     Step = "ROW"
)

// Token is the in-flight path of selections.  Zero fields mean
// "not chosen yet"; a token with a row but no session is treated the
// same as its deepest consistent prefix.
type Token struct {
	Date    string `json:"date,omitempty"`
	Session string `json:"session,omitempty"`
	Row     int    `json:"row,omitempty"`
}

// Step derives the drill-down depth from the filled token fields.
func (t Token) Step() Step {
	switch {
	case t.Date == "":
		return StepRoot
	case t.Session == "":
		return StepDate
	case t.Row == 0:
		return StepSession
	default:
		return StepRow
	}
}

// IntentKind tags one user intent.  The transport decodes its wire
// format into exactly one of these once, at the boundary.
type IntentKind string

const (
	IntentSelectDate    IntentKind = "SELECT_DATE"
	IntentSelectSession IntentKind = "SELECT_SESSION"
	IntentSelectRow     IntentKind = "SELECT_ROW"
	IntentClaimSeat     IntentKind = "CLAIM_SEAT"
	IntentCancelSeat    IntentKind = "CANCEL_SEAT"
	IntentGoBack        IntentKind = "GO_BACK"
	IntentGoRoot        IntentKind = "GO_ROOT"
)

// Intent is a typed user action with its payload.  Only the field
// matching the kind is consulted.
type Intent struct {
	Kind    IntentKind `json:"kind"`
	Date    string     `json:"date,omitempty"`
	Session string     `json:"session,omitempty"`
	Row     int        `json:"row,omitempty"`
	Seat    int        `json:"seat,omitempty"`
}

// Signal reports why an intent did not advance the machine.  The
// caller renders it; the machine stays on its current step.
type Signal string

const (
	SignalUnknownDate    Signal = "unknown date"
	SignalUnknownSession Signal = "unknown session"
	SignalUnknownRow     Signal = "unknown row"
	SignalUnknownIntent  Signal = "unknown intent"
)

// Result is the machine's answer to one intent: the new token and the
// menu to render for it.  Exactly one of Dates, Sessions, Rows or
// SeatMap is populated, matching Step.  Outcome is set only for claim
// and cancel intents.
type Result struct {
	Token    Token          `json:"token"`
	Step     Step           `json:"step"`
	Dates    []string       `json:"dates,omitempty"`
	Sessions []string       `json:"sessions,omitempty"`
	Rows     []int          `json:"rows,omitempty"`
	SeatMap  *model.RowView `json:"seat_map,omitempty"`
	Signal   Signal         `json:"signal,omitempty"`
	Outcome  engine.Outcome `json:"outcome,omitempty"`
}

// Machine validates tokens against the catalog and delegates seat
// operations to the engine.  It holds no mutable state and is safe
// for concurrent use.
type Machine struct {
	catalog *catalog.Catalog
	engine  *engine.Engine
}

// New returns a Machine over the given catalog and engine.
func New(cat *catalog.Catalog, eng *engine.Engine) *Machine {
	if cat == nil || eng == nil {
		panic("nil catalog or engine passed to navigation.New")
	}
	return &Machine{catalog: cat, engine: eng}
}

// normalize trims a token down to its deepest prefix that is still
// valid against the catalog and venue.  A token naming a date that
// left the schedule collapses to root rather than failing.
func (m *Machine) normalize(t Token) Token {
	if t.Date == "" || len(m.catalog.Sessions(t.Date)) == 0 {
		return Token{}
	}
	if t.Session == "" || !m.catalog.HasSession(t.Date, t.Session) {
		return Token{Date: t.Date}
	}
	if t.Row == 0 || !m.engine.Layout().ValidRow(t.Row) {
		return Token{Date: t.Date, Session: t.Session}
	}
	return t
}

// Apply runs one intent against the token and returns the refreshed
// menu.  Recoverable conditions come back as signals or outcomes;
// only store faults are returned as errors.
func (m *Machine) Apply(ctx context.Context, token Token, actorID int64, intent Intent) (*Result, error) {
	token = m.normalize(token)
	var signal Signal
	var outcome engine.Outcome

	switch intent.Kind {
	case IntentGoRoot:
		token = Token{}
	case IntentGoBack:
		switch token.Step() {
		case StepRow:
			token.Row = 0
		case StepSession:
			token.Session = ""
		default:
			token = Token{}
		}
	case IntentSelectDate:
		if len(m.catalog.Sessions(intent.Date)) == 0 {
			token = Token{}
			signal = SignalUnknownDate
		} else {
			token = Token{Date: intent.Date}
		}
	case IntentSelectSession:
		if token.Date == "" || !m.catalog.HasSession(token.Date, intent.Session) {
			signal = SignalUnknownSession
		} else {
			token = Token{Date: token.Date, Session: intent.Session}
		}
	case IntentSelectRow:
		if token.Step() != StepSession && token.Step() != StepRow {
			signal = SignalUnknownRow
		} else if !m.engine.Layout().ValidRow(intent.Row) {
			token.Row = 0
			signal = SignalUnknownRow
		} else {
			token.Row = intent.Row
		}
	case IntentClaimSeat, IntentCancelSeat:
		if token.Step() != StepRow {
			signal = SignalUnknownRow
			break
		}
		var err error
		if intent.Kind == IntentClaimSeat {
			outcome, err = m.engine.BookSeat(ctx, token.Date, token.Session, token.Row, intent.Seat, actorID)
		} else {
			outcome, err = m.engine.CancelSeat(ctx, token.Date, token.Session, token.Row, intent.Seat, actorID)
		}
		if err != nil {
			return nil, err
		}
	default:
		signal = SignalUnknownIntent
	}

	res, err := m.view(ctx, token, actorID)
	if err != nil {
		return nil, err
	}
	res.Signal = signal
	res.Outcome = outcome
	return res, nil
}

// view builds the menu for the token's step, pulling live occupancy
// from the engine for seat-level views.
func (m *Machine) view(ctx context.Context, token Token, actorID int64) (*Result, error) {
	res := &Result{Token: token, Step: token.Step()}
	switch res.Step {
	case StepRoot:
		res.Dates = m.catalog.Dates()
	case StepDate:
		res.Sessions = m.catalog.Sessions(token.Date)
	case StepSession:
		layout := m.engine.Layout()
		res.Rows = make([]int, 0, layout.Rows)
		for row := 1; row <= layout.Rows; row++ {
			res.Rows = append(res.Rows, row)
		}
	case StepRow:
		seatMap, _, err := m.engine.RowView(ctx, token.Date, token.Session, token.Row, actorID)
		if err != nil {
			return nil, err
		}
		res.SeatMap = seatMap
	}
	return res, nil
}
