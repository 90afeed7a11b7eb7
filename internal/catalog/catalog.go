// Package catalog holds the static schedule of showings: the dates on
// sale and, for each date, its session times.  The catalog is built
// once at startup and never mutated, so it needs no synchronization.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Entry is one date on the schedule together with its ordered session
// times.
type Entry struct {
	Date     string   `json:"date"`
	Sessions []string `json:"sessions"`
}

// Catalog answers "which dates exist" and "which sessions run on a
// date".  Unknown keys yield empty results, never errors: a stale or
// malformed selection is a valid terminal state for callers.
type Catalog struct {
	dates    []string
	sessions map[string][]string
}

// New builds a Catalog from schedule entries, preserving their order.
// Entries with an empty date or no sessions are skipped.
func New(entries []Entry) *Catalog {
	c := &Catalog{sessions: make(map[string][]string, len(entries))}
	for _, e := range entries {
		if e.Date == "" || len(e.Sessions) == 0 {
			continue
		}
		if _, ok := c.sessions[e.Date]; ok {
			continue
		}
		c.dates = append(c.dates, e.Date)
		c.sessions[e.Date] = append([]string(nil), e.Sessions...)
	}
	return c
}

// Default returns the built-in schedule used when no schedule file is
// configured.
func Default() *Catalog {
	return New([]Entry{
		{Date: "12 June", Sessions: []string{"10:00", "14:00"}},
		{Date: "13 June", Sessions: []string{"11:00", "15:00"}},
		{Date: "14 June", Sessions: []string{"12:00", "16:00"}},
	})
}

// LoadFile reads a JSON schedule file (an array of entries) and builds
// a Catalog from it.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse schedule %s: %w", path, err)
	}
	c := New(entries)
	if len(c.dates) == 0 {
		return nil, fmt.Errorf("schedule %s contains no showings", path)
	}
	return c, nil
}

// Dates returns the schedule's dates in order.  The returned slice is
// a copy and safe to modify.
func (c *Catalog) Dates() []string {
	return append([]string(nil), c.dates...)
}

// Sessions returns the ordered session times for a date, or an empty
// slice when the date is not on the schedule.  The result is never
// nil so it always renders as a JSON array.
func (c *Catalog) Sessions(date string) []string {
	out := make([]string, len(c.sessions[date]))
	copy(out, c.sessions[date])
	return out
}

// HasSession reports whether the given date/session pair is on the
// schedule.
func (c *Catalog) HasSession(date, session string) bool {
	for _, s := range c.sessions[date] {
		if s == session {
			return true
		}
	}
	return false
}
