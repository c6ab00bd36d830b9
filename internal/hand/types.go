// Package hand decodes WRGPT hand-history transcripts into structured
// records and derives the facts the text implies but never states
// (button seat, blind amounts, per-seat net results).
package hand

import (
	"fmt"
	"time"
)

// Street identifies a betting round. Streets only move forward within a hand.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

var streetNames = [...]string{"preflop", "flop", "turn", "river"}

func (s Street) String() string {
	if s < Preflop || s > River {
		return fmt.Sprintf("street(%d)", int(s))
	}
	return streetNames[s]
}

// StreetFromString maps a stored street name back to its Street value.
func StreetFromString(name string) (Street, error) {
	for i, n := range streetNames {
		if n == name {
			return Street(i), nil
		}
	}
	return Preflop, fmt.Errorf("unknown street %q", name)
}

// ActionType is the recognized verb of an action line.
type ActionType string

const (
	ActionFold         ActionType = "fold"
	ActionCheck        ActionType = "check"
	ActionBet          ActionType = "bet"
	ActionRaise        ActionType = "raise"
	ActionCall         ActionType = "call"
	ActionBlind        ActionType = "blind"
	ActionVacationFold ActionType = "vacation_fold"
)

// Action is one timestamped move by one player. Sequence numbers are unique
// and strictly increasing within a hand, and reflect real chronological
// order; blind actions always sequence before any non-blind action.
type Action struct {
	Player    string
	Street    Street
	Type      ActionType
	Amount    *int // nil when the verb carries no amount
	AllIn     bool
	Sequence  int
	Timestamp time.Time
}

// Seat is one row of the seat table plus facts derived after decoding.
type Seat struct {
	Number     int
	Player     string
	Stack      int
	CardsShown string // empty when the player never showed
	OnVacation bool
	NetResult  int // derived by Enrich
}

// Record is one decoded hand. Fields marked derived are nil/zero until
// Enrich runs; a Record is written to the store exactly once and never
// mutated afterwards.
type Record struct {
	TableID    string
	HandNumber int
	Day        string

	Date time.Time // timestamp of the first action, zero if no actions

	SmallBlind *int // derived: min blind amount
	BigBlind   *int // derived: max blind amount
	ButtonSeat *int // derived: seat before the small blind, wrapped

	TotalSeats int
	Board      string
	TotalPot   int
	Winner     string

	UncalledAmount int
	UncalledTo     string

	Seats   []Seat
	Actions []Action
}

// ID is the hand's stable identifier, unique across the corpus.
func (r *Record) ID() string {
	return fmt.Sprintf("%s_%d", r.TableID, r.HandNumber)
}

// SeatOf returns the seat held by the named player.
func (r *Record) SeatOf(player string) (Seat, bool) {
	for _, s := range r.Seats {
		if s.Player == player {
			return s, true
		}
	}
	return Seat{}, false
}

// ParseError is the single fatal decode failure: the header that carries the
// table id and hand number could not be located. Every other malformation is
// recovered locally by skipping the offending line.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parse hand: " + e.Reason
}
