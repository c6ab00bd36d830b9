// Package stats computes per-player positional statistics over a corpus of
// decoded hands. Every metric is an independent pure predicate evaluated on
// one hand's ordered action list and folded per player; nothing here touches
// the database, so results are re-derivable from the corpus on every call.
package stats

import (
	"errors"
	"math"
	"sort"

	"github.com/railbird/wrgpt-data/internal/hand"
)

// ErrNoPlayers rejects an empty requested-player set up front.
var ErrNoPlayers = errors.New("stats: at least one player name is required")

// RFIDetail is one raise-first-in hand, itemized for audit/display.
type RFIDetail struct {
	HandID   string `json:"hand_id"`
	Position string `json:"position"`
	Cards    string `json:"cards,omitempty"`
	Amount   int    `json:"amount"`
	Result   int    `json:"result"`
}

// ShowdownDetail is one hand the player showed down.
type ShowdownDetail struct {
	HandID string `json:"hand_id"`
	Cards  string `json:"cards"`
	Board  string `json:"board,omitempty"`
	Result int    `json:"result"`
}

// PlayerStats is the aggregate for one player. It has no persistent
// identity; it is recomputed from the corpus per query.
type PlayerStats struct {
	Name string `json:"name"`

	TotalHands int `json:"total_hands"`

	VPIPHands   int     `json:"vpip_hands"`
	VPIPPercent float64 `json:"vpip_percentage"`

	ThreeBetOpportunities int `json:"threeb_opportunities"`
	ThreeBetCount         int `json:"threeb_count"`

	RFIOpportunities int     `json:"rfi_opportunities"`
	RFICount         int     `json:"rfi_count"`
	RFIPercent       float64 `json:"rfi_percentage"`

	StealOpportunities int `json:"steal_opportunities"`
	StealAttempts      int `json:"steal_attempts"`

	ISOOpportunities int     `json:"iso_opportunities"`
	ISOAttempts      int     `json:"iso_attempts"`
	ISOPercent       float64 `json:"iso_percentage"`

	RiverReached int `json:"river_reached"`

	ShowdownCount        int     `json:"showdown_count"`
	ShowdownPercent      float64 `json:"showdown_percentage"`
	WonAtShowdown        int     `json:"won_at_showdown"`
	WTSDPercent          float64 `json:"wtsd_percentage"`
	WonAtShowdownPercent float64 `json:"w_sd_percentage"`

	ShowdownDetails []ShowdownDetail `json:"showdown_details,omitempty"`
	RFIDetails      []RFIDetail      `json:"rfi_details,omitempty"`
}

// Calculate evaluates every metric for the requested players over the full
// corpus. Players absent from every hand are omitted from the result, never
// an error; an empty player set is rejected with ErrNoPlayers.
func Calculate(corpus []hand.Record, players []string) (map[string]*PlayerStats, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}

	requested := make(map[string]bool, len(players))
	for _, p := range players {
		requested[p] = true
	}

	results := make(map[string]*PlayerStats)

	for i := range corpus {
		h := &corpus[i]
		for _, seat := range h.Seats {
			if !requested[seat.Player] {
				continue
			}
			// A hand counts toward a player only when the log holds at
			// least one action of theirs. A seat with shown cards but no
			// logged action (possible only in a truncated transcript) is
			// excluded from every count, showdowns included.
			if !hasOwnAction(h, seat.Player) {
				continue
			}

			ps := results[seat.Player]
			if ps == nil {
				ps = &PlayerStats{Name: seat.Player}
				results[seat.Player] = ps
			}
			accumulate(ps, h, seat)
		}
	}

	for _, ps := range results {
		finalize(ps)
	}
	return results, nil
}

// accumulate folds one hand into a player's running aggregate.
func accumulate(ps *PlayerStats, h *hand.Record, seat hand.Seat) {
	name := seat.Player
	ps.TotalHands++

	if vpip(h, name) {
		ps.VPIPHands++
	}

	if threeBetOpportunity(h, name) {
		ps.ThreeBetOpportunities++
		if threeBet(h, name) {
			ps.ThreeBetCount++
		}
	}

	if rfiOpportunity(h, name) {
		ps.RFIOpportunities++
		if raise := rfiRaise(h, name); raise != nil {
			ps.RFICount++
			amount := 0
			if raise.Amount != nil {
				amount = *raise.Amount
			}
			ps.RFIDetails = append(ps.RFIDetails, RFIDetail{
				HandID:   h.ID(),
				Position: rfiPosition(h, seat.Number),
				Cards:    seat.CardsShown,
				Amount:   amount,
				Result:   seat.NetResult,
			})
		}
	}

	if stealOpportunity(h, name, seat.Number) {
		ps.StealOpportunities++
		if stealAttempt(h, name) {
			ps.StealAttempts++
		}
	}

	if isoOpportunity(h, name) {
		ps.ISOOpportunities++
		if isoAttempt(h, name) {
			ps.ISOAttempts++
		}
	}

	if riverReached(h, name, seat) {
		ps.RiverReached++
	}

	if seat.CardsShown != "" {
		ps.ShowdownCount++
		if seat.NetResult > 0 {
			ps.WonAtShowdown++
		}
		ps.ShowdownDetails = append(ps.ShowdownDetails, ShowdownDetail{
			HandID: h.ID(),
			Cards:  seat.CardsShown,
			Board:  h.Board,
			Result: seat.NetResult,
		})
	}
}

// finalize computes the percentage fields; a zero denominator yields zero.
// Showdown% and WTSD% intentionally share one formula, matching the
// long-standing behavior of the reports this replaces.
func finalize(ps *PlayerStats) {
	ps.VPIPPercent = percent(ps.VPIPHands, ps.TotalHands)
	ps.ShowdownPercent = percent(ps.ShowdownCount, ps.VPIPHands)
	ps.WTSDPercent = ps.ShowdownPercent
	ps.WonAtShowdownPercent = percent(ps.WonAtShowdown, ps.ShowdownCount)
	ps.RFIPercent = percent(ps.RFICount, ps.TotalHands)
	ps.ISOPercent = percent(ps.ISOAttempts, ps.ISOOpportunities)

	sort.Slice(ps.RFIDetails, func(i, j int) bool {
		return ps.RFIDetails[i].HandID < ps.RFIDetails[j].HandID
	})
	sort.Slice(ps.ShowdownDetails, func(i, j int) bool {
		return ps.ShowdownDetails[i].HandID < ps.ShowdownDetails[j].HandID
	})
}

// percent returns num/den as a percentage rounded to one decimal place.
func percent(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return round1(float64(num) / float64(den) * 100)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// rfiPosition labels the seat for an RFI detail row. A hand with an unknown
// button gets one recomputation attempt from its own blind actions before
// falling back to the raw seat number.
func rfiPosition(h *hand.Record, seatNum int) string {
	button := 0
	switch {
	case h.ButtonSeat != nil:
		button = *h.ButtonSeat
	default:
		if b, ok := hand.DeriveButton(h); ok {
			button = b
		}
	}
	if seatNum > 0 && button > 0 && h.TotalSeats > 0 {
		return PositionName(seatNum, button, h.TotalSeats)
	}
	if seatNum > 0 {
		return "Seat " + itoa(seatNum)
	}
	return "Unknown"
}
