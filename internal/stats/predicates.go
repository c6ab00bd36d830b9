package stats

import "github.com/railbird/wrgpt-data/internal/hand"

// The predicates below quantify over a player's preflop actions using
// sequence-number comparisons, so each one is independently testable on a
// single hand's ordered action list.

// hasOwnAction reports whether the player has at least one recorded action
// in the hand. Seated players with no action of their own do not count
// toward total hands.
func hasOwnAction(h *hand.Record, player string) bool {
	for _, a := range h.Actions {
		if a.Player == player {
			return true
		}
	}
	return false
}

// vpip: the player called, raised, or bet a positive amount preflop, or
// posted a blind and later voluntarily checked/called/raised preflop in the
// same hand. A blind posting alone never counts.
func vpip(h *hand.Record, player string) bool {
	postedBlind := false
	voluntary := false
	for _, a := range h.Actions {
		if a.Player != player || a.Street != hand.Preflop {
			continue
		}
		switch a.Type {
		case hand.ActionCall, hand.ActionRaise:
			return true
		case hand.ActionBet:
			if a.Amount != nil && *a.Amount > 0 {
				return true
			}
		case hand.ActionBlind:
			postedBlind = true
		case hand.ActionCheck:
			voluntary = true
		}
	}
	return postedBlind && voluntary
}

// priorBy reports whether an action of one of the given types, by a player
// other than exclude (or anyone when exclude is empty), occurs preflop
// strictly before sequence seq.
func priorBy(h *hand.Record, seq int, exclude string, types ...hand.ActionType) bool {
	for _, a := range h.Actions {
		if a.Sequence >= seq || a.Street != hand.Preflop {
			continue
		}
		if exclude != "" && a.Player == exclude {
			continue
		}
		for _, t := range types {
			if a.Type == t {
				return true
			}
		}
	}
	return false
}

// threeBetOpportunity: a different player already raised preflop before one
// of the player's own preflop actions.
func threeBetOpportunity(h *hand.Record, player string) bool {
	for _, a := range h.Actions {
		if a.Player != player || a.Street != hand.Preflop {
			continue
		}
		if priorBy(h, a.Sequence, player, hand.ActionRaise) {
			return true
		}
	}
	return false
}

// threeBet: the player's own preflop raise came after another player's raise.
func threeBet(h *hand.Record, player string) bool {
	for _, a := range h.Actions {
		if a.Player != player || a.Street != hand.Preflop || a.Type != hand.ActionRaise {
			continue
		}
		if priorBy(h, a.Sequence, player, hand.ActionRaise) {
			return true
		}
	}
	return false
}

// rfiOpportunity: the player reached a preflop decision point with no prior
// call or raise by anyone — the action folded to them.
func rfiOpportunity(h *hand.Record, player string) bool {
	for _, a := range h.Actions {
		if a.Player != player || a.Street != hand.Preflop {
			continue
		}
		if !priorBy(h, a.Sequence, "", hand.ActionCall, hand.ActionRaise) {
			return true
		}
	}
	return false
}

// rfiRaise returns the player's raise-first-in action when they took the
// opportunity, or nil.
func rfiRaise(h *hand.Record, player string) *hand.Action {
	for i, a := range h.Actions {
		if a.Player != player || a.Street != hand.Preflop || a.Type != hand.ActionRaise {
			continue
		}
		if !priorBy(h, a.Sequence, "", hand.ActionCall, hand.ActionRaise) {
			return &h.Actions[i]
		}
	}
	return nil
}

// stealSeats returns the three seats immediately before the small blind in
// table order (hijack, cutoff, button), each wrapped into [1, total].
func stealSeats(sbSeat, total int) [3]int {
	wrap := func(n int) int {
		if n <= 0 {
			return n + total
		}
		return n
	}
	return [3]int{wrap(sbSeat - 3), wrap(sbSeat - 2), wrap(sbSeat - 1)}
}

// stealOpportunity: the player sits in the hijack, cutoff, or button seat
// relative to the small blind, and reached a preflop decision point with no
// preceding call or raise.
func stealOpportunity(h *hand.Record, player string, seatNum int) bool {
	sbPlayer, ok := smallBlindOf(h)
	if !ok {
		return false
	}
	sbSeat, ok := h.SeatOf(sbPlayer)
	if !ok || h.TotalSeats == 0 {
		return false
	}
	late := stealSeats(sbSeat.Number, h.TotalSeats)
	if seatNum != late[0] && seatNum != late[1] && seatNum != late[2] {
		return false
	}
	return rfiOpportunity(h, player)
}

// stealAttempt: a steal opportunity where the player raised.
func stealAttempt(h *hand.Record, player string) bool {
	return rfiRaise(h, player) != nil
}

// limpBefore reports whether a different player called preflop before
// sequence seq with no raise before that call (a limper).
func limpBefore(h *hand.Record, seq int, player string) bool {
	for _, c := range h.Actions {
		if c.Sequence >= seq || c.Street != hand.Preflop {
			continue
		}
		if c.Type != hand.ActionCall || c.Player == player {
			continue
		}
		if !priorBy(h, c.Sequence, "", hand.ActionRaise) {
			return true
		}
	}
	return false
}

// isoOpportunity: a limper acted before one of the player's preflop actions.
func isoOpportunity(h *hand.Record, player string) bool {
	for _, a := range h.Actions {
		if a.Player != player || a.Street != hand.Preflop {
			continue
		}
		if limpBefore(h, a.Sequence, player) {
			return true
		}
	}
	return false
}

// isoAttempt: the player's own preflop raise came after a limp.
func isoAttempt(h *hand.Record, player string) bool {
	for _, a := range h.Actions {
		if a.Player != player || a.Street != hand.Preflop || a.Type != hand.ActionRaise {
			continue
		}
		if limpBefore(h, a.Sequence, player) {
			return true
		}
	}
	return false
}

// riverReached: the player acted on the river, or showed cards. The
// cards-shown half is an approximation kept for report continuity.
func riverReached(h *hand.Record, player string, seat hand.Seat) bool {
	if seat.CardsShown != "" {
		return true
	}
	for _, a := range h.Actions {
		if a.Player == player && a.Street == hand.River {
			return true
		}
	}
	return false
}

// smallBlindOf identifies the small blind poster: the blind action with the
// minimum amount, not the first blind in table order.
func smallBlindOf(h *hand.Record) (string, bool) {
	player := ""
	minAmount := 0
	for _, a := range h.Actions {
		if a.Type != hand.ActionBlind || a.Amount == nil {
			continue
		}
		if player == "" || *a.Amount < minAmount {
			player = a.Player
			minAmount = *a.Amount
		}
	}
	return player, player != ""
}
