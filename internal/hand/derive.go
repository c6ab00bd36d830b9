package hand

// DeriveButton computes the button seat from a record's blind actions: the
// small blind is the blind action with the minimum amount, and the button is
// the seat immediately before it, wrapping to the highest seat when the
// small blind sits in seat 1. ok is false when the record has no usable
// blind action or the blind poster holds no seat.
func DeriveButton(r *Record) (button int, ok bool) {
	sbPlayer, found := smallBlindPlayer(r)
	if !found {
		return 0, false
	}
	seat, found := r.SeatOf(sbPlayer)
	if !found || r.TotalSeats == 0 {
		return 0, false
	}
	if seat.Number > 1 {
		return seat.Number - 1, true
	}
	return r.TotalSeats, true
}

// smallBlindPlayer returns the poster of the minimum-amount blind.
func smallBlindPlayer(r *Record) (string, bool) {
	player := ""
	minAmount := 0
	for _, a := range r.Actions {
		if a.Type != ActionBlind || a.Amount == nil {
			continue
		}
		if player == "" || *a.Amount < minAmount {
			player = a.Player
			minAmount = *a.Amount
		}
	}
	return player, player != ""
}

// Enrich fills in the derived fields of a freshly decoded record: blind
// amounts, button seat, and per-seat net results. When the hand has no blind
// actions the blind and button fields stay nil; the hand is still storable
// but is excluded from position-dependent statistics.
//
// Enrich runs exactly once per record, before the record is persisted.
func Enrich(r *Record) {
	var blinds []int
	for _, a := range r.Actions {
		if a.Type == ActionBlind && a.Amount != nil {
			blinds = append(blinds, *a.Amount)
		}
	}

	if len(blinds) > 0 {
		small, big := blinds[0], blinds[0]
		for _, b := range blinds[1:] {
			if b < small {
				small = b
			}
			if b > big {
				big = b
			}
		}
		r.SmallBlind = &small
		r.BigBlind = &big

		if button, ok := DeriveButton(r); ok {
			r.ButtonSeat = &button
		}
	}

	// Net result: winner takes the pot, everyone pays their own wagers.
	// Side pots and split pots are not modeled.
	wagered := make(map[string]int, len(r.Seats))
	for _, a := range r.Actions {
		if a.Amount != nil {
			wagered[a.Player] += *a.Amount
		}
	}
	for i := range r.Seats {
		net := -wagered[r.Seats[i].Player]
		if r.Seats[i].Player == r.Winner {
			net += r.TotalPot
		}
		r.Seats[i].NetResult = net
	}
}
