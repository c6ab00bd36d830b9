package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/railbird/wrgpt-data/internal/hand"
)

// LoadHands reconstructs the full persisted corpus as ordered hand records.
// Only committed hands are visible, so this can run concurrently with
// ingestion of unrelated hands.
func (s *Store) LoadHands(ctx context.Context) ([]hand.Record, error) {
	byID := make(map[string]*hand.Record)
	var order []string

	rows, err := s.pool.Query(ctx, "select_hands")
	if err != nil {
		return nil, fmt.Errorf("load hands: %w", err)
	}
	for rows.Next() {
		var (
			id, tableID                    string
			datePlayed                     *time.Time
			smallBlind, bigBlind, button   *int
			totalSeats, totalPot, uncalled int
			board, winner                  *string
		)
		if err := rows.Scan(&id, &tableID, &datePlayed, &smallBlind, &bigBlind,
			&button, &totalSeats, &board, &totalPot, &winner, &uncalled); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan hand: %w", err)
		}
		rec := &hand.Record{
			TableID:        tableID,
			HandNumber:     handNumberFromID(id, tableID),
			SmallBlind:     smallBlind,
			BigBlind:       bigBlind,
			ButtonSeat:     button,
			TotalSeats:     totalSeats,
			Board:          orEmpty(board),
			TotalPot:       totalPot,
			Winner:         orEmpty(winner),
			UncalledAmount: uncalled,
		}
		if datePlayed != nil {
			rec.Date = *datePlayed
		}
		byID[id] = rec
		order = append(order, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load hands: %w", err)
	}

	rows, err = s.pool.Query(ctx, "select_hand_players")
	if err != nil {
		return nil, fmt.Errorf("load hand players: %w", err)
	}
	for rows.Next() {
		var (
			handID, name string
			seat, stack  int
			netResult    *int
			cardsShown   *string
			onVacation   bool
		)
		if err := rows.Scan(&handID, &name, &seat, &stack, &netResult,
			&cardsShown, &onVacation); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan hand player: %w", err)
		}
		rec, ok := byID[handID]
		if !ok {
			continue
		}
		net := 0
		if netResult != nil {
			net = *netResult
		}
		rec.Seats = append(rec.Seats, hand.Seat{
			Number:     seat,
			Player:     name,
			Stack:      stack,
			CardsShown: orEmpty(cardsShown),
			OnVacation: onVacation,
			NetResult:  net,
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load hand players: %w", err)
	}

	rows, err = s.pool.Query(ctx, "select_actions")
	if err != nil {
		return nil, fmt.Errorf("load actions: %w", err)
	}
	for rows.Next() {
		var (
			handID, name, streetName, actionType string
			amount                               *int
			allIn                                bool
			sequence                             int
		)
		if err := rows.Scan(&handID, &name, &streetName, &actionType,
			&amount, &allIn, &sequence); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan action: %w", err)
		}
		rec, ok := byID[handID]
		if !ok {
			continue
		}
		street, err := hand.StreetFromString(streetName)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("hand %s: %w", handID, err)
		}
		rec.Actions = append(rec.Actions, hand.Action{
			Player:   name,
			Street:   street,
			Type:     hand.ActionType(actionType),
			Amount:   amount,
			AllIn:    allIn,
			Sequence: sequence,
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load actions: %w", err)
	}

	corpus := make([]hand.Record, 0, len(order))
	for _, id := range order {
		corpus = append(corpus, *byID[id])
	}
	return corpus, nil
}

// handNumberFromID recovers the numeric suffix of "<table>_<number>".
func handNumberFromID(id, tableID string) int {
	suffix := strings.TrimPrefix(id, tableID+"_")
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0
	}
	return n
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
