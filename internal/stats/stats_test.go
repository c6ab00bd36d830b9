package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railbird/wrgpt-data/internal/hand"
)

func intp(n int) *int { return &n }

func act(seq int, player string, typ hand.ActionType, amount int, street hand.Street) hand.Action {
	a := hand.Action{Player: player, Type: typ, Street: street, Sequence: seq}
	if amount >= 0 {
		a.Amount = intp(amount)
	}
	return a
}

func seats6() []hand.Seat {
	return []hand.Seat{
		{Number: 1, Player: "P1"},
		{Number: 2, Player: "P2"},
		{Number: 3, Player: "P3"},
		{Number: 4, Player: "P4"},
		{Number: 5, Player: "P5"},
		{Number: 6, Player: "P6"},
	}
}

// handA: P4 opens, P6 three-bets, P4 calls and gives up on the flop.
func handA() hand.Record {
	return hand.Record{
		TableID:    "t",
		HandNumber: 1,
		TotalSeats: 6,
		Seats:      seats6(),
		Actions: []hand.Action{
			act(1, "P1", hand.ActionBlind, 100, hand.Preflop),
			act(2, "P2", hand.ActionBlind, 200, hand.Preflop),
			act(3, "P3", hand.ActionFold, -1, hand.Preflop),
			act(4, "P4", hand.ActionRaise, 300, hand.Preflop),
			act(5, "P5", hand.ActionFold, -1, hand.Preflop),
			act(6, "P6", hand.ActionRaise, 600, hand.Preflop),
			act(7, "P1", hand.ActionFold, -1, hand.Preflop),
			act(8, "P2", hand.ActionFold, -1, hand.Preflop),
			act(9, "P4", hand.ActionCall, 300, hand.Preflop),
			act(10, "P4", hand.ActionCheck, -1, hand.Flop),
			act(11, "P6", hand.ActionBet, 400, hand.Flop),
			act(12, "P4", hand.ActionFold, -1, hand.Flop),
		},
		Winner: "P6",
	}
}

// handB: P3 limps, P4 isolates and takes it down, showing aces.
func handB() hand.Record {
	seats := seats6()
	seats[3].CardsShown = "As Ad"
	seats[3].NetResult = 500
	return hand.Record{
		TableID:    "t",
		HandNumber: 2,
		TotalSeats: 6,
		Seats:      seats,
		Actions: []hand.Action{
			act(1, "P1", hand.ActionBlind, 100, hand.Preflop),
			act(2, "P2", hand.ActionBlind, 200, hand.Preflop),
			act(3, "P3", hand.ActionCall, 200, hand.Preflop),
			act(4, "P4", hand.ActionRaise, 600, hand.Preflop),
			act(5, "P5", hand.ActionFold, -1, hand.Preflop),
			act(6, "P6", hand.ActionFold, -1, hand.Preflop),
			act(7, "P1", hand.ActionFold, -1, hand.Preflop),
			act(8, "P2", hand.ActionFold, -1, hand.Preflop),
			act(9, "P3", hand.ActionFold, -1, hand.Preflop),
		},
		Winner: "P4",
	}
}

func TestCalculate(t *testing.T) {
	corpus := []hand.Record{handA(), handB()}

	all, err := Calculate(corpus, []string{"P4", "P6", "P1"})
	require.NoError(t, err)
	require.Len(t, all, 3)

	p4 := all["P4"]
	require.NotNil(t, p4)
	assert.Equal(t, 2, p4.TotalHands)
	assert.Equal(t, 2, p4.VPIPHands)
	assert.Equal(t, 100.0, p4.VPIPPercent)

	// Hand A: P6's three-bet arrives before P4's call.
	assert.Equal(t, 1, p4.ThreeBetOpportunities)
	assert.Equal(t, 0, p4.ThreeBetCount)

	// Only hand A folds to P4; hand B has a limper in front.
	assert.Equal(t, 1, p4.RFIOpportunities)
	assert.Equal(t, 1, p4.RFICount)
	assert.Equal(t, 50.0, p4.RFIPercent)

	// Seat 4 is in the steal window when the small blind sits in seat 1.
	assert.Equal(t, 1, p4.StealOpportunities)
	assert.Equal(t, 1, p4.StealAttempts)

	assert.Equal(t, 1, p4.ISOOpportunities)
	assert.Equal(t, 1, p4.ISOAttempts)
	assert.Equal(t, 100.0, p4.ISOPercent)

	// Shown cards count as reaching the river and as a showdown.
	assert.Equal(t, 1, p4.RiverReached)
	assert.Equal(t, 1, p4.ShowdownCount)
	assert.Equal(t, 50.0, p4.ShowdownPercent)
	assert.Equal(t, p4.ShowdownPercent, p4.WTSDPercent)
	assert.Equal(t, 1, p4.WonAtShowdown)
	assert.Equal(t, 100.0, p4.WonAtShowdownPercent)

	require.Len(t, p4.RFIDetails, 1)
	detail := p4.RFIDetails[0]
	assert.Equal(t, "t_1", detail.HandID)
	assert.Equal(t, "MP", detail.Position)
	assert.Equal(t, 300, detail.Amount)

	require.Len(t, p4.ShowdownDetails, 1)
	assert.Equal(t, "t_2", p4.ShowdownDetails[0].HandID)
	assert.Equal(t, "As Ad", p4.ShowdownDetails[0].Cards)
	assert.Equal(t, 500, p4.ShowdownDetails[0].Result)

	p6 := all["P6"]
	require.NotNil(t, p6)
	assert.Equal(t, 1, p6.ThreeBetOpportunities)
	assert.Equal(t, 1, p6.ThreeBetCount)
	assert.Equal(t, 0, p6.RFIOpportunities)
	assert.Equal(t, 0, p6.StealOpportunities)

	// Blind post then fold is not voluntary money.
	p1 := all["P1"]
	require.NotNil(t, p1)
	assert.Equal(t, 0, p1.VPIPHands)
	assert.Equal(t, 0.0, p1.VPIPPercent)
}

func TestCalculateNoPlayers(t *testing.T) {
	_, err := Calculate([]hand.Record{handA()}, nil)
	assert.ErrorIs(t, err, ErrNoPlayers)
}

func TestCalculateAbsentPlayerOmitted(t *testing.T) {
	all, err := Calculate([]hand.Record{handA()}, []string{"Nobody"})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCalculateSkipsSeatedWithoutAction(t *testing.T) {
	h := handA()
	h.Seats = append(h.Seats, hand.Seat{Number: 7, Player: "Lurker"})
	h.TotalSeats = 7

	all, err := Calculate([]hand.Record{h}, []string{"Lurker", "P4"})
	require.NoError(t, err)
	assert.Nil(t, all["Lurker"])
	assert.NotNil(t, all["P4"])
}

func TestVPIPBlindCheck(t *testing.T) {
	h := hand.Record{
		TotalSeats: 2,
		Seats: []hand.Seat{
			{Number: 1, Player: "SB"},
			{Number: 2, Player: "BB"},
		},
		Actions: []hand.Action{
			act(1, "SB", hand.ActionBlind, 50, hand.Preflop),
			act(2, "BB", hand.ActionBlind, 100, hand.Preflop),
			act(3, "SB", hand.ActionCall, 50, hand.Preflop),
			act(4, "BB", hand.ActionCheck, -1, hand.Preflop),
		},
	}

	assert.True(t, vpip(&h, "SB"))
	// A big blind checking its option still chose to continue.
	assert.True(t, vpip(&h, "BB"))
}

func TestStealSeats(t *testing.T) {
	assert.Equal(t, [3]int{4, 5, 6}, stealSeats(1, 6))
	assert.Equal(t, [3]int{9, 1, 2}, stealSeats(3, 9))
	assert.Equal(t, [3]int{6, 7, 8}, stealSeats(9, 9))
}

func TestPositionName(t *testing.T) {
	tests := []struct {
		seat, button, total int
		want                string
	}{
		{5, 5, 9, "BTN"},
		{6, 5, 9, "SB"},
		{7, 5, 9, "BB"},
		{8, 5, 9, "UTG"},
		{9, 5, 9, "UTG+1"},
		{1, 5, 9, "MP1"},
		{4, 5, 9, "CO"},
		{3, 6, 6, "UTG"},
		{4, 6, 6, "MP"},
		{5, 6, 6, "CO"},
		{4, 1, 5, "+3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PositionName(tt.seat, tt.button, tt.total),
			"seat %d button %d total %d", tt.seat, tt.button, tt.total)
	}
}

func TestRFIPositionFallbacks(t *testing.T) {
	// Button derivable from the blinds.
	h := handA()
	assert.Equal(t, "MP", rfiPosition(&h, 4))

	// Explicit button wins over derivation.
	button := 4
	h.ButtonSeat = &button
	assert.Equal(t, "BTN", rfiPosition(&h, 4))

	// No blinds at all falls back to the raw seat.
	bare := hand.Record{TotalSeats: 6, Seats: seats6()}
	assert.Equal(t, "Seat 4", rfiPosition(&bare, 4))
	assert.Equal(t, "Unknown", rfiPosition(&bare, 0))
}
