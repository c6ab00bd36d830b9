package stats

import "strconv"

// Position labels by offset from the button for full-ring tables (N >= 9).
var fullRingPositions = map[int]string{
	3: "UTG", 4: "UTG+1", 5: "MP1", 6: "MP2", 7: "HJ", 8: "CO",
}

// Position labels by offset from the button for 6- to 8-handed tables.
var shortHandedPositions = map[int]string{
	3: "UTG", 4: "MP", 5: "CO",
}

// PositionName converts an absolute seat to a relative position label.
// The offset is (seat - buttonSeat) mod totalSeats: 0 is the button, 1 the
// small blind, 2 the big blind; later offsets map by table size, and any
// unmapped offset renders as "+<offset>".
func PositionName(seat, buttonSeat, totalSeats int) string {
	offset := ((seat-buttonSeat)%totalSeats + totalSeats) % totalSeats

	switch offset {
	case 0:
		return "BTN"
	case 1:
		return "SB"
	case 2:
		return "BB"
	}

	var names map[int]string
	switch {
	case totalSeats >= 9:
		names = fullRingPositions
	case totalSeats >= 6:
		names = shortHandedPositions
	}
	if name, ok := names[offset]; ok {
		return name
	}
	return "+" + itoa(offset)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
