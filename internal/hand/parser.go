package hand

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Transcript region markers.
const (
	seatTableMarker    = "+-+----------------------------+"
	historyStartMarker = "! History of this hand:"
	handOverMarker     = "! Hand over"
	tableBorderPrefix  = "+-+----"
)

const timestampLayout = "01/02/06 15:04:05"

var (
	headerRe  = regexp.MustCompile(`Subject: \[([^\]]+)\]\[hand:(\d+)\]`)
	dayRe     = regexp.MustCompile(`! Table [^,]+, Hand \d+, Day (\d+)`)
	seatRowRe = regexp.MustCompile(`\s*(\d+)\|([DV>\s])\s*([^|]+?)\s*\|\s*(\d+,?\d*)\s*\|\s*(\d*,?\d*)\s*\|\s*([^|]*?)\s*\|`)

	eventRe   = regexp.MustCompile(`! (\d{2}/\d{2}/\d{2} \d{2}:\d{2}:\d{2})! ([^!\n]*)`)
	blindRe   = regexp.MustCompile(`! [^!\n]+! ([^!\n]+) blinds \$(\d+,?\d*)`)
	dealingRe = regexp.MustCompile(`! (\d{2}/\d{2}/\d{2} \d{2}:\d{2}:\d{2})! Dealing`)

	raiseIncrRe  = regexp.MustCompile(`raises \$(\d+,?\d*) to \$(\d+,?\d*) total`)
	raiseTotalRe = regexp.MustCompile(`to \$(\d+,?\d*) total`)
	currencyRe   = regexp.MustCompile(`\$(\d+,?\d*)`)

	shownCardsRe = regexp.MustCompile(`! ([^!\n]+?)\s+has:\s+([^\n]+)`)
	winnerRe     = regexp.MustCompile(`! ([^!\n]+?) wins \$(\d+,?\d*)`)
	boardRe      = regexp.MustCompile(`! Hand over, current board is:  ([^\n]+)`)
	uncalledRe   = regexp.MustCompile(`! Uncalled bet \(\$(\d+,?\d*)\) returned to ([^!\n]+)`)
)

// Parser decodes one hand transcript at a time. It holds no per-hand state;
// the same Parser can decode any number of hands.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a Parser that logs skipped lines to the given logger.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// CleanName strips at most one leading two-character status marker
// ("> ", "D ", "V ") and trims whitespace. Cleaning an already-clean name
// is a no-op, so names that genuinely start with those letters survive.
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	for _, marker := range []string{"> ", "D ", "V "} {
		if strings.HasPrefix(name, marker) {
			name = name[2:]
			break
		}
	}
	return strings.TrimSpace(name)
}

// parseAmount converts a currency figure like "1,500" to an integer.
func parseAmount(s string) (int, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Parse decodes one raw transcript into an un-enriched Record. A missing
// header (table id + hand number) is the only fatal failure; malformed seat
// rows and action lines are logged and skipped.
func (p *Parser) Parse(text string) (*Record, error) {
	header := headerRe.FindStringSubmatch(text)
	if header == nil {
		return nil, &ParseError{Reason: "cannot locate hand header"}
	}

	handNumber, err := strconv.Atoi(header[2])
	if err != nil {
		return nil, &ParseError{Reason: "invalid hand number " + header[2]}
	}

	rec := &Record{
		TableID:    header[1],
		HandNumber: handNumber,
	}

	if day := dayRe.FindStringSubmatch(text); day != nil {
		rec.Day = day[1]
	}

	rec.Seats = p.parseSeats(text)
	rec.Actions = p.parseActions(text)

	if len(rec.Actions) > 0 {
		rec.Date = rec.Actions[0].Timestamp
	}
	for _, s := range rec.Seats {
		if s.Number > rec.TotalSeats {
			rec.TotalSeats = s.Number
		}
	}

	if m := boardRe.FindStringSubmatch(text); m != nil {
		rec.Board = strings.TrimSpace(m[1])
	}

	// Shown cards attach to the seat of the named player.
	for _, m := range shownCardsRe.FindAllStringSubmatch(text, -1) {
		name := CleanName(m[1])
		cards := strings.TrimSpace(m[2])
		for i := range rec.Seats {
			if rec.Seats[i].Player == name {
				rec.Seats[i].CardsShown = cards
			}
		}
	}

	if m := winnerRe.FindStringSubmatch(text); m != nil {
		rec.Winner = CleanName(m[1])
		if pot, ok := parseAmount(m[2]); ok {
			rec.TotalPot = pot
		}
	}

	if m := uncalledRe.FindStringSubmatch(text); m != nil {
		if amt, ok := parseAmount(m[1]); ok {
			rec.UncalledAmount = amt
		}
		rec.UncalledTo = CleanName(m[2])
	}

	p.logger.Debug("decoded hand",
		"hand", rec.ID(), "seats", len(rec.Seats), "actions", len(rec.Actions))
	return rec, nil
}

// parseSeats reads the fixed-layout seat table between the table border and
// the history marker. A missing region yields an empty seat list; downstream
// must tolerate that.
func (p *Parser) parseSeats(text string) []Seat {
	start := strings.Index(text, seatTableMarker)
	end := strings.Index(text, historyStartMarker)
	if start == -1 || end == -1 || end < start {
		return nil
	}
	region := text[start:end]

	var order []string
	byName := make(map[string]Seat)

	for _, m := range seatRowRe.FindAllStringSubmatch(region, -1) {
		seatNum, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		marker := strings.TrimSpace(m[2])
		name := CleanName(m[3])
		if name == "" || strings.HasPrefix(name, "Name") {
			continue // column header row
		}

		stack := 0
		if s := strings.TrimSpace(m[4]); s != "" {
			if n, ok := parseAmount(s); ok {
				stack = n
			}
		}

		status := strings.TrimSpace(m[6])
		vacation := marker == "V" ||
			strings.Contains(status, "<AWOL>") ||
			strings.Contains(status, "<Gone>") ||
			strings.Contains(strings.ToLower(status), "on vacation")

		if _, seen := byName[name]; !seen {
			order = append(order, name)
		}
		byName[name] = Seat{
			Number:     seatNum,
			Player:     name,
			Stack:      stack,
			OnVacation: vacation,
		}
	}

	seats := make([]Seat, 0, len(order))
	for _, name := range order {
		seats = append(seats, byName[name])
	}
	return seats
}

// streetCursor is the explicit decode state threaded through the event fold:
// the current street and the bet amount outstanding on that street. Street
// transitions reset the outstanding bet to zero.
type streetCursor struct {
	street  Street
	prevBet int
}

// parseActions scans timestamped event lines between the history markers.
// Blind actions are extracted first and sequenced before everything else.
func (p *Parser) parseActions(text string) []Action {
	start := strings.Index(text, historyStartMarker)
	if start == -1 {
		return nil
	}
	end := strings.Index(text, handOverMarker)
	if end == -1 {
		if i := strings.Index(text[start:], tableBorderPrefix); i != -1 {
			end = start + i
		} else {
			end = len(text)
		}
	}
	history := text[start:end]

	cur := streetCursor{street: Preflop}
	var actions []Action

	// Blinds carry no timestamp of their own; they borrow the nearest
	// "Dealing" marker. Without one the blind lines are unusable.
	if m := dealingRe.FindStringSubmatch(history); m != nil {
		dealt, err := time.Parse(timestampLayout, m[1])
		if err == nil {
			for _, b := range blindRe.FindAllStringSubmatch(history, -1) {
				amount, ok := parseAmount(b[2])
				if !ok {
					continue
				}
				amt := amount
				actions = append(actions, Action{
					Player:    CleanName(b[1]),
					Street:    Preflop,
					Type:      ActionBlind,
					Amount:    &amt,
					Timestamp: dealt,
				})
				cur.prevBet = amount
			}
		}
	}

	for _, m := range eventRe.FindAllStringSubmatch(history, -1) {
		line := m[2]

		// Chat and decoration lines.
		if strings.Contains(line, `"`) || strings.Contains(line, "--") || strings.Contains(line, "_") {
			continue
		}

		ts, err := time.Parse(timestampLayout, m[1])
		if err != nil {
			p.logger.Warn("skipping malformed action line", "line", line, "error", err)
			continue
		}

		if next, ok := advanceStreet(cur.street, line); ok {
			cur.street = next
			cur.prevBet = 0
			continue
		}

		if strings.Contains(line, "Dealing") || strings.Contains(line, "Pot right") {
			continue
		}

		if a, ok := p.parseEvent(line, ts, &cur); ok {
			actions = append(actions, a)
		}
	}

	for i := range actions {
		actions[i].Sequence = i + 1
	}
	return actions
}

// advanceStreet reports the street transition a marker line causes, if any.
// "Flopped cards:" opens the flop; each later "Flopped card:" advances one
// street.
func advanceStreet(current Street, line string) (Street, bool) {
	switch {
	case strings.Contains(line, "Flopped cards:"):
		return Flop, true
	case strings.Contains(line, "Flopped card:") && current == Flop:
		return Turn, true
	case strings.Contains(line, "Flopped card:") && current == Turn:
		return River, true
	}
	return current, false
}

// parseEvent recognizes one action verb and resolves its amount against the
// cursor. Unrecognized verbs report ok=false and are silently skipped.
func (p *Parser) parseEvent(line string, ts time.Time, cur *streetCursor) (Action, bool) {
	lower := strings.ToLower(line)
	allIn := strings.Contains(lower, "all in")

	if strings.Contains(lower, "is back from vacation") {
		return Action{}, false
	}

	if i := strings.Index(lower, "is on vacation and folds"); i != -1 {
		return Action{
			Player:    CleanName(line[:i]),
			Street:    cur.street,
			Type:      ActionVacationFold,
			Timestamp: ts,
		}, true
	}

	switch {
	case strings.Contains(line, "folds"):
		return Action{
			Player:    CleanName(strings.SplitN(line, " folds", 2)[0]),
			Street:    cur.street,
			Type:      ActionFold,
			Timestamp: ts,
		}, true

	case strings.Contains(line, "calls"):
		return Action{
			Player:    CleanName(strings.SplitN(line, " calls", 2)[0]),
			Street:    cur.street,
			Type:      ActionCall,
			Amount:    resolveCallAmount(line, cur.prevBet),
			AllIn:     allIn,
			Timestamp: ts,
		}, true

	case strings.Contains(line, "raises"):
		amount := resolveRaiseAmount(line, cur.prevBet)
		if amount != nil {
			cur.prevBet = *amount
		}
		return Action{
			Player:    CleanName(strings.SplitN(line, " raises", 2)[0]),
			Street:    cur.street,
			Type:      ActionRaise,
			Amount:    amount,
			AllIn:     allIn,
			Timestamp: ts,
		}, true

	case strings.Contains(line, "checks"):
		return Action{
			Player:    CleanName(strings.SplitN(line, " checks", 2)[0]),
			Street:    cur.street,
			Type:      ActionCheck,
			Timestamp: ts,
		}, true

	case strings.Contains(line, "bets"):
		amount := literalAmount(line)
		if amount != nil {
			cur.prevBet = *amount
		}
		return Action{
			Player:    CleanName(strings.SplitN(line, " bets", 2)[0]),
			Street:    cur.street,
			Type:      ActionBet,
			Amount:    amount,
			AllIn:     allIn,
			Timestamp: ts,
		}, true
	}

	return Action{}, false
}

// resolveRaiseAmount prefers the explicit incremental figure
// ("raises $X to $Y total" => X). With only "to $Y total" the increment is
// Y minus the outstanding bet. Failing both, any literal figure on the line.
func resolveRaiseAmount(line string, prevBet int) *int {
	if m := raiseIncrRe.FindStringSubmatch(line); m != nil {
		if x, ok := parseAmount(m[1]); ok {
			return &x
		}
	}
	if m := raiseTotalRe.FindStringSubmatch(line); m != nil {
		if y, ok := parseAmount(m[1]); ok {
			diff := y - prevBet
			return &diff
		}
	}
	return literalAmount(line)
}

// resolveCallAmount returns the outstanding bet when one is known, ignoring
// any figure printed on the line; otherwise it falls back to a literal parse.
func resolveCallAmount(line string, prevBet int) *int {
	if prevBet > 0 {
		amt := prevBet
		return &amt
	}
	return literalAmount(line)
}

func literalAmount(line string) *int {
	if m := currencyRe.FindStringSubmatch(line); m != nil {
		if n, ok := parseAmount(m[1]); ok {
			return &n
		}
	}
	return nil
}
