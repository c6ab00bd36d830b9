// Package report renders player statistics as fixed-width console tables.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/railbird/wrgpt-data/internal/stats"
)

const (
	statRule   = 130
	detailRule = 120
)

func rule(w io.Writer, n int) {
	for i := 0; i < n; i++ {
		fmt.Fprint(w, "-")
	}
	fmt.Fprintln(w)
}

func statHeader(w io.Writer) {
	rule(w, statRule)
	fmt.Fprintf(w, "%-16s %-8s %-8s %-8s %-8s %-8s %-10s %-8s %-8s %-8s %-8s\n",
		"Player", "Hands", "VPIP", "3Bet", "RFI", "ISO", "Steal", "WTSD", "Won@SD", "ShowDn", "Rivers")
	rule(w, statRule)
}

func statRow(w io.Writer, ps *stats.PlayerStats) {
	threeBet := fmt.Sprintf("%d/%d", ps.ThreeBetCount, ps.ThreeBetOpportunities)
	steal := fmt.Sprintf("%d/%d", ps.StealAttempts, ps.StealOpportunities)
	fmt.Fprintf(w, "%-16s %-8d %-8.1f %-8s %-8.1f %-8.1f %-10s %-8.1f %-8.1f %-8d %-8d\n",
		ps.Name, ps.TotalHands, ps.VPIPPercent, threeBet, ps.RFIPercent,
		ps.ISOPercent, steal, ps.WTSDPercent, ps.WonAtShowdownPercent,
		ps.ShowdownCount, ps.RiverReached)
}

// PrintStats renders the full statistics table plus per-player RFI and
// showdown detail blocks, in name order.
func PrintStats(w io.Writer, all map[string]*stats.PlayerStats) {
	fmt.Fprintln(w, "\nPlayer Statistics:")
	statHeader(w)

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ps := all[name]
		statRow(w, ps)

		if len(ps.RFIDetails) > 0 {
			fmt.Fprintln(w, "\nRFI Hands:")
			rule(w, detailRule)
			fmt.Fprintf(w, "%-20s %-12s %-15s %15s %10s\n",
				"Hand ID", "Position", "Cards", "Raise Amount", "Result")
			rule(w, detailRule)
			for _, d := range ps.RFIDetails {
				cards := d.Cards
				if cards == "" {
					cards = "N/A"
				}
				fmt.Fprintf(w, "%-20s %-12s %-15s %15d %10d\n",
					d.HandID, d.Position, cards, d.Amount, d.Result)
			}
			fmt.Fprintln(w)
		}

		if len(ps.ShowdownDetails) > 0 {
			fmt.Fprintln(w, "Showdown Hands:")
			rule(w, detailRule)
			fmt.Fprintf(w, "%-20s %-15s %-30s %10s\n", "Hand ID", "Cards", "Board", "Result")
			rule(w, detailRule)
			for _, d := range ps.ShowdownDetails {
				fmt.Fprintf(w, "%-20s %-15s %-30s %10d\n", d.HandID, d.Cards, d.Board, d.Result)
			}
			fmt.Fprintln(w)
		}
	}
}

// PrintAverage renders the synthetic average row without detail sections.
func PrintAverage(w io.Writer, avg *stats.PlayerStats, playerCount int) {
	fmt.Fprintf(w, "\nAverage Player Statistics (across %d players):\n", playerCount)
	statHeader(w)
	statRow(w, avg)
	fmt.Fprintln(w)
}

// PrintTopByVPIP renders the n loosest players, full rows, no details.
func PrintTopByVPIP(w io.Writer, all map[string]*stats.PlayerStats, n int) {
	top := stats.TopByVPIP(all, n)
	fmt.Fprintf(w, "\nTop %d Players by VPIP:\n", len(top))
	statHeader(w)
	for _, ps := range top {
		statRow(w, ps)
	}
	fmt.Fprintln(w)
}
