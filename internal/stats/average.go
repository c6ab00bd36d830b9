package stats

import (
	"errors"
	"math"
	"sort"
)

// ErrNoQualifiedPlayers means every candidate had zero hands on record.
var ErrNoQualifiedPlayers = errors.New("stats: no players with hand history")

// AverageName labels the synthetic average row.
const AverageName = "Average Player"

// Average computes the arithmetic mean of every numeric field across the
// given per-player aggregates. Players with zero hands are excluded from
// both the averaged set and the denominator. Counts round to the nearest
// integer, percentages to one decimal; detail rows are not averaged.
// Returns the average row and the number of players it covers.
func Average(all map[string]*PlayerStats) (*PlayerStats, int, error) {
	qualified := make([]*PlayerStats, 0, len(all))
	for _, ps := range all {
		if ps.TotalHands > 0 {
			qualified = append(qualified, ps)
		}
	}
	if len(qualified) == 0 {
		return nil, 0, ErrNoQualifiedPlayers
	}

	n := float64(len(qualified))
	sum := func(f func(*PlayerStats) float64) float64 {
		total := 0.0
		for _, ps := range qualified {
			total += f(ps)
		}
		return total
	}
	meanCount := func(f func(*PlayerStats) int) int {
		return int(math.Round(sum(func(ps *PlayerStats) float64 { return float64(f(ps)) }) / n))
	}
	meanPct := func(f func(*PlayerStats) float64) float64 {
		return round1(sum(f) / n)
	}

	avg := &PlayerStats{
		Name:                  AverageName,
		TotalHands:            meanCount(func(ps *PlayerStats) int { return ps.TotalHands }),
		VPIPHands:             meanCount(func(ps *PlayerStats) int { return ps.VPIPHands }),
		VPIPPercent:           meanPct(func(ps *PlayerStats) float64 { return ps.VPIPPercent }),
		ThreeBetOpportunities: meanCount(func(ps *PlayerStats) int { return ps.ThreeBetOpportunities }),
		ThreeBetCount:         meanCount(func(ps *PlayerStats) int { return ps.ThreeBetCount }),
		RFIOpportunities:      meanCount(func(ps *PlayerStats) int { return ps.RFIOpportunities }),
		RFICount:              meanCount(func(ps *PlayerStats) int { return ps.RFICount }),
		RFIPercent:            meanPct(func(ps *PlayerStats) float64 { return ps.RFIPercent }),
		StealOpportunities:    meanCount(func(ps *PlayerStats) int { return ps.StealOpportunities }),
		StealAttempts:         meanCount(func(ps *PlayerStats) int { return ps.StealAttempts }),
		ISOOpportunities:      meanCount(func(ps *PlayerStats) int { return ps.ISOOpportunities }),
		ISOAttempts:           meanCount(func(ps *PlayerStats) int { return ps.ISOAttempts }),
		ISOPercent:            meanPct(func(ps *PlayerStats) float64 { return ps.ISOPercent }),
		RiverReached:          meanCount(func(ps *PlayerStats) int { return ps.RiverReached }),
		ShowdownCount:         meanCount(func(ps *PlayerStats) int { return ps.ShowdownCount }),
		ShowdownPercent:       meanPct(func(ps *PlayerStats) float64 { return ps.ShowdownPercent }),
		WonAtShowdown:         meanCount(func(ps *PlayerStats) int { return ps.WonAtShowdown }),
		WTSDPercent:           meanPct(func(ps *PlayerStats) float64 { return ps.WTSDPercent }),
		WonAtShowdownPercent:  meanPct(func(ps *PlayerStats) float64 { return ps.WonAtShowdownPercent }),
	}
	return avg, len(qualified), nil
}

// TopByVPIP returns up to n players ordered by VPIP percentage, descending.
// Ties break by name so the ranking is stable.
func TopByVPIP(all map[string]*PlayerStats, n int) []*PlayerStats {
	ranked := make([]*PlayerStats, 0, len(all))
	for _, ps := range all {
		ranked = append(ranked, ps)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].VPIPPercent != ranked[j].VPIPPercent {
			return ranked[i].VPIPPercent > ranked[j].VPIPPercent
		}
		return ranked[i].Name < ranked[j].Name
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
