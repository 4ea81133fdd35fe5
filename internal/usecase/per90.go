package usecase

import (
	"github.com/riskibarqy/statfield/internal/domain/playerstat"
)

// Per90Row is one player's statistics normalized to a 90-minute basis
// over some window of matches.
type Per90Row struct {
	PlayerName string
	Positions  []string
	Minutes    float64
	Values     map[string]float64
}

// Per90 aggregates raw per-match lines per player and normalizes them.
// Counting stats scale to (sum/minutes)*90. Percentage stats are a
// minutes-weighted mean instead: a percentage is not a count and must
// not be multiplied up. Players with zero recorded minutes are dropped.
// Row order follows first appearance in the input.
func Per90(stats []playerstat.PlayerMatchStat, keys []string) []Per90Row {
	type accumulator struct {
		positions []string
		seenPos   map[string]bool
		minutes   float64
		sums      map[string]float64
		// weighted carries sum(stat*minutes) and the minutes that had
		// the stat present, for percentage keys.
		weighted    map[string]float64
		weightedMin map[string]float64
	}

	order := make([]string, 0)
	byPlayer := map[string]*accumulator{}

	for i := range stats {
		line := &stats[i]
		if line.Minutes == nil || *line.Minutes <= 0 {
			continue
		}
		acc, ok := byPlayer[line.PlayerName]
		if !ok {
			acc = &accumulator{
				seenPos:     map[string]bool{},
				sums:        map[string]float64{},
				weighted:    map[string]float64{},
				weightedMin: map[string]float64{},
			}
			byPlayer[line.PlayerName] = acc
			order = append(order, line.PlayerName)
		}
		minutes := *line.Minutes
		acc.minutes += minutes
		for _, pos := range line.Positions() {
			if !acc.seenPos[pos] {
				acc.seenPos[pos] = true
				acc.positions = append(acc.positions, pos)
			}
		}
		for _, key := range keys {
			value, known := line.Stat(key)
			if !known || value == nil {
				continue
			}
			if playerstat.IsPercentStat(key) {
				acc.weighted[key] += *value * minutes
				acc.weightedMin[key] += minutes
				continue
			}
			acc.sums[key] += *value
		}
	}

	out := make([]Per90Row, 0, len(order))
	for _, name := range order {
		acc := byPlayer[name]
		row := Per90Row{
			PlayerName: name,
			Positions:  acc.positions,
			Minutes:    acc.minutes,
			Values:     make(map[string]float64, len(keys)),
		}
		for _, key := range keys {
			if playerstat.IsPercentStat(key) {
				if acc.weightedMin[key] > 0 {
					row.Values[key] = acc.weighted[key] / acc.weightedMin[key]
				}
				continue
			}
			if sum, ok := acc.sums[key]; ok {
				row.Values[key] = (sum / acc.minutes) * 90
			}
		}
		out = append(out, row)
	}

	return out
}
