package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/statfield/internal/domain/match"
	"github.com/riskibarqy/statfield/internal/domain/playerstat"
)

// formationSlots maps a formation label to its eleven slot positions in
// pick order: keeper first, then back line, midfield, attack.
var formationSlots = map[string][]string{
	"4-3-3":   {"GK", "RB", "CB", "CB", "LB", "CM", "CM", "CM", "RW", "ST", "LW"},
	"4-4-2":   {"GK", "RB", "CB", "CB", "LB", "RM", "CM", "CM", "LM", "ST", "ST"},
	"4-2-3-1": {"GK", "RB", "CB", "CB", "LB", "DM", "DM", "RW", "AM", "LW", "ST"},
	"4-5-1":   {"GK", "RB", "CB", "CB", "LB", "RM", "CM", "CM", "CM", "LM", "ST"},
	"4-1-4-1": {"GK", "RB", "CB", "CB", "LB", "DM", "RM", "CM", "CM", "LM", "ST"},
	"3-5-2":   {"GK", "CB", "CB", "CB", "RWB", "CM", "CM", "CM", "LWB", "ST", "ST"},
	"3-4-3":   {"GK", "CB", "CB", "CB", "RM", "CM", "CM", "LM", "RW", "ST", "LW"},
	"5-3-2":   {"GK", "RWB", "CB", "CB", "CB", "LWB", "CM", "CM", "CM", "ST", "ST"},
	"5-4-1":   {"GK", "RWB", "CB", "CB", "CB", "LWB", "RM", "CM", "CM", "LM", "ST"},
}

// slotAlternates lists recorded positions accepted for a slot beyond an
// exact match: a wing-back covers the corresponding full-back slot, a
// generic DF/MF/FW label covers its whole line.
var slotAlternates = map[string][]string{
	"GK":  {},
	"CB":  {"DF"},
	"RB":  {"RWB", "WB", "DF"},
	"LB":  {"LWB", "WB", "DF"},
	"RWB": {"RB", "WB", "DF"},
	"LWB": {"LB", "WB", "DF"},
	"DM":  {"CM", "MF"},
	"CM":  {"DM", "AM", "MF"},
	"AM":  {"CM", "MF"},
	"RM":  {"RW", "MF"},
	"LM":  {"LW", "MF"},
	"RW":  {"RM", "FW"},
	"LW":  {"LM", "FW"},
	"ST":  {"CF", "FW"},
}

// slotMetricKeys is the per-90 metric set a candidate is scored on,
// keyed by the slot's position group.
var slotMetricKeys = map[string][]string{
	"GK": {"saves", "save_pct", "psxg"},
	"DF": {"tackles", "interceptions", "blocks", "pass_completion_pct"},
	"MF": {"passes_completed", "pass_completion_pct", "progressive_passes", "sca", "xag"},
	"FW": {"goals", "shots_on_target", "xg", "sca", "take_ons_won"},
}

var slotGroups = map[string]string{
	"GK": "GK",
	"CB": "DF", "RB": "DF", "LB": "DF", "RWB": "DF", "LWB": "DF",
	"DM": "MF", "CM": "MF", "AM": "MF", "RM": "MF", "LM": "MF",
	"RW": "FW", "LW": "FW", "ST": "FW",
}

const defaultLineupWindow = 3

// LineupSlot is one assignment in a proposed starting eleven. Selected
// is false when the candidate pool ran dry for the position.
type LineupSlot struct {
	Position   string
	PlayerName string
	Score      float64
	Selected   bool
}

type LineupService struct {
	matchRepo match.Repository
	statRepo  playerstat.Repository
	window    int
}

func NewLineupService(matchRepo match.Repository, statRepo playerstat.Repository, recentMatches int) *LineupService {
	if recentMatches <= 0 {
		recentMatches = defaultLineupWindow
	}
	return &LineupService{matchRepo: matchRepo, statRepo: statRepo, window: recentMatches}
}

// ProposeXI builds a starting eleven for a formation from the team's
// per-90 numbers over the most recent played matches of the season.
func (s *LineupService) ProposeXI(ctx context.Context, teamID int64, teamName, season, formation string) ([]LineupSlot, error) {
	ctx, span := startUsecaseSpan(ctx, "LineupService.ProposeXI")
	defer span.End()

	if teamID <= 0 || teamName == "" || season == "" {
		return nil, fmt.Errorf("%w: team id, team name and season are required", ErrInvalidInput)
	}
	slots, ok := formationSlots[formation]
	if !ok {
		return nil, fmt.Errorf("%w: unknown formation %q", ErrInvalidInput, formation)
	}

	rows, err := s.recentPer90(ctx, teamID, teamName, season)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no recent player stats for team=%q season=%s", ErrInsufficientData, teamName, season)
	}

	return ProposeLineup(rows, slots), nil
}

func (s *LineupService) recentPer90(ctx context.Context, teamID int64, teamName, season string) ([]Per90Row, error) {
	matches, err := s.matchRepo.ListByTeamSeason(ctx, teamID, season)
	if err != nil {
		return nil, fmt.Errorf("list matches for lineup: %w", err)
	}
	played := playedInOrder(matches)
	if len(played) > s.window {
		played = played[len(played)-s.window:]
	}

	keys := lineupMetricKeys()
	var pool []playerstat.PlayerMatchStat
	for _, m := range played {
		stats, err := s.statRepo.ListByMatch(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("list stats for lineup match=%d: %w", m.ID, err)
		}
		for i := range stats {
			if stats[i].Team == teamName {
				pool = append(pool, stats[i])
			}
		}
	}

	return Per90(pool, keys), nil
}

func lineupMetricKeys() []string {
	seen := map[string]bool{}
	var out []string
	for _, group := range []string{"GK", "DF", "MF", "FW"} {
		for _, key := range slotMetricKeys[group] {
			if !seen[key] {
				seen[key] = true
				out = append(out, key)
			}
		}
	}
	return out
}

// ProposeLineup assigns one candidate per slot greedily in formation
// order. Ties keep the first-encountered candidate, so identical inputs
// always produce identical elevens. No backtracking: an earlier slot
// can starve a later one, which is acceptable for an advisory pick.
func ProposeLineup(rows []Per90Row, slots []string) []LineupSlot {
	taken := make([]bool, len(rows))
	out := make([]LineupSlot, 0, len(slots))

	for _, slot := range slots {
		bestIdx := -1
		bestScore := 0.0
		for i := range rows {
			if taken[i] || !positionsFitSlot(rows[i].Positions, slot) {
				continue
			}
			score := slotScore(rows[i], slot)
			if bestIdx == -1 || score > bestScore {
				bestIdx, bestScore = i, score
			}
		}
		if bestIdx == -1 {
			out = append(out, LineupSlot{Position: slot})
			continue
		}
		taken[bestIdx] = true
		out = append(out, LineupSlot{
			Position:   slot,
			PlayerName: rows[bestIdx].PlayerName,
			Score:      bestScore,
			Selected:   true,
		})
	}

	return out
}

func positionsFitSlot(positions []string, slot string) bool {
	for _, pos := range positions {
		if pos == slot {
			return true
		}
		for _, alt := range slotAlternates[slot] {
			if pos == alt {
				return true
			}
		}
	}
	return false
}

func slotScore(row Per90Row, slot string) float64 {
	keys := slotMetricKeys[slotGroups[slot]]
	if len(keys) == 0 {
		return 0
	}
	total := 0.0
	for _, key := range keys {
		total += row.Values[key]
	}
	return total / float64(len(keys))
}
