package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/statfield/internal/domain/match"
	"github.com/riskibarqy/statfield/internal/domain/playerstat"
)

// Weights for the per-match MVP score. Values are tuned for a single
// match line, not a season aggregate.
var fieldPlayerWeights = []struct {
	key    string
	weight float64
}{
	{"goals", 1.5},
	{"assists", 0.5},
	{"shots", 0.1},
	{"shots_on_target", 0.2},
	{"touches", 0.01},
	{"tackles", 0.2},
	{"interceptions", 0.2},
	{"blocks", 0.2},
	{"xag", 0.5},
	{"sca", 0.2},
	{"gca", 0.5},
	{"passes_completed", 0.01},
	{"pass_completion_pct", 0.01},
	{"progressive_passes", 0.05},
	{"carries", 0.01},
	{"progressive_carries", 0.05},
	{"take_ons_attempted", 0.02},
	{"take_ons_won", 0.05},
	{"yellow_cards", -1},
	{"red_cards", -2},
}

var keeperWeights = []struct {
	key    string
	weight float64
}{
	{"gk_goals_against", -0.5},
	{"saves", 0.15},
	{"save_pct", 0.01},
}

const (
	winningTeamMultiplier = 1.1
	losingTeamMultiplier  = 0.9

	missedPenaltyPenalty  = 2.0
	takeOnSampleMinimum   = 5.0
	takeOnSuccessCutoff   = 0.4
	takeOnRateFactor      = 2.0
	shotStoppingBonusRate = 1.5
	shotStoppingMalusRate = 1.0
	sotaDifferenceRate    = 0.5
)

type MVPScore struct {
	PlayerName string
	Score      float64
}

type MVPService struct {
	statRepo playerstat.Repository
}

func NewMVPService(statRepo playerstat.Repository) *MVPService {
	return &MVPService{statRepo: statRepo}
}

// MatchMVP ranks every player of a match by weighted contribution.
// perspectiveTeam and result orient the winner/loser multiplier: result
// is the match outcome from perspectiveTeam's point of view.
func (s *MVPService) MatchMVP(ctx context.Context, matchID int64, perspectiveTeam, result string) ([]MVPScore, error) {
	ctx, span := startUsecaseSpan(ctx, "MVPService.MatchMVP")
	defer span.End()

	if matchID <= 0 || perspectiveTeam == "" {
		return nil, fmt.Errorf("%w: match id and team are required", ErrInvalidInput)
	}

	stats, err := s.statRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list stats for mvp: %w", err)
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("%w: no stats for match=%d", ErrNotFound, matchID)
	}

	return RankMVP(stats, perspectiveTeam, result)
}

// RankMVP is the pure scoring pass over one match's merged stat lines.
func RankMVP(stats []playerstat.PlayerMatchStat, perspectiveTeam, result string) ([]MVPScore, error) {
	if !hasTouchData(stats) {
		return nil, fmt.Errorf("%w: touch counts missing for every field player", ErrInsufficientData)
	}

	scores := map[string]float64{}
	order := make([]string, 0, len(stats))
	noted := map[string]bool{}
	note := func(name string) {
		if !noted[name] {
			noted[name] = true
			order = append(order, name)
		}
	}

	for i := range stats {
		line := &stats[i]
		if line.IsGoalkeeper() {
			continue
		}
		score := fieldPlayerScore(line)
		score *= fieldMultiplier(line.Team, perspectiveTeam, result)
		scores[line.PlayerName] = score
		note(line.PlayerName)
	}

	for i := range stats {
		line := &stats[i]
		if !line.IsGoalkeeper() {
			continue
		}
		score := scores[line.PlayerName] + keeperScore(line)
		score *= keeperMultiplier(line.Team, perspectiveTeam, result)
		scores[line.PlayerName] = score
		note(line.PlayerName)
	}

	out := make([]MVPScore, 0, len(order))
	for _, name := range order {
		out = append(out, MVPScore{PlayerName: name, Score: scores[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	return out, nil
}

// hasTouchData guards the whole calculation: without touch counts the
// weighted sum degenerates to card-count noise.
func hasTouchData(stats []playerstat.PlayerMatchStat) bool {
	for i := range stats {
		if !stats[i].IsGoalkeeper() && stats[i].Touches != nil {
			return true
		}
	}
	return false
}

func fieldPlayerScore(line *playerstat.PlayerMatchStat) float64 {
	score := 0.0
	for _, w := range fieldPlayerWeights {
		if value, _ := line.Stat(w.key); value != nil {
			score += *value * w.weight
		}
	}

	if line.PensAtt != nil && line.PensMade != nil {
		if missed := *line.PensAtt - *line.PensMade; missed > 0 {
			score -= missed * missedPenaltyPenalty
		}
	}
	if line.Goals != nil && line.XG != nil {
		score += *line.Goals - *line.XG
	}
	if line.TakeOnsAttempted != nil && *line.TakeOnsAttempted >= takeOnSampleMinimum {
		succeeded := 0.0
		if line.TakeOnsWon != nil {
			succeeded = *line.TakeOnsWon
		}
		rate := succeeded / *line.TakeOnsAttempted
		if rate > takeOnSuccessCutoff {
			score += rate * takeOnRateFactor
		} else {
			score -= rate * takeOnRateFactor
		}
	}

	return score
}

func keeperScore(line *playerstat.PlayerMatchStat) float64 {
	score := 0.0
	for _, w := range keeperWeights {
		if value, _ := line.Stat(w.key); value != nil {
			score += *value * w.weight
		}
	}

	if line.PSxG != nil && line.GoalsAgainst != nil {
		diff := *line.PSxG - *line.GoalsAgainst
		if diff > 0 {
			score += diff * shotStoppingBonusRate
		} else {
			score += diff * shotStoppingMalusRate
		}
	}
	if line.ShotsOnTargetAgainst != nil && line.GoalsAgainst != nil {
		score += (*line.ShotsOnTargetAgainst - *line.GoalsAgainst) * sotaDifferenceRate
	}

	return score
}

func fieldMultiplier(playerTeam, perspectiveTeam, result string) float64 {
	switch result {
	case match.ResultWin:
		if playerTeam == perspectiveTeam {
			return winningTeamMultiplier
		}
		return losingTeamMultiplier
	case match.ResultLoss:
		if playerTeam == perspectiveTeam {
			return losingTeamMultiplier
		}
		return winningTeamMultiplier
	default:
		return 1
	}
}

// keeperMultiplier intentionally boosts or dents only the perspective
// team's keeper; the opposing keeper stays at 1 regardless of outcome.
func keeperMultiplier(playerTeam, perspectiveTeam, result string) float64 {
	if playerTeam == perspectiveTeam && result == match.ResultWin {
		return winningTeamMultiplier
	}
	if playerTeam == perspectiveTeam && result == match.ResultLoss {
		return losingTeamMultiplier
	}
	return 1
}
