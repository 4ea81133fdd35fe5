package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/statfield/internal/domain/match"
)

// SeasonSummary aggregates one team-season's match log the way the
// dashboard presents it.
type SeasonSummary struct {
	TeamID int64
	Season string

	MatchesPlayed int
	Wins          int
	Draws         int
	Losses        int

	GoalsFor        float64
	GoalsAgainst    float64
	GoalDifference  float64
	TotalXG         float64
	TotalXGA        float64
	AvgPossession   float64
	CommonFormation string

	// CurrentStreak counts consecutive unbeaten results from the most
	// recent played match backwards; LongestStreak is the season's best
	// unbeaten run.
	CurrentStreak int
	LongestStreak int
}

type TeamMetricsService struct {
	matchRepo match.Repository
}

func NewTeamMetricsService(matchRepo match.Repository) *TeamMetricsService {
	return &TeamMetricsService{matchRepo: matchRepo}
}

func (s *TeamMetricsService) SeasonSummary(ctx context.Context, teamID int64, season string) (SeasonSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamMetricsService.SeasonSummary")
	defer span.End()

	if teamID <= 0 || season == "" {
		return SeasonSummary{}, fmt.Errorf("%w: team id and season are required", ErrInvalidInput)
	}

	matches, err := s.matchRepo.ListByTeamSeason(ctx, teamID, season)
	if err != nil {
		return SeasonSummary{}, fmt.Errorf("list matches for summary: %w", err)
	}
	if len(matches) == 0 {
		return SeasonSummary{}, fmt.Errorf("%w: no matches for team=%d season=%s", ErrNotFound, teamID, season)
	}

	return summarizeSeason(teamID, season, matches), nil
}

func summarizeSeason(teamID int64, season string, matches []match.Match) SeasonSummary {
	out := SeasonSummary{TeamID: teamID, Season: season}

	played := playedInOrder(matches)
	possessionSamples := 0
	for _, m := range played {
		switch m.Result {
		case match.ResultWin:
			out.Wins++
		case match.ResultDraw:
			out.Draws++
		case match.ResultLoss:
			out.Losses++
		}
		out.GoalsFor += m.GoalsFor.Value()
		out.GoalsAgainst += m.GoalsAgainst.Value()
		out.TotalXG += m.XGOrGoals()
		out.TotalXGA += m.XGAOrGoals()
		if m.Possession != nil {
			out.AvgPossession += *m.Possession
			possessionSamples++
		}
	}
	out.MatchesPlayed = out.Wins + out.Draws + out.Losses
	out.GoalDifference = out.GoalsFor - out.GoalsAgainst
	if possessionSamples > 0 {
		out.AvgPossession /= float64(possessionSamples)
	}
	out.CommonFormation = commonFormation(played)
	out.CurrentStreak, out.LongestStreak = unbeatenStreaks(played)

	return out
}

// playedInOrder keeps only finished matches, chronologically. Dates are
// ISO strings so lexical order is date order.
func playedInOrder(matches []match.Match) []match.Match {
	out := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.Played() {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })

	return out
}

// commonFormation is the mode of the formation column; ties resolve to
// the formation seen first.
func commonFormation(played []match.Match) string {
	counts := map[string]int{}
	best, bestCount := "", 0
	for _, m := range played {
		if m.Formation == "" {
			continue
		}
		counts[m.Formation]++
		if counts[m.Formation] > bestCount {
			best, bestCount = m.Formation, counts[m.Formation]
		}
	}

	return best
}

// unbeatenStreaks treats wins and draws as streak-extending and a loss
// as a reset.
func unbeatenStreaks(played []match.Match) (current, longest int) {
	for i := len(played) - 1; i >= 0; i-- {
		if played[i].Result != match.ResultWin && played[i].Result != match.ResultDraw {
			break
		}
		current++
	}

	run := 0
	for _, m := range played {
		if m.Result == match.ResultWin || m.Result == match.ResultDraw {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}

	return current, longest
}
