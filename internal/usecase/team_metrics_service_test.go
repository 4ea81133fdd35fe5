package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/statfield/internal/domain/match"
	"github.com/riskibarqy/statfield/internal/infrastructure/repository/memory"
)

func seasonFixture(t *testing.T, results []string) *memory.MatchRepository {
	t.Helper()
	repo := memory.NewMatchRepository()
	matches := make([]match.Match, 0, len(results))
	for i, result := range results {
		matches = append(matches, match.Match{
			TeamID:    1,
			Season:    "2024-2025",
			Date:      "2024-08-1" + string(rune('0'+i)),
			Venue:     match.VenueHome,
			Opponent:  "Opponent " + string(rune('A'+i)),
			Round:     "Matchweek " + string(rune('1'+i)),
			Result:    result,
			Formation: "4-3-3",
		})
	}
	if err := repo.UpsertBatch(t.Context(), matches); err != nil {
		t.Fatalf("seed matches: %v", err)
	}
	return repo
}

func TestSeasonSummaryStreaks(t *testing.T) {
	repo := seasonFixture(t, []string{
		match.ResultWin, match.ResultLoss, match.ResultWin, match.ResultDraw, match.ResultWin,
	})
	svc := NewTeamMetricsService(repo)

	summary, err := svc.SeasonSummary(t.Context(), 1, "2024-2025")
	if err != nil {
		t.Fatalf("season summary: %v", err)
	}
	if summary.CurrentStreak != 3 {
		t.Fatalf("expected current streak 3, got %d", summary.CurrentStreak)
	}
	if summary.LongestStreak != 3 {
		t.Fatalf("expected longest streak 3, got %d", summary.LongestStreak)
	}
	if summary.Wins != 3 || summary.Draws != 1 || summary.Losses != 1 {
		t.Fatalf("unexpected record: %+v", summary)
	}
	if summary.MatchesPlayed != 5 {
		t.Fatalf("expected 5 played, got %d", summary.MatchesPlayed)
	}
}

func TestSeasonSummaryXGFallsBackToGoals(t *testing.T) {
	repo := memory.NewMatchRepository()
	xg := 1.4
	matches := []match.Match{
		{
			TeamID: 1, Season: "2014-2015", Date: "2014-08-16",
			Venue: match.VenueHome, Opponent: "Everton", Round: "Matchweek 1",
			Result:   match.ResultWin,
			GoalsFor: match.ParseScore("2"), GoalsAgainst: match.ParseScore("0"),
		},
		{
			TeamID: 1, Season: "2014-2015", Date: "2014-08-23",
			Venue: match.VenueAway, Opponent: "Fulham", Round: "Matchweek 2",
			Result:   match.ResultDraw,
			GoalsFor: match.ParseScore("1"), GoalsAgainst: match.ParseScore("1"),
			XG: &xg, XGA: &xg,
		},
	}
	if err := repo.UpsertBatch(t.Context(), matches); err != nil {
		t.Fatalf("seed matches: %v", err)
	}

	summary, err := NewTeamMetricsService(repo).SeasonSummary(t.Context(), 1, "2014-2015")
	if err != nil {
		t.Fatalf("season summary: %v", err)
	}
	if summary.TotalXG != 2+1.4 {
		t.Fatalf("expected xG fallback total 3.4, got %v", summary.TotalXG)
	}
	if summary.TotalXGA != 0+1.4 {
		t.Fatalf("expected xGA fallback total 1.4, got %v", summary.TotalXGA)
	}
	if summary.GoalDifference != 2 {
		t.Fatalf("expected goal difference 2, got %v", summary.GoalDifference)
	}
}

func TestSeasonSummaryCommonFormationIsMode(t *testing.T) {
	repo := memory.NewMatchRepository()
	matches := []match.Match{
		{TeamID: 1, Season: "2024-2025", Date: "2024-08-17", Venue: match.VenueHome, Opponent: "A", Round: "Matchweek 1", Result: match.ResultWin, Formation: "4-2-3-1"},
		{TeamID: 1, Season: "2024-2025", Date: "2024-08-24", Venue: match.VenueAway, Opponent: "B", Round: "Matchweek 2", Result: match.ResultWin, Formation: "4-3-3"},
		{TeamID: 1, Season: "2024-2025", Date: "2024-08-31", Venue: match.VenueHome, Opponent: "C", Round: "Matchweek 3", Result: match.ResultWin, Formation: "4-3-3"},
		// Future fixture: no result, must not count.
		{TeamID: 1, Season: "2024-2025", Date: "2025-05-25", Venue: match.VenueHome, Opponent: "D", Round: "Matchweek 38"},
	}
	if err := repo.UpsertBatch(t.Context(), matches); err != nil {
		t.Fatalf("seed matches: %v", err)
	}

	summary, err := NewTeamMetricsService(repo).SeasonSummary(t.Context(), 1, "2024-2025")
	if err != nil {
		t.Fatalf("season summary: %v", err)
	}
	if summary.CommonFormation != "4-3-3" {
		t.Fatalf("expected 4-3-3, got %s", summary.CommonFormation)
	}
	if summary.MatchesPlayed != 3 {
		t.Fatalf("expected 3 played, got %d", summary.MatchesPlayed)
	}
}

func TestSeasonSummaryNoMatches(t *testing.T) {
	svc := NewTeamMetricsService(memory.NewMatchRepository())
	_, err := svc.SeasonSummary(t.Context(), 1, "2024-2025")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
