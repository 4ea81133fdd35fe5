package memory

import (
	"testing"

	"github.com/riskibarqy/statfield/internal/domain/match"
	"github.com/riskibarqy/statfield/internal/domain/playerstat"
	"github.com/riskibarqy/statfield/internal/domain/team"
)

func TestTeamRepositoryUpsertKeysOnName(t *testing.T) {
	repo := NewTeamRepository([]team.Team{
		{Name: "Arsenal", League: "Premier League", URLTemplate: "https://example.test/{season}Arsenal"},
	})

	err := repo.Upsert(t.Context(), team.Team{
		Name:        "Arsenal",
		League:      "Premier League",
		URLTemplate: "https://example.test/{season}Arsenal-Stats",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	teams, err := repo.List(t.Context())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(teams) != 1 {
		t.Fatalf("expected 1 team, got %d", len(teams))
	}
	if teams[0].ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if teams[0].URLTemplate != "https://example.test/{season}Arsenal-Stats" {
		t.Fatalf("expected updated template, got %s", teams[0].URLTemplate)
	}

	got, found, err := repo.GetByID(t.Context(), teams[0].ID)
	if err != nil || !found {
		t.Fatalf("get by id: found=%v err=%v", found, err)
	}
	if got.Name != "Arsenal" {
		t.Fatalf("unexpected team: %+v", got)
	}
}

func TestMatchRepositoryUpsertIsIdempotent(t *testing.T) {
	repo := NewMatchRepository()
	fixture := match.Match{
		TeamID:      1,
		Season:      "2024-2025",
		Date:        "2024-08-17",
		Competition: "Premier League",
		Round:       "Matchweek 1",
		Venue:       match.VenueHome,
		Opponent:    "Wolves",
		Result:      match.ResultWin,
	}

	if err := repo.UpsertBatch(t.Context(), []match.Match{fixture}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	fixture.Result = match.ResultDraw
	if err := repo.UpsertBatch(t.Context(), []match.Match{fixture}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	stored, err := repo.ListByTeamSeason(t.Context(), 1, "2024-2025")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 match, got %d", len(stored))
	}
	if stored[0].Result != match.ResultDraw {
		t.Fatalf("expected updated result, got %s", stored[0].Result)
	}
	if stored[0].ID == 0 {
		t.Fatalf("expected assigned id")
	}
}

func TestMatchRepositoryCollapsesDuplicateKeysInBatch(t *testing.T) {
	repo := NewMatchRepository()
	fixture := match.Match{
		TeamID: 1, Season: "2024-2025", Date: "2024-08-17",
		Venue: match.VenueHome, Opponent: "Wolves", Round: "Matchweek 1",
		Result: match.ResultWin,
	}
	duplicate := fixture
	duplicate.Result = match.ResultDraw

	if err := repo.UpsertBatch(t.Context(), []match.Match{fixture, duplicate}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	stored, err := repo.ListByTeamSeason(t.Context(), 1, "2024-2025")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected same-key rows to collapse to 1, got %d", len(stored))
	}
	if stored[0].Result != match.ResultDraw {
		t.Fatalf("expected the later occurrence to win, got %s", stored[0].Result)
	}
}

func TestMatchRepositoryOrdersByDate(t *testing.T) {
	repo := NewMatchRepository()
	matches := []match.Match{
		{TeamID: 1, Season: "2024-2025", Date: "2024-09-01", Venue: match.VenueHome, Opponent: "Spurs", Round: "Matchweek 3"},
		{TeamID: 1, Season: "2024-2025", Date: "2024-08-17", Venue: match.VenueAway, Opponent: "Wolves", Round: "Matchweek 1"},
	}
	if err := repo.UpsertBatch(t.Context(), matches); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	stored, err := repo.ListByTeamSeason(t.Context(), 1, "2024-2025")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 2 || stored[0].Opponent != "Wolves" {
		t.Fatalf("unexpected order: %+v", stored)
	}
}

func TestPlayerStatRepositoryUpsertIsIdempotent(t *testing.T) {
	repo := NewPlayerStatRepository()
	goals := 1.0
	stat := playerstat.PlayerMatchStat{
		MatchID:     7,
		Team:        "Arsenal",
		PlayerName:  "Bukayo Saka",
		ShirtNumber: "7",
		Goals:       &goals,
	}

	if err := repo.UpsertBatch(t.Context(), []playerstat.PlayerMatchStat{stat}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	updated := 2.0
	stat.Goals = &updated
	if err := repo.UpsertBatch(t.Context(), []playerstat.PlayerMatchStat{stat}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	count, err := repo.CountByMatch(t.Context(), 7)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}

	stored, err := repo.ListByMatch(t.Context(), 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if stored[0].Goals == nil || *stored[0].Goals != 2 {
		t.Fatalf("expected updated goals, got %v", stored[0].Goals)
	}
}

func TestPlayerStatRepositoryCollapsesDuplicateKeysInBatch(t *testing.T) {
	repo := NewPlayerStatRepository()
	goals, updated := 1.0, 2.0
	stat := playerstat.PlayerMatchStat{
		MatchID: 7, Team: "Arsenal", PlayerName: "Bukayo Saka", ShirtNumber: "7", Goals: &goals,
	}
	duplicate := stat
	duplicate.Goals = &updated

	if err := repo.UpsertBatch(t.Context(), []playerstat.PlayerMatchStat{stat, duplicate}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	count, err := repo.CountByMatch(t.Context(), 7)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected same-key rows to collapse to 1, got %d", count)
	}

	stored, err := repo.ListByMatch(t.Context(), 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if stored[0].Goals == nil || *stored[0].Goals != 2 {
		t.Fatalf("expected the later occurrence to win, got %v", stored[0].Goals)
	}
}
