package postgres

import (
	"testing"

	"github.com/riskibarqy/statfield/internal/domain/match"
)

func TestDedupeMatchesLastWins(t *testing.T) {
	first := match.Match{
		TeamID: 1, Season: "2024-2025", Competition: "Premier League",
		Round: "Matchweek 1", Venue: match.VenueHome, Opponent: "Wolves",
		Result: match.ResultWin,
	}
	second := first
	second.Result = match.ResultDraw
	other := first
	other.Opponent = "Villa"

	out := dedupeMatches([]match.Match{first, other, second})
	if len(out) != 2 {
		t.Fatalf("expected duplicate keys to collapse to 2 rows, got %d", len(out))
	}
	if out[0].Opponent != "Wolves" || out[0].Result != match.ResultDraw {
		t.Fatalf("expected last occurrence to win in place: %+v", out[0])
	}
	if out[1].Opponent != "Villa" {
		t.Fatalf("expected distinct key preserved: %+v", out[1])
	}
}
