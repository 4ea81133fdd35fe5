package usecase

import (
	"testing"

	"github.com/riskibarqy/statfield/internal/domain/playerstat"
)

func statLine(name, position string, minutes float64, set func(*playerstat.PlayerMatchStat)) playerstat.PlayerMatchStat {
	line := playerstat.PlayerMatchStat{
		Team:       "Arsenal",
		PlayerName: name,
		Position:   position,
		Minutes:    &minutes,
	}
	if set != nil {
		set(&line)
	}
	return line
}

func TestPer90PercentStatsAreMinutesWeighted(t *testing.T) {
	first, second := 80.0, 60.0
	stats := []playerstat.PlayerMatchStat{
		statLine("Declan Rice", "CM", 90, func(p *playerstat.PlayerMatchStat) { p.PassCompletionPct = &first }),
		statLine("Declan Rice", "CM", 90, func(p *playerstat.PlayerMatchStat) { p.PassCompletionPct = &second }),
	}

	rows := Per90(stats, []string{"pass_completion_pct"})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if got := rows[0].Values["pass_completion_pct"]; got != 70.0 {
		t.Fatalf("expected 70.0, got %v", got)
	}
}

func TestPer90CountingStatsScaleToNinety(t *testing.T) {
	goals := 1.0
	stats := []playerstat.PlayerMatchStat{
		statLine("Kai Havertz", "FW", 45, func(p *playerstat.PlayerMatchStat) { p.Goals = &goals }),
	}

	rows := Per90(stats, []string{"goals"})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if got := rows[0].Values["goals"]; got != 2.0 {
		t.Fatalf("expected 2.0 goals per 90, got %v", got)
	}
}

func TestPer90ExcludesZeroMinutePlayers(t *testing.T) {
	goals := 1.0
	zero := 0.0
	unused := playerstat.PlayerMatchStat{
		Team: "Arsenal", PlayerName: "Bench Player", Position: "FW", Minutes: &zero, Goals: &goals,
	}
	stats := []playerstat.PlayerMatchStat{
		unused,
		statLine("Kai Havertz", "FW", 90, func(p *playerstat.PlayerMatchStat) { p.Goals = &goals }),
		{Team: "Arsenal", PlayerName: "No Minutes Recorded", Position: "FW", Goals: &goals},
	}

	rows := Per90(stats, []string{"goals"})
	if len(rows) != 1 || rows[0].PlayerName != "Kai Havertz" {
		t.Fatalf("expected only the 90-minute player, got %+v", rows)
	}
}

func TestPer90AggregatesAcrossMatchesAndPositions(t *testing.T) {
	one, two := 1.0, 2.0
	stats := []playerstat.PlayerMatchStat{
		statLine("Bukayo Saka", "RW", 90, func(p *playerstat.PlayerMatchStat) { p.Goals = &one }),
		statLine("Bukayo Saka", "RW,AM", 90, func(p *playerstat.PlayerMatchStat) { p.Goals = &two }),
	}

	rows := Per90(stats, []string{"goals"})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if got := rows[0].Values["goals"]; got != 1.5 {
		t.Fatalf("expected 1.5 goals per 90, got %v", got)
	}
	if len(rows[0].Positions) != 2 {
		t.Fatalf("expected positions RW and AM, got %v", rows[0].Positions)
	}
	if rows[0].Minutes != 180 {
		t.Fatalf("expected 180 minutes, got %v", rows[0].Minutes)
	}
}
