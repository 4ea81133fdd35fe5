package usecase

import (
	"errors"
	"math"
	"testing"

	"github.com/riskibarqy/statfield/internal/domain/match"
	"github.com/riskibarqy/statfield/internal/domain/playerstat"
	"github.com/riskibarqy/statfield/internal/infrastructure/repository/memory"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRankMVPResultMultiplier(t *testing.T) {
	// 1000 touches at weight 0.01 gives a clean base score of 10.
	touches := 1000.0
	stats := []playerstat.PlayerMatchStat{
		{Team: "Arsenal", PlayerName: "Martin Odegaard", Position: "AM", Touches: &touches},
		{Team: "Chelsea", PlayerName: "Enzo Fernandez", Position: "CM", Touches: &touches},
	}

	scores, err := RankMVP(stats, "Arsenal", match.ResultWin)
	if err != nil {
		t.Fatalf("rank mvp: %v", err)
	}
	byName := map[string]float64{}
	for _, s := range scores {
		byName[s.PlayerName] = s.Score
	}
	if !almostEqual(byName["Martin Odegaard"], 11.0) {
		t.Fatalf("expected winner score 11.0, got %v", byName["Martin Odegaard"])
	}
	if !almostEqual(byName["Enzo Fernandez"], 9.0) {
		t.Fatalf("expected loser score 9.0, got %v", byName["Enzo Fernandez"])
	}
	if scores[0].PlayerName != "Martin Odegaard" {
		t.Fatalf("expected descending order, got %+v", scores)
	}

	scores, err = RankMVP(stats, "Arsenal", match.ResultDraw)
	if err != nil {
		t.Fatalf("rank mvp draw: %v", err)
	}
	for _, s := range scores {
		if !almostEqual(s.Score, 10.0) {
			t.Fatalf("expected neutral score 10.0 on draw, got %+v", s)
		}
	}
}

func TestRankMVPInsufficientTouchData(t *testing.T) {
	goals := 1.0
	stats := []playerstat.PlayerMatchStat{
		{Team: "Arsenal", PlayerName: "Kai Havertz", Position: "FW", Goals: &goals},
	}

	_, err := RankMVP(stats, "Arsenal", match.ResultWin)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestRankMVPMissedPenaltyAndXGBonus(t *testing.T) {
	touches := 100.0
	goals, xg := 2.0, 1.0
	pensAtt, pensMade := 2.0, 1.0
	stats := []playerstat.PlayerMatchStat{
		{
			Team: "Arsenal", PlayerName: "Bukayo Saka", Position: "RW",
			Touches: &touches, Goals: &goals, XG: &xg,
			PensAtt: &pensAtt, PensMade: &pensMade,
		},
	}

	scores, err := RankMVP(stats, "Arsenal", match.ResultDraw)
	if err != nil {
		t.Fatalf("rank mvp: %v", err)
	}
	// touches 1 + goals 3 + (goals-xG) 1 - missed pen 2 = 3.
	want := 100*0.01 + 2*1.5 + (2.0-1.0) - 1*2.0
	if !almostEqual(scores[0].Score, want) {
		t.Fatalf("expected %v, got %v", want, scores[0].Score)
	}
}

func TestRankMVPTakeOnRate(t *testing.T) {
	touches := 100.0
	attHigh, wonHigh := 10.0, 6.0
	attLow, wonLow := 10.0, 2.0
	stats := []playerstat.PlayerMatchStat{
		{Team: "Arsenal", PlayerName: "Dribbler", Position: "LW", Touches: &touches, TakeOnsAttempted: &attHigh, TakeOnsWon: &wonHigh},
		{Team: "Arsenal", PlayerName: "Turnover Machine", Position: "RW", Touches: &touches, TakeOnsAttempted: &attLow, TakeOnsWon: &wonLow},
	}

	scores, err := RankMVP(stats, "Arsenal", match.ResultDraw)
	if err != nil {
		t.Fatalf("rank mvp: %v", err)
	}
	byName := map[string]float64{}
	for _, s := range scores {
		byName[s.PlayerName] = s.Score
	}
	base := 100*0.01 + 10*0.02
	if !almostEqual(byName["Dribbler"], base+6*0.05+0.6*2) {
		t.Fatalf("unexpected successful dribbler score: %v", byName["Dribbler"])
	}
	if !almostEqual(byName["Turnover Machine"], base+2*0.05-0.2*2) {
		t.Fatalf("unexpected failed dribbler score: %v", byName["Turnover Machine"])
	}
}

func TestRankMVPKeeperScoreAddsShotStopping(t *testing.T) {
	touches := 100.0
	saves, sota, ga, psxg, savePct := 5.0, 6.0, 1.0, 2.2, 83.3
	stats := []playerstat.PlayerMatchStat{
		{Team: "Arsenal", PlayerName: "Field Player", Position: "CM", Touches: &touches},
		{
			Team: "Arsenal", PlayerName: "David Raya", Position: "GK",
			Saves: &saves, ShotsOnTargetAgainst: &sota, GoalsAgainst: &ga,
			PSxG: &psxg, SavePct: &savePct,
		},
	}

	scores, err := RankMVP(stats, "Arsenal", match.ResultWin)
	if err != nil {
		t.Fatalf("rank mvp: %v", err)
	}
	byName := map[string]float64{}
	for _, s := range scores {
		byName[s.PlayerName] = s.Score
	}
	keeperBase := -0.5*1 + 0.15*5 + 0.01*83.3 + (2.2-1.0)*1.5 + (6.0-1.0)*0.5
	if !almostEqual(byName["David Raya"], keeperBase*1.1) {
		t.Fatalf("unexpected keeper score: got %v want %v", byName["David Raya"], keeperBase*1.1)
	}
}

func TestMatchMVPFromRepository(t *testing.T) {
	repo := memory.NewPlayerStatRepository()
	touches := 500.0
	if err := repo.UpsertBatch(t.Context(), []playerstat.PlayerMatchStat{
		{MatchID: 1, Team: "Arsenal", PlayerName: "Martin Odegaard", Position: "AM", Touches: &touches},
	}); err != nil {
		t.Fatalf("seed stats: %v", err)
	}
	svc := NewMVPService(repo)

	scores, err := svc.MatchMVP(t.Context(), 1, "Arsenal", match.ResultWin)
	if err != nil {
		t.Fatalf("match mvp: %v", err)
	}
	if len(scores) != 1 || !almostEqual(scores[0].Score, 5.0*1.1) {
		t.Fatalf("unexpected scores: %+v", scores)
	}

	_, err = svc.MatchMVP(t.Context(), 99, "Arsenal", match.ResultWin)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty match, got %v", err)
	}
}
