package playerstat

import (
	"fmt"
	"strings"
)

// PlayerMatchStat is one player's line from a match report, with the
// field-player and goalkeeper tables already merged into a single record.
// Counters are nullable: the site omits whole stat families for lower
// competitions and for keepers appearing only in one table.
type PlayerMatchStat struct {
	ID      int64
	MatchID int64

	Team        string
	PlayerName  string
	ShirtNumber string
	Nationality string
	Position    string
	Age         string
	Minutes     *float64

	Goals              *float64
	Assists            *float64
	PensMade           *float64
	PensAtt            *float64
	PensWon            *float64
	PensConceded       *float64
	Shots              *float64
	ShotsOnTarget      *float64
	YellowCards        *float64
	RedCards           *float64
	Fouls              *float64
	Fouled             *float64
	Offsides           *float64
	Crosses            *float64
	OwnGoals           *float64
	Touches            *float64
	Tackles            *float64
	TacklesWon         *float64
	Interceptions      *float64
	Blocks             *float64
	XG                 *float64
	NpXG               *float64
	XAG                *float64
	SCA                *float64
	GCA                *float64
	PassesCompleted    *float64
	PassesAttempted    *float64
	PassCompletionPct  *float64
	ProgressivePasses  *float64
	Carries            *float64
	ProgressiveCarries *float64
	TakeOnsAttempted   *float64
	TakeOnsWon         *float64

	ShotsOnTargetAgainst *float64
	GoalsAgainst         *float64
	Saves                *float64
	SavePct              *float64
	PSxG                 *float64
	LaunchedCompleted    *float64
	LaunchedAttempted    *float64
	LaunchedCmpPct       *float64
	GKPassesAttempted    *float64
	Throws               *float64
	LaunchPct            *float64
	AvgPassLength        *float64
	GoalKicks            *float64
	GoalKickLaunchPct    *float64
	AvgGoalKickLength    *float64
	CrossesFaced         *float64
	CrossesStopped       *float64
	CrossStopPct         *float64
	DefActionsOutsideBox *float64
	AvgDefActionDistance *float64

	// Extras keeps raw cells for source columns the static mapping does
	// not know about, so a site layout change loses nothing.
	Extras map[string]string
}

// Key identifies the same player line across repeated scrapes of one
// match report. Shirt number disambiguates rare name collisions.
type Key struct {
	MatchID     int64
	Team        string
	PlayerName  string
	ShirtNumber string
}

func (k Key) String() string {
	return fmt.Sprintf("match=%d team=%q player=%q shirt=%q", k.MatchID, k.Team, k.PlayerName, k.ShirtNumber)
}

func (p PlayerMatchStat) Key() Key {
	return Key{
		MatchID:     p.MatchID,
		Team:        p.Team,
		PlayerName:  p.PlayerName,
		ShirtNumber: p.ShirtNumber,
	}
}

// IsGoalkeeper matches the exact position label; multi-position strings
// such as "GK,DF" still count.
func (p PlayerMatchStat) IsGoalkeeper() bool {
	for _, pos := range strings.Split(p.Position, ",") {
		if strings.TrimSpace(pos) == "GK" {
			return true
		}
	}
	return false
}

// Positions splits a possibly comma-joined position string.
func (p PlayerMatchStat) Positions() []string {
	parts := strings.Split(p.Position, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if pos := strings.TrimSpace(part); pos != "" {
			out = append(out, pos)
		}
	}
	return out
}

func (p PlayerMatchStat) Validate() error {
	if p.PlayerName == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Team == "" {
		return fmt.Errorf("player team is required")
	}

	return nil
}
