package match

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	VenueHome = "Home"
	VenueAway = "Away"

	ResultWin  = "W"
	ResultDraw = "D"
	ResultLoss = "L"
)

// Score is a goal count scraped from a schedule table. The site encodes
// matches decided on penalties as "2 (1)": regulation goals plus the
// shootout tally in parentheses.
type Score struct {
	Goals    float64
	Shootout *int64
	Raw      string
}

// ParseScore parses the site's goal encoding once, at ingestion.
// Empty and "nan" cells produce a zero Score with an empty Raw.
func ParseScore(raw string) Score {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "nan") {
		return Score{}
	}

	out := Score{Raw: trimmed}
	head := trimmed
	if idx := strings.Index(trimmed, "("); idx >= 0 {
		head = strings.TrimSpace(trimmed[:idx])
		tail := strings.TrimSpace(trimmed[idx+1:])
		tail = strings.TrimSuffix(tail, ")")
		if shootout, err := strconv.ParseInt(strings.TrimSpace(tail), 10, 64); err == nil {
			out.Shootout = &shootout
		}
	}
	if goals, err := strconv.ParseFloat(head, 64); err == nil {
		out.Goals = goals
	}

	return out
}

// Value is the regulation goal count, 0 when the match has no score yet.
func (s Score) Value() float64 {
	return s.Goals
}

func (s Score) IsZero() bool {
	return s.Raw == ""
}

// Match is one row of a team's schedule/results log for a season.
// The owning team is the side the log was scraped for; the opponent
// stays free text because opposing clubs are not tracked entities.
type Match struct {
	ID     int64
	TeamID int64
	Season string

	Date              string
	Time              string
	Competition       string
	Round             string
	Day               string
	Venue             string
	Opponent          string
	Result            string
	GoalsFor          Score
	GoalsAgainst      Score
	XG                *float64
	XGA               *float64
	Possession        *float64
	Attendance        *int64
	Captain           string
	Formation         string
	OpponentFormation string
	Referee           string
	Notes             string
	ReportURL         string
}

// Key identifies the same real-world fixture across repeated scrapes.
// Date and kickoff time are excluded: rescheduled fixtures move but stay
// the same match. Notes participates so cup replays do not collide.
type Key struct {
	TeamID      int64
	Opponent    string
	Venue       string
	Competition string
	Round       string
	Season      string
	Notes       string
}

func (k Key) String() string {
	return fmt.Sprintf("team=%d opponent=%q venue=%s competition=%q round=%q season=%s notes=%q",
		k.TeamID, k.Opponent, k.Venue, k.Competition, k.Round, k.Season, k.Notes)
}

func (m Match) Key() Key {
	return Key{
		TeamID:      m.TeamID,
		Opponent:    m.Opponent,
		Venue:       m.Venue,
		Competition: m.Competition,
		Round:       m.Round,
		Season:      m.Season,
		Notes:       m.Notes,
	}
}

// Played reports whether the fixture has a final result. Future and
// postponed fixtures keep an empty result and mostly null numerics.
func (m Match) Played() bool {
	return m.Result != ""
}

// XGOrGoals falls back to actual goals when the season predates xG
// tracking. The substitution is a deliberate proxy, kept on purpose.
func (m Match) XGOrGoals() float64 {
	if m.XG != nil {
		return *m.XG
	}
	return m.GoalsFor.Value()
}

func (m Match) XGAOrGoals() float64 {
	if m.XGA != nil {
		return *m.XGA
	}
	return m.GoalsAgainst.Value()
}

func (m Match) Validate() error {
	if m.TeamID <= 0 {
		return fmt.Errorf("match team id is required")
	}
	if m.Season == "" {
		return fmt.Errorf("match season is required")
	}
	if m.Opponent == "" {
		return fmt.Errorf("match opponent is required")
	}
	if m.Venue != VenueHome && m.Venue != VenueAway {
		return fmt.Errorf("match venue %q must be %s or %s", m.Venue, VenueHome, VenueAway)
	}

	return nil
}
