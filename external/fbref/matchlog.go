package fbref

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/statfield/internal/domain/match"
)

// matchLogTableID is the schedule/results table on a team season page.
const matchLogTableID = "matchlogs_for"

// matchLogRecords normalizes one schedule table into match records. Rows
// keep an empty result when the fixture has not been played; notes stays
// an empty string rather than null because it participates in the upsert
// key.
func matchLogRecords(tbl Table, teamID int64, season string) []match.Match {
	out := make([]match.Match, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		opponent := row.Cell("Opponent")
		if opponent == "" {
			continue
		}

		out = append(out, match.Match{
			TeamID:            teamID,
			Season:            season,
			Date:              row.Cell("Date"),
			Time:              row.Cell("Time"),
			Competition:       row.Cell("Comp"),
			Round:             row.Cell("Round"),
			Day:               row.Cell("Day"),
			Venue:             row.Cell("Venue"),
			Opponent:          opponent,
			Result:            row.Cell("Result"),
			GoalsFor:          match.ParseScore(row.Cell("GF")),
			GoalsAgainst:      match.ParseScore(row.Cell("GA")),
			XG:                parseFloatPtr(row.Cell("xG")),
			XGA:               parseFloatPtr(row.Cell("xGA")),
			Possession:        parseFloatPtr(row.Cell("Poss")),
			Attendance:        parseIntPtr(row.Cell("Attendance")),
			Captain:           row.Cell("Captain"),
			Formation:         row.Cell("Formation"),
			OpponentFormation: row.Cell("Opp Formation"),
			Referee:           row.Cell("Referee"),
			Notes:             row.Cell("Notes"),
			ReportURL:         row.ReportURL,
		})
	}
	return out
}

func parseFloatPtr(raw string) *float64 {
	cleaned := strings.TrimSuffix(strings.TrimSpace(raw), "%")
	if cleaned == "" {
		return nil
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &value
}

func parseIntPtr(raw string) *int64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return nil
	}
	value, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		// Attendance occasionally renders as a float.
		f, ferr := strconv.ParseFloat(cleaned, 64)
		if ferr != nil {
			return nil
		}
		v := int64(f)
		return &v
	}
	return &value
}
