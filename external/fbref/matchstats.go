package fbref

import (
	"regexp"
	"strings"

	"github.com/riskibarqy/statfield/internal/domain/playerstat"
)

var (
	fieldStatsTablePattern  = regexp.MustCompile(`^stats_.*_summary$`)
	keeperStatsTablePattern = regexp.MustCompile(`^keeper_stats_.*`)
)

// The first table columns carry player identity under blank over-headers;
// they are renamed positionally because the site leaves them unlabeled.
var (
	fieldIdentityColumns  = []string{"Player", "Shirt #", "Nat", "Pos", "Age", "Min"}
	keeperIdentityColumns = []string{"Player", "Nat", "Age", "Min"}
)

// statKeyBySourceColumn is the single static mapping from flattened site
// columns to stat keys. Source columns outside this table land in Extras.
var statKeyBySourceColumn = map[string]string{
	"Performance_Gls":     "goals",
	"Performance_Ast":     "assists",
	"Performance_PK":      "pens_made",
	"Performance_PKatt":   "pens_att",
	"Performance_PKwon":   "pens_won",
	"Performance_PKcon":   "pens_conceded",
	"Performance_Sh":      "shots",
	"Performance_SoT":     "shots_on_target",
	"Performance_CrdY":    "yellow_cards",
	"Performance_CrdR":    "red_cards",
	"Performance_Fls":     "fouls",
	"Performance_Fld":     "fouled",
	"Performance_Off":     "offsides",
	"Performance_Crs":     "crosses",
	"Performance_OG":      "own_goals",
	"Performance_Touches": "touches",
	"Performance_Tkl":     "tackles",
	"Performance_TklW":    "tackles_won",
	"Performance_Int":     "interceptions",
	"Performance_Blocks":  "blocks",
	"Expected_xG":         "xg",
	"Expected_npxG":       "npxg",
	"Expected_xAG":        "xag",
	"SCA_SCA":             "sca",
	"SCA_GCA":             "gca",
	"Passes_Cmp":          "passes_completed",
	"Passes_Att":          "passes_attempted",
	"Passes_Cmp%":         "pass_completion_pct",
	"Passes_PrgP":         "progressive_passes",
	"Carries_Carries":     "carries",
	"Carries_PrgC":        "progressive_carries",
	"Take-Ons_Att":        "take_ons_attempted",
	"Take-Ons_Succ":       "take_ons_won",
	"Shot Stopping_SoTA":  "shots_on_target_against",
	"Shot Stopping_GA":    "gk_goals_against",
	"Shot Stopping_Saves": "saves",
	"Shot Stopping_Save%": "save_pct",
	"Shot Stopping_PSxG":  "psxg",
	"Launched_Cmp":        "launched_completed",
	"Launched_Att":        "launched_attempted",
	"Launched_Cmp%":       "launched_cmp_pct",
	"Passes_Att (GK)":     "gk_passes_attempted",
	"Passes_Thr":          "throws",
	"Passes_Launch%":      "launch_pct",
	"Passes_AvgLen":       "avg_pass_length",
	"Goal Kicks_Att":      "goal_kicks",
	"Goal Kicks_Launch%":  "goal_kick_launch_pct",
	"Goal Kicks_AvgLen":   "avg_goal_kick_length",
	"Crosses_Opp":         "crosses_faced",
	"Crosses_Stp":         "crosses_stopped",
	"Crosses_Stp%":        "cross_stop_pct",
	"Sweeper_#OPA":        "def_actions_outside_box",
	"Sweeper_AvgDist":     "avg_def_action_distance",
}

type statRow struct {
	team  string
	cells map[string]string
}

func (r statRow) player() string {
	return strings.TrimSpace(r.cells["Player"])
}

// matchStatRecords unifies the per-side field-player and goalkeeper
// tables of one match report into a single record set. Keepers tracked in
// both tables merge into one row; field-player values win for the shared
// identity columns. When either table family is missing the report has no
// usable data and the result is empty.
func matchStatRecords(fieldTables, keeperTables []Table, homeTeam, awayTeam, venue string) []playerstat.PlayerMatchStat {
	if len(fieldTables) == 0 || len(keeperTables) == 0 {
		return nil
	}

	labels := sideLabels(homeTeam, awayTeam, venue)
	fieldRows := collectRows(fieldTables, labels, fieldIdentityColumns, true)
	keeperRows := collectRows(keeperTables, labels, keeperIdentityColumns, false)

	var outfield, fieldKeepers []statRow
	for _, row := range fieldRows {
		if strings.TrimSpace(row.cells["Pos"]) == "GK" {
			fieldKeepers = append(fieldKeepers, row)
		} else {
			outfield = append(outfield, row)
		}
	}

	merged := mergeKeeperRows(fieldKeepers, keeperRows)

	out := make([]playerstat.PlayerMatchStat, 0, len(outfield)+len(merged))
	for _, row := range append(outfield, merged...) {
		out = append(out, toPlayerStat(row))
	}
	return out
}

// sideLabels orders team labels the way the report orders its tables:
// the owning team's tables come first on its own Home fetch, second on an
// Away fetch.
func sideLabels(homeTeam, awayTeam, venue string) []string {
	if venue == "Away" {
		return []string{awayTeam, homeTeam}
	}
	return []string{homeTeam, awayTeam}
}

func collectRows(tables []Table, labels, identity []string, dropSummary bool) []statRow {
	var out []statRow
	for i, tbl := range tables {
		if tbl.Empty() {
			continue
		}
		label := ""
		if i < len(labels) {
			label = labels[i]
		}

		rows := tbl.Rows
		// Field tables close with a team-total summary line.
		if dropSummary && len(rows) > 0 {
			rows = rows[:len(rows)-1]
		}

		for _, row := range rows {
			renamed := renameColumns(tbl.Headers, row, identity)
			if strings.TrimSpace(renamed["Player"]) == "" {
				continue
			}
			out = append(out, statRow{team: label, cells: renamed})
		}
	}
	return out
}

func renameColumns(headers []string, row Row, identity []string) map[string]string {
	out := make(map[string]string, len(headers))
	for i, header := range headers {
		name := header
		if i < len(identity) {
			name = identity[i]
		}
		out[name] = row.Cell(header)
	}
	return out
}

// mergeKeeperRows full-outer-joins the GK subset of the field table with
// the dedicated keeper table on player name. A keeper present in only one
// table is still kept.
func mergeKeeperRows(fieldKeepers, keeperRows []statRow) []statRow {
	merged := make([]statRow, 0, len(fieldKeepers)+len(keeperRows))
	indexByPlayer := make(map[string]int, len(fieldKeepers))

	for _, row := range fieldKeepers {
		indexByPlayer[row.player()] = len(merged)
		merged = append(merged, row)
	}

	for _, row := range keeperRows {
		idx, ok := indexByPlayer[row.player()]
		if !ok {
			merged = append(merged, row)
			continue
		}
		for col, value := range row.cells {
			if strings.TrimSpace(merged[idx].cells[col]) == "" {
				merged[idx].cells[col] = value
			}
		}
		if merged[idx].team == "" {
			merged[idx].team = row.team
		}
	}

	return merged
}

func toPlayerStat(row statRow) playerstat.PlayerMatchStat {
	out := playerstat.PlayerMatchStat{
		Team:        row.team,
		PlayerName:  row.player(),
		ShirtNumber: strings.TrimSpace(row.cells["Shirt #"]),
		Nationality: strings.TrimSpace(row.cells["Nat"]),
		Position:    strings.TrimSpace(row.cells["Pos"]),
		Age:         strings.TrimSpace(row.cells["Age"]),
		Minutes:     parseFloatPtr(row.cells["Min"]),
	}

	for col, raw := range row.cells {
		switch col {
		case "Player", "Shirt #", "Nat", "Pos", "Age", "Min":
			continue
		}
		key, ok := statKeyBySourceColumn[col]
		if !ok {
			if value := strings.TrimSpace(raw); value != "" && !strings.EqualFold(value, "nan") {
				if out.Extras == nil {
					out.Extras = make(map[string]string)
				}
				out.Extras[col] = value
			}
			continue
		}
		out.SetStat(key, parseFloatPtr(raw))
	}

	return out
}
