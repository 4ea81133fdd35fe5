package postgres

import (
	"database/sql"

	"github.com/riskibarqy/statfield/internal/domain/match"
)

type matchTableModel struct {
	ID                int64           `db:"id"`
	TeamID            int64           `db:"team_id"`
	Season            string          `db:"season"`
	Date              string          `db:"date"`
	Time              string          `db:"time"`
	Competition       string          `db:"competition"`
	Round             string          `db:"round"`
	Day               string          `db:"day"`
	Venue             string          `db:"venue"`
	Opponent          string          `db:"opponent"`
	Result            string          `db:"result"`
	GoalsFor          sql.NullString  `db:"gf"`
	GoalsAgainst      sql.NullString  `db:"ga"`
	XG                sql.NullFloat64 `db:"xg"`
	XGA               sql.NullFloat64 `db:"xga"`
	Possession        sql.NullFloat64 `db:"possession"`
	Attendance        sql.NullInt64   `db:"attendance"`
	Captain           string          `db:"captain"`
	Formation         string          `db:"formation"`
	OpponentFormation string          `db:"opponent_formation"`
	Referee           string          `db:"referee"`
	Notes             string          `db:"notes"`
	ReportURL         string          `db:"match_report_link"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:                m.ID,
		TeamID:            m.TeamID,
		Season:            m.Season,
		Date:              m.Date,
		Time:              m.Time,
		Competition:       m.Competition,
		Round:             m.Round,
		Day:               m.Day,
		Venue:             m.Venue,
		Opponent:          m.Opponent,
		Result:            m.Result,
		GoalsFor:          match.ParseScore(m.GoalsFor.String),
		GoalsAgainst:      match.ParseScore(m.GoalsAgainst.String),
		XG:                nullableFloat(m.XG),
		XGA:               nullableFloat(m.XGA),
		Possession:        nullableFloat(m.Possession),
		Attendance:        nullableInt(m.Attendance),
		Captain:           m.Captain,
		Formation:         m.Formation,
		OpponentFormation: m.OpponentFormation,
		Referee:           m.Referee,
		Notes:             m.Notes,
		ReportURL:         m.ReportURL,
	}
}

type matchInsertModel struct {
	TeamID            int64           `db:"team_id"`
	Season            string          `db:"season"`
	Date              string          `db:"date"`
	Time              string          `db:"time"`
	Competition       string          `db:"competition"`
	Round             string          `db:"round"`
	Day               string          `db:"day"`
	Venue             string          `db:"venue"`
	Opponent          string          `db:"opponent"`
	Result            string          `db:"result"`
	GoalsFor          sql.NullString  `db:"gf"`
	GoalsAgainst      sql.NullString  `db:"ga"`
	XG                sql.NullFloat64 `db:"xg"`
	XGA               sql.NullFloat64 `db:"xga"`
	Possession        sql.NullFloat64 `db:"possession"`
	Attendance        sql.NullInt64   `db:"attendance"`
	Captain           string          `db:"captain"`
	Formation         string          `db:"formation"`
	OpponentFormation string          `db:"opponent_formation"`
	Referee           string          `db:"referee"`
	Notes             string          `db:"notes"`
	ReportURL         string          `db:"match_report_link"`
}

func matchToInsertModel(m match.Match) matchInsertModel {
	return matchInsertModel{
		TeamID:            m.TeamID,
		Season:            m.Season,
		Date:              m.Date,
		Time:              m.Time,
		Competition:       m.Competition,
		Round:             m.Round,
		Day:               m.Day,
		Venue:             m.Venue,
		Opponent:          m.Opponent,
		Result:            m.Result,
		GoalsFor:          nullString(m.GoalsFor.Raw),
		GoalsAgainst:      nullString(m.GoalsAgainst.Raw),
		XG:                nullFloat(m.XG),
		XGA:               nullFloat(m.XGA),
		Possession:        nullFloat(m.Possession),
		Attendance:        nullInt(m.Attendance),
		Captain:           m.Captain,
		Formation:         m.Formation,
		OpponentFormation: m.OpponentFormation,
		Referee:           m.Referee,
		Notes:             m.Notes,
		ReportURL:         m.ReportURL,
	}
}
