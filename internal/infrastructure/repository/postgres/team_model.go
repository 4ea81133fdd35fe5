package postgres

import "github.com/riskibarqy/statfield/internal/domain/team"

type teamTableModel struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	League      string `db:"league"`
	URLTemplate string `db:"url_template"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:          m.ID,
		Name:        m.Name,
		League:      m.League,
		URLTemplate: m.URLTemplate,
	}
}

type teamInsertModel struct {
	Name        string `db:"name"`
	League      string `db:"league"`
	URLTemplate string `db:"url_template"`
}
