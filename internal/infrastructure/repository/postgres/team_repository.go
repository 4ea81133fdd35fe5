package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/statfield/internal/domain/team"
	qb "github.com/riskibarqy/statfield/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("id", "name", "league", "url_template").
		From("teams").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	query, args, err := qb.Select("id", "name", "league", "url_template").
		From("teams").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team id=%d: %w", id, err)
	}

	return row.toDomain(), true, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, t team.Team) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("validate team: %w", err)
	}

	insertModel := teamInsertModel{
		Name:        t.Name,
		League:      t.League,
		URLTemplate: t.URLTemplate,
	}
	query, args, err := qb.InsertModel("teams", insertModel, `ON CONFLICT (name)
DO UPDATE SET
    league = EXCLUDED.league,
    url_template = EXCLUDED.url_template,
    updated_at = now()`)
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team name=%q: %w", t.Name, err)
	}

	return nil
}
