package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/statfield/internal/domain/match"
	qb "github.com/riskibarqy/statfield/internal/platform/querybuilder"
)

const matchUpsertSuffix = `ON CONFLICT ON CONSTRAINT matches_natural_key
DO UPDATE SET
    date = EXCLUDED.date,
    time = EXCLUDED.time,
    day = EXCLUDED.day,
    result = EXCLUDED.result,
    gf = EXCLUDED.gf,
    ga = EXCLUDED.ga,
    xg = EXCLUDED.xg,
    xga = EXCLUDED.xga,
    possession = EXCLUDED.possession,
    attendance = EXCLUDED.attendance,
    captain = EXCLUDED.captain,
    formation = EXCLUDED.formation,
    opponent_formation = EXCLUDED.opponent_formation,
    referee = EXCLUDED.referee,
    match_report_link = EXCLUDED.match_report_link,
    updated_at = now()`

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListByTeamSeason(ctx context.Context, teamID int64, season string) ([]match.Match, error) {
	query, args, err := qb.Select(
		"id", "team_id", "season", "date", "time", "competition", "round", "day",
		"venue", "opponent", "result", "gf", "ga", "xg", "xga", "possession",
		"attendance", "captain", "formation", "opponent_formation", "referee",
		"notes", "match_report_link",
	).
		From("matches").
		Where(qb.Eq("team_id", teamID), qb.Eq("season", season)).
		OrderBy("date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches team=%d season=%s: %w", teamID, season, err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

// UpsertBatch writes one scrape of a team-season schedule in a single
// transaction. Duplicate natural keys within the batch collapse to the
// last occurrence so the upsert never touches the same row twice.
func (r *MatchRepository) UpsertBatch(ctx context.Context, matches []match.Match) error {
	if len(matches) == 0 {
		return nil
	}
	for _, m := range matches {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("validate match %s: %w", m.Key(), err)
		}
	}

	deduped := dedupeMatches(matches)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin match upsert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, m := range deduped {
		query, args, err := qb.InsertModel("matches", matchToInsertModel(m), matchUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert match query: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("upsert match %s: %w", m.Key(), err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("upsert match %s rows affected: %w", m.Key(), err)
		}
		if affected == 0 {
			return fmt.Errorf("upsert match %s affected no rows", m.Key())
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit match upsert tx: %w", err)
	}

	return nil
}

func dedupeMatches(matches []match.Match) []match.Match {
	index := make(map[match.Key]int, len(matches))
	out := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		key := m.Key()
		if i, ok := index[key]; ok {
			out[i] = m
			continue
		}
		index[key] = len(out)
		out = append(out, m)
	}

	return out
}
