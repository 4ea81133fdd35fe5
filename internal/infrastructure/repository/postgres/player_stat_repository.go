package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/statfield/internal/domain/playerstat"
	qb "github.com/riskibarqy/statfield/internal/platform/querybuilder"
)

// identityColumns precede the stat counters in every query. Stat columns
// are named exactly after the domain stat keys, so the column list and
// the scan loop are both derived from playerstat.StatKeys().
var identityColumns = []string{
	"match_id", "team", "player_name", "shirt_number",
	"nationality", "position", "age", "minutes_played",
}

type PlayerStatRepository struct {
	db *sqlx.DB
}

func NewPlayerStatRepository(db *sqlx.DB) *PlayerStatRepository {
	return &PlayerStatRepository{db: db}
}

func playerStatColumns() []string {
	keys := playerstat.StatKeys()
	out := make([]string, 0, len(identityColumns)+len(keys)+1)
	out = append(out, identityColumns...)
	out = append(out, keys...)
	out = append(out, "extras")
	return out
}

func playerStatUpsertSuffix() string {
	var b strings.Builder
	b.WriteString("ON CONFLICT ON CONSTRAINT match_player_stats_natural_key\nDO UPDATE SET\n")
	updatable := []string{"nationality", "position", "age", "minutes_played"}
	updatable = append(updatable, playerstat.StatKeys()...)
	updatable = append(updatable, "extras")
	for _, col := range updatable {
		fmt.Fprintf(&b, "    %s = EXCLUDED.%s,\n", col, col)
	}
	b.WriteString("    updated_at = now()")
	return b.String()
}

func (r *PlayerStatRepository) ListByMatch(ctx context.Context, matchID int64) ([]playerstat.PlayerMatchStat, error) {
	columns := append([]string{"id"}, playerStatColumns()...)
	query, args, err := qb.Select(columns...).
		From("match_player_stats").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player stats query: %w", err)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select player stats match=%d: %w", matchID, err)
	}
	defer rows.Close()

	var out []playerstat.PlayerMatchStat
	for rows.Next() {
		record := map[string]any{}
		if err := rows.MapScan(record); err != nil {
			return nil, fmt.Errorf("scan player stat row: %w", err)
		}
		stat, err := playerStatFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("decode player stat row: %w", err)
		}
		out = append(out, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate player stat rows: %w", err)
	}

	return out, nil
}

func (r *PlayerStatRepository) CountByMatch(ctx context.Context, matchID int64) (int, error) {
	query, args, err := qb.Select("COUNT(*)").
		From("match_player_stats").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count player stats query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count player stats match=%d: %w", matchID, err)
	}

	return count, nil
}

// UpsertBatch writes one match report's merged player lines in a single
// transaction, collapsing in-batch duplicate keys to the last occurrence.
func (r *PlayerStatRepository) UpsertBatch(ctx context.Context, stats []playerstat.PlayerMatchStat) error {
	if len(stats) == 0 {
		return nil
	}
	for _, s := range stats {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("validate player stat %s: %w", s.Key(), err)
		}
		if s.MatchID <= 0 {
			return fmt.Errorf("player stat %s has no match id", s.Key())
		}
	}

	deduped := dedupePlayerStats(stats)
	columns := playerStatColumns()
	suffix := playerStatUpsertSuffix()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin player stat upsert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range deduped {
		values, err := playerStatValues(&deduped[i])
		if err != nil {
			return fmt.Errorf("encode player stat %s: %w", deduped[i].Key(), err)
		}
		query, args, err := qb.InsertInto("match_player_stats").
			Columns(columns...).
			Values(values...).
			Suffix(suffix).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert player stat query: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("upsert player stat %s: %w", deduped[i].Key(), err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("upsert player stat %s rows affected: %w", deduped[i].Key(), err)
		}
		if affected == 0 {
			return fmt.Errorf("upsert player stat %s affected no rows", deduped[i].Key())
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player stat upsert tx: %w", err)
	}

	return nil
}

func dedupePlayerStats(stats []playerstat.PlayerMatchStat) []playerstat.PlayerMatchStat {
	index := make(map[playerstat.Key]int, len(stats))
	out := make([]playerstat.PlayerMatchStat, 0, len(stats))
	for _, s := range stats {
		key := s.Key()
		if i, ok := index[key]; ok {
			out[i] = s
			continue
		}
		index[key] = len(out)
		out = append(out, s)
	}

	return out
}

func playerStatValues(s *playerstat.PlayerMatchStat) ([]any, error) {
	keys := playerstat.StatKeys()
	out := make([]any, 0, len(identityColumns)+len(keys)+1)
	out = append(out,
		s.MatchID, s.Team, s.PlayerName, s.ShirtNumber,
		s.Nationality, s.Position, s.Age, nullFloat(s.Minutes),
	)
	for _, key := range keys {
		value, _ := s.Stat(key)
		out = append(out, nullFloat(value))
	}
	extras, err := encodeExtras(s.Extras)
	if err != nil {
		return nil, err
	}
	out = append(out, extras)

	return out, nil
}

func playerStatFromRecord(record map[string]any) (playerstat.PlayerMatchStat, error) {
	stat := playerstat.PlayerMatchStat{
		ID:          asInt64(record["id"]),
		MatchID:     asInt64(record["match_id"]),
		Team:        asString(record["team"]),
		PlayerName:  asString(record["player_name"]),
		ShirtNumber: asString(record["shirt_number"]),
		Nationality: asString(record["nationality"]),
		Position:    asString(record["position"]),
		Age:         asString(record["age"]),
		Minutes:     asFloatPtr(record["minutes_played"]),
	}
	for _, key := range playerstat.StatKeys() {
		stat.SetStat(key, asFloatPtr(record[key]))
	}

	extras, err := decodeExtras(record["extras"])
	if err != nil {
		return playerstat.PlayerMatchStat{}, err
	}
	stat.Extras = extras

	return stat, nil
}

func encodeExtras(extras map[string]string) ([]byte, error) {
	if len(extras) == 0 {
		return []byte("{}"), nil
	}
	encoded, err := sonic.Marshal(extras)
	if err != nil {
		return nil, fmt.Errorf("marshal extras: %w", err)
	}
	return encoded, nil
}

func decodeExtras(raw any) (map[string]string, error) {
	var payload []byte
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []byte:
		payload = v
	case string:
		payload = []byte(v)
	default:
		return nil, fmt.Errorf("unexpected extras type %T", raw)
	}
	if len(payload) == 0 {
		return nil, nil
	}

	var extras map[string]string
	if err := sonic.Unmarshal(payload, &extras); err != nil {
		return nil, fmt.Errorf("unmarshal extras: %w", err)
	}
	if len(extras) == 0 {
		return nil, nil
	}

	return extras, nil
}

func asString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case []byte:
		return string(value)
	default:
		return fmt.Sprint(value)
	}
}

func asInt64(v any) int64 {
	switch value := v.(type) {
	case int64:
		return value
	case float64:
		return int64(value)
	case []byte:
		parsed, _ := strconv.ParseInt(string(value), 10, 64)
		return parsed
	default:
		return 0
	}
}

func asFloatPtr(v any) *float64 {
	var parsed float64
	switch value := v.(type) {
	case nil:
		return nil
	case float64:
		parsed = value
	case int64:
		parsed = float64(value)
	case []byte:
		f, err := strconv.ParseFloat(string(value), 64)
		if err != nil {
			return nil
		}
		parsed = f
	case string:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil
		}
		parsed = f
	default:
		return nil
	}

	return &parsed
}
