package playerstat

import "context"

// Repository describes per-match player stat persistence.
// UpsertBatch must be idempotent on Key.
type Repository interface {
	ListByMatch(ctx context.Context, matchID int64) ([]PlayerMatchStat, error)
	CountByMatch(ctx context.Context, matchID int64) (int, error)
	UpsertBatch(ctx context.Context, stats []PlayerMatchStat) error
}
