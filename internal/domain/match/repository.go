package match

import "context"

// Repository describes match persistence needs from use cases.
// UpsertBatch must be idempotent on Key: a second write of the same
// fixture updates in place instead of duplicating.
type Repository interface {
	ListByTeamSeason(ctx context.Context, teamID int64, season string) ([]Match, error)
	UpsertBatch(ctx context.Context, matches []Match) error
}
