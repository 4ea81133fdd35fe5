package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/riskibarqy/statfield/internal/domain/match"
	"github.com/riskibarqy/statfield/internal/domain/playerstat"
	"github.com/riskibarqy/statfield/internal/domain/team"
	"github.com/riskibarqy/statfield/internal/platform/logging"
)

// Fetcher is the upstream site client. Both calls return an empty slice
// when the page has no usable data; only transient failures error.
type Fetcher interface {
	TeamMatchLog(ctx context.Context, pageURL string, teamID int64, season string) ([]match.Match, error)
	MatchReportStats(ctx context.Context, reportURL, homeTeam, awayTeam, venue string) ([]playerstat.PlayerMatchStat, error)
}

type RefreshConfig struct {
	// Seasons newest-first; index 0 is the season currently in progress.
	Seasons      []string
	TeamPauseMin time.Duration
	TeamPauseMax time.Duration
}

// RefreshService drives the scrape-and-upsert batch flows. Fetches run
// strictly one at a time: the upstream site rate-limits aggressively,
// so pacing lives here rather than in a worker pool.
type RefreshService struct {
	teamRepo  team.Repository
	matchRepo match.Repository
	statRepo  playerstat.Repository
	fetcher   Fetcher
	cfg       RefreshConfig
	logger    *logging.Logger

	sleep  func(ctx context.Context, d time.Duration) error
	jitter func(min, max time.Duration) time.Duration
}

func NewRefreshService(
	teamRepo team.Repository,
	matchRepo match.Repository,
	statRepo playerstat.Repository,
	fetcher Fetcher,
	cfg RefreshConfig,
	logger *logging.Logger,
) (*RefreshService, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("%w: fetcher is required", ErrInvalidInput)
	}
	if len(cfg.Seasons) == 0 {
		return nil, fmt.Errorf("%w: at least one season is required", ErrInvalidInput)
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &RefreshService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		statRepo:  statRepo,
		fetcher:   fetcher,
		cfg:       cfg,
		logger:    logger,
		sleep:     sleepContext,
		jitter:    randomDuration,
	}, nil
}

// RefreshTeamMatches scrapes one team's schedule for one season and
// upserts the rows. Returns the number of matches written.
func (s *RefreshService) RefreshTeamMatches(ctx context.Context, teamID int64, season string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "RefreshService.RefreshTeamMatches")
	defer span.End()

	if season == "" {
		return 0, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	t, found, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return 0, fmt.Errorf("get team by id: %w", err)
	}
	if !found {
		return 0, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}

	return s.refreshTeamMatches(ctx, t, season)
}

func (s *RefreshService) refreshTeamMatches(ctx context.Context, t team.Team, season string) (int, error) {
	pageURL := t.ScheduleURL(season, season == s.currentSeason())
	matches, err := s.fetcher.TeamMatchLog(ctx, pageURL, t.ID, season)
	if err != nil {
		return 0, fmt.Errorf("%w: fetch match log team=%q season=%s: %v", ErrDependencyUnavailable, t.Name, season, err)
	}
	if len(matches) == 0 {
		s.logger.WarnContext(ctx, "no match data found", "team", t.Name, "season", season)
		return 0, nil
	}

	if err := s.matchRepo.UpsertBatch(ctx, matches); err != nil {
		return 0, fmt.Errorf("upsert matches team=%q season=%s: %w", t.Name, season, err)
	}
	s.logger.InfoContext(ctx, "match log updated", "team", t.Name, "season", season, "matches", len(matches))

	return len(matches), nil
}

// RefreshAllMatches walks every configured season for every stored team.
// A team whose fetch fails after exhausting retries is skipped; the batch
// carries on with the next one.
func (s *RefreshService) RefreshAllMatches(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "RefreshService.RefreshAllMatches")
	defer span.End()

	teams, err := s.listTeams(ctx)
	if err != nil {
		return err
	}

	for _, season := range s.cfg.Seasons {
		for _, t := range teams {
			if _, err := s.refreshTeamMatches(ctx, t, season); err != nil {
				if err := s.skipFetchFailure(ctx, err, "team", t.Name, "season", season); err != nil {
					return err
				}
			}
			if err := s.pauseBetweenTeams(ctx); err != nil {
				return err
			}
		}
	}

	return nil
}

// RefreshCurrentSeasonMatches re-scrapes only the season in progress,
// the cheap periodic variant of RefreshAllMatches.
func (s *RefreshService) RefreshCurrentSeasonMatches(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "RefreshService.RefreshCurrentSeasonMatches")
	defer span.End()

	teams, err := s.listTeams(ctx)
	if err != nil {
		return err
	}

	season := s.currentSeason()
	for _, t := range teams {
		if _, err := s.refreshTeamMatches(ctx, t, season); err != nil {
			if err := s.skipFetchFailure(ctx, err, "team", t.Name, "season", season); err != nil {
				return err
			}
		}
		if err := s.pauseBetweenTeams(ctx); err != nil {
			return err
		}
	}

	return nil
}

// RefreshAllMatchStats scrapes the match report of every played match
// with a report link, across all seasons and teams.
func (s *RefreshService) RefreshAllMatchStats(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "RefreshService.RefreshAllMatchStats")
	defer span.End()

	teams, err := s.listTeams(ctx)
	if err != nil {
		return err
	}

	for _, season := range s.cfg.Seasons {
		for _, t := range teams {
			matches, err := s.matchRepo.ListByTeamSeason(ctx, t.ID, season)
			if err != nil {
				return fmt.Errorf("list matches team=%q season=%s: %w", t.Name, season, err)
			}
			if len(matches) == 0 {
				s.logger.WarnContext(ctx, "no matches stored", "team", t.Name, "season", season)
				continue
			}
			for _, m := range matches {
				if err := s.refreshMatchStats(ctx, t.Name, m); err != nil {
					if err := s.skipFetchFailure(ctx, err, "team", t.Name, "opponent", m.Opponent, "season", m.Season); err != nil {
						return err
					}
				}
			}
		}
	}

	return nil
}

// RefreshLatestMatchStats covers only the current season's played
// matches, skipping matches whose stats are already stored.
func (s *RefreshService) RefreshLatestMatchStats(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "RefreshService.RefreshLatestMatchStats")
	defer span.End()

	teams, err := s.listTeams(ctx)
	if err != nil {
		return err
	}

	season := s.currentSeason()
	for _, t := range teams {
		matches, err := s.matchRepo.ListByTeamSeason(ctx, t.ID, season)
		if err != nil {
			return fmt.Errorf("list matches team=%q season=%s: %w", t.Name, season, err)
		}
		for _, m := range matches {
			count, err := s.statRepo.CountByMatch(ctx, m.ID)
			if err != nil {
				return fmt.Errorf("count stats match=%d: %w", m.ID, err)
			}
			if count > 0 {
				continue
			}
			if err := s.refreshMatchStats(ctx, t.Name, m); err != nil {
				if err := s.skipFetchFailure(ctx, err, "team", t.Name, "opponent", m.Opponent, "season", m.Season); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (s *RefreshService) refreshMatchStats(ctx context.Context, teamName string, m match.Match) error {
	if !m.Played() {
		return nil
	}
	if m.ReportURL == "" {
		s.logger.WarnContext(ctx, "played match has no report link",
			"team", teamName, "opponent", m.Opponent, "season", m.Season)
		return nil
	}

	homeTeam, awayTeam := teamName, m.Opponent
	if m.Venue == match.VenueAway {
		homeTeam, awayTeam = m.Opponent, teamName
	}

	stats, err := s.fetcher.MatchReportStats(ctx, m.ReportURL, homeTeam, awayTeam, m.Venue)
	if err != nil {
		return fmt.Errorf("%w: fetch match stats match=%d: %v", ErrDependencyUnavailable, m.ID, err)
	}
	if len(stats) == 0 {
		s.logger.WarnContext(ctx, "no player stats available",
			"team", teamName, "opponent", m.Opponent, "season", m.Season)
		return nil
	}

	for i := range stats {
		stats[i].MatchID = m.ID
	}
	if err := s.statRepo.UpsertBatch(ctx, stats); err != nil {
		return fmt.Errorf("upsert player stats match=%d: %w", m.ID, err)
	}
	s.logger.InfoContext(ctx, "player stats updated",
		"team", teamName, "opponent", m.Opponent, "season", m.Season, "players", len(stats))

	return nil
}

// skipFetchFailure downgrades an exhausted-retry fetch failure to a
// skipped unit so one failing page cannot abort a whole batch run.
// Cancellation and persistence errors still propagate.
func (s *RefreshService) skipFetchFailure(ctx context.Context, err error, fields ...any) error {
	if !errors.Is(err, ErrDependencyUnavailable) {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	s.logger.WarnContext(ctx, "skipping after fetch failure", append(fields, "error", err)...)

	return nil
}

func (s *RefreshService) listTeams(ctx context.Context) ([]team.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: no teams stored", ErrNotFound)
	}

	return teams, nil
}

func (s *RefreshService) currentSeason() string {
	return s.cfg.Seasons[0]
}

func (s *RefreshService) pauseBetweenTeams(ctx context.Context) error {
	if s.cfg.TeamPauseMax <= 0 {
		return nil
	}
	return s.sleep(ctx, s.jitter(s.cfg.TeamPauseMin, s.cfg.TeamPauseMax))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func randomDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
