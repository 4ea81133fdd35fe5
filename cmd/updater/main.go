package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/riskibarqy/statfield/external/fbref"
	"github.com/riskibarqy/statfield/internal/config"
	"github.com/riskibarqy/statfield/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/statfield/internal/platform/logging"
	"github.com/riskibarqy/statfield/internal/platform/resilience"
	"github.com/riskibarqy/statfield/internal/usecase"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	command := strings.ToLower(strings.TrimSpace(os.Args[1]))

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
		"env", cfg.AppEnv,
	)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	db, err := sqlx.Connect("postgres", cfg.DBURL)
	if err != nil {
		logger.Error("connect database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	client := fbref.NewClient(fbref.ClientConfig{
		BaseURL:    cfg.ScrapeBaseURL,
		UserAgent:  cfg.ScrapeUserAgent,
		Timeout:    cfg.ScrapeTimeout,
		MaxRetries: cfg.ScrapeMaxRetries,
		RetryDelay: cfg.ScrapeRetryDelay,
		JitterMin:  cfg.ScrapeJitterMin,
		JitterMax:  cfg.ScrapeJitterMax,
		Circuit: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ScrapeCircuitEnabled,
			FailureThreshold: cfg.ScrapeCircuitFailureCount,
			OpenTimeout:      cfg.ScrapeCircuitOpenTimeout,
		},
		Logger: logger,
	})

	refresh, err := usecase.NewRefreshService(
		postgres.NewTeamRepository(db),
		postgres.NewMatchRepository(db),
		postgres.NewPlayerStatRepository(db),
		client,
		usecase.RefreshConfig{
			Seasons:      cfg.Seasons,
			TeamPauseMin: cfg.TeamPauseMin,
			TeamPauseMax: cfg.TeamPauseMax,
		},
		logger,
	)
	if err != nil {
		logger.Error("build refresh service", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch command {
	case "matches":
		err = refresh.RefreshAllMatches(ctx)
	case "current":
		err = refresh.RefreshCurrentSeasonMatches(ctx)
	case "stats":
		err = refresh.RefreshAllMatchStats(ctx)
	case "latest":
		err = refresh.RefreshLatestMatchStats(ctx)
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("update failed", "command", command, "error", err)
		os.Exit(1)
	}
	logger.Info("update finished", "command", command)
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <matches|current|stats|latest>\n", prog)
	fmt.Fprintln(os.Stderr, "  matches  scrape and upsert every configured season's match logs")
	fmt.Fprintln(os.Stderr, "  current  scrape and upsert only the current season's match logs")
	fmt.Fprintln(os.Stderr, "  stats    scrape player stats for every stored played match")
	fmt.Fprintln(os.Stderr, "  latest   scrape player stats for current-season matches missing them")
}
