package fbref

import (
	"context"
	stderrors "errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/statfield/internal/domain/match"
	"github.com/riskibarqy/statfield/internal/domain/playerstat"
	"github.com/riskibarqy/statfield/internal/platform/logging"
	"github.com/riskibarqy/statfield/internal/platform/resilience"
)

var errFBRefTransient = crerr.New("fbref transient failure")

// IsTransient reports whether an error came from a retryable upstream
// condition (rate limiting, network failure) that exhausted its retries.
func IsTransient(err error) bool {
	return stderrors.Is(err, errFBRefTransient)
}

type ClientConfig struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	// RetryDelay is the first backoff after a 429; it doubles per attempt.
	RetryDelay time.Duration
	// JitterMin/JitterMax bound the mandatory pause after every successful
	// fetch. Removing the pause trips the site's abuse thresholds.
	JitterMin time.Duration
	JitterMax time.Duration
	Circuit   resilience.CircuitBreakerConfig
	Logger    *logging.Logger
}

// Client fetches and normalizes stats-site pages. It is built for the
// serialized batch pipeline: one request in flight at a time, mandatory
// pacing between requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxRetries int
	retryDelay time.Duration
	jitterMin  time.Duration
	jitterMax  time.Duration

	circuitEnabled bool
	breaker        *resilience.CircuitBreaker
	logger         *logging.Logger

	// Injectable for tests.
	sleep  func(ctx context.Context, d time.Duration) error
	jitter func(min, max time.Duration) time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://fbref.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 30 * time.Second
	}
	if cfg.JitterMin <= 0 {
		cfg.JitterMin = 6 * time.Second
	}
	if cfg.JitterMax < cfg.JitterMin {
		cfg.JitterMax = cfg.JitterMin
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	circuit := resilience.NormalizeCircuitBreakerConfig(cfg.Circuit)

	return &Client{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent:      cfg.UserAgent,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay,
		jitterMin:      cfg.JitterMin,
		jitterMax:      cfg.JitterMax,
		circuitEnabled: circuit.Enabled,
		breaker:        resilience.NewCircuitBreaker(circuit.FailureThreshold, circuit.OpenTimeout),
		logger:         cfg.Logger,
		sleep:          sleepContext,
		jitter:         randomDuration,
	}
}

// TeamMatchLog fetches one team season schedule page and normalizes its
// match log. A page without the schedule table yields an empty slice:
// that is a soft miss, not an error.
func (c *Client) TeamMatchLog(ctx context.Context, pageURL string, teamID int64, season string) ([]match.Match, error) {
	doc, err := c.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	tbl, ok := TableByID(doc, matchLogTableID, c.baseURL)
	if !ok {
		c.logger.WarnContext(ctx, "match log table not found", "url", pageURL)
		return nil, nil
	}

	return matchLogRecords(tbl, teamID, season), nil
}

// MatchReportStats fetches one match report and returns the unified
// per-player stat records for both sides. Missing stat tables short-
// circuit to an empty result.
func (c *Client) MatchReportStats(ctx context.Context, reportURL, homeTeam, awayTeam, venue string) ([]playerstat.PlayerMatchStat, error) {
	doc, err := c.fetchDocument(ctx, reportURL)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	fieldTables := TablesMatching(doc, fieldStatsTablePattern, c.baseURL)
	keeperTables := TablesMatching(doc, keeperStatsTablePattern, c.baseURL)
	if len(fieldTables) == 0 {
		c.logger.WarnContext(ctx, "no field player stats tables", "url", reportURL, "home", homeTeam, "away", awayTeam)
	}
	if len(keeperTables) == 0 {
		c.logger.WarnContext(ctx, "no keeper stats tables", "url", reportURL, "home", homeTeam, "away", awayTeam)
	}

	return matchStatRecords(fieldTables, keeperTables, homeTeam, awayTeam, venue), nil
}

// fetchDocument retrieves one page. 429 responses retry with doubling
// backoff; other non-200 statuses degrade to a nil document so callers
// treat the unit as "no data". Every success is followed by the pacing
// jitter before returning control to the caller's loop.
func (c *Client) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			return nil, fmt.Errorf("%w: %v", errFBRefTransient, err)
		}
	}

	doc, err := c.executeFetch(ctx, pageURL)
	if c.circuitEnabled {
		switch {
		case err != nil && !stderrors.Is(err, context.Canceled):
			c.breaker.RecordFailure()
		case err == nil && doc != nil:
			c.breaker.RecordSuccess()
		}
		// A degraded page (non-200 turned into a nil doc) records neither:
		// it must not reset the failure count under a flapping upstream.
	}
	if err != nil || doc == nil {
		return nil, err
	}

	if err := c.sleep(ctx, c.jitter(c.jitterMin, c.jitterMax)); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Client) executeFetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	retryDelay := c.retryDelay
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFBRefTransient, err)
		} else {
			switch {
			case resp.StatusCode == http.StatusTooManyRequests:
				_ = resp.Body.Close()
				lastErr = fmt.Errorf("%w: rate limited status=429", errFBRefTransient)
				c.logger.WarnContext(ctx, "rate limited, backing off", "url", pageURL, "delay", retryDelay.String())
			case resp.StatusCode != http.StatusOK:
				status := resp.StatusCode
				_ = resp.Body.Close()
				c.logger.WarnContext(ctx, "unexpected status, skipping page", "url", pageURL, "status", status)
				return nil, nil
			default:
				doc, parseErr := goquery.NewDocumentFromReader(resp.Body)
				_ = resp.Body.Close()
				if parseErr != nil {
					return nil, fmt.Errorf("parse document: %w", parseErr)
				}
				return doc, nil
			}
		}

		if attempt == c.maxRetries {
			break
		}
		if err := c.sleep(ctx, retryDelay); err != nil {
			return nil, err
		}
		retryDelay *= 2
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: request failed", errFBRefTransient)
	}
	c.logger.WarnContext(ctx, "fetch failed after retries", "url", pageURL, "error", lastErr)
	return nil, lastErr
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
