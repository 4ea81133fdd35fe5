package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/statfield/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byKey   map[match.Key]int64
	matches map[int64]match.Match
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		nextID:  1,
		byKey:   make(map[match.Key]int64),
		matches: make(map[int64]match.Match),
	}
}

func (r *MatchRepository) ListByTeamSeason(_ context.Context, teamID int64, season string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []match.Match
	for _, m := range r.matches {
		if m.TeamID == teamID && m.Season == season {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *MatchRepository) UpsertBatch(_ context.Context, matches []match.Match) error {
	for _, m := range matches {
		if err := m.Validate(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range matches {
		key := m.Key()
		if id, ok := r.byKey[key]; ok {
			m.ID = id
		} else {
			m.ID = r.nextID
			r.nextID++
			r.byKey[key] = m.ID
		}
		r.matches[m.ID] = m
	}

	return nil
}
