package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/statfield/internal/domain/playerstat"
)

type PlayerStatRepository struct {
	mu     sync.RWMutex
	nextID int64
	byKey  map[playerstat.Key]int64
	stats  map[int64]playerstat.PlayerMatchStat
}

func NewPlayerStatRepository() *PlayerStatRepository {
	return &PlayerStatRepository{
		nextID: 1,
		byKey:  make(map[playerstat.Key]int64),
		stats:  make(map[int64]playerstat.PlayerMatchStat),
	}
}

func (r *PlayerStatRepository) ListByMatch(_ context.Context, matchID int64) ([]playerstat.PlayerMatchStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []playerstat.PlayerMatchStat
	for _, s := range r.stats {
		if s.MatchID == matchID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *PlayerStatRepository) CountByMatch(_ context.Context, matchID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, s := range r.stats {
		if s.MatchID == matchID {
			count++
		}
	}

	return count, nil
}

func (r *PlayerStatRepository) UpsertBatch(_ context.Context, stats []playerstat.PlayerMatchStat) error {
	for _, s := range stats {
		if err := s.Validate(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range stats {
		key := s.Key()
		if id, ok := r.byKey[key]; ok {
			s.ID = id
		} else {
			s.ID = r.nextID
			r.nextID++
			r.byKey[key] = s.ID
		}
		r.stats[s.ID] = s
	}

	return nil
}
