package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/statfield/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	nextID int64
	teams  []team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	repo := &TeamRepository{nextID: 1}
	for _, t := range teams {
		_ = repo.Upsert(context.Background(), t)
	}

	return repo
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	out = append(out, r.teams...)

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.teams {
		if t.ID == id {
			return t, true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) Upsert(_ context.Context, t team.Team) error {
	if err := t.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.teams {
		if r.teams[idx].Name == t.Name {
			t.ID = r.teams[idx].ID
			r.teams[idx] = t
			return nil
		}
	}
	if t.ID == 0 {
		t.ID = r.nextID
	}
	if t.ID >= r.nextID {
		r.nextID = t.ID + 1
	}
	r.teams = append(r.teams, t)

	return nil
}
