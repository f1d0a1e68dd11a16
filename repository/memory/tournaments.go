package memory

import (
	"context"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type tournamentRepo Store

func (r *tournamentRepo) Create(ctx context.Context, t *model.Tournament) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	if t.ID == 0 {
		t.ID = st.nextIDLocked()
	}
	cp := *t
	st.tournaments[t.ID] = &cp
	return nil
}

func (r *tournamentRepo) Get(ctx context.Context, id uint64) (*model.Tournament, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	t, ok := st.tournaments[id]
	if !ok {
		return nil, errors.NotFoundError("Tournament", id)
	}
	cp := *t
	return &cp, nil
}

func (r *tournamentRepo) Update(ctx context.Context, t *model.Tournament) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.tournaments[t.ID]; !ok {
		return errors.NotFoundError("Tournament", t.ID)
	}
	cp := *t
	st.tournaments[t.ID] = &cp
	return nil
}

func (r *tournamentRepo) ListBySavePhase(ctx context.Context, saveID string, season uint32, tt model.TournamentType) ([]*model.Tournament, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []*model.Tournament
	for _, t := range st.tournaments {
		if t.SaveID == saveID && t.SeasonID == season && t.TournamentType == tt {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *tournamentRepo) ListBySaveSeason(ctx context.Context, saveID string, season uint32) ([]*model.Tournament, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []*model.Tournament
	for _, t := range st.tournaments {
		if t.SaveID == saveID && t.SeasonID == season {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}
