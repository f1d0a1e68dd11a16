package memory

import (
	"context"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type teamRepo Store

func (r *teamRepo) Create(ctx context.Context, t *model.Team) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	if t.ID == 0 {
		t.ID = st.nextIDLocked()
	}
	cp := *t
	st.teams[t.ID] = &cp
	return nil
}

func (r *teamRepo) Get(ctx context.Context, id uint64) (*model.Team, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	t, ok := st.teams[id]
	if !ok {
		return nil, errors.NotFoundError("Team", id)
	}
	cp := *t
	return &cp, nil
}

func (r *teamRepo) Update(ctx context.Context, t *model.Team) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.teams[t.ID]; !ok {
		return errors.NotFoundError("Team", t.ID)
	}
	cp := *t
	st.teams[t.ID] = &cp
	return nil
}

func (r *teamRepo) ListBySave(ctx context.Context, saveID string) ([]*model.Team, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []*model.Team
	for _, t := range st.teams {
		if t.SaveID == saveID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *teamRepo) ListByRegion(ctx context.Context, regionID uint64) ([]*model.Team, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []*model.Team
	for _, t := range st.teams {
		if t.RegionID == regionID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}
