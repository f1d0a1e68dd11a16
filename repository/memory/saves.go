package memory

import (
	"context"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type saveRepo Store

func (r *saveRepo) Create(ctx context.Context, s *model.Save) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, exists := st.saves[s.ID]; exists {
		return errors.New(errors.ValidationFailed, "save already exists: "+s.ID)
	}
	cp := *s
	st.saves[s.ID] = &cp
	return nil
}

func (r *saveRepo) Get(ctx context.Context, saveID string) (*model.Save, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.saves[saveID]
	if !ok {
		return nil, errors.NotFoundError("Save", saveID)
	}
	cp := *s
	return &cp, nil
}

func (r *saveRepo) Update(ctx context.Context, s *model.Save) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.saves[s.ID]; !ok {
		return errors.NotFoundError("Save", s.ID)
	}
	cp := *s
	st.saves[s.ID] = &cp
	return nil
}

func (r *saveRepo) Delete(ctx context.Context, saveID string) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.saves, saveID)
	for id, t := range st.teams {
		if t.SaveID == saveID {
			delete(st.teams, id)
		}
	}
	for id, p := range st.players {
		if p.SaveID == saveID {
			delete(st.players, id)
		}
	}
	for id, t := range st.tournaments {
		if t.SaveID == saveID {
			delete(st.tournaments, id)
		}
	}
	for id, rg := range st.regions {
		if rg.SaveID == saveID {
			delete(st.regions, id)
		}
	}
	return nil
}
