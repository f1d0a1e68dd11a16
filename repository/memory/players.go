package memory

import (
	"context"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type playerRepo Store

func (r *playerRepo) Create(ctx context.Context, p *model.Player) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	if p.ID == 0 {
		p.ID = st.nextIDLocked()
	}
	cp := *p
	st.players[p.ID] = &cp
	return nil
}

func (r *playerRepo) Get(ctx context.Context, id uint64) (*model.Player, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	p, ok := st.players[id]
	if !ok {
		return nil, errors.NotFoundError("Player", id)
	}
	cp := *p
	return &cp, nil
}

func (r *playerRepo) Update(ctx context.Context, p *model.Player) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.players[p.ID]; !ok {
		return errors.NotFoundError("Player", p.ID)
	}
	cp := *p
	st.players[p.ID] = &cp
	return nil
}

func (r *playerRepo) BatchUpdate(ctx context.Context, players []*model.Player) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, p := range players {
		cp := *p
		st.players[p.ID] = &cp
	}
	return nil
}

func (r *playerRepo) ListByTeam(ctx context.Context, teamID uint64) ([]*model.Player, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []*model.Player
	for _, p := range st.players {
		if p.TeamID != nil && *p.TeamID == teamID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *playerRepo) ListBySave(ctx context.Context, saveID string) ([]*model.Player, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []*model.Player
	for _, p := range st.players {
		if p.SaveID == saveID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *playerRepo) ListFreeAgentsBySave(ctx context.Context, saveID string) ([]*model.Player, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []*model.Player
	for _, p := range st.players {
		if p.SaveID == saveID && p.Status == model.FreeAgent {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}
