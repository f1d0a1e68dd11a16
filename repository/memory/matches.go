package memory

import (
	"context"
	"sort"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type matchRepo Store

func (r *matchRepo) Create(ctx context.Context, m *model.Match) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	return createMatchLocked(st, m)
}

func createMatchLocked(st *Store, m *model.Match) error {
	if m.ID == 0 {
		m.ID = st.nextIDLocked()
	}
	cp := *m
	st.matches[m.ID] = &cp
	return nil
}

func (r *matchRepo) BatchCreate(ctx context.Context, matches []*model.Match) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, m := range matches {
		if err := createMatchLocked(st, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *matchRepo) Get(ctx context.Context, id uint64) (*model.Match, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	m, ok := st.matches[id]
	if !ok {
		return nil, errors.NotFoundError("Match", id)
	}
	cp := *m
	return &cp, nil
}

func (r *matchRepo) Update(ctx context.Context, m *model.Match) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.matches[m.ID]; !ok {
		return errors.NotFoundError("Match", m.ID)
	}
	cp := *m
	st.matches[m.ID] = &cp
	return nil
}

func orderKey(m *model.Match) (int, int, uint64) {
	round := 0
	if m.Round != nil {
		round = *m.Round
	}
	order := 0
	if m.MatchOrder != nil {
		order = *m.MatchOrder
	}
	return round, order, m.ID
}

func sortMatches(matches []*model.Match) {
	sort.Slice(matches, func(i, j int) bool {
		ri, oi, idi := orderKey(matches[i])
		rj, oj, idj := orderKey(matches[j])
		if ri != rj {
			return ri < rj
		}
		if oi != oj {
			return oi < oj
		}
		return idi < idj
	})
}

func (r *matchRepo) ListPending(ctx context.Context, tournamentID uint64) ([]*model.Match, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []*model.Match
	for _, m := range st.matches {
		if m.TournamentID == tournamentID && m.Status == model.MatchScheduled {
			cp := *m
			out = append(out, &cp)
		}
	}
	sortMatches(out)
	return out, nil
}

func (r *matchRepo) ListByTournament(ctx context.Context, tournamentID uint64) ([]*model.Match, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []*model.Match
	for _, m := range st.matches {
		if m.TournamentID == tournamentID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sortMatches(out)
	return out, nil
}

func (r *matchRepo) CreateGame(ctx context.Context, g *model.MatchGame) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	if g.ID == 0 {
		g.ID = st.nextIDLocked()
	}
	cp := *g
	st.games[g.ID] = &cp
	return nil
}

func (r *matchRepo) CreatePerformances(ctx context.Context, perfs []*model.GamePlayerPerformance) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, p := range perfs {
		if p.ID == 0 {
			p.ID = st.nextIDLocked()
		}
		cp := *p
		st.perfs = append(st.perfs, &cp)
	}
	return nil
}

func (r *matchRepo) ListGames(ctx context.Context, matchID uint64) ([]*model.MatchGame, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []*model.MatchGame
	for _, g := range st.games {
		if g.MatchID == matchID {
			cp := *g
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameNumber < out[j].GameNumber })
	return out, nil
}
