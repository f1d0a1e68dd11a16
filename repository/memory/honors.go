package memory

import "context"
import "esports-career-sim/model"

type honorRepo Store

func (r *honorRepo) Create(ctx context.Context, h *model.Honor) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	if h.ID == 0 {
		h.ID = st.nextIDLocked()
	}
	cp := *h
	st.honors[h.ID] = &cp
	return nil
}

func (r *honorRepo) ExistsForTournament(ctx context.Context, saveID string, tournamentID uint64, ht model.HonorType) (bool, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, h := range st.honors {
		if h.SaveID == saveID && h.HonorType == ht && h.TournamentID != nil && *h.TournamentID == tournamentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *honorRepo) ExistsAnnualForSeason(ctx context.Context, saveID string, season uint32) (bool, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, h := range st.honors {
		if h.SaveID == saveID && h.SeasonID == season && h.HonorType.IsAnnual() {
			return true, nil
		}
	}
	return false, nil
}

func (r *honorRepo) ListBySaveSeason(ctx context.Context, saveID string, season uint32) ([]*model.Honor, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []*model.Honor
	for _, h := range st.honors {
		if h.SaveID == saveID && h.SeasonID == season {
			cp := *h
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *honorRepo) DeleteBySeason(ctx context.Context, saveID string, season uint32) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, h := range st.honors {
		if h.SaveID == saveID && h.SeasonID == season {
			delete(st.honors, id)
		}
	}
	return nil
}
