package memory

import (
	"context"
	"fmt"

	"esports-career-sim/model"
)

type pointsRepo Store

func pointsKey(saveID string, season uint32, teamID, tournamentID uint64) string {
	return fmt.Sprintf("%s:%d:%d:%d", saveID, season, teamID, tournamentID)
}

// Insert implements the (save_id, season_id, team_id, tournament_id)
// natural idempotency key: a duplicate insert is a no-op, not an
// error.
func (r *pointsRepo) Insert(ctx context.Context, d *model.AnnualPointsDetail) (bool, error) {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	key := pointsKey(d.SaveID, d.SeasonID, d.TeamID, d.TournamentID)
	if _, exists := st.points[key]; exists {
		return false, nil
	}
	if d.ID == 0 {
		d.ID = st.nextIDLocked()
	}
	cp := *d
	st.points[key] = &cp
	return true, nil
}

func (r *pointsRepo) ListBySaveSeason(ctx context.Context, saveID string, season uint32) ([]*model.AnnualPointsDetail, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []*model.AnnualPointsDetail
	for _, d := range st.points {
		if d.SaveID == saveID && d.SeasonID == season {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *pointsRepo) DeleteBySeason(ctx context.Context, saveID string, season uint32) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	for key, d := range st.points {
		if d.SaveID == saveID && d.SeasonID == season {
			delete(st.points, key)
		}
	}
	return nil
}
