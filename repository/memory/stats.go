package memory

import (
	"context"
	"fmt"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type seasonStatsRepo Store

func seasonStatsKey(saveID string, playerID uint64, season uint32) string {
	return fmt.Sprintf("%s:%d:%d", saveID, playerID, season)
}

func (r *seasonStatsRepo) Get(ctx context.Context, saveID string, playerID uint64, season uint32) (*model.PlayerSeasonStatistics, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.seasonStats[seasonStatsKey(saveID, playerID, season)]
	if !ok {
		return nil, errors.NotFoundError("PlayerSeasonStatistics", playerID)
	}
	cp := *s
	return &cp, nil
}

func (r *seasonStatsRepo) ListBySaveSeason(ctx context.Context, saveID string, season uint32) ([]*model.PlayerSeasonStatistics, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []*model.PlayerSeasonStatistics
	for _, s := range st.seasonStats {
		if s.SaveID == saveID && s.SeasonID == season {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *seasonStatsRepo) BatchUpsert(ctx context.Context, stats []*model.PlayerSeasonStatistics) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, s := range stats {
		cp := *s
		st.seasonStats[seasonStatsKey(s.SaveID, s.PlayerID, s.SeasonID)] = &cp
	}
	return nil
}

type tournamentStatsRepo Store

func tournamentStatsKey(saveID string, tournamentID, playerID uint64) string {
	return fmt.Sprintf("%s:%d:%d", saveID, tournamentID, playerID)
}

func (r *tournamentStatsRepo) Get(ctx context.Context, saveID string, tournamentID, playerID uint64) (*model.PlayerTournamentStats, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.tourneyStats[tournamentStatsKey(saveID, tournamentID, playerID)]
	if !ok {
		return nil, errors.NotFoundError("PlayerTournamentStats", playerID)
	}
	cp := *s
	return &cp, nil
}

func (r *tournamentStatsRepo) ListByTournament(ctx context.Context, saveID string, tournamentID uint64) ([]*model.PlayerTournamentStats, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []*model.PlayerTournamentStats
	for _, s := range st.tourneyStats {
		if s.SaveID == saveID && s.TournamentID == tournamentID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *tournamentStatsRepo) BatchUpsert(ctx context.Context, stats []*model.PlayerTournamentStats) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, s := range stats {
		cp := *s
		st.tourneyStats[tournamentStatsKey(s.SaveID, s.TournamentID, s.PlayerID)] = &cp
	}
	return nil
}
