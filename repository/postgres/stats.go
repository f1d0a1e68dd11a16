package postgres

import (
	"context"
	"database/sql"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type seasonStatsRepo Store

const seasonStatsColumns = `save_id, player_id, season_id, matches_played, games_played,
	total_impact, impact_sum_sq, avg_impact, avg_performance, best_performance, worst_performance,
	consistency_score, international_titles, regional_titles, champion_bonus, yearly_top_score,
	dominance_score, region_id, team_id, position`

func scanSeasonStats(row interface{ Scan(dest ...interface{}) error }) (*model.PlayerSeasonStatistics, error) {
	var s model.PlayerSeasonStatistics
	var impactSumSq float64
	var regionID, teamID sql.NullInt64
	var position string
	if err := row.Scan(&s.SaveID, &s.PlayerID, &s.SeasonID, &s.MatchesPlayed, &s.GamesPlayed,
		&s.TotalImpact, &impactSumSq, &s.AvgImpact, &s.AvgPerformance, &s.BestPerformance,
		&s.WorstPerformance, &s.ConsistencyScore, &s.InternationalTitles, &s.RegionalTitles,
		&s.ChampionBonus, &s.YearlyTopScore, &s.DominanceScore, &regionID, &teamID, &position); err != nil {
		return nil, err
	}
	s.RestoreImpactSumSq(impactSumSq)
	if regionID.Valid {
		v := uint64(regionID.Int64)
		s.RegionID = &v
	}
	if teamID.Valid {
		v := uint64(teamID.Int64)
		s.TeamID = &v
	}
	pos, err := model.ParsePosition(position)
	if err != nil {
		return nil, err
	}
	s.Position = pos
	return &s, nil
}

func (r *seasonStatsRepo) Get(ctx context.Context, saveID string, playerID uint64, season uint32) (*model.PlayerSeasonStatistics, error) {
	st := (*Store)(r)
	row := st.db.QueryRowContext(ctx, `
		SELECT `+seasonStatsColumns+` FROM player_season_statistics
		WHERE save_id = $1 AND player_id = $2 AND season_id = $3`, saveID, playerID, season)
	s, err := scanSeasonStats(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundError("PlayerSeasonStatistics", playerID)
		}
		return nil, errors.Wrap(errors.PersistenceError, "get season stats", err)
	}
	return s, nil
}

func (r *seasonStatsRepo) ListBySaveSeason(ctx context.Context, saveID string, season uint32) ([]*model.PlayerSeasonStatistics, error) {
	st := (*Store)(r)
	rows, err := st.db.QueryContext(ctx, `
		SELECT `+seasonStatsColumns+` FROM player_season_statistics
		WHERE save_id = $1 AND season_id = $2 ORDER BY player_id`, saveID, season)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list season stats", err)
	}
	defer rows.Close()
	var out []*model.PlayerSeasonStatistics
	for rows.Next() {
		s, err := scanSeasonStats(rows)
		if err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "scan season stats", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// BatchUpsert flushes the phase-held season-stats map in one transaction
// at phase completion, so a phase makes one batched write instead of per-match round trips.
func (r *seasonStatsRepo) BatchUpsert(ctx context.Context, stats []*model.PlayerSeasonStatistics) error {
	st := (*Store)(r)
	for _, s := range stats {
		var regionID, teamID interface{}
		if s.RegionID != nil {
			regionID = *s.RegionID
		}
		if s.TeamID != nil {
			teamID = *s.TeamID
		}
		_, err := st.db.ExecContext(ctx, `
			INSERT INTO player_season_statistics (save_id, player_id, season_id, matches_played,
				games_played, total_impact, impact_sum_sq, avg_impact, avg_performance,
				best_performance, worst_performance, consistency_score, international_titles,
				regional_titles, champion_bonus, yearly_top_score, dominance_score, region_id,
				team_id, position)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
			ON CONFLICT (save_id, player_id, season_id) DO UPDATE SET
				matches_played = EXCLUDED.matches_played, games_played = EXCLUDED.games_played,
				total_impact = EXCLUDED.total_impact, impact_sum_sq = EXCLUDED.impact_sum_sq,
				avg_impact = EXCLUDED.avg_impact, avg_performance = EXCLUDED.avg_performance,
				best_performance = EXCLUDED.best_performance, worst_performance = EXCLUDED.worst_performance,
				consistency_score = EXCLUDED.consistency_score,
				international_titles = EXCLUDED.international_titles,
				regional_titles = EXCLUDED.regional_titles, champion_bonus = EXCLUDED.champion_bonus,
				yearly_top_score = EXCLUDED.yearly_top_score, dominance_score = EXCLUDED.dominance_score,
				region_id = EXCLUDED.region_id, team_id = EXCLUDED.team_id, position = EXCLUDED.position`,
			s.SaveID, s.PlayerID, s.SeasonID, s.MatchesPlayed, s.GamesPlayed, s.TotalImpact,
			s.ImpactSumSq(), s.AvgImpact, s.AvgPerformance, s.BestPerformance, s.WorstPerformance,
			s.ConsistencyScore, s.InternationalTitles, s.RegionalTitles, s.ChampionBonus,
			s.YearlyTopScore, s.DominanceScore, regionID, teamID, s.Position.String())
		if err != nil {
			return errors.Wrap(errors.PersistenceError, "upsert season stats", err)
		}
	}
	return nil
}

type tournamentStatsRepo Store

const tournamentStatsColumns = `save_id, tournament_id, player_id, games_played, games_won,
	avg_impact, total_impact, max_impact, avg_performance, total_performance, best_performance, game_mvp_count`

func scanTournamentStats(row interface{ Scan(dest ...interface{}) error }) (*model.PlayerTournamentStats, error) {
	var s model.PlayerTournamentStats
	var totalImpact, totalPerformance float64
	if err := row.Scan(&s.SaveID, &s.TournamentID, &s.PlayerID, &s.GamesPlayed, &s.GamesWon,
		&s.AvgImpact, &totalImpact, &s.MaxImpact, &s.AvgPerformance, &totalPerformance,
		&s.BestPerformance, &s.GameMvpCount); err != nil {
		return nil, err
	}
	s.RestoreTotals(totalImpact, totalPerformance)
	return &s, nil
}

func (r *tournamentStatsRepo) Get(ctx context.Context, saveID string, tournamentID, playerID uint64) (*model.PlayerTournamentStats, error) {
	st := (*Store)(r)
	row := st.db.QueryRowContext(ctx, `
		SELECT `+tournamentStatsColumns+` FROM player_tournament_stats
		WHERE save_id = $1 AND tournament_id = $2 AND player_id = $3`, saveID, tournamentID, playerID)
	s, err := scanTournamentStats(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundError("PlayerTournamentStats", playerID)
		}
		return nil, errors.Wrap(errors.PersistenceError, "get tournament stats", err)
	}
	return s, nil
}

func (r *tournamentStatsRepo) ListByTournament(ctx context.Context, saveID string, tournamentID uint64) ([]*model.PlayerTournamentStats, error) {
	st := (*Store)(r)
	rows, err := st.db.QueryContext(ctx, `
		SELECT `+tournamentStatsColumns+` FROM player_tournament_stats
		WHERE save_id = $1 AND tournament_id = $2 ORDER BY player_id`, saveID, tournamentID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list tournament stats", err)
	}
	defer rows.Close()
	var out []*model.PlayerTournamentStats
	for rows.Next() {
		s, err := scanTournamentStats(rows)
		if err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "scan tournament stats", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *tournamentStatsRepo) BatchUpsert(ctx context.Context, stats []*model.PlayerTournamentStats) error {
	st := (*Store)(r)
	for _, s := range stats {
		_, err := st.db.ExecContext(ctx, `
			INSERT INTO player_tournament_stats (save_id, tournament_id, player_id, games_played,
				games_won, avg_impact, total_impact, max_impact, avg_performance, total_performance,
				best_performance, game_mvp_count)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			ON CONFLICT (save_id, tournament_id, player_id) DO UPDATE SET
				games_played = EXCLUDED.games_played, games_won = EXCLUDED.games_won,
				avg_impact = EXCLUDED.avg_impact, total_impact = EXCLUDED.total_impact,
				max_impact = EXCLUDED.max_impact, avg_performance = EXCLUDED.avg_performance,
				total_performance = EXCLUDED.total_performance,
				best_performance = EXCLUDED.best_performance, game_mvp_count = EXCLUDED.game_mvp_count`,
			s.SaveID, s.TournamentID, s.PlayerID, s.GamesPlayed, s.GamesWon, s.AvgImpact,
			s.TotalImpact(), s.MaxImpact, s.AvgPerformance, s.TotalPerformance(), s.BestPerformance, s.GameMvpCount)
		if err != nil {
			return errors.Wrap(errors.PersistenceError, "upsert tournament stats", err)
		}
	}
	return nil
}
