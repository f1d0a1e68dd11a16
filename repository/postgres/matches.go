package postgres

import (
	"context"
	"database/sql"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type matchRepo Store

const matchColumns = `id, save_id, tournament_id, stage, round, match_order, format,
	home_team_id, away_team_id, home_score, away_score, winner_id, status, played_at`

func scanMatch(row interface{ Scan(dest ...interface{}) error }) (*model.Match, error) {
	var m model.Match
	var format, status string
	var round, matchOrder sql.NullInt64
	var winnerID sql.NullInt64
	var playedAt sql.NullTime
	if err := row.Scan(&m.ID, &m.SaveID, &m.TournamentID, &m.Stage, &round, &matchOrder, &format,
		&m.HomeTeamID, &m.AwayTeamID, &m.HomeScore, &m.AwayScore, &winnerID, &status, &playedAt); err != nil {
		return nil, err
	}
	var err error
	if m.Format, err = model.ParseMatchFormat(format); err != nil {
		return nil, err
	}
	if m.Status, err = model.ParseMatchStatus(status); err != nil {
		return nil, err
	}
	if round.Valid {
		v := int(round.Int64)
		m.Round = &v
	}
	if matchOrder.Valid {
		v := int(matchOrder.Int64)
		m.MatchOrder = &v
	}
	if winnerID.Valid {
		v := uint64(winnerID.Int64)
		m.WinnerID = &v
	}
	if playedAt.Valid {
		m.PlayedAt = &playedAt.Time
	}
	return &m, nil
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableUint64(v *uint64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func (r *matchRepo) Create(ctx context.Context, m *model.Match) error {
	st := (*Store)(r)
	err := st.db.QueryRowContext(ctx, `
		INSERT INTO matches (save_id, tournament_id, stage, round, match_order, format,
			home_team_id, away_team_id, home_score, away_score, winner_id, status, played_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13) RETURNING id`,
		m.SaveID, m.TournamentID, m.Stage, nullableInt(m.Round), nullableInt(m.MatchOrder),
		m.Format.String(), m.HomeTeamID, m.AwayTeamID, m.HomeScore, m.AwayScore,
		nullableUint64(m.WinnerID), m.Status.String(), m.PlayedAt).Scan(&m.ID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "create match", err)
	}
	return nil
}

func (r *matchRepo) BatchCreate(ctx context.Context, matches []*model.Match) error {
	for _, m := range matches {
		if err := r.Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *matchRepo) Get(ctx context.Context, id uint64) (*model.Match, error) {
	st := (*Store)(r)
	row := st.db.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	m, err := scanMatch(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundError("Match", id)
		}
		return nil, errors.Wrap(errors.PersistenceError, "get match", err)
	}
	return m, nil
}

func (r *matchRepo) Update(ctx context.Context, m *model.Match) error {
	st := (*Store)(r)
	res, err := st.db.ExecContext(ctx, `
		UPDATE matches SET stage=$2, round=$3, match_order=$4, format=$5, home_team_id=$6,
			away_team_id=$7, home_score=$8, away_score=$9, winner_id=$10, status=$11, played_at=$12
		WHERE id=$1`,
		m.ID, m.Stage, nullableInt(m.Round), nullableInt(m.MatchOrder), m.Format.String(),
		m.HomeTeamID, m.AwayTeamID, m.HomeScore, m.AwayScore, nullableUint64(m.WinnerID),
		m.Status.String(), m.PlayedAt)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "update match", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFoundError("Match", m.ID)
	}
	return nil
}

// ListPending returns Scheduled matches for a tournament ordered by
// (round, match_order, id), so replays drain in one canonical order. NULLS FIRST
// keeps un-seeded bracket-advancer rounds (which carry no round number
// yet) ahead of explicitly numbered ones, matching the in-memory store's
// Go-side sort which treats a nil *int as the lowest key.
func (r *matchRepo) ListPending(ctx context.Context, tournamentID uint64) ([]*model.Match, error) {
	st := (*Store)(r)
	rows, err := st.db.QueryContext(ctx, `
		SELECT `+matchColumns+` FROM matches
		WHERE tournament_id = $1 AND status = $2
		ORDER BY round NULLS FIRST, match_order NULLS FIRST, id`,
		tournamentID, model.MatchScheduled.String())
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list pending matches", err)
	}
	defer rows.Close()
	var out []*model.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "scan match", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *matchRepo) ListByTournament(ctx context.Context, tournamentID uint64) ([]*model.Match, error) {
	st := (*Store)(r)
	rows, err := st.db.QueryContext(ctx, `
		SELECT `+matchColumns+` FROM matches
		WHERE tournament_id = $1
		ORDER BY round NULLS FIRST, match_order NULLS FIRST, id`, tournamentID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list matches by tournament", err)
	}
	defer rows.Close()
	var out []*model.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "scan match", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *matchRepo) CreateGame(ctx context.Context, g *model.MatchGame) error {
	st := (*Store)(r)
	err := st.db.QueryRowContext(ctx, `
		INSERT INTO match_games (match_id, game_number, winner_team_id, loser_team_id,
			duration_minutes, mvp_player_id, home_power, away_power,
			synergy_bonus_home, synergy_bonus_away, meta_bonus_home, meta_bonus_away)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12) RETURNING id`,
		g.MatchID, g.GameNumber, g.WinnerTeamID, g.LoserTeamID, g.DurationMinutes,
		nullableUint64(g.MvpPlayerID), g.HomePower, g.AwayPower,
		g.SynergyBonusHome, g.SynergyBonusAway, g.MetaBonusHome, g.MetaBonusAway).Scan(&g.ID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "create match game", err)
	}
	return nil
}

func (r *matchRepo) CreatePerformances(ctx context.Context, perfs []*model.GamePlayerPerformance) error {
	st := (*Store)(r)
	for _, p := range perfs {
		err := st.db.QueryRowContext(ctx, `
			INSERT INTO game_player_performances (game_id, player_id, team_id, position,
				base_ability, condition_bonus, stability_noise, actual_ability, impact_score,
				mvp_score, is_mvp, kills, deaths, assists, cs, gold, damage_dealt, damage_taken,
				vision_score, traits_json, activated_traits_json)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
			RETURNING id`,
			p.GameID, p.PlayerID, p.TeamID, p.Position.String(), p.BaseAbility, p.ConditionBonus,
			p.StabilityNoise, p.ActualAbility, p.ImpactScore, p.MvpScore, p.IsMvp, p.Kills,
			p.Deaths, p.Assists, p.Cs, p.Gold, p.DamageDealt, p.DamageTaken, p.VisionScore,
			p.TraitsJSON, p.ActivatedTraitsJSON).Scan(&p.ID)
		if err != nil {
			return errors.Wrap(errors.PersistenceError, "create game performance", err)
		}
	}
	return nil
}

func (r *matchRepo) ListGames(ctx context.Context, matchID uint64) ([]*model.MatchGame, error) {
	st := (*Store)(r)
	rows, err := st.db.QueryContext(ctx, `
		SELECT id, match_id, game_number, winner_team_id, loser_team_id, duration_minutes,
			mvp_player_id, home_power, away_power, synergy_bonus_home, synergy_bonus_away,
			meta_bonus_home, meta_bonus_away
		FROM match_games WHERE match_id = $1 ORDER BY game_number`, matchID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list match games", err)
	}
	defer rows.Close()
	var out []*model.MatchGame
	for rows.Next() {
		var g model.MatchGame
		var mvp sql.NullInt64
		if err := rows.Scan(&g.ID, &g.MatchID, &g.GameNumber, &g.WinnerTeamID, &g.LoserTeamID,
			&g.DurationMinutes, &mvp, &g.HomePower, &g.AwayPower, &g.SynergyBonusHome,
			&g.SynergyBonusAway, &g.MetaBonusHome, &g.MetaBonusAway); err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "scan match game", err)
		}
		if mvp.Valid {
			v := uint64(mvp.Int64)
			g.MvpPlayerID = &v
		}
		out = append(out, &g)
	}
	return out, rows.Err()
}
