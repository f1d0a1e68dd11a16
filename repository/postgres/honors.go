package postgres

import (
	"context"
	"database/sql"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type honorRepo Store

func (r *honorRepo) Create(ctx context.Context, h *model.Honor) error {
	st := (*Store)(r)
	var position interface{}
	if h.Position != nil {
		position = h.Position.String()
	}
	var tt interface{}
	if h.TournamentType != nil {
		tt = h.TournamentType.String()
	}
	err := st.db.QueryRowContext(ctx, `
		INSERT INTO honors (save_id, honor_type, season_id, tournament_id, tournament_name,
			tournament_type, team_id, team_name, player_id, player_name, position, stats_json, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12, now()) RETURNING id`,
		h.SaveID, h.HonorType.String(), h.SeasonID, nullableUint64(h.TournamentID), h.TournamentName,
		tt, nullableUint64(h.TeamID), h.TeamName, nullableUint64(h.PlayerID), h.PlayerName,
		position, h.StatsJSON).Scan(&h.ID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "create honor", err)
	}
	return nil
}

func (r *honorRepo) ExistsForTournament(ctx context.Context, saveID string, tournamentID uint64, ht model.HonorType) (bool, error) {
	st := (*Store)(r)
	var exists bool
	err := st.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM honors WHERE save_id = $1 AND tournament_id = $2 AND honor_type = $3)`,
		saveID, tournamentID, ht.String()).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(errors.PersistenceError, "check honor existence", err)
	}
	return exists, nil
}

func (r *honorRepo) ExistsAnnualForSeason(ctx context.Context, saveID string, season uint32) (bool, error) {
	st := (*Store)(r)
	var exists bool
	err := st.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM honors WHERE save_id = $1 AND season_id = $2 AND honor_type LIKE 'Annual%')`,
		saveID, season).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(errors.PersistenceError, "check annual honor existence", err)
	}
	return exists, nil
}

func (r *honorRepo) ListBySaveSeason(ctx context.Context, saveID string, season uint32) ([]*model.Honor, error) {
	st := (*Store)(r)
	rows, err := st.db.QueryContext(ctx, `
		SELECT id, save_id, honor_type, season_id, tournament_id, tournament_name, tournament_type,
			team_id, team_name, player_id, player_name, position, stats_json, created_at
		FROM honors WHERE save_id = $1 AND season_id = $2 ORDER BY id`, saveID, season)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list honors", err)
	}
	defer rows.Close()
	var out []*model.Honor
	for rows.Next() {
		h, err := scanHonor(rows)
		if err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "scan honor", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func scanHonor(row interface{ Scan(dest ...interface{}) error }) (*model.Honor, error) {
	var h model.Honor
	var honorType string
	var tournamentID, teamID, playerID sql.NullInt64
	var tt, position sql.NullString
	if err := row.Scan(&h.ID, &h.SaveID, &honorType, &h.SeasonID, &tournamentID, &h.TournamentName,
		&tt, &teamID, &h.TeamName, &playerID, &h.PlayerName, &position, &h.StatsJSON, &h.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if h.HonorType, err = model.ParseHonorType(honorType); err != nil {
		return nil, err
	}
	if tournamentID.Valid {
		v := uint64(tournamentID.Int64)
		h.TournamentID = &v
	}
	if teamID.Valid {
		v := uint64(teamID.Int64)
		h.TeamID = &v
	}
	if playerID.Valid {
		v := uint64(playerID.Int64)
		h.PlayerID = &v
	}
	if tt.Valid {
		v, err := model.ParseTournamentType(tt.String)
		if err != nil {
			return nil, err
		}
		h.TournamentType = &v
	}
	if position.Valid {
		v, err := model.ParsePosition(position.String)
		if err != nil {
			return nil, err
		}
		h.Position = &v
	}
	return &h, nil
}

func (r *honorRepo) DeleteBySeason(ctx context.Context, saveID string, season uint32) error {
	st := (*Store)(r)
	_, err := st.db.ExecContext(ctx, `DELETE FROM honors WHERE save_id = $1 AND season_id = $2`, saveID, season)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "delete honors by season", err)
	}
	return nil
}
