package postgres

import (
	"context"
	"database/sql"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type tournamentRepo Store

const tournamentColumns = `id, save_id, season_id, tournament_type, name, region_id, status`

func scanTournament(row interface{ Scan(dest ...interface{}) error }) (*model.Tournament, error) {
	var t model.Tournament
	var tt, status string
	var regionID sql.NullInt64
	if err := row.Scan(&t.ID, &t.SaveID, &t.SeasonID, &tt, &t.Name, &regionID, &status); err != nil {
		return nil, err
	}
	var err error
	if t.TournamentType, err = model.ParseTournamentType(tt); err != nil {
		return nil, err
	}
	if t.Status, err = model.ParseTournamentStatus(status); err != nil {
		return nil, err
	}
	if regionID.Valid {
		id := uint64(regionID.Int64)
		t.RegionID = &id
	}
	return &t, nil
}

func tournamentRegionArg(t *model.Tournament) interface{} {
	if t.RegionID == nil {
		return nil
	}
	return *t.RegionID
}

func (r *tournamentRepo) Create(ctx context.Context, t *model.Tournament) error {
	st := (*Store)(r)
	err := st.db.QueryRowContext(ctx, `
		INSERT INTO tournaments (save_id, season_id, tournament_type, name, region_id, status)
		VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		t.SaveID, t.SeasonID, t.TournamentType.String(), t.Name, tournamentRegionArg(t), t.Status.String()).Scan(&t.ID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "create tournament", err)
	}
	return nil
}

func (r *tournamentRepo) Get(ctx context.Context, id uint64) (*model.Tournament, error) {
	st := (*Store)(r)
	row := st.db.QueryRowContext(ctx, `SELECT `+tournamentColumns+` FROM tournaments WHERE id = $1`, id)
	t, err := scanTournament(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundError("Tournament", id)
		}
		return nil, errors.Wrap(errors.PersistenceError, "get tournament", err)
	}
	return t, nil
}

func (r *tournamentRepo) Update(ctx context.Context, t *model.Tournament) error {
	st := (*Store)(r)
	res, err := st.db.ExecContext(ctx, `
		UPDATE tournaments SET season_id=$2, tournament_type=$3, name=$4, region_id=$5, status=$6
		WHERE id=$1`,
		t.ID, t.SeasonID, t.TournamentType.String(), t.Name, tournamentRegionArg(t), t.Status.String())
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "update tournament", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFoundError("Tournament", t.ID)
	}
	return nil
}

func (r *tournamentRepo) ListBySavePhase(ctx context.Context, saveID string, season uint32, tt model.TournamentType) ([]*model.Tournament, error) {
	st := (*Store)(r)
	rows, err := st.db.QueryContext(ctx, `
		SELECT `+tournamentColumns+` FROM tournaments
		WHERE save_id = $1 AND season_id = $2 AND tournament_type = $3 ORDER BY id`,
		saveID, season, tt.String())
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list tournaments by phase", err)
	}
	defer rows.Close()
	var out []*model.Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "scan tournament", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tournamentRepo) ListBySaveSeason(ctx context.Context, saveID string, season uint32) ([]*model.Tournament, error) {
	st := (*Store)(r)
	rows, err := st.db.QueryContext(ctx, `
		SELECT `+tournamentColumns+` FROM tournaments WHERE save_id = $1 AND season_id = $2 ORDER BY id`,
		saveID, season)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list tournaments by season", err)
	}
	defer rows.Close()
	var out []*model.Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "scan tournament", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
