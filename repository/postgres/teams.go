package postgres

import (
	"context"
	"database/sql"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type teamRepo Store

func (r *teamRepo) Create(ctx context.Context, t *model.Team) error {
	st := (*Store)(r)
	err := st.db.QueryRowContext(ctx, `
		INSERT INTO teams (save_id, region_id, name, short_name, power_rating, total_matches,
			wins, win_rate, annual_points, cross_year_points, balance, brand_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`,
		t.SaveID, t.RegionID, t.Name, t.ShortName, t.PowerRating, t.TotalMatches,
		t.Wins, t.WinRate, t.AnnualPoints, t.CrossYearPoints, t.Balance, t.BrandValue).Scan(&t.ID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "create team", err)
	}
	return nil
}

func scanTeam(row interface{ Scan(dest ...interface{}) error }) (*model.Team, error) {
	var t model.Team
	if err := row.Scan(&t.ID, &t.SaveID, &t.RegionID, &t.Name, &t.ShortName, &t.PowerRating,
		&t.TotalMatches, &t.Wins, &t.WinRate, &t.AnnualPoints, &t.CrossYearPoints,
		&t.Balance, &t.BrandValue); err != nil {
		return nil, err
	}
	return &t, nil
}

const teamColumns = `id, save_id, region_id, name, short_name, power_rating, total_matches,
	wins, win_rate, annual_points, cross_year_points, balance, brand_value`

func (r *teamRepo) Get(ctx context.Context, id uint64) (*model.Team, error) {
	st := (*Store)(r)
	row := st.db.QueryRowContext(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, id)
	t, err := scanTeam(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundError("Team", id)
		}
		return nil, errors.Wrap(errors.PersistenceError, "get team", err)
	}
	return t, nil
}

func (r *teamRepo) Update(ctx context.Context, t *model.Team) error {
	st := (*Store)(r)
	res, err := st.db.ExecContext(ctx, `
		UPDATE teams SET region_id = $2, name = $3, short_name = $4, power_rating = $5,
			total_matches = $6, wins = $7, win_rate = $8, annual_points = $9,
			cross_year_points = $10, balance = $11, brand_value = $12
		WHERE id = $1`,
		t.ID, t.RegionID, t.Name, t.ShortName, t.PowerRating, t.TotalMatches, t.Wins,
		t.WinRate, t.AnnualPoints, t.CrossYearPoints, t.Balance, t.BrandValue)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "update team", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFoundError("Team", t.ID)
	}
	return nil
}

func (r *teamRepo) listWhere(ctx context.Context, clause string, arg interface{}) ([]*model.Team, error) {
	st := (*Store)(r)
	rows, err := st.db.QueryContext(ctx, `SELECT `+teamColumns+` FROM teams WHERE `+clause+` ORDER BY id`, arg)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list teams", err)
	}
	defer rows.Close()
	var out []*model.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "scan team", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *teamRepo) ListBySave(ctx context.Context, saveID string) ([]*model.Team, error) {
	return r.listWhere(ctx, "save_id = $1", saveID)
}

func (r *teamRepo) ListByRegion(ctx context.Context, regionID uint64) ([]*model.Team, error) {
	return r.listWhere(ctx, "region_id = $1", regionID)
}
