package postgres

import (
	"context"
	"database/sql"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type regionRepo Store

func (r *regionRepo) Create(ctx context.Context, reg *model.Region) error {
	st := (*Store)(r)
	err := st.db.QueryRowContext(ctx, `
		INSERT INTO regions (save_id, name, short_name, team_count)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		reg.SaveID, reg.Name, reg.ShortName, reg.TeamCount).Scan(&reg.ID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "create region", err)
	}
	return nil
}

func (r *regionRepo) ListBySave(ctx context.Context, saveID string) ([]*model.Region, error) {
	st := (*Store)(r)
	rows, err := st.db.QueryContext(ctx, `
		SELECT id, save_id, name, short_name, team_count FROM regions WHERE save_id = $1 ORDER BY id`, saveID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list regions", err)
	}
	defer rows.Close()
	var out []*model.Region
	for rows.Next() {
		var reg model.Region
		if err := rows.Scan(&reg.ID, &reg.SaveID, &reg.Name, &reg.ShortName, &reg.TeamCount); err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "scan region", err)
		}
		out = append(out, &reg)
	}
	return out, rows.Err()
}

func (r *regionRepo) Get(ctx context.Context, id uint64) (*model.Region, error) {
	st := (*Store)(r)
	row := st.db.QueryRowContext(ctx, `
		SELECT id, save_id, name, short_name, team_count FROM regions WHERE id = $1`, id)
	var reg model.Region
	if err := row.Scan(&reg.ID, &reg.SaveID, &reg.Name, &reg.ShortName, &reg.TeamCount); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundError("Region", id)
		}
		return nil, errors.Wrap(errors.PersistenceError, "get region", err)
	}
	return &reg, nil
}
