package postgres

import (
	"context"
	"database/sql"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type pointsRepo Store

// Insert implements the (save_id, season_id, team_id, tournament_id)
// natural idempotency key via ON CONFLICT DO NOTHING, reporting
// whether the row was actually inserted so callers can decide whether to
// credit team.annual_points.
func (r *pointsRepo) Insert(ctx context.Context, d *model.AnnualPointsDetail) (bool, error) {
	st := (*Store)(r)
	var id uint64
	err := st.db.QueryRowContext(ctx, `
		INSERT INTO annual_points_detail (save_id, season_id, team_id, tournament_id, points, final_rank)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (save_id, season_id, team_id, tournament_id) DO NOTHING
		RETURNING id`,
		d.SaveID, d.SeasonID, d.TeamID, d.TournamentID, d.Points, nullableInt(d.FinalRank)).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, errors.Wrap(errors.PersistenceError, "insert points detail", err)
	}
	d.ID = id
	return true, nil
}

func (r *pointsRepo) ListBySaveSeason(ctx context.Context, saveID string, season uint32) ([]*model.AnnualPointsDetail, error) {
	st := (*Store)(r)
	rows, err := st.db.QueryContext(ctx, `
		SELECT id, save_id, season_id, team_id, tournament_id, points, final_rank
		FROM annual_points_detail WHERE save_id = $1 AND season_id = $2 ORDER BY team_id, id`,
		saveID, season)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list points details", err)
	}
	defer rows.Close()
	var out []*model.AnnualPointsDetail
	for rows.Next() {
		var d model.AnnualPointsDetail
		var finalRank sql.NullInt64
		if err := rows.Scan(&d.ID, &d.SaveID, &d.SeasonID, &d.TeamID, &d.TournamentID, &d.Points, &finalRank); err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "scan points detail", err)
		}
		if finalRank.Valid {
			v := int(finalRank.Int64)
			d.FinalRank = &v
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *pointsRepo) DeleteBySeason(ctx context.Context, saveID string, season uint32) error {
	st := (*Store)(r)
	_, err := st.db.ExecContext(ctx, `DELETE FROM annual_points_detail WHERE save_id = $1 AND season_id = $2`, saveID, season)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "delete points details by season", err)
	}
	return nil
}
