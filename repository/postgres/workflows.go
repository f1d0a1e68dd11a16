package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type workflowRepo Store

func (r *workflowRepo) CreateTransferWindow(ctx context.Context, w *model.TransferWindowRow) error {
	st := (*Store)(r)
	err := st.db.QueryRowContext(ctx, `
		INSERT INTO transfer_windows (save_id, season_id, status, created_at, updated_at)
		VALUES ($1,$2,$3, now(), now()) RETURNING id`,
		w.SaveID, w.SeasonID, w.Status.String()).Scan(&w.ID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "create transfer window", err)
	}
	return nil
}

func (r *workflowRepo) GetTransferWindow(ctx context.Context, saveID string, season uint32) (*model.TransferWindowRow, error) {
	st := (*Store)(r)
	var w model.TransferWindowRow
	var status string
	err := st.db.QueryRowContext(ctx, `
		SELECT id, save_id, season_id, status, created_at, updated_at
		FROM transfer_windows WHERE save_id = $1 AND season_id = $2`, saveID, season).
		Scan(&w.ID, &w.SaveID, &w.SeasonID, &status, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundError("TransferWindowRow", season)
		}
		return nil, errors.Wrap(errors.PersistenceError, "get transfer window", err)
	}
	parsed, err := model.ParseWorkflowStatus(status)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "parse transfer window status", err)
	}
	w.Status = parsed
	return &w, nil
}

func (r *workflowRepo) CompleteTransferWindow(ctx context.Context, saveID string, season uint32) error {
	st := (*Store)(r)
	res, err := st.db.ExecContext(ctx, `
		UPDATE transfer_windows SET status = $3, updated_at = now()
		WHERE save_id = $1 AND season_id = $2`,
		saveID, season, model.WorkflowCompleted.String())
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "complete transfer window", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFoundError("TransferWindowRow", season)
	}
	return nil
}

func (r *workflowRepo) CreateDraftResult(ctx context.Context, d *model.DraftResult) error {
	st := (*Store)(r)
	err := st.db.QueryRowContext(ctx, `
		INSERT INTO draft_results (save_id, season_id, region_id, player_ids)
		VALUES ($1,$2,$3,$4) RETURNING id`,
		d.SaveID, d.SeasonID, d.RegionID, uint64SliceToArray(d.PlayerIDs)).Scan(&d.ID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "create draft result", err)
	}
	return nil
}

func (r *workflowRepo) ListDraftResults(ctx context.Context, saveID string, season uint32) ([]*model.DraftResult, error) {
	st := (*Store)(r)
	rows, err := st.db.QueryContext(ctx, `
		SELECT id, save_id, season_id, region_id, player_ids
		FROM draft_results WHERE save_id = $1 AND season_id = $2 ORDER BY id`, saveID, season)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list draft results", err)
	}
	defer rows.Close()
	var out []*model.DraftResult
	for rows.Next() {
		var d model.DraftResult
		var arr string
		if err := rows.Scan(&d.ID, &d.SaveID, &d.SeasonID, &d.RegionID, &arr); err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "scan draft result", err)
		}
		ids, err := parseUint64Array(arr)
		if err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "parse draft player ids", err)
		}
		d.PlayerIDs = ids
		out = append(out, &d)
	}
	return out, rows.Err()
}

// uint64SliceToArray renders a postgres bigint[] literal; lib/pq's array
// support is opt-in via pq.Array in the driver, but a hand-built literal
// keeps this repository's only non-scalar column free of an extra import
// for a single narrow use.
func uint64SliceToArray(ids []uint64) string {
	out := "{"
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%d", id)
	}
	return out + "}"
}

func parseUint64Array(s string) ([]uint64, error) {
	s = trimBraces(s)
	if s == "" {
		return nil, nil
	}
	var out []uint64
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			var v uint64
			if _, err := fmt.Sscanf(s[start:i], "%d", &v); err != nil {
				return nil, err
			}
			out = append(out, v)
			start = i + 1
		}
	}
	return out, nil
}

func trimBraces(s string) string {
	if len(s) >= 2 && s[0] == '{' && s[len(s)-1] == '}' {
		return s[1 : len(s)-1]
	}
	return s
}
