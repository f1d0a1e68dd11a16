package postgres

import (
	"context"
	"database/sql"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type formFactorRepo Store

const formFactorColumns = `save_id, player_id, form_cycle, momentum, last_performance, last_match_won, games_since_rest`

func scanFormFactor(row interface{ Scan(dest ...interface{}) error }) (*model.PlayerFormFactors, error) {
	var f model.PlayerFormFactors
	var momentum int
	if err := row.Scan(&f.SaveID, &f.PlayerID, &f.FormCycle, &momentum, &f.LastPerformance,
		&f.LastMatchWon, &f.GamesSinceRest); err != nil {
		return nil, err
	}
	f.Momentum = int8(momentum)
	return &f, nil
}

func (r *formFactorRepo) Get(ctx context.Context, saveID string, playerID uint64) (*model.PlayerFormFactors, error) {
	st := (*Store)(r)
	row := st.db.QueryRowContext(ctx, `
		SELECT `+formFactorColumns+` FROM player_form_factors WHERE save_id = $1 AND player_id = $2`,
		saveID, playerID)
	f, err := scanFormFactor(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundError("PlayerFormFactors", playerID)
		}
		return nil, errors.Wrap(errors.PersistenceError, "get form factors", err)
	}
	return f, nil
}

func (r *formFactorRepo) ListBySave(ctx context.Context, saveID string) ([]*model.PlayerFormFactors, error) {
	st := (*Store)(r)
	rows, err := st.db.QueryContext(ctx, `
		SELECT `+formFactorColumns+` FROM player_form_factors WHERE save_id = $1 ORDER BY player_id`, saveID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list form factors", err)
	}
	defer rows.Close()
	var out []*model.PlayerFormFactors
	for rows.Next() {
		f, err := scanFormFactor(rows)
		if err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "scan form factors", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// BatchUpsert flushes the phase-held in-memory map in one transaction.
// Form factors are mutated in memory during simulation and written back
// all-or-nothing at phase completion. Each row is an ON CONFLICT upsert
// on the (save_id, player_id) primary key.
func (r *formFactorRepo) BatchUpsert(ctx context.Context, factors []*model.PlayerFormFactors) error {
	st := (*Store)(r)
	for _, f := range factors {
		_, err := st.db.ExecContext(ctx, `
			INSERT INTO player_form_factors (save_id, player_id, form_cycle, momentum,
				last_performance, last_match_won, games_since_rest)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			ON CONFLICT (save_id, player_id) DO UPDATE SET
				form_cycle = EXCLUDED.form_cycle, momentum = EXCLUDED.momentum,
				last_performance = EXCLUDED.last_performance, last_match_won = EXCLUDED.last_match_won,
				games_since_rest = EXCLUDED.games_since_rest`,
			f.SaveID, f.PlayerID, f.FormCycle, int(f.Momentum), f.LastPerformance, f.LastMatchWon, f.GamesSinceRest)
		if err != nil {
			return errors.Wrap(errors.PersistenceError, "upsert form factors", err)
		}
	}
	return nil
}
