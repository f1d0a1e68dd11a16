package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"esports-career-sim/pkg/errors"
	"esports-career-sim/rng"
)

type metaRepo Store

func (r *metaRepo) Get(ctx context.Context, saveID string, season uint32) (*rng.MetaWeights, error) {
	st := (*Store)(r)
	var raw []byte
	err := st.db.QueryRowContext(ctx, `
		SELECT archetype_bonus FROM meta_weights WHERE save_id = $1 AND season_id = $2`,
		saveID, season).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundError("MetaWeights", season)
		}
		return nil, errors.Wrap(errors.PersistenceError, "get meta weights", err)
	}
	var bonus map[string]float64
	if err := json.Unmarshal(raw, &bonus); err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "unmarshal meta weights", err)
	}
	w := rng.MetaWeights{Season: season, ArchetypeBonus: bonus}
	return &w, nil
}

// Set upserts the save's rolled meta for a season. A season has exactly
// one MetaWeights, so re-rolling overwrites rather than appending.
func (r *metaRepo) Set(ctx context.Context, saveID string, w rng.MetaWeights) error {
	st := (*Store)(r)
	raw, err := json.Marshal(w.ArchetypeBonus)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "marshal meta weights", err)
	}
	_, err = st.db.ExecContext(ctx, `
		INSERT INTO meta_weights (save_id, season_id, archetype_bonus)
		VALUES ($1,$2,$3)
		ON CONFLICT (save_id, season_id) DO UPDATE SET archetype_bonus = EXCLUDED.archetype_bonus`,
		saveID, w.Season, raw)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "upsert meta weights", err)
	}
	return nil
}
