package postgres

import (
	"context"
	"database/sql"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type saveRepo Store

func (r *saveRepo) Create(ctx context.Context, s *model.Save) error {
	st := (*Store)(r)
	_, err := st.db.ExecContext(ctx, `
		INSERT INTO saves (id, name, current_season, current_phase, phase_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())`,
		s.ID, s.Name, s.CurrentSeason, s.CurrentPhase.String(), s.PhaseCompleted)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "create save", err)
	}
	return nil
}

func (r *saveRepo) Get(ctx context.Context, saveID string) (*model.Save, error) {
	st := (*Store)(r)
	row := st.db.QueryRowContext(ctx, `
		SELECT id, name, current_season, current_phase, phase_completed, created_at, updated_at
		FROM saves WHERE id = $1`, saveID)
	var s model.Save
	var phase string
	if err := row.Scan(&s.ID, &s.Name, &s.CurrentSeason, &phase, &s.PhaseCompleted, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundError("Save", saveID)
		}
		return nil, errors.Wrap(errors.PersistenceError, "get save", err)
	}
	p, err := model.ParseSeasonPhase(phase)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "parse save phase", err)
	}
	s.CurrentPhase = p
	return &s, nil
}

func (r *saveRepo) Update(ctx context.Context, s *model.Save) error {
	st := (*Store)(r)
	res, err := st.db.ExecContext(ctx, `
		UPDATE saves SET name = $2, current_season = $3, current_phase = $4,
			phase_completed = $5, updated_at = now()
		WHERE id = $1`,
		s.ID, s.Name, s.CurrentSeason, s.CurrentPhase.String(), s.PhaseCompleted)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "update save", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errors.NotFoundError("Save", s.ID)
	}
	return nil
}

// Delete cascades to every per-save row. Foreign keys are declared
// ON DELETE CASCADE (see db/migrations.go) for exactly this purpose, so
// the single DELETE here is the cascade trigger; no disabled-constraint
// special path is needed.
func (r *saveRepo) Delete(ctx context.Context, saveID string) error {
	st := (*Store)(r)
	_, err := st.db.ExecContext(ctx, `DELETE FROM saves WHERE id = $1`, saveID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "delete save", err)
	}
	return nil
}
