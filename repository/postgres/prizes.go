package postgres

import (
	"context"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type prizeRepo Store

func (r *prizeRepo) ExistsForTournament(ctx context.Context, saveID string, tournamentID uint64) (bool, error) {
	st := (*Store)(r)
	var exists bool
	err := st.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM financial_transactions WHERE save_id = $1 AND related_tournament_id = $2)`,
		saveID, tournamentID).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(errors.PersistenceError, "check prize existence", err)
	}
	return exists, nil
}

func (r *prizeRepo) Create(ctx context.Context, tx *model.FinancialTransaction) error {
	st := (*Store)(r)
	err := st.db.QueryRowContext(ctx, `
		INSERT INTO financial_transactions (save_id, team_id, type, amount, description,
			related_tournament_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6, now()) RETURNING id`,
		tx.SaveID, tx.TeamID, string(tx.Type), tx.Amount, tx.Description,
		nullableUint64(tx.RelatedTournamentID)).Scan(&tx.ID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "create financial transaction", err)
	}
	return nil
}
