package memory

import "context"
import "esports-career-sim/model"

type prizeRepo Store

func (r *prizeRepo) ExistsForTournament(ctx context.Context, saveID string, tournamentID uint64) (bool, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, tx := range st.prizes {
		if tx.SaveID == saveID && tx.RelatedTournamentID != nil && *tx.RelatedTournamentID == tournamentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *prizeRepo) Create(ctx context.Context, tx *model.FinancialTransaction) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	if tx.ID == 0 {
		tx.ID = st.nextIDLocked()
	}
	cp := *tx
	st.prizes[tx.ID] = &cp
	return nil
}
