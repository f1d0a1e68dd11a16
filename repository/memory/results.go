package memory

import (
	"context"
	"fmt"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type resultRepo Store

func resultKey(saveID string, tournamentID uint64) string {
	return fmt.Sprintf("%s:%d", saveID, tournamentID)
}

func (r *resultRepo) Exists(ctx context.Context, saveID string, tournamentID uint64) (bool, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	_, ok := st.results[resultKey(saveID, tournamentID)]
	return ok, nil
}

func (r *resultRepo) Create(ctx context.Context, res *model.TournamentResult) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	key := resultKey(res.SaveID, res.TournamentID)
	if _, exists := st.results[key]; exists {
		return nil // idempotent: unique-key rejection is a no-op, not an error
	}
	cp := *res
	st.results[key] = &cp
	return nil
}

func (r *resultRepo) Get(ctx context.Context, saveID string, tournamentID uint64) (*model.TournamentResult, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	res, ok := st.results[resultKey(saveID, tournamentID)]
	if !ok {
		return nil, errors.NotFoundError("TournamentResult", tournamentID)
	}
	cp := *res
	return &cp, nil
}
