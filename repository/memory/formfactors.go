package memory

import (
	"context"
	"fmt"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type formFactorRepo Store

func formFactorKey(saveID string, playerID uint64) string {
	return fmt.Sprintf("%s:%d", saveID, playerID)
}

func (r *formFactorRepo) Get(ctx context.Context, saveID string, playerID uint64) (*model.PlayerFormFactors, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	f, ok := st.formFactors[formFactorKey(saveID, playerID)]
	if !ok {
		return nil, errors.NotFoundError("PlayerFormFactors", playerID)
	}
	cp := *f
	return &cp, nil
}

func (r *formFactorRepo) ListBySave(ctx context.Context, saveID string) ([]*model.PlayerFormFactors, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []*model.PlayerFormFactors
	for _, f := range st.formFactors {
		if f.SaveID == saveID {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *formFactorRepo) BatchUpsert(ctx context.Context, factors []*model.PlayerFormFactors) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, f := range factors {
		cp := *f
		st.formFactors[formFactorKey(f.SaveID, f.PlayerID)] = &cp
	}
	return nil
}
