package memory

import (
	"context"
	"fmt"

	"esports-career-sim/pkg/errors"
	"esports-career-sim/rng"
)

type metaRepo Store

func metaKey(saveID string, season uint32) string {
	return fmt.Sprintf("%s:%d", saveID, season)
}

func (r *metaRepo) Get(ctx context.Context, saveID string, season uint32) (*rng.MetaWeights, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	w, ok := st.meta[metaKey(saveID, season)]
	if !ok {
		return nil, errors.NotFoundError("MetaWeights", season)
	}
	cp := w
	return &cp, nil
}

func (r *metaRepo) Set(ctx context.Context, saveID string, w rng.MetaWeights) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.meta[metaKey(saveID, w.Season)] = w
	return nil
}
