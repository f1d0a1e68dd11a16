package memory

import (
	"context"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type regionRepo Store

func (r *regionRepo) Create(ctx context.Context, region *model.Region) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	if region.ID == 0 {
		region.ID = st.nextIDLocked()
	}
	cp := *region
	st.regions[region.ID] = &cp
	return nil
}

func (r *regionRepo) ListBySave(ctx context.Context, saveID string) ([]*model.Region, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []*model.Region
	for _, rg := range st.regions {
		if rg.SaveID == saveID {
			cp := *rg
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *regionRepo) Get(ctx context.Context, id uint64) (*model.Region, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	rg, ok := st.regions[id]
	if !ok {
		return nil, errors.NotFoundError("Region", id)
	}
	cp := *rg
	return &cp, nil
}
