package memory

import (
	"context"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type workflowRepo Store

func (r *workflowRepo) CreateTransferWindow(ctx context.Context, w *model.TransferWindowRow) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	key := metaKey(w.SaveID, w.SeasonID)
	if _, exists := st.transferWindows[key]; exists {
		return nil
	}
	cp := *w
	cp.ID = st.nextIDLocked()
	st.transferWindows[key] = &cp
	return nil
}

func (r *workflowRepo) GetTransferWindow(ctx context.Context, saveID string, season uint32) (*model.TransferWindowRow, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	w, ok := st.transferWindows[metaKey(saveID, season)]
	if !ok {
		return nil, errors.NotFoundError("TransferWindowRow", season)
	}
	cp := *w
	return &cp, nil
}

func (r *workflowRepo) CompleteTransferWindow(ctx context.Context, saveID string, season uint32) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	w, ok := st.transferWindows[metaKey(saveID, season)]
	if !ok {
		return errors.NotFoundError("TransferWindowRow", season)
	}
	w.Status = model.WorkflowCompleted
	return nil
}

func (r *workflowRepo) CreateDraftResult(ctx context.Context, d *model.DraftResult) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	key := metaKey(d.SaveID, d.SeasonID)
	for _, existing := range st.draftResults[key] {
		if existing.RegionID == d.RegionID {
			return nil
		}
	}
	cp := *d
	cp.ID = st.nextIDLocked()
	st.draftResults[key] = append(st.draftResults[key], &cp)
	return nil
}

func (r *workflowRepo) ListDraftResults(ctx context.Context, saveID string, season uint32) ([]*model.DraftResult, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	results := st.draftResults[metaKey(saveID, season)]
	out := make([]*model.DraftResult, len(results))
	for i, d := range results {
		cp := *d
		out[i] = &cp
	}
	return out, nil
}
