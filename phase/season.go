package phase

import (
	"context"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
	"esports-career-sim/rng"
)

// AdvanceToNewSeason rolls a save from SeasonEnd into a fresh SpringRegular,
// : annual points reset, form factors scramble for the new
// season, rosters reconfirm their starters and power ratings, and a new
// meta is rolled.
func (m *Machine) AdvanceToNewSeason(ctx context.Context, saveID string) error {
	return m.withSaveLock(ctx, saveID, func() error {
		save, err := m.loadSave(ctx, saveID)
		if err != nil {
			return err
		}
		if save.CurrentPhase != model.SeasonEnd {
			return errors.New(errors.PhasePrecondition, "advance_to_new_season called outside SeasonEnd")
		}
		return m.advanceToNewSeasonLocked(ctx, saveID, save)
	})
}

func (m *Machine) advanceToNewSeasonLocked(ctx context.Context, saveID string, save *model.Save) error {
	newSeason := save.CurrentSeason + 1

	teams, err := m.store.Teams().ListBySave(ctx, saveID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "list teams", err)
	}
	for _, t := range teams {
		t.AnnualPoints = 0
	}

	players, err := m.store.Players().ListBySave(ctx, saveID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "list players", err)
	}
	factorsList, err := m.store.FormFactors().ListBySave(ctx, saveID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "list form factors", err)
	}
	factorByPlayer := make(map[uint64]*model.PlayerFormFactors, len(factorsList))
	for _, f := range factorsList {
		factorByPlayer[f.PlayerID] = f
	}

	r := rng.New(saveID, newSeason, m.cfg.RandomSeed)
	flushed := make([]*model.PlayerFormFactors, 0, len(players))
	for _, p := range players {
		f, ok := factorByPlayer[p.ID]
		if !ok {
			f = &model.PlayerFormFactors{SaveID: saveID, PlayerID: p.ID}
		}
		f.ResetForSeason(r.Float64() * 100)
		flushed = append(flushed, f)
	}
	if len(flushed) > 0 {
		if err := m.store.FormFactors().BatchUpsert(ctx, flushed); err != nil {
			return errors.Wrap(errors.PersistenceError, "reset form factors", err)
		}
	}

	byTeam := make(map[uint64][]*model.Player, len(teams))
	for _, p := range players {
		if p.TeamID != nil {
			byTeam[*p.TeamID] = append(byTeam[*p.TeamID], p)
		}
	}
	for _, t := range teams {
		roster := byTeam[t.ID]
		model.AutoConfirmStarters(roster)
		t.PowerRating = model.RecalculateTeamPower(roster)
	}

	if err := m.store.Players().BatchUpdate(ctx, players); err != nil {
		return errors.Wrap(errors.PersistenceError, "update rosters for new season", err)
	}
	for _, t := range teams {
		if err := m.store.Teams().Update(ctx, t); err != nil {
			return errors.Wrap(errors.PersistenceError, "update team for new season", err)
		}
	}

	rolled := rng.RollNewMeta(saveID, newSeason, m.cfg.RandomSeed)
	if err := m.store.Meta().Set(ctx, saveID, rolled); err != nil {
		return errors.Wrap(errors.PersistenceError, "roll new season meta", err)
	}

	save.CurrentSeason = newSeason
	save.CurrentPhase = model.SpringRegular
	save.PhaseCompleted = false
	if err := m.store.Saves().Update(ctx, save); err != nil {
		return errors.Wrap(errors.PersistenceError, "update save for new season", err)
	}
	return m.initializePhaseLocked(ctx, saveID, save)
}
