package phase

import (
	"context"

	"esports-career-sim/cache"
	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

// PhaseStatus is GetTimeState's derived status for the save's current
// phase.
type PhaseStatus int

const (
	NotInitialized PhaseStatus = iota
	InProgress
	Completed
)

var phaseStatusNames = [...]string{"NotInitialized", "InProgress", "Completed"}

func (s PhaseStatus) String() string {
	if s < 0 || int(s) >= len(phaseStatusNames) {
		return "Unknown"
	}
	return phaseStatusNames[s]
}

// TournamentProgress reports one tournament's match-completion tally.
type TournamentProgress struct {
	TournamentID     uint64
	TournamentType   model.TournamentType
	RegionID         *uint64
	TotalMatches     int
	CompletedMatches int
}

// TimeState is get_time_state's return value: the save's current phase,
// its derived status, per-tournament progress, and whether the save is
// allowed to advance right now.
type TimeState struct {
	SaveID            string
	Season            uint32
	Phase             model.SeasonPhase
	Status            PhaseStatus
	Tournaments       []TournamentProgress
	CanAdvance        bool
	AvailableActions  []string
}

// GetTimeState derives the save's current phase status without taking the
// per-save lock, consulting the cache first (the read-only snapshot
// path) and falling back to a live recompute on a miss or cache error.
func (m *Machine) GetTimeState(ctx context.Context, saveID string) (*TimeState, error) {
	if m.cache != nil {
		var cached TimeState
		if hit, err := m.cache.Get(ctx, cache.TimeStateKey(saveID), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	ts, err := m.computeTimeState(ctx, saveID)
	if err != nil {
		return nil, err
	}
	if m.cache != nil {
		m.cache.Set(ctx, cache.TimeStateKey(saveID), ts)
	}
	return ts, nil
}

func (m *Machine) computeTimeState(ctx context.Context, saveID string) (*TimeState, error) {
	save, err := m.loadSave(ctx, saveID)
	if err != nil {
		return nil, err
	}

	ts := &TimeState{
		SaveID: saveID,
		Season: save.CurrentSeason,
		Phase:  save.CurrentPhase,
	}

	if !save.CurrentPhase.IsTournamentPhase() {
		status, err := m.nonTournamentStatus(ctx, saveID, save)
		if err != nil {
			return nil, err
		}
		ts.Status = status
		ts.CanAdvance = status == Completed
		ts.AvailableActions = nonTournamentActions(save.CurrentPhase, status)
		return ts, nil
	}

	tournaments, err := m.store.Tournaments().ListBySavePhase(ctx, saveID, save.CurrentSeason, phaseTournamentType(save.CurrentPhase))
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list tournaments for phase", err)
	}

	if len(tournaments) == 0 {
		ts.Status = NotInitialized
		ts.AvailableActions = []string{"initialize_phase"}
		return ts, nil
	}

	totalAll, completedAll := 0, 0
	for _, t := range tournaments {
		matches, err := m.store.Matches().ListByTournament(ctx, t.ID)
		if err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "list matches for tournament", err)
		}
		completed := 0
		for _, match := range matches {
			if match.Status == model.MatchCompleted {
				completed++
			}
		}
		ts.Tournaments = append(ts.Tournaments, TournamentProgress{
			TournamentID:     t.ID,
			TournamentType:   t.TournamentType,
			RegionID:         t.RegionID,
			TotalMatches:     len(matches),
			CompletedMatches: completed,
		})
		totalAll += len(matches)
		completedAll += completed
	}

	switch {
	case totalAll == 0:
		ts.Status = NotInitialized
		ts.AvailableActions = []string{"initialize_phase"}
	case completedAll >= totalAll:
		ts.Status = Completed
		ts.CanAdvance = true
		ts.AvailableActions = []string{"complete_and_advance"}
	default:
		ts.Status = InProgress
		ts.AvailableActions = []string{"simulate_all_phase_matches"}
	}
	return ts, nil
}

// nonTournamentStatus implements the non-tournament completion-marker
// table for AnnualAwards, TransferWindow, Draft and SeasonEnd.
func (m *Machine) nonTournamentStatus(ctx context.Context, saveID string, save *model.Save) (PhaseStatus, error) {
	switch save.CurrentPhase {
	case model.AnnualAwards:
		honors, err := m.store.Honors().ListBySaveSeason(ctx, saveID, save.CurrentSeason)
		if err != nil {
			return NotInitialized, errors.Wrap(errors.PersistenceError, "list season honors", err)
		}
		for _, h := range honors {
			if h.HonorType.IsAnnual() {
				return Completed, nil
			}
		}
		return InProgress, nil // pure derivation, no explicit init step

	case model.TransferWindow:
		w, err := m.store.Workflows().GetTransferWindow(ctx, saveID, save.CurrentSeason)
		if err != nil {
			if errors.Is(err, errors.NotFound) {
				return NotInitialized, nil
			}
			return NotInitialized, errors.Wrap(errors.PersistenceError, "get transfer window", err)
		}
		if w.Status == model.WorkflowCompleted {
			return Completed, nil
		}
		return InProgress, nil

	case model.Draft:
		regions, err := m.store.Regions().ListBySave(ctx, saveID)
		if err != nil {
			return NotInitialized, errors.Wrap(errors.PersistenceError, "list regions", err)
		}
		results, err := m.store.Workflows().ListDraftResults(ctx, saveID, save.CurrentSeason)
		if err != nil {
			return NotInitialized, errors.Wrap(errors.PersistenceError, "list draft results", err)
		}
		if len(regions) == 0 {
			return NotInitialized, nil
		}
		seen := make(map[uint64]bool, len(results))
		for _, r := range results {
			seen[r.RegionID] = true
		}
		for _, r := range regions {
			if !seen[r.ID] {
				return InProgress, nil
			}
		}
		return Completed, nil

	case model.SeasonEnd:
		return Completed, nil

	default:
		return NotInitialized, errors.New(errors.ValidationFailed, "non-tournament status requested for a tournament phase")
	}
}

func nonTournamentActions(p model.SeasonPhase, status PhaseStatus) []string {
	if status == Completed {
		return []string{"complete_and_advance"}
	}
	switch p {
	case model.TransferWindow:
		return []string{"awaiting external transfer-window completion"}
	case model.Draft:
		return []string{"awaiting draft results for every region"}
	default:
		return []string{"complete_and_advance"}
	}
}
