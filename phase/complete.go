package phase

import (
	"context"
	"sort"

	"esports-career-sim/awards"
	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
	"esports-career-sim/resolver"
)

// CompletePhase resolves the current phase's outcome (placements,
// honors, points and prizes for a tournament phase; the awards or
// workflow completion check otherwise), marks the save's PhaseCompleted
// flag, and returns the honors awarded (none on a re-run). It does not advance the phase
// itself; CompleteAndAdvance does both in one call.
func (m *Machine) CompletePhase(ctx context.Context, saveID string) ([]*model.Honor, error) {
	var awarded []*model.Honor
	err := m.withSaveLock(ctx, saveID, func() error {
		save, err := m.loadSave(ctx, saveID)
		if err != nil {
			return err
		}
		if save.CurrentPhase.IsTournamentPhase() {
			awarded, err = m.resolveTournamentPhase(ctx, saveID, save)
			if err != nil {
				return err
			}
		} else {
			if err := m.completeNonTournamentPhase(ctx, saveID, save); err != nil {
				return err
			}
		}
		save.PhaseCompleted = true
		if err := m.store.Saves().Update(ctx, save); err != nil {
			return errors.Wrap(errors.PersistenceError, "update save", err)
		}
		return nil
	})
	return awarded, err
}

// CompleteAndAdvance completes the current phase if it isn't already
// marked complete, transitions to the next phase, and auto-initializes
// the successor. Leaving SeasonEnd rolls the season over via
// AdvanceToNewSeason.
func (m *Machine) CompleteAndAdvance(ctx context.Context, saveID string) error {
	return m.withSaveLock(ctx, saveID, func() error {
		save, err := m.loadSave(ctx, saveID)
		if err != nil {
			return err
		}
		if !save.PhaseCompleted {
			if save.CurrentPhase.IsTournamentPhase() {
				if _, err := m.resolveTournamentPhase(ctx, saveID, save); err != nil {
					return err
				}
			} else {
				if err := m.completeNonTournamentPhase(ctx, saveID, save); err != nil {
					return err
				}
			}
		}

		if save.CurrentPhase == model.SeasonEnd {
			return m.advanceToNewSeasonLocked(ctx, saveID, save)
		}

		next, _ := save.CurrentPhase.Next()
		save.CurrentPhase = next
		save.PhaseCompleted = false
		if err := m.store.Saves().Update(ctx, save); err != nil {
			return errors.Wrap(errors.PersistenceError, "update save", err)
		}
		return m.initializePhaseLocked(ctx, saveID, save)
	})
}

// FastForwardResult is fast_forward_to's partial-progress report: how far
// the save got and why the loop stopped.
type FastForwardResult struct {
	PhasesAdvanced   int
	MatchesSimulated int
	Reason           string
}

// FastForwardTo walks the save toward target one full phase per
// iteration (initialize if needed, simulate the phase's matches, then
// complete-and-advance) until the target (phase, season) is reached or
// the configured safety bound runs out. It stops at a consistent phase
// boundary on cancellation or when a non-tournament phase is still
// waiting on its external completion marker.
func (m *Machine) FastForwardTo(ctx context.Context, saveID string, target model.SeasonPhase, targetSeason uint32) (*FastForwardResult, error) {
	res := &FastForwardResult{}
	bound := m.cfg.SafetyBound
	for i := 0; i < bound; i++ {
		if cerr := ctx.Err(); cerr != nil {
			res.Reason = "cancelled"
			return res, cerr
		}

		ts, terr := m.GetTimeState(ctx, saveID)
		if terr != nil {
			res.Reason = terr.Error()
			return res, terr
		}
		if ts.Season == targetSeason && ts.Phase == target {
			res.Reason = "target reached"
			return res, nil
		}
		m.emitProgress(ProgressEvent{
			SaveID: saveID, Season: ts.Season, Phase: ts.Phase, Status: ts.Status,
			PhasesAdvanced: res.PhasesAdvanced, MatchesSimulated: res.MatchesSimulated,
		})

		if ts.Status == NotInitialized {
			if err := m.InitializePhase(ctx, saveID, ts.Phase); err != nil {
				res.Reason = err.Error()
				return res, err
			}
			ts, terr = m.GetTimeState(ctx, saveID)
			if terr != nil {
				res.Reason = terr.Error()
				return res, terr
			}
		}

		if ts.Status == InProgress {
			if ts.Phase.IsTournamentPhase() {
				n, _, err := m.SimulateAllPhaseMatches(ctx, saveID, ts.Phase)
				res.MatchesSimulated += n
				if err != nil {
					res.Reason = err.Error()
					return res, err
				}
			} else if ts.Phase != model.AnnualAwards {
				// TransferWindow and Draft complete through external
				// workflows the simulator cannot drive.
				res.Reason = "awaiting external phase completion"
				return res, errors.New(errors.PhasePrecondition, "fast_forward_to: non-tournament phase awaiting external completion")
			}
		}

		if err := m.CompleteAndAdvance(ctx, saveID); err != nil {
			res.Reason = err.Error()
			return res, err
		}
		res.PhasesAdvanced++
	}
	res.Reason = "safety bound reached"
	return res, errors.New(errors.InvariantViolation, "fast_forward_to: safety bound reached without completing")
}

func (m *Machine) resolveTournamentPhase(ctx context.Context, saveID string, save *model.Save) ([]*model.Honor, error) {
	tt := phaseTournamentType(save.CurrentPhase)
	tournaments, err := m.store.Tournaments().ListBySavePhase(ctx, saveID, save.CurrentSeason, tt)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list tournaments for phase", err)
	}
	if len(tournaments) == 0 {
		return nil, errors.New(errors.PhasePrecondition, "complete_phase: phase has not been initialized")
	}
	sort.Slice(tournaments, func(i, j int) bool { return tournaments[i].ID < tournaments[j].ID })
	var awarded []*model.Honor
	for _, t := range tournaments {
		matches, err := m.store.Matches().ListByTournament(ctx, t.ID)
		if err != nil {
			return awarded, errors.Wrap(errors.PersistenceError, "list matches", err)
		}
		for _, match := range matches {
			if match.Status != model.MatchCompleted {
				return awarded, errors.New(errors.PhasePrecondition, "complete_phase: tournament has unplayed matches")
			}
		}
		honors, err := m.resolveOneTournament(ctx, saveID, t, matches)
		awarded = append(awarded, honors...)
		if err != nil {
			return awarded, err
		}
	}
	return awarded, nil
}

func (m *Machine) resolveOneTournament(ctx context.Context, saveID string, t *model.Tournament, matches []*model.Match) ([]*model.Honor, error) {
	standings, err := m.store.Standings().ListByTournament(ctx, t.ID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list standings", err)
	}

	teamIDs := participantTeamIDs(matches)
	teams := make(map[uint64]*model.Team, len(teamIDs))
	rosterByTeam := make(map[uint64][]*model.Player, len(teamIDs))
	for _, id := range teamIDs {
		team, err := m.store.Teams().Get(ctx, id)
		if err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "get team", err)
		}
		teams[id] = team
		players, err := m.store.Players().ListByTeam(ctx, id)
		if err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "list team roster", err)
		}
		rosterByTeam[id] = players
	}

	tstats, err := m.store.TournamentStats().ListByTournament(ctx, saveID, t.ID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list tournament stats", err)
	}
	seasonStats, err := m.loadSeasonStats(ctx, saveID, t.SeasonID)
	if err != nil {
		return nil, err
	}

	var teamRegion map[uint64]uint64
	if t.TournamentType == model.TTIcpIntercontinental {
		teamRegion = make(map[uint64]uint64, len(teams))
		for id, team := range teams {
			teamRegion[id] = team.RegionID
		}
	}

	var mvp uint64
	if regularSeasonTournamentTypes[t.TournamentType] {
		mvp = regularSeasonMvpFrom(tstats)
	}

	in := resolver.Input{
		Matches:          matches,
		Standings:        standings,
		Teams:            teams,
		RosterByTeam:     rosterByTeam,
		TournamentStats:  tstats,
		SeasonStats:      seasonStats,
		TeamRegion:       teamRegion,
		RegularSeasonMvp: mvp,
	}
	honors, err := resolver.ResolveTournament(ctx, m.store, saveID, t, in)
	if err != nil {
		return honors, err
	}

	for _, team := range teams {
		if err := m.store.Teams().Update(ctx, team); err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "update team", err)
		}
	}
	for _, roster := range rosterByTeam {
		if len(roster) == 0 {
			continue
		}
		if err := m.store.Players().BatchUpdate(ctx, roster); err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "update roster", err)
		}
	}
	for _, s := range seasonStats {
		s.SaveID = saveID
		s.SeasonID = t.SeasonID
	}
	if len(seasonStats) > 0 {
		flat := make([]*model.PlayerSeasonStatistics, 0, len(seasonStats))
		for _, s := range seasonStats {
			flat = append(flat, s)
		}
		if err := m.store.SeasonStats().BatchUpsert(ctx, flat); err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "flush season stats", err)
		}
	}

	t.Status = model.TournamentCompleted
	if err := m.store.Tournaments().Update(ctx, t); err != nil {
		return honors, errors.Wrap(errors.PersistenceError, "update tournament status", err)
	}
	return honors, nil
}

func participantTeamIDs(matches []*model.Match) []uint64 {
	seen := map[uint64]bool{}
	var out []uint64
	for _, match := range matches {
		for _, id := range [2]uint64{match.HomeTeamID, match.AwayTeamID} {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

// regularSeasonMvpFrom picks the tournament's MVP candidate among
// GamesPlayed>=1 entries by PlayerTournamentStats.MvpRank, the same
// ranking rule AwardTournamentHonors uses for TournamentMvp.
func regularSeasonMvpFrom(tstats []*model.PlayerTournamentStats) uint64 {
	var best uint64
	found := false
	var bestRank float64
	for _, s := range tstats {
		if s.GamesPlayed < 1 {
			continue
		}
		rank := s.MvpRank()
		if !found || rank > bestRank {
			found = true
			bestRank = rank
			best = s.PlayerID
		}
	}
	return best
}

func (m *Machine) completeNonTournamentPhase(ctx context.Context, saveID string, save *model.Save) error {
	switch save.CurrentPhase {
	case model.AnnualAwards:
		return m.completeAnnualAwards(ctx, saveID, save)

	case model.TransferWindow:
		w, err := m.store.Workflows().GetTransferWindow(ctx, saveID, save.CurrentSeason)
		if err != nil {
			return errors.Wrap(errors.PersistenceError, "get transfer window", err)
		}
		if w.Status != model.WorkflowCompleted {
			return errors.New(errors.PhasePrecondition, "complete_phase: transfer window not yet completed externally")
		}
		return nil

	case model.Draft:
		regions, err := m.store.Regions().ListBySave(ctx, saveID)
		if err != nil {
			return errors.Wrap(errors.PersistenceError, "list regions", err)
		}
		results, err := m.store.Workflows().ListDraftResults(ctx, saveID, save.CurrentSeason)
		if err != nil {
			return errors.Wrap(errors.PersistenceError, "list draft results", err)
		}
		seen := make(map[uint64]bool, len(results))
		for _, r := range results {
			seen[r.RegionID] = true
		}
		for _, r := range regions {
			if !seen[r.ID] {
				return errors.New(errors.PhasePrecondition, "complete_phase: draft results missing for a region")
			}
		}
		return nil

	case model.SeasonEnd:
		return nil

	default:
		return errors.New(errors.ValidationFailed, "complete_phase: unhandled non-tournament phase")
	}
}

func (m *Machine) completeAnnualAwards(ctx context.Context, saveID string, save *model.Save) error {
	already, err := m.store.Honors().ExistsAnnualForSeason(ctx, saveID, save.CurrentSeason)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "check annual honors existence", err)
	}
	if already {
		return nil
	}

	statsList, err := m.store.SeasonStats().ListBySaveSeason(ctx, saveID, save.CurrentSeason)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "list season stats", err)
	}
	awards.ComputeScores(statsList)

	players, err := m.store.Players().ListBySave(ctx, saveID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "list players", err)
	}
	playersByID := make(map[uint64]*model.Player, len(players))
	for _, p := range players {
		playersByID[p.ID] = p
	}

	if _, err := awards.AwardAnnualHonors(ctx, m.store, saveID, save.CurrentSeason, statsList, playersByID); err != nil {
		return err
	}
	if err := m.store.SeasonStats().BatchUpsert(ctx, statsList); err != nil {
		return errors.Wrap(errors.PersistenceError, "flush season stats", err)
	}

	honorWeights, err := awards.AccumulateHonorWeights(ctx, m.store, saveID, save.CurrentSeason)
	if err != nil {
		return err
	}

	regions, err := m.store.Regions().ListBySave(ctx, saveID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "list regions", err)
	}
	regionShortName := make(map[uint64]string, len(regions))
	for _, r := range regions {
		regionShortName[r.ID] = r.ShortName
	}

	teams, err := m.store.Teams().ListBySave(ctx, saveID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "list teams", err)
	}
	regionShortNameByTeam := make(map[uint64]string, len(teams))
	teamsByID := make(map[uint64]*model.Team, len(teams))
	for _, t := range teams {
		regionShortNameByTeam[t.ID] = regionShortName[t.RegionID]
		teamsByID[t.ID] = t
	}

	awards.RecomputeMarketValues(players, honorWeights, regionShortNameByTeam)
	if err := m.store.Players().BatchUpdate(ctx, players); err != nil {
		return errors.Wrap(errors.PersistenceError, "update player market values", err)
	}

	if err := awards.RecomputeBrandValues(ctx, m.store, saveID, save.CurrentSeason, teamsByID); err != nil {
		return err
	}
	for _, t := range teamsByID {
		if err := m.store.Teams().Update(ctx, t); err != nil {
			return errors.Wrap(errors.PersistenceError, "update team brand value", err)
		}
	}
	return nil
}
