package phase

import (
	"context"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
	"esports-career-sim/scheduler"
)

// regularSeasonFormat/bracketFormat fix the two series lengths this core
// uses: Bo3 for round-robin regular seasons, Bo5 for every
// elimination-bracket stage.
const (
	regularSeasonFormat = model.Bo3
	bracketFormat       = model.Bo5
)

// phaseTournamentType maps a tournament phase onto the TournamentType its
// own tournaments carry. Non-tournament phases have no mapping.
func phaseTournamentType(p model.SeasonPhase) model.TournamentType {
	switch p {
	case model.SpringRegular:
		return model.TTSpringRegular
	case model.SpringPlayoffs:
		return model.TTSpringPlayoffs
	case model.Msi:
		return model.TTMsi
	case model.MadridMasters:
		return model.TTMadridMasters
	case model.SummerRegular:
		return model.TTSummerRegular
	case model.SummerPlayoffs:
		return model.TTSummerPlayoffs
	case model.ClaudeIntercontinental:
		return model.TTClaudeIntercontinental
	case model.WorldChampionship:
		return model.TTWorldChampionship
	case model.ShanghaiMasters:
		return model.TTShanghaiMasters
	case model.IcpIntercontinental:
		return model.TTIcpIntercontinental
	case model.SuperIntercontinental:
		return model.TTSuperIntercontinental
	default:
		return -1
	}
}

// InitializePhase is idempotent: it's a no-op once every
// tournament the phase expects already has at least one match.
func (m *Machine) InitializePhase(ctx context.Context, saveID string, p model.SeasonPhase) error {
	return m.withSaveLock(ctx, saveID, func() error {
		save, err := m.loadSave(ctx, saveID)
		if err != nil {
			return err
		}
		if save.CurrentPhase != p {
			return errors.New(errors.PhasePrecondition, "initialize_phase called for a phase the save is not currently in")
		}
		return m.initializePhaseLocked(ctx, saveID, save)
	})
}

// initializePhaseLocked seeds the save's current phase. Callers hold the
// save lock; CompleteAndAdvance reuses this to auto-initialize the
// successor phase it just transitioned into.
func (m *Machine) initializePhaseLocked(ctx context.Context, saveID string, save *model.Save) error {
	p := save.CurrentPhase
	if !p.IsTournamentPhase() {
		return m.initializeNonTournamentPhase(ctx, saveID, save)
	}

	already, err := m.phaseAlreadySeeded(ctx, saveID, save.CurrentSeason, p)
	if err != nil {
		return err
	}
	if already {
		return nil
	}

	switch p {
	case model.SpringRegular, model.SummerRegular:
		return m.seedRegionalRegular(ctx, saveID, save.CurrentSeason, phaseTournamentType(p))
	case model.SpringPlayoffs:
		return m.seedRegionalPlayoffs(ctx, saveID, save.CurrentSeason, model.TTSpringPlayoffs, model.TTSpringRegular)
	case model.SummerPlayoffs:
		return m.seedRegionalPlayoffs(ctx, saveID, save.CurrentSeason, model.TTSummerPlayoffs, model.TTSummerRegular)
	case model.Msi:
		return m.seedMasters12(ctx, saveID, save.CurrentSeason, model.TTMsi, model.TTSpringPlayoffs)
	case model.ShanghaiMasters:
		return m.seedMasters12(ctx, saveID, save.CurrentSeason, model.TTShanghaiMasters, model.TTSummerPlayoffs)
	case model.MadridMasters:
		return m.seedMasters32(ctx, saveID, save.CurrentSeason, model.TTMadridMasters, model.TTSpringRegular)
	case model.ClaudeIntercontinental:
		return m.seedMasters32(ctx, saveID, save.CurrentSeason, model.TTClaudeIntercontinental, model.TTSummerRegular)
	case model.WorldChampionship:
		return m.seedWorldChampionship(ctx, saveID, save.CurrentSeason)
	case model.IcpIntercontinental:
		return m.seedICP(ctx, saveID, save.CurrentSeason)
	case model.SuperIntercontinental:
		return m.seedSuper(ctx, saveID, save.CurrentSeason)
	default:
		return errors.New(errors.ValidationFailed, "initialize_phase: unhandled tournament phase")
	}
}

// phaseAlreadySeeded reports whether every tournament this phase expects
// already has at least one match, the initialization idempotency condition.
func (m *Machine) phaseAlreadySeeded(ctx context.Context, saveID string, season uint32, p model.SeasonPhase) (bool, error) {
	tournaments, err := m.store.Tournaments().ListBySavePhase(ctx, saveID, season, phaseTournamentType(p))
	if err != nil {
		return false, errors.Wrap(errors.PersistenceError, "list tournaments for phase", err)
	}
	if len(tournaments) == 0 {
		return false, nil
	}
	for _, t := range tournaments {
		matches, err := m.store.Matches().ListByTournament(ctx, t.ID)
		if err != nil {
			return false, errors.Wrap(errors.PersistenceError, "list matches", err)
		}
		if len(matches) == 0 {
			return false, nil
		}
	}
	return true, nil
}

func (m *Machine) initializeNonTournamentPhase(ctx context.Context, saveID string, save *model.Save) error {
	switch save.CurrentPhase {
	case model.TransferWindow:
		if w, err := m.store.Workflows().GetTransferWindow(ctx, saveID, save.CurrentSeason); err == nil && w != nil {
			return nil
		}
		return m.store.Workflows().CreateTransferWindow(ctx, &model.TransferWindowRow{
			SaveID:   saveID,
			SeasonID: save.CurrentSeason,
			Status:   model.WorkflowPending,
		})
	case model.AnnualAwards, model.Draft, model.SeasonEnd:
		return nil // no initialization step for these phases
	default:
		return errors.New(errors.ValidationFailed, "initialize_phase: unhandled non-tournament phase")
	}
}

// seedRegionalRegular creates one double round-robin tournament per
// region.
func (m *Machine) seedRegionalRegular(ctx context.Context, saveID string, season uint32, tt model.TournamentType) error {
	regions, err := regionsSorted(ctx, m.store, saveID)
	if err != nil {
		return err
	}
	for _, region := range regions {
		seeds, err := regionTeamsSeeded(ctx, m.store, region.ID)
		if err != nil {
			return err
		}
		if len(seeds) == 0 {
			continue
		}
		teamIDs := teamIDsOf(seeds)
		tournament := &model.Tournament{
			SaveID:         saveID,
			SeasonID:       season,
			TournamentType: tt,
			Name:           tt.String() + " " + region.ShortName,
			RegionID:       &region.ID,
			Status:         model.TournamentInProgress,
		}
		if err := m.store.Tournaments().Create(ctx, tournament); err != nil {
			return errors.Wrap(errors.PersistenceError, "create regular season tournament", err)
		}
		matches := scheduler.DoubleRoundRobin(tournament.ID, teamIDs, regularSeasonFormat)
		if err := m.batchCreateMatches(ctx, matches); err != nil {
			return err
		}
		if err := initStandingsZero(ctx, m.store, tournament.ID, teamIDs); err != nil {
			return err
		}
	}
	return nil
}

// seedRegionalPlayoffs creates one double-elimination playoff tournament
// per region, seeded from that region's just-completed regular season
// standings.
func (m *Machine) seedRegionalPlayoffs(ctx context.Context, saveID string, season uint32, playoffTT, regularTT model.TournamentType) error {
	regulars, err := tournamentsByRegion(ctx, m.store, saveID, season, regularTT)
	if err != nil {
		return err
	}
	regions, err := regionsSorted(ctx, m.store, saveID)
	if err != nil {
		return err
	}
	for _, region := range regions {
		regular, ok := regulars[region.ID]
		if !ok {
			continue
		}
		teamIDs, err := standingsRankedTop(ctx, m.store, regular.ID, 8)
		if err != nil {
			return err
		}
		if len(teamIDs) < 2 {
			continue
		}
		seeds := make([]scheduler.Seed, len(teamIDs))
		for i, id := range teamIDs {
			seeds[i] = scheduler.Seed{TeamID: id, Seed: i + 1}
		}
		tournament := &model.Tournament{
			SaveID:         saveID,
			SeasonID:       season,
			TournamentType: playoffTT,
			Name:           playoffTT.String() + " " + region.ShortName,
			RegionID:       &region.ID,
			Status:         model.TournamentInProgress,
		}
		if err := m.store.Tournaments().Create(ctx, tournament); err != nil {
			return errors.Wrap(errors.PersistenceError, "create playoff tournament", err)
		}
		byeCount := scheduler.RegionalPlayoffByeCount(len(seeds))
		matches := scheduler.SeedDoubleElim(tournament.ID, seeds, byeCount, bracketFormat)
		if err := m.batchCreateMatches(ctx, matches); err != nil {
			return err
		}
	}
	return nil
}

// seedMasters12 builds the MSI/Shanghai Masters 12-team double-elim
// bracket from each region's just-completed playoffs: champion, runner-up
// and third place.
func (m *Machine) seedMasters12(ctx context.Context, saveID string, season uint32, tt, feederTT model.TournamentType) error {
	champions, runnersUp, thirds, err := mastersFeederTeams(ctx, m, saveID, season, feederTT)
	if err != nil {
		return err
	}

	all := append(append(append([]uint64{}, champions...), runnersUp...), thirds...)
	if len(all) == 0 {
		return nil
	}
	seeds := make([]scheduler.Seed, len(all))
	for i, id := range all {
		seeds[i] = scheduler.Seed{TeamID: id, Seed: i + 1}
	}

	tournament := &model.Tournament{
		SaveID:         saveID,
		SeasonID:       season,
		TournamentType: tt,
		Name:           tt.String(),
		Status:         model.TournamentInProgress,
	}
	if err := m.store.Tournaments().Create(ctx, tournament); err != nil {
		return errors.Wrap(errors.PersistenceError, "create masters-12 tournament", err)
	}
	matches := scheduler.SeedDoubleElim(tournament.ID, seeds, len(champions), bracketFormat)
	return m.batchCreateMatches(ctx, matches)
}

func (m *Machine) batchCreateMatches(ctx context.Context, matches []*model.Match) error {
	if len(matches) == 0 {
		return nil
	}
	if err := m.store.Matches().BatchCreate(ctx, matches); err != nil {
		return errors.Wrap(errors.PersistenceError, "create matches", err)
	}
	return nil
}

func teamIDsOf(seeds []scheduler.Seed) []uint64 {
	out := make([]uint64, len(seeds))
	for i, s := range seeds {
		out[i] = s.TeamID
	}
	return out
}
