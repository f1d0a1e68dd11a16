package phase

import (
	"context"

	"esports-career-sim/model"
	"esports-career-sim/scheduler"
)

// regularFeederFor maps a regional playoff type back onto the regular
// season type it was seeded from, the inverse of seedRegionalPlayoffs'
// call site in InitializePhase.
func regularFeederFor(playoffTT model.TournamentType) model.TournamentType {
	switch playoffTT {
	case model.TTSpringPlayoffs:
		return model.TTSpringRegular
	case model.TTSummerPlayoffs:
		return model.TTSummerRegular
	case model.TTRegionalPlayoffs:
		return model.TTRegionalRegular
	default:
		return -1
	}
}

// mastersFeederFor maps MSI/Shanghai Masters back onto the regional
// playoffs they draw their champion/runner-up/third from.
func mastersFeederFor(mastersTT model.TournamentType) model.TournamentType {
	switch mastersTT {
	case model.TTMsi:
		return model.TTSpringPlayoffs
	case model.TTShanghaiMasters:
		return model.TTSummerPlayoffs
	default:
		return -1
	}
}

// bracketAdvance recomputes whatever's new for one tournament since its
// last advance call. Every bracket-shaped tournament type re-derives the
// same seed/placement-sourced team lists seedX used, since those sources
// (regional standings, feeder-tournament placements) are immutable once
// the dependent tournament has begun, so replaying the derivation here
// always matches what was used to seed the bracket originally.
func (m *Machine) bracketAdvance(ctx context.Context, saveID string, tournament *model.Tournament, all []*model.Match) ([]*model.Match, error) {
	switch tournament.TournamentType {
	case model.TTSpringRegular, model.TTSummerRegular, model.TTRegionalRegular, model.TTInvitational:
		return nil, nil // round-robin, nothing to advance

	case model.TTSpringPlayoffs, model.TTSummerPlayoffs, model.TTRegionalPlayoffs:
		regularTT := regularFeederFor(tournament.TournamentType)
		if regularTT == -1 || tournament.RegionID == nil {
			return nil, nil
		}
		regulars, err := tournamentsByRegion(ctx, m.store, saveID, tournament.SeasonID, regularTT)
		if err != nil {
			return nil, err
		}
		regular, ok := regulars[*tournament.RegionID]
		if !ok {
			return nil, nil
		}
		teamIDs, err := standingsRankedTop(ctx, m.store, regular.ID, 8)
		if err != nil {
			return nil, err
		}
		seeds := make([]scheduler.Seed, len(teamIDs))
		for i, id := range teamIDs {
			seeds[i] = scheduler.Seed{TeamID: id, Seed: i + 1}
		}
		byeCount := scheduler.RegionalPlayoffByeCount(len(seeds))
		return scheduler.AdvanceDoubleElim(tournament.ID, seeds, byeCount, bracketFormat, all), nil

	case model.TTMsi, model.TTShanghaiMasters:
		feederTT := mastersFeederFor(tournament.TournamentType)
		champions, runnersUp, thirds, err := mastersFeederTeams(ctx, m, saveID, tournament.SeasonID, feederTT)
		if err != nil {
			return nil, err
		}
		allIDs := append(append(append([]uint64{}, champions...), runnersUp...), thirds...)
		seeds := make([]scheduler.Seed, len(allIDs))
		for i, id := range allIDs {
			seeds[i] = scheduler.Seed{TeamID: id, Seed: i + 1}
		}
		return scheduler.AdvanceDoubleElim(tournament.ID, seeds, len(champions), bracketFormat, all), nil

	case model.TTMadridMasters, model.TTClaudeIntercontinental:
		return m.advanceMasters32(tournament.ID, bracketFormat, all), nil

	case model.TTWorldChampionship:
		direct, swiss, err := worldChampionshipFeederTeams(ctx, m, saveID, tournament.SeasonID)
		if err != nil {
			return nil, err
		}
		return m.advanceWorldChampionship(tournament.ID, direct, swiss, bracketFormat, all), nil

	case model.TTIcpIntercontinental:
		return nil, nil // relay round-robin, resolved at the standings level only

	case model.TTSuperIntercontinental:
		return m.advanceSuper(ctx, saveID, tournament.ID, bracketFormat, all)

	default:
		return nil, nil
	}
}
