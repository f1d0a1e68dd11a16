package phase

import (
	"context"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
	"esports-career-sim/scheduler"
)

// seedWorldChampionship gathers each region's summer-playoff champion
// (direct entrant) and runner-up/third (Swiss-stage entrants): 4 direct
// teams plus an 8-team Swiss field.
func (m *Machine) seedWorldChampionship(ctx context.Context, saveID string, season uint32) error {
	direct, swiss, err := worldChampionshipFeederTeams(ctx, m, saveID, season)
	if err != nil {
		return err
	}
	if len(direct) == 0 {
		return nil
	}

	tournament := &model.Tournament{
		SaveID:         saveID,
		SeasonID:       season,
		TournamentType: model.TTWorldChampionship,
		Name:           model.TTWorldChampionship.String(),
		Status:         model.TournamentInProgress,
	}
	if err := m.store.Tournaments().Create(ctx, tournament); err != nil {
		return errors.Wrap(errors.PersistenceError, "create world championship tournament", err)
	}

	all := append(append([]uint64{}, direct...), swiss...)
	if err := initStandingsZero(ctx, m.store, tournament.ID, all); err != nil {
		return err
	}

	swissSeeds := make([]scheduler.Seed, len(swiss))
	for i, id := range swiss {
		swissSeeds[i] = scheduler.Seed{TeamID: id, Seed: i + 1}
	}
	matches := scheduler.SeedSwissRound1(tournament.ID, swissSeeds, bracketFormat)
	return m.batchCreateMatches(ctx, matches)
}

// worldChampionshipFeederTeams gathers each region's summer-playoff
// champion (direct entrant) and runner-up/third (Swiss entrants), filling
// short Swiss fields from summer regular standings. Shared by
// seedWorldChampionship and advance-time seed recomputation so both
// derive identical team lists from the same immutable placements.
func worldChampionshipFeederTeams(ctx context.Context, m *Machine, saveID string, season uint32) (direct, swiss []uint64, err error) {
	regions, err := regionsSorted(ctx, m.store, saveID)
	if err != nil {
		return nil, nil, err
	}
	feeders, err := tournamentsByRegion(ctx, m.store, saveID, season, model.TTSummerPlayoffs)
	if err != nil {
		return nil, nil, err
	}

	for _, region := range regions {
		t, ok := feeders[region.ID]
		if !ok {
			continue
		}
		champs, err := placementTeams(ctx, m.store, saveID, t.ID, model.Champion)
		if err != nil {
			return nil, nil, err
		}
		runners, err := placementTeams(ctx, m.store, saveID, t.ID, model.RunnerUp)
		if err != nil {
			return nil, nil, err
		}
		thirds, err := placementTeams(ctx, m.store, saveID, t.ID, model.Third)
		if err != nil {
			return nil, nil, err
		}
		direct = append(direct, champs...)
		swiss = append(swiss, runners...)
		swiss = append(swiss, thirds...)

		// "filled from summer regular standings if short": a region whose
		// playoff didn't clear 3 distinct honored slots donates its next
		// regular-season finishers instead of leaving the Swiss field light.
		if need := 2 - (len(runners) + len(thirds)); need > 0 {
			regulars, rerr := tournamentsByRegion(ctx, m.store, saveID, season, model.TTSummerRegular)
			if rerr != nil {
				return nil, nil, rerr
			}
			if regular, ok := regulars[region.ID]; ok {
				fill, ferr := standingsRankedTop(ctx, m.store, regular.ID, 2+need)
				if ferr != nil {
					return nil, nil, ferr
				}
				for _, id := range fill {
					if !contains(swiss, id) && !contains(direct, id) {
						swiss = append(swiss, id)
						need--
						if need == 0 {
							break
						}
					}
				}
			}
		}
	}
	return direct, swiss, nil
}

func contains(ids []uint64, id uint64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// advanceWorldChampionship drives the Swiss stage to its 4 survivors,
// then seeds and advances Phase B's single-elim bracket.
func (m *Machine) advanceWorldChampionship(tournamentID uint64, direct, swiss []uint64, format model.MatchFormat, all []*model.Match) []*model.Match {
	swissSeeds := make([]scheduler.Seed, len(swiss))
	for i, id := range swiss {
		swissSeeds[i] = scheduler.Seed{TeamID: id, Seed: i + 1}
	}

	if stageExistsIn(all, tournamentID, scheduler.StageQuarterfinal) {
		return scheduler.AdvanceChampionshipBracket(tournamentID, format, all)
	}

	if next := scheduler.AdvanceSwiss(tournamentID, swissSeeds, format, all); len(next) > 0 {
		return next
	}

	// The Swiss stage can make no further matches. Normally exactly four
	// teams hold 3 wins; if the pairing left a stranded team or a fifth
	// clincher, the advancing slots are rebuilt from the record ranking.
	survivors := scheduler.SwissSurvivors(tournamentID, swissSeeds, all)
	need := len(swiss) / 2
	if len(survivors) != need {
		ranked := scheduler.SwissRanking(tournamentID, swissSeeds, all)
		if len(ranked) > need {
			ranked = ranked[:need]
		}
		survivors = ranked
	}
	directSeeds := make([]scheduler.Seed, len(direct))
	for i, id := range direct {
		directSeeds[i] = scheduler.Seed{TeamID: id, Seed: i + 1}
	}
	return scheduler.SeedChampionshipBracket(tournamentID, directSeeds, survivors, format)
}
