package phase

import (
	"context"
	"sort"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
	"esports-career-sim/scheduler"
)

// mastersFeederTeams gathers each region's feeder-tournament
// champion/runner-up/third, the field MSI/Shanghai Masters seeds from.
// Shared by seedMasters12 and its advance-time seed recomputation so both
// derive identical seed orderings from the same immutable placements.
func mastersFeederTeams(ctx context.Context, m *Machine, saveID string, season uint32, feederTT model.TournamentType) (champions, runnersUp, thirds []uint64, err error) {
	regions, err := regionsSorted(ctx, m.store, saveID)
	if err != nil {
		return nil, nil, nil, err
	}
	feeders, err := tournamentsByRegion(ctx, m.store, saveID, season, feederTT)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, region := range regions {
		t, ok := feeders[region.ID]
		if !ok {
			continue
		}
		champs, err := placementTeams(ctx, m.store, saveID, t.ID, model.Champion)
		if err != nil {
			return nil, nil, nil, err
		}
		runners, err := placementTeams(ctx, m.store, saveID, t.ID, model.RunnerUp)
		if err != nil {
			return nil, nil, nil, err
		}
		third, err := placementTeams(ctx, m.store, saveID, t.ID, model.Third)
		if err != nil {
			return nil, nil, nil, err
		}
		champions = append(champions, champs...)
		runnersUp = append(runnersUp, runners...)
		thirds = append(thirds, third...)
	}
	return champions, runnersUp, thirds, nil
}

// seedMasters32 builds the 32-team Masters' stage-1 group round-robin
// from each region's top-8 regular-season finishers.
func (m *Machine) seedMasters32(ctx context.Context, saveID string, season uint32, tt, regularTT model.TournamentType) error {
	regions, err := regionsSorted(ctx, m.store, saveID)
	if err != nil {
		return err
	}
	regulars, err := tournamentsByRegion(ctx, m.store, saveID, season, regularTT)
	if err != nil {
		return err
	}

	var seeds []scheduler.Seed
	for _, region := range regions {
		regular, ok := regulars[region.ID]
		if !ok {
			continue
		}
		top8, err := standingsRankedTop(ctx, m.store, regular.ID, 8)
		if err != nil {
			return err
		}
		for _, id := range top8 {
			seeds = append(seeds, scheduler.Seed{TeamID: id, Seed: len(seeds) + 1})
		}
	}
	if len(seeds) == 0 {
		return nil
	}

	tournament := &model.Tournament{
		SaveID:         saveID,
		SeasonID:       season,
		TournamentType: tt,
		Name:           tt.String(),
		Status:         model.TournamentInProgress,
	}
	if err := m.store.Tournaments().Create(ctx, tournament); err != nil {
		return errors.Wrap(errors.PersistenceError, "create masters-32 tournament", err)
	}
	matches := scheduler.SeedGroupStage(tournament.ID, seeds, regularSeasonFormat)
	if err := m.batchCreateMatches(ctx, matches); err != nil {
		return err
	}
	return initStandingsZero(ctx, m.store, tournament.ID, teamIDsOf(seeds))
}

// advanceMasters32 drives the 32-team Masters across its two stages:
// while any GROUP_* match is pending it lets the bracket advancer alone;
// once all groups finish it seeds stage 2 (East/West knockout) from each
// group's top two, then delegates to scheduler.AdvanceKnockoutStage for
// the rest.
func (m *Machine) advanceMasters32(tournamentID uint64, format model.MatchFormat, all []*model.Match) []*model.Match {
	groups := map[string][]*model.Match{}
	for _, match := range all {
		if match.TournamentID == tournamentID && len(match.Stage) > 6 && match.Stage[:6] == "GROUP_" {
			groups[match.Stage] = append(groups[match.Stage], match)
		}
	}
	if len(groups) == 0 {
		return nil
	}
	for _, matches := range groups {
		for _, match := range matches {
			if match.Status != model.MatchCompleted {
				return nil // groups still in progress
			}
		}
	}

	if stageExistsIn(all, tournamentID, scheduler.StageEastR1) || stageExistsIn(all, tournamentID, scheduler.StageWestR1) {
		return scheduler.AdvanceKnockoutStage(tournamentID, format, all)
	}

	var groupNames []string
	for name := range groups {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	var east, west []scheduler.Seed
	for i, name := range groupNames {
		top2 := groupTop2(groups[name])
		half := &east
		if i%2 == 1 {
			half = &west
		}
		for _, id := range top2 {
			*half = append(*half, scheduler.Seed{TeamID: id, Seed: len(*half) + 1})
		}
	}
	return scheduler.SeedKnockoutStage(tournamentID, east, west, format)
}

func stageExistsIn(all []*model.Match, tournamentID uint64, stage string) bool {
	for _, m := range all {
		if m.TournamentID == tournamentID && m.Stage == stage {
			return true
		}
	}
	return false
}

// groupTop2 ranks a completed group's four teams by (wins desc, game
// diff desc, team id asc) directly from its match results and returns
// the top two: the in-memory equivalent of a persisted standings
// ranking, scoped to one group's matches instead of the whole
// tournament.
func groupTop2(matches []*model.Match) []uint64 {
	type record struct {
		teamID       uint64
		wins         int
		gamesWon     int
		gamesLost    int
	}
	records := map[uint64]*record{}
	get := func(id uint64) *record {
		r, ok := records[id]
		if !ok {
			r = &record{teamID: id}
			records[id] = r
		}
		return r
	}
	for _, match := range matches {
		home, away := get(match.HomeTeamID), get(match.AwayTeamID)
		home.gamesWon += match.HomeScore
		home.gamesLost += match.AwayScore
		away.gamesWon += match.AwayScore
		away.gamesLost += match.HomeScore
		if match.WinnerID != nil && *match.WinnerID == match.HomeTeamID {
			home.wins++
		} else if match.WinnerID != nil {
			away.wins++
		}
	}
	var ranked []*record
	for _, r := range records {
		ranked = append(ranked, r)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].wins != ranked[j].wins {
			return ranked[i].wins > ranked[j].wins
		}
		di := ranked[i].gamesWon - ranked[i].gamesLost
		dj := ranked[j].gamesWon - ranked[j].gamesLost
		if di != dj {
			return di > dj
		}
		return ranked[i].teamID < ranked[j].teamID
	})
	n := 2
	if len(ranked) < n {
		n = len(ranked)
	}
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		out[i] = ranked[i].teamID
	}
	return out
}
