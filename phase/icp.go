package phase

import (
	"context"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
	"esports-career-sim/scheduler"
)

// icpTeamsPerRegion is the per-region delegation size for the ICP relay,
// ranked by each team's cross-season annual points.
const icpTeamsPerRegion = 4

// seedICP builds the ICP Intercontinental relay from every region's top-4
// teams by annual points, grouped so scheduler.SeedICP's round-robin pairs
// teams across regions.
func (m *Machine) seedICP(ctx context.Context, saveID string, season uint32) error {
	regions, err := regionsSorted(ctx, m.store, saveID)
	if err != nil {
		return err
	}
	ranked, err := annualPointsRanked(ctx, m.store, saveID)
	if err != nil {
		return err
	}
	byRegion := map[uint64][]uint64{}
	for _, t := range ranked {
		if len(byRegion[t.RegionID]) >= icpTeamsPerRegion {
			continue
		}
		byRegion[t.RegionID] = append(byRegion[t.RegionID], t.ID)
	}

	var regionTeams []scheduler.RegionTeams
	for _, region := range regions {
		teams, ok := byRegion[region.ID]
		if !ok || len(teams) == 0 {
			continue
		}
		regionTeams = append(regionTeams, scheduler.RegionTeams{RegionID: region.ID, TeamIDs: teams})
	}
	if len(regionTeams) == 0 {
		return nil
	}

	tournament := &model.Tournament{
		SaveID:         saveID,
		SeasonID:       season,
		TournamentType: model.TTIcpIntercontinental,
		Name:           model.TTIcpIntercontinental.String(),
		Status:         model.TournamentInProgress,
	}
	if err := m.store.Tournaments().Create(ctx, tournament); err != nil {
		return errors.Wrap(errors.PersistenceError, "create icp tournament", err)
	}

	teamIDs := scheduler.FlattenRegionTeams(regionTeams)
	matches := scheduler.SeedICP(tournament.ID, teamIDs, regularSeasonFormat)
	if err := m.batchCreateMatches(ctx, matches); err != nil {
		return err
	}
	return initStandingsZero(ctx, m.store, tournament.ID, teamIDs)
}
