package phase

import (
	"context"
	"sort"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
	"esports-career-sim/repository"
	"esports-career-sim/scheduler"
)

// regionsSorted returns every region of a save ordered by id, so every
// cross-region seeding routine (Masters groups, ICP, World Championship
// direct/swiss split) produces the same team ordering on every call.
func regionsSorted(ctx context.Context, store repository.Store, saveID string) ([]*model.Region, error) {
	regions, err := store.Regions().ListBySave(ctx, saveID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list regions", err)
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].ID < regions[j].ID })
	return regions, nil
}

// regionTeamsSeeded loads a region's teams and returns them as
// scheduler.Seed values ordered by team id, a stable default ordering used
// wherever no result-derived ranking exists yet (e.g. first-ever regular
// season of a save).
func regionTeamsSeeded(ctx context.Context, store repository.Store, regionID uint64) ([]scheduler.Seed, error) {
	teams, err := store.Teams().ListByRegion(ctx, regionID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list teams by region", err)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	seeds := make([]scheduler.Seed, len(teams))
	for i, t := range teams {
		seeds[i] = scheduler.Seed{TeamID: t.ID, Seed: i + 1}
	}
	return seeds, nil
}

// singleTournament returns the one tournament of tt in season (regional
// types that fan out per-region use tournamentsByRegion instead).
func singleTournament(ctx context.Context, store repository.Store, saveID string, season uint32, tt model.TournamentType) (*model.Tournament, error) {
	list, err := store.Tournaments().ListBySavePhase(ctx, saveID, season, tt)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list tournaments by phase", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// tournamentsByRegion indexes a regional tournament type's instances by
// RegionID.
func tournamentsByRegion(ctx context.Context, store repository.Store, saveID string, season uint32, tt model.TournamentType) (map[uint64]*model.Tournament, error) {
	list, err := store.Tournaments().ListBySavePhase(ctx, saveID, season, tt)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list tournaments by phase", err)
	}
	out := make(map[uint64]*model.Tournament, len(list))
	for _, t := range list {
		if t.RegionID != nil {
			out[*t.RegionID] = t
		}
	}
	return out, nil
}

// standingsRankedTop returns up to n team ids from a tournament's
// standings, ordered by Rank ascending (nil ranks sort last).
func standingsRankedTop(ctx context.Context, store repository.Store, tournamentID uint64, n int) ([]uint64, error) {
	standings, err := store.Standings().ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list standings", err)
	}
	sort.Slice(standings, func(i, j int) bool {
		ri, rj := standings[i].Rank, standings[j].Rank
		switch {
		case ri == nil && rj == nil:
			return standings[i].TeamID < standings[j].TeamID
		case ri == nil:
			return false
		case rj == nil:
			return true
		default:
			return *ri < *rj
		}
	})
	if n > len(standings) {
		n = len(standings)
	}
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		out[i] = standings[i].TeamID
	}
	return out, nil
}

// placementTeams reads a completed tournament's persisted Placements and
// returns the team ids in the given bucket, in the order the resolver
// recorded them.
func placementTeams(ctx context.Context, store repository.Store, saveID string, tournamentID uint64, bucket model.PlacementBucket) ([]uint64, error) {
	result, err := store.Results().Get(ctx, saveID, tournamentID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "get tournament result", err)
	}
	var out []uint64
	for _, p := range result.Placements {
		if p.Bucket == bucket && p.TeamID != 0 {
			out = append(out, p.TeamID)
		}
	}
	return out, nil
}

// annualPointsRanked returns every team of the save ordered by
// Team.AnnualPoints descending, the selection rule the Super
// Invitational and ICP qualification both key on.
func annualPointsRanked(ctx context.Context, store repository.Store, saveID string) ([]*model.Team, error) {
	teams, err := store.Teams().ListBySave(ctx, saveID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list teams", err)
	}
	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].AnnualPoints != teams[j].AnnualPoints {
			return teams[i].AnnualPoints > teams[j].AnnualPoints
		}
		return teams[i].ID < teams[j].ID
	})
	return teams, nil
}

// initStandingsZero creates (or resets) a zero-value LeagueStanding row
// for every team, used by round-robin-shaped tournaments (regular
// seasons, ICP's relay, the World Championship's 12-team Swiss pool) that
// rank participants by record rather than by bracket position.
func initStandingsZero(ctx context.Context, store repository.Store, tournamentID uint64, teamIDs []uint64) error {
	for _, id := range teamIDs {
		s := &model.LeagueStanding{TournamentID: tournamentID, TeamID: id}
		if err := store.Standings().Upsert(ctx, s); err != nil {
			return errors.Wrap(errors.PersistenceError, "init standing", err)
		}
	}
	return nil
}
