package scheduler

import "esports-career-sim/model"

// ICP (Intercontinental): 16 teams, 4 per region across 4 regions,
// structured as inter-region relays. Region-level placement logic stays
// isolated behind the same final-results interface as every other
// tournament type; ICP is scheduled as one round-robin among all 16 teams
// (stage ICP_RELAY). Every region's four teams face every other region's
// four at least once over the schedule, which a full round-robin
// guarantees without a dedicated bracket shape. Final ranking is derived at the region level
// by resolver.InferICPPlacements from the resulting standings.
const StageICPRelay = "ICP_RELAY"

// SeedICP generates the relay round-robin. teams must already be ordered
// so that each region's four teams are contiguous (RegionTeams groups
// them); the round-robin pairing itself needs no further region-awareness
// since every team plays every other team exactly once.
func SeedICP(tournamentID uint64, teams []uint64, format model.MatchFormat) []*model.Match {
	matches := SingleRoundRobin(tournamentID, teams, format)
	for _, m := range matches {
		m.Stage = StageICPRelay
	}
	return matches
}

// RegionTeams groups seeded teams by region, preserving seed order within
// each region, for callers building ICP's input team list.
type RegionTeams struct {
	RegionID uint64
	TeamIDs  []uint64
}

// FlattenRegionTeams concatenates regions' team lists in the order given.
func FlattenRegionTeams(regions []RegionTeams) []uint64 {
	var out []uint64
	for _, r := range regions {
		out = append(out, r.TeamIDs...)
	}
	return out
}
