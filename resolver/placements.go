// Package resolver derives a completed tournament's outcomes: final
// placements, honors, annual points, prize money, and champion
// statistics. Idempotency lives in the repository layer's existence
// checks, which this package always consults before writing.
package resolver

import (
	"esports-career-sim/model"
	"esports-career-sim/scheduler"
)

// InferPlacements reads a bracket tournament's stage labels in
// priority order and returns the placements it can determine. An
// incomplete bracket yields a partial (possibly empty) slice; callers
// only invoke this once every match is Completed.
func InferPlacements(matches []*model.Match) []model.Placement {
	byStage := groupByStage(matches)
	var placements []model.Placement

	if winner, loser, ok := stageResult(byStage, scheduler.StageGrandFinal); ok {
		placements = append(placements,
			model.Placement{TeamID: winner, Bucket: model.Champion},
			model.Placement{TeamID: loser, Bucket: model.RunnerUp},
		)
	}

	thirdFourthAssigned := false
	if winner, loser, ok := stageResult(byStage, scheduler.StageThirdPlace); ok {
		placements = append(placements,
			model.Placement{TeamID: winner, Bucket: model.Third},
			model.Placement{TeamID: loser, Bucket: model.Fourth},
		)
		thirdFourthAssigned = true
	}

	if !thirdFourthAssigned {
		if _, loser, ok := stageResult(byStage, scheduler.StageLosersFinal); ok {
			placements = append(placements, model.Placement{TeamID: loser, Bucket: model.Third})
		}
		// Bye-heavy brackets run LOSERS_R3 over more than one physical
		// round; only the last round's loser finished fourth, the earlier
		// ones fall into the 5th-8th bucket below.
		final, earlier := splitLastRound(byStage[scheduler.StageLosersR3])
		for _, loser := range losersOfMatches(final) {
			placements = append(placements, model.Placement{TeamID: loser, Bucket: model.Fourth})
		}
		for _, loser := range losersOfMatches(earlier) {
			placements = append(placements, model.Placement{TeamID: loser, Bucket: model.Fifth8th})
		}
	}

	for _, loser := range losersOf(byStage, scheduler.StageLosersR2) {
		placements = append(placements, model.Placement{TeamID: loser, Bucket: model.Fifth8th})
	}
	for _, loser := range losersOf(byStage, scheduler.StageLosersR1) {
		placements = append(placements, model.Placement{TeamID: loser, Bucket: model.Fifth8th})
	}

	for _, loser := range losersOf(byStage, scheduler.StageEastR1) {
		placements = append(placements, model.Placement{TeamID: loser, Bucket: model.QuarterLoser})
	}
	for _, loser := range losersOf(byStage, scheduler.StageWestR1) {
		placements = append(placements, model.Placement{TeamID: loser, Bucket: model.QuarterLoser})
	}

	// World Championship has no losers bracket or third-place match: both
	// of its semifinal losers take the Third bucket (no 3rd/4th split), and
	// its quarterfinal losers fill the 5th-8th bucket.
	if !thirdFourthAssigned {
		for _, loser := range losersOf(byStage, scheduler.StageSemifinal) {
			placements = append(placements, model.Placement{TeamID: loser, Bucket: model.Third})
		}
	}
	for _, loser := range losersOf(byStage, scheduler.StageQuarterfinal) {
		placements = append(placements, model.Placement{TeamID: loser, Bucket: model.Fifth8th})
	}

	return dedupePlacements(placements)
}

// dedupePlacements keeps the first (highest-priority) bucket recorded for
// a team, since a team can only occupy one finishing slot.
func dedupePlacements(in []model.Placement) []model.Placement {
	seen := map[uint64]bool{}
	var out []model.Placement
	for _, p := range in {
		if p.TeamID == 0 || seen[p.TeamID] {
			continue
		}
		seen[p.TeamID] = true
		out = append(out, p)
	}
	return out
}

func groupByStage(matches []*model.Match) map[string][]*model.Match {
	out := map[string][]*model.Match{}
	for _, m := range matches {
		out[m.Stage] = append(out[m.Stage], m)
	}
	return out
}

// stageResult returns the single winner/loser of a one-match stage (e.g.
// GRAND_FINAL, LOSERS_FINAL, THIRD_PLACE).
func stageResult(byStage map[string][]*model.Match, stage string) (winner, loser uint64, ok bool) {
	matches := byStage[stage]
	if len(matches) != 1 || matches[0].Status != model.MatchCompleted || matches[0].WinnerID == nil {
		return 0, 0, false
	}
	m := matches[0]
	winner = *m.WinnerID
	loser = m.HomeTeamID
	if loser == winner {
		loser = m.AwayTeamID
	}
	return winner, loser, true
}

// losersOf returns every completed match's loser for a (possibly
// multi-match) stage.
func losersOf(byStage map[string][]*model.Match, stage string) []uint64 {
	return losersOfMatches(byStage[stage])
}

func losersOfMatches(matches []*model.Match) []uint64 {
	var losers []uint64
	for _, m := range matches {
		if m.Status != model.MatchCompleted || m.WinnerID == nil {
			continue
		}
		loser := m.HomeTeamID
		if loser == *m.WinnerID {
			loser = m.AwayTeamID
		}
		losers = append(losers, loser)
	}
	return losers
}

// splitLastRound partitions a stage's matches into those of its highest
// Round value and everything earlier. A nil Round counts as round 0, so
// a single-round stage with unset rounds lands wholly in last.
func splitLastRound(matches []*model.Match) (last, earlier []*model.Match) {
	roundOf := func(m *model.Match) int {
		if m.Round == nil {
			return 0
		}
		return *m.Round
	}
	maxRound := 0
	for _, m := range matches {
		if roundOf(m) > maxRound {
			maxRound = roundOf(m)
		}
	}
	for _, m := range matches {
		if roundOf(m) == maxRound {
			last = append(last, m)
		} else {
			earlier = append(earlier, m)
		}
	}
	return last, earlier
}

// RegularSeasonPlacements maps a completed round-robin's final standings
// onto the same placement-bucket vocabulary the annual-points table uses,
// so regular-season phases can be credited through the identical
// (tournament_type, placement_bucket) lookup as bracket tournaments.
func RegularSeasonPlacements(standings []*model.LeagueStanding) []model.Placement {
	var placements []model.Placement
	for _, s := range standings {
		if s.Rank == nil {
			continue
		}
		var bucket model.PlacementBucket
		switch *s.Rank {
		case 1:
			bucket = model.Champion
		case 2:
			bucket = model.RunnerUp
		case 3:
			bucket = model.Third
		case 4:
			bucket = model.Fourth
		default:
			if *s.Rank <= 8 {
				bucket = model.Fifth8th
			} else {
				continue
			}
		}
		placements = append(placements, model.Placement{TeamID: s.TeamID, Bucket: bucket})
	}
	return placements
}

// InferICPPlacements implements the ICP special case: placement is
// reported by region rather than by team. It maps ICP_RELAY standings
// (computed over the 16 individual teams) onto each team's region, then
// ranks regions by their best-placed team. Callers see the same shape
// every other tournament type produces, with region_id standing in for
// team_id.
func InferICPPlacements(standings []*model.LeagueStanding, teamRegion map[uint64]uint64) []model.Placement {
	type regionScore struct {
		regionID  uint64
		bestRank  int
		teamCount int
	}
	scores := map[uint64]*regionScore{}
	var order []uint64
	for _, s := range standings {
		regionID, ok := teamRegion[s.TeamID]
		if !ok || s.Rank == nil {
			continue
		}
		rs, exists := scores[regionID]
		if !exists {
			rs = &regionScore{regionID: regionID, bestRank: *s.Rank}
			scores[regionID] = rs
			order = append(order, regionID)
		}
		rs.teamCount++
		if *s.Rank < rs.bestRank {
			rs.bestRank = *s.Rank
		}
	}

	// Sort regions by their best-placed team's rank.
	sortedRegions := append([]uint64{}, order...)
	for i := 1; i < len(sortedRegions); i++ {
		for j := i; j > 0 && scores[sortedRegions[j]].bestRank < scores[sortedRegions[j-1]].bestRank; j-- {
			sortedRegions[j], sortedRegions[j-1] = sortedRegions[j-1], sortedRegions[j]
		}
	}

	var placements []model.Placement
	buckets := []model.PlacementBucket{model.Champion, model.RunnerUp, model.Third, model.Fourth}
	for i, regionID := range sortedRegions {
		rid := regionID
		bucket := model.Fifth8th
		if i < len(buckets) {
			bucket = buckets[i]
		}
		placements = append(placements, model.Placement{RegionID: &rid, Bucket: bucket})
	}
	return placements
}
