package scheduler

import "esports-career-sim/model"

// 32-team Masters (Madrid, Claude Intercontinental): stage 1 splits the
// field into eight 4-team groups (double round-robin each), stage 2 seeds
// the top two finishers of each group into an East/West single-elim Bo5
// split, and the semi-final losers play a THIRD_PLACE match alongside the
// GRAND_FINAL.

func groupLabel(i int) string {
	return string(rune('A' + i))
}

// SeedGroupStage splits 32 seeded teams into eight 4-team groups using a
// snake draw (1..8 to groups A..H, 9..16 back H..A, and so on) so the
// top-8 regional finishers land in distinct groups, then generates a
// double round-robin within each group, stage label "GROUP_<letter>".
func SeedGroupStage(tournamentID uint64, seeds []Seed, format model.MatchFormat) []*model.Match {
	groups := snakeDraw(seeds, 8)

	var matches []*model.Match
	for i, group := range groups {
		label := "GROUP_" + groupLabel(i)
		groupMatches := DoubleRoundRobin(tournamentID, group, format)
		for _, m := range groupMatches {
			m.Stage = label
		}
		matches = append(matches, groupMatches...)
	}
	sortByRoundThenTeam(matches)
	return matches
}

// snakeDraw distributes ordered seeds into numGroups groups, snaking
// direction each pass so seed 1 and seed (numGroups+1) aren't forced into
// the same group twice in a row.
func snakeDraw(seeds []Seed, numGroups int) [][]uint64 {
	groups := make([][]uint64, numGroups)
	pass := 0
	for i := 0; i < len(seeds); i += numGroups {
		end := i + numGroups
		if end > len(seeds) {
			end = len(seeds)
		}
		chunk := append([]Seed{}, seeds[i:end]...)
		if pass%2 == 1 {
			for l, r := 0, len(chunk)-1; l < r; l, r = l+1, r-1 {
				chunk[l], chunk[r] = chunk[r], chunk[l]
			}
		}
		for g, s := range chunk {
			groups[g] = append(groups[g], s.TeamID)
		}
		pass++
	}
	return groups
}

const (
	StageEastR1    = "EAST_R1"
	StageEastSemi  = "EAST_SEMI"
	StageEastFinal = "EAST_FINAL"
	StageWestR1    = "WEST_R1"
	StageWestSemi  = "WEST_SEMI"
	StageWestFinal = "WEST_FINAL"
	StageThirdPlace = "THIRD_PLACE"
)

// SeedKnockoutStage generates stage 2's opening round: 16 group survivors
// (8 seeded East, 8 seeded West by the caller's regional split) each play
// a single-elim Bo5 round within their half.
func SeedKnockoutStage(tournamentID uint64, east, west []Seed, format model.MatchFormat) []*model.Match {
	var matches []*model.Match
	matches = append(matches, seedHalfR1(tournamentID, StageEastR1, east, format)...)
	matches = append(matches, seedHalfR1(tournamentID, StageWestR1, west, format)...)
	sortByRoundThenTeam(matches)
	return matches
}

func seedHalfR1(tournamentID uint64, stage string, half []Seed, format model.MatchFormat) []*model.Match {
	pairs := seedPairs(seedIDs(half))
	matches := make([]*model.Match, 0, len(pairs))
	for i, p := range pairs {
		matches = append(matches, newMatch(tournamentID, stage, 1, i+1, format, p[0], p[1]))
	}
	return matches
}

// AdvanceKnockoutStage is the stage-2 bracket advancer: each half walks
// R1 -> SEMI -> FINAL as its feeders complete; once both half finals are
// done it emits THIRD_PLACE (half-final losers) and GRAND_FINAL
// (half-final winners).
func AdvanceKnockoutStage(tournamentID uint64, format model.MatchFormat, all []*model.Match) []*model.Match {
	byStage := map[string][]*model.Match{}
	for _, m := range all {
		if m.TournamentID == tournamentID {
			byStage[m.Stage] = append(byStage[m.Stage], m)
		}
	}

	var newMatches []*model.Match
	halfAdvance(tournamentID, StageEastR1, StageEastSemi, StageEastFinal, byStage, format, &newMatches)
	halfAdvance(tournamentID, StageWestR1, StageWestSemi, StageWestFinal, byStage, format, &newMatches)
	if len(newMatches) > 0 {
		return finish(newMatches)
	}

	eastFinalWinners, eastFinalLosers, eastFinalOK := roundResultPair(byStage, StageEastFinal)
	westFinalWinners, westFinalLosers, westFinalOK := roundResultPair(byStage, StageWestFinal)
	if eastFinalOK && westFinalOK {
		if !stageExists(byStage[StageThirdPlace], StageThirdPlace) {
			newMatches = append(newMatches, newMatch(tournamentID, StageThirdPlace, 4, 1, format, eastFinalLosers[0], westFinalLosers[0]))
		}
		if !stageExists(byStage[StageGrandFinal], StageGrandFinal) {
			newMatches = append(newMatches, newMatch(tournamentID, StageGrandFinal, 4, 2, format, eastFinalWinners[0], westFinalWinners[0]))
		}
	}
	return finish(newMatches)
}

// halfAdvance walks one half's single-elim rounds, appending the next
// round to *out once its feeder round fully resolves and the next isn't
// created yet.
func halfAdvance(tournamentID uint64, r1Stage, semiStage, finalStage string, byStage map[string][]*model.Match, format model.MatchFormat, out *[]*model.Match) {
	r1Winners, _, r1OK := roundResultPair(byStage, r1Stage)
	if !r1OK {
		return
	}
	if len(byStage[semiStage]) == 0 {
		for i, p := range seedPairs(r1Winners) {
			*out = append(*out, newMatch(tournamentID, semiStage, 2, i+1, format, p[0], p[1]))
		}
		return
	}
	semiWinners, _, semiOK := roundResultPair(byStage, semiStage)
	if !semiOK {
		return
	}
	if len(byStage[finalStage]) == 0 {
		for i, p := range seedPairs(semiWinners) {
			*out = append(*out, newMatch(tournamentID, finalStage, 3, i+1, format, p[0], p[1]))
		}
	}
}

func roundResultPair(byStage map[string][]*model.Match, stage string) (winners, losers []uint64, ok bool) {
	matches := byStage[stage]
	if len(matches) == 0 {
		return nil, nil, false
	}
	for _, m := range matches {
		if m.Status != model.MatchCompleted || m.WinnerID == nil {
			return nil, nil, false
		}
	}
	for _, m := range matches {
		w := *m.WinnerID
		l := m.HomeTeamID
		if l == w {
			l = m.AwayTeamID
		}
		winners = append(winners, w)
		losers = append(losers, l)
	}
	return winners, losers, true
}
