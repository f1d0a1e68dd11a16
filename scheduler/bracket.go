package scheduler

import "esports-career-sim/model"

// Double-elimination bracket generation and advancement, shared by the
// regional playoffs (6-8 teams; fields under 8 give their top seeds byes
// into winners round 2) and the MSI/Shanghai Masters
// (12 teams, top 4 seeds bye into winners round 2). In the bracket
// stage vocabulary, every pre-final winners-bracket round is labeled
// WINNERS_R1 (the Round field, not the Stage string, disambiguates which
// physical round a match belongs to) and the deciding winners-bracket
// match is WINNERS_FINAL; the losers bracket's pre-final rounds cycle
// through LOSERS_R1/LOSERS_R2/LOSERS_R3 and its decider is LOSERS_FINAL.
// No bracket reset: the grand final is always a single match.
const (
	StageWinnersR1    = "WINNERS_R1"
	StageWinnersFinal = "WINNERS_FINAL"
	StageLosersR1     = "LOSERS_R1"
	StageLosersR2     = "LOSERS_R2"
	StageLosersR3     = "LOSERS_R3"
	StageLosersFinal  = "LOSERS_FINAL"
	StageGrandFinal   = "GRAND_FINAL"
)

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// RegionalPlayoffByeCount returns how many top seeds must bye into
// winners-bracket round 2 for an n-team (6-8) regional double-elim
// playoff, so the field pads out to the next power of two.
func RegionalPlayoffByeCount(n int) int {
	return nextPow2(n) - n
}

// seedPairs pairs a slice of ordered seeds (best first) via standard
// bracket seeding: best vs worst, 2nd-best vs 2nd-worst, and so on, so
// top seeds don't meet until late rounds.
func seedPairs(ids []uint64) [][2]uint64 {
	n := len(ids)
	pairs := make([][2]uint64, 0, n/2)
	for i := 0; i < n/2; i++ {
		pairs = append(pairs, [2]uint64{ids[i], ids[n-1-i]})
	}
	return pairs
}

// SeedDoubleElim generates the initial, fully-determined matches of a
// double-elimination bracket: winners-bracket round 1 among the teams that
// don't bye. byeCount top seeds skip straight to winners-bracket round 2,
// joining round 1's winners there once AdvanceDoubleElim is called after
// round 1 completes. seeds must be ordered best (seed 1) first.
func SeedDoubleElim(tournamentID uint64, seeds []Seed, byeCount int, format model.MatchFormat) []*model.Match {
	ids := seedIDs(seeds)
	if byeCount < 0 || byeCount >= len(ids) {
		byeCount = 0
	}
	round1Teams := ids[byeCount:]
	pairs := seedPairs(round1Teams)

	var matches []*model.Match
	for i, p := range pairs {
		matches = append(matches, newMatch(tournamentID, bracketStage(len(pairs), len(pairs)*2), 1, i+1, format, p[0], p[1]))
	}
	sortByRoundThenTeam(matches)
	return matches
}

// bracketStage labels a winners-bracket round: the final round (exactly
// one match) is WINNERS_FINAL, every earlier round is WINNERS_R1.
func bracketStage(matchCount, roundTeamCount int) string {
	if matchCount == 1 {
		return StageWinnersFinal
	}
	return StageWinnersR1
}

// AdvanceDoubleElim replays the tournament's completed matches and returns
// any new matches that are now fully determined but not yet present,
// per the stateless bracket-advancer contract. byeCount must match the
// value passed to SeedDoubleElim for this tournament.
func AdvanceDoubleElim(tournamentID uint64, seeds []Seed, byeCount int, format model.MatchFormat, all []*model.Match) []*model.Match {
	ids := seedIDs(seeds)
	if byeCount < 0 || byeCount >= len(ids) {
		byeCount = 0
	}
	byeTeams := append([]uint64{}, ids[:byeCount]...)
	round1Teams := ids[byeCount:]

	byStageRound := map[string]map[int][]*model.Match{}
	index := func(m *model.Match) {
		r := roundOf(m)
		if byStageRound[m.Stage] == nil {
			byStageRound[m.Stage] = map[int][]*model.Match{}
		}
		byStageRound[m.Stage][r] = append(byStageRound[m.Stage][r], m)
	}
	for _, m := range all {
		if m.TournamentID == tournamentID {
			index(m)
		}
	}

	var newMatches []*model.Match
	exists := func(stage string, round int, home, away uint64) bool {
		for _, m := range byStageRound[stage][round] {
			if (m.HomeTeamID == home && m.AwayTeamID == away) || (m.HomeTeamID == away && m.AwayTeamID == home) {
				return true
			}
		}
		return false
	}

	// --- winners bracket replay ---
	roundWinnersTeams := round1Teams
	winnersRound := 1
	var pendingByeEntrants = byeTeams
	var winnersChampion uint64
	haveChampion := false

	for {
		completed, winners, _, ok := completedRoundResults(byStageRound, winnersStageFor(len(roundWinnersTeams)/2), winnersRound)
		if !ok || !completed {
			break
		}
		nextTeams := winners
		if winnersRound == 1 {
			nextTeams = append(append([]uint64{}, pendingByeEntrants...), winners...)
			pendingByeEntrants = nil
		}
		if len(nextTeams) == 1 {
			winnersChampion = nextTeams[0]
			haveChampion = true
			break
		}
		// Is the next round already created?
		nextPairs := seedPairs(nextTeams)
		nextStage := bracketStage(len(nextPairs), len(nextTeams))
		if !roundFullyPresent(byStageRound, nextStage, winnersRound+1, len(nextPairs)) {
			for i, p := range nextPairs {
				newMatches = append(newMatches, newMatch(tournamentID, nextStage, winnersRound+1, i+1, format, p[0], p[1]))
			}
			return finish(newMatches)
		}
		roundWinnersTeams = nextTeams
		winnersRound++
	}

	if !haveChampion {
		return finish(newMatches)
	}

	// --- losers bracket replay (procedural drop-in simulation) ---
	survivors := []uint64{}
	losersRound := 0
	winnersLoserBatches := collectLoserBatches(byStageRound, round1Teams, byeCount)
	batchIdx := 0

	for batchIdx < len(winnersLoserBatches) {
		batch := winnersLoserBatches[batchIdx]
		if len(batch) == 0 {
			batchIdx++
			continue
		}
		// Reduce survivors among themselves until they match the incoming
		// batch size (only needed once the winners bracket is narrowing
		// faster than the losers bracket can absorb it).
		if len(survivors) > len(batch) {
			losersRound++
			stage := losersStage(losersRound, false)
			pairs := seedPairs(survivors)
			if !roundFullyPresent(byStageRound, stage, losersRound, len(pairs)) {
				for i, p := range pairs {
					newMatches = append(newMatches, newMatch(tournamentID, stage, losersRound, i+1, format, p[0], p[1]))
				}
				return finish(newMatches)
			}
			winners, _, ok := readRoundWinners(byStageRound, stage, losersRound)
			if !ok {
				return finish(newMatches)
			}
			survivors = winners
			continue
		}
		// Symmetrically, an oversized incoming batch (a bye-heavy bracket
		// dropping more losers than the queue holds) plays among itself
		// before the drop-in round, so no team exits on a single loss.
		if len(survivors) > 0 && len(batch) > len(survivors) {
			losersRound++
			stage := losersStage(losersRound, false)
			pairs := seedPairs(batch)
			if !roundFullyPresent(byStageRound, stage, losersRound, len(pairs)) {
				for i, p := range pairs {
					newMatches = append(newMatches, newMatch(tournamentID, stage, losersRound, i+1, format, p[0], p[1]))
				}
				return finish(newMatches)
			}
			winners, _, ok := readRoundWinners(byStageRound, stage, losersRound)
			if !ok {
				return finish(newMatches)
			}
			winnersLoserBatches[batchIdx] = winners
			continue
		}
		losersRound++
		isFinalDrop := batchIdx == len(winnersLoserBatches)-1 && len(batch) == 1
		stage := losersStage(losersRound, isFinalDrop)
		var pairs [][2]uint64
		if len(survivors) == 0 {
			pairs = seedPairs(batch)
		} else {
			pairs = dropInPairs(survivors, batch)
		}
		if !roundFullyPresent(byStageRound, stage, losersRound, len(pairs)) {
			for i, p := range pairs {
				newMatches = append(newMatches, newMatch(tournamentID, stage, losersRound, i+1, format, p[0], p[1]))
			}
			return finish(newMatches)
		}
		winners, _, ok := readRoundWinners(byStageRound, stage, losersRound)
		if !ok {
			return finish(newMatches)
		}
		survivors = winners
		batchIdx++
		if isFinalDrop {
			break
		}
	}

	if len(survivors) != 1 {
		return finish(newMatches)
	}
	losersChampion := survivors[0]

	// --- grand final ---
	if !exists(StageGrandFinal, 1, winnersChampion, losersChampion) {
		newMatches = append(newMatches, newMatch(tournamentID, StageGrandFinal, 1, 1, format, winnersChampion, losersChampion))
	}
	return finish(newMatches)
}

func finish(matches []*model.Match) []*model.Match {
	sortByRoundThenTeam(matches)
	return matches
}

func winnersStageFor(matchCount int) string {
	if matchCount <= 1 {
		return StageWinnersFinal
	}
	return StageWinnersR1
}

// losersStage cycles through the three pre-final labels and reserves
// LOSERS_FINAL for the round that absorbs the winners-bracket runner-up.
func losersStage(round int, isFinal bool) string {
	if isFinal {
		return StageLosersFinal
	}
	switch round {
	case 1:
		return StageLosersR1
	case 2:
		return StageLosersR2
	default:
		return StageLosersR3
	}
}

// dropInPairs pairs each losers-bracket survivor against one incoming
// winners-bracket loser; the higher-seed team from the earlier round
// (earlier in the slice) hosts.
func dropInPairs(survivors, incoming []uint64) [][2]uint64 {
	n := len(survivors)
	if len(incoming) < n {
		n = len(incoming)
	}
	pairs := make([][2]uint64, 0, n)
	for i := 0; i < n; i++ {
		pairs = append(pairs, [2]uint64{survivors[i], incoming[i]})
	}
	return pairs
}

// completedRoundResults reports whether every match of (stage, round) is
// Completed, and if so the winners and losers in match order.
func completedRoundResults(byStageRound map[string]map[int][]*model.Match, stage string, round int) (completed bool, winners, losers []uint64, ok bool) {
	matches := byStageRound[stage][round]
	if len(matches) == 0 {
		return false, nil, nil, false
	}
	for _, m := range matches {
		if m.Status != model.MatchCompleted || m.WinnerID == nil {
			return false, nil, nil, true
		}
	}
	for _, m := range matches {
		winner := *m.WinnerID
		loser := m.HomeTeamID
		if loser == winner {
			loser = m.AwayTeamID
		}
		winners = append(winners, winner)
		losers = append(losers, loser)
	}
	return true, winners, losers, true
}

func readRoundWinners(byStageRound map[string]map[int][]*model.Match, stage string, round int) (winners, losers []uint64, ok bool) {
	completed, w, l, present := completedRoundResults(byStageRound, stage, round)
	if !present || !completed {
		return nil, nil, false
	}
	return w, l, true
}

func roundFullyPresent(byStageRound map[string]map[int][]*model.Match, stage string, round, expected int) bool {
	return len(byStageRound[stage][round]) >= expected
}

// collectLoserBatches walks the winners bracket's completed rounds in
// order and returns, per round, the list of teams eliminated that round
// (round 1's batch already excludes bye entrants, since they can't lose a
// match they never played). Round match counts follow the closed form:
// round 1 has (totalTeams-byeCount)/2 matches (bye entrants skip it);
// every later round r has bracketSize/2^r matches, bracketSize being the
// next power of two at or above totalTeams.
func collectLoserBatches(byStageRound map[string]map[int][]*model.Match, round1Teams []uint64, byeCount int) [][]uint64 {
	bracketSize := nextPow2(len(round1Teams) + byeCount)
	var batches [][]uint64
	round := 1
	matchCount := len(round1Teams) / 2
	for {
		stage := winnersStageFor(matchCount)
		completed, _, losers, ok := completedRoundResults(byStageRound, stage, round)
		if !ok || !completed {
			break
		}
		batches = append(batches, losers)
		if matchCount <= 1 {
			break
		}
		round++
		matchCount = bracketSize / pow2(round)
	}
	return batches
}

func pow2(n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= 2
	}
	return p
}
