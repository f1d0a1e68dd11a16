package scheduler

import "esports-career-sim/model"

// World Championship: 4 "direct" teams enter straight into the single-elim
// bracket; 8 "Swiss" teams play a Swiss stage (3 wins advance, 3 losses
// eliminate) to produce the other 4 bracket slots.

const (
	swissStagePrefix = "SWISS_R"
	StageQuarterfinal = "QUARTERFINAL"
	StageSemifinal    = "SEMIFINAL"
)

func swissStage(round int) string {
	return swissStagePrefix + string(rune('0'+round))
}

// SeedSwissRound1 pairs the 8 Swiss-stage teams top-half vs bottom-half
// (1v5, 2v6, 3v7, 4v8 in seed order), the conventional Swiss round-1 draw.
func SeedSwissRound1(tournamentID uint64, swissTeams []Seed, format model.MatchFormat) []*model.Match {
	ids := seedIDs(swissTeams)
	half := len(ids) / 2
	var matches []*model.Match
	for i := 0; i < half; i++ {
		matches = append(matches, newMatch(tournamentID, swissStage(1), 1, i+1, format, ids[i], ids[i+half]))
	}
	sortByRoundThenTeam(matches)
	return matches
}

// swissRecord tracks one team's running Swiss win/loss tally and its past
// opponents, so AdvanceSwiss can avoid rematches.
type swissRecord struct {
	teamID    uint64
	wins      int
	losses    int
	opponents map[uint64]bool
}

// AdvanceSwiss replays all SWISS_R* matches, retires teams that have
// clinched advancement (3 wins) or elimination (3 losses), and pairs the
// remaining teams within their win-loss bucket for the next round,
// skipping any pairing that would be a rematch when an alternative
// exists. Returns nil once every team has clinched one outcome or the
// other (Swiss stage complete).
func AdvanceSwiss(tournamentID uint64, swissTeams []Seed, format model.MatchFormat, all []*model.Match) []*model.Match {
	records := map[uint64]*swissRecord{}
	order := make([]uint64, 0, len(swissTeams))
	for _, s := range swissTeams {
		records[s.TeamID] = &swissRecord{teamID: s.TeamID, opponents: map[uint64]bool{}}
		order = append(order, s.TeamID)
	}

	byRound := map[int][]*model.Match{}
	maxRound := 0
	for _, m := range all {
		if m.TournamentID != tournamentID || len(m.Stage) < len(swissStagePrefix) || m.Stage[:len(swissStagePrefix)] != swissStagePrefix {
			continue
		}
		r := roundOf(m)
		byRound[r] = append(byRound[r], m)
		if r > maxRound {
			maxRound = r
		}
		rec1, ok1 := records[m.HomeTeamID]
		rec2, ok2 := records[m.AwayTeamID]
		if ok1 && ok2 {
			rec1.opponents[m.AwayTeamID] = true
			rec2.opponents[m.HomeTeamID] = true
		}
		if m.Status == model.MatchCompleted && m.WinnerID != nil {
			winner, loser := *m.WinnerID, m.HomeTeamID
			if loser == winner {
				loser = m.AwayTeamID
			}
			if rec, ok := records[winner]; ok {
				rec.wins++
			}
			if rec, ok := records[loser]; ok {
				rec.losses++
			}
		}
	}

	// The latest round must be fully completed before pairing the next one.
	if latest := byRound[maxRound]; maxRound > 0 {
		for _, m := range latest {
			if m.Status != model.MatchCompleted {
				return nil
			}
		}
	}

	var active []uint64
	for _, id := range order {
		rec := records[id]
		if rec.wins >= 3 || rec.losses >= 3 {
			continue
		}
		active = append(active, id)
	}
	if len(active) == 0 {
		return nil // Swiss stage complete
	}
	if roundFullyPresent(map[string]map[int][]*model.Match{swissStage(maxRound + 1): byRound}, swissStage(maxRound+1), maxRound+1, len(active)/2) {
		return nil
	}

	pairs := pairByRecordAvoidingRematches(active, records)
	var matches []*model.Match
	for i, p := range pairs {
		matches = append(matches, newMatch(tournamentID, swissStage(maxRound+1), maxRound+1, i+1, format, p[0], p[1]))
	}
	sortByRoundThenTeam(matches)
	return matches
}

// pairByRecordAvoidingRematches groups teams into (wins,losses) buckets
// and pairs within each bucket in seed order, swapping with the next
// available opponent when the natural pairing would be a rematch.
func pairByRecordAvoidingRematches(active []uint64, records map[uint64]*swissRecord) [][2]uint64 {
	buckets := map[[2]int][]uint64{}
	var keys [][2]int
	for _, id := range active {
		rec := records[id]
		key := [2]int{rec.wins, rec.losses}
		if _, ok := buckets[key]; !ok {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], id)
	}

	used := map[uint64]bool{}
	var pairs [][2]uint64
	pairWithin := func(teams []uint64) {
		for i := 0; i < len(teams); i++ {
			if used[teams[i]] {
				continue
			}
			for j := i + 1; j < len(teams); j++ {
				if used[teams[j]] {
					continue
				}
				if !records[teams[i]].opponents[teams[j]] {
					pairs = append(pairs, [2]uint64{teams[i], teams[j]})
					used[teams[i]], used[teams[j]] = true, true
					break
				}
			}
			if !used[teams[i]] {
				// No rematch-free opponent left; pair with the next unused
				// team anyway (small Swiss fields can run out of fresh
				// pairings in the final rounds).
				for j := i + 1; j < len(teams); j++ {
					if !used[teams[j]] {
						pairs = append(pairs, [2]uint64{teams[i], teams[j]})
						used[teams[i]], used[teams[j]] = true, true
						break
					}
				}
			}
		}
	}
	for _, key := range keys {
		teams := buckets[key]
		if len(teams)%2 == 1 {
			// Odd bucket: its leftover pairs down into the next bucket via
			// the cross-bucket pass below instead of sitting out the round.
			teams = teams[:len(teams)-1]
		}
		pairWithin(teams)
	}
	var leftovers []uint64
	for _, id := range active {
		if !used[id] {
			leftovers = append(leftovers, id)
		}
	}
	pairWithin(leftovers)
	return pairs
}

// SwissSurvivors returns the teams with 3 Swiss wins, in seed order.
// Package phase uses this to seed Phase B.
func SwissSurvivors(tournamentID uint64, swissTeams []Seed, all []*model.Match) []uint64 {
	wins := map[uint64]int{}
	for _, m := range all {
		if m.TournamentID != tournamentID || len(m.Stage) < len(swissStagePrefix) || m.Stage[:len(swissStagePrefix)] != swissStagePrefix {
			continue
		}
		if m.Status == model.MatchCompleted && m.WinnerID != nil {
			wins[*m.WinnerID]++
		}
	}
	var survivors []uint64
	for _, s := range swissTeams {
		if wins[s.TeamID] >= 3 {
			survivors = append(survivors, s.TeamID)
		}
	}
	return survivors
}

// SwissRanking orders the Swiss field by record (wins descending, losses
// ascending, seed order as the tiebreak). Callers use it to fill the
// advancing slots when the pairing algebra bottoms out with fewer than
// the expected number of 3-win teams.
func SwissRanking(tournamentID uint64, swissTeams []Seed, all []*model.Match) []uint64 {
	type record struct {
		teamID uint64
		wins   int
		losses int
	}
	records := make([]record, len(swissTeams))
	index := map[uint64]int{}
	for i, s := range swissTeams {
		records[i] = record{teamID: s.TeamID}
		index[s.TeamID] = i
	}
	for _, m := range all {
		if m.TournamentID != tournamentID || len(m.Stage) < len(swissStagePrefix) || m.Stage[:len(swissStagePrefix)] != swissStagePrefix {
			continue
		}
		if m.Status != model.MatchCompleted || m.WinnerID == nil {
			continue
		}
		loser := m.HomeTeamID
		if loser == *m.WinnerID {
			loser = m.AwayTeamID
		}
		if i, ok := index[*m.WinnerID]; ok {
			records[i].wins++
		}
		if i, ok := index[loser]; ok {
			records[i].losses++
		}
	}
	ranked := append([]record{}, records...)
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0; j-- {
			a, b := ranked[j], ranked[j-1]
			if a.wins > b.wins || (a.wins == b.wins && a.losses < b.losses) {
				ranked[j], ranked[j-1] = b, a
			} else {
				break
			}
		}
	}
	out := make([]uint64, len(ranked))
	for i, r := range ranked {
		out[i] = r.teamID
	}
	return out
}

// SeedChampionshipBracket builds Phase B's single-elim Bo5 bracket from
// the 4 direct teams plus the 4 Swiss survivors, seeded direct-teams-first
// so that seedPairs sets each direct team against a Swiss survivor in the
// quarterfinals.
func SeedChampionshipBracket(tournamentID uint64, direct []Seed, survivors []uint64, format model.MatchFormat) []*model.Match {
	ids := append(append([]uint64{}, seedIDs(direct)...), survivors...)
	pairs := seedPairs(ids)
	var matches []*model.Match
	for i, p := range pairs {
		matches = append(matches, newMatch(tournamentID, StageQuarterfinal, 1, i+1, format, p[0], p[1]))
	}
	sortByRoundThenTeam(matches)
	return matches
}

// AdvanceChampionshipBracket advances Phase B exactly like a single-elim
// bracket with no losers side: quarterfinal -> semifinal -> grand final.
func AdvanceChampionshipBracket(tournamentID uint64, format model.MatchFormat, all []*model.Match) []*model.Match {
	byStage := map[string][]*model.Match{}
	for _, m := range all {
		if m.TournamentID == tournamentID {
			byStage[m.Stage] = append(byStage[m.Stage], m)
		}
	}
	var newMatches []*model.Match

	qfWinners, _, qfOK := roundResultPair(byStage, StageQuarterfinal)
	if qfOK && len(byStage[StageSemifinal]) == 0 {
		pairs := seedPairs(qfWinners)
		for i, p := range pairs {
			newMatches = append(newMatches, newMatch(tournamentID, StageSemifinal, 2, i+1, format, p[0], p[1]))
		}
		return finish(newMatches)
	}

	sfWinners, _, sfOK := roundResultPair(byStage, StageSemifinal)
	if sfOK && len(byStage[StageGrandFinal]) == 0 {
		newMatches = append(newMatches, newMatch(tournamentID, StageGrandFinal, 3, 1, format, sfWinners[0], sfWinners[1]))
	}
	return finish(newMatches)
}
