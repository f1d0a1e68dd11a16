// Package scheduler generates the match shells for every tournament shape in
// one package: round-robin regular seasons, double-elimination playoffs, 32-team
// group+knockout Masters, the Swiss-into-single-elim World Championship, and
// the region-relay/seed-protected invitationals. Every generator here is a
// pure function: given team ids (already seeded/ordered by the caller) it
// returns a slice of Scheduled, zero-score *model.Match values and never
// touches persistence.
package scheduler

import (
	"sort"

	"esports-career-sim/model"
)

// Seed pairs a team with its ordinal seed (1 = best) within whatever
// standings or points table produced the ordering. Generators that need
// seed-protected pairings (MSI byes, Super Invitational, Swiss survivors)
// take []Seed rather than a bare team-id slice.
type Seed struct {
	TeamID uint64
	Seed   int
}

func seedIDs(seeds []Seed) []uint64 {
	ids := make([]uint64, len(seeds))
	for i, s := range seeds {
		ids[i] = s.TeamID
	}
	return ids
}

func intPtr(v int) *int { return &v }

func newMatch(tournamentID uint64, stage string, round, order int, format model.MatchFormat, home, away uint64) *model.Match {
	return &model.Match{
		TournamentID: tournamentID,
		Stage:        stage,
		Round:        intPtr(round),
		MatchOrder:   intPtr(order),
		Format:       format,
		HomeTeamID:   home,
		AwayTeamID:   away,
		Status:       model.MatchScheduled,
	}
}

// sortByRoundThenTeam restores the "(round, team_id)" stable tie-break that
// every generator promises for its output ordering.
func sortByRoundThenTeam(matches []*model.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		ri, rj := roundOf(matches[i]), roundOf(matches[j])
		if ri != rj {
			return ri < rj
		}
		if matches[i].HomeTeamID != matches[j].HomeTeamID {
			return matches[i].HomeTeamID < matches[j].HomeTeamID
		}
		return matches[i].AwayTeamID < matches[j].AwayTeamID
	})
	for i, m := range matches {
		m.MatchOrder = intPtr(i + 1)
	}
}

func roundOf(m *model.Match) int {
	if m.Round == nil {
		return 0
	}
	return *m.Round
}

// feederResult is what the bracket advancer needs to know about a completed
// match to decide whether a downstream slot is ready: which stage/slot it
// fed, and who won/lost.
type feederResult struct {
	winner, loser uint64
}

// resultsByStage indexes a tournament's completed matches by stage label so
// advancers can look up "has WINNERS_R1 match 2 finished, and who won it".
func resultsByStage(matches []*model.Match) map[string][]feederResult {
	out := map[string][]feederResult{}
	for _, m := range matches {
		if m.Status != model.MatchCompleted || m.WinnerID == nil {
			continue
		}
		winner := *m.WinnerID
		loser := m.HomeTeamID
		if loser == winner {
			loser = m.AwayTeamID
		}
		out[m.Stage] = append(out[m.Stage], feederResult{winner: winner, loser: loser})
	}
	return out
}

// stageExists reports whether any match (scheduled or completed) already
// occupies the given stage; AdvanceKnockoutStage uses it so it never emits
// THIRD_PLACE or GRAND_FINAL twice.
func stageExists(matches []*model.Match, stage string) bool {
	for _, m := range matches {
		if m.Stage == stage {
			return true
		}
	}
	return false
}
