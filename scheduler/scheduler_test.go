package scheduler

import (
	"testing"

	"esports-career-sim/model"
)

func completeHomeWins(m *model.Match) {
	m.Status = model.MatchCompleted
	m.HomeScore = m.Format.WinsRequired()
	if m.Format.WinsRequired() > 1 {
		m.AwayScore = m.Format.WinsRequired() - 1
	}
	winner := m.HomeTeamID
	m.WinnerID = &winner
}

func TestDoubleRoundRobinScenario14Teams(t *testing.T) {
	teams := make([]uint64, 14)
	for i := range teams {
		teams[i] = uint64(i + 1)
	}
	matches := DoubleRoundRobin(1, teams, model.Bo3)
	if len(matches) != 14*13 {
		t.Fatalf("expected %d matches for 14-team double round robin, got %d", 14*13, len(matches))
	}
	played := map[[2]uint64]int{}
	for _, m := range matches {
		if m.Status != model.MatchScheduled {
			t.Fatalf("seed matches must start Scheduled, got %s", m.Status)
		}
		key := [2]uint64{m.HomeTeamID, m.AwayTeamID}
		played[key]++
	}
	for a := uint64(1); a <= 14; a++ {
		for b := uint64(1); b <= 14; b++ {
			if a == b {
				continue
			}
			if played[[2]uint64{a, b}]+played[[2]uint64{b, a}] != 2 {
				t.Fatalf("teams %d and %d should meet exactly twice total, got %d", a, b, played[[2]uint64{a, b}]+played[[2]uint64{b, a}])
			}
		}
	}
}

func TestSingleRoundRobinMatchCount(t *testing.T) {
	teams := []uint64{1, 2, 3, 4, 5, 6, 7, 8}
	matches := SingleRoundRobin(1, teams, model.Bo1)
	if len(matches) != 8*7/2 {
		t.Fatalf("expected %d matches, got %d", 8*7/2, len(matches))
	}
}

// TestDoubleElimEightTeamsHappyPath drives an 8-team double-elim bracket
// down its happy path: with no bracket reset it must produce exactly
// 2*8-2 = 14 matches.
func TestDoubleElimEightTeamsHappyPath(t *testing.T) {
	var seeds []Seed
	for i := 1; i <= 8; i++ {
		seeds = append(seeds, Seed{TeamID: uint64(i), Seed: i})
	}

	var all []*model.Match
	var nextID uint64 = 1
	assignIDs := func(batch []*model.Match) {
		for _, m := range batch {
			m.ID = nextID
			nextID++
		}
	}

	batch := SeedDoubleElim(1, seeds, 0, model.Bo3)
	assignIDs(batch)
	all = append(all, batch...)

	grandFinalSeen := false
	for i := 0; i < 20 && !grandFinalSeen; i++ {
		for _, m := range all {
			if m.Status == model.MatchScheduled {
				completeHomeWins(m)
				if m.Stage == StageGrandFinal {
					grandFinalSeen = true
				}
			}
		}
		next := AdvanceDoubleElim(1, seeds, 0, model.Bo3, all)
		if len(next) == 0 {
			break
		}
		assignIDs(next)
		all = append(all, next...)
	}

	if !grandFinalSeen {
		t.Fatalf("bracket never reached GRAND_FINAL within safety bound; matches so far: %d", len(all))
	}
	if len(all) != 14 {
		t.Fatalf("expected 14 matches for an 8-team double-elim bracket with no reset, got %d", len(all))
	}
	for _, m := range all {
		if m.Status != model.MatchCompleted {
			t.Fatalf("match %d (%s) left Scheduled at end of happy-path run", m.ID, m.Stage)
		}
	}
}

func TestSeedGroupStageEightGroupsOfFour(t *testing.T) {
	var seeds []Seed
	for i := 1; i <= 32; i++ {
		seeds = append(seeds, Seed{TeamID: uint64(i), Seed: i})
	}
	matches := SeedGroupStage(1, seeds, model.Bo1)
	// 8 groups of 4, double round robin within each group: 4*3 matches/group.
	if len(matches) != 8*4*3 {
		t.Fatalf("expected %d group-stage matches, got %d", 8*4*3, len(matches))
	}
}

func TestSwissSurvivorsConvergeToFour(t *testing.T) {
	var swiss []Seed
	for i := 1; i <= 8; i++ {
		swiss = append(swiss, Seed{TeamID: uint64(i), Seed: i})
	}

	var all []*model.Match
	var nextID uint64 = 1
	assignIDs := func(batch []*model.Match) {
		for _, m := range batch {
			m.ID = nextID
			nextID++
		}
	}

	round := SeedSwissRound1(1, swiss, model.Bo1)
	assignIDs(round)
	all = append(all, round...)

	for i := 0; i < 10; i++ {
		for _, m := range all {
			if m.Status == model.MatchScheduled {
				completeHomeWins(m)
			}
		}
		next := AdvanceSwiss(1, swiss, model.Bo1, all)
		if len(next) == 0 {
			break
		}
		assignIDs(next)
		all = append(all, next...)
	}

	survivors := SwissSurvivors(1, swiss, all)
	if len(survivors) != 4 {
		t.Fatalf("expected 4 Swiss survivors, got %d", len(survivors))
	}
}

func TestSeedICPSixteenTeams(t *testing.T) {
	regions := []RegionTeams{
		{RegionID: 1, TeamIDs: []uint64{1, 2, 3, 4}},
		{RegionID: 2, TeamIDs: []uint64{5, 6, 7, 8}},
		{RegionID: 3, TeamIDs: []uint64{9, 10, 11, 12}},
		{RegionID: 4, TeamIDs: []uint64{13, 14, 15, 16}},
	}
	teams := FlattenRegionTeams(regions)
	if len(teams) != 16 {
		t.Fatalf("expected 16 ICP teams, got %d", len(teams))
	}
	matches := SeedICP(1, teams, model.Bo3)
	if len(matches) == 0 {
		t.Fatalf("expected ICP to seed at least one relay match")
	}
	seen := map[uint64]int{}
	for _, m := range matches {
		seen[m.HomeTeamID]++
		seen[m.AwayTeamID]++
	}
	for _, id := range teams {
		if seen[id] == 0 {
			t.Fatalf("team %d never scheduled in ICP seed matches", id)
		}
	}
}

// TestKnockoutStageProgression walks the 32-team Masters stage 2 from
// its East/West round of 16 through the half finals to THIRD_PLACE and
// GRAND_FINAL: 8 + 4 + 2 + 2 = 16 matches, no team dropped on the way.
func TestKnockoutStageProgression(t *testing.T) {
	var east, west []Seed
	for i := 1; i <= 8; i++ {
		east = append(east, Seed{TeamID: uint64(i), Seed: i})
		west = append(west, Seed{TeamID: uint64(i + 8), Seed: i})
	}

	var all []*model.Match
	var nextID uint64 = 1
	assignIDs := func(batch []*model.Match) {
		for _, m := range batch {
			m.ID = nextID
			nextID++
		}
	}

	batch := SeedKnockoutStage(1, east, west, model.Bo5)
	assignIDs(batch)
	all = append(all, batch...)
	if len(all) != 8 {
		t.Fatalf("expected 8 round-of-16 matches, got %d", len(all))
	}

	for i := 0; i < 10; i++ {
		for _, m := range all {
			if m.Status == model.MatchScheduled {
				completeHomeWins(m)
			}
		}
		next := AdvanceKnockoutStage(1, model.Bo5, all)
		if len(next) == 0 {
			break
		}
		assignIDs(next)
		all = append(all, next...)
	}

	byStage := map[string]int{}
	for _, m := range all {
		if m.Status != model.MatchCompleted {
			t.Fatalf("match %d (%s) left Scheduled at end of run", m.ID, m.Stage)
		}
		byStage[m.Stage]++
	}
	want := map[string]int{
		StageEastR1: 4, StageWestR1: 4,
		StageEastSemi: 2, StageWestSemi: 2,
		StageEastFinal: 1, StageWestFinal: 1,
		StageThirdPlace: 1, StageGrandFinal: 1,
	}
	for stage, n := range want {
		if byStage[stage] != n {
			t.Fatalf("expected %d %s matches, got %d", n, stage, byStage[stage])
		}
	}
	if len(all) != 16 {
		t.Fatalf("expected 16 knockout matches in total, got %d", len(all))
	}
}

// TestDoubleElimTwelveTeamsMsiShape drives the 12-team bracket (4 byes
// into winners round 2, the MSI/Shanghai Masters and Super main-bracket
// shape) to completion: 2*12-2 = 22 matches, and no team is eliminated
// after a single loss.
func TestDoubleElimTwelveTeamsMsiShape(t *testing.T) {
	var seeds []Seed
	for i := 1; i <= 12; i++ {
		seeds = append(seeds, Seed{TeamID: uint64(i), Seed: i})
	}

	var all []*model.Match
	var nextID uint64 = 1
	assignIDs := func(batch []*model.Match) {
		for _, m := range batch {
			m.ID = nextID
			nextID++
		}
	}

	batch := SeedDoubleElim(1, seeds, 4, model.Bo5)
	assignIDs(batch)
	all = append(all, batch...)
	if len(all) != 4 {
		t.Fatalf("expected 4 winners-round-1 matches for 8 non-bye teams, got %d", len(all))
	}
	for _, m := range all {
		if m.Stage != StageWinnersR1 {
			t.Fatalf("seed matches must be labeled %s, got %s", StageWinnersR1, m.Stage)
		}
	}

	for i := 0; i < 30; i++ {
		for _, m := range all {
			if m.Status == model.MatchScheduled {
				completeHomeWins(m)
			}
		}
		next := AdvanceDoubleElim(1, seeds, 4, model.Bo5, all)
		if len(next) == 0 {
			break
		}
		assignIDs(next)
		all = append(all, next...)
	}

	if len(all) != 22 {
		t.Fatalf("expected 22 matches for a 12-team double-elim bracket with no reset, got %d", len(all))
	}
	losses := map[uint64]int{}
	for _, m := range all {
		if m.Status != model.MatchCompleted {
			t.Fatalf("match %d (%s) left Scheduled at end of run", m.ID, m.Stage)
		}
		loser := m.HomeTeamID
		if *m.WinnerID == loser {
			loser = m.AwayTeamID
		}
		losses[loser]++
	}
	grandFinalLoser := uint64(0)
	for _, m := range all {
		if m.Stage == StageGrandFinal {
			grandFinalLoser = m.HomeTeamID
			if *m.WinnerID == grandFinalLoser {
				grandFinalLoser = m.AwayTeamID
			}
		}
	}
	for team, n := range losses {
		if n == 1 && team != grandFinalLoser {
			t.Fatalf("team %d exited after a single loss in a double-elim bracket", team)
		}
		if n > 2 {
			t.Fatalf("team %d recorded %d losses", team, n)
		}
	}
}
