package scheduler

import "esports-career-sim/model"

// Super Invitational: 16 teams from annual-points top-16, partitioned
// into Legendary (seeds 1-4), Challenger (5-8), and Fighter (9-16). The
// Fighters play a single-elim play-in to cut 8 down to 4; those 4
// survivors join Legendary (byeing straight to winners round 2, same
// mechanic as MSI's champion byes) and Challenger (playing winners round
// 1) in a 12-team double-elimination bracket, the same shape as MSI,
// realized by reusing SeedDoubleElim/AdvanceDoubleElim with byeCount=4.
const StageFighterPlayin = "FIGHTER_PLAYIN"

// SeedFighterPlayin generates the 8-Fighter single-elim play-in round.
func SeedFighterPlayin(tournamentID uint64, fighters []Seed, format model.MatchFormat) []*model.Match {
	pairs := seedPairs(seedIDs(fighters))
	var matches []*model.Match
	for i, p := range pairs {
		matches = append(matches, newMatch(tournamentID, StageFighterPlayin, 1, i+1, format, p[0], p[1]))
	}
	sortByRoundThenTeam(matches)
	return matches
}

// FighterPlayinSurvivors returns the play-in's winners once the round is
// fully completed, or nil if it's still in progress.
func FighterPlayinSurvivors(tournamentID uint64, all []*model.Match) []uint64 {
	var matches []*model.Match
	for _, m := range all {
		if m.TournamentID == tournamentID && m.Stage == StageFighterPlayin {
			matches = append(matches, m)
		}
	}
	winners, _, ok := roundResultPair(map[string][]*model.Match{StageFighterPlayin: matches}, StageFighterPlayin)
	if !ok {
		return nil
	}
	return winners
}

// SeedSuperMainBracket builds the 12-team double-elim main bracket:
// Legendary seeds bye to winners round 2 (byeCount=4), Challenger seeds
// and the 4 Fighter survivors play winners round 1.
func SeedSuperMainBracket(tournamentID uint64, legendary, challenger []Seed, fighterSurvivors []uint64, format model.MatchFormat) []*model.Match {
	seeds := append(append([]Seed{}, legendary...), challenger...)
	for i, teamID := range fighterSurvivors {
		seeds = append(seeds, Seed{TeamID: teamID, Seed: len(legendary) + len(challenger) + i + 1})
	}
	return SeedDoubleElim(tournamentID, seeds, len(legendary), format)
}

// AdvanceSuperMainBracket delegates to AdvanceDoubleElim with the same
// seed ordering and bye count used by SeedSuperMainBracket.
func AdvanceSuperMainBracket(tournamentID uint64, legendary, challenger []Seed, fighterSurvivors []uint64, format model.MatchFormat, all []*model.Match) []*model.Match {
	seeds := append(append([]Seed{}, legendary...), challenger...)
	for i, teamID := range fighterSurvivors {
		seeds = append(seeds, Seed{TeamID: teamID, Seed: len(legendary) + len(challenger) + i + 1})
	}
	return AdvanceDoubleElim(tournamentID, seeds, len(legendary), format, all)
}
