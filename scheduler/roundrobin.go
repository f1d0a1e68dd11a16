package scheduler

import "esports-career-sim/model"

// pairing is one undirected meeting produced by a round of the circle
// method, before home/away is assigned.
type pairing struct {
	a, b uint64
}

// circleRounds runs the classic "fix one team, rotate the rest" round-robin
// algorithm and returns one round of pairings per entry. A zero team id marks a bye
// slot inserted for an odd team count; callers drop pairings touching it.
func circleRounds(teams []uint64) [][]pairing {
	n := len(teams)
	rotation := make([]uint64, n)
	copy(rotation, teams)
	if n%2 == 1 {
		rotation = append(rotation, 0)
		n++
	}

	rounds := n - 1
	out := make([][]pairing, 0, rounds)
	for round := 0; round < rounds; round++ {
		var pairs []pairing
		for i := 0; i < n/2; i++ {
			t1, t2 := rotation[i], rotation[n-1-i]
			if t1 == 0 || t2 == 0 {
				continue
			}
			pairs = append(pairs, pairing{a: t1, b: t2})
		}
		out = append(out, pairs)

		fixed := rotation[0]
		rest := append([]uint64{}, rotation[2:]...)
		rest = append(rest, rotation[1])
		rotation = append([]uint64{fixed}, rest...)
	}
	return out
}

// DoubleRoundRobin builds the regional regular season schedule:
// every pair of teams plays twice, home and away reversed on the second
// leg, stage REGULAR. Any field of two or more teams is scheduled; no
// minimum size is enforced here or by phase initialization, and
// SeedGroupStage also uses it for 4-team groups.
func DoubleRoundRobin(tournamentID uint64, teams []uint64, format model.MatchFormat) []*model.Match {
	if len(teams) < 2 {
		return nil
	}
	legOne := circleRounds(teams)
	rounds := len(legOne)

	var matches []*model.Match
	for round, pairs := range legOne {
		for i, p := range pairs {
			home, away := p.a, p.b
			// alternate which side of the pairing hosts, round over round,
			// so the fixed team (rotation[0]) isn't always home.
			if (round+i)%2 == 1 {
				home, away = away, home
			}
			matches = append(matches, newMatch(tournamentID, "REGULAR", round+1, 0, format, home, away))
		}
	}
	for round, pairs := range legOne {
		for i, p := range pairs {
			home, away := p.b, p.a
			if (round+i)%2 == 1 {
				home, away = away, home
			}
			matches = append(matches, newMatch(tournamentID, "REGULAR", rounds+round+1, 0, format, home, away))
		}
	}

	sortByRoundThenTeam(matches)
	return matches
}

// SingleRoundRobin is the single-leg variant, used by the ICP relay and
// anywhere else each pair only meets once.
func SingleRoundRobin(tournamentID uint64, teams []uint64, format model.MatchFormat) []*model.Match {
	if len(teams) < 2 {
		return nil
	}
	legOne := circleRounds(teams)
	var matches []*model.Match
	for round, pairs := range legOne {
		for i, p := range pairs {
			home, away := p.a, p.b
			if (round+i)%2 == 1 {
				home, away = away, home
			}
			matches = append(matches, newMatch(tournamentID, "REGULAR", round+1, 0, format, home, away))
		}
	}
	sortByRoundThenTeam(matches)
	return matches
}
