package simulation

import "esports-career-sim/model"

// ApplyStandings folds a completed match into both teams' standings,
// mutating home and away in place. Callers persist both rows and then call
// repository.StandingRepository.RecomputeRanks, per step 4.
func ApplyStandings(m *model.Match, home, away *model.LeagueStanding) {
	homeWon := m.WinnerID != nil && *m.WinnerID == m.HomeTeamID
	home.ApplyMatchResult(homeWon, m.HomeScore, m.AwayScore, m.Format)
	away.ApplyMatchResult(!homeWon, m.AwayScore, m.HomeScore, m.Format)
}

// ApplySeasonStats folds one match's performances into the per-season
// aggregate for every participating player. stats is
// keyed by player_id and owned by the caller (loaded once per phase).
func ApplySeasonStats(perfs []*model.GamePlayerPerformance, stats map[uint64]*model.PlayerSeasonStatistics) {
	for _, p := range perfs {
		s, ok := stats[p.PlayerID]
		if !ok {
			s = &model.PlayerSeasonStatistics{PlayerID: p.PlayerID, Position: p.Position}
			stats[p.PlayerID] = s
		}
		s.RecordGame(p.ImpactScore, p.MvpScore)
	}
}

// ApplyTournamentStats folds one match's performances into the
// per-tournament aggregate.
func ApplyTournamentStats(perfs []*model.GamePlayerPerformance, games []*model.MatchGame, stats map[uint64]*model.PlayerTournamentStats) {
	winnerByGame := make(map[uint64]uint64, len(games)) // gameID -> winning team
	for _, g := range games {
		winnerByGame[g.ID] = g.WinnerTeamID
	}
	for _, p := range perfs {
		s, ok := stats[p.PlayerID]
		if !ok {
			s = &model.PlayerTournamentStats{PlayerID: p.PlayerID}
			stats[p.PlayerID] = s
		}
		won := winnerByGame[p.GameID] == p.TeamID
		s.RecordGame(p.ImpactScore, p.MvpScore, won, p.IsMvp)
	}
}

// ApplyFormFactors updates every starter's form factors after one match:
// games_since_rest += 1, momentum shifts +-1 (bounded to
// [-5, 5]), last_performance = this match's average performance,
// last_match_won mirrors the result, and the cycle advances by a fixed
// tick.
func ApplyFormFactors(m *model.Match, homePerfs, awayPerfs []*model.GamePlayerPerformance, factors map[uint64]*model.PlayerFormFactors) {
	homeWon := m.WinnerID != nil && *m.WinnerID == m.HomeTeamID
	applySideFormFactors(homePerfs, homeWon, factors)
	applySideFormFactors(awayPerfs, !homeWon, factors)
}

const formCycleTick = 4.0

func applySideFormFactors(perfs []*model.GamePlayerPerformance, won bool, factors map[uint64]*model.PlayerFormFactors) {
	byPlayer := map[uint64][]*model.GamePlayerPerformance{}
	for _, p := range perfs {
		byPlayer[p.PlayerID] = append(byPlayer[p.PlayerID], p)
	}
	for playerID, playerPerfs := range byPlayer {
		f, ok := factors[playerID]
		if !ok {
			f = &model.PlayerFormFactors{PlayerID: playerID, FormCycle: 50}
			factors[playerID] = f
		}
		var totalMvp float64
		for _, p := range playerPerfs {
			totalMvp += p.MvpScore
		}
		avgPerf := totalMvp / float64(len(playerPerfs))

		f.GamesSinceRest++
		if won {
			f.Momentum = clampMomentum(f.Momentum + 1)
		} else {
			f.Momentum = clampMomentum(f.Momentum - 1)
		}
		f.LastPerformance = avgPerf
		f.LastMatchWon = won
		f.FormCycle = wrapCycle(f.FormCycle + formCycleTick)
	}
}

func clampMomentum(m int8) int8 {
	if m > 5 {
		return 5
	}
	if m < -5 {
		return -5
	}
	return m
}

func wrapCycle(c float64) float64 {
	for c > 100 {
		c -= 100
	}
	for c < 0 {
		c += 100
	}
	return c
}
