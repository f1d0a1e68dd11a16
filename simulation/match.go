package simulation

import (
	"math/rand"
	"time"

	"esports-career-sim/model"
	"esports-career-sim/rng"
)

// MatchInput is everything SimulateMatch needs besides the RNG: the match
// shell (teams, format, stage), both starting rosters, and the meta
// weights active for the season.
type MatchInput struct {
	Match *model.Match
	Home  []RosterEntry
	Away  []RosterEntry
	Meta  rng.MetaWeights

	TournamentType model.TournamentType
	IsPlayoff      bool
	CurrentSeason  uint32
}

// MatchSimResult is everything a completed match produces, ready for one
// atomic persistence write plus in-memory propagation into the caller's
// per-phase season-stats/tournament-stats/form-factor maps, per the engine's
// post-match propagation in one atomic unit.
type MatchSimResult struct {
	Match *model.Match
	Games []*model.MatchGame
	Perfs []*model.GamePlayerPerformance
}

// SimulateMatch runs the best-of-N loop feeding the condition model: repeat game
// draws until one side reaches ceil(format.games/2) wins, writing the
// game-by-game scorecard into the match. The caller propagates the result
// into its per-phase stats/form-factor maps via ApplySeasonStats,
// ApplyTournamentStats and ApplyFormFactors. SimulateMatch does no
// persistence; it fills in the given match in place, and apart from
// PlayedAt (the wall clock) its results depend only on its inputs and the
// RNG stream.
func SimulateMatch(r *rand.Rand, in MatchInput) MatchSimResult {
	m := in.Match
	winsRequired := m.Format.WinsRequired()

	homeArchetype := TeamArchetype(in.Home)
	awayArchetype := TeamArchetype(in.Away)
	homeChemistry := Chemistry(meanTenure(in.Home, in.CurrentSeason))
	awayChemistry := Chemistry(meanTenure(in.Away, in.CurrentSeason))

	var games []*model.MatchGame
	var perfs []*model.GamePlayerPerformance
	homeScore, awayScore := 0, 0

	for gameNumber := 1; homeScore < winsRequired && awayScore < winsRequired; gameNumber++ {
		ctx := GameContext{
			TournamentType: in.TournamentType,
			IsPlayoff:      in.IsPlayoff,
			CurrentSeason:  in.CurrentSeason,
			GameNumber:     gameNumber,
			HomeScore:      homeScore,
			AwayScore:      awayScore,
			HomeChemistry:  homeChemistry,
			AwayChemistry:  awayChemistry,
			HomeMetaBonus:  in.Meta.BonusFor(homeArchetype),
			AwayMetaBonus:  in.Meta.BonusFor(awayArchetype),
		}

		outcome := SimulateGame(r, in.Home, in.Away, ctx)
		var winnerTeamID, loserTeamID uint64
		if outcome.WinnerHome {
			homeScore++
			winnerTeamID, loserTeamID = m.HomeTeamID, m.AwayTeamID
		} else {
			awayScore++
			winnerTeamID, loserTeamID = m.AwayTeamID, m.HomeTeamID
		}

		mvp, mvpIsHome, hasMvp := GameMVP(outcome.HomeDraws, outcome.AwayDraws)

		// Games get a stable local numbering before buildPerfs copies it
		// into each performance's GameID; the repository layer assigns
		// real ids on Create and the caller re-points the performances.
		game := &model.MatchGame{
			ID:               uint64(gameNumber),
			MatchID:          m.ID,
			GameNumber:       gameNumber,
			WinnerTeamID:     winnerTeamID,
			LoserTeamID:      loserTeamID,
			DurationMinutes:  durationFor(r),
			HomePower:        outcome.HomeAvg,
			AwayPower:        outcome.AwayAvg,
			SynergyBonusHome: homeChemistry,
			SynergyBonusAway: awayChemistry,
			MetaBonusHome:    ctx.HomeMetaBonus,
			MetaBonusAway:    ctx.AwayMetaBonus,
		}
		if hasMvp {
			id := mvp.Player.ID
			game.MvpPlayerID = &id
		}
		games = append(games, game)

		perfs = append(perfs, buildPerfs(game, m.HomeTeamID, outcome.HomeDraws, outcome.HomeAvg, mvp, mvpIsHome, true)...)
		perfs = append(perfs, buildPerfs(game, m.AwayTeamID, outcome.AwayDraws, outcome.AwayAvg, mvp, mvpIsHome, false)...)
	}

	now := time.Now()
	m.HomeScore, m.AwayScore = homeScore, awayScore
	m.Status = model.MatchCompleted
	m.PlayedAt = &now
	if homeScore > awayScore {
		winner := m.HomeTeamID
		m.WinnerID = &winner
	} else {
		winner := m.AwayTeamID
		m.WinnerID = &winner
	}

	return MatchSimResult{Match: m, Games: games, Perfs: perfs}
}

func buildPerfs(game *model.MatchGame, teamID uint64, draws []PlayerDraw, teamAvg float64, mvp PlayerDraw, mvpIsHome, isHomeSide bool) []*model.GamePlayerPerformance {
	perfs := make([]*model.GamePlayerPerformance, 0, len(draws))
	for _, d := range draws {
		impact := ImpactScore(d.ActualAbility, teamAvg)
		isMvp := mvpIsHome == isHomeSide && d.Player.ID == mvp.Player.ID
		perfs = append(perfs, &model.GamePlayerPerformance{
			GameID:         game.ID,
			PlayerID:       d.Player.ID,
			TeamID:         teamID,
			Position:       d.Position,
			BaseAbility:    float64(d.Player.Ability),
			ConditionBonus: d.ConditionBonus,
			StabilityNoise: d.StabilityNoise,
			ActualAbility:  d.ActualAbility,
			ImpactScore:    impact,
			MvpScore:       d.MvpScore(),
			IsMvp:          isMvp,
			Kills:          d.Kills,
			Deaths:         d.Deaths,
			Assists:        d.Assists,
			Cs:             d.CS,
			Gold:           d.Gold,
			DamageDealt:    d.DamageDealt,
			DamageTaken:    d.DamageTaken,
			VisionScore:    d.VisionScore,
		})
	}
	return perfs
}

func meanTenure(side []RosterEntry, currentSeason uint32) float64 {
	if len(side) == 0 {
		return 0
	}
	var sum float64
	for _, e := range side {
		tenure := 0
		if currentSeason >= e.Player.JoinSeason {
			tenure = int(currentSeason - e.Player.JoinSeason)
		}
		sum += float64(tenure)
	}
	return sum / float64(len(side))
}

func durationFor(r *rand.Rand) int {
	return 22 + r.Intn(20)
}
