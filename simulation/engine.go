package simulation

import (
	"math/rand"

	"esports-career-sim/model"
	"esports-career-sim/rng"
)

// RosterEntry pairs a starter with the position they're drawn in and their
// form factors, the two per-player inputs the engine needs beyond the
// player record itself.
type RosterEntry struct {
	Player      *model.Player
	Position    model.Position
	FormFactors *model.PlayerFormFactors
}

// GameOutcome is one simulated game's result.
type GameOutcome struct {
	GameNumber int
	HomeDraws  []PlayerDraw
	AwayDraws  []PlayerDraw
	HomeAvg    float64
	AwayAvg    float64
	WinnerHome bool
}

// TeamArchetype deterministically classifies a roster into one of
// rng.Archetypes(), so MetaWeights can bias it. The classification is a
// simple, stable function of the roster's starting ability sum; it does
// not attempt to model real draft composition. See DESIGN.md.
func TeamArchetype(roster []RosterEntry) string {
	archetypes := rng.Archetypes()
	if len(roster) == 0 {
		return archetypes[len(archetypes)-1] // "Balanced"
	}
	var sum int
	for _, r := range roster {
		sum += int(r.Player.Ability)
	}
	return archetypes[sum%len(archetypes)]
}

// GameContext carries the per-game, per-side inputs that don't live on
// RosterEntry: the series state and the meta/chemistry bonuses already
// resolved for this game.
type GameContext struct {
	TournamentType model.TournamentType
	IsPlayoff      bool
	CurrentSeason  uint32
	GameNumber     int
	HomeScore      int // series score going into this game
	AwayScore      int
	HomeChemistry  float64
	AwayChemistry  float64
	HomeMetaBonus  float64
	AwayMetaBonus  float64
}

// SimulateGame draws both sides' starters and determines the winner:
//
//	home_avg, away_avg = mean(actual_ability over 5 starters)
//	gaussian_bump       = N(0, 3.0)
//	final_diff          = (home_avg - away_avg) + gaussian_bump
//	winner              = home if final_diff > 0 else away
func SimulateGame(r *rand.Rand, home, away []RosterEntry, ctx GameContext) GameOutcome {
	homeDraws := drawSide(r, home, ctx, ctx.HomeScore-ctx.AwayScore, ctx.HomeChemistry, ctx.HomeMetaBonus)
	awayDraws := drawSide(r, away, ctx, ctx.AwayScore-ctx.HomeScore, ctx.AwayChemistry, ctx.AwayMetaBonus)

	homeAvg := meanActual(homeDraws)
	awayAvg := meanActual(awayDraws)

	const gameStdDev = 3.0
	gaussianBump := r.NormFloat64() * gameStdDev
	finalDiff := (homeAvg - awayAvg) + gaussianBump

	return GameOutcome{
		GameNumber: ctx.GameNumber,
		HomeDraws:  homeDraws,
		AwayDraws:  awayDraws,
		HomeAvg:    homeAvg,
		AwayAvg:    awayAvg,
		WinnerHome: finalDiff > 0,
	}
}

func drawSide(r *rand.Rand, side []RosterEntry, ctx GameContext, scoreDiff int, chemistry, metaBonus float64) []PlayerDraw {
	draws := make([]PlayerDraw, 0, len(side))
	for _, entry := range side {
		p := entry.Player
		isFirstSeason := p.JoinSeason == ctx.CurrentSeason
		traitCtx := TraitContextFor(ctx.TournamentType, ctx.IsPlayoff, ctx.GameNumber, scoreDiff, p.Age, isFirstSeason, formGamesSinceRest(entry.FormFactors))

		condition := Condition(
			p.Age,
			formCycle(entry.FormFactors),
			formMomentum(entry.FormFactors),
			formLastPerformance(entry.FormFactors),
			formGamesSinceRest(entry.FormFactors),
			chemistry,
		)
		draws = append(draws, DrawPlayer(r, p, entry.Position, condition, metaBonus, traitCtx))
	}
	return draws
}

func formCycle(f *model.PlayerFormFactors) float64 {
	if f == nil {
		return 50
	}
	return f.FormCycle
}
func formMomentum(f *model.PlayerFormFactors) int8 {
	if f == nil {
		return 0
	}
	return f.Momentum
}
func formLastPerformance(f *model.PlayerFormFactors) float64 {
	if f == nil {
		return 50
	}
	return f.LastPerformance
}
func formGamesSinceRest(f *model.PlayerFormFactors) uint32 {
	if f == nil {
		return 0
	}
	return f.GamesSinceRest
}

func meanActual(draws []PlayerDraw) float64 {
	if len(draws) == 0 {
		return 0
	}
	var sum float64
	for _, d := range draws {
		sum += d.ActualAbility
	}
	return sum / float64(len(draws))
}

// GameMVP returns the highest-MvpScore() draw across both sides, and
// whether it belongs to the home side.
func GameMVP(home, away []PlayerDraw) (draw PlayerDraw, isHome bool, found bool) {
	for _, d := range home {
		if !found || d.MvpScore() > draw.MvpScore() {
			draw, isHome, found = d, true, true
		}
	}
	for _, d := range away {
		if !found || d.MvpScore() > draw.MvpScore() {
			draw, isHome, found = d, false, true
		}
	}
	return draw, isHome, found
}
