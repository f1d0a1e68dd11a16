// Package simulation implements the per-game, per-match simulation
// engine: condition modeling, trait activation, the Gaussian outcome
// draw, and the post-match propagation into standings, player stats, and
// form factors feeding the condition model.
package simulation

import (
	"esports-career-sim/model"
)

// conditionBand is the [min, max] range a player's condition can occupy,
// age-banded: younger players get a higher ceiling, older ones a lower
// floor.
type conditionBand struct {
	min, max float64
}

func bandForAge(age uint8) conditionBand {
	switch {
	case age <= 20:
		return conditionBand{min: 40, max: 110}
	case age <= 24:
		return conditionBand{min: 35, max: 100}
	case age <= 27:
		return conditionBand{min: 30, max: 90}
	case age <= 29:
		return conditionBand{min: 25, max: 80}
	default:
		return conditionBand{min: 20, max: 70}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Condition computes a starter's condition for one game, per the engine's
// formula: a form-cycle drift, a momentum bump, a regression-to-mean
// last-performance effect, a fatigue penalty past 5 games, and the
// team-level chemistry bonus, all clamped into the player's age band.
func Condition(age uint8, formCycle float64, momentum int8, lastPerformance float64, gamesSinceRest uint32, chemistry float64) float64 {
	band := bandForAge(age)

	base := 50.0
	formDrift := formCycle - 50.0 // form_cycle is already "50 +/- 30"-shaped
	momentumBump := float64(momentum)
	regressionToMean := (50.0 - lastPerformance) * 0.1

	fatigue := 0.0
	if gamesSinceRest > 5 {
		fatigue = float64(gamesSinceRest-5) * 1.5
	}

	raw := base + formDrift + momentumBump + regressionToMean - fatigue + chemistry
	return clamp(raw, band.min, band.max)
}

// Chemistry is the team-level synergy bonus: min(2.0, 0.4 * mean
// tenure in seasons).
func Chemistry(meanTenureSeasons float64) float64 {
	bonus := 0.4 * meanTenureSeasons
	if bonus > 2.0 {
		return 2.0
	}
	return bonus
}

// TraitContextFor builds the per-game TraitContext for one starter, given
// match-level state that doesn't vary per player and player-level state
// that does.
func TraitContextFor(tt model.TournamentType, isPlayoff bool, gameNumber, scoreDiff int, age uint8, isFirstSeason bool, gamesSinceRest uint32) model.TraitContext {
	return model.TraitContext{
		TournamentType:  tt,
		IsPlayoff:       isPlayoff,
		IsInternational: tt.IsGlobal(),
		GameNumber:      gameNumber,
		ScoreDiff:       scoreDiff,
		Age:             age,
		IsFirstSeason:   isFirstSeason,
		GamesSinceRest:  gamesSinceRest,
	}
}
