package simulation

import (
	"math"
	"math/rand"

	"esports-career-sim/model"
)

// PlayerDraw is one starter's drawn state for a single game, produced by
// DrawPlayer and consumed by the per-game winner computation and MVP
// scoring.
type PlayerDraw struct {
	Player         *model.Player
	Position       model.Position
	ModifiedAbility float64
	ActualAbility  float64
	ConditionBonus float64
	StabilityNoise float64

	Kills       int
	Deaths      int
	Assists     int
	CS          int
	Gold        int
	DamageDealt int
	DamageTaken int
	VisionScore int
}

// DrawPlayer produces one player's per-game draw:
//
//	sigma           = (100 - modified_stability) / 10
//	stability_noise ~ N(0, sigma)
//	raw_ability     = modified_ability + modified_condition + stability_noise
//	actual_ability  = clamp(raw_ability, modified_ability - 15, ability_ceiling, 0..100)
func DrawPlayer(r *rand.Rand, p *model.Player, pos model.Position, condition, metaBonus float64, ctx model.TraitContext) PlayerDraw {
	mod := model.SumModifiers(p.Traits, ctx)

	// MetaAdapter halves the per-season MetaWeights bonus/penalty for its
	// bearer rather than contributing a TraitModifier field, since it acts
	// on metaBonus itself, not on ability/stability/condition.
	if hasTrait(p.Traits, model.MetaAdapter) {
		metaBonus *= 0.5
	}

	modifiedAbility := float64(p.Ability) + mod.AbilityDelta
	modifiedStability := clamp(float64(p.Stability)+mod.StabilityDelta, 0, 100)
	modifiedCondition := condition + mod.ConditionDelta + metaBonus
	abilityCeiling := clamp(modifiedAbility+mod.AbilityCeilingDelta, 0, 100)

	sigma := (100 - modifiedStability) / 10
	if sigma < 0.1 {
		sigma = 0.1
	}
	stabilityNoise := r.NormFloat64() * sigma

	raw := modifiedAbility + modifiedCondition + stabilityNoise
	actual := clamp(raw, modifiedAbility-15, abilityCeiling)
	actual = clamp(actual, 0, 100)

	scalar := actual / 100

	draw := PlayerDraw{
		Player:          p,
		Position:        pos,
		ModifiedAbility: modifiedAbility,
		ActualAbility:   actual,
		ConditionBonus:  modifiedCondition,
		StabilityNoise:  stabilityNoise,

		Kills:       int(math.Round(scalar*8 + r.Float64()*3)),
		Deaths:      int(math.Round((1-scalar)*6 + r.Float64()*2)),
		Assists:     int(math.Round(scalar*10 + r.Float64()*4)),
		CS:          int(math.Round(scalar*200 + r.Float64()*40)),
		Gold:        int(math.Round(scalar*14000 + r.Float64()*2000)),
		DamageDealt: int(math.Round(scalar*22000 + r.Float64()*3000)),
		DamageTaken: int(math.Round((1-scalar)*12000 + r.Float64()*2000 + 4000)),
		VisionScore: int(math.Round(scalar*40 + r.Float64()*10)),
	}
	if draw.Deaths < 0 {
		draw.Deaths = 0
	}
	return draw
}

func hasTrait(traits []model.Trait, want model.Trait) bool {
	for _, t := range traits {
		if t == want {
			return true
		}
	}
	return false
}

// KDA is (kills+assists)/max(deaths,1).
func (d PlayerDraw) KDA() float64 {
	den := d.Deaths
	if den < 1 {
		den = 1
	}
	return float64(d.Kills+d.Assists) / float64(den)
}

// MvpScore implements the MVP formula:
// 0.4*KDA + 0.3*(damage/10000) + 0.3*(gold/10000).
func (d PlayerDraw) MvpScore() float64 {
	return 0.4*d.KDA() + 0.3*(float64(d.DamageDealt)/10000) + 0.3*(float64(d.Gold)/10000)
}

// ImpactScore implements the impact formula: the player's actual
// ability minus their team's average, rounded to one decimal place.
func ImpactScore(actualAbility, teamAvg float64) float64 {
	return math.Round((actualAbility-teamAvg)*10) / 10
}
