package model

// CalculateMarketValue computes a player's derived market value. honorFactor
// is the cumulative, pre-clamped honor-weighted multiplier the caller
// (package awards) derives from the player's honor history; it is clamped
// here to a 4.0 ceiling. regionShortName drives
// RegionMarketFactor. The result belongs in CalculatedMarketValue;
// MarketValue, the human-authored figure, is never touched here.
func CalculateMarketValue(p *Player, honorFactor float64, regionShortName string) int64 {
	base := abilityBracketMultiplier(p.Ability) * float64(p.Ability)

	value := base * ageBandFactor(p.Age) * potentialGapFactor(p.Potential, p.Ability) *
		tagFactor(p.Tag) * positionFactor(p.Position)

	if honorFactor > 4.0 {
		honorFactor = 4.0
	}
	if honorFactor < 1.0 {
		honorFactor = 1.0
	}
	value *= honorFactor
	value *= RegionMarketFactor(regionShortName)

	return int64(value * 1000)
}

func abilityBracketMultiplier(ability uint8) float64 {
	switch {
	case ability >= 90:
		return 3.0
	case ability >= 80:
		return 2.0
	case ability >= 70:
		return 1.4
	case ability >= 60:
		return 1.0
	default:
		return 0.6
	}
}

func ageBandFactor(age uint8) float64 {
	switch {
	case age <= 20:
		return 1.2
	case age <= 24:
		return 1.1
	case age <= 27:
		return 1.0
	case age <= 29:
		return 0.85
	default:
		return 0.65
	}
}

func potentialGapFactor(potential, ability uint8) float64 {
	if int(potential)-int(ability) >= 5 {
		return 1.15
	}
	return 1.0
}

func tagFactor(tag PlayerTag) float64 {
	switch tag {
	case Genius:
		return 1.5
	case NormalTag:
		return 1.0
	default:
		return 0.85
	}
}

func positionFactor(pos *Position) float64 {
	if pos == nil {
		return 0.9
	}
	switch *pos {
	case Mid, Adc:
		return 1.15
	case Jug:
		return 1.05
	default:
		return 1.0
	}
}
