package rng

import "math/rand"

// archetypes enumerates the composition archetypes MetaWeights biases
// toward or away from. Kept small and closed, mirroring model.Trait's
// closed-enumeration style.
var archetypes = []string{"Aggressive", "Scaling", "PokeSiege", "SplitPush", "Balanced"}

// MetaWeights is a per-(save, season) record biasing which team
// composition archetypes gain a slight condition bonus, season by season.
// The bonus is deliberately small: it nudges close matches, it does not
// decide them.
type MetaWeights struct {
	Season          uint32
	ArchetypeBonus  map[string]float64 // archetype -> condition delta, each in [-1.5, 1.5]
}

// BalancedMetaWeights is the "absent" fallback: every archetype bonus is
// zero, so the meta has no effect on condition until a real one is rolled.
func BalancedMetaWeights(season uint32) MetaWeights {
	bonus := make(map[string]float64, len(archetypes))
	for _, a := range archetypes {
		bonus[a] = 0
	}
	return MetaWeights{Season: season, ArchetypeBonus: bonus}
}

// RollNewMeta deterministically samples a new MetaWeights for the given
// save and season, using the same seed derivation as New so a replay with
// a fixed seed reproduces the identical meta.
func RollNewMeta(saveID string, season uint32, overrideSeed int64) MetaWeights {
	r := New(saveID, season, overrideSeed)
	bonus := make(map[string]float64, len(archetypes))
	for _, a := range archetypes {
		bonus[a] = sampleBonus(r)
	}
	return MetaWeights{Season: season, ArchetypeBonus: bonus}
}

// sampleBonus draws a value in [-1.5, 1.5].
func sampleBonus(r *rand.Rand) float64 {
	return r.Float64()*3.0 - 1.5
}

// BonusFor returns the archetype's condition bonus, or 0 for an unknown
// archetype.
func (w MetaWeights) BonusFor(archetype string) float64 {
	if w.ArchetypeBonus == nil {
		return 0
	}
	return w.ArchetypeBonus[archetype]
}

// Archetypes exposes the closed archetype list for callers that need to
// classify a team composition (package simulation).
func Archetypes() []string {
	out := make([]string, len(archetypes))
	copy(out, archetypes)
	return out
}
