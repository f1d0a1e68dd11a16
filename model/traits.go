package model

// Trait is one member of the closed trait enumeration every player draws
// from. New traits are never added at runtime; the name table in
// traitNames is exhaustive and covered by round-trip tests.
type Trait int

const (
	Clutch Trait = iota
	SlowStarter
	FastStarter
	Explosive
	Consistent
	ComebackKing
	Tilter
	MentalFortress
	Fragile
	Ironman
	Volatile
	RisingStar
	Veteran
	TeamLeader
	// DraftPickSynergy and MetaAdapter extend the base ~14-trait table with
	// two BP-specific variants: synergy with a team's draft-era teammates,
	// and halving the per-season meta bonus/penalty for the bearer.
	DraftPickSynergy
	MetaAdapter
)

var traitNames = [...]string{
	"Clutch",
	"SlowStarter",
	"FastStarter",
	"Explosive",
	"Consistent",
	"ComebackKing",
	"Tilter",
	"MentalFortress",
	"Fragile",
	"Ironman",
	"Volatile",
	"RisingStar",
	"Veteran",
	"TeamLeader",
	"DraftPickSynergy",
	"MetaAdapter",
}

func (t Trait) String() string {
	if t < 0 || int(t) >= len(traitNames) {
		return "Unknown"
	}
	return traitNames[t]
}

func ParseTrait(s string) (Trait, bool) {
	for i, name := range traitNames {
		if name == s {
			return Trait(i), true
		}
	}
	return 0, false
}

// TraitContext carries everything a trait's activation rule needs to
// decide whether (and how strongly) it fires for one player in one game.
type TraitContext struct {
	TournamentType  TournamentType
	IsPlayoff       bool
	IsInternational bool
	GameNumber      int
	ScoreDiff       int // this player's team wins minus losses so far in the series
	Age             uint8
	IsFirstSeason   bool
	GamesSinceRest  uint32
}

// TraitModifier is the additive effect a single activated trait applies.
type TraitModifier struct {
	AbilityDelta        float64
	StabilityDelta      float64
	ConditionDelta      float64
	AbilityCeilingDelta float64
}

// Activate returns the modifier for t under ctx, and whether the trait
// activated at all. DraftPickSynergy and MetaAdapter are the two
// exceptions: DraftPickSynergy is intentionally inert here (it rewards
// roster continuity from the draft auction flow, which is out of scope
// for this core), and MetaAdapter acts on the per-season MetaWeights
// bonus rather than a TraitModifier field, so package simulation applies
// it directly against that bonus instead of through this table.
func (t Trait) Activate(ctx TraitContext) (TraitModifier, bool) {
	switch t {
	case Clutch:
		if ctx.IsPlayoff || ctx.IsInternational {
			return TraitModifier{ConditionDelta: 3}, true
		}
	case SlowStarter:
		if ctx.GameNumber == 1 {
			return TraitModifier{ConditionDelta: -2}, true
		}
		if ctx.GameNumber >= 3 {
			return TraitModifier{ConditionDelta: 2}, true
		}
	case FastStarter:
		if ctx.GameNumber == 1 {
			return TraitModifier{ConditionDelta: 2}, true
		}
		if ctx.GameNumber >= 3 {
			return TraitModifier{ConditionDelta: -1}, true
		}
	case Explosive:
		return TraitModifier{StabilityDelta: -15, AbilityCeilingDelta: 5}, true
	case Consistent:
		return TraitModifier{StabilityDelta: 10, AbilityCeilingDelta: -3}, true
	case ComebackKing:
		if ctx.ScoreDiff < 0 {
			return TraitModifier{ConditionDelta: 3}, true
		}
	case Tilter:
		if ctx.ScoreDiff > 0 {
			return TraitModifier{ConditionDelta: -2}, true
		}
		if ctx.ScoreDiff < 0 {
			return TraitModifier{ConditionDelta: -3}, true
		}
	case RisingStar:
		if ctx.IsFirstSeason {
			return TraitModifier{AbilityDelta: 3}, true
		}
	case Veteran:
		if ctx.Age >= 30 {
			return TraitModifier{StabilityDelta: 15}, true
		}
	case MentalFortress:
		// Steadies nerves when behind in the series, where Tilter would
		// otherwise pile on a condition penalty.
		if ctx.ScoreDiff < 0 {
			return TraitModifier{StabilityDelta: 10}, true
		}
	case Fragile:
		// Cracks under a compressed schedule.
		if ctx.GamesSinceRest > 3 {
			return TraitModifier{StabilityDelta: -10, ConditionDelta: -2}, true
		}
	case Ironman:
		// Shrugs off the fatigue penalty past 5 games since rest.
		if ctx.GamesSinceRest > 5 {
			return TraitModifier{ConditionDelta: 3}, true
		}
	case Volatile:
		return TraitModifier{StabilityDelta: -20, AbilityCeilingDelta: 8}, true
	case TeamLeader:
		// Steadies the team when protecting a series lead.
		if ctx.ScoreDiff > 0 {
			return TraitModifier{ConditionDelta: 1, StabilityDelta: 5}, true
		}
	}
	return TraitModifier{}, false
}

// SumModifiers folds a player's active traits into one combined
// modifier; effects stack additively.
func SumModifiers(traits []Trait, ctx TraitContext) TraitModifier {
	var total TraitModifier
	for _, t := range traits {
		if m, ok := t.Activate(ctx); ok {
			total.AbilityDelta += m.AbilityDelta
			total.StabilityDelta += m.StabilityDelta
			total.ConditionDelta += m.ConditionDelta
			total.AbilityCeilingDelta += m.AbilityCeilingDelta
		}
	}
	return total
}
