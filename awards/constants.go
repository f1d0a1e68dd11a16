// Package awards implements the end-of-season awards pass: yearly_top_score
// and dominance_score ranking, the AnnualAwards honor set, and the
// market-value/brand-value recompute that follows it.
package awards

// Weight coefficients for yearly_top_score, exposed as named constants
// so the ranking is tunable in one place. Rationale for the chosen
// values is in DESIGN.md.
const (
	WeightAvgImpact      = 0.35
	WeightAvgPerformance = 0.30
	WeightConsistency    = 0.20
	WeightGamesLog       = 0.10
	WeightChampionBonus  = 0.05
)

// Weight coefficients for dominance_score.
const (
	DominanceBest   = 0.5
	DominanceImpact = 0.3
	DominancePerf   = 0.2
)

// AllPro tier count and the Top20 cutoff, both fixed by the awards design.
const (
	Top20Cutoff  = 20
	AllProTiers  = 3
)

// Honor-factor weights feeding model.CalculateMarketValue's honorFactor
// argument: each honor a player holds (this season or carried forward)
// contributes its weight to a multiplier starting at 1.0, clamped to 4.0
// by model.CalculateMarketValue itself.
const (
	HonorWeightAnnualMvp         = 1.2
	HonorWeightAllPro1st         = 0.6
	HonorWeightAllPro2nd         = 0.4
	HonorWeightAllPro3rd         = 0.25
	HonorWeightTop20             = 0.15
	HonorWeightMostConsistent    = 0.2
	HonorWeightMostDominant      = 0.2
	HonorWeightRookie            = 0.1
	HonorWeightTeamChampion      = 0.3
	HonorWeightInternationalWin  = 0.5
)

// BrandValuePerHonor is the flat per-honor-row contribution to a team's
// aggregated brand_value recompute.
const BrandValuePerHonor = 50000.0
