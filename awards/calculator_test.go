package awards

import (
	"context"
	"math"
	"testing"

	"esports-career-sim/model"
	"esports-career-sim/repository/memory"
)

// buildEligiblePlayers creates n players with season stats spread across
// the five positions, rigged so the ranking metrics have a unique,
// predictable top entry: player 1 leads every score.
func buildEligiblePlayers(t *testing.T, n int) ([]*model.PlayerSeasonStatistics, map[uint64]*model.Player) {
	t.Helper()
	stats := make([]*model.PlayerSeasonStatistics, 0, n)
	players := make(map[uint64]*model.Player, n)
	positions := model.AllPositions()
	for i := 1; i <= n; i++ {
		id := uint64(i)
		spread := float64(n - i)
		stats = append(stats, &model.PlayerSeasonStatistics{
			SaveID:           "s",
			PlayerID:         id,
			SeasonID:         1,
			GamesPlayed:      20,
			AvgImpact:        10 + spread,
			AvgPerformance:   60 + spread,
			BestPerformance:  80 + spread,
			ConsistencyScore: 50 + spread/2,
			Position:         positions[(i-1)%len(positions)],
		})
		joinSeason := uint32(0)
		if i == 2 {
			joinSeason = 1 // the only first-season player
		}
		players[id] = &model.Player{
			ID:         id,
			SaveID:     "s",
			RealName:   "Player",
			Age:        22,
			Ability:    80,
			Potential:  88,
			Status:     model.Active,
			JoinSeason: joinSeason,
		}
	}
	return stats, players
}

// TestAwardAnnualHonorsScenario runs a full awards pass: a season
// with 70 eligible players emits 1 MVP, 20 Top-20 (MVP included), 15
// All-Pro slots (3 tiers x 5 positions), 1 Most Consistent, 1 Most
// Dominant, and at most 1 Rookie.
func TestAwardAnnualHonorsScenario(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	stats, players := buildEligiblePlayers(t, 70)
	ComputeScores(stats)

	honors, err := AwardAnnualHonors(ctx, store, "s", 1, stats, players)
	if err != nil {
		t.Fatalf("AwardAnnualHonors: %v", err)
	}

	counts := map[model.HonorType]int{}
	for _, h := range honors {
		counts[h.HonorType]++
	}
	if counts[model.AnnualMvp] != 1 {
		t.Fatalf("expected 1 AnnualMvp, got %d", counts[model.AnnualMvp])
	}
	if counts[model.AnnualTop20] != 20 {
		t.Fatalf("expected 20 AnnualTop20, got %d", counts[model.AnnualTop20])
	}
	allPro := counts[model.AnnualAllPro1st] + counts[model.AnnualAllPro2nd] + counts[model.AnnualAllPro3rd]
	if allPro != 15 {
		t.Fatalf("expected 15 All-Pro honors, got %d", allPro)
	}
	if counts[model.AnnualMostConsistent] != 1 || counts[model.AnnualMostDominant] != 1 {
		t.Fatalf("expected 1 MostConsistent and 1 MostDominant, got %d/%d",
			counts[model.AnnualMostConsistent], counts[model.AnnualMostDominant])
	}
	if counts[model.AnnualRookie] != 1 {
		t.Fatalf("expected 1 AnnualRookie (one first-season player), got %d", counts[model.AnnualRookie])
	}

	// Player 1 has the top yearly score, consistency, and dominance.
	for _, h := range honors {
		switch h.HonorType {
		case model.AnnualMvp, model.AnnualMostConsistent, model.AnnualMostDominant:
			if h.PlayerID == nil || *h.PlayerID != 1 {
				t.Fatalf("expected player 1 to take %s, got %v", h.HonorType, h.PlayerID)
			}
		case model.AnnualRookie:
			if h.PlayerID == nil || *h.PlayerID != 2 {
				t.Fatalf("expected player 2 (the only rookie) to take AnnualRookie, got %v", h.PlayerID)
			}
		}
	}

	// Re-running after the season's honors exist is a no-op.
	again, err := AwardAnnualHonors(ctx, store, "s", 1, stats, players)
	if err != nil {
		t.Fatalf("second AwardAnnualHonors: %v", err)
	}
	if again != nil {
		t.Fatalf("expected idempotent re-award to emit nothing, got %d honors", len(again))
	}
}

func TestComputeScoresFormulas(t *testing.T) {
	s := &model.PlayerSeasonStatistics{
		GamesPlayed:      10,
		AvgImpact:        12,
		AvgPerformance:   65,
		BestPerformance:  90,
		ConsistencyScore: 70,
		ChampionBonus:    5,
	}
	ComputeScores([]*model.PlayerSeasonStatistics{s})

	wantTop := WeightAvgImpact*12 + WeightAvgPerformance*65 + WeightConsistency*70 +
		WeightGamesLog*math.Log(11) + WeightChampionBonus*5
	if math.Abs(s.YearlyTopScore-wantTop) > 1e-9 {
		t.Fatalf("yearly_top_score = %f, want %f", s.YearlyTopScore, wantTop)
	}
	wantDom := DominanceBest*90 + DominanceImpact*12 + DominancePerf*65
	if math.Abs(s.DominanceScore-wantDom) > 1e-9 {
		t.Fatalf("dominance_score = %f, want %f", s.DominanceScore, wantDom)
	}

	ineligible := &model.PlayerSeasonStatistics{GamesPlayed: 0, AvgImpact: 99}
	ComputeScores([]*model.PlayerSeasonStatistics{ineligible})
	if ineligible.YearlyTopScore != 0 {
		t.Fatalf("players with no games must keep a zero yearly_top_score")
	}
}

func TestRecomputeMarketValuesAppliesHonorAndRegionFactors(t *testing.T) {
	teamID := uint64(7)
	decorated := &model.Player{ID: 1, Age: 22, Ability: 80, Potential: 88, TeamID: &teamID}
	plain := &model.Player{ID: 2, Age: 22, Ability: 80, Potential: 88, TeamID: &teamID}

	RecomputeMarketValues(
		[]*model.Player{decorated, plain},
		map[uint64]float64{1: HonorWeightAnnualMvp},
		map[uint64]string{teamID: "LPL"},
	)
	if decorated.CalculatedMarketValue <= plain.CalculatedMarketValue {
		t.Fatalf("honors must raise calculated market value: %d vs %d",
			decorated.CalculatedMarketValue, plain.CalculatedMarketValue)
	}
	if plain.MarketValue != 0 {
		t.Fatalf("human-authored MarketValue must be left intact")
	}

	lcs := &model.Player{ID: 3, Age: 22, Ability: 80, Potential: 88, TeamID: &teamID}
	RecomputeMarketValues([]*model.Player{lcs}, nil, map[uint64]string{teamID: "LCS"})
	if lcs.CalculatedMarketValue >= plain.CalculatedMarketValue {
		t.Fatalf("LCS region factor (0.9) must value below LPL (1.3): %d vs %d",
			lcs.CalculatedMarketValue, plain.CalculatedMarketValue)
	}
}

func TestRecomputeBrandValuesCountsTeamHonors(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	teamID := uint64(3)
	for i := 0; i < 4; i++ {
		tid := teamID
		if err := store.Honors().Create(ctx, &model.Honor{
			SaveID: "s", SeasonID: 1, HonorType: model.TeamChampion, TeamID: &tid,
		}); err != nil {
			t.Fatalf("create honor: %v", err)
		}
	}
	team := &model.Team{ID: teamID, SaveID: "s"}
	if err := RecomputeBrandValues(ctx, store, "s", 1, map[uint64]*model.Team{teamID: team}); err != nil {
		t.Fatalf("RecomputeBrandValues: %v", err)
	}
	if team.BrandValue != 4*BrandValuePerHonor {
		t.Fatalf("brand_value = %f, want %f", team.BrandValue, 4*BrandValuePerHonor)
	}
}
