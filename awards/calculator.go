package awards

import (
	"context"
	"math"
	"sort"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
	"esports-career-sim/repository"
)

// ComputeScores fills in YearlyTopScore and DominanceScore on every
// eligible (games_played >= 1) entry, per the scoring formulas. Ineligible
// entries are left untouched (zero scores, which sort last).
func ComputeScores(stats []*model.PlayerSeasonStatistics) {
	for _, s := range stats {
		if s.GamesPlayed < 1 {
			continue
		}
		s.YearlyTopScore = WeightAvgImpact*s.AvgImpact +
			WeightAvgPerformance*s.AvgPerformance +
			WeightConsistency*s.ConsistencyScore +
			WeightGamesLog*math.Log(float64(s.GamesPlayed)+1) +
			WeightChampionBonus*s.ChampionBonus
		s.DominanceScore = DominanceBest*s.BestPerformance +
			DominanceImpact*s.AvgImpact +
			DominancePerf*s.AvgPerformance
	}
}

// AwardAnnualHonors awards the full annual honor set for one season, gated
// by a single ExistsAnnualForSeason check so re-running this after the
// season's honors already exist is a no-op. stats must already have
// YearlyTopScore/DominanceScore computed (via ComputeScores).
func AwardAnnualHonors(ctx context.Context, store repository.Store, saveID string, season uint32, stats []*model.PlayerSeasonStatistics, players map[uint64]*model.Player) ([]*model.Honor, error) {
	already, err := store.Honors().ExistsAnnualForSeason(ctx, saveID, season)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "check annual honors existence", err)
	}
	if already {
		return nil, nil
	}

	eligible := make([]*model.PlayerSeasonStatistics, 0, len(stats))
	for _, s := range stats {
		if s.GamesPlayed >= 1 {
			eligible = append(eligible, s)
		}
	}

	var honors []*model.Honor
	create := func(ht model.HonorType, s *model.PlayerSeasonStatistics) {
		p := players[s.PlayerID]
		name := ""
		if p != nil {
			name = p.RealName
		}
		pid := s.PlayerID
		h := &model.Honor{
			SaveID:     saveID,
			HonorType:  ht,
			SeasonID:   season,
			PlayerID:   &pid,
			PlayerName: name,
		}
		honors = append(honors, h)
	}

	byTopScore := append([]*model.PlayerSeasonStatistics{}, eligible...)
	sort.SliceStable(byTopScore, func(i, j int) bool { return byTopScore[i].YearlyTopScore > byTopScore[j].YearlyTopScore })

	if len(byTopScore) > 0 {
		create(model.AnnualMvp, byTopScore[0])
	}
	for i := 0; i < len(byTopScore) && i < Top20Cutoff; i++ {
		create(model.AnnualTop20, byTopScore[i])
	}

	allProHonors := []model.HonorType{model.AnnualAllPro1st, model.AnnualAllPro2nd, model.AnnualAllPro3rd}
	for _, pos := range model.AllPositions() {
		var atPos []*model.PlayerSeasonStatistics
		for _, s := range byTopScore {
			if s.Position == pos {
				atPos = append(atPos, s)
			}
		}
		for tier := 0; tier < AllProTiers && tier < len(atPos); tier++ {
			create(allProHonors[tier], atPos[tier])
		}
	}

	byConsistency := append([]*model.PlayerSeasonStatistics{}, eligible...)
	sort.SliceStable(byConsistency, func(i, j int) bool {
		if byConsistency[i].ConsistencyScore != byConsistency[j].ConsistencyScore {
			return byConsistency[i].ConsistencyScore > byConsistency[j].ConsistencyScore
		}
		return byConsistency[i].GamesPlayed > byConsistency[j].GamesPlayed
	})
	if len(byConsistency) > 0 {
		create(model.AnnualMostConsistent, byConsistency[0])
	}

	byDominance := append([]*model.PlayerSeasonStatistics{}, eligible...)
	sort.SliceStable(byDominance, func(i, j int) bool { return byDominance[i].DominanceScore > byDominance[j].DominanceScore })
	if len(byDominance) > 0 {
		create(model.AnnualMostDominant, byDominance[0])
	}

	var rookies []*model.PlayerSeasonStatistics
	for _, s := range byTopScore {
		if p := players[s.PlayerID]; p != nil && p.JoinSeason == season {
			rookies = append(rookies, s)
		}
	}
	if len(rookies) > 0 {
		create(model.AnnualRookie, rookies[0])
	}

	for _, h := range honors {
		if err := store.Honors().Create(ctx, h); err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "create annual honor", err)
		}
	}
	return honors, nil
}

// honorWeight maps a HonorType to its contribution to a player's
// market-value honor factor.
func honorWeight(ht model.HonorType) float64 {
	switch ht {
	case model.AnnualMvp:
		return HonorWeightAnnualMvp
	case model.AnnualAllPro1st:
		return HonorWeightAllPro1st
	case model.AnnualAllPro2nd:
		return HonorWeightAllPro2nd
	case model.AnnualAllPro3rd:
		return HonorWeightAllPro3rd
	case model.AnnualTop20:
		return HonorWeightTop20
	case model.AnnualMostConsistent:
		return HonorWeightMostConsistent
	case model.AnnualMostDominant:
		return HonorWeightMostDominant
	case model.AnnualRookie:
		return HonorWeightRookie
	case model.TeamChampion, model.PlayerChampion:
		return HonorWeightTeamChampion
	case model.TournamentMvp:
		return HonorWeightInternationalWin
	default:
		return 0
	}
}

// AccumulateHonorWeights sums honorWeight over every honor row on record
// for a save, across every season from 1 through uptoSeason inclusive,
// keyed by player_id, feeding the market-value formula's honor factor.
func AccumulateHonorWeights(ctx context.Context, store repository.Store, saveID string, uptoSeason uint32) (map[uint64]float64, error) {
	out := map[uint64]float64{}
	for season := uint32(1); season <= uptoSeason; season++ {
		honors, err := store.Honors().ListBySaveSeason(ctx, saveID, season)
		if err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "list honors by season", err)
		}
		for _, h := range honors {
			if h.PlayerID == nil {
				continue
			}
			out[*h.PlayerID] += honorWeight(h.HonorType)
		}
	}
	return out, nil
}

// RecomputeMarketValues recomputes CalculatedMarketValue for every given
// player via model.CalculateMarketValue, using each player's cumulative
// honor-weight sum (honorFactor = 1.0 + weights) and the region short name
// their current team belongs to (or "" for free agents, which
// model.RegionMarketFactor prices at its default 0.8 factor).
func RecomputeMarketValues(players []*model.Player, honorWeights map[uint64]float64, regionShortNameByTeam map[uint64]string) {
	for _, p := range players {
		factor := 1.0 + honorWeights[p.ID]
		regionShortName := ""
		if p.TeamID != nil {
			regionShortName = regionShortNameByTeam[*p.TeamID]
		}
		p.CalculatedMarketValue = model.CalculateMarketValue(p, factor, regionShortName)
	}
}

// RecomputeBrandValues aggregates honor counts per team across the whole
// save's honors ledger (every season through uptoSeason) into
// Team.BrandValue, at BrandValuePerHonor per row.
func RecomputeBrandValues(ctx context.Context, store repository.Store, saveID string, uptoSeason uint32, teams map[uint64]*model.Team) error {
	counts := map[uint64]int{}
	for season := uint32(1); season <= uptoSeason; season++ {
		honors, err := store.Honors().ListBySaveSeason(ctx, saveID, season)
		if err != nil {
			return errors.Wrap(errors.PersistenceError, "list honors by season", err)
		}
		for _, h := range honors {
			if h.TeamID != nil {
				counts[*h.TeamID]++
			}
		}
	}
	for id, team := range teams {
		team.BrandValue = float64(counts[id]) * BrandValuePerHonor
	}
	return nil
}
