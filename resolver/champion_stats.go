package resolver

import "esports-career-sim/model"

// Champion-bonus increments credited to the champion roster's starters.
// Global events (MSI, Masters, Worlds, ICP, Super Invitational) pay more
// than a regional playoff run, feeding WeightChampionBonus in the annual
// dominance-score formula.
const (
	GlobalChampionBonus   = 0.15
	RegionalChampionBonus = 0.05
)

// UpdateChampionStatistics increments the champion roster's career title
// counters (model.Player.InternationalTitles/RegionalTitles) and this
// season's model.PlayerSeasonStatistics mirror of the same counters, plus
// ChampionBonus on both. It mutates in place and returns nothing; callers
// persist the mutated players and season-stat rows.
func UpdateChampionStatistics(tournament *model.Tournament, championRoster []*model.Player, seasonStats map[uint64]*model.PlayerSeasonStatistics) {
	isGlobal := tournament.TournamentType.IsGlobal()
	bonus := RegionalChampionBonus
	if isGlobal {
		bonus = GlobalChampionBonus
	}

	for _, player := range championRoster {
		if !player.IsStarter {
			continue
		}
		if isGlobal {
			player.InternationalTitles++
		} else {
			player.RegionalTitles++
		}
		player.ChampionBonus += bonus

		if stats, ok := seasonStats[player.ID]; ok {
			if isGlobal {
				stats.InternationalTitles++
			} else {
				stats.RegionalTitles++
			}
			stats.ChampionBonus += bonus
		}
	}
}
