package phase

import (
	"context"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
	"esports-career-sim/scheduler"
)

// Super Invitational tiers: top 4 annual-points teams are Legendary,
// seeds 5-8 are Challenger, and seeds 9-16 are Fighters who play in for
// 4 of the main bracket's remaining slots.
const (
	superLegendaryCount  = 4
	superChallengerCount = 4
	superFighterCount    = 8
)

// seedSuper builds the Super Invitational's fighter play-in round. The
// main bracket itself is seeded later by advanceSuper once the play-in
// resolves.
func (m *Machine) seedSuper(ctx context.Context, saveID string, season uint32) error {
	ranked, err := annualPointsRanked(ctx, m.store, saveID)
	if err != nil {
		return err
	}
	need := superLegendaryCount + superChallengerCount + superFighterCount
	if len(ranked) < need {
		need = len(ranked)
	}
	top := ranked[:need]

	tournament := &model.Tournament{
		SaveID:         saveID,
		SeasonID:       season,
		TournamentType: model.TTSuperIntercontinental,
		Name:           model.TTSuperIntercontinental.String(),
		Status:         model.TournamentInProgress,
	}
	if err := m.store.Tournaments().Create(ctx, tournament); err != nil {
		return errors.Wrap(errors.PersistenceError, "create super invitational tournament", err)
	}

	all := make([]uint64, len(top))
	for i, t := range top {
		all[i] = t.ID
	}
	if err := initStandingsZero(ctx, m.store, tournament.ID, all); err != nil {
		return err
	}

	fighters := superFighters(top)
	if len(fighters) < 2 {
		return nil // not enough fighters to play in, main bracket seeds directly next advance
	}
	matches := scheduler.SeedFighterPlayin(tournament.ID, fighters, bracketFormat)
	return m.batchCreateMatches(ctx, matches)
}

// superTiers splits annual-points-ranked teams into the Legendary,
// Challenger and Fighter seed lists, re-derivable identically at seed time
// and at every advance call since it only depends on a fixed ranking.
func superTiers(ranked []*model.Team) (legendary, challenger []scheduler.Seed, fighters []scheduler.Seed) {
	for i, t := range ranked {
		switch {
		case i < superLegendaryCount:
			legendary = append(legendary, scheduler.Seed{TeamID: t.ID, Seed: i + 1})
		case i < superLegendaryCount+superChallengerCount:
			challenger = append(challenger, scheduler.Seed{TeamID: t.ID, Seed: i + 1})
		case i < superLegendaryCount+superChallengerCount+superFighterCount:
			fighters = append(fighters, scheduler.Seed{TeamID: t.ID, Seed: i + 1})
		}
	}
	return legendary, challenger, fighters
}

func superFighters(ranked []*model.Team) []scheduler.Seed {
	_, _, fighters := superTiers(ranked)
	return fighters
}

// advanceSuper drives the Fighter play-in to its 4 survivors, then seeds
// and advances the Legendary/Challenger/survivor main bracket.
func (m *Machine) advanceSuper(ctx context.Context, saveID string, tournamentID uint64, format model.MatchFormat, all []*model.Match) ([]*model.Match, error) {
	ranked, err := annualPointsRanked(ctx, m.store, saveID)
	if err != nil {
		return nil, err
	}
	legendary, challenger, fighters := superTiers(ranked)

	if stageExistsIn(all, tournamentID, scheduler.StageWinnersR1) || stageExistsIn(all, tournamentID, scheduler.StageGrandFinal) ||
		stageExistsIn(all, tournamentID, scheduler.StageLosersR1) {
		return scheduler.AdvanceSuperMainBracket(tournamentID, legendary, challenger, fighterSurvivorsFrom(tournamentID, all), format, all), nil
	}

	if len(fighters) < 2 {
		return scheduler.SeedSuperMainBracket(tournamentID, legendary, challenger, nil, format), nil
	}

	survivors := scheduler.FighterPlayinSurvivors(tournamentID, all)
	if survivors == nil {
		return nil, nil // play-in still in progress
	}
	return scheduler.SeedSuperMainBracket(tournamentID, legendary, challenger, survivors, format), nil
}

func fighterSurvivorsFrom(tournamentID uint64, all []*model.Match) []uint64 {
	return scheduler.FighterPlayinSurvivors(tournamentID, all)
}
