package resolver

import (
	"context"
	"fmt"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
	"esports-career-sim/repository"
)

// bucketHonorType maps a bracket placement bucket to the team-level honor
// it earns. Fifth8th/QuarterLoser/Participant carry no team honor but
// still feed annual points and prize money.
var bucketHonorType = map[model.PlacementBucket]model.HonorType{
	model.Champion: model.TeamChampion,
	model.RunnerUp: model.TeamRunnerUp,
	model.Third:    model.TeamThird,
	model.Fourth:   model.TeamFourth,
}

// AwardTournamentHonors creates the team- and player-level honors for a
// completed tournament: TeamChampion/RunnerUp/Third/Fourth for
// the relevant placements, PlayerChampion for every starter on the
// champion roster, and TournamentMvp for the tournament's top-ranked
// player by MvpRank. Each honor type is checked against the existing
// ledger before it's created, so re-running this for an
// already-resolved tournament is a no-op.
func AwardTournamentHonors(
	ctx context.Context,
	store repository.Store,
	saveID string,
	tournament *model.Tournament,
	placements []model.Placement,
	teams map[uint64]*model.Team,
	championRoster []*model.Player,
	tournamentStats []*model.PlayerTournamentStats,
) ([]*model.Honor, error) {
	var awarded []*model.Honor

	for _, p := range placements {
		ht, ok := bucketHonorType[p.Bucket]
		if !ok || p.TeamID == 0 {
			continue
		}
		h, err := awardTeamHonor(ctx, store, saveID, tournament, ht, p.TeamID, teams)
		if err != nil {
			return awarded, err
		}
		if h != nil {
			awarded = append(awarded, h)
		}
	}

	if championRoster != nil {
		exists, err := store.Honors().ExistsForTournament(ctx, saveID, tournament.ID, model.PlayerChampion)
		if err != nil {
			return awarded, errors.Wrap(errors.PersistenceError, "check PlayerChampion existence", err)
		}
		if !exists {
			for _, player := range championRoster {
				if !player.IsStarter {
					continue
				}
				tid := tournament.ID
				pid := player.ID
				h := &model.Honor{
					SaveID:         saveID,
					HonorType:      model.PlayerChampion,
					SeasonID:       tournament.SeasonID,
					TournamentID:   &tid,
					TournamentName: tournament.Name,
					TournamentType: &tournament.TournamentType,
					PlayerID:       &pid,
					PlayerName:     player.RealName,
				}
				if err := store.Honors().Create(ctx, h); err != nil {
					return awarded, errors.Wrap(errors.PersistenceError, "create PlayerChampion honor", err)
				}
				awarded = append(awarded, h)
			}
		}
	}

	if mvpHonor, err := awardTournamentMvp(ctx, store, saveID, tournament, tournamentStats); err != nil {
		return awarded, err
	} else if mvpHonor != nil {
		awarded = append(awarded, mvpHonor)
	}

	return awarded, nil
}

func awardTeamHonor(ctx context.Context, store repository.Store, saveID string, tournament *model.Tournament, ht model.HonorType, teamID uint64, teams map[uint64]*model.Team) (*model.Honor, error) {
	exists, err := store.Honors().ExistsForTournament(ctx, saveID, tournament.ID, ht)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, fmt.Sprintf("check %s existence", ht), err)
	}
	if exists {
		return nil, nil
	}
	tid := tournament.ID
	tmID := teamID
	teamName := ""
	if t, ok := teams[teamID]; ok {
		teamName = t.Name
	}
	h := &model.Honor{
		SaveID:         saveID,
		HonorType:      ht,
		SeasonID:       tournament.SeasonID,
		TournamentID:   &tid,
		TournamentName: tournament.Name,
		TournamentType: &tournament.TournamentType,
		TeamID:         &tmID,
		TeamName:       teamName,
	}
	if err := store.Honors().Create(ctx, h); err != nil {
		return nil, errors.Wrap(errors.PersistenceError, fmt.Sprintf("create %s honor", ht), err)
	}
	return h, nil
}

// awardTournamentMvp picks the highest model.PlayerTournamentStats.MvpRank()
// among players with at least one game played.
func awardTournamentMvp(ctx context.Context, store repository.Store, saveID string, tournament *model.Tournament, stats []*model.PlayerTournamentStats) (*model.Honor, error) {
	exists, err := store.Honors().ExistsForTournament(ctx, saveID, tournament.ID, model.TournamentMvp)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "check TournamentMvp existence", err)
	}
	if exists {
		return nil, nil
	}
	var best *model.PlayerTournamentStats
	for _, s := range stats {
		if s.GamesPlayed < 1 {
			continue
		}
		if best == nil || s.MvpRank() > best.MvpRank() {
			best = s
		}
	}
	if best == nil {
		return nil, nil
	}
	tid := tournament.ID
	pid := best.PlayerID
	h := &model.Honor{
		SaveID:         saveID,
		HonorType:      model.TournamentMvp,
		SeasonID:       tournament.SeasonID,
		TournamentID:   &tid,
		TournamentName: tournament.Name,
		TournamentType: &tournament.TournamentType,
		PlayerID:       &pid,
	}
	if err := store.Honors().Create(ctx, h); err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "create TournamentMvp honor", err)
	}
	return h, nil
}

// AwardRegularSeasonHonors creates RegularSeasonFirst (standings rank 1
// team) and RegularSeasonMvp (top PlayerSeasonStatistics-derived performer,
// supplied by the caller since the season aggregate lives outside this
// tournament's own stats table) for a completed regular-season phase.
func AwardRegularSeasonHonors(
	ctx context.Context,
	store repository.Store,
	saveID string,
	tournament *model.Tournament,
	firstPlaceTeamID uint64,
	teams map[uint64]*model.Team,
	mvpPlayerID uint64,
) ([]*model.Honor, error) {
	var awarded []*model.Honor

	if firstPlaceTeamID != 0 {
		h, err := awardTeamHonor(ctx, store, saveID, tournament, model.RegularSeasonFirst, firstPlaceTeamID, teams)
		if err != nil {
			return awarded, err
		}
		if h != nil {
			awarded = append(awarded, h)
		}
	}

	if mvpPlayerID != 0 {
		exists, err := store.Honors().ExistsForTournament(ctx, saveID, tournament.ID, model.RegularSeasonMvp)
		if err != nil {
			return awarded, errors.Wrap(errors.PersistenceError, "check RegularSeasonMvp existence", err)
		}
		if !exists {
			tid := tournament.ID
			pid := mvpPlayerID
			h := &model.Honor{
				SaveID:         saveID,
				HonorType:      model.RegularSeasonMvp,
				SeasonID:       tournament.SeasonID,
				TournamentID:   &tid,
				TournamentName: tournament.Name,
				TournamentType: &tournament.TournamentType,
				PlayerID:       &pid,
			}
			if err := store.Honors().Create(ctx, h); err != nil {
				return awarded, errors.Wrap(errors.PersistenceError, "create RegularSeasonMvp honor", err)
			}
			awarded = append(awarded, h)
		}
	}

	return awarded, nil
}
