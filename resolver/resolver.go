package resolver

import (
	"context"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
	"esports-career-sim/repository"
	"esports-career-sim/scheduler"
)

var regularSeasonTypes = map[model.TournamentType]bool{
	model.TTSpringRegular:   true,
	model.TTSummerRegular:   true,
	model.TTRegionalRegular: true,
}

// Input bundles everything ResolveTournament needs besides the store and
// tournament itself. The caller (package phase) loads it, since what's
// needed varies with tournament type.
type Input struct {
	Matches          []*model.Match
	Standings        []*model.LeagueStanding
	Teams            map[uint64]*model.Team
	RosterByTeam     map[uint64][]*model.Player
	TournamentStats  []*model.PlayerTournamentStats
	SeasonStats      map[uint64]*model.PlayerSeasonStatistics
	TeamRegion       map[uint64]uint64 // only needed for ICP
	RegularSeasonMvp uint64            // player_id, precomputed by the caller from season stats
}

// ResolveTournament is the resolver's single entry point: given a
// completed tournament, it infers placements, awards honors, credits
// annual points, distributes prize money, and updates champion
// statistics. All of it is gated by the tournament-result anchor, so a
// second call for the same tournament is a no-op.
func ResolveTournament(ctx context.Context, store repository.Store, saveID string, tournament *model.Tournament, in Input) ([]*model.Honor, error) {
	already, err := store.Results().Exists(ctx, saveID, tournament.ID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "check tournament result existence", err)
	}
	if already {
		return nil, nil
	}

	var placements []model.Placement
	var honors []*model.Honor

	switch {
	case regularSeasonTypes[tournament.TournamentType]:
		placements = RegularSeasonPlacements(in.Standings)
		var firstPlace uint64
		for _, s := range in.Standings {
			if s.Rank != nil && *s.Rank == 1 {
				firstPlace = s.TeamID
				break
			}
		}
		h, err := AwardRegularSeasonHonors(ctx, store, saveID, tournament, firstPlace, in.Teams, in.RegularSeasonMvp)
		if err != nil {
			return honors, err
		}
		honors = append(honors, h...)

	case tournament.TournamentType == model.TTIcpIntercontinental:
		regionPlacements := InferICPPlacements(in.Standings, in.TeamRegion)
		payout, err := icpChampionRegionPayout(ctx, store, regionPlacements, in.TeamRegion)
		if err != nil {
			return honors, err
		}
		// Region-level placements carry no team_id, so the honor path
		// above stays region-blind; the champion region's payout rows
		// (Participant/NonParticipant, one per team in that region) are
		// what actually drive CreditAnnualPoints/DistributePrizes below,
		// per the ICP special case.
		placements = append(regionPlacements, payout...)

	default:
		placements = InferPlacements(in.Matches)
		var championTeamID uint64
		for _, p := range placements {
			if p.Bucket == model.Champion {
				championTeamID = p.TeamID
				break
			}
		}
		h, err := AwardTournamentHonors(ctx, store, saveID, tournament, placements, in.Teams, in.RosterByTeam[championTeamID], in.TournamentStats)
		if err != nil {
			return honors, err
		}
		honors = append(honors, h...)
		UpdateChampionStatistics(tournament, in.RosterByTeam[championTeamID], in.SeasonStats)
	}

	if err := CreditAnnualPoints(ctx, store, saveID, tournament, placements, in.Teams); err != nil {
		return honors, err
	}
	if err := DistributePrizes(ctx, store, saveID, tournament, placements, in.Teams); err != nil {
		return honors, err
	}

	result := &model.TournamentResult{
		SaveID:       saveID,
		TournamentID: tournament.ID,
		TotalMatches: len(in.Matches),
		TotalGames:   totalGames(in.Matches),
		FinalMatchID: finalMatchID(in.Matches),
		Placements:   placements,
	}
	if err := store.Results().Create(ctx, result); err != nil {
		return honors, errors.Wrap(errors.PersistenceError, "create tournament result", err)
	}

	return honors, nil
}

// icpChampionRegionPayout implements the ICP special case: "every team
// of the champion region receives the participant or non-participant
// points depending on whether the team played." It reads the champion
// region off regionPlacements, lists that region's full roster (not just
// the teams InferICPPlacements saw in the standings), and returns one
// team-scoped Placement per team: Participant for the ones that played
// this tournament, NonParticipant for the rest of the region. Returns nil
// if no champion region was inferred (e.g. an incomplete tournament).
func icpChampionRegionPayout(ctx context.Context, store repository.Store, regionPlacements []model.Placement, teamRegion map[uint64]uint64) ([]model.Placement, error) {
	var championRegion uint64
	found := false
	for _, p := range regionPlacements {
		if p.Bucket == model.Champion && p.RegionID != nil {
			championRegion = *p.RegionID
			found = true
			break
		}
	}
	if !found {
		return nil, nil
	}

	regionTeams, err := store.Teams().ListByRegion(ctx, championRegion)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list champion region teams for icp payout", err)
	}

	participated := make(map[uint64]bool, len(teamRegion))
	for teamID, regionID := range teamRegion {
		if regionID == championRegion {
			participated[teamID] = true
		}
	}

	out := make([]model.Placement, 0, len(regionTeams))
	for _, t := range regionTeams {
		bucket := model.NonParticipant
		if participated[t.ID] {
			bucket = model.Participant
		}
		out = append(out, model.Placement{TeamID: t.ID, Bucket: bucket})
	}
	return out, nil
}

func totalGames(matches []*model.Match) int {
	total := 0
	for _, m := range matches {
		if m.Status == model.MatchCompleted {
			total += m.Format.Games()
		}
	}
	return total
}

// finalMatchID returns the GRAND_FINAL match's ID where one exists
// (every bracket format); round-robin tournaments have no single final
// match, so this returns nil for them.
func finalMatchID(matches []*model.Match) *uint64 {
	for _, m := range matches {
		if m.Stage == scheduler.StageGrandFinal && m.Status == model.MatchCompleted {
			id := m.ID
			return &id
		}
	}
	return nil
}
