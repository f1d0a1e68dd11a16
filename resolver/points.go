package resolver

import (
	"context"
	"sort"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
	"esports-career-sim/repository"
)

// CreditAnnualPoints inserts one model.AnnualPointsDetail row per
// team-scoped placement, using PointsFor's (tournament_type,
// placement_bucket) table, and bumps Team.AnnualPoints by the same amount
// for every row the ledger accepted. Rows are inserted in team-id order
// so reruns produce identical ledger sequences;
// repository.PointsRepository.Insert is itself idempotent on the (save,
// season, team, tournament) key, so calling this twice for the same
// tournament changes nothing; rejected rows credit nothing.
func CreditAnnualPoints(ctx context.Context, store repository.Store, saveID string, tournament *model.Tournament, placements []model.Placement, teams map[uint64]*model.Team) error {
	credits := make([]model.Placement, 0, len(placements))
	for _, p := range placements {
		if p.TeamID != 0 {
			credits = append(credits, p)
		}
	}
	sort.Slice(credits, func(i, j int) bool { return credits[i].TeamID < credits[j].TeamID })
	for _, p := range credits {
		points := PointsFor(tournament.TournamentType, p.Bucket)
		if points == 0 {
			continue
		}
		d := &model.AnnualPointsDetail{
			SaveID:       saveID,
			SeasonID:     tournament.SeasonID,
			TeamID:       p.TeamID,
			TournamentID: tournament.ID,
			Points:       points,
		}
		inserted, err := store.Points().Insert(ctx, d)
		if err != nil {
			return errors.Wrap(errors.PersistenceError, "insert annual points detail", err)
		}
		if !inserted {
			continue
		}
		if err := creditTeamPoints(ctx, store, teams, p.TeamID, points); err != nil {
			return err
		}
	}
	return nil
}

// creditTeamPoints mirrors creditTeamBalance: in-memory for teams the
// caller already holds, fetch-and-persist for ICP payout teams nothing
// else will flush.
func creditTeamPoints(ctx context.Context, store repository.Store, teams map[uint64]*model.Team, teamID uint64, points uint32) error {
	if t, ok := teams[teamID]; ok {
		t.AnnualPoints += points
		return nil
	}
	t, err := store.Teams().Get(ctx, teamID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "get team for points credit", err)
	}
	t.AnnualPoints += points
	if err := store.Teams().Update(ctx, t); err != nil {
		return errors.Wrap(errors.PersistenceError, "update team annual points", err)
	}
	return nil
}
