package resolver

import (
	"context"
	"fmt"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
	"esports-career-sim/repository"
)

// DistributePrizes credits one model.FinancialTransaction per team-scoped
// placement that PrizeFor pays out, choosing InternationalBonus for global
// tournament types and PlayoffBonus otherwise The whole
// tournament's prize distribution is gated by a single
// ExistsForTournament check, so a second call is a no-op rather than a
// double payout.
func DistributePrizes(ctx context.Context, store repository.Store, saveID string, tournament *model.Tournament, placements []model.Placement, teams map[uint64]*model.Team) error {
	exists, err := store.Prizes().ExistsForTournament(ctx, saveID, tournament.ID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "check prize existence", err)
	}
	if exists {
		return nil
	}

	txType := model.PlayoffBonus
	if tournament.TournamentType.IsGlobal() {
		txType = model.InternationalBonus
	}

	for _, p := range placements {
		if p.TeamID == 0 {
			continue
		}
		amount := PrizeFor(tournament.TournamentType, p.Bucket)
		if amount == 0 {
			continue
		}
		tid := tournament.ID
		if err := creditTeamBalance(ctx, store, teams, p.TeamID, amount); err != nil {
			return err
		}
		tx := &model.FinancialTransaction{
			SaveID:              saveID,
			TeamID:              p.TeamID,
			Type:                txType,
			Amount:              amount,
			Description:         fmt.Sprintf("%s - %s 奖金", tournament.TournamentType, p.Bucket),
			RelatedTournamentID: &tid,
		}
		if err := store.Prizes().Create(ctx, tx); err != nil {
			return errors.Wrap(errors.PersistenceError, "create prize transaction", err)
		}
	}
	return nil
}

// creditTeamBalance adds amount to teamID's balance. When the team is
// already held in teams (every team that actually played), the credit is
// applied in memory and left for the caller's batch Update pass. ICP's champion-region payout
// can also name teams that never played and so were never loaded into
// teams; those are fetched and persisted here directly, since no other
// pass will see them.
func creditTeamBalance(ctx context.Context, store repository.Store, teams map[uint64]*model.Team, teamID uint64, amount int64) error {
	if t, ok := teams[teamID]; ok {
		t.Balance += amount
		return nil
	}
	t, err := store.Teams().Get(ctx, teamID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "get team for prize credit", err)
	}
	t.Balance += amount
	if err := store.Teams().Update(ctx, t); err != nil {
		return errors.Wrap(errors.PersistenceError, "update team balance after prize credit", err)
	}
	return nil
}
