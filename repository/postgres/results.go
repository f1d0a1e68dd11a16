package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type resultRepo Store

func (r *resultRepo) Exists(ctx context.Context, saveID string, tournamentID uint64) (bool, error) {
	st := (*Store)(r)
	var exists bool
	err := st.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM tournament_results WHERE save_id = $1 AND tournament_id = $2)`,
		saveID, tournamentID).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(errors.PersistenceError, "check tournament result existence", err)
	}
	return exists, nil
}

func (r *resultRepo) Create(ctx context.Context, res *model.TournamentResult) error {
	st := (*Store)(r)
	placements, err := json.Marshal(res.Placements)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "marshal placements", err)
	}
	_, err = st.db.ExecContext(ctx, `
		INSERT INTO tournament_results (save_id, tournament_id, total_matches, total_games,
			final_match_id, placements)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (save_id, tournament_id) DO NOTHING`,
		res.SaveID, res.TournamentID, res.TotalMatches, res.TotalGames,
		nullableUint64(res.FinalMatchID), placements)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "create tournament result", err)
	}
	return nil
}

func (r *resultRepo) Get(ctx context.Context, saveID string, tournamentID uint64) (*model.TournamentResult, error) {
	st := (*Store)(r)
	var res model.TournamentResult
	var finalMatchID sql.NullInt64
	var placements []byte
	err := st.db.QueryRowContext(ctx, `
		SELECT save_id, tournament_id, total_matches, total_games, final_match_id, placements
		FROM tournament_results WHERE save_id = $1 AND tournament_id = $2`,
		saveID, tournamentID).Scan(&res.SaveID, &res.TournamentID, &res.TotalMatches,
		&res.TotalGames, &finalMatchID, &placements)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundError("TournamentResult", tournamentID)
		}
		return nil, errors.Wrap(errors.PersistenceError, "get tournament result", err)
	}
	if finalMatchID.Valid {
		v := uint64(finalMatchID.Int64)
		res.FinalMatchID = &v
	}
	if err := json.Unmarshal(placements, &res.Placements); err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "unmarshal placements", err)
	}
	return &res, nil
}
