package postgres

import (
	"context"
	"database/sql"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type standingRepo Store

const standingColumns = `tournament_id, team_id, rank, matches_played, wins, losses, points,
	games_won, games_lost, game_diff`

func scanStanding(row interface{ Scan(dest ...interface{}) error }) (*model.LeagueStanding, error) {
	var s model.LeagueStanding
	var rank sql.NullInt64
	if err := row.Scan(&s.TournamentID, &s.TeamID, &rank, &s.MatchesPlayed, &s.Wins, &s.Losses,
		&s.Points, &s.GamesWon, &s.GamesLost, &s.GameDiff); err != nil {
		return nil, err
	}
	if rank.Valid {
		v := int(rank.Int64)
		s.Rank = &v
	}
	return &s, nil
}

func (r *standingRepo) Get(ctx context.Context, tournamentID, teamID uint64) (*model.LeagueStanding, error) {
	st := (*Store)(r)
	row := st.db.QueryRowContext(ctx, `
		SELECT `+standingColumns+` FROM league_standings WHERE tournament_id = $1 AND team_id = $2`,
		tournamentID, teamID)
	s, err := scanStanding(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundError("LeagueStanding", teamID)
		}
		return nil, errors.Wrap(errors.PersistenceError, "get standing", err)
	}
	return s, nil
}

// Upsert implements the unique (tournament_id, team_id) constraint via
// ON CONFLICT DO UPDATE, since standings rows are rewritten on every
// completed match.
func (r *standingRepo) Upsert(ctx context.Context, s *model.LeagueStanding) error {
	st := (*Store)(r)
	_, err := st.db.ExecContext(ctx, `
		INSERT INTO league_standings (tournament_id, team_id, rank, matches_played, wins, losses,
			points, games_won, games_lost, game_diff)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (tournament_id, team_id) DO UPDATE SET
			rank = EXCLUDED.rank, matches_played = EXCLUDED.matches_played, wins = EXCLUDED.wins,
			losses = EXCLUDED.losses, points = EXCLUDED.points, games_won = EXCLUDED.games_won,
			games_lost = EXCLUDED.games_lost, game_diff = EXCLUDED.game_diff`,
		s.TournamentID, s.TeamID, nullableInt(s.Rank), s.MatchesPlayed, s.Wins, s.Losses,
		s.Points, s.GamesWon, s.GamesLost, s.GameDiff)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "upsert standing", err)
	}
	return nil
}

func (r *standingRepo) ListByTournament(ctx context.Context, tournamentID uint64) ([]*model.LeagueStanding, error) {
	st := (*Store)(r)
	rows, err := st.db.QueryContext(ctx, `
		SELECT `+standingColumns+` FROM league_standings WHERE tournament_id = $1
		ORDER BY points DESC, game_diff DESC, wins DESC, team_id`, tournamentID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list standings", err)
	}
	defer rows.Close()
	var out []*model.LeagueStanding
	for rows.Next() {
		s, err := scanStanding(rows)
		if err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "scan standing", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// RecomputeRanks re-assigns Rank using a window function over the
// (points, game_diff, wins) ordering the match-completion path
// maintains.
func (r *standingRepo) RecomputeRanks(ctx context.Context, tournamentID uint64) error {
	st := (*Store)(r)
	_, err := st.db.ExecContext(ctx, `
		WITH ranked AS (
			SELECT team_id, ROW_NUMBER() OVER (
				ORDER BY points DESC, game_diff DESC, wins DESC, team_id
			) AS rn
			FROM league_standings WHERE tournament_id = $1
		)
		UPDATE league_standings ls SET rank = ranked.rn
		FROM ranked WHERE ls.tournament_id = $1 AND ls.team_id = ranked.team_id`,
		tournamentID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "recompute standing ranks", err)
	}
	return nil
}
