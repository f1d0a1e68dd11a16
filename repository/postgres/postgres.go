// Package postgres implements repository.Store against a live
// *sql.DB/lib/pq connection with hand-written SQL rather than an ORM or
// a generated query layer. Every sub-repository wraps a querier (either
// *sql.DB or a transaction-scoped *sql.Tx) so WithTx can hand every
// repository the same transaction without duplicating query logic.
package postgres

import (
	"context"
	"database/sql"

	"esports-career-sim/pkg/errors"
	"esports-career-sim/repository"
)

// querier is satisfied by both *sql.DB and *sql.Tx, letting every
// sub-repository's SQL be written once and run either outside or inside a
// transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Store is the postgres-backed repository.Store implementation.
type Store struct {
	db querier
	// raw is non-nil only on the top-level Store (not inside WithTx), so
	// WithTx can call BeginTx on the real connection.
	raw *sql.DB
}

// New wraps an already-migrated *sql.DB as a repository.Store.
func New(db *sql.DB) *Store {
	return &Store{db: db, raw: db}
}

// WithTx runs fn against a transaction-scoped Store, committing on a nil
// return and rolling back otherwise, per the transaction-discipline
// requirement. Calling WithTx on a Store that is already inside a
// transaction (raw == nil) just reuses the existing transaction; nested
// transactions aren't meaningful over database/sql.
func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.raw == nil {
		return fn(s)
	}
	tx, err := s.raw.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "begin transaction", err)
	}
	if err := fn(&Store{db: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Wrap(errors.PersistenceError, "rollback after error (rollback also failed)", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.PersistenceError, "commit transaction", err)
	}
	return nil
}

func (s *Store) Saves() repository.SaveRepository                      { return (*saveRepo)(s) }
func (s *Store) Regions() repository.RegionRepository                   { return (*regionRepo)(s) }
func (s *Store) Teams() repository.TeamRepository                       { return (*teamRepo)(s) }
func (s *Store) Players() repository.PlayerRepository                   { return (*playerRepo)(s) }
func (s *Store) Tournaments() repository.TournamentRepository           { return (*tournamentRepo)(s) }
func (s *Store) Matches() repository.MatchRepository                    { return (*matchRepo)(s) }
func (s *Store) Standings() repository.StandingRepository               { return (*standingRepo)(s) }
func (s *Store) Honors() repository.HonorRepository                     { return (*honorRepo)(s) }
func (s *Store) Points() repository.PointsRepository                    { return (*pointsRepo)(s) }
func (s *Store) Prizes() repository.PrizeRepository                     { return (*prizeRepo)(s) }
func (s *Store) FormFactors() repository.FormFactorRepository           { return (*formFactorRepo)(s) }
func (s *Store) SeasonStats() repository.SeasonStatsRepository          { return (*seasonStatsRepo)(s) }
func (s *Store) TournamentStats() repository.TournamentStatsRepository  { return (*tournamentStatsRepo)(s) }
func (s *Store) Meta() repository.MetaRepository                        { return (*metaRepo)(s) }
func (s *Store) Results() repository.TournamentResultRepository         { return (*resultRepo)(s) }
func (s *Store) Workflows() repository.WorkflowRepository               { return (*workflowRepo)(s) }

// pqErrIsUniqueViolation reports whether err is a postgres unique-constraint
// violation (SQLSTATE 23505). No writer in this package calls it: points
// inserts use ON CONFLICT DO NOTHING and prize inserts check with an
// EXISTS query first.
func pqErrIsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	type sqlStater interface{ SQLState() string }
	if se, ok := err.(sqlStater); ok {
		return se.SQLState() == "23505"
	}
	return false
}
