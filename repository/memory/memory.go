// Package memory is an in-process, map-backed implementation of
// repository.Store, guarded by a single sync.RWMutex per store instance.
// It implements the exact same interface as repository/postgres and is
// the store used by this repo's tests, since no live database can be
// exercised here.
package memory

import (
	"context"
	"sync"

	"esports-career-sim/model"
	"esports-career-sim/repository"
	"esports-career-sim/rng"
)

// Store is the in-memory repository.Store implementation.
type Store struct {
	mu sync.RWMutex

	saves       map[string]*model.Save
	regions     map[uint64]*model.Region
	teams       map[uint64]*model.Team
	players     map[uint64]*model.Player
	tournaments map[uint64]*model.Tournament
	matches     map[uint64]*model.Match
	games       map[uint64]*model.MatchGame
	perfs       []*model.GamePlayerPerformance
	standings   map[string]*model.LeagueStanding // key: tournamentID:teamID
	honors      map[uint64]*model.Honor
	points      map[string]*model.AnnualPointsDetail // key: save:season:team:tournament
	prizes      map[uint64]*model.FinancialTransaction
	formFactors map[string]*model.PlayerFormFactors // key: save:player
	seasonStats map[string]*model.PlayerSeasonStatistics
	tourneyStats map[string]*model.PlayerTournamentStats
	meta        map[string]rng.MetaWeights // key: save:season
	results     map[string]*model.TournamentResult // key: save:tournament

	transferWindows map[string]*model.TransferWindowRow // key: save:season
	draftResults    map[string][]*model.DraftResult     // key: save:season

	nextID uint64
}

// New returns an empty memory store.
func New() *Store {
	return &Store{
		saves:       make(map[string]*model.Save),
		regions:     make(map[uint64]*model.Region),
		teams:       make(map[uint64]*model.Team),
		players:     make(map[uint64]*model.Player),
		tournaments: make(map[uint64]*model.Tournament),
		matches:     make(map[uint64]*model.Match),
		games:       make(map[uint64]*model.MatchGame),
		standings:   make(map[string]*model.LeagueStanding),
		honors:      make(map[uint64]*model.Honor),
		points:      make(map[string]*model.AnnualPointsDetail),
		prizes:      make(map[uint64]*model.FinancialTransaction),
		formFactors: make(map[string]*model.PlayerFormFactors),
		seasonStats: make(map[string]*model.PlayerSeasonStatistics),
		tourneyStats: make(map[string]*model.PlayerTournamentStats),
		meta:        make(map[string]rng.MetaWeights),
		results:     make(map[string]*model.TournamentResult),
		transferWindows: make(map[string]*model.TransferWindowRow),
		draftResults:    make(map[string][]*model.DraftResult),
	}
}

func (s *Store) nextIDLocked() uint64 {
	s.nextID++
	return s.nextID
}

// WithTx runs fn against the same store: the memory store has no partial
// failure mode to roll back (every mutation is an in-memory map write), so
// WithTx is a pass-through that still gives callers one consistent place
// to reason about transaction boundaries.
func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	return fn(s)
}

func (s *Store) Saves() repository.SaveRepository                           { return (*saveRepo)(s) }
func (s *Store) Regions() repository.RegionRepository                       { return (*regionRepo)(s) }
func (s *Store) Teams() repository.TeamRepository                           { return (*teamRepo)(s) }
func (s *Store) Players() repository.PlayerRepository                       { return (*playerRepo)(s) }
func (s *Store) Tournaments() repository.TournamentRepository               { return (*tournamentRepo)(s) }
func (s *Store) Matches() repository.MatchRepository                        { return (*matchRepo)(s) }
func (s *Store) Standings() repository.StandingRepository                   { return (*standingRepo)(s) }
func (s *Store) Honors() repository.HonorRepository                         { return (*honorRepo)(s) }
func (s *Store) Points() repository.PointsRepository                        { return (*pointsRepo)(s) }
func (s *Store) Prizes() repository.PrizeRepository                         { return (*prizeRepo)(s) }
func (s *Store) FormFactors() repository.FormFactorRepository               { return (*formFactorRepo)(s) }
func (s *Store) SeasonStats() repository.SeasonStatsRepository              { return (*seasonStatsRepo)(s) }
func (s *Store) TournamentStats() repository.TournamentStatsRepository      { return (*tournamentStatsRepo)(s) }
func (s *Store) Meta() repository.MetaRepository                            { return (*metaRepo)(s) }
func (s *Store) Results() repository.TournamentResultRepository             { return (*resultRepo)(s) }
func (s *Store) Workflows() repository.WorkflowRepository                   { return (*workflowRepo)(s) }
