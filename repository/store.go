// Package repository defines the simulation core's persistence surface.
// One narrow, fail-fast interface per entity, with two implementations:
// repository/postgres (raw SQL over lib/pq) and repository/memory
// (maps + sync.RWMutex, used where no live database can be exercised).
package repository

import (
	"context"

	"esports-career-sim/model"
	"esports-career-sim/rng"
)

// Store is the aggregate persistence surface the simulation core depends
// on. Each sub-interface is narrow and entity-scoped: only the queries the engines actually issue.
type Store interface {
	Saves() SaveRepository
	Regions() RegionRepository
	Teams() TeamRepository
	Players() PlayerRepository
	Tournaments() TournamentRepository
	Matches() MatchRepository
	Standings() StandingRepository
	Honors() HonorRepository
	Points() PointsRepository
	Prizes() PrizeRepository
	FormFactors() FormFactorRepository
	SeasonStats() SeasonStatsRepository
	TournamentStats() TournamentStatsRepository
	Meta() MetaRepository
	Results() TournamentResultRepository
	Workflows() WorkflowRepository

	// WithTx runs fn within one transaction; the concrete store commits on
	// nil return and rolls back otherwise, per the transaction-discipline
	// requirement (match completion, phase completion, and season advance
	// are each exactly one transaction).
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

type SaveRepository interface {
	Create(ctx context.Context, s *model.Save) error
	Get(ctx context.Context, saveID string) (*model.Save, error)
	Update(ctx context.Context, s *model.Save) error
	Delete(ctx context.Context, saveID string) error
}

type RegionRepository interface {
	Create(ctx context.Context, r *model.Region) error
	ListBySave(ctx context.Context, saveID string) ([]*model.Region, error)
	Get(ctx context.Context, id uint64) (*model.Region, error)
}

type TeamRepository interface {
	Create(ctx context.Context, t *model.Team) error
	Get(ctx context.Context, id uint64) (*model.Team, error)
	Update(ctx context.Context, t *model.Team) error
	ListBySave(ctx context.Context, saveID string) ([]*model.Team, error)
	ListByRegion(ctx context.Context, regionID uint64) ([]*model.Team, error)
}

type PlayerRepository interface {
	Create(ctx context.Context, p *model.Player) error
	Get(ctx context.Context, id uint64) (*model.Player, error)
	Update(ctx context.Context, p *model.Player) error
	BatchUpdate(ctx context.Context, players []*model.Player) error
	ListByTeam(ctx context.Context, teamID uint64) ([]*model.Player, error)
	ListBySave(ctx context.Context, saveID string) ([]*model.Player, error)
	ListFreeAgentsBySave(ctx context.Context, saveID string) ([]*model.Player, error)
}

type TournamentRepository interface {
	Create(ctx context.Context, t *model.Tournament) error
	Get(ctx context.Context, id uint64) (*model.Tournament, error)
	Update(ctx context.Context, t *model.Tournament) error
	ListBySavePhase(ctx context.Context, saveID string, season uint32, tt model.TournamentType) ([]*model.Tournament, error)
	ListBySaveSeason(ctx context.Context, saveID string, season uint32) ([]*model.Tournament, error)
}

type MatchRepository interface {
	Create(ctx context.Context, m *model.Match) error
	BatchCreate(ctx context.Context, matches []*model.Match) error
	Get(ctx context.Context, id uint64) (*model.Match, error)
	Update(ctx context.Context, m *model.Match) error
	// ListPending returns Scheduled matches for a tournament, ordered by
	// (round, match_order, id), so replays drain in one canonical order.
	ListPending(ctx context.Context, tournamentID uint64) ([]*model.Match, error)
	ListByTournament(ctx context.Context, tournamentID uint64) ([]*model.Match, error)
	CreateGame(ctx context.Context, g *model.MatchGame) error
	CreatePerformances(ctx context.Context, perfs []*model.GamePlayerPerformance) error
	ListGames(ctx context.Context, matchID uint64) ([]*model.MatchGame, error)
}

type StandingRepository interface {
	Get(ctx context.Context, tournamentID, teamID uint64) (*model.LeagueStanding, error)
	Upsert(ctx context.Context, s *model.LeagueStanding) error
	ListByTournament(ctx context.Context, tournamentID uint64) ([]*model.LeagueStanding, error)
	// RecomputeRanks re-orders and re-assigns Rank on every standing of a
	// tournament by (points DESC, game_diff DESC, wins DESC).
	RecomputeRanks(ctx context.Context, tournamentID uint64) error
}

type HonorRepository interface {
	Create(ctx context.Context, h *model.Honor) error
	ExistsForTournament(ctx context.Context, saveID string, tournamentID uint64, ht model.HonorType) (bool, error)
	ExistsAnnualForSeason(ctx context.Context, saveID string, season uint32) (bool, error)
	ListBySaveSeason(ctx context.Context, saveID string, season uint32) ([]*model.Honor, error)
	DeleteBySeason(ctx context.Context, saveID string, season uint32) error
}

type PointsRepository interface {
	// Insert returns (inserted=false, nil) instead of an error when the
	// (save_id, season_id, team_id, tournament_id) key already exists:
	// a duplicate changes nothing.
	Insert(ctx context.Context, d *model.AnnualPointsDetail) (inserted bool, err error)
	ListBySaveSeason(ctx context.Context, saveID string, season uint32) ([]*model.AnnualPointsDetail, error)
	DeleteBySeason(ctx context.Context, saveID string, season uint32) error
}

type PrizeRepository interface {
	ExistsForTournament(ctx context.Context, saveID string, tournamentID uint64) (bool, error)
	Create(ctx context.Context, tx *model.FinancialTransaction) error
}

type FormFactorRepository interface {
	Get(ctx context.Context, saveID string, playerID uint64) (*model.PlayerFormFactors, error)
	ListBySave(ctx context.Context, saveID string) ([]*model.PlayerFormFactors, error)
	BatchUpsert(ctx context.Context, factors []*model.PlayerFormFactors) error
}

type SeasonStatsRepository interface {
	Get(ctx context.Context, saveID string, playerID uint64, season uint32) (*model.PlayerSeasonStatistics, error)
	ListBySaveSeason(ctx context.Context, saveID string, season uint32) ([]*model.PlayerSeasonStatistics, error)
	BatchUpsert(ctx context.Context, stats []*model.PlayerSeasonStatistics) error
}

type TournamentStatsRepository interface {
	Get(ctx context.Context, saveID string, tournamentID, playerID uint64) (*model.PlayerTournamentStats, error)
	ListByTournament(ctx context.Context, saveID string, tournamentID uint64) ([]*model.PlayerTournamentStats, error)
	BatchUpsert(ctx context.Context, stats []*model.PlayerTournamentStats) error
}

// MetaRepository persists the rolled MetaWeights per (save, season), per
// the meta-weights mechanism.
type MetaRepository interface {
	Get(ctx context.Context, saveID string, season uint32) (*rng.MetaWeights, error)
	Set(ctx context.Context, saveID string, w rng.MetaWeights) error
}

// TournamentResultRepository persists the per-tournament result row,
// the idempotency anchor re-derivation rejects duplicates against via the
// (save_id, tournament_id) unique key.
type TournamentResultRepository interface {
	Exists(ctx context.Context, saveID string, tournamentID uint64) (bool, error)
	Create(ctx context.Context, r *model.TournamentResult) error
	Get(ctx context.Context, saveID string, tournamentID uint64) (*model.TournamentResult, error)
}

// WorkflowRepository persists the TransferWindow/Draft external
// workflow markers non-tournament phases gate completion on.
type WorkflowRepository interface {
	CreateTransferWindow(ctx context.Context, w *model.TransferWindowRow) error
	GetTransferWindow(ctx context.Context, saveID string, season uint32) (*model.TransferWindowRow, error)
	CompleteTransferWindow(ctx context.Context, saveID string, season uint32) error

	CreateDraftResult(ctx context.Context, d *model.DraftResult) error
	ListDraftResults(ctx context.Context, saveID string, season uint32) ([]*model.DraftResult, error)
}
