package model

import "time"

// Honor is one append-only row in the honors ledger. Re-running an
// awarding routine must be idempotent at the tournament level (see package
// resolver). Honor itself carries no uniqueness enforcement; that lives
// in the repository layer's existence checks.
type Honor struct {
	ID             uint64
	SaveID         string
	HonorType      HonorType
	SeasonID       uint32
	TournamentID   *uint64
	TournamentName string
	TournamentType *TournamentType
	TeamID         *uint64
	TeamName       string
	PlayerID       *uint64
	PlayerName     string
	Position       *Position
	StatsJSON      string
	CreatedAt      time.Time
}

// AnnualPointsDetail is one ledger row crediting a team's annual points
// for one tournament. Unique per (save_id, season_id, team_id,
// tournament_id); this tuple is the resolver's idempotency key.
type AnnualPointsDetail struct {
	ID           uint64
	SaveID       string
	SeasonID     uint32
	TeamID       uint64
	TournamentID uint64
	Points       uint32
	FinalRank    *int
}

// FinancialTransactionType distinguishes regional prize money from global
// (international) prize money.
type FinancialTransactionType string

const (
	PlayoffBonus        FinancialTransactionType = "PlayoffBonus"
	InternationalBonus  FinancialTransactionType = "InternationalBonus"
)

// FinancialTransaction is one append-only row crediting (or, in principle,
// debiting) a team's balance.
type FinancialTransaction struct {
	ID                  uint64
	SaveID              string
	TeamID              uint64
	Type                FinancialTransactionType
	Amount              int64
	Description         string
	RelatedTournamentID *uint64
	CreatedAt           time.Time
}

// TournamentResult is persisted once per tournament and anchors the
// honor/points/prize awarding idempotency checks.
type TournamentResult struct {
	SaveID        string
	TournamentID  uint64
	TotalMatches  int
	TotalGames    int
	FinalMatchID  *uint64
	Placements    []Placement
}
