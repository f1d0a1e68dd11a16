// Package db wires the simulation core's postgres connection and schema
// migrations.
package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Initialize opens and pings a postgres connection with conservative
// pool-size and lifetime defaults.
func Initialize(databaseURL string) (*sql.DB, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database.SetMaxOpenConns(25)
	database.SetMaxIdleConns(5)
	database.SetConnMaxLifetime(time.Hour)

	return database, nil
}

// RunMigrations applies every CREATE TABLE statement in migrations.go, in
// dependency order (saves first, its per-save children after).
func RunMigrations(database *sql.DB) error {
	migrations := []string{
		createSavesTable,
		createRegionsTable,
		createTeamsTable,
		createPlayersTable,
		createTournamentsTable,
		createMatchesTable,
		createMatchGamesTable,
		createGamePlayerPerformancesTable,
		createLeagueStandingsTable,
		createHonorsTable,
		createAnnualPointsDetailTable,
		createFinancialTransactionsTable,
		createPlayerFormFactorsTable,
		createPlayerSeasonStatisticsTable,
		createPlayerTournamentStatsTable,
		createMetaWeightsTable,
		createTournamentResultsTable,
		createTransferWindowsTable,
		createDraftResultsTable,
	}

	for _, migration := range migrations {
		if _, err := database.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
