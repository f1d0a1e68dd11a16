package db

const createSavesTable = `
CREATE TABLE IF NOT EXISTS saves (
    id TEXT PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    current_season INTEGER NOT NULL DEFAULT 1,
    current_phase VARCHAR(30) NOT NULL DEFAULT 'SpringRegular',
    phase_completed BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

const createRegionsTable = `
CREATE TABLE IF NOT EXISTS regions (
    id BIGSERIAL PRIMARY KEY,
    save_id TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
    name VARCHAR(100) NOT NULL,
    short_name VARCHAR(10) NOT NULL,
    team_count INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_regions_save ON regions(save_id);
`

const createTeamsTable = `
CREATE TABLE IF NOT EXISTS teams (
    id BIGSERIAL PRIMARY KEY,
    save_id TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
    region_id BIGINT NOT NULL REFERENCES regions(id) ON DELETE CASCADE,
    name VARCHAR(100) NOT NULL,
    short_name VARCHAR(10) NOT NULL,
    power_rating DOUBLE PRECISION NOT NULL DEFAULT 60,
    total_matches INTEGER NOT NULL DEFAULT 0,
    wins INTEGER NOT NULL DEFAULT 0,
    win_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
    annual_points INTEGER NOT NULL DEFAULT 0,
    cross_year_points INTEGER NOT NULL DEFAULT 0,
    balance BIGINT NOT NULL DEFAULT 0,
    brand_value DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_teams_save ON teams(save_id);
CREATE INDEX IF NOT EXISTS idx_teams_region ON teams(region_id);
`

const createPlayersTable = `
CREATE TABLE IF NOT EXISTS players (
    id BIGSERIAL PRIMARY KEY,
    save_id TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
    game_id VARCHAR(50) NOT NULL,
    real_name VARCHAR(100),
    nationality VARCHAR(50),
    age SMALLINT NOT NULL,
    ability SMALLINT NOT NULL,
    potential SMALLINT NOT NULL,
    stability SMALLINT NOT NULL,
    tag VARCHAR(20) NOT NULL,
    status VARCHAR(20) NOT NULL,
    position VARCHAR(10),
    team_id BIGINT REFERENCES teams(id) ON DELETE SET NULL,
    salary BIGINT NOT NULL DEFAULT 0,
    market_value BIGINT NOT NULL DEFAULT 0,
    calculated_market_value BIGINT NOT NULL DEFAULT 0,
    contract_end_season INTEGER,
    join_season INTEGER NOT NULL,
    retire_season INTEGER,
    is_starter BOOLEAN NOT NULL DEFAULT FALSE,
    international_titles INTEGER NOT NULL DEFAULT 0,
    regional_titles INTEGER NOT NULL DEFAULT 0,
    champion_bonus DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_players_save ON players(save_id);
CREATE INDEX IF NOT EXISTS idx_players_team ON players(team_id);
CREATE INDEX IF NOT EXISTS idx_players_status ON players(save_id, status);
`

const createTournamentsTable = `
CREATE TABLE IF NOT EXISTS tournaments (
    id BIGSERIAL PRIMARY KEY,
    save_id TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
    season_id INTEGER NOT NULL,
    tournament_type VARCHAR(30) NOT NULL,
    name VARCHAR(150) NOT NULL,
    region_id BIGINT REFERENCES regions(id) ON DELETE SET NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'Upcoming'
);

CREATE INDEX IF NOT EXISTS idx_tournaments_save_phase ON tournaments(save_id, season_id, tournament_type);
`

const createMatchesTable = `
CREATE TABLE IF NOT EXISTS matches (
    id BIGSERIAL PRIMARY KEY,
    save_id TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
    tournament_id BIGINT NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
    stage VARCHAR(30) NOT NULL,
    round INTEGER,
    match_order INTEGER,
    format VARCHAR(10) NOT NULL,
    home_team_id BIGINT NOT NULL REFERENCES teams(id),
    away_team_id BIGINT NOT NULL REFERENCES teams(id),
    home_score INTEGER NOT NULL DEFAULT 0,
    away_score INTEGER NOT NULL DEFAULT 0,
    winner_id BIGINT REFERENCES teams(id),
    status VARCHAR(20) NOT NULL DEFAULT 'Scheduled',
    played_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_matches_tournament ON matches(tournament_id);
CREATE INDEX IF NOT EXISTS idx_matches_pending ON matches(tournament_id, status);
`

const createMatchGamesTable = `
CREATE TABLE IF NOT EXISTS match_games (
    id BIGSERIAL PRIMARY KEY,
    match_id BIGINT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
    game_number INTEGER NOT NULL,
    winner_team_id BIGINT NOT NULL REFERENCES teams(id),
    loser_team_id BIGINT NOT NULL REFERENCES teams(id),
    duration_minutes INTEGER NOT NULL,
    mvp_player_id BIGINT REFERENCES players(id),
    home_power DOUBLE PRECISION NOT NULL,
    away_power DOUBLE PRECISION NOT NULL,
    synergy_bonus_home DOUBLE PRECISION NOT NULL DEFAULT 0,
    synergy_bonus_away DOUBLE PRECISION NOT NULL DEFAULT 0,
    meta_bonus_home DOUBLE PRECISION NOT NULL DEFAULT 0,
    meta_bonus_away DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_match_games_match ON match_games(match_id);
`

const createGamePlayerPerformancesTable = `
CREATE TABLE IF NOT EXISTS game_player_performances (
    id BIGSERIAL PRIMARY KEY,
    game_id BIGINT NOT NULL REFERENCES match_games(id) ON DELETE CASCADE,
    player_id BIGINT NOT NULL REFERENCES players(id),
    team_id BIGINT NOT NULL REFERENCES teams(id),
    position VARCHAR(10) NOT NULL,
    base_ability DOUBLE PRECISION NOT NULL,
    condition_bonus DOUBLE PRECISION NOT NULL,
    stability_noise DOUBLE PRECISION NOT NULL,
    actual_ability DOUBLE PRECISION NOT NULL,
    impact_score DOUBLE PRECISION NOT NULL,
    mvp_score DOUBLE PRECISION NOT NULL,
    is_mvp BOOLEAN NOT NULL DEFAULT FALSE,
    kills INTEGER NOT NULL DEFAULT 0,
    deaths INTEGER NOT NULL DEFAULT 0,
    assists INTEGER NOT NULL DEFAULT 0,
    cs INTEGER NOT NULL DEFAULT 0,
    gold INTEGER NOT NULL DEFAULT 0,
    damage_dealt INTEGER NOT NULL DEFAULT 0,
    damage_taken INTEGER NOT NULL DEFAULT 0,
    vision_score INTEGER NOT NULL DEFAULT 0,
    traits_json TEXT NOT NULL DEFAULT '[]',
    activated_traits_json TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_perfs_game ON game_player_performances(game_id);
CREATE INDEX IF NOT EXISTS idx_perfs_player ON game_player_performances(player_id);
`

const createLeagueStandingsTable = `
CREATE TABLE IF NOT EXISTS league_standings (
    tournament_id BIGINT NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
    team_id BIGINT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
    rank INTEGER,
    matches_played INTEGER NOT NULL DEFAULT 0,
    wins INTEGER NOT NULL DEFAULT 0,
    losses INTEGER NOT NULL DEFAULT 0,
    points INTEGER NOT NULL DEFAULT 0,
    games_won INTEGER NOT NULL DEFAULT 0,
    games_lost INTEGER NOT NULL DEFAULT 0,
    game_diff INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (tournament_id, team_id)
);
`

const createHonorsTable = `
CREATE TABLE IF NOT EXISTS honors (
    id BIGSERIAL PRIMARY KEY,
    save_id TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
    honor_type VARCHAR(30) NOT NULL,
    season_id INTEGER NOT NULL,
    tournament_id BIGINT REFERENCES tournaments(id) ON DELETE CASCADE,
    tournament_name VARCHAR(150),
    tournament_type VARCHAR(30),
    team_id BIGINT REFERENCES teams(id),
    team_name VARCHAR(100),
    player_id BIGINT REFERENCES players(id),
    player_name VARCHAR(100),
    position VARCHAR(10),
    stats_json TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_honors_save_season ON honors(save_id, season_id);
CREATE INDEX IF NOT EXISTS idx_honors_tournament ON honors(save_id, tournament_id, honor_type);
`

const createAnnualPointsDetailTable = `
CREATE TABLE IF NOT EXISTS annual_points_detail (
    id BIGSERIAL PRIMARY KEY,
    save_id TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
    season_id INTEGER NOT NULL,
    team_id BIGINT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
    tournament_id BIGINT NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
    points INTEGER NOT NULL,
    final_rank INTEGER,
    UNIQUE (save_id, season_id, team_id, tournament_id)
);
`

const createFinancialTransactionsTable = `
CREATE TABLE IF NOT EXISTS financial_transactions (
    id BIGSERIAL PRIMARY KEY,
    save_id TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
    team_id BIGINT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
    type VARCHAR(30) NOT NULL,
    amount BIGINT NOT NULL,
    description VARCHAR(255) NOT NULL,
    related_tournament_id BIGINT REFERENCES tournaments(id),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_financial_tx_tournament ON financial_transactions(save_id, related_tournament_id);
`

const createPlayerFormFactorsTable = `
CREATE TABLE IF NOT EXISTS player_form_factors (
    save_id TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
    player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
    form_cycle DOUBLE PRECISION NOT NULL DEFAULT 50,
    momentum SMALLINT NOT NULL DEFAULT 0,
    last_performance DOUBLE PRECISION NOT NULL DEFAULT 0,
    last_match_won BOOLEAN NOT NULL DEFAULT FALSE,
    games_since_rest INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (save_id, player_id)
);
`

const createPlayerSeasonStatisticsTable = `
CREATE TABLE IF NOT EXISTS player_season_statistics (
    save_id TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
    player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
    season_id INTEGER NOT NULL,
    matches_played INTEGER NOT NULL DEFAULT 0,
    games_played INTEGER NOT NULL DEFAULT 0,
    total_impact DOUBLE PRECISION NOT NULL DEFAULT 0,
    impact_sum_sq DOUBLE PRECISION NOT NULL DEFAULT 0,
    avg_impact DOUBLE PRECISION NOT NULL DEFAULT 0,
    avg_performance DOUBLE PRECISION NOT NULL DEFAULT 0,
    best_performance DOUBLE PRECISION NOT NULL DEFAULT 0,
    worst_performance DOUBLE PRECISION NOT NULL DEFAULT 0,
    consistency_score DOUBLE PRECISION NOT NULL DEFAULT 0,
    international_titles INTEGER NOT NULL DEFAULT 0,
    regional_titles INTEGER NOT NULL DEFAULT 0,
    champion_bonus DOUBLE PRECISION NOT NULL DEFAULT 0,
    yearly_top_score DOUBLE PRECISION NOT NULL DEFAULT 0,
    dominance_score DOUBLE PRECISION NOT NULL DEFAULT 0,
    region_id BIGINT REFERENCES regions(id),
    team_id BIGINT REFERENCES teams(id),
    position VARCHAR(10) NOT NULL,
    PRIMARY KEY (save_id, player_id, season_id)
);

CREATE INDEX IF NOT EXISTS idx_season_stats_save_season ON player_season_statistics(save_id, season_id);
`

const createPlayerTournamentStatsTable = `
CREATE TABLE IF NOT EXISTS player_tournament_stats (
    save_id TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
    tournament_id BIGINT NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
    player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
    games_played INTEGER NOT NULL DEFAULT 0,
    games_won INTEGER NOT NULL DEFAULT 0,
    avg_impact DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_impact DOUBLE PRECISION NOT NULL DEFAULT 0,
    max_impact DOUBLE PRECISION NOT NULL DEFAULT 0,
    avg_performance DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_performance DOUBLE PRECISION NOT NULL DEFAULT 0,
    best_performance DOUBLE PRECISION NOT NULL DEFAULT 0,
    game_mvp_count INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (save_id, tournament_id, player_id)
);
`

const createMetaWeightsTable = `
CREATE TABLE IF NOT EXISTS meta_weights (
    save_id TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
    season_id INTEGER NOT NULL,
    archetype_bonus JSONB NOT NULL,
    PRIMARY KEY (save_id, season_id)
);
`

const createTournamentResultsTable = `
CREATE TABLE IF NOT EXISTS tournament_results (
    save_id TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
    tournament_id BIGINT NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
    total_matches INTEGER NOT NULL,
    total_games INTEGER NOT NULL,
    final_match_id BIGINT REFERENCES matches(id),
    placements JSONB NOT NULL,
    PRIMARY KEY (save_id, tournament_id)
);
`

const createTransferWindowsTable = `
CREATE TABLE IF NOT EXISTS transfer_windows (
    id BIGSERIAL PRIMARY KEY,
    save_id TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
    season_id INTEGER NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'Pending',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (save_id, season_id)
);
`

const createDraftResultsTable = `
CREATE TABLE IF NOT EXISTS draft_results (
    id BIGSERIAL PRIMARY KEY,
    save_id TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
    season_id INTEGER NOT NULL,
    region_id BIGINT NOT NULL REFERENCES regions(id),
    player_ids BIGINT[] NOT NULL DEFAULT '{}',
    UNIQUE (save_id, season_id, region_id)
);
`
