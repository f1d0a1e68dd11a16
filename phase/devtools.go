package phase

import (
	"context"

	"esports-career-sim/awards"
	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
	"esports-career-sim/repository"
)

// DevTools exposes the `dev_*` data-repair operations: administrative
// escape hatches for a save that has drifted from its own invariants
// (after a crash mid-transaction, a manual database edit, or a bug fixed
// after the fact). Unlike Machine, DevTools does not take the per-save
// lock; these are expected to be run against a save that is not
// concurrently simulating.
type DevTools struct {
	store repository.Store
}

// NewDevTools wraps store for repair operations.
func NewDevTools(store repository.Store) *DevTools {
	return &DevTools{store: store}
}

// DevReport is the uniform (save_id, context) -> report shape every
// dev_* operation returns.
type DevReport struct {
	SaveID  string
	Context string
	Changed int
	Notes   []string
}

// ReassignHonors deletes and re-awards every season-scoped honor for
// season, recomputing from the persisted season stats the same way
// completeAnnualAwards does. It is a repair path for a save whose honors
// table fell out of sync with its stats (e.g. stats were hand-edited).
func (d *DevTools) ReassignHonors(ctx context.Context, saveID string, season uint32) (*DevReport, error) {
	existing, err := d.store.Honors().ListBySaveSeason(ctx, saveID, season)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list honors for reassignment", err)
	}
	if err := d.store.Honors().DeleteBySeason(ctx, saveID, season); err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "delete honors for reassignment", err)
	}
	for _, h := range existing {
		if h.HonorType.IsAnnual() {
			continue
		}
		if err := d.store.Honors().Create(ctx, h); err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "restore tournament honor", err)
		}
	}

	statsList, err := d.store.SeasonStats().ListBySaveSeason(ctx, saveID, season)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list season stats", err)
	}
	players, err := d.store.Players().ListBySave(ctx, saveID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list players", err)
	}
	playersByID := make(map[uint64]*model.Player, len(players))
	for _, p := range players {
		playersByID[p.ID] = p
	}

	honors, err := awards.AwardAnnualHonors(ctx, d.store, saveID, season, statsList, playersByID)
	if err != nil {
		return nil, err
	}
	return &DevReport{SaveID: saveID, Context: "reassign_honors", Changed: len(honors)}, nil
}

// RecalculateAnnualPoints resyncs every team's AnnualPoints field from the
// sum of its annual_points_detail ledger rows for season. The ledger is
// the source of truth; the team column is a denormalized cache that can
// drift if a write only touched one side.
func (d *DevTools) RecalculateAnnualPoints(ctx context.Context, saveID string, season uint32) (*DevReport, error) {
	details, err := d.store.Points().ListBySaveSeason(ctx, saveID, season)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list points details", err)
	}
	totals := make(map[uint64]uint32, len(details))
	for _, det := range details {
		totals[det.TeamID] += det.Points
	}

	teams, err := d.store.Teams().ListBySave(ctx, saveID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list teams", err)
	}
	changed := 0
	for _, t := range teams {
		want := totals[t.ID]
		if t.AnnualPoints == want {
			continue
		}
		t.AnnualPoints = want
		if err := d.store.Teams().Update(ctx, t); err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "update team annual points", err)
		}
		changed++
	}
	return &DevReport{SaveID: saveID, Context: "recalculate_annual_points", Changed: changed}, nil
}

// SyncPlayerGamesPlayed resyncs each player's season MatchesPlayed/
// GamesPlayed counters from the sum of their per-tournament stats rows
// for season, repairing drift between the two aggregate tables.
func (d *DevTools) SyncPlayerGamesPlayed(ctx context.Context, saveID string, season uint32) (*DevReport, error) {
	seasonStats, err := d.store.SeasonStats().ListBySaveSeason(ctx, saveID, season)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list season stats", err)
	}
	tournaments, err := d.store.Tournaments().ListBySaveSeason(ctx, saveID, season)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list tournaments", err)
	}

	gamesPlayed := make(map[uint64]int)
	matchesPlayed := make(map[uint64]int)
	for _, t := range tournaments {
		tstats, err := d.store.TournamentStats().ListByTournament(ctx, saveID, t.ID)
		if err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "list tournament stats", err)
		}
		for _, s := range tstats {
			if s.GamesPlayed == 0 {
				continue
			}
			gamesPlayed[s.PlayerID] += s.GamesPlayed
			matchesPlayed[s.PlayerID]++
		}
	}

	changed := 0
	for _, s := range seasonStats {
		want := gamesPlayed[s.PlayerID]
		wantMatches := matchesPlayed[s.PlayerID]
		if s.GamesPlayed == want && s.MatchesPlayed == wantMatches {
			continue
		}
		s.GamesPlayed = want
		s.MatchesPlayed = wantMatches
		changed++
	}
	if changed > 0 {
		if err := d.store.SeasonStats().BatchUpsert(ctx, seasonStats); err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "flush season stats", err)
		}
	}
	return &DevReport{SaveID: saveID, Context: "sync_player_games_played", Changed: changed}, nil
}

// RecalculateStandings recomputes every standing row's GameDiff from the
// raw counters already stored on each row and re-ranks the tournament,
// without rescanning match history: a light repair for denormalized-field
// drift rather than the full rebuild RecomputeStandingsFromMatches does.
// Team rows, including Team.WinRate, are not touched.
func (d *DevTools) RecalculateStandings(ctx context.Context, saveID string, tournamentID uint64) (*DevReport, error) {
	standings, err := d.store.Standings().ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list standings", err)
	}
	changed := 0
	for _, s := range standings {
		want := s.GamesWon - s.GamesLost
		if s.GameDiff != want {
			s.GameDiff = want
			if err := d.store.Standings().Upsert(ctx, s); err != nil {
				return nil, errors.Wrap(errors.PersistenceError, "upsert standing", err)
			}
			changed++
		}
	}
	if err := d.store.Standings().RecomputeRanks(ctx, tournamentID); err != nil {
		return nil, err
	}
	return &DevReport{SaveID: saveID, Context: "recalculate_standings", Changed: changed}, nil
}

// RecomputeStandingsFromMatches rebuilds every LeagueStanding row for
// tournamentID from scratch by rescanning its completed match history,
// the full-rebuild counterpart to RecalculateStandings, for a save whose
// standings table itself is corrupted rather than merely denormalized
// inconsistently.
func (d *DevTools) RecomputeStandingsFromMatches(ctx context.Context, saveID string, tournamentID uint64) (*DevReport, error) {
	matches, err := d.store.Matches().ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list matches", err)
	}

	rebuilt := make(map[uint64]*model.LeagueStanding)
	get := func(teamID uint64) *model.LeagueStanding {
		s, ok := rebuilt[teamID]
		if !ok {
			s = &model.LeagueStanding{TournamentID: tournamentID, TeamID: teamID}
			rebuilt[teamID] = s
		}
		return s
	}

	for _, match := range matches {
		if match.Status != model.MatchCompleted || match.WinnerID == nil {
			continue
		}
		home := get(match.HomeTeamID)
		away := get(match.AwayTeamID)
		homeWon := *match.WinnerID == match.HomeTeamID
		home.ApplyMatchResult(homeWon, match.HomeScore, match.AwayScore, match.Format)
		away.ApplyMatchResult(!homeWon, match.AwayScore, match.HomeScore, match.Format)
	}

	changed := 0
	for _, s := range rebuilt {
		s.GameDiff = s.GamesWon - s.GamesLost
		if err := d.store.Standings().Upsert(ctx, s); err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "upsert rebuilt standing", err)
		}
		changed++
	}
	if err := d.store.Standings().RecomputeRanks(ctx, tournamentID); err != nil {
		return nil, err
	}
	return &DevReport{SaveID: saveID, Context: "recompute_standings_from_matches", Changed: changed}, nil
}

// FixStarters ensures team has exactly one starter per roster position,
// preferring the highest-Ability player at that position among its
// current roster and benching every other player at that position.
func (d *DevTools) FixStarters(ctx context.Context, saveID string, teamID uint64) (*DevReport, error) {
	players, err := d.store.Players().ListByTeam(ctx, teamID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list team roster", err)
	}

	byPosition := make(map[model.Position][]*model.Player)
	for _, p := range players {
		if p.Position == nil {
			continue
		}
		byPosition[*p.Position] = append(byPosition[*p.Position], p)
	}

	changed := 0
	var toUpdate []*model.Player
	for _, pos := range model.AllPositions() {
		candidates := byPosition[pos]
		if len(candidates) == 0 {
			continue
		}
		best := candidates[0]
		for _, c := range candidates[1:] {
			if c.Ability > best.Ability {
				best = c
			}
		}
		for _, c := range candidates {
			want := c.ID == best.ID
			if c.IsStarter != want {
				c.IsStarter = want
				toUpdate = append(toUpdate, c)
				changed++
			}
		}
	}
	if len(toUpdate) > 0 {
		if err := d.store.Players().BatchUpdate(ctx, toUpdate); err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "update starters", err)
		}
	}
	return &DevReport{SaveID: saveID, Context: "fix_starters", Changed: changed}, nil
}

// ForceCompleteMatch marks a stuck Scheduled match Completed with a
// minimal valid result (the format's minimum winning score, 2-0 for Bo3,
// 1-0 for Bo1), for a match that the simulation engine can no longer
// resolve (e.g. after a roster became empty mid-season). It repairs the
// match record and folds the forced result into both teams' standing rows
// (re-ranking the tournament); it does not fold any game-level performance
// into player stats, leaving that recompute to SyncPlayerGamesPlayed.
func (d *DevTools) ForceCompleteMatch(ctx context.Context, saveID string, matchID uint64, winnerTeamID uint64) (*DevReport, error) {
	match, err := d.store.Matches().Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if winnerTeamID != match.HomeTeamID && winnerTeamID != match.AwayTeamID {
		return nil, errors.New(errors.ValidationFailed, "force_complete_match: winner is not a participant")
	}
	wins := match.Format.WinsRequired()
	if winnerTeamID == match.HomeTeamID {
		match.HomeScore = wins
		match.AwayScore = 0
	} else {
		match.HomeScore = 0
		match.AwayScore = wins
	}
	match.WinnerID = &winnerTeamID
	match.Status = model.MatchCompleted
	if err := d.store.Matches().Update(ctx, match); err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "update forced match", err)
	}
	if err := applyForcedStanding(ctx, d.store, match); err != nil {
		return nil, err
	}
	return &DevReport{SaveID: saveID, Context: "force_complete_match", Changed: 1}, nil
}

func applyForcedStanding(ctx context.Context, store repository.Store, match *model.Match) error {
	home, err := store.Standings().Get(ctx, match.TournamentID, match.HomeTeamID)
	if err != nil {
		if !errors.Is(err, errors.NotFound) {
			return err
		}
		home = &model.LeagueStanding{TournamentID: match.TournamentID, TeamID: match.HomeTeamID}
	}
	away, err := store.Standings().Get(ctx, match.TournamentID, match.AwayTeamID)
	if err != nil {
		if !errors.Is(err, errors.NotFound) {
			return err
		}
		away = &model.LeagueStanding{TournamentID: match.TournamentID, TeamID: match.AwayTeamID}
	}
	home.MatchesPlayed++
	away.MatchesPlayed++
	home.GamesWon += match.HomeScore
	home.GamesLost += match.AwayScore
	away.GamesWon += match.AwayScore
	away.GamesLost += match.HomeScore
	home.GameDiff = home.GamesWon - home.GamesLost
	away.GameDiff = away.GamesWon - away.GamesLost
	if *match.WinnerID == match.HomeTeamID {
		home.Wins++
		away.Losses++
		home.Points += 3
	} else {
		away.Wins++
		home.Losses++
		away.Points += 3
	}
	if err := store.Standings().Upsert(ctx, home); err != nil {
		return errors.Wrap(errors.PersistenceError, "upsert forced home standing", err)
	}
	if err := store.Standings().Upsert(ctx, away); err != nil {
		return errors.Wrap(errors.PersistenceError, "upsert forced away standing", err)
	}
	return store.Standings().RecomputeRanks(ctx, match.TournamentID)
}

// RecalculateMarketValues reruns the honor-weighted market-value formula
// over every player in the save for season, the same computation
// completeAnnualAwards runs inline, exposed standalone for a save whose
// player table was edited after awards already ran.
func (d *DevTools) RecalculateMarketValues(ctx context.Context, saveID string, season uint32) (*DevReport, error) {
	players, err := d.store.Players().ListBySave(ctx, saveID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list players", err)
	}
	honorWeights, err := awards.AccumulateHonorWeights(ctx, d.store, saveID, season)
	if err != nil {
		return nil, err
	}
	teams, err := d.store.Teams().ListBySave(ctx, saveID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list teams", err)
	}
	regions, err := d.store.Regions().ListBySave(ctx, saveID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list regions", err)
	}
	regionShortName := make(map[uint64]string, len(regions))
	for _, r := range regions {
		regionShortName[r.ID] = r.ShortName
	}
	regionShortNameByTeam := make(map[uint64]string, len(teams))
	for _, t := range teams {
		regionShortNameByTeam[t.ID] = regionShortName[t.RegionID]
	}

	awards.RecomputeMarketValues(players, honorWeights, regionShortNameByTeam)
	if err := d.store.Players().BatchUpdate(ctx, players); err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "update player market values", err)
	}
	return &DevReport{SaveID: saveID, Context: "recalculate_market_values", Changed: len(players)}, nil
}

// PurgeOrphanedTournaments finds the season's unfinished tournaments that
// recorded zero matches and whose phase has already advanced past them: a
// save whose InitializePhase ran but SimulateAllPhaseMatches never seeded a
// region's bracket before the save moved on. It lists their names in the
// report's Notes and counts them in Changed; it does not delete them.
func (d *DevTools) PurgeOrphanedTournaments(ctx context.Context, saveID string, currentSeason uint32, currentPhase model.SeasonPhase) (*DevReport, error) {
	tournaments, err := d.store.Tournaments().ListBySaveSeason(ctx, saveID, currentSeason)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list tournaments", err)
	}
	notes := make([]string, 0)
	changed := 0
	for _, t := range tournaments {
		if t.Status == model.TournamentCompleted {
			continue
		}
		if !phaseHasPassed(t, currentPhase) {
			continue
		}
		matches, err := d.store.Matches().ListByTournament(ctx, t.ID)
		if err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "list matches", err)
		}
		if len(matches) > 0 {
			continue
		}
		notes = append(notes, t.Name)
		changed++
	}
	return &DevReport{SaveID: saveID, Context: "purge_orphaned_tournaments", Changed: changed, Notes: notes}, nil
}

// phaseHasPassed reports whether a tournament belongs to a phase other than
// the save's current one (its type differs from the current phase's
// tournament type); it does not compare positions in model.SeasonPhase's
// ordering.
func phaseHasPassed(t *model.Tournament, currentPhase model.SeasonPhase) bool {
	return phaseTournamentType(currentPhase) != t.TournamentType
}
