package phase

import (
	"context"
	"math/rand"
	"sort"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
	"esports-career-sim/pkg/logger"
	"esports-career-sim/rng"
	"esports-career-sim/simulation"
)

// regularSeasonTournamentTypes mirrors resolver's own regular-season set:
// round-robin standings tournaments get IsPlayoff=false in the simulation
// engine's condition model, everything bracket-shaped gets true.
var regularSeasonTournamentTypes = map[model.TournamentType]bool{
	model.TTSpringRegular:   true,
	model.TTSummerRegular:   true,
	model.TTRegionalRegular: true,
}

// SimulateAllPhaseMatches simulates every pending match across the current
// phase's tournaments, advancing each tournament's bracket as rounds clear
// and flushing accumulated season stats and form factors once at the end.
func (m *Machine) SimulateAllPhaseMatches(ctx context.Context, saveID string, p model.SeasonPhase) (simulated, failed int, err error) {
	err = m.withSaveLock(ctx, saveID, func() error {
		save, lerr := m.loadSave(ctx, saveID)
		if lerr != nil {
			return lerr
		}
		if save.CurrentPhase != p {
			return errors.New(errors.PhasePrecondition, "simulate_all_phase_matches called for a phase the save is not currently in")
		}
		if !p.IsTournamentPhase() {
			return errors.New(errors.ValidationFailed, "simulate_all_phase_matches: phase has no matches to simulate")
		}

		tournaments, terr := m.store.Tournaments().ListBySavePhase(ctx, saveID, save.CurrentSeason, phaseTournamentType(p))
		if terr != nil {
			return errors.Wrap(errors.PersistenceError, "list tournaments for phase", terr)
		}
		if len(tournaments) == 0 {
			return errors.New(errors.PhasePrecondition, "simulate_all_phase_matches: phase has not been initialized")
		}
		sort.Slice(tournaments, func(i, j int) bool { return tournaments[i].ID < tournaments[j].ID })

		meta, merr := m.loadOrRollMeta(ctx, saveID, save.CurrentSeason)
		if merr != nil {
			return merr
		}

		seasonStats, sserr := m.loadSeasonStats(ctx, saveID, save.CurrentSeason)
		if sserr != nil {
			return sserr
		}

		ffList, fferr := m.store.FormFactors().ListBySave(ctx, saveID)
		if fferr != nil {
			return errors.Wrap(errors.PersistenceError, "list form factors", fferr)
		}
		formFactors := make(map[uint64]*model.PlayerFormFactors, len(ffList))
		for _, f := range ffList {
			formFactors[f.PlayerID] = f
		}

		r := rng.New(saveID, save.CurrentSeason, m.cfg.RandomSeed)

		for _, t := range tournaments {
			n, f, serr := m.simulateTournament(ctx, r, saveID, save.CurrentSeason, t, meta, seasonStats, formFactors)
			simulated += n
			failed += f
			if serr != nil {
				return serr
			}
		}

		for _, s := range seasonStats {
			s.SaveID = saveID
			s.SeasonID = save.CurrentSeason
		}
		if len(seasonStats) > 0 {
			flat := make([]*model.PlayerSeasonStatistics, 0, len(seasonStats))
			for _, s := range seasonStats {
				flat = append(flat, s)
			}
			if err := m.store.SeasonStats().BatchUpsert(ctx, flat); err != nil {
				return errors.Wrap(errors.PersistenceError, "flush season stats", err)
			}
		}
		for _, f := range formFactors {
			f.SaveID = saveID
		}
		if len(formFactors) > 0 {
			flat := make([]*model.PlayerFormFactors, 0, len(formFactors))
			for _, f := range formFactors {
				flat = append(flat, f)
			}
			if err := m.store.FormFactors().BatchUpsert(ctx, flat); err != nil {
				return errors.Wrap(errors.PersistenceError, "flush form factors", err)
			}
		}
		return nil
	})
	return simulated, failed, err
}

func (m *Machine) loadOrRollMeta(ctx context.Context, saveID string, season uint32) (rng.MetaWeights, error) {
	w, err := m.store.Meta().Get(ctx, saveID, season)
	if err == nil {
		return *w, nil
	}
	if !errors.Is(err, errors.NotFound) {
		return rng.MetaWeights{}, errors.Wrap(errors.PersistenceError, "get meta weights", err)
	}
	rolled := rng.RollNewMeta(saveID, season, m.cfg.RandomSeed)
	if err := m.store.Meta().Set(ctx, saveID, rolled); err != nil {
		return rng.MetaWeights{}, errors.Wrap(errors.PersistenceError, "set meta weights", err)
	}
	return rolled, nil
}

func (m *Machine) loadSeasonStats(ctx context.Context, saveID string, season uint32) (map[uint64]*model.PlayerSeasonStatistics, error) {
	list, err := m.store.SeasonStats().ListBySaveSeason(ctx, saveID, season)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list season stats", err)
	}
	out := make(map[uint64]*model.PlayerSeasonStatistics, len(list))
	for _, s := range list {
		out[s.PlayerID] = s
	}
	return out, nil
}

func (m *Machine) loadTournamentStats(ctx context.Context, saveID string, tournamentID uint64) (map[uint64]*model.PlayerTournamentStats, error) {
	list, err := m.store.TournamentStats().ListByTournament(ctx, saveID, tournamentID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list tournament stats", err)
	}
	out := make(map[uint64]*model.PlayerTournamentStats, len(list))
	for _, s := range list {
		out[s.PlayerID] = s
	}
	return out, nil
}

// simulateTournament simulates every pending match for one tournament,
// draining rounds as the bracket advances, until bracketAdvance reports
// nothing new to seed.
func (m *Machine) simulateTournament(ctx context.Context, r *rand.Rand, saveID string, season uint32, t *model.Tournament, meta rng.MetaWeights, seasonStats map[uint64]*model.PlayerSeasonStatistics, formFactors map[uint64]*model.PlayerFormFactors) (simulated, failed int, err error) {
	tournamentStats, err := m.loadTournamentStats(ctx, saveID, t.ID)
	if err != nil {
		return 0, 0, err
	}

	for {
		if cerr := ctx.Err(); cerr != nil {
			return simulated, failed, cerr
		}
		pending, perr := m.store.Matches().ListPending(ctx, t.ID)
		if perr != nil {
			return simulated, failed, errors.Wrap(errors.PersistenceError, "list pending matches", perr)
		}
		if len(pending) == 0 {
			all, aerr := m.store.Matches().ListByTournament(ctx, t.ID)
			if aerr != nil {
				return simulated, failed, errors.Wrap(errors.PersistenceError, "list tournament matches", aerr)
			}
			next, berr := m.bracketAdvance(ctx, saveID, t, all)
			if berr != nil {
				return simulated, failed, berr
			}
			if len(next) == 0 {
				break
			}
			if err := m.batchCreateMatches(ctx, next); err != nil {
				return simulated, failed, err
			}
			continue
		}

		for _, match := range pending {
			if cerr := ctx.Err(); cerr != nil {
				return simulated, failed, cerr
			}
			if err := m.simulateOneMatch(ctx, r, season, t, match, meta, seasonStats, tournamentStats, formFactors); err != nil {
				failed++
				logger.Error("match simulation failed", logger.Fields{
					"save_id": saveID, "tournament_id": t.ID, "match_id": match.ID, "error": err.Error(),
				})
				continue
			}
			simulated++
		}
	}

	for _, s := range tournamentStats {
		s.SaveID = saveID
		s.TournamentID = t.ID
	}
	if len(tournamentStats) > 0 {
		flat := make([]*model.PlayerTournamentStats, 0, len(tournamentStats))
		for _, s := range tournamentStats {
			flat = append(flat, s)
		}
		if err := m.store.TournamentStats().BatchUpsert(ctx, flat); err != nil {
			return simulated, failed, errors.Wrap(errors.PersistenceError, "flush tournament stats", err)
		}
	}
	if err := m.store.Standings().RecomputeRanks(ctx, t.ID); err != nil {
		return simulated, failed, errors.Wrap(errors.PersistenceError, "recompute standings ranks", err)
	}
	return simulated, failed, nil
}

func (m *Machine) simulateOneMatch(ctx context.Context, r *rand.Rand, season uint32, t *model.Tournament, match *model.Match, meta rng.MetaWeights, seasonStats map[uint64]*model.PlayerSeasonStatistics, tournamentStats map[uint64]*model.PlayerTournamentStats, formFactors map[uint64]*model.PlayerFormFactors) error {
	home, err := m.buildRoster(ctx, match.HomeTeamID, formFactors)
	if err != nil {
		return err
	}
	away, err := m.buildRoster(ctx, match.AwayTeamID, formFactors)
	if err != nil {
		return err
	}
	if len(home) == 0 || len(away) == 0 {
		return errors.New(errors.InvariantViolation, "match has a side with no eligible starters")
	}

	result := simulation.SimulateMatch(r, simulation.MatchInput{
		Match:          match,
		Home:           home,
		Away:           away,
		Meta:           meta,
		TournamentType: t.TournamentType,
		IsPlayoff:      !regularSeasonTournamentTypes[t.TournamentType],
		CurrentSeason:  season,
	})

	if err := m.store.Matches().Update(ctx, result.Match); err != nil {
		return errors.Wrap(errors.PersistenceError, "update match", err)
	}
	// CreateGame assigns each game its persisted id; carry it over to that
	// game's performances, which still hold the local game number.
	perfsByGame := map[uint64][]*model.GamePlayerPerformance{}
	for _, p := range result.Perfs {
		perfsByGame[p.GameID] = append(perfsByGame[p.GameID], p)
	}
	for _, g := range result.Games {
		localID := g.ID
		g.ID = 0
		if err := m.store.Matches().CreateGame(ctx, g); err != nil {
			return errors.Wrap(errors.PersistenceError, "create match game", err)
		}
		for _, p := range perfsByGame[localID] {
			p.GameID = g.ID
		}
	}
	if err := m.store.Matches().CreatePerformances(ctx, result.Perfs); err != nil {
		return errors.Wrap(errors.PersistenceError, "create game performances", err)
	}

	var homePerfs, awayPerfs []*model.GamePlayerPerformance
	for _, perf := range result.Perfs {
		if perf.TeamID == match.HomeTeamID {
			homePerfs = append(homePerfs, perf)
		} else {
			awayPerfs = append(awayPerfs, perf)
		}
	}

	simulation.ApplySeasonStats(result.Perfs, seasonStats)
	simulation.ApplyTournamentStats(result.Perfs, result.Games, tournamentStats)
	simulation.ApplyFormFactors(result.Match, homePerfs, awayPerfs, formFactors)

	return m.applyStandingsIfPresent(ctx, result.Match)
}

func (m *Machine) applyStandingsIfPresent(ctx context.Context, match *model.Match) error {
	home, err := m.store.Standings().Get(ctx, match.TournamentID, match.HomeTeamID)
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil
		}
		return errors.Wrap(errors.PersistenceError, "get home standing", err)
	}
	away, err := m.store.Standings().Get(ctx, match.TournamentID, match.AwayTeamID)
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil
		}
		return errors.Wrap(errors.PersistenceError, "get away standing", err)
	}
	simulation.ApplyStandings(match, home, away)
	if err := m.store.Standings().Upsert(ctx, home); err != nil {
		return errors.Wrap(errors.PersistenceError, "update home standing", err)
	}
	if err := m.store.Standings().Upsert(ctx, away); err != nil {
		return errors.Wrap(errors.PersistenceError, "update away standing", err)
	}
	return nil
}

// buildRoster returns a team's starting five as simulation roster entries,
// one per position. A player absent from formFactors gets a nil entry so
// the simulation engine's nil-safe defaults apply; ApplyFormFactors
// creates the persisted record the first time that player finishes a
// match. A position with no confirmed Active starter is healed from the
// bench per the bench-fill recovery rule (highest-ability Active
// non-starter of any position) instead of fielding fewer than five
// players; a position left entirely without an eligible player is logged
// and skipped rather than failing the match.
func (m *Machine) buildRoster(ctx context.Context, teamID uint64, formFactors map[uint64]*model.PlayerFormFactors) ([]simulation.RosterEntry, error) {
	players, err := m.store.Players().ListByTeam(ctx, teamID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list team roster", err)
	}

	starterByPosition := make(map[model.Position]*model.Player, 5)
	used := make(map[uint64]bool, len(players))
	for _, p := range players {
		if p.Status == model.Active && p.IsStarter && p.Position != nil {
			starterByPosition[*p.Position] = p
			used[p.ID] = true
		}
	}

	var roster []simulation.RosterEntry
	for _, pos := range model.AllPositions() {
		starter := starterByPosition[pos]
		if starter == nil {
			starter = bestAvailableBenchPlayer(players, used)
			if starter == nil {
				logger.Warn("team has no eligible player for position", logger.Fields{
					"team_id": teamID, "position": pos.String(),
				})
				continue
			}
			used[starter.ID] = true
			logger.Warn("filled missing starter slot from bench", logger.Fields{
				"team_id": teamID, "position": pos.String(), "player_id": starter.ID,
			})
		}
		roster = append(roster, simulation.RosterEntry{
			Player:      starter,
			Position:    pos,
			FormFactors: formFactors[starter.ID],
		})
	}
	return roster, nil
}

// bestAvailableBenchPlayer returns the highest-ability Active player not
// already placed in this match's roster, regardless of their own listed
// position, per the bench-fill rule for a team caught with fewer than
// five confirmed starters.
func bestAvailableBenchPlayer(players []*model.Player, used map[uint64]bool) *model.Player {
	var best *model.Player
	for _, p := range players {
		if p.Status != model.Active || used[p.ID] {
			continue
		}
		if best == nil || p.Ability > best.Ability {
			best = p
		}
	}
	return best
}

// SimulateNextMatch simulates exactly one pending match of a tournament,
// the single-step counterpart to SimulateAllPhaseMatches. If the tournament has no pending match
// but its bracket can advance, the next round is seeded first. Each match
// draws from a seed folded with its match id, so stepping through a
// tournament one match at a time stays reproducible without replaying one
// shared stream from the start on every call.
func (m *Machine) SimulateNextMatch(ctx context.Context, saveID string, tournamentID uint64) (*model.Match, error) {
	var out *model.Match
	err := m.withSaveLock(ctx, saveID, func() error {
		save, err := m.loadSave(ctx, saveID)
		if err != nil {
			return err
		}
		t, terr := m.store.Tournaments().Get(ctx, tournamentID)
		if terr != nil {
			return errors.Wrap(errors.NotFound, "load tournament", terr)
		}
		if t.SaveID != saveID {
			return errors.New(errors.ValidationFailed, "simulate_next_match: tournament belongs to a different save")
		}

		pending, perr := m.store.Matches().ListPending(ctx, t.ID)
		if perr != nil {
			return errors.Wrap(errors.PersistenceError, "list pending matches", perr)
		}
		if len(pending) == 0 {
			all, aerr := m.store.Matches().ListByTournament(ctx, t.ID)
			if aerr != nil {
				return errors.Wrap(errors.PersistenceError, "list tournament matches", aerr)
			}
			next, berr := m.bracketAdvance(ctx, saveID, t, all)
			if berr != nil {
				return berr
			}
			if len(next) == 0 {
				return errors.New(errors.PhasePrecondition, "simulate_next_match: tournament has no pending matches")
			}
			if err := m.batchCreateMatches(ctx, next); err != nil {
				return err
			}
			pending, perr = m.store.Matches().ListPending(ctx, t.ID)
			if perr != nil {
				return errors.Wrap(errors.PersistenceError, "list pending matches", perr)
			}
		}
		match := pending[0]

		meta, merr := m.loadOrRollMeta(ctx, saveID, save.CurrentSeason)
		if merr != nil {
			return merr
		}
		seasonStats, sserr := m.loadSeasonStats(ctx, saveID, save.CurrentSeason)
		if sserr != nil {
			return sserr
		}
		tournamentStats, tserr := m.loadTournamentStats(ctx, saveID, t.ID)
		if tserr != nil {
			return tserr
		}
		ffList, fferr := m.store.FormFactors().ListBySave(ctx, saveID)
		if fferr != nil {
			return errors.Wrap(errors.PersistenceError, "list form factors", fferr)
		}
		formFactors := make(map[uint64]*model.PlayerFormFactors, len(ffList))
		for _, f := range ffList {
			formFactors[f.PlayerID] = f
		}

		seed := rng.DeriveSeed(saveID, save.CurrentSeason)
		if m.cfg.RandomSeed != 0 {
			seed = m.cfg.RandomSeed
		}
		r := rand.New(rand.NewSource(seed ^ int64(match.ID)))

		if err := m.simulateOneMatch(ctx, r, save.CurrentSeason, t, match, meta, seasonStats, tournamentStats, formFactors); err != nil {
			return err
		}

		if err := m.flushMatchState(ctx, saveID, t.ID, save.CurrentSeason, seasonStats, tournamentStats, formFactors); err != nil {
			return err
		}
		out = match
		return nil
	})
	return out, err
}

// flushMatchState writes back the in-memory stat and form-factor maps and
// recomputes the tournament's standings ranks, shared by the single-match
// path (per call) and kept alongside the phase-wide loop's own inline
// flushes.
func (m *Machine) flushMatchState(ctx context.Context, saveID string, tournamentID uint64, season uint32, seasonStats map[uint64]*model.PlayerSeasonStatistics, tournamentStats map[uint64]*model.PlayerTournamentStats, formFactors map[uint64]*model.PlayerFormFactors) error {
	if len(seasonStats) > 0 {
		flat := make([]*model.PlayerSeasonStatistics, 0, len(seasonStats))
		for _, s := range seasonStats {
			s.SaveID = saveID
			s.SeasonID = season
			flat = append(flat, s)
		}
		if err := m.store.SeasonStats().BatchUpsert(ctx, flat); err != nil {
			return errors.Wrap(errors.PersistenceError, "flush season stats", err)
		}
	}
	if len(tournamentStats) > 0 {
		flat := make([]*model.PlayerTournamentStats, 0, len(tournamentStats))
		for _, s := range tournamentStats {
			s.SaveID = saveID
			s.TournamentID = tournamentID
			flat = append(flat, s)
		}
		if err := m.store.TournamentStats().BatchUpsert(ctx, flat); err != nil {
			return errors.Wrap(errors.PersistenceError, "flush tournament stats", err)
		}
	}
	if len(formFactors) > 0 {
		flat := make([]*model.PlayerFormFactors, 0, len(formFactors))
		for _, f := range formFactors {
			f.SaveID = saveID
			flat = append(flat, f)
		}
		if err := m.store.FormFactors().BatchUpsert(ctx, flat); err != nil {
			return errors.Wrap(errors.PersistenceError, "flush form factors", err)
		}
	}
	return m.store.Standings().RecomputeRanks(ctx, tournamentID)
}
