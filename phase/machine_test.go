package phase

import (
	"context"
	"sort"
	"testing"

	"esports-career-sim/config"
	"esports-career-sim/model"
	"esports-career-sim/repository"
	"esports-career-sim/repository/memory"
)

func testConfig() *config.Config {
	return &config.Config{RandomSeed: 42, SafetyBound: 20}
}

// buildSeasonSave populates a fresh save the way the core expects to
// receive one: 4 regions, 8 teams each, five confirmed Active starters
// per team. Abilities are spread so match outcomes are not coin flips.
func buildSeasonSave(t *testing.T, store repository.Store, saveID string) {
	t.Helper()
	ctx := context.Background()

	if err := store.Saves().Create(ctx, &model.Save{
		ID:            saveID,
		Name:          "test save",
		CurrentSeason: 1,
		CurrentPhase:  model.SpringRegular,
	}); err != nil {
		t.Fatalf("create save: %v", err)
	}

	shortNames := []string{"LPL", "LCK", "LEC", "LCS"}
	for r, shortName := range shortNames {
		region := &model.Region{SaveID: saveID, Name: shortName, ShortName: shortName, TeamCount: 8}
		if err := store.Regions().Create(ctx, region); err != nil {
			t.Fatalf("create region: %v", err)
		}
		for i := 0; i < 8; i++ {
			team := &model.Team{
				SaveID:   saveID,
				RegionID: region.ID,
				Name:     shortName + " Team",
				ShortName: shortName,
			}
			if err := store.Teams().Create(ctx, team); err != nil {
				t.Fatalf("create team: %v", err)
			}
			ability := uint8(62 + (r*8+i)*4%30)
			for p, pos := range model.AllPositions() {
				teamID := team.ID
				position := pos
				player := &model.Player{
					SaveID:     saveID,
					GameID:     shortName + "-player",
					RealName:   "Player",
					Age:        uint8(19 + p),
					Ability:    ability,
					Potential:  ability + 3,
					Stability:  75,
					Tag:        model.NormalTag,
					Status:     model.Active,
					Position:   &position,
					TeamID:     &teamID,
					JoinSeason: 1,
					IsStarter:  true,
				}
				if err := store.Players().Create(ctx, player); err != nil {
					t.Fatalf("create player: %v", err)
				}
			}
		}
	}
}

func countSeasonMatches(t *testing.T, store repository.Store, saveID string, season uint32, tt model.TournamentType) int {
	t.Helper()
	ctx := context.Background()
	tournaments, err := store.Tournaments().ListBySavePhase(ctx, saveID, season, tt)
	if err != nil {
		t.Fatalf("list tournaments: %v", err)
	}
	total := 0
	for _, tr := range tournaments {
		matches, err := store.Matches().ListByTournament(ctx, tr.ID)
		if err != nil {
			t.Fatalf("list matches: %v", err)
		}
		total += len(matches)
	}
	return total
}

// TestInitializePhaseIsIdempotent pins the round-trip law: initializing
// the same phase twice is a no-op.
func TestInitializePhaseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	buildSeasonSave(t, store, "s-init")
	m := NewMachine(store, nil, testConfig())

	if err := m.InitializePhase(ctx, "s-init", model.SpringRegular); err != nil {
		t.Fatalf("first initialize: %v", err)
	}
	first := countSeasonMatches(t, store, "s-init", 1, model.TTSpringRegular)
	// 8 teams per region, double round-robin: 8*7 = 56 matches, 4 regions.
	if first != 4*56 {
		t.Fatalf("expected 224 spring regular matches across 4 regions, got %d", first)
	}

	if err := m.InitializePhase(ctx, "s-init", model.SpringRegular); err != nil {
		t.Fatalf("second initialize: %v", err)
	}
	if again := countSeasonMatches(t, store, "s-init", 1, model.TTSpringRegular); again != first {
		t.Fatalf("second initialize created matches: %d -> %d", first, again)
	}

	tournaments, _ := store.Tournaments().ListBySavePhase(ctx, "s-init", 1, model.TTSpringRegular)
	if len(tournaments) != 4 {
		t.Fatalf("expected one tournament per region, got %d", len(tournaments))
	}
}

// TestCompletePhaseIsIdempotent pins the law: completing the same phase
// twice produces no new honors and no new points-details.
func TestCompletePhaseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	buildSeasonSave(t, store, "s-complete")
	m := NewMachine(store, nil, testConfig())

	if err := m.InitializePhase(ctx, "s-complete", model.SpringRegular); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	simulated, failed, err := m.SimulateAllPhaseMatches(ctx, "s-complete", model.SpringRegular)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if failed != 0 || simulated != 4*56 {
		t.Fatalf("expected 224 simulated matches with 0 failures, got %d/%d", simulated, failed)
	}

	awarded, err := m.CompletePhase(ctx, "s-complete")
	if err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if len(awarded) == 0 {
		t.Fatalf("expected complete_phase to report the honors it awarded")
	}
	honors1, _ := store.Honors().ListBySaveSeason(ctx, "s-complete", 1)
	points1, _ := store.Points().ListBySaveSeason(ctx, "s-complete", 1)
	if len(honors1) == 0 {
		t.Fatalf("expected regular-season honors after complete_phase")
	}

	again, err := m.CompletePhase(ctx, "s-complete")
	if err != nil {
		t.Fatalf("second complete: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected idempotent re-complete to award nothing, got %d honors", len(again))
	}
	honors2, _ := store.Honors().ListBySaveSeason(ctx, "s-complete", 1)
	points2, _ := store.Points().ListBySaveSeason(ctx, "s-complete", 1)
	if len(honors2) != len(honors1) {
		t.Fatalf("second complete_phase added honors: %d -> %d", len(honors1), len(honors2))
	}
	if len(points2) != len(points1) {
		t.Fatalf("second complete_phase added points rows: %d -> %d", len(points1), len(points2))
	}
}

// TestFastForwardFullSeason runs a whole season end to end: a fully-populated
// 4-region save fast-forwarded from SpringRegular to SeasonEnd advances
// through all 14 phases within the safety bound, with the external
// transfer-window and draft markers supplied at their gates, and the
// resulting save holds its invariants.
func TestFastForwardFullSeason(t *testing.T) {
	if testing.Short() {
		t.Skip("full-season fast-forward is slow")
	}
	ctx := context.Background()
	store := memory.New()
	buildSeasonSave(t, store, "s-season")
	m := NewMachine(store, nil, testConfig())

	res, err := m.FastForwardTo(ctx, "s-season", model.TransferWindow, 1)
	if err != nil {
		t.Fatalf("fast-forward to TransferWindow: %v (reason %q)", err, res.Reason)
	}
	advanced := res.PhasesAdvanced
	simulated := res.MatchesSimulated
	if simulated == 0 {
		t.Fatalf("expected matches to be simulated on the way to TransferWindow")
	}

	// The transfer window completes externally; the core only observes it.
	if err := store.Workflows().CompleteTransferWindow(ctx, "s-season", 1); err != nil {
		t.Fatalf("complete transfer window: %v", err)
	}
	res, err = m.FastForwardTo(ctx, "s-season", model.Draft, 1)
	if err != nil {
		t.Fatalf("fast-forward to Draft: %v (reason %q)", err, res.Reason)
	}
	advanced += res.PhasesAdvanced

	regions, _ := store.Regions().ListBySave(ctx, "s-season")
	for _, region := range regions {
		if err := store.Workflows().CreateDraftResult(ctx, &model.DraftResult{
			SaveID: "s-season", SeasonID: 1, RegionID: region.ID,
		}); err != nil {
			t.Fatalf("create draft result: %v", err)
		}
	}
	res, err = m.FastForwardTo(ctx, "s-season", model.SeasonEnd, 1)
	if err != nil {
		t.Fatalf("fast-forward to SeasonEnd: %v (reason %q)", err, res.Reason)
	}
	advanced += res.PhasesAdvanced

	if advanced != 14 {
		t.Fatalf("expected 14 phases advanced across the season, got %d", advanced)
	}

	// Invariant 1: every completed match is internally consistent.
	tournaments, _ := store.Tournaments().ListBySaveSeason(ctx, "s-season", 1)
	if len(tournaments) == 0 {
		t.Fatalf("expected season tournaments to exist")
	}
	championHonorsByTournament := map[uint64]int{}
	honors, _ := store.Honors().ListBySaveSeason(ctx, "s-season", 1)
	for _, h := range honors {
		if h.HonorType == model.TeamChampion && h.TournamentID != nil {
			championHonorsByTournament[*h.TournamentID]++
		}
	}
	for _, tr := range tournaments {
		if tr.Status != model.TournamentCompleted {
			t.Fatalf("tournament %d (%s) not completed after full season", tr.ID, tr.TournamentType)
		}
		matches, _ := store.Matches().ListByTournament(ctx, tr.ID)
		for _, match := range matches {
			if !match.IsValidCompleted() {
				t.Fatalf("invalid completed match %d in %s: %d-%d winner %v",
					match.ID, tr.TournamentType, match.HomeScore, match.AwayScore, match.WinnerID)
			}
		}
		// Invariant 4: at most one champion honor per tournament.
		if n := championHonorsByTournament[tr.ID]; n > 1 {
			t.Fatalf("tournament %d has %d TeamChampion honors", tr.ID, n)
		}
	}

	// Invariant 2: team.annual_points matches its ledger sum.
	points, _ := store.Points().ListBySaveSeason(ctx, "s-season", 1)
	ledger := map[uint64]uint32{}
	for _, d := range points {
		ledger[d.TeamID] += d.Points
	}
	teams, _ := store.Teams().ListBySave(ctx, "s-season")
	for _, team := range teams {
		if team.AnnualPoints != ledger[team.ID] {
			t.Fatalf("team %d annual_points %d != ledger sum %d", team.ID, team.AnnualPoints, ledger[team.ID])
		}
	}

	// Every game contributes exactly ten tournament-stat entries (five
	// starters per side).
	for _, tr := range tournaments {
		matches, _ := store.Matches().ListByTournament(ctx, tr.ID)
		totalGames := 0
		for _, match := range matches {
			totalGames += match.HomeScore + match.AwayScore
		}
		tstats, _ := store.TournamentStats().ListByTournament(ctx, "s-season", tr.ID)
		sumGames := 0
		for _, s := range tstats {
			sumGames += s.GamesPlayed
		}
		if sumGames != 10*totalGames {
			t.Fatalf("tournament %d (%s): stat games sum %d != 10 x %d games",
				tr.ID, tr.TournamentType, sumGames, totalGames)
		}
	}

	// The annual-awards tallies for a save with 160 eligible starters.
	counts := map[model.HonorType]int{}
	for _, h := range honors {
		counts[h.HonorType]++
	}
	if counts[model.AnnualMvp] != 1 {
		t.Fatalf("expected exactly 1 AnnualMvp, got %d", counts[model.AnnualMvp])
	}
	if counts[model.AnnualTop20] != 20 {
		t.Fatalf("expected 20 AnnualTop20 honors, got %d", counts[model.AnnualTop20])
	}
	allPro := counts[model.AnnualAllPro1st] + counts[model.AnnualAllPro2nd] + counts[model.AnnualAllPro3rd]
	if allPro != 15 {
		t.Fatalf("expected 15 AllPro honors (3 tiers x 5 positions), got %d", allPro)
	}
	if counts[model.AnnualMostConsistent] != 1 || counts[model.AnnualMostDominant] != 1 {
		t.Fatalf("expected 1 MostConsistent and 1 MostDominant, got %d/%d",
			counts[model.AnnualMostConsistent], counts[model.AnnualMostDominant])
	}
	if counts[model.AnnualRookie] != 1 {
		t.Fatalf("expected exactly 1 AnnualRookie in an all-rookie first season, got %d", counts[model.AnnualRookie])
	}

	// Rolling into the new season resets the per-season state and seeds
	// the next spring split.
	if err := m.CompleteAndAdvance(ctx, "s-season"); err != nil {
		t.Fatalf("advance out of SeasonEnd: %v", err)
	}
	save, _ := store.Saves().Get(ctx, "s-season")
	if save.CurrentSeason != 2 || save.CurrentPhase != model.SpringRegular {
		t.Fatalf("expected season 2 SpringRegular, got season %d %s", save.CurrentSeason, save.CurrentPhase)
	}
	teams, _ = store.Teams().ListBySave(ctx, "s-season")
	for _, team := range teams {
		if team.AnnualPoints != 0 {
			t.Fatalf("team %d annual_points not reset on season advance: %d", team.ID, team.AnnualPoints)
		}
		roster, _ := store.Players().ListByTeam(ctx, team.ID)
		var sum float64
		starters := 0
		for _, p := range roster {
			if p.IsStarter {
				starters++
				sum += float64(p.Ability)
			}
		}
		if starters != 5 {
			t.Fatalf("team %d has %d starters after auto-confirm, want 5", team.ID, starters)
		}
		// Invariant 6: power rating tracks mean starter ability.
		mean := sum / 5
		if diff := team.PowerRating - mean; diff > 0.5 || diff < -0.5 {
			t.Fatalf("team %d power_rating %.2f != mean starter ability %.2f", team.ID, team.PowerRating, mean)
		}
	}
	factors, _ := store.FormFactors().ListBySave(ctx, "s-season")
	if len(factors) == 0 {
		t.Fatalf("expected form factors after a full season")
	}
	for _, f := range factors {
		if f.Momentum != 0 || f.GamesSinceRest != 0 || f.LastPerformance != 0 {
			t.Fatalf("form factors for player %d not reset on season advance: %+v", f.PlayerID, f)
		}
	}
	if n := countSeasonMatches(t, store, "s-season", 2, model.TTSpringRegular); n != 4*56 {
		t.Fatalf("expected season-2 spring regular to be auto-initialized with 224 matches, got %d", n)
	}
}

// TestFastForwardStopsAtOpenTransferWindow pins the failure model:
// advancing past TransferWindow before its external marker reads
// Completed fails with PhasePrecondition, leaving the save in place.
func TestFastForwardStopsAtOpenTransferWindow(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	if err := store.Saves().Create(ctx, &model.Save{
		ID: "s-window", CurrentSeason: 1, CurrentPhase: model.TransferWindow,
	}); err != nil {
		t.Fatalf("create save: %v", err)
	}
	m := NewMachine(store, nil, testConfig())
	if err := m.InitializePhase(ctx, "s-window", model.TransferWindow); err != nil {
		t.Fatalf("initialize transfer window: %v", err)
	}

	res, err := m.FastForwardTo(ctx, "s-window", model.SeasonEnd, 1)
	if err == nil {
		t.Fatalf("expected fast-forward through an open transfer window to fail")
	}
	if res.PhasesAdvanced != 0 {
		t.Fatalf("expected no phases advanced past the open window, got %d", res.PhasesAdvanced)
	}
	save, _ := store.Saves().Get(ctx, "s-window")
	if save.CurrentPhase != model.TransferWindow {
		t.Fatalf("save moved past TransferWindow to %s", save.CurrentPhase)
	}
}

// TestFastForwardDeterministicReplay pins the replay law: two saves
// built identically and driven with the same injected seed produce
// byte-identical match scores and winners.
func TestFastForwardDeterministicReplay(t *testing.T) {
	ctx := context.Background()

	run := func(saveID string) []model.Match {
		store := memory.New()
		buildSeasonSave(t, store, saveID)
		m := NewMachine(store, nil, testConfig())
		if _, err := m.FastForwardTo(ctx, saveID, model.Msi, 1); err != nil {
			t.Fatalf("fast-forward: %v", err)
		}
		var out []model.Match
		for _, tt := range []model.TournamentType{model.TTSpringRegular, model.TTSpringPlayoffs} {
			tournaments, _ := store.Tournaments().ListBySavePhase(ctx, saveID, 1, tt)
			sort.Slice(tournaments, func(i, j int) bool { return tournaments[i].ID < tournaments[j].ID })
			for _, tr := range tournaments {
				matches, _ := store.Matches().ListByTournament(ctx, tr.ID)
				for _, match := range matches {
					out = append(out, *match)
				}
			}
		}
		return out
	}

	a := run("s-replay")
	b := run("s-replay")
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("replay produced different match counts: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].HomeScore != b[i].HomeScore || a[i].AwayScore != b[i].AwayScore {
			t.Fatalf("replay diverged at match %d: %d-%d vs %d-%d",
				a[i].ID, a[i].HomeScore, a[i].AwayScore, b[i].HomeScore, b[i].AwayScore)
		}
		if (a[i].WinnerID == nil) != (b[i].WinnerID == nil) ||
			(a[i].WinnerID != nil && *a[i].WinnerID != *b[i].WinnerID) {
			t.Fatalf("replay diverged on winner at match %d", a[i].ID)
		}
	}
}

// TestSimulateNextMatchStepsOneMatch drives the single-step simulation
// path: exactly one pending match completes per call, with standings and
// stats flushed behind it.
func TestSimulateNextMatchStepsOneMatch(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	buildSeasonSave(t, store, "s-step")
	m := NewMachine(store, nil, testConfig())

	if err := m.InitializePhase(ctx, "s-step", model.SpringRegular); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	tournaments, _ := store.Tournaments().ListBySavePhase(ctx, "s-step", 1, model.TTSpringRegular)
	sort.Slice(tournaments, func(i, j int) bool { return tournaments[i].ID < tournaments[j].ID })
	tr := tournaments[0]

	before, _ := store.Matches().ListPending(ctx, tr.ID)
	match, err := m.SimulateNextMatch(ctx, "s-step", tr.ID)
	if err != nil {
		t.Fatalf("SimulateNextMatch: %v", err)
	}
	if !match.IsValidCompleted() {
		t.Fatalf("stepped match not validly completed: %+v", match)
	}
	after, _ := store.Matches().ListPending(ctx, tr.ID)
	if len(after) != len(before)-1 {
		t.Fatalf("expected exactly one match consumed, pending %d -> %d", len(before), len(after))
	}

	standing, err := store.Standings().Get(ctx, tr.ID, *match.WinnerID)
	if err != nil {
		t.Fatalf("get winner standing: %v", err)
	}
	if standing.Wins != 1 || standing.MatchesPlayed != 1 {
		t.Fatalf("winner standing not updated: %+v", standing)
	}
}
