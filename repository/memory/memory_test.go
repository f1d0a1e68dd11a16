package memory

import (
	"context"
	"testing"

	"esports-career-sim/model"
)

func TestPointsInsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := New()

	d := &model.AnnualPointsDetail{SaveID: "s1", SeasonID: 1, TeamID: 1, TournamentID: 1, Points: 100}
	inserted, err := st.Points().Insert(ctx, d)
	if err != nil || !inserted {
		t.Fatalf("first insert should succeed: inserted=%v err=%v", inserted, err)
	}

	dup := &model.AnnualPointsDetail{SaveID: "s1", SeasonID: 1, TeamID: 1, TournamentID: 1, Points: 999}
	inserted, err = st.Points().Insert(ctx, dup)
	if err != nil {
		t.Fatalf("duplicate insert should not error: %v", err)
	}
	if inserted {
		t.Fatalf("duplicate insert must be rejected (idempotency key save/season/team/tournament)")
	}

	rows, _ := st.Points().ListBySaveSeason(ctx, "s1", 1)
	if len(rows) != 1 || rows[0].Points != 100 {
		t.Fatalf("expected exactly one row with the original points value, got %+v", rows)
	}
}

// TestTeamAnnualPointsMatchesLedgerSum verifies a team's annual_points
// equals the sum of its points-detail ledger rows.
func TestTeamAnnualPointsMatchesLedgerSum(t *testing.T) {
	ctx := context.Background()
	st := New()

	team := &model.Team{SaveID: "s1"}
	_ = st.Teams().Create(ctx, team)

	entries := []uint32{100, 50, 25}
	var total uint32
	for i, pts := range entries {
		d := &model.AnnualPointsDetail{SaveID: "s1", SeasonID: 1, TeamID: team.ID, TournamentID: uint64(i + 1), Points: pts}
		if _, err := st.Points().Insert(ctx, d); err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
		total += pts
	}

	rows, _ := st.Points().ListBySaveSeason(ctx, "s1", 1)
	var sum uint32
	for _, r := range rows {
		if r.TeamID == team.ID {
			sum += r.Points
		}
	}
	if sum != total {
		t.Fatalf("ledger sum %d does not match expected %d", sum, total)
	}
}

// TestAtMostOnePointsRowPerTournament verifies the one-ledger-row-per-tournament rule.
func TestAtMostOnePointsRowPerTournament(t *testing.T) {
	ctx := context.Background()
	st := New()

	d1 := &model.AnnualPointsDetail{SaveID: "s1", SeasonID: 1, TeamID: 1, TournamentID: 1, Points: 10}
	d2 := &model.AnnualPointsDetail{SaveID: "s1", SeasonID: 1, TeamID: 1, TournamentID: 1, Points: 20}

	if _, err := st.Points().Insert(ctx, d1); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Points().Insert(ctx, d2); err != nil {
		t.Fatal(err)
	}

	rows, _ := st.Points().ListBySaveSeason(ctx, "s1", 1)
	count := 0
	for _, r := range rows {
		if r.TeamID == 1 && r.TournamentID == 1 {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected at most one points-detail row per (save, tournament, team), got %d", count)
	}
}

// TestStandingInvariants verifies the standings counters stay mutually consistent.
func TestStandingInvariants(t *testing.T) {
	s := &model.LeagueStanding{TournamentID: 1, TeamID: 1}
	s.ApplyMatchResult(true, 2, 0, model.Bo3)  // sweep win
	s.ApplyMatchResult(true, 2, 1, model.Bo3)  // split win
	s.ApplyMatchResult(false, 1, 2, model.Bo3) // split loss

	if s.MatchesPlayed != s.Wins+s.Losses {
		t.Fatalf("matches_played (%d) != wins+losses (%d)", s.MatchesPlayed, s.Wins+s.Losses)
	}
	if s.GameDiff != s.GamesWon-s.GamesLost {
		t.Fatalf("game_diff (%d) != games_won-games_lost (%d)", s.GameDiff, s.GamesWon-s.GamesLost)
	}
	wantPoints := 3 + 2 + 1
	if s.Points != wantPoints {
		t.Fatalf("points = %d, want %d (1 sweep + 1 split-win + 1 split-loss)", s.Points, wantPoints)
	}
}

func TestRecomputeRanksOrdering(t *testing.T) {
	ctx := context.Background()
	st := New()

	_ = st.Standings().Upsert(ctx, &model.LeagueStanding{TournamentID: 1, TeamID: 1, Points: 10, GameDiff: 2, Wins: 3})
	_ = st.Standings().Upsert(ctx, &model.LeagueStanding{TournamentID: 1, TeamID: 2, Points: 12, GameDiff: 1, Wins: 4})
	_ = st.Standings().Upsert(ctx, &model.LeagueStanding{TournamentID: 1, TeamID: 3, Points: 10, GameDiff: 3, Wins: 2})

	if err := st.Standings().RecomputeRanks(ctx, 1); err != nil {
		t.Fatal(err)
	}

	rows, _ := st.Standings().ListByTournament(ctx, 1)
	if len(rows) != 3 {
		t.Fatalf("expected 3 standings rows, got %d", len(rows))
	}
	if rows[0].TeamID != 2 || *rows[0].Rank != 1 {
		t.Fatalf("expected team 2 to rank 1st (highest points), got %+v", rows[0])
	}
	if rows[1].TeamID != 3 || *rows[1].Rank != 2 {
		t.Fatalf("expected team 3 to rank 2nd (tie on points, higher game_diff), got %+v", rows[1])
	}
}

func TestSaveDeleteCascades(t *testing.T) {
	ctx := context.Background()
	st := New()

	_ = st.Saves().Create(ctx, &model.Save{ID: "s1"})
	team := &model.Team{SaveID: "s1"}
	_ = st.Teams().Create(ctx, team)

	if err := st.Saves().Delete(ctx, "s1"); err != nil {
		t.Fatal(err)
	}
	teams, _ := st.Teams().ListBySave(ctx, "s1")
	if len(teams) != 0 {
		t.Fatalf("expected save deletion to cascade to teams, found %d", len(teams))
	}
}
