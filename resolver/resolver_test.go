package resolver

import (
	"context"
	"testing"

	"esports-career-sim/model"
	"esports-career-sim/repository/memory"
	"esports-career-sim/scheduler"
)

func winnerID(id uint64) *uint64 { return &id }

func completedMatch(stage string, home, away, winner uint64) *model.Match {
	return &model.Match{
		Stage:      stage,
		HomeTeamID: home,
		AwayTeamID: away,
		WinnerID:   winnerID(winner),
		Status:     model.MatchCompleted,
	}
}

// TestInferPlacementsDoubleElimHappyPath walks a completed 8-team
// double-elim bracket: it yields exactly one champion, one runner-up,
// and a third place from the losers final.
func TestInferPlacementsDoubleElimHappyPath(t *testing.T) {
	matches := []*model.Match{
		completedMatch(scheduler.StageGrandFinal, 1, 5, 1),
		completedMatch(scheduler.StageLosersFinal, 5, 3, 5),
		completedMatch(scheduler.StageLosersR3, 3, 2, 3),
		completedMatch(scheduler.StageLosersR2, 2, 4, 2),
		completedMatch(scheduler.StageLosersR2, 3, 7, 3),
		completedMatch(scheduler.StageLosersR1, 4, 8, 4),
		completedMatch(scheduler.StageLosersR1, 7, 6, 7),
	}
	placements := InferPlacements(matches)

	byTeam := map[uint64]model.PlacementBucket{}
	for _, p := range placements {
		byTeam[p.TeamID] = p.Bucket
	}
	if byTeam[1] != model.Champion {
		t.Fatalf("expected team 1 to be Champion, got %s", byTeam[1])
	}
	if byTeam[5] != model.RunnerUp {
		t.Fatalf("expected team 5 to be RunnerUp, got %s", byTeam[5])
	}
	if byTeam[3] != model.Third {
		t.Fatalf("expected team 3 to be Third, got %s", byTeam[3])
	}
	if byTeam[2] != model.Fourth {
		t.Fatalf("expected team 2 to be Fourth, got %s", byTeam[2])
	}
	if byTeam[4] != model.Fifth8th || byTeam[6] != model.Fifth8th || byTeam[7] != model.Fifth8th || byTeam[8] != model.Fifth8th {
		t.Fatalf("expected teams 4,6,7,8 in Fifth8th bucket, got %v", byTeam)
	}

	seen := map[uint64]int{}
	for _, p := range placements {
		seen[p.TeamID]++
	}
	for team, count := range seen {
		if count != 1 {
			t.Fatalf("team %d appears in %d placement rows, expected exactly 1", team, count)
		}
	}
}

func TestInferPlacementsIgnoresIncompleteBracket(t *testing.T) {
	matches := []*model.Match{
		{Stage: scheduler.StageGrandFinal, HomeTeamID: 1, AwayTeamID: 2, Status: model.MatchScheduled},
	}
	placements := InferPlacements(matches)
	if len(placements) != 0 {
		t.Fatalf("expected no placements from an unplayed bracket, got %v", placements)
	}
}

func TestPointsForUnknownCombinationIsZero(t *testing.T) {
	if got := PointsFor(model.TTSpringRegular, model.QuarterLoser); got != 0 {
		t.Fatalf("expected 0 points for a bucket the regular season never produces, got %d", got)
	}
	if got := PointsFor(model.TTWorldChampionship, model.Champion); got == 0 {
		t.Fatalf("expected a positive champion points value for World Championship")
	}
}

func TestPrizeForScalesWithTournamentPrestige(t *testing.T) {
	regional := PrizeFor(model.TTSpringPlayoffs, model.Champion)
	worlds := PrizeFor(model.TTWorldChampionship, model.Champion)
	if worlds <= regional {
		t.Fatalf("expected World Championship champion prize (%d) to exceed a regional playoff's (%d)", worlds, regional)
	}
	if got := PrizeFor(model.TTSpringRegular, model.Champion); got != 0 {
		t.Fatalf("expected regular season to pay no prize money, got %d", got)
	}
}

func TestRegularSeasonPlacements(t *testing.T) {
	one, two := 1, 2
	standings := []*model.LeagueStanding{
		{TeamID: 1, Rank: &one},
		{TeamID: 2, Rank: &two},
	}

	placements := RegularSeasonPlacements(standings)
	if len(placements) == 0 {
		t.Fatalf("expected regular season standings to produce placements")
	}
	var sawChampion bool
	for _, p := range placements {
		if p.TeamID == 1 && p.Bucket == model.Champion {
			sawChampion = true
		}
	}
	if !sawChampion {
		t.Fatalf("expected rank-1 team to be placed as Champion, got %v", placements)
	}
}

// TestIcpChampionRegionPayoutSplitsParticipantsAndBench exercises the
// ICP special case: every team belonging to the champion region is
// credited Participant or NonParticipant points, not just the handful
// that actually entered the ICP bracket.
func TestIcpChampionRegionPayoutSplitsParticipantsAndBench(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	region := &model.Region{SaveID: "save-1", Name: "LPL", ShortName: "LPL"}
	if err := store.Regions().Create(ctx, region); err != nil {
		t.Fatalf("create region: %v", err)
	}

	var played, benched *model.Team
	for i := 0; i < 4; i++ {
		team := &model.Team{SaveID: "save-1", RegionID: region.ID, Name: "Team"}
		if err := store.Teams().Create(ctx, team); err != nil {
			t.Fatalf("create team: %v", err)
		}
		if i == 0 {
			played = team
		}
		if i == 3 {
			benched = team
		}
	}

	regionPlacements := []model.Placement{
		{RegionID: &region.ID, Bucket: model.Champion},
	}
	teamRegion := map[uint64]uint64{played.ID: region.ID}

	payout, err := icpChampionRegionPayout(ctx, store, regionPlacements, teamRegion)
	if err != nil {
		t.Fatalf("icpChampionRegionPayout: %v", err)
	}
	if len(payout) != 4 {
		t.Fatalf("expected one payout row per champion-region team, got %d (%v)", len(payout), payout)
	}

	byTeam := map[uint64]model.PlacementBucket{}
	for _, p := range payout {
		byTeam[p.TeamID] = p.Bucket
	}
	if byTeam[played.ID] != model.Participant {
		t.Fatalf("expected the playing team to earn Participant, got %s", byTeam[played.ID])
	}
	if byTeam[benched.ID] != model.NonParticipant {
		t.Fatalf("expected a non-playing region team to earn NonParticipant, got %s", byTeam[benched.ID])
	}

	if got := PointsFor(model.TTIcpIntercontinental, model.Participant); got == 0 {
		t.Fatalf("expected ICP Participant bucket to award points")
	}
	if got := PointsFor(model.TTIcpIntercontinental, model.NonParticipant); got == 0 {
		t.Fatalf("expected ICP NonParticipant bucket to award points")
	}
}

func TestIcpChampionRegionPayoutNoChampionIsNoop(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	payout, err := icpChampionRegionPayout(ctx, store, nil, nil)
	if err != nil {
		t.Fatalf("icpChampionRegionPayout: %v", err)
	}
	if payout != nil {
		t.Fatalf("expected no payout rows without an inferred champion region, got %v", payout)
	}
}
