package model

import "testing"

func TestMatchIsValidCompleted(t *testing.T) {
	winner := uint64(1)
	m := &Match{
		HomeTeamID: 1,
		AwayTeamID: 2,
		Format:     Bo3,
		HomeScore:  2,
		AwayScore:  1,
		WinnerID:   &winner,
		Status:     MatchCompleted,
	}
	if !m.IsValidCompleted() {
		t.Fatalf("expected valid completed Bo3 2-1 match")
	}

	m.HomeScore, m.AwayScore = 2, 2
	if m.IsValidCompleted() {
		t.Fatalf("2-2 in a Bo3 should never be valid")
	}
}

func TestMatchIsValidCompletedRequiresKnownWinner(t *testing.T) {
	other := uint64(99)
	winner := uint64(1)
	m := &Match{
		HomeTeamID: 1,
		AwayTeamID: 2,
		Format:     Bo5,
		HomeScore:  3,
		AwayScore:  1,
		WinnerID:   &winner,
		Status:     MatchCompleted,
	}
	if !m.IsValidCompleted() {
		t.Fatalf("expected valid Bo5 3-1")
	}
	m.WinnerID = &other
	if m.IsValidCompleted() {
		t.Fatalf("winner outside {home,away} must be invalid")
	}
}

func TestApplyMatchResultPoints(t *testing.T) {
	winnerStanding := &LeagueStanding{}
	winnerStanding.ApplyMatchResult(true, 2, 0, Bo3)
	if winnerStanding.Points != 3 {
		t.Fatalf("sweep win should award 3 points, got %d", winnerStanding.Points)
	}
	if winnerStanding.MatchesPlayed != 1 || winnerStanding.Wins != 1 {
		t.Fatalf("unexpected standing after sweep win: %+v", winnerStanding)
	}

	loserStanding := &LeagueStanding{}
	loserStanding.ApplyMatchResult(false, 0, 2, Bo3)
	if loserStanding.Points != 0 {
		t.Fatalf("swept loss should award 0 points, got %d", loserStanding.Points)
	}

	splitWinner := &LeagueStanding{}
	splitWinner.ApplyMatchResult(true, 2, 1, Bo3)
	if splitWinner.Points != 2 {
		t.Fatalf("non-sweep win should award 2 points, got %d", splitWinner.Points)
	}

	splitLoser := &LeagueStanding{}
	splitLoser.ApplyMatchResult(false, 1, 2, Bo3)
	if splitLoser.Points != 1 {
		t.Fatalf("non-swept loss should award 1 point, got %d", splitLoser.Points)
	}

	if splitWinner.GameDiff != 1 {
		t.Fatalf("expected game_diff 1, got %d", splitWinner.GameDiff)
	}
}
