package model

import "testing"

func mustPosition(p Position) *Position { return &p }

func TestAutoConfirmStartersOnePerPosition(t *testing.T) {
	team := uint64(1)
	roster := []*Player{
		{ID: 1, Ability: 80, Status: Active, Position: mustPosition(Top), TeamID: &team},
		{ID: 2, Ability: 90, Status: Active, Position: mustPosition(Top), TeamID: &team},
		{ID: 3, Ability: 70, Status: Active, Position: mustPosition(Mid), TeamID: &team},
		{ID: 4, Ability: 99, Status: Retired, Position: mustPosition(Jug), TeamID: &team},
	}

	missing := AutoConfirmStarters(roster)

	starterCount := map[Position]int{}
	for _, p := range roster {
		if p.IsStarter {
			starterCount[*p.Position]++
			if p.ID == 1 {
				t.Fatalf("lower-ability Top (id 1) should not be starter when id 2 outranks it")
			}
		}
	}
	for pos, n := range starterCount {
		if n != 1 {
			t.Fatalf("position %s has %d starters, want exactly 1", pos, n)
		}
	}

	foundMissingJug := false
	for _, pos := range missing {
		if pos == Jug {
			foundMissingJug = true
		}
	}
	if !foundMissingJug {
		t.Fatalf("Jug has no eligible Active player (id 4 is Retired) and should be reported missing, got %v", missing)
	}
}

func TestRecalculateTeamPowerMeansStarters(t *testing.T) {
	team := uint64(1)
	roster := []*Player{
		{ID: 1, Ability: 80, Status: Active, IsStarter: true, Position: mustPosition(Top), TeamID: &team},
		{ID: 2, Ability: 70, Status: Active, IsStarter: true, Position: mustPosition(Jug), TeamID: &team},
	}
	got := RecalculateTeamPower(roster)
	want := 75.0
	if got != want {
		t.Fatalf("power_rating = %v, want %v", got, want)
	}
}

func TestRecalculateTeamPowerNoStartersFallback(t *testing.T) {
	got := RecalculateTeamPower(nil)
	if got != 60.0 {
		t.Fatalf("expected fallback power_rating of 60.0, got %v", got)
	}
}
