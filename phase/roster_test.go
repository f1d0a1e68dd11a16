package phase

import (
	"context"
	"testing"

	"esports-career-sim/model"
	"esports-career-sim/repository/memory"
)

func posPtr(p model.Position) *model.Position { return &p }

// TestBuildRosterHealsMissingStarterFromBench pins the bench-fill rule: a
// team found with fewer than five confirmed Active starters is healed by
// filling each empty slot from the highest-ability Active non-starter,
// rather than fielding fewer than five players or failing the match.
func TestBuildRosterHealsMissingStarterFromBench(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	m := NewMachine(store, nil, nil)

	teamID := uint64(1)
	// Four confirmed starters, one missing (Jug), plus two bench options of
	// differing ability so the healing pick is unambiguous.
	starters := []*model.Player{
		{SaveID: "s", TeamID: &teamID, Position: posPtr(model.Top), IsStarter: true, Status: model.Active, Ability: 70},
		{SaveID: "s", TeamID: &teamID, Position: posPtr(model.Mid), IsStarter: true, Status: model.Active, Ability: 70},
		{SaveID: "s", TeamID: &teamID, Position: posPtr(model.Adc), IsStarter: true, Status: model.Active, Ability: 70},
		{SaveID: "s", TeamID: &teamID, Position: posPtr(model.Sup), IsStarter: true, Status: model.Active, Ability: 70},
	}
	weakBench := &model.Player{SaveID: "s", TeamID: &teamID, Position: posPtr(model.Jug), IsStarter: false, Status: model.Active, Ability: 55}
	strongBench := &model.Player{SaveID: "s", TeamID: &teamID, Position: posPtr(model.Top), IsStarter: false, Status: model.Active, Ability: 90}

	for _, p := range append(starters, weakBench, strongBench) {
		if err := store.Players().Create(ctx, p); err != nil {
			t.Fatalf("create player: %v", err)
		}
	}

	roster, err := m.buildRoster(ctx, teamID, nil)
	if err != nil {
		t.Fatalf("buildRoster: %v", err)
	}
	if len(roster) != 5 {
		t.Fatalf("expected a healed roster of 5, got %d (%v)", len(roster), roster)
	}

	var filledJug *model.Player
	for _, entry := range roster {
		if entry.Position == model.Jug {
			filledJug = entry.Player
		}
	}
	if filledJug == nil {
		t.Fatalf("expected the Jug slot to be healed from bench")
	}
	if filledJug.ID != strongBench.ID {
		t.Fatalf("expected the highest-ability Active bench player (ability 90) to heal the slot, got ability %d", filledJug.Ability)
	}
}

// TestBuildRosterSkipsPositionWithNoEligiblePlayer confirms a position left
// entirely without an eligible player is logged and skipped rather than
// failing the whole roster build.
func TestBuildRosterSkipsPositionWithNoEligiblePlayer(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	m := NewMachine(store, nil, nil)

	teamID := uint64(2)
	only := &model.Player{SaveID: "s", TeamID: &teamID, Position: posPtr(model.Top), IsStarter: true, Status: model.Active, Ability: 70}
	if err := store.Players().Create(ctx, only); err != nil {
		t.Fatalf("create player: %v", err)
	}

	roster, err := m.buildRoster(ctx, teamID, nil)
	if err != nil {
		t.Fatalf("buildRoster: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("expected a single-entry roster when only one eligible player exists, got %d", len(roster))
	}
}
