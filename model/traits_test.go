package model

import "testing"

func TestTraitRoundTrip(t *testing.T) {
	for tr := Clutch; tr <= MetaAdapter; tr++ {
		s := tr.String()
		got, ok := ParseTrait(s)
		if !ok || got != tr {
			t.Fatalf("round trip failed for trait %v (%q): got=%v ok=%v", tr, s, got, ok)
		}
	}
}

func TestClutchActivatesInPlayoffsOrInternational(t *testing.T) {
	mod, ok := Clutch.Activate(TraitContext{IsPlayoff: true})
	if !ok || mod.ConditionDelta != 3 {
		t.Fatalf("Clutch should activate with +3 condition in playoffs, got %+v ok=%v", mod, ok)
	}
	_, ok = Clutch.Activate(TraitContext{})
	if ok {
		t.Fatalf("Clutch should not activate outside playoffs/international")
	}
}

func TestSumModifiersStacksAdditively(t *testing.T) {
	ctx := TraitContext{IsPlayoff: true, Age: 31}
	total := SumModifiers([]Trait{Clutch, Veteran}, ctx)
	if total.ConditionDelta != 3 {
		t.Fatalf("expected +3 condition from Clutch, got %v", total.ConditionDelta)
	}
	if total.StabilityDelta != 15 {
		t.Fatalf("expected +15 stability from Veteran, got %v", total.StabilityDelta)
	}
}

func TestMentalFortressActivatesWhenBehindInSeries(t *testing.T) {
	mod, ok := MentalFortress.Activate(TraitContext{ScoreDiff: -1})
	if !ok || mod.StabilityDelta != 10 {
		t.Fatalf("MentalFortress should activate with +10 stability when behind, got %+v ok=%v", mod, ok)
	}
	if _, ok := MentalFortress.Activate(TraitContext{ScoreDiff: 0}); ok {
		t.Fatalf("MentalFortress should not activate when not behind")
	}
}

func TestFragileActivatesOnCompressedSchedule(t *testing.T) {
	mod, ok := Fragile.Activate(TraitContext{GamesSinceRest: 4})
	if !ok || mod.StabilityDelta != -10 || mod.ConditionDelta != -2 {
		t.Fatalf("Fragile should activate with -10 stability/-2 condition past 3 games since rest, got %+v ok=%v", mod, ok)
	}
	if _, ok := Fragile.Activate(TraitContext{GamesSinceRest: 2}); ok {
		t.Fatalf("Fragile should not activate on a fresh schedule")
	}
}

func TestIronmanActivatesPastFiveGamesSinceRest(t *testing.T) {
	mod, ok := Ironman.Activate(TraitContext{GamesSinceRest: 6})
	if !ok || mod.ConditionDelta != 3 {
		t.Fatalf("Ironman should activate with +3 condition past 5 games since rest, got %+v ok=%v", mod, ok)
	}
	if _, ok := Ironman.Activate(TraitContext{GamesSinceRest: 5}); ok {
		t.Fatalf("Ironman should not activate at or below 5 games since rest")
	}
}

func TestVolatileAlwaysActivates(t *testing.T) {
	mod, ok := Volatile.Activate(TraitContext{})
	if !ok || mod.StabilityDelta != -20 || mod.AbilityCeilingDelta != 8 {
		t.Fatalf("Volatile should unconditionally trade -20 stability for +8 ability ceiling, got %+v ok=%v", mod, ok)
	}
}

func TestTeamLeaderActivatesWhenAheadInSeries(t *testing.T) {
	mod, ok := TeamLeader.Activate(TraitContext{ScoreDiff: 1})
	if !ok || mod.ConditionDelta != 1 || mod.StabilityDelta != 5 {
		t.Fatalf("TeamLeader should activate with +1 condition/+5 stability when ahead, got %+v ok=%v", mod, ok)
	}
	if _, ok := TeamLeader.Activate(TraitContext{ScoreDiff: 0}); ok {
		t.Fatalf("TeamLeader should not activate without a series lead")
	}
}
