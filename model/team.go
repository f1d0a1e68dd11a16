package model

// Team is a roster-holding competitor within a region.
//
// Invariants (enforced by recalculate_team_powers / the resolver, not by
// this struct itself): PowerRating equals the mean ability of the team's
// Active starters; AnnualPoints equals the sum of the current season's
// AnnualPointsDetail rows for this team (see resolver.InferPlacements callers
// in package resolver).
type Team struct {
	ID               uint64
	SaveID           string
	RegionID         uint64
	Name             string
	ShortName        string
	PowerRating      float64
	TotalMatches     int
	Wins             int
	WinRate          float64
	AnnualPoints     uint32
	CrossYearPoints  uint32
	Balance          int64
	BrandValue       float64
}

// RecalculateWinRate derives WinRate from TotalMatches/Wins. No standings
// write calls it; WinRate changes only where a caller invokes it.
func (t *Team) RecalculateWinRate() {
	if t.TotalMatches == 0 {
		t.WinRate = 0
		return
	}
	t.WinRate = float64(t.Wins) / float64(t.TotalMatches)
}
