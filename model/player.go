package model

// Player is a roster member. Age, ability, potential and stability are
// bounded per the ranges below. The struct does not self-validate;
// callers that synthesize a Player outside the generators in package
// simulation clamp to these ranges themselves.
type Player struct {
	ID                    uint64
	SaveID                string
	GameID                string
	RealName              string
	Nationality           string
	Age                   uint8 // 17..32
	Ability               uint8 // 50..99
	Potential             uint8 // Ability..99
	Stability             uint8 // 0..100, trends down with Age
	Tag                   PlayerTag
	Status                PlayerStatus
	Position              *Position
	TeamID                *uint64
	Salary                int64
	MarketValue           int64
	CalculatedMarketValue int64
	ContractEndSeason     *uint32
	JoinSeason            uint32
	RetireSeason          *uint32
	IsStarter             bool
	Traits                []Trait

	InternationalTitles int
	RegionalTitles      int
	ChampionBonus       float64
}

// IsEligibleStarter reports whether the player can occupy a starting slot
// at all: it must be Active and bound to a team.
func (p *Player) IsEligibleStarter() bool {
	return p.Status == Active && p.TeamID != nil
}

// PlayerFormFactors tracks the slow-moving, per-phase-loaded condition
// inputs feeding the condition model. One row per (save_id, player_id).
type PlayerFormFactors struct {
	SaveID          string
	PlayerID        uint64
	FormCycle       float64 // 0..100
	Momentum        int8    // -5..+5
	LastPerformance float64
	LastMatchWon    bool
	GamesSinceRest  uint32
}

// ResetForSeason scrambles FormCycle to a fresh value and zeros the rest,
// as advance_to_new_season requires.
func (f *PlayerFormFactors) ResetForSeason(freshCycle float64) {
	f.FormCycle = freshCycle
	f.Momentum = 0
	f.LastPerformance = 0
	f.LastMatchWon = false
	f.GamesSinceRest = 0
}
