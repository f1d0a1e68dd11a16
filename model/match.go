package model

import "time"

// Match is a best-of-N series between two teams within a tournament.
// Stage is a free-form bracket-slot label (e.g. "REGULAR", "WINNERS_R1",
// "GRAND_FINAL"). The scheduler and resolver packages agree on the
// vocabulary per tournament type; Match treats it as an opaque string.
type Match struct {
	ID          uint64
	SaveID      string
	TournamentID uint64
	Stage       string
	Round       *int
	MatchOrder  *int
	Format      MatchFormat
	HomeTeamID  uint64
	AwayTeamID  uint64
	HomeScore   int
	AwayScore   int
	WinnerID    *uint64
	Status      MatchStatus
	PlayedAt    *time.Time
}

// IsValidCompleted checks the Completed-match invariant: a winner from one of the two
// sides, a series score the format allows, and no surplus games.
func (m *Match) IsValidCompleted() bool {
	if m.Status != MatchCompleted {
		return false
	}
	if m.WinnerID == nil || (*m.WinnerID != m.HomeTeamID && *m.WinnerID != m.AwayTeamID) {
		return false
	}
	maxScore := m.HomeScore
	if m.AwayScore > maxScore {
		maxScore = m.AwayScore
	}
	if maxScore != m.Format.WinsRequired() {
		return false
	}
	return m.HomeScore+m.AwayScore <= m.Format.Games()
}

// MatchGame is one individual game within a match.
type MatchGame struct {
	ID               uint64
	MatchID          uint64
	GameNumber       int
	WinnerTeamID     uint64
	LoserTeamID      uint64
	DurationMinutes  int
	MvpPlayerID      *uint64
	HomePower        float64
	AwayPower        float64
	SynergyBonusHome float64
	SynergyBonusAway float64
	MetaBonusHome    float64
	MetaBonusAway    float64
}

// GamePlayerPerformance is one player's stat line within one game.
type GamePlayerPerformance struct {
	ID                uint64
	GameID            uint64
	PlayerID          uint64
	TeamID            uint64
	Position          Position
	BaseAbility       float64
	ConditionBonus    float64
	StabilityNoise    float64
	ActualAbility     float64
	ImpactScore       float64
	MvpScore          float64
	IsMvp             bool
	Kills             int
	Deaths            int
	Assists           int
	Cs                int
	Gold              int
	DamageDealt       int
	DamageTaken       int
	VisionScore       int
	TraitsJSON        string
	ActivatedTraitsJSON string
}

// KDA is (kills+assists)/max(deaths,1), the standard esports KDA ratio.
func (p *GamePlayerPerformance) KDA() float64 {
	d := p.Deaths
	if d < 1 {
		d = 1
	}
	return float64(p.Kills+p.Assists) / float64(d)
}

// LeagueStanding is a team's running record within a tournament. Unique
// per (tournament_id, team_id).
type LeagueStanding struct {
	TournamentID uint64
	TeamID       uint64
	Rank         *int
	MatchesPlayed int
	Wins         int
	Losses       int
	Points       int
	GamesWon     int
	GamesLost    int
	GameDiff     int
}

// ApplyMatchResult folds one completed match's result into the standing of
// one of its two participants, per a completed match.
func (s *LeagueStanding) ApplyMatchResult(won bool, gamesWon, gamesLost int, format MatchFormat) {
	s.MatchesPlayed++
	s.GamesWon += gamesWon
	s.GamesLost += gamesLost
	s.GameDiff = s.GamesWon - s.GamesLost

	if won {
		s.Wins++
		if gamesLost == 0 {
			s.Points += 3 // sweep
		} else {
			s.Points += 2
		}
	} else {
		s.Losses++
		if gamesWon == 0 {
			s.Points += 0 // swept
		} else {
			s.Points += 1
		}
	}
}
