// Package model holds the simulation core's entities, enumerations, and the
// pure derived-value formulas (starter confirmation, power ratings, market
// value) that don't need a repository to compute.
//
// Every enumeration here carries an explicit canonical string table instead
// of relying on fmt.Sprintf("%v", ...) / a Go Stringer generated from the
// identifier name: the canonical form is what persists and goes over the
// wire, so it must survive refactors that rename the Go identifier.
package model

import "esports-career-sim/pkg/errors"

// SeasonPhase is one of the 15 ordered phases a season moves through.
type SeasonPhase int

const (
	SpringRegular SeasonPhase = iota
	SpringPlayoffs
	Msi
	MadridMasters
	SummerRegular
	SummerPlayoffs
	ClaudeIntercontinental
	WorldChampionship
	ShanghaiMasters
	IcpIntercontinental
	SuperIntercontinental
	AnnualAwards
	TransferWindow
	Draft
	SeasonEnd
)

var seasonPhaseNames = [...]string{
	"SpringRegular",
	"SpringPlayoffs",
	"Msi",
	"MadridMasters",
	"SummerRegular",
	"SummerPlayoffs",
	"ClaudeIntercontinental",
	"WorldChampionship",
	"ShanghaiMasters",
	"IcpIntercontinental",
	"SuperIntercontinental",
	"AnnualAwards",
	"TransferWindow",
	"Draft",
	"SeasonEnd",
}

func (p SeasonPhase) String() string {
	if p < 0 || int(p) >= len(seasonPhaseNames) {
		return "Unknown"
	}
	return seasonPhaseNames[p]
}

// Next returns the phase that follows p within the same season.
// SeasonEnd has no successor within a season; callers must roll the season
// themselves (see phase.Machine.AdvanceToNewSeason).
func (p SeasonPhase) Next() (SeasonPhase, bool) {
	if p == SeasonEnd {
		return SpringRegular, false
	}
	return p + 1, true
}

// IsTournamentPhase reports whether the phase drives one or more
// tournaments, as opposed to the non-tournament phases: AnnualAwards,
// TransferWindow, Draft, SeasonEnd.
func (p SeasonPhase) IsTournamentPhase() bool {
	switch p {
	case AnnualAwards, TransferWindow, Draft, SeasonEnd:
		return false
	default:
		return true
	}
}

// ParseSeasonPhase maps a canonical string back to a SeasonPhase.
func ParseSeasonPhase(s string) (SeasonPhase, error) {
	for i, name := range seasonPhaseNames {
		if name == s {
			return SeasonPhase(i), nil
		}
	}
	return 0, errors.New(errors.ValidationFailed, "unknown season phase: "+s)
}

// TournamentType enumerates the 14 kinds of competitive event the core
// schedules or resolves.
type TournamentType int

const (
	TTSpringRegular TournamentType = iota
	TTSpringPlayoffs
	TTMsi
	TTMadridMasters
	TTSummerRegular
	TTSummerPlayoffs
	TTClaudeIntercontinental
	TTWorldChampionship
	TTShanghaiMasters
	TTIcpIntercontinental
	TTSuperIntercontinental
	TTRegionalRegular
	TTRegionalPlayoffs
	TTInvitational
)

var tournamentTypeNames = [...]string{
	"SpringRegular",
	"SpringPlayoffs",
	"Msi",
	"MadridMasters",
	"SummerRegular",
	"SummerPlayoffs",
	"ClaudeIntercontinental",
	"WorldChampionship",
	"ShanghaiMasters",
	"IcpIntercontinental",
	"SuperIntercontinental",
	"RegionalRegular",
	"RegionalPlayoffs",
	"Invitational",
}

func (t TournamentType) String() string {
	if t < 0 || int(t) >= len(tournamentTypeNames) {
		return "Unknown"
	}
	return tournamentTypeNames[t]
}

func ParseTournamentType(s string) (TournamentType, error) {
	for i, name := range tournamentTypeNames {
		if name == s {
			return TournamentType(i), nil
		}
	}
	return 0, errors.New(errors.ValidationFailed, "unknown tournament type: "+s)
}

// IsGlobal reports whether the tournament type is a global (non-regional)
// event. Decides between PlayoffBonus and InternationalBonus prize
// transactions, and between regional and international honors.
func (t TournamentType) IsGlobal() bool {
	switch t {
	case TTMsi, TTMadridMasters, TTClaudeIntercontinental, TTWorldChampionship,
		TTShanghaiMasters, TTIcpIntercontinental, TTSuperIntercontinental, TTInvitational:
		return true
	default:
		return false
	}
}

// TournamentStatus is the lifecycle state of a Tournament.
type TournamentStatus int

const (
	TournamentUpcoming TournamentStatus = iota
	TournamentInProgress
	TournamentCompleted
)

var tournamentStatusNames = [...]string{"Upcoming", "InProgress", "Completed"}

func (s TournamentStatus) String() string {
	if s < 0 || int(s) >= len(tournamentStatusNames) {
		return "Unknown"
	}
	return tournamentStatusNames[s]
}

func ParseTournamentStatus(s string) (TournamentStatus, error) {
	for i, name := range tournamentStatusNames {
		if name == s {
			return TournamentStatus(i), nil
		}
	}
	return 0, errors.New(errors.ValidationFailed, "unknown tournament status: "+s)
}

// MatchStatus is the lifecycle state of a Match.
type MatchStatus int

const (
	MatchScheduled MatchStatus = iota
	MatchCompleted
	MatchCancelled
)

var matchStatusNames = [...]string{"Scheduled", "Completed", "Cancelled"}

func (s MatchStatus) String() string {
	if s < 0 || int(s) >= len(matchStatusNames) {
		return "Unknown"
	}
	return matchStatusNames[s]
}

func ParseMatchStatus(s string) (MatchStatus, error) {
	for i, name := range matchStatusNames {
		if name == s {
			return MatchStatus(i), nil
		}
	}
	return 0, errors.New(errors.ValidationFailed, "unknown match status: "+s)
}

// MatchFormat is the best-of-N series length.
type MatchFormat int

const (
	Bo1 MatchFormat = iota
	Bo3
	Bo5
)

var matchFormatNames = [...]string{"Bo1", "Bo3", "Bo5"}

func (f MatchFormat) String() string {
	if f < 0 || int(f) >= len(matchFormatNames) {
		return "Unknown"
	}
	return matchFormatNames[f]
}

// Games is the total number of games in the series: 1, 3 or 5.
func (f MatchFormat) Games() int {
	switch f {
	case Bo1:
		return 1
	case Bo3:
		return 3
	case Bo5:
		return 5
	default:
		return 1
	}
}

// WinsRequired is ceil(Games()/2), the number of game wins needed to take
// the series.
func (f MatchFormat) WinsRequired() int {
	return (f.Games() + 1) / 2
}

func ParseMatchFormat(s string) (MatchFormat, error) {
	for i, name := range matchFormatNames {
		if name == s {
			return MatchFormat(i), nil
		}
	}
	return 0, errors.New(errors.ValidationFailed, "unknown match format: "+s)
}

// Position is one of the five starting roster slots.
type Position int

const (
	Top Position = iota
	Jug
	Mid
	Adc
	Sup
)

var positionNames = [...]string{"Top", "Jug", "Mid", "Adc", "Sup"}

func (p Position) String() string {
	if p < 0 || int(p) >= len(positionNames) {
		return "Unknown"
	}
	return positionNames[p]
}

// AllPositions enumerates the five starting slots, in canonical order.
func AllPositions() []Position {
	return []Position{Top, Jug, Mid, Adc, Sup}
}

func ParsePosition(s string) (Position, error) {
	for i, name := range positionNames {
		if name == s {
			return Position(i), nil
		}
	}
	return 0, errors.New(errors.ValidationFailed, "unknown position: "+s)
}

// PlayerStatus is the player's career status.
type PlayerStatus int

const (
	Active PlayerStatus = iota
	Retired
	FreeAgent
)

var playerStatusNames = [...]string{"Active", "Retired", "FreeAgent"}

func (s PlayerStatus) String() string {
	if s < 0 || int(s) >= len(playerStatusNames) {
		return "Unknown"
	}
	return playerStatusNames[s]
}

func ParsePlayerStatus(s string) (PlayerStatus, error) {
	for i, name := range playerStatusNames {
		if name == s {
			return PlayerStatus(i), nil
		}
	}
	return 0, errors.New(errors.ValidationFailed, "unknown player status: "+s)
}

// PlayerTag is a coarse talent classification affecting market value.
type PlayerTag int

const (
	Ordinary PlayerTag = iota
	NormalTag
	Genius
)

var playerTagNames = [...]string{"Ordinary", "Normal", "Genius"}

func (t PlayerTag) String() string {
	if t < 0 || int(t) >= len(playerTagNames) {
		return "Unknown"
	}
	return playerTagNames[t]
}

func ParsePlayerTag(s string) (PlayerTag, error) {
	for i, name := range playerTagNames {
		if name == s {
			return PlayerTag(i), nil
		}
	}
	return 0, errors.New(errors.ValidationFailed, "unknown player tag: "+s)
}

// HonorType enumerates the append-only honor ledger's row kinds.
type HonorType int

const (
	TeamChampion HonorType = iota
	TeamRunnerUp
	TeamThird
	TeamFourth
	PlayerChampion
	TournamentMvp
	RegularSeasonFirst
	RegularSeasonMvp
	AnnualMvp
	AnnualTop20
	AnnualAllPro1st
	AnnualAllPro2nd
	AnnualAllPro3rd
	AnnualMostConsistent
	AnnualMostDominant
	AnnualRookie
)

var honorTypeNames = [...]string{
	"TeamChampion",
	"TeamRunnerUp",
	"TeamThird",
	"TeamFourth",
	"PlayerChampion",
	"TournamentMvp",
	"RegularSeasonFirst",
	"RegularSeasonMvp",
	"AnnualMvp",
	"AnnualTop20",
	"AnnualAllPro1st",
	"AnnualAllPro2nd",
	"AnnualAllPro3rd",
	"AnnualMostConsistent",
	"AnnualMostDominant",
	"AnnualRookie",
}

func (h HonorType) String() string {
	if h < 0 || int(h) >= len(honorTypeNames) {
		return "Unknown"
	}
	return honorTypeNames[h]
}

func ParseHonorType(s string) (HonorType, error) {
	for i, name := range honorTypeNames {
		if name == s {
			return HonorType(i), nil
		}
	}
	return 0, errors.New(errors.ValidationFailed, "unknown honor type: "+s)
}

// IsAnnual reports whether the honor type is one of the AnnualAwards-phase
// honors. phase.Machine uses it to derive the AnnualAwards completion
// marker.
func (h HonorType) IsAnnual() bool {
	switch h {
	case AnnualMvp, AnnualTop20, AnnualAllPro1st, AnnualAllPro2nd, AnnualAllPro3rd,
		AnnualMostConsistent, AnnualMostDominant, AnnualRookie:
		return true
	default:
		return false
	}
}
