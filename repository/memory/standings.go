package memory

import (
	"context"
	"fmt"
	"sort"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type standingRepo Store

func standingKey(tournamentID, teamID uint64) string {
	return fmt.Sprintf("%d:%d", tournamentID, teamID)
}

func (r *standingRepo) Get(ctx context.Context, tournamentID, teamID uint64) (*model.LeagueStanding, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.standings[standingKey(tournamentID, teamID)]
	if !ok {
		return nil, errors.NotFoundError("LeagueStanding", standingKey(tournamentID, teamID))
	}
	cp := *s
	return &cp, nil
}

func (r *standingRepo) Upsert(ctx context.Context, s *model.LeagueStanding) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	cp := *s
	st.standings[standingKey(s.TournamentID, s.TeamID)] = &cp
	return nil
}

func (r *standingRepo) ListByTournament(ctx context.Context, tournamentID uint64) ([]*model.LeagueStanding, error) {
	st := (*Store)(r)
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []*model.LeagueStanding
	for _, s := range st.standings {
		if s.TournamentID == tournamentID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sortStandings(out)
	return out, nil
}

// sortStandings orders by (points DESC, game_diff DESC, wins DESC), per
// the match-completion path's ordering, with a final team_id tiebreak for full determinism.
func sortStandings(standings []*model.LeagueStanding) {
	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GameDiff != b.GameDiff {
			return a.GameDiff > b.GameDiff
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.TeamID < b.TeamID
	})
}

func (r *standingRepo) RecomputeRanks(ctx context.Context, tournamentID uint64) error {
	st := (*Store)(r)
	st.mu.Lock()
	defer st.mu.Unlock()

	var standings []*model.LeagueStanding
	for _, s := range st.standings {
		if s.TournamentID == tournamentID {
			standings = append(standings, s)
		}
	}
	sortStandings(standings)
	for i, s := range standings {
		rank := i + 1
		s.Rank = &rank
	}
	return nil
}
