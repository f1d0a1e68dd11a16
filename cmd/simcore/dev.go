package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"esports-career-sim/phase"
)

func devTools() *phase.DevTools {
	return phase.NewDevTools(store)
}

func printReport(r *phase.DevReport) {
	fmt.Printf("save=%s context=%s changed=%d\n", r.SaveID, r.Context, r.Changed)
	for _, n := range r.Notes {
		fmt.Printf("  - %s\n", n)
	}
}

// devCmd groups the `dev_*` data-repair operations: administrative
// escape hatches, not part of the normal phase-advancement flow.
func devCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Data-repair tools for a save that has drifted from its own invariants",
	}
	cmd.AddCommand(devReassignHonorsCmd())
	cmd.AddCommand(devRecalculateAnnualPointsCmd())
	cmd.AddCommand(devSyncPlayerGamesPlayedCmd())
	cmd.AddCommand(devRecalculateStandingsCmd())
	cmd.AddCommand(devFixStartersCmd())
	cmd.AddCommand(devForceCompleteMatchCmd())
	cmd.AddCommand(devRecalculateMarketValuesCmd())
	cmd.AddCommand(devPurgeOrphanedTournamentsCmd())
	return cmd
}

func seasonFlag(cmd *cobra.Command) *uint32 {
	var season uint32
	cmd.Flags().Uint32Var(&season, "season", 0, "season number")
	return &season
}

func devReassignHonorsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "reassign-honors", Short: "dev_reassign_honors"}
	season := seasonFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		saveID, err := requireSaveID()
		if err != nil {
			return err
		}
		r, err := devTools().ReassignHonors(cmd.Context(), saveID, *season)
		if err != nil {
			return err
		}
		printReport(r)
		return nil
	}
	return cmd
}

func devRecalculateAnnualPointsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "recalculate-annual-points", Short: "dev_recalculate_annual_points"}
	season := seasonFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		saveID, err := requireSaveID()
		if err != nil {
			return err
		}
		r, err := devTools().RecalculateAnnualPoints(cmd.Context(), saveID, *season)
		if err != nil {
			return err
		}
		printReport(r)
		return nil
	}
	return cmd
}

func devSyncPlayerGamesPlayedCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "sync-player-games-played", Short: "dev_sync_player_games_played"}
	season := seasonFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		saveID, err := requireSaveID()
		if err != nil {
			return err
		}
		r, err := devTools().SyncPlayerGamesPlayed(cmd.Context(), saveID, *season)
		if err != nil {
			return err
		}
		printReport(r)
		return nil
	}
	return cmd
}

func devRecalculateStandingsCmd() *cobra.Command {
	var tournamentID uint64
	cmd := &cobra.Command{
		Use:   "recalculate-standings",
		Short: "dev_recalculate_standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			saveID, err := requireSaveID()
			if err != nil {
				return err
			}
			r, err := devTools().RecalculateStandings(cmd.Context(), saveID, tournamentID)
			if err != nil {
				return err
			}
			printReport(r)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&tournamentID, "tournament", 0, "tournament id")
	return cmd
}

func devFixStartersCmd() *cobra.Command {
	var teamID uint64
	cmd := &cobra.Command{
		Use:   "fix-starters",
		Short: "dev_fix_starters",
		RunE: func(cmd *cobra.Command, args []string) error {
			saveID, err := requireSaveID()
			if err != nil {
				return err
			}
			r, err := devTools().FixStarters(cmd.Context(), saveID, teamID)
			if err != nil {
				return err
			}
			printReport(r)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&teamID, "team", 0, "team id")
	return cmd
}

func devForceCompleteMatchCmd() *cobra.Command {
	var matchID, winnerID uint64
	cmd := &cobra.Command{
		Use:   "force-complete-match",
		Short: "dev_force_complete_match",
		RunE: func(cmd *cobra.Command, args []string) error {
			saveID, err := requireSaveID()
			if err != nil {
				return err
			}
			r, err := devTools().ForceCompleteMatch(cmd.Context(), saveID, matchID, winnerID)
			if err != nil {
				return err
			}
			printReport(r)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&matchID, "match", 0, "match id")
	cmd.Flags().Uint64Var(&winnerID, "winner", 0, "winning team id")
	return cmd
}

func devRecalculateMarketValuesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "recalculate-market-values", Short: "dev_recalculate_market_values"}
	season := seasonFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		saveID, err := requireSaveID()
		if err != nil {
			return err
		}
		r, err := devTools().RecalculateMarketValues(cmd.Context(), saveID, *season)
		if err != nil {
			return err
		}
		printReport(r)
		return nil
	}
	return cmd
}

func devPurgeOrphanedTournamentsCmd() *cobra.Command {
	var phaseName string
	season := new(uint32)
	cmd := &cobra.Command{
		Use:   "purge-orphaned-tournaments",
		Short: "list unfinished zero-match tournaments of an earlier phase (nothing is deleted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			saveID, err := requireSaveID()
			if err != nil {
				return err
			}
			p, err := parsePhaseArg(phaseName)
			if err != nil {
				return err
			}
			r, err := devTools().PurgeOrphanedTournaments(cmd.Context(), saveID, *season, p)
			if err != nil {
				return err
			}
			printReport(r)
			return nil
		},
	}
	cmd.Flags().Uint32Var(season, "season", 0, "current season")
	cmd.Flags().StringVar(&phaseName, "phase", "", "current phase")
	return cmd
}
