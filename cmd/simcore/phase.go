package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"esports-career-sim/model"
	"esports-career-sim/phase"
)

func machine() *phase.Machine {
	return phase.NewMachine(store, wireCache(), cfg)
}

func timeStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "time-state",
		Short: "Print get_time_state for --save",
		RunE: func(cmd *cobra.Command, args []string) error {
			saveID, err := requireSaveID()
			if err != nil {
				return err
			}
			ts, err := machine().GetTimeState(cmd.Context(), saveID)
			if err != nil {
				return err
			}
			fmt.Printf("season=%d phase=%s status=%s can_advance=%t\n", ts.Season, ts.Phase, ts.Status, ts.CanAdvance)
			for _, t := range ts.Tournaments {
				fmt.Printf("  tournament=%s region=%v matches=%d/%d\n", t.TournamentType, t.RegionID, t.CompletedMatches, t.TotalMatches)
			}
			fmt.Printf("available actions: %v\n", ts.AvailableActions)
			return nil
		},
	}
}

func parsePhaseArg(raw string) (model.SeasonPhase, error) {
	return model.ParseSeasonPhase(raw)
}

func initPhaseCmd() *cobra.Command {
	var phaseName string
	cmd := &cobra.Command{
		Use:   "init-phase",
		Short: "initialize_phase: create the current phase's tournaments and seed matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			saveID, err := requireSaveID()
			if err != nil {
				return err
			}
			p, err := resolvePhase(cmd, saveID, phaseName)
			if err != nil {
				return err
			}
			if err := machine().InitializePhase(cmd.Context(), saveID, p); err != nil {
				return err
			}
			fmt.Printf("initialized %s for save %s\n", p, saveID)
			return nil
		},
	}
	cmd.Flags().StringVar(&phaseName, "phase", "", "phase name; defaults to the save's current phase")
	return cmd
}

func simulateCmd() *cobra.Command {
	var phaseName string
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "simulate_all_phase_matches: drain every pending match of the current phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			saveID, err := requireSaveID()
			if err != nil {
				return err
			}
			p, err := resolvePhase(cmd, saveID, phaseName)
			if err != nil {
				return err
			}
			simulated, failed, err := machine().SimulateAllPhaseMatches(cmd.Context(), saveID, p)
			if err != nil {
				return err
			}
			fmt.Printf("simulated=%d failed=%d\n", simulated, failed)
			return nil
		},
	}
	cmd.Flags().StringVar(&phaseName, "phase", "", "phase name; defaults to the save's current phase")
	return cmd
}

func completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete-and-advance",
		Short: "complete_and_advance: award/ledger the current phase, then advance and auto-initialize the next",
		RunE: func(cmd *cobra.Command, args []string) error {
			saveID, err := requireSaveID()
			if err != nil {
				return err
			}
			if err := machine().CompleteAndAdvance(cmd.Context(), saveID); err != nil {
				return err
			}
			fmt.Printf("advanced save %s\n", saveID)
			return nil
		},
	}
}

func advanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new-season-advance",
		Short: "advance_to_new_season: roll season, reset team/player season state, re-seed SpringRegular",
		RunE: func(cmd *cobra.Command, args []string) error {
			saveID, err := requireSaveID()
			if err != nil {
				return err
			}
			if err := machine().AdvanceToNewSeason(cmd.Context(), saveID); err != nil {
				return err
			}
			fmt.Printf("advanced save %s to a new season\n", saveID)
			return nil
		},
	}
}

func newSeasonCmd() *cobra.Command {
	// Alias kept distinct from advanceCmd's "new-season-advance" to match
	// the command-surface table's separate advance_to_new_season entry.
	cmd := advanceCmd()
	cmd.Use = "new-season"
	cmd.Hidden = true
	return cmd
}

func fastForwardCmd() *cobra.Command {
	var targetName string
	var targetSeason uint32
	cmd := &cobra.Command{
		Use:   "fast-forward",
		Short: "fast_forward_to: repeatedly init/simulate/complete until --target (and --season) is reached",
		RunE: func(cmd *cobra.Command, args []string) error {
			saveID, err := requireSaveID()
			if err != nil {
				return err
			}
			target, err := parsePhaseArg(targetName)
			if err != nil {
				return err
			}
			season := targetSeason
			if season == 0 {
				ts, terr := machine().GetTimeState(cmd.Context(), saveID)
				if terr != nil {
					return terr
				}
				season = ts.Season
			}
			m := machine()
			events := make(chan phase.ProgressEvent, 16)
			done := make(chan struct{})
			m.SetProgress(events)
			go func() {
				defer close(done)
				for ev := range events {
					fmt.Printf("  season=%d phase=%s status=%s advanced=%d simulated=%d\n",
						ev.Season, ev.Phase, ev.Status, ev.PhasesAdvanced, ev.MatchesSimulated)
				}
			}()
			res, err := m.FastForwardTo(cmd.Context(), saveID, target, season)
			close(events)
			<-done
			fmt.Printf("phases_advanced=%d matches_simulated=%d reason=%q\n",
				res.PhasesAdvanced, res.MatchesSimulated, res.Reason)
			if err != nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&targetName, "target", "SeasonEnd", "target phase name to stop at")
	cmd.Flags().Uint32Var(&targetSeason, "season", 0, "target season; 0 means the save's current season")
	return cmd
}

func resolvePhase(cmd *cobra.Command, saveID, phaseName string) (model.SeasonPhase, error) {
	if phaseName != "" {
		return model.ParseSeasonPhase(phaseName)
	}
	ts, err := machine().GetTimeState(cmd.Context(), saveID)
	if err != nil {
		return 0, err
	}
	return ts.Phase, nil
}

func simulateNextCmd() *cobra.Command {
	var tournamentID uint64
	cmd := &cobra.Command{
		Use:   "simulate-next",
		Short: "simulate_next_match: play exactly one pending match of --tournament",
		RunE: func(cmd *cobra.Command, args []string) error {
			saveID, err := requireSaveID()
			if err != nil {
				return err
			}
			if tournamentID == 0 {
				return fmt.Errorf("--tournament is required")
			}
			match, err := machine().SimulateNextMatch(cmd.Context(), saveID, tournamentID)
			if err != nil {
				return err
			}
			fmt.Printf("match=%d stage=%s %d-%d winner=%v\n",
				match.ID, match.Stage, match.HomeScore, match.AwayScore, *match.WinnerID)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&tournamentID, "tournament", 0, "tournament id to step")
	return cmd
}
