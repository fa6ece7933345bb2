package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	cl "tycoon/internal/cli"
	"tycoon/internal/config"
	"tycoon/internal/leaderboard"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "tyc",
		Short:        "Startup Tycoon St. Gallen CLI client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newStartCmd(&apiBase),
		newStatusCmd(&apiBase),
		newActCmd(&apiBase),
		newChooseCmd(&apiBase),
		newBoardCmd(&apiBase),
		newAbandonCmd(),
		newPlayCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func newStartCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Found a new startup in St. Gallen",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := promptOptional("Founder name")
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			out, err := client.NewGame(ctx, name)
			if err != nil {
				return err
			}
			if err := cl.SaveSession(cl.Session{
				Token:      out.Token,
				GameID:     out.State.GameID,
				PlayerName: out.State.Company.OwnerName,
			}); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Welcome to St. Gallen, %s! You have one year to make it.", out.State.Company.OwnerName))
			renderState(out.State)
			return nil
		},
	}
}

func newStatusCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current company state",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			state, err := newClient(apiBase).CurrentState(ctx, sess.Token)
			if err != nil {
				return err
			}
			renderState(state)
			return nil
		},
	}
}

func newActCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "act [action]",
		Short: "Play one month with the given action",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)

			var action string
			if len(args) == 1 {
				action = strings.ToLower(strings.TrimSpace(args[0]))
			} else {
				state, err := client.CurrentState(ctx, sess.Token)
				if err != nil {
					return err
				}
				renderState(state)
				if state.GameOver || state.Pending != nil {
					return nil
				}
				ids := make([]string, 0, len(state.Actions))
				for _, a := range state.Actions {
					ids = append(ids, string(a.ID))
				}
				action, err = promptChoice("Action", ids, ids[len(ids)-1])
				if err != nil {
					return err
				}
			}

			out, err := client.PlayTurn(ctx, sess.Token, action)
			if err != nil {
				return err
			}
			renderTurn(out.Turn)
			renderState(out.State)
			return nil
		},
	}
}

func newChooseCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "choose [option]",
		Short: "Answer a pending event",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)

			var choice string
			if len(args) == 1 {
				choice = strings.ToLower(strings.TrimSpace(args[0]))
			} else {
				state, err := client.CurrentState(ctx, sess.Token)
				if err != nil {
					return err
				}
				if state.Pending == nil {
					printInfo("No event waiting for an answer.")
					return nil
				}
				renderPendingEvent(state.Pending)
				ids := make([]string, 0, len(state.Pending.Options))
				for _, opt := range state.Pending.Options {
					ids = append(ids, opt.ID)
				}
				choice, err = promptChoice("Your answer", ids, ids[0])
				if err != nil {
					return err
				}
			}

			out, err := client.ResolveEvent(ctx, sess.Token, choice)
			if err != nil {
				return err
			}
			renderTurn(out.Turn)
			renderState(out.State)
			return nil
		},
	}
}

func newBoardCmd(apiBase *string) *cobra.Command {
	var local bool
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the hall of fame",
		RunE: func(cmd *cobra.Command, args []string) error {
			if local {
				entries, err := cl.LoadArchive()
				if err != nil {
					return err
				}
				sortBoard(entries)
				renderBoard(entries)
				return nil
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			entries, err := newClient(apiBase).Leaderboard(ctx)
			if err != nil {
				return err
			}
			renderBoard(entries)
			return nil
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "show runs finished with `tyc play` on this machine")
	return cmd
}

func sortBoard(entries []leaderboard.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].FinalScore > entries[j].FinalScore
	})
}

func newAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon",
		Short: "Forget the saved game session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.ClearSession(); err != nil {
				return err
			}
			printSuccess("Session cleared. Start fresh with `tyc start`.")
			return nil
		},
	}
}
