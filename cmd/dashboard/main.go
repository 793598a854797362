package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dark_patterns_game/internal/client"
	"dark_patterns_game/internal/dashboard"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	apiURL   string
	interval time.Duration
	timeout  time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "dashboard",
		Short:         "Live leaderboard for the dark patterns game",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api", envOr("DARK_PATTERNS_API", "http://localhost:8080"), "game API base URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", dashboard.DefaultTimeout, "per request timeout")

	root.AddCommand(newWatchCmd(opts))
	root.AddCommand(newSnapshotCmd(opts))
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newWatchCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the leaderboard and show it live",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			api := client.New(opts.apiURL)
			poller := dashboard.NewPoller(api.Scores, opts.interval, opts.timeout)
			updates, unsubscribe := poller.Subscribe()
			defer unsubscribe()

			ctx, cancel := context.WithCancel(ctx)
			done := make(chan struct{})
			go func() {
				poller.Run(ctx)
				close(done)
			}()
			defer func() {
				cancel()
				<-done
			}()

			program := tea.NewProgram(dashboard.NewModel(updates, poller.Snapshot()), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err := program.Run()
			if err == tea.ErrProgramKilled && ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
	cmd.Flags().DurationVar(&opts.interval, "interval", dashboard.DefaultInterval, "polling interval")
	return cmd
}

func newSnapshotCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Fetch the leaderboard once and print it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			board, err := client.New(opts.apiURL).Scores(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(dashboard.Ranked(board.Scores))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), dashboard.Render(dashboard.Snapshot{Board: board, UpdatedAt: time.Now()}, 80))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print ranked scores as JSON")
	return cmd
}
