package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Daily challenge leaderboard commands",
	}

	cmd.AddCommand(newLeaderboardTopCmd())
	cmd.AddCommand(newLeaderboardRankCmd())

	return cmd
}

func newLeaderboardTopCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top [date]",
		Short: "Show the top entries for a date (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(args)
			if err != nil {
				return err
			}

			path := fmt.Sprintf("/api/v1/leaderboard/%s", date)
			if limit > 0 {
				path = fmt.Sprintf("%s?limit=%d", path, limit)
			}

			var result Leaderboard

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Number of entries to show (default: server default)")

	return cmd
}

func newLeaderboardRankCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "rank <player-id>",
		Short: "Show a player's ranked entry (default date: today)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID := args[0]

			resolved := date
			if resolved == "" {
				var err error
				resolved, err = resolveDate(nil)
				if err != nil {
					return err
				}
			}

			var result LeaderboardEntry

			if err := client.Get(fmt.Sprintf("/api/v1/leaderboard/%s/players/%s", resolved, playerID), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Challenge date as YYYY-MM-DD (default: today)")

	return cmd
}

// resolveDate returns the given date argument, or asks the server which day it
// is on. The server decides when days roll over, so the client never guesses
// from its own clock.
func resolveDate(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	var challenge Challenge
	if err := client.Get("/api/v1/daily", &challenge); err != nil {
		return "", err
	}
	return challenge.Date, nil
}
