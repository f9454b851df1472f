package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Game session commands",
	}

	cmd.AddCommand(newPlayNewCmd())
	cmd.AddCommand(newPlayShowCmd())
	cmd.AddCommand(newPlayRoundCmd())
	cmd.AddCommand(newPlayWordCmd())
	cmd.AddCommand(newPlayAbandonCmd())

	return cmd
}

func newPlayNewCmd() *cobra.Command {
	var daily bool
	var gridSize int

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game session",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"mode": "classic"}
			if daily {
				if gridSize > 0 {
					return fmt.Errorf("--size does not apply to daily games")
				}
				req["mode"] = "daily"
			} else if gridSize > 0 {
				req["grid_size"] = gridSize
			}

			var result Session

			if err := client.Post("/api/v1/sessions", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&daily, "daily", false, "Play today's shared daily challenge")
	cmd.Flags().IntVar(&gridSize, "size", 0, "Grid size for classic games (default: server default)")

	return cmd
}

func newPlayShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show a session's board and score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			var result Session

			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s", id), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayRoundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "round <session-id>",
		Short: "Advance to the next round and drop letters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			var result RoundResult

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/round", id), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayWordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "word <session-id> <cell> <cell> <cell>...",
		Short: "Submit a word as a chain of cell ids (e.g. r0c1 r1c1 r2c2)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			cells := args[1:]

			req := map[string][]string{"cells": cells}
			var result WordResult

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/words", id), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <session-id>",
		Short: "Abandon a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if err := client.Delete(fmt.Sprintf("/api/v1/sessions/%s", id)); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Session abandoned")
			return nil
		},
	}
}
