package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDailyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily [date]",
		Short: "Show the daily challenge (today's, or a past date as YYYY-MM-DD)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/daily"
			if len(args) == 1 {
				path = fmt.Sprintf("/api/v1/daily/%s", args[0])
			}

			var result Challenge

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
