package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResultsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "results",
		Short: "List recently finished matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/results"
			if limit > 0 {
				path = fmt.Sprintf("%s?limit=%d", path, limit)
			}

			var result ResultList
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum results to show (default: server default)")

	return cmd
}
