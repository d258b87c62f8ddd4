package commands

import (
	"fmt"
	"os"

	"brefstats/services/resolver"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(backfillCmd)
}

var backfillCmd = &cobra.Command{
	Use:   "backfill-names [query]",
	Short: "Attach player names to stored game-log rows that only carry a player link. A query narrows the scan; omitting it scans everything. Idempotent.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var query *resolver.Query
		if len(args) == 1 {
			q, err := resolver.ParseQuery(args[0])
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			query = &q
		}
		svc := newService(cmd.Context())

		res, err := svc.BackfillGameLogNames(cmd.Context(), query)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("tagged %d players, updated %d rows\n", res.PlayersTagged, res.RowsUpdated)

		exitIfUnresolved(res.Unresolved)
	},
}
