package commands

import (
	"fmt"
	"os"

	"brefstats/services/resolver"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fetchGameLogsCmd)
}

var fetchGameLogsCmd = &cobra.Command{
	Use:   "fetch-gamelogs <query[:season]>",
	Short: "Fetch per-game logs for the matched players, optionally for one season (e.g. 'Kevin Garnett:2002').",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		q, err := resolver.ParseGameLogQuery(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		svc := newService(cmd.Context())

		res, err := svc.FetchGameLogs(cmd.Context(), q)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Player", "Season", "Date", "Tm", "", "Opp", "Result", "MP", "PTS", "TRB", "AST", "+/-", "Status"})
		for _, e := range res.Logs {
			t.AppendRow(table.Row{
				e.PlayerName, e.Season, e.Date, e.Team, e.Location, e.Opponent, e.Result,
				e.MinutesPlayed, e.Points, e.TotalRebounds, e.Assists, e.PlusMinus, e.Status,
			})
		}
		t.Render()
		fmt.Printf("%d games\n", len(res.Logs))

		exitIfUnresolved(res.Unresolved)
	},
}
