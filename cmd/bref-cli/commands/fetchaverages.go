package commands

import (
	"fmt"
	"os"

	"brefstats/services/resolver"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fetchAveragesCmd)
}

var fetchAveragesCmd = &cobra.Command{
	Use:   "fetch-averages <query>",
	Short: "Fetch per-season averages for the matched players.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		q, err := resolver.ParseQuery(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		svc := newService(cmd.Context())

		res, err := svc.FetchAverages(cmd.Context(), q)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Player", "Season", "Tm", "Pos", "G", "GS", "MP", "PTS", "TRB", "AST", "FG%", "3P%", "FT%"})
		for _, a := range res.Averages {
			t.AppendRow(table.Row{
				a.PlayerName, a.Season, a.Team, a.Position, a.Games, a.GamesStarted,
				a.MinutesPerGame, a.PointsPerGame, a.ReboundsPerGame, a.AssistsPerGame,
				a.FieldGoalPct, a.ThreePointPct, a.FreeThrowPct,
			})
		}
		t.Render()

		exitIfUnresolved(res.Unresolved)
	},
}
