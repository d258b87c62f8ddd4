package commands

import (
	"fmt"
	"os"

	"brefstats/services/resolver"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fetchPlayersCmd)
}

var fetchPlayersCmd = &cobra.Command{
	Use:   "fetch-players <query>",
	Short: "Fetch player records by name, comma-separated names, initial or initial range (e.g. 'Kevin Garnett', 'a-c', 'b').",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		q, err := resolver.ParseQuery(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		svc := newService(cmd.Context())

		res, err := svc.FetchPlayers(cmd.Context(), q)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Player", "Link", "From", "To", "Pos", "Height", "Weight", "Born", "Colleges"})
		for _, p := range res.Players {
			t.AppendRow(table.Row{
				p.Name, p.Link, p.YearMin, p.YearMax, p.Position,
				p.Height, p.Weight, p.BirthDate, p.Colleges,
			})
		}
		t.Render()

		exitIfUnresolved(res.Unresolved)
	},
}
