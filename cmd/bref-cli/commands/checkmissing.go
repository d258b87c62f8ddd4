package commands

import (
	"fmt"
	"os"

	"brefstats/services/resolver"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkMissingCmd)
	rootCmd.AddCommand(checkMissingAveragesCmd)
}

var checkMissingCmd = &cobra.Command{
	Use:   "check-missing <query[:season]>",
	Short: "Report matched players that have no game-log rows recorded for the scope. Never writes.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		q, err := resolver.ParseGameLogQuery(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		svc := newService(cmd.Context())

		report, err := svc.CheckMissing(cmd.Context(), q)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		renderMissing(report)
	},
}

var checkMissingAveragesCmd = &cobra.Command{
	Use:   "check-missing-averages <query>",
	Short: "Report matched players that have no season-average rows recorded. Never writes.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		q, err := resolver.ParseQuery(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		svc := newService(cmd.Context())

		report, err := svc.CheckMissingAverages(cmd.Context(), q)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		renderMissing(report)
	},
}

func renderMissing(report resolver.MissingReport) {
	t := newTable()
	t.AppendHeader(table.Row{"Player", "Link"})
	for _, p := range report.Missing {
		t.AppendRow(table.Row{p.Name, p.Link})
	}
	t.Render()
	fmt.Printf("%d of %d checked players missing\n", len(report.Missing), report.Checked)

	exitIfUnresolved(report.Unresolved)
}
