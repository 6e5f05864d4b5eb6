package main

import (
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <tweets|snakes> <client args...>",
	Short: "Summarize the chain and sample walks",
	Long: `Builds the client's chain and prints a Markdown report: state and transition
totals, the most frequent transitions and the requested number of sample walks.
The report is rendered for the terminal when stdout is one.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Report(cmd.Context(), args[0], args[1:])
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
