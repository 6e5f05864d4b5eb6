package main

import (
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <tweets|snakes> <client args...>",
	Short: "Export the chain as a Mermaid diagram",
	Long: `Builds the client's chain from the same arguments the client takes and outputs
a Mermaid diagram (graph TD) with transition counts on the edges. A positive
walk count highlights the first walk drawn from the seed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Graph(cmd.Context(), args[0], args[1:])
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
