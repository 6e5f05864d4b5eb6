package main

import (
	"os"

	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp <tweets|snakes> <client args...>",
	Short: "Serve walks as MCP tools over stdio",
	Long: `Builds the client's chain and serves it to an MCP client on stdin/stdout:

  tool walk            one random walk as JSON (optional "max", 1..1000)
  tool inspect_chain   the chain snapshot as JSON
  resource markov://chain

Logs go to stderr so stdout carries only protocol messages.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.ServeMCP(cmd.Context(), args[0], args[1:], os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
