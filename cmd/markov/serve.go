package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/markov/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve <tweets|snakes> <client args...>",
	Short: "Serve walks over HTTP",
	Long: `Builds the client's chain and serves it until interrupted:

  GET /walk?max=N   one random walk as JSON
  GET /chain        the chain snapshot as JSON
  GET /metrics      Prometheus metrics
  GET /healthz      liveness
  GET /openapi.yaml the OpenAPI description; /walk requests are validated against it`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		port := app.Config.Serve.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetString("port")
		}

		handler, release, err := app.Handler(cmd.Context(), args[0], args[1:])
		if err != nil {
			return err
		}
		defer release()

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		}

		if app.Terminal {
			tui.PrintBanner(os.Stdout, app.Profile)
		}
		fmt.Printf("Serving %s walks on %s\n", args[0], srv.Addr)

		if err := app.Serve(cmd.Context(), srv); err != nil {
			return err
		}
		fmt.Println("Server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
