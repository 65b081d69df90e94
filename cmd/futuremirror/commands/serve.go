package commands

import (
	"context"
	"os/signal"
	"syscall"

	"futuremirror/internal/api"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Run: func(cmd *cobra.Command, args []string) {
		addr := listenAddr
		if addr == "" {
			addr = cfg.ListenAddr
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server := api.NewServer(store, resolver, engine, summarizer)
		if err := server.Run(ctx, addr); err != nil {
			log.Fatal().Err(err).Msg("HTTP server terminated")
		}
		log.Info().Msg("HTTP server stopped")
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "listen address (overrides LISTEN_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
