package commands

import (
	"context"
	"os/signal"
	"syscall"

	"futuremirror/internal/config"
	"futuremirror/internal/gemini"
	"futuremirror/internal/logging"
	"futuremirror/internal/mcpserver"
	"futuremirror/internal/profile"
	"futuremirror/internal/resolve"
	"futuremirror/internal/simulation"
	"futuremirror/internal/summary"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	llm        gemini.Client
	store      profile.Store
	resolver   *resolve.Resolver
	engine     *simulation.Engine
	summarizer *summary.Summarizer
)

var rootCmd = &cobra.Command{
	Use:   "futuremirror",
	Short: "FutureMirror is a Monte-Carlo what-if engine for personal finances",
	Long: `A financial projection server that answers "what if" questions (job loss, salary cuts,
paused investing, debt stress, emergency expenses) with Monte-Carlo simulations over the
user's financial profile. Runs as an MCP stdio server by default; see "serve" for HTTP.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		if cfg.SentryDSN != "" {
			if err := sentry.Init(sentry.ClientOptions{
				Dsn:     cfg.SentryDSN,
				Release: "futuremirror@" + Version,
			}); err != nil {
				log.Warn().Err(err).Msg("Failed to initialize Sentry")
			}
		}

		// The model client is optional; without a key every request resolves
		// through the deterministic fallbacks.
		llm, err = gemini.NewClient(cfg.Gemini)
		if err != nil {
			if !errors.Is(err, gemini.ErrNoAPIKey) {
				log.Fatal().Err(err).Msg("Failed to initialize Gemini client")
			}
			llm = nil
		}

		store = profile.NewFileStore(cfg.DataPath)
		resolver = resolve.New(llm)
		engine = simulation.NewEngine()
		summarizer = summary.New(llm)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("FutureMirror starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		log.Info().Msg("MCP Server starting Stdio loop")
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server := mcpserver.New(store, resolver, engine, summarizer)
		if err := server.Run(ctx, Version); err != nil {
			log.Fatal().Err(err).Msg("MCP server terminated")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
