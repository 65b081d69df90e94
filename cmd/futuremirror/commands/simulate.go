package commands

import (
	"context"
	"encoding/json"
	"os"

	"futuremirror/internal/scenario"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	simUID      string
	simScenario string
	simQuery    string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one what-if simulation and print the result as JSON",
	Run: func(cmd *cobra.Command, args []string) {
		def, err := scenario.Lookup(simScenario)
		if err != nil {
			log.Fatal().Err(err).Str("scenario", simScenario).Msg("Unknown scenario")
		}

		metrics, err := store.Metrics(simUID)
		if err != nil {
			log.Fatal().Err(err).Str("uid", simUID).Msg("Failed to load financial profile")
		}

		ctx := context.Background()
		res := resolver.Resolve(ctx, def, simQuery, metrics)

		results, err := engine.Run(res.Params)
		if err != nil {
			log.Fatal().Err(err).Msg("Simulation failed")
		}

		reply := summarizer.Summarize(ctx, def.ID(), results, simQuery)

		out := map[string]interface{}{
			"reply":            reply,
			"simulation":       results,
			"parameters":       res.Envelope,
			"parameterSource":  string(res.Source),
			"financialMetrics": metrics,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			log.Fatal().Err(err).Msg("Failed to encode result")
		}
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simUID, "uid", "", "user identifier")
	simulateCmd.Flags().StringVar(&simScenario, "scenario", "", "scenario identifier")
	simulateCmd.Flags().StringVar(&simQuery, "query", "", "natural-language what-if question")
	_ = simulateCmd.MarkFlagRequired("uid")
	_ = simulateCmd.MarkFlagRequired("scenario")
	_ = simulateCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(simulateCmd)
}
