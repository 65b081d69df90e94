// Package mcpserver exposes the projection engine as Model Context Protocol
// tools over stdio, so LLM hosts can browse the scenario catalog, inspect a
// financial profile, and run what-if simulations directly.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"futuremirror/internal/profile"
	"futuremirror/internal/resolve"
	"futuremirror/internal/simulation"
	"futuremirror/internal/summary"
)

// Server bundles the collaborators the tool handlers need.
type Server struct {
	store      profile.Store
	resolver   *resolve.Resolver
	engine     *simulation.Engine
	summarizer *summary.Summarizer
}

func New(store profile.Store, resolver *resolve.Resolver, engine *simulation.Engine, summarizer *summary.Summarizer) *Server {
	return &Server{
		store:      store,
		resolver:   resolver,
		engine:     engine,
		summarizer: summarizer,
	}
}

// Run serves the tool set over stdio until the transport closes or ctx ends.
func (s *Server) Run(ctx context.Context, version string) error {
	impl := &mcp.Implementation{
		Name:    "futuremirror",
		Version: version,
	}

	server := mcp.NewServer(impl, nil)
	s.register(server)

	log.Info().Str("version", version).Msg("mcp server listening on stdio")
	return server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_scenarios",
		Description: "List the adverse financial scenarios the projection engine can simulate, with a short description of each.",
	}, s.ListScenarios)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_financial_profile",
		Description: "Get the derived financial profile for a user: monthly income and expenses, savings and investment balances, total debt, credit score, and monthly debt payments.",
	}, s.GetFinancialProfile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "simulate_scenario",
		Description: "Run a Monte Carlo what-if simulation for a user and scenario. Parameters are extracted from the natural-language query, the simulation runs over 3, 6 and 12 month horizons, and the result includes percentile outcomes and a plain-language summary.",
	}, s.SimulateScenario)
}
