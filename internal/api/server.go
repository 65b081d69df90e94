// Package api exposes the projection engine over HTTP. Routes mirror the
// product surface: one POST endpoint running a full what-if projection, a
// scenario catalog listing, and a liveness probe.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"futuremirror/internal/profile"
	"futuremirror/internal/resolve"
	"futuremirror/internal/simulation"
	"futuremirror/internal/summary"
)

// Server wires the HTTP surface to the projection pipeline.
type Server struct {
	store      profile.Store
	resolver   *resolve.Resolver
	engine     *simulation.Engine
	summarizer *summary.Summarizer
}

func NewServer(store profile.Store, resolver *resolve.Resolver, engine *simulation.Engine, summarizer *summary.Summarizer) *Server {
	return &Server{
		store:      store,
		resolver:   resolver,
		engine:     engine,
		summarizer: summarizer,
	}
}

// Router builds the route table with request-ID, access-log and recovery
// middleware applied to every route.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, accessLogMiddleware, recoverMiddleware)

	r.HandleFunc("/api/future", s.postFuture).Methods(http.MethodPost)
	r.HandleFunc("/api/scenarios", s.listScenarios).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	return r
}

// Run serves until ctx is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
