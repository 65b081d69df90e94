package api

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"futuremirror/internal/profile"
	"futuremirror/internal/scenario"
)

// futureRequest is the body of POST /api/future.
type futureRequest struct {
	Query    string `json:"query"`
	UID      string `json:"uid"`
	Scenario string `json:"scenario"`
}

// futureResponse is the success payload of POST /api/future.
type futureResponse struct {
	Reply            string                   `json:"reply"`
	Simulation       []scenario.HorizonResult `json:"simulation"`
	Parameters       map[string]interface{}   `json:"parameters"`
	ParameterSource  string                   `json:"parameterSource"`
	FinancialMetrics profile.Metrics          `json:"financialMetrics"`
}

type errorResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) postFuture(w http.ResponseWriter, r *http.Request) {
	var req futureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Reply: "Invalid JSON body."})
		return
	}
	if req.Query == "" || req.UID == "" || req.Scenario == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Reply: "Missing query, uid, or scenario in request body."})
		return
	}

	def, err := scenario.Lookup(req.Scenario)
	if err != nil {
		if errors.Is(err, scenario.ErrUnsupportedScenario) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Reply: "Unsupported scenario."})
			return
		}
		s.internalError(w, r, err)
		return
	}

	metrics, err := s.store.Metrics(req.UID)
	if err != nil {
		s.internalError(w, r, errors.Wrap(err, "load financial profile"))
		return
	}

	res := s.resolver.Resolve(r.Context(), def, req.Query, metrics)

	results, err := s.engine.Run(res.Params)
	if err != nil {
		s.internalError(w, r, errors.Wrap(err, "run simulation"))
		return
	}

	reply := s.summarizer.Summarize(r.Context(), def.ID(), results, req.Query)

	writeJSON(w, http.StatusOK, futureResponse{
		Reply:            reply,
		Simulation:       results,
		Parameters:       res.Envelope,
		ParameterSource:  string(res.Source),
		FinancialMetrics: metrics,
	})
}

// scenarioEntry is one catalog listing: the identifier plus the variant's
// request schema, nested as a JSON object rather than an escaped string.
type scenarioEntry struct {
	ID     scenario.ID     `json:"id"`
	Schema json.RawMessage `json:"schema"`
}

func (s *Server) listScenarios(w http.ResponseWriter, _ *http.Request) {
	entries := make([]scenarioEntry, 0, len(scenario.IDs()))
	for _, id := range scenario.IDs() {
		def, err := scenario.Lookup(string(id))
		if err != nil {
			continue
		}
		entries = append(entries, scenarioEntry{ID: id, Schema: json.RawMessage(def.Schema())})
	}
	writeJSON(w, http.StatusOK, map[string][]scenarioEntry{"scenarios": entries})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	log.Error().Err(err).Str("requestId", requestID(r.Context())).Str("path", r.URL.Path).Msg("request failed")
	captureError(err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Reply: "Internal server error."})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}
