// Package resolve turns a natural-language what-if query into a runnable
// scenario parameter set. It asks the language model first and degrades to the
// scenario's deterministic defaults when the model is unavailable, answers
// with garbage, or the payload fails to decode. Resolution itself never fails.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"futuremirror/internal/gemini"
	"futuremirror/internal/profile"
	"futuremirror/internal/scenario"
)

// Source names the pipeline step that produced the winning parameter set.
type Source string

const (
	SourceGemini   Source = "gemini"
	SourceFallback Source = "fallback"
)

// Resolution is the outcome of parameter resolution for one request.
type Resolution struct {
	// Params is the decoded, runnable parameter set.
	Params scenario.Params

	// Envelope is the raw scenario/parameters payload echoed back to the
	// caller alongside the simulation results.
	Envelope map[string]interface{}

	// Source records which step won.
	Source Source
}

// Resolver runs the ordered resolution pipeline. The language model client may
// be nil, in which case every request resolves through the fallback step.
type Resolver struct {
	llm gemini.Client
}

func New(llm gemini.Client) *Resolver {
	return &Resolver{llm: llm}
}

// Resolve produces parameters for def from the user's query and financial
// profile. The model step is attempted first; any failure is logged and the
// deterministic fallback takes over.
func (r *Resolver) Resolve(ctx context.Context, def scenario.Definition, query string, m profile.Metrics) Resolution {
	if res, err := r.fromModel(ctx, def, query, m); err == nil {
		return res
	} else if !errors.Is(err, errUnavailable) {
		log.Warn().Err(err).Str("scenario", string(def.ID())).Msg("model parameter extraction failed, using fallback")
	}
	return r.fromDefaults(def, query, m)
}

var errUnavailable = errors.New("model client not configured")

func (r *Resolver) fromModel(ctx context.Context, def scenario.Definition, query string, m profile.Metrics) (Resolution, error) {
	if r.llm == nil {
		return Resolution{}, errUnavailable
	}

	text, err := r.llm.GenerateContent(ctx, extractionPrompt(def, query, m), &gemini.GenerationConfig{
		Temperature:     0.7,
		MaxOutputTokens: 1000,
	})
	if err != nil {
		return Resolution{}, errors.Wrap(err, "generate parameters")
	}

	envelope, ok := ExtractJSON(text)
	if !ok {
		return Resolution{}, errors.New("no JSON object in model output")
	}
	raw, ok := envelope["parameters"].(map[string]interface{})
	if !ok {
		return Resolution{}, errors.New("model output missing parameters object")
	}

	params, err := def.Decode(raw)
	if err != nil {
		return Resolution{}, errors.Wrap(err, "decode model parameters")
	}

	log.Debug().Str("scenario", string(def.ID())).Msg("parameters resolved by model")
	return Resolution{
		Params:   params,
		Envelope: map[string]interface{}{"scenario": string(def.ID()), "parameters": raw},
		Source:   SourceGemini,
	}, nil
}

// fromDefaults cannot fail: Defaults always yields a decodable object.
func (r *Resolver) fromDefaults(def scenario.Definition, query string, m profile.Metrics) Resolution {
	raw := def.Defaults(m, query)
	params, err := def.Decode(raw)
	if err != nil {
		// Defaults builders and Decode are maintained together; reaching this
		// is a programming error.
		panic(fmt.Sprintf("scenario %s: defaults do not decode: %v", def.ID(), err))
	}
	return Resolution{
		Params:   params,
		Envelope: map[string]interface{}{"scenario": string(def.ID()), "parameters": raw},
		Source:   SourceFallback,
	}
}

// extractionPrompt instructs the model to map the user's query onto the
// variant's parameter schema, favoring any explicit numbers in the query.
func extractionPrompt(def scenario.Definition, query string, m profile.Metrics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are FutureMirror, a financial assistant analyzing the user's specific scenario query.\n\n")
	fmt.Fprintf(&b, "USER QUERY: %q\n\n", query)
	fmt.Fprintf(&b, "SCENARIO: %s\n\n", def.ID())
	fmt.Fprintf(&b, "USER FINANCIAL PROFILE:\n")
	fmt.Fprintf(&b, "- Monthly Income: RM%.2f\n", m.MonthlyIncome)
	fmt.Fprintf(&b, "- Monthly Expenses: RM%.2f\n", m.MonthlyExpenses)
	fmt.Fprintf(&b, "- Savings Balance: RM%.2f\n", m.SavingsBalance)
	fmt.Fprintf(&b, "- Investment Balance: RM%.2f\n", m.InvestmentBalance)
	fmt.Fprintf(&b, "- Total Debt: RM%.2f\n", m.TotalDebt)
	fmt.Fprintf(&b, "- Credit Score: %.0f\n\n", m.CreditScore)
	b.WriteString("ANALYZE THE USER'S QUERY CAREFULLY and extract specific parameters mentioned. " +
		"If the query mentions specific amounts, durations, or percentages, USE THOSE EXACT VALUES. " +
		"If not specified, make reasonable estimates based on the financial profile.\n\n")
	b.WriteString("RETURN ONLY VALID JSON, no extra text.\n\n")
	fmt.Fprintf(&b, "REQUIRED JSON SCHEMA:\n%s\n\n", def.Schema())
	b.WriteString("EXAMPLES:\n" +
		"- If query says \"lost job for 6 months\", set jobSearchDurationMonths: 6\n" +
		"- If query says \"20% salary cut\", set deductionPercentage: 20\n" +
		"- If query says \"RM5000 emergency\", set emergencyCost: 5000\n" +
		"- If query says \"stop investing for 3 months\", set stopDurationMonths: 3\n\n")
	b.WriteString("NOW GENERATE PARAMETERS SPECIFIC TO THIS QUERY:\n")
	return b.String()
}
