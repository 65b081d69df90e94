package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"futuremirror/internal/scenario"
)

// descriptions are the catalog blurbs surfaced by list_scenarios.
var descriptions = map[scenario.ID]string{
	scenario.JobLoss:          "Income stops for a number of months, then resumes at a recovery level while expenses drain liquid assets.",
	scenario.SalaryDeduction:  "Income is cut by a percentage for a number of months while spending continues.",
	scenario.InvestmentStop:   "Monthly investing pauses for a number of months while the existing portfolio keeps compounding.",
	scenario.LiabilityStress:  "Monthly debt payments rise by a percentage while income fluctuates.",
	scenario.EmergencyExpense: "A one-time emergency cost hits in a given month on top of regular spending.",
}

type ListScenariosInput struct {
	// No input parameters needed
}

type ScenarioEntry struct {
	ID          string `json:"id" jsonschema:"Scenario identifier to pass to simulate_scenario"`
	Description string `json:"description" jsonschema:"What the scenario models"`
}

type ListScenariosOutput struct {
	Scenarios []ScenarioEntry `json:"scenarios" jsonschema:"Available scenarios"`
	Count     int             `json:"count" jsonschema:"Number of scenarios"`
}

func (s *Server) ListScenarios(ctx context.Context, req *mcp.CallToolRequest, input ListScenariosInput) (*mcp.CallToolResult, ListScenariosOutput, error) {
	var entries []ScenarioEntry
	for _, id := range scenario.IDs() {
		entries = append(entries, ScenarioEntry{
			ID:          string(id),
			Description: descriptions[id],
		})
	}
	return nil, ListScenariosOutput{Scenarios: entries, Count: len(entries)}, nil
}

type GetFinancialProfileInput struct {
	UID string `json:"uid" jsonschema:"User identifier"`
}

type GetFinancialProfileOutput struct {
	MonthlyIncome       float64 `json:"monthlyIncome" jsonschema:"Average monthly salary income"`
	MonthlyExpenses     float64 `json:"monthlyExpenses" jsonschema:"Average monthly spending"`
	SavingsBalance      float64 `json:"savingsBalance" jsonschema:"Cash and savings balance"`
	InvestmentBalance   float64 `json:"investmentBalance" jsonschema:"Investment holdings balance"`
	RetirementBalance   float64 `json:"retirementBalance" jsonschema:"Retirement fund balance"`
	TotalDebt           float64 `json:"totalDebt" jsonschema:"Total outstanding loan balance"`
	CreditScore         float64 `json:"creditScore" jsonschema:"Latest bureau credit score"`
	MonthlyDebtPayments float64 `json:"monthlyDebtPayments" jsonschema:"Sum of monthly loan payments"`
}

func (s *Server) GetFinancialProfile(ctx context.Context, req *mcp.CallToolRequest, input GetFinancialProfileInput) (*mcp.CallToolResult, GetFinancialProfileOutput, error) {
	if input.UID == "" {
		return nil, GetFinancialProfileOutput{}, fmt.Errorf("uid is required")
	}

	m, err := s.store.Metrics(input.UID)
	if err != nil {
		return nil, GetFinancialProfileOutput{}, fmt.Errorf("failed to load financial profile: %w", err)
	}

	return nil, GetFinancialProfileOutput{
		MonthlyIncome:       m.MonthlyIncome,
		MonthlyExpenses:     m.MonthlyExpenses,
		SavingsBalance:      m.SavingsBalance,
		InvestmentBalance:   m.InvestmentBalance,
		RetirementBalance:   m.RetirementBalance,
		TotalDebt:           m.TotalDebt,
		CreditScore:         m.CreditScore,
		MonthlyDebtPayments: m.MonthlyDebtPayments,
	}, nil
}

type SimulateScenarioInput struct {
	UID      string `json:"uid" jsonschema:"User identifier"`
	Scenario string `json:"scenario" jsonschema:"Scenario identifier from list_scenarios"`
	Query    string `json:"query" jsonschema:"Natural-language what-if question, e.g. 'what if I lose my job for 6 months'"`
}

type HorizonEntry struct {
	HorizonMonths     int      `json:"horizonMonths" jsonschema:"Evaluation horizon in months"`
	ProbabilityRunOut *float64 `json:"probabilityRunOut,omitempty" jsonschema:"Share of trials that ran out of money, when the scenario tracks ruin"`
	MedianRemaining   *float64 `json:"medianRemaining,omitempty" jsonschema:"Median remaining balance"`
	MedianPortfolio   *float64 `json:"medianPortfolio,omitempty" jsonschema:"Median portfolio value"`
	Percentile10      float64  `json:"percentile10" jsonschema:"Worst-case (10th percentile) outcome"`
	Percentile90      float64  `json:"percentile90" jsonschema:"Best-case (90th percentile) outcome"`
}

type SimulateScenarioOutput struct {
	Summary         string         `json:"summary" jsonschema:"Plain-language narrative of the results"`
	Results         []HorizonEntry `json:"results" jsonschema:"Per-horizon simulation outcomes"`
	ParameterSource string         `json:"parameterSource" jsonschema:"Where parameters came from: gemini or fallback"`
	Parameters      string         `json:"parameters" jsonschema:"Resolved parameter payload as a JSON object string"`
}

func (s *Server) SimulateScenario(ctx context.Context, req *mcp.CallToolRequest, input SimulateScenarioInput) (*mcp.CallToolResult, SimulateScenarioOutput, error) {
	if input.UID == "" || input.Scenario == "" || input.Query == "" {
		return nil, SimulateScenarioOutput{}, fmt.Errorf("uid, scenario and query are required")
	}

	def, err := scenario.Lookup(input.Scenario)
	if err != nil {
		return nil, SimulateScenarioOutput{}, fmt.Errorf("unknown scenario %q, call list_scenarios for the catalog", input.Scenario)
	}

	metrics, err := s.store.Metrics(input.UID)
	if err != nil {
		return nil, SimulateScenarioOutput{}, fmt.Errorf("failed to load financial profile: %w", err)
	}

	res := s.resolver.Resolve(ctx, def, input.Query, metrics)

	results, err := s.engine.Run(res.Params)
	if err != nil {
		return nil, SimulateScenarioOutput{}, fmt.Errorf("simulation failed: %w", err)
	}

	reply := s.summarizer.Summarize(ctx, def.ID(), results, input.Query)

	entries := make([]HorizonEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, HorizonEntry{
			HorizonMonths:     r.HorizonMonths,
			ProbabilityRunOut: r.ProbabilityRunOut,
			MedianRemaining:   r.MedianRemaining,
			MedianPortfolio:   r.MedianPortfolio,
			Percentile10:      r.Percentile10,
			Percentile90:      r.Percentile90,
		})
	}

	envelope, err := json.Marshal(res.Envelope)
	if err != nil {
		envelope = []byte("{}")
	}

	return nil, SimulateScenarioOutput{
		Summary:         reply,
		Results:         entries,
		ParameterSource: string(res.Source),
		Parameters:      string(envelope),
	}, nil
}
