package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futuremirror/internal/gemini"
	"futuremirror/internal/profile"
	"futuremirror/internal/scenario"
)

type stubLLM struct {
	text string
	err  error

	prompt string
	cfg    *gemini.GenerationConfig
}

func (s *stubLLM) GenerateContent(_ context.Context, prompt string, cfg *gemini.GenerationConfig) (string, error) {
	s.prompt = prompt
	s.cfg = cfg
	return s.text, s.err
}

var testMetrics = profile.Metrics{
	MonthlyIncome:     5000,
	MonthlyExpenses:   3000,
	SavingsBalance:    20000,
	InvestmentBalance: 10000,
	TotalDebt:         15000,
	CreditScore:       720,
}

func mustLookup(t *testing.T, id scenario.ID) scenario.Definition {
	t.Helper()
	def, err := scenario.Lookup(string(id))
	require.NoError(t, err)
	return def
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[string]interface{}
		ok   bool
	}{
		{
			name: "bare object",
			in:   `{"a": 1}`,
			want: map[string]interface{}{"a": float64(1)},
			ok:   true,
		},
		{
			name: "fenced object",
			in:   "```json\n{\"a\": 1}\n```",
			want: map[string]interface{}{"a": float64(1)},
			ok:   true,
		},
		{
			name: "fenced object with prose around it",
			in:   "Here is the result:\n```json\n{\"a\":1}\n```\nThanks!",
			want: map[string]interface{}{"a": float64(1)},
			ok:   true,
		},
		{
			name: "prose around object",
			in:   "Here are your parameters:\n{\"a\": 1}\nLet me know if you need more.",
			want: map[string]interface{}{"a": float64(1)},
			ok:   true,
		},
		{
			name: "no JSON at all",
			in:   "I cannot help with that.",
			ok:   false,
		},
		{
			name: "empty",
			in:   "",
			ok:   false,
		},
		{
			name: "unparsable braces",
			in:   "{not json}",
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolveUsesModelOutput(t *testing.T) {
	llm := &stubLLM{text: "```json\n" + `{
		"scenario": "job_loss",
		"parameters": {
			"jobSearchDurationMonths": 4,
			"expectedMonthlyIncomeAfterRecovery": 4500,
			"expenseEstimate": {"monthlyFixedExpenses": 1800, "monthlyVariableExpenses": 1200},
			"savingsAndInvestments": {"savingsAccountBalance": 20000, "mutualFunds": 8000, "marketSecurities": 2000},
			"simulationConfig": {"iterations": 500, "timeHorizonMonths": 12, "unexpectedExpenseStdDev": 5000}
		}
	}` + "\n```"}

	def := mustLookup(t, scenario.JobLoss)
	res := New(llm).Resolve(context.Background(), def, "what if I lose my job for 4 months", testMetrics)

	assert.Equal(t, SourceGemini, res.Source)
	jp, ok := res.Params.(*scenario.JobLossParams)
	require.True(t, ok)
	assert.Equal(t, 4.0, jp.JobSearchDurationMonths)
	assert.Equal(t, 500, jp.Config().Iterations)

	assert.Equal(t, "job_loss", res.Envelope["scenario"])
	params, ok := res.Envelope["parameters"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(4), params["jobSearchDurationMonths"])

	require.NotNil(t, llm.cfg)
	assert.Equal(t, 0.7, llm.cfg.Temperature)
	assert.Equal(t, 1000, llm.cfg.MaxOutputTokens)
	assert.Contains(t, llm.prompt, `"what if I lose my job for 4 months"`)
	assert.Contains(t, llm.prompt, "job_loss")
	assert.Contains(t, llm.prompt, "jobSearchDurationMonths")
}

func TestResolveFallsBackOnModelError(t *testing.T) {
	llm := &stubLLM{err: errors.New("boom")}
	def := mustLookup(t, scenario.SalaryDeduction)

	res := New(llm).Resolve(context.Background(), def, "pay cut for 6 months", testMetrics)

	assert.Equal(t, SourceFallback, res.Source)
	require.NotNil(t, res.Params)
	assert.Equal(t, "salary_deduction", res.Envelope["scenario"])
}

func TestResolveFallsBackOnGarbageOutput(t *testing.T) {
	llm := &stubLLM{text: "Sorry, I can only answer questions about cooking."}
	def := mustLookup(t, scenario.EmergencyExpense)

	res := New(llm).Resolve(context.Background(), def, "RM5000 emergency", testMetrics)

	assert.Equal(t, SourceFallback, res.Source)
	require.NotNil(t, res.Params)
}

func TestResolveFallsBackOnMissingParameters(t *testing.T) {
	llm := &stubLLM{text: `{"scenario": "investment_stop", "parameters": "not an object"}`}
	def := mustLookup(t, scenario.InvestmentStop)

	res := New(llm).Resolve(context.Background(), def, "stop SIP", testMetrics)

	assert.Equal(t, SourceFallback, res.Source)
}

func TestResolveWithNilClient(t *testing.T) {
	def := mustLookup(t, scenario.JobLoss)

	res := New(nil).Resolve(context.Background(), def, "jobless for 6 months", testMetrics)

	assert.Equal(t, SourceFallback, res.Source)
	jp, ok := res.Params.(*scenario.JobLossParams)
	require.True(t, ok)
	assert.Equal(t, 6.0, jp.JobSearchDurationMonths)
}

func TestResolveFallbackAllVariants(t *testing.T) {
	for _, id := range scenario.IDs() {
		t.Run(string(id), func(t *testing.T) {
			def := mustLookup(t, id)
			res := New(nil).Resolve(context.Background(), def, "what happens to my savings", testMetrics)
			assert.Equal(t, SourceFallback, res.Source)
			require.NotNil(t, res.Params)
			assert.Equal(t, string(id), res.Envelope["scenario"])
		})
	}
}
