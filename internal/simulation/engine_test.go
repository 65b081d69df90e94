package simulation

import (
	"errors"
	"math"
	"testing"

	"futuremirror/internal/profile"
	"futuremirror/internal/scenario"
	"futuremirror/internal/stats"
)

// stubParams drives the engine without randomness: every month adds delta,
// and ruinAt (when > 0) forces a ruin hit in that month.
type stubParams struct {
	initial    float64
	delta      float64
	ruinAt     int
	iterations int
}

func (s *stubParams) Config() scenario.SimConfig {
	return scenario.SimConfig{Iterations: s.iterations, TimeHorizonMonths: 12}
}

func (s *stubParams) InitialState() float64 { return s.initial }

func (s *stubParams) Step(month int, state float64, _ *stats.Sampler) (float64, bool) {
	if s.ruinAt > 0 && month >= s.ruinAt {
		return -1, true
	}
	return state + s.delta, false
}

func (s *stubParams) Summarize(r *scenario.HorizonResult, median, p10, p90, ruinRate float64) {
	r.ProbabilityRunOut = &ruinRate
	r.MedianRemaining = &median
	r.Percentile10 = p10
	r.Percentile90 = p90
}

func TestRunHorizonOrder(t *testing.T) {
	e := NewEngineWithSeed(1)
	results, err := e.Run(&stubParams{delta: 1, iterations: 10})
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, want := range []int{3, 6, 12} {
		if results[i].HorizonMonths != want {
			t.Errorf("result %d: horizon = %d, want %d", i, results[i].HorizonMonths, want)
		}
	}
}

func TestRunDeterministicStub(t *testing.T) {
	e := NewEngineWithSeed(1)
	results, err := e.Run(&stubParams{initial: 10, delta: 1, iterations: 100})
	if err != nil {
		t.Fatal(err)
	}

	// Every trial ends at initial + delta*horizon; all quantiles collapse.
	for _, r := range results {
		want := 10 + float64(r.HorizonMonths)
		if *r.MedianRemaining != want || r.Percentile10 != want || r.Percentile90 != want {
			t.Errorf("horizon %d: quantiles = %v/%v/%v, want all %v",
				r.HorizonMonths, r.Percentile10, *r.MedianRemaining, r.Percentile90, want)
		}
		if *r.ProbabilityRunOut != 0 {
			t.Errorf("horizon %d: ruin = %v, want 0", r.HorizonMonths, *r.ProbabilityRunOut)
		}
	}
}

func TestRunRuinClampsToZero(t *testing.T) {
	e := NewEngineWithSeed(1)
	results, err := e.Run(&stubParams{initial: 100, delta: 1, ruinAt: 2, iterations: 50})
	if err != nil {
		t.Fatal(err)
	}

	for _, r := range results {
		if *r.ProbabilityRunOut != 1 {
			t.Errorf("horizon %d: ruin = %v, want 1", r.HorizonMonths, *r.ProbabilityRunOut)
		}
		if *r.MedianRemaining != 0 || r.Percentile90 != 0 {
			t.Errorf("horizon %d: ruined trials must contribute 0, got median %v p90 %v",
				r.HorizonMonths, *r.MedianRemaining, r.Percentile90)
		}
	}
}

func TestRunClampsIterations(t *testing.T) {
	e := NewEngineWithSeed(1)
	results, err := e.Run(&stubParams{delta: 1, iterations: 0})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range results {
		if *r.ProbabilityRunOut != 0 {
			t.Errorf("single-trial run should still aggregate, got ruin %v", *r.ProbabilityRunOut)
		}
	}
}

func TestRunNonFiniteState(t *testing.T) {
	e := NewEngineWithSeed(1)
	_, err := e.Run(&infParams{})
	if !errors.Is(err, ErrNonFiniteResult) {
		t.Errorf("err = %v, want ErrNonFiniteResult", err)
	}
}

type infParams struct{}

func (infParams) Config() scenario.SimConfig { return scenario.SimConfig{Iterations: 2} }
func (infParams) InitialState() float64      { return 1 }
func (infParams) Step(int, float64, *stats.Sampler) (float64, bool) {
	return math.Inf(1), false
}
func (infParams) Summarize(*scenario.HorizonResult, float64, float64, float64, float64) {}

func TestQuantileOrderingInvariant(t *testing.T) {
	m := profile.Metrics{
		MonthlyIncome:       5000,
		MonthlyExpenses:     3500,
		SavingsBalance:      15000,
		InvestmentBalance:   20000,
		TotalDebt:           10000,
		MonthlyDebtPayments: 500,
	}

	for _, id := range scenario.IDs() {
		t.Run(string(id), func(t *testing.T) {
			def, err := scenario.Lookup(string(id))
			if err != nil {
				t.Fatal(err)
			}

			raw := def.Defaults(m, "what if this happens?")
			// Keep test runtime sane.
			raw["simulationConfig"].(map[string]interface{})["iterations"] = 2000

			p, err := def.Decode(raw)
			if err != nil {
				t.Fatal(err)
			}

			results, err := NewEngine().Run(p)
			if err != nil {
				t.Fatal(err)
			}

			for _, r := range results {
				median := r.MedianRemaining
				if median == nil {
					median = r.MedianPortfolio
				}
				if median == nil {
					t.Fatalf("horizon %d: no median reported", r.HorizonMonths)
				}
				if !(r.Percentile10 <= *median && *median <= r.Percentile90) {
					t.Errorf("horizon %d: ordering violated: p10 %v, median %v, p90 %v",
						r.HorizonMonths, r.Percentile10, *median, r.Percentile90)
				}
			}
		})
	}
}

func TestJobLossRuinMonotonicInHorizon(t *testing.T) {
	def, _ := scenario.Lookup(string(scenario.JobLoss))

	// Long job search relative to the runway: ruin is common and grows with
	// exposure. Ruin is sticky, so longer horizons can only add ruined trials.
	p, err := def.Decode(map[string]interface{}{
		"jobSearchDurationMonths":        12,
		"expectedNewIncomeAfterRecovery": 0,
		"expenseEstimate": map[string]interface{}{
			"monthlyFixedExpenses":    2000,
			"monthlyVariableExpenses": 1000,
		},
		"savingsAndInvestments": map[string]interface{}{
			"savingsAccountBalance": 15000,
		},
		"simulationConfig": map[string]interface{}{
			"iterations":              5000,
			"unexpectedExpenseStdDev": 1500,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	results, err := NewEngine().Run(p)
	if err != nil {
		t.Fatal(err)
	}

	prev := -1.0
	for _, r := range results {
		if r.ProbabilityRunOut == nil {
			t.Fatalf("horizon %d: job_loss must report ruin probability", r.HorizonMonths)
		}
		if *r.ProbabilityRunOut < prev {
			t.Errorf("ruin probability decreased with horizon: %v after %v", *r.ProbabilityRunOut, prev)
		}
		prev = *r.ProbabilityRunOut
	}
}
