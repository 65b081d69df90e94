package scenario

import (
	"futuremirror/internal/profile"
	"futuremirror/internal/stats"
)

// emergencyExpenseDefinition models a one-off lump cost landing in a specific
// month on top of noisy regular expenses. Survival model like job_loss: a
// cash-negative trial is marked as run out and stops.
type emergencyExpenseDefinition struct{}

var emergencyExpenseSchema = schemaJSON[emergencyExpenseWire](EmergencyExpense)

func (emergencyExpenseDefinition) ID() ID { return EmergencyExpense }

func (emergencyExpenseDefinition) Schema() string { return emergencyExpenseSchema }

func (emergencyExpenseDefinition) Defaults(m profile.Metrics, query string) map[string]interface{} {
	month := queryNumber(query, []int{1, 2, 3})
	if month > 3 {
		month = 3
	}
	return map[string]interface{}{
		"emergencyCost":   queryNumber(query, []int{3000, 5000, 8000}),
		"emergencyMonth":  month,
		"monthlyIncome":   m.MonthlyIncome,
		"monthlyExpenses": m.MonthlyExpenses,
		"savingsBalance":  m.SavingsBalance,
		"simulationConfig": map[string]interface{}{
			"iterations":        10000,
			"timeHorizonMonths": 12,
			"expenseStdDev":     3000,
		},
	}
}

func (emergencyExpenseDefinition) Decode(raw map[string]interface{}) (Params, error) {
	if raw == nil {
		return nil, ErrInvalidParameters
	}

	sc := subMap(raw, "simulationConfig")

	return &EmergencyExpenseParams{
		EmergencyCost:  stats.ToNumber(raw["emergencyCost"], 0),
		EmergencyMonth: stats.ToNumber(raw["emergencyMonth"], 1),
		MonthlyIncome:  stats.ToNumber(raw["monthlyIncome"], 0),
		ExpenseMean:    stats.ToNumber(raw["monthlyExpenses"], 0),
		ExpenseStd:     stats.ToNumber(sc["expenseStdDev"], 3000),
		SavingsBalance: stats.ToNumber(raw["savingsBalance"], 0),
		cfg:            decodeSimConfig(raw),
	}, nil
}

// EmergencyExpenseParams is the decoded emergency_expense parameter set.
type EmergencyExpenseParams struct {
	EmergencyCost  float64
	EmergencyMonth float64
	MonthlyIncome  float64
	ExpenseMean    float64
	ExpenseStd     float64
	SavingsBalance float64

	cfg SimConfig
}

func (p *EmergencyExpenseParams) Config() SimConfig { return p.cfg }

func (p *EmergencyExpenseParams) InitialState() float64 { return p.SavingsBalance }

func (p *EmergencyExpenseParams) Step(month int, cash float64, g *stats.Sampler) (float64, bool) {
	expenses := p.ExpenseMean + g.Gaussian(0, p.ExpenseStd)
	if expenses < 0 {
		expenses = 0
	}

	if float64(month) == p.EmergencyMonth {
		expenses += p.EmergencyCost
	}

	cash += p.MonthlyIncome - expenses
	if cash < 0 {
		return cash, true
	}
	return cash, false
}

func (p *EmergencyExpenseParams) Summarize(r *HorizonResult, median, p10, p90, ruinRate float64) {
	r.ProbabilityRunOut = f64(ruinRate)
	r.MedianRemaining = f64(median)
	r.Percentile10 = p10
	r.Percentile90 = p90
	r.EmergencyCost = f64(p.EmergencyCost)
	r.EmergencyMonth = f64(p.EmergencyMonth)
}
